// Package report renders the titled tables printed by the spritekit
// command line.
package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type Column struct {
	Header string
	Align  text.Align
}

func Left(header string) Column  { return Column{Header: header, Align: text.AlignLeft} }
func Right(header string) Column { return Column{Header: header, Align: text.AlignRight} }

// Table collects rows under fixed columns and an optional one-line summary.
type Table struct {
	title   string
	columns []Column
	rows    []table.Row
	footer  string
}

func New(title string, columns ...Column) *Table {
	return &Table{title: title, columns: columns}
}

// Add appends a row. Missing trailing cells render empty; extra cells are dropped.
func (t *Table) Add(cells ...any) {
	row := make(table.Row, len(t.columns))
	n := copy(row, cells)
	for i := n; i < len(row); i++ {
		row[i] = ""
	}
	t.rows = append(t.rows, row)
}

func (t *Table) Len() int { return len(t.rows) }

func (t *Table) Summary(format string, args ...any) {
	t.footer = fmt.Sprintf(format, args...)
}

func (t *Table) Render(w io.Writer) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if t.title != "" {
		tw.SetTitle("%s", t.title)
	}

	header := make(table.Row, len(t.columns))
	configs := make([]table.ColumnConfig, len(t.columns))
	for i, c := range t.columns {
		header[i] = c.Header
		configs[i] = table.ColumnConfig{Number: i + 1, Align: c.Align, AlignHeader: text.AlignLeft}
	}
	tw.AppendHeader(header)
	tw.AppendRows(t.rows)
	if len(t.rows) == 0 {
		tw.AppendRow(table.Row{"(none)"})
	}
	tw.SetColumnConfigs(configs)
	if t.footer != "" {
		tw.AppendFooter(table.Row{t.footer}, table.RowConfig{AutoMerge: true})
	}
	_, err := fmt.Fprintln(w, tw.Render())
	return err
}
