package main

import (
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/spritekit/editor"
)

// ToolBar mirrors the editor's active tool as a radio group.
type ToolBar struct {
	group   *widget.RadioGroup
	buttons []*widget.Button
	current editor.Tool
}

func (tb *ToolBar) SetTool(t editor.Tool) {
	idx := int(t)
	if tb == nil || tb.group == nil || idx < 0 || idx >= len(tb.buttons) || t == tb.current {
		return
	}
	tb.current = t
	tb.group.SetActive(tb.buttons[idx])
}

func buildToolBar(theme *widget.Theme, fontFace *text.Face, onToolSelected func(tool editor.Tool), initialTool editor.Tool) (*widget.Container, *ToolBar) {
	toolbar := newBar(320, 44)

	var toolButtons []*widget.Button
	for _, tool := range editor.Tools {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(tool.String(), fontFace, buttonTextColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(64, 32),
			),
		)
		toolButtons = append(toolButtons, btn)
		toolbar.AddChild(btn)
	}

	elements := make([]widget.RadioGroupElement, 0, len(toolButtons))
	for _, b := range toolButtons {
		elements = append(elements, b)
	}

	tb := &ToolBar{buttons: toolButtons, current: initialTool}
	tb.group = widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			for idx, b := range toolButtons {
				if args.Active == b {
					tb.current = editor.Tools[idx]
					if onToolSelected != nil {
						onToolSelected(tb.current)
					}
					return
				}
			}
		}),
	)

	if idx := int(initialTool); idx >= 0 && idx < len(toolButtons) {
		tb.group.SetActive(toolButtons[idx])
	}

	return toolbar, tb
}

func newRootUI(theme *widget.Theme, children ...*widget.Container) *ebitenui.UI {
	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	for _, c := range children {
		root.AddChild(c)
	}
	return &ebitenui.UI{Container: root, PrimaryTheme: theme}
}
