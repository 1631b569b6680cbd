// Package binding resolves the semantic asset slots used by the runtime
// preview (idle, run, jump, tile, background, enemy) against catalog
// entries. Resolution happens once at load.
package binding

import (
	"image"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Slot is a semantic asset role.
type Slot string

const (
	SlotIdle       Slot = "idle"
	SlotRun        Slot = "run"
	SlotJump       Slot = "jump"
	SlotTile       Slot = "tile"
	SlotBackground Slot = "background"
	SlotEnemy      Slot = "enemy"
)

// Slots lists every slot in resolution order. Idle resolves before run and
// jump so they can fall back to it.
var Slots = []Slot{SlotIdle, SlotRun, SlotJump, SlotTile, SlotBackground, SlotEnemy}

// Candidate is one catalog entry offered for binding.
type Candidate struct {
	ID       string
	Category string
	Name     string
	File     string
	Frames   int
	Image    *image.RGBA
}

// Resolved is the bitmap and frame count bound to a slot.
type Resolved struct {
	Image  *image.RGBA
	Frames int
	Source string
}

// FrameCount is never below one.
func (r Resolved) FrameCount() int {
	if r.Frames < 1 {
		return 1
	}
	return r.Frames
}

// Resolver looks up the binding for a slot.
type Resolver interface {
	Resolve(slot Slot) (Resolved, bool)
}

// Bindings is the resolved slot table.
type Bindings map[Slot]Resolved

// Bind resolves every slot once.
func Bind(r Resolver) Bindings {
	out := make(Bindings, len(Slots))
	for _, slot := range Slots {
		if res, ok := r.Resolve(slot); ok {
			out[slot] = res
		}
	}
	return out
}

// Get returns the binding for slot; run and jump fall back to idle.
func (b Bindings) Get(slot Slot) (Resolved, bool) {
	if res, ok := b[slot]; ok {
		return res, true
	}
	if slot == SlotRun || slot == SlotJump {
		res, ok := b[SlotIdle]
		return res, ok
	}
	return Resolved{}, false
}

// slotRule says which category a slot draws from and which words in a
// name or filename mark a match.
type slotRule struct {
	category string
	keywords []string
	// fallback to the first member of the category when nothing matches
	firstMember bool
}

var rules = map[Slot]slotRule{
	SlotIdle:       {category: "character", keywords: []string{"idle", "stand"}, firstMember: true},
	SlotRun:        {category: "character", keywords: []string{"run", "walk"}},
	SlotJump:       {category: "character", keywords: []string{"jump", "fall", "air"}},
	SlotTile:       {category: "tile", keywords: []string{"tile", "ground", "platform"}, firstMember: true},
	SlotBackground: {category: "background", keywords: []string{"background", "bg", "sky"}, firstMember: true},
	SlotEnemy:      {category: "enemy", keywords: []string{"enemy", "monster", "slime"}, firstMember: true},
}

// Category returns the catalog category a slot draws from.
func Category(slot Slot) string {
	return rules[slot].category
}

// Matcher decides whether a candidate fills a slot.
type Matcher interface {
	Match(slot Slot, c Candidate) (bool, error)
}

// KeywordMatcher matches case-folded slot keywords against the words of the
// candidate name or file base name. A keyword must start a word, so "air"
// matches "airborne" but not "hair".
type KeywordMatcher struct {
	fold cases.Caser
}

func NewKeywordMatcher() *KeywordMatcher {
	return &KeywordMatcher{fold: cases.Fold()}
}

func (m *KeywordMatcher) Match(slot Slot, c Candidate) (bool, error) {
	rule, ok := rules[slot]
	if !ok {
		return false, nil
	}
	words := append(m.words(c.Name), m.words(filepath.Base(c.File))...)
	for _, kw := range rule.keywords {
		for _, w := range words {
			if strings.HasPrefix(w, kw) {
				return true, nil
			}
		}
	}
	return false, nil
}

// words splits s at separators and lower-to-upper case changes, then folds
// each word.
func (m *KeywordMatcher) words(s string) []string {
	var out []string
	start := -1
	var prev rune
	flush := func(end int) {
		if start >= 0 {
			out = append(out, m.fold.String(s[start:end]))
			start = -1
		}
	}
	for i, r := range s {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush(i)
		case start >= 0 && unicode.IsUpper(r) && unicode.IsLower(prev):
			flush(i)
			start = i
		case start < 0:
			start = i
		}
		prev = r
	}
	flush(len(s))
	return out
}
