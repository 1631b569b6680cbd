package binding

import (
	"errors"
	"image"
	"testing"
)

func img() *image.RGBA { return image.NewRGBA(image.Rect(0, 0, 1, 1)) }

func catalogFixture() []Candidate {
	return []Candidate{
		{Category: "Character", Name: "Hero Stand", File: "hero_a.png", Frames: 4, Image: img()},
		{Category: "character", Name: "hero", File: "sprites/HERO_RUN.png", Frames: 6, Image: img()},
		{Category: "tile", Name: "grass", File: "grass.png", Frames: 1, Image: img()},
		{Category: "tile", Name: "Stone Platform", File: "stone.png", Frames: 1, Image: img()},
		{Category: "enemy", Name: "bat", File: "bat.png", Frames: 3, Image: img()},
		{Category: "background", Name: "missing bitmap", File: "bg.png", Frames: 1},
	}
}

func TestHeuristicResolve(t *testing.T) {
	h := NewHeuristic(catalogFixture(), nil, nil)
	cases := []struct {
		slot   Slot
		ok     bool
		source string
		frames int
	}{
		{SlotIdle, true, "Hero Stand", 4},
		{SlotRun, true, "hero", 6},
		{SlotJump, true, "Hero Stand", 4},
		{SlotTile, true, "Stone Platform", 1},
		{SlotEnemy, true, "bat", 3},
		{SlotBackground, false, "", 0},
	}
	for _, c := range cases {
		t.Run(string(c.slot), func(t *testing.T) {
			res, ok := h.Resolve(c.slot)
			if ok != c.ok {
				t.Fatalf("expected ok=%v, got %v", c.ok, ok)
			}
			if res.Source != c.source || res.Frames != c.frames {
				t.Fatalf("expected %q/%d, got %q/%d", c.source, c.frames, res.Source, res.Frames)
			}
		})
	}
}

func TestHeuristicFirstMemberFallback(t *testing.T) {
	h := NewHeuristic([]Candidate{
		{Category: "character", Name: "knight", Frames: 5, Image: img()},
		{Category: "character", Name: "wizard", Frames: 2, Image: img()},
	}, nil, nil)
	res, ok := h.Resolve(SlotIdle)
	if !ok || res.Source != "knight" {
		t.Fatalf("expected first member fallback, got %q ok=%v", res.Source, ok)
	}
	if run, _ := h.Resolve(SlotRun); run.Source != "knight" {
		t.Fatalf("run should fall back to idle, got %q", run.Source)
	}
}

func TestBindAndGet(t *testing.T) {
	b := Bind(NewHeuristic([]Candidate{
		{Category: "character", Name: "idle", Frames: 0, Image: img()},
	}, nil, nil))
	if _, ok := b[SlotRun]; !ok {
		t.Fatalf("run should be bound through the idle fallback")
	}
	delete(b, SlotJump)
	res, ok := b.Get(SlotJump)
	if !ok || res.Source != "idle" {
		t.Fatalf("Get should fall back to idle, got %q ok=%v", res.Source, ok)
	}
	if res.FrameCount() != 1 {
		t.Fatalf("zero frames should count as one, got %d", res.FrameCount())
	}
	if _, ok := b.Get(SlotEnemy); ok {
		t.Fatalf("unbound enemy should report missing")
	}
}

type failingMatcher struct{}

func (failingMatcher) Match(Slot, Candidate) (bool, error) { return false, errors.New("boom") }

func TestMatcherErrorsFallBack(t *testing.T) {
	h := NewHeuristic(catalogFixture(), failingMatcher{}, nil)
	res, ok := h.Resolve(SlotIdle)
	if !ok || res.Source != "Hero Stand" {
		t.Fatalf("expected first member after matcher errors, got %q ok=%v", res.Source, ok)
	}
}

func TestScriptMatcher(t *testing.T) {
	src := []byte(`
text := import("text")
match := func(slot, name, file, category) {
	if slot == "idle" {
		return text.has_suffix(file, "_a.png")
	}
	return text.contains(text.to_lower(name), slot)
}
`)
	m, err := NewScriptMatcher(src)
	if err != nil {
		t.Fatalf("NewScriptMatcher: %v", err)
	}
	h := NewHeuristic([]Candidate{
		{Category: "character", Name: "first", File: "first.png", Frames: 1, Image: img()},
		{Category: "character", Name: "second", File: "second_a.png", Frames: 2, Image: img()},
		{Category: "character", Name: "Big RUN", File: "x.png", Frames: 3, Image: img()},
	}, m, nil)

	if res, _ := h.Resolve(SlotIdle); res.Source != "second" {
		t.Fatalf("expected script to pick second, got %q", res.Source)
	}
	if res, _ := h.Resolve(SlotRun); res.Source != "Big RUN" {
		t.Fatalf("expected script to pick Big RUN, got %q", res.Source)
	}
}

func TestScriptMatcherCompileError(t *testing.T) {
	if _, err := NewScriptMatcher([]byte("match := func(")); err == nil {
		t.Fatalf("expected compile error")
	}
}

func TestKeywordMatcherMatchesWordStarts(t *testing.T) {
	m := NewKeywordMatcher()
	cases := []struct {
		name string
		file string
		slot Slot
		want bool
	}{
		{"hero_hair_idle", "", SlotJump, false},
		{"stairs", "chair.png", SlotJump, false},
		{"fairy", "", SlotJump, false},
		{"hero airborne", "", SlotJump, true},
		{"", "sprites/heroJump.png", SlotJump, true},
		{"Knight Running", "", SlotRun, true},
		{"", "HERO_RUN.png", SlotRun, true},
		{"brunch", "", SlotRun, false},
	}
	for _, c := range cases {
		t.Run(c.name+c.file, func(t *testing.T) {
			got, err := m.Match(c.slot, Candidate{Category: "character", Name: c.name, File: c.file})
			if err != nil {
				t.Fatalf("Match: %v", err)
			}
			if got != c.want {
				t.Fatalf("Match(%s, %q, %q) = %v, want %v", c.slot, c.name, c.file, got, c.want)
			}
		})
	}
}

func TestJumpSlotSkipsSubstringLookalikes(t *testing.T) {
	h := NewHeuristic([]Candidate{
		{Category: "character", Name: "hero_hair_idle", Frames: 2, Image: img()},
		{Category: "character", Name: "hero_jump", Frames: 5, Image: img()},
	}, nil, nil)
	res, ok := h.Resolve(SlotJump)
	if !ok || res.Source != "hero_jump" {
		t.Fatalf("expected hero_jump, got %q ok=%v", res.Source, ok)
	}
}
