package binding

import (
	"log/slog"

	"golang.org/x/text/cases"
)

// Heuristic resolves slots from a fixed candidate list: first a matcher
// hit inside the slot's category, then the first category member for
// slots that allow it, and for run and jump the idle binding.
type Heuristic struct {
	candidates []Candidate
	matcher    Matcher
	fold       cases.Caser
	logger     *slog.Logger
}

// NewHeuristic builds a resolver. A nil matcher uses NewKeywordMatcher;
// a nil logger discards match errors.
func NewHeuristic(candidates []Candidate, matcher Matcher, logger *slog.Logger) *Heuristic {
	if matcher == nil {
		matcher = NewKeywordMatcher()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Heuristic{
		candidates: append([]Candidate(nil), candidates...),
		matcher:    matcher,
		fold:       cases.Fold(),
		logger:     logger,
	}
}

func (h *Heuristic) Resolve(slot Slot) (Resolved, bool) {
	rule, ok := rules[slot]
	if !ok {
		return Resolved{}, false
	}
	category := h.fold.String(rule.category)

	var first *Candidate
	for i := range h.candidates {
		c := &h.candidates[i]
		if h.fold.String(c.Category) != category || c.Image == nil {
			continue
		}
		if first == nil {
			first = c
		}
		hit, err := h.matcher.Match(slot, *c)
		if err != nil {
			h.logger.Warn("binding match failed", "slot", string(slot), "candidate", c.Name, "error", err)
			continue
		}
		if hit {
			return resolvedFrom(*c), true
		}
	}

	if rule.firstMember && first != nil {
		return resolvedFrom(*first), true
	}
	if slot == SlotRun || slot == SlotJump {
		return h.Resolve(SlotIdle)
	}
	return Resolved{}, false
}

func resolvedFrom(c Candidate) Resolved {
	src := c.Name
	if src == "" {
		src = c.File
	}
	return Resolved{Image: c.Image, Frames: c.Frames, Source: src}
}
