package binding

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// scriptDispatch calls the user's match function with the candidate.
const scriptDispatch = `
__result = match(__slot, __name, __file, __category)
`

// ScriptMatcher delegates matching to a tengo script that defines
//
//	match := func(slot, name, file, category) { return bool }
//
// The script is compiled once and re-run per candidate.
type ScriptMatcher struct {
	compiled *tengo.Compiled
}

func NewScriptMatcher(src []byte) (*ScriptMatcher, error) {
	script := tengo.NewScript(append(append([]byte(nil), src...), []byte("\n"+scriptDispatch)...))
	for _, name := range []string{"__slot", "__name", "__file", "__category"} {
		if err := script.Add(name, ""); err != nil {
			return nil, fmt.Errorf("binding: script add %s: %w", name, err)
		}
	}
	if err := script.Add("__result", false); err != nil {
		return nil, fmt.Errorf("binding: script add __result: %w", err)
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("binding: compile script: %w", err)
	}
	return &ScriptMatcher{compiled: compiled}, nil
}

func (m *ScriptMatcher) Match(slot Slot, c Candidate) (bool, error) {
	vars := map[string]any{
		"__slot":     string(slot),
		"__name":     c.Name,
		"__file":     c.File,
		"__category": c.Category,
		"__result":   false,
	}
	for k, v := range vars {
		if err := m.compiled.Set(k, v); err != nil {
			return false, err
		}
	}
	if err := m.compiled.Run(); err != nil {
		return false, err
	}
	return m.compiled.Get("__result").Bool(), nil
}
