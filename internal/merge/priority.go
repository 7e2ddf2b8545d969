// Package merge computes the single merged symbol table out of per-module
// symbol sets, under explicit precedence rules.
package merge

import "fmt"

// BadPrioritySpecError reports a priority specification of an unsupported
// shape. It is raised before any module is loaded, so a bad specification
// never has partial effect.
type BadPrioritySpecError struct {
	Spec interface{}
}

func (e *BadPrioritySpecError) Error() string {
	return fmt.Sprintf("prioritized must be a []string or a map[string]int, got %T", e.Spec)
}

// ResolvePriorities turns a priority specification into a total priority
// mapping. The specification is either nil (no boosts), a []string of modules
// boosted to priority 1, or an explicit map[string]int. Modules absent from
// the result default to priority 0 at merge time; negative priorities are
// valid and mean "prefer others over this module".
func ResolvePriorities(spec interface{}) (map[string]int, error) {
	switch spec := spec.(type) {
	case nil:
		return map[string]int{}, nil
	case []string:
		priorities := make(map[string]int, len(spec))
		for _, module := range spec {
			priorities[module] = 1
		}
		return priorities, nil
	case map[string]int:
		priorities := make(map[string]int, len(spec))
		for module, priority := range spec {
			priorities[module] = priority
		}
		return priorities, nil
	default:
		return nil, &BadPrioritySpecError{Spec: spec}
	}
}
