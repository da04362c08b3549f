package model

import (
	"fmt"
	"strings"
)

// CyclicInheritanceError reports entities stuck on a generalization
// cycle, in the order they first appeared.
type CyclicInheritanceError struct {
	Names []string
}

func (e *CyclicInheritanceError) Error() string {
	return fmt.Sprintf("cyclic inheritance involving %s",
		strings.Join(e.Names, ", "))
}

// InconsistentLinearizationError reports an entity whose base
// orderings contradict each other, so no C3 merge order exists.
type InconsistentLinearizationError struct {
	Entity string
}

func (e *InconsistentLinearizationError) Error() string {
	return fmt.Sprintf("inconsistent hierarchy for %s: no valid linearization order", e.Entity)
}
