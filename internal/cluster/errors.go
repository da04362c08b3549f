package cluster

import (
	"fmt"
	"strings"
)

// CyclicContainmentError reports a containment cycle. Path walks the
// cycle from its first cluster back to itself.
type CyclicContainmentError struct {
	Path []string
}

func (e *CyclicContainmentError) Error() string {
	return fmt.Sprintf("circular containment: %s", strings.Join(e.Path, " in "))
}

// MultipleParentError reports a cluster directly contained in more
// than one parent after transitive reduction.
type MultipleParentError struct {
	Cluster string
	Parents []string
}

func (e *MultipleParentError) Error() string {
	return fmt.Sprintf("cluster %s in more than one parent: %s",
		e.Cluster, strings.Join(e.Parents, ", "))
}
