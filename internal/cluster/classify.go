// Package cluster turns content facts into a styled diagram graph,
// nesting cluster containers by their containment relations.
package cluster

import (
	"relviz/internal/fact"
	"relviz/internal/model"
)

// Style fact object types with classification meaning.
const (
	TypeNode        = "node-type"
	TypeCluster     = "cluster-type"
	TypeEdge        = "edge-type"
	TypeContainment = "containment"
)

// Classification groups style-declared names by role and resolves
// their default attributes through the style fact model.
type Classification struct {
	NodeTypes    map[string]struct{}
	ClusterTypes map[string]struct{}
	EdgeTypes    map[string]struct{}
	Containments map[string]struct{}

	styles *model.Model
}

// Classify builds the style model from style facts and groups its
// object names into classification sets.
func Classify(styleFacts []fact.Fact, opts model.Options) (*Classification, error) {
	styles, err := model.Build(styleFacts, opts)
	if err != nil {
		return nil, err
	}
	c := &Classification{
		NodeTypes:    map[string]struct{}{},
		ClusterTypes: map[string]struct{}{},
		EdgeTypes:    map[string]struct{}{},
		Containments: map[string]struct{}{},
		styles:       styles,
	}
	for _, o := range styles.Objects {
		switch o.Type {
		case TypeNode:
			c.NodeTypes[o.Name] = struct{}{}
		case TypeCluster:
			c.ClusterTypes[o.Name] = struct{}{}
		case TypeEdge:
			c.EdgeTypes[o.Name] = struct{}{}
		case TypeContainment:
			c.Containments[o.Name] = struct{}{}
		}
	}
	return c, nil
}

// Style returns the effective style attributes declared for a type
// or relation name, empty when the name is unstyled.
func (c *Classification) Style(name string) fact.Attrs {
	return c.styles.Attrs(name)
}

func (c *Classification) isNodeType(name string) bool {
	_, ok := c.NodeTypes[name]
	return ok
}

func (c *Classification) isClusterType(name string) bool {
	_, ok := c.ClusterTypes[name]
	return ok
}

func (c *Classification) isEdgeType(name string) bool {
	_, ok := c.EdgeTypes[name]
	return ok
}

func (c *Classification) isContainment(name string) bool {
	_, ok := c.Containments[name]
	return ok
}
