package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Syntactic (fact language)
	SynExpectFact         Code = 1001
	SynExpectName         Code = 1002
	SynExpectNewline      Code = 1003
	SynExpectColon        Code = 1004
	SynExpectAttrValue    Code = 1005
	SynUnterminatedString Code = 1006
	SynUnterminatedLabel  Code = 1007

	// Fact model
	ModelCyclicInheritance         Code = 2001
	ModelInconsistentLinearization Code = 2002

	// Cluster graph
	GraphCyclicContainment Code = 3001
	GraphMultipleParent    Code = 3002
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown error",

	SynExpectFact:         "expected a fact declaration",
	SynExpectName:         "expected a name",
	SynExpectNewline:      "expected end of line",
	SynExpectColon:        "expected ':' after attribute name",
	SynExpectAttrValue:    "expected an attribute value",
	SynUnterminatedString: "unterminated quoted string",
	SynUnterminatedLabel:  "unterminated parenthetical label",

	ModelCyclicInheritance:         "cyclic inheritance",
	ModelInconsistentLinearization: "inconsistent hierarchy",

	GraphCyclicContainment: "circular containment",
	GraphMultipleParent:    "cluster has more than one parent",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("MDL%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("GPH%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
