// Package driver wires the parse, model and graph stages together
// for the CLI and the HTTP front end. Each Session owns its own
// FileSet and diagnostic Bag; nothing is shared between sessions.
package driver

import (
	"relviz/internal/cluster"
	"relviz/internal/diag"
	"relviz/internal/dot"
	"relviz/internal/fact"
	"relviz/internal/model"
	"relviz/internal/parser"
	"relviz/internal/source"
	"relviz/internal/style"
)

type Session struct {
	FileSet *source.FileSet
	Bag     *diag.Bag
}

func NewSession(maxDiagnostics int) *Session {
	return &Session{
		FileSet: source.NewFileSet(),
		Bag:     diag.NewBag(maxDiagnostics),
	}
}

func (s *Session) reporter() diag.Reporter {
	return &diag.BagReporter{Bag: s.Bag}
}

// ParseFile loads and parses a fact file.
func (s *Session) ParseFile(path string) ([]fact.Fact, error) {
	id, err := s.FileSet.Load(path)
	if err != nil {
		return nil, err
	}
	return parser.ParseFacts(s.FileSet.Get(id), parser.Options{Reporter: s.reporter()})
}

// ParseText parses in-memory fact text. A trailing newline is
// appended so front-end input missing its final terminator still
// parses, matching the file loaders.
func (s *Session) ParseText(name, text string) ([]fact.Fact, error) {
	id := s.FileSet.AddVirtual(name, []byte(text+"\n"))
	return parser.ParseFacts(s.FileSet.Get(id), parser.Options{Reporter: s.reporter()})
}

// StyleFacts assembles the style fact sequence: the embedded default
// style when useDefault is set, then the user style file when given.
func (s *Session) StyleFacts(useDefault bool, stylePath string) ([]fact.Fact, error) {
	var facts []fact.Fact
	if useDefault {
		parsed, err := s.ParseText("default.style", style.Default())
		if err != nil {
			return nil, err
		}
		facts = parsed
	}
	if stylePath != "" {
		text, err := style.Load(stylePath)
		if err != nil {
			return nil, err
		}
		parsed, err := s.ParseText(stylePath, text)
		if err != nil {
			return nil, err
		}
		facts = append(facts, parsed...)
	}
	return facts, nil
}

// Model builds the fact model over a fact sequence.
func (s *Session) Model(facts []fact.Fact) (*model.Model, error) {
	return model.Build(facts, model.Options{Reporter: s.reporter()})
}

// BuildGraph classifies the style facts and composes the diagram
// graph for the content facts.
func (s *Session) BuildGraph(styleFacts, contentFacts []fact.Fact) (*dot.Graph, error) {
	class, err := cluster.Classify(styleFacts, model.Options{Reporter: s.reporter()})
	if err != nil {
		return nil, err
	}
	return cluster.Build(contentFacts, class, cluster.Options{Reporter: s.reporter()})
}

// Check runs the full validation pipeline over already-parsed
// content facts: fact model, then cluster graph. On success it
// returns the content model.
func (s *Session) Check(styleFacts, contentFacts []fact.Fact) (*model.Model, error) {
	m, err := s.Model(contentFacts)
	if err != nil {
		return nil, err
	}
	if _, err := s.BuildGraph(styleFacts, contentFacts); err != nil {
		return nil, err
	}
	return m, nil
}
