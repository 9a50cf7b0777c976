package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	pfqcore "github.com/pfq-lang/pfqcore"
)

// nodeSpec is the YAML form of one functional descriptor. Index fields are
// pointers so "absent" and "zero" stay distinguishable; an absent index
// means none.
type nodeSpec struct {
	Symbol  string  `yaml:"symbol"`
	Kind    string  `yaml:"kind"`
	Nargs   int     `yaml:"nargs"`
	IntArg  *int64  `yaml:"int_arg"`
	UintArg *uint64 `yaml:"uint_arg"`
	StrArg  *string `yaml:"str_arg"`
	Fun     *int    `yaml:"fun"`
	Left    *int    `yaml:"left"`
	Right   *int    `yaml:"right"`
}

type graphSpec struct {
	EntryPoint int        `yaml:"entry_point"`
	Nodes      []nodeSpec `yaml:"nodes"`
}

func kindFromString(s string) (pfqcore.NodeKind, error) {
	switch s {
	case "monadic":
		return pfqcore.KindMonadic, nil
	case "higher-order":
		return pfqcore.KindHigherOrder, nil
	case "predicate":
		return pfqcore.KindPredicate, nil
	case "combinator":
		return pfqcore.KindCombinator, nil
	case "property":
		return pfqcore.KindProperty, nil
	default:
		return 0, fmt.Errorf("unknown node kind %q", s)
	}
}

func (n nodeSpec) arg() []byte {
	switch {
	case n.IntArg != nil:
		return pfqcore.IntArg(*n.IntArg)
	case n.UintArg != nil:
		return pfqcore.Uint64Arg(*n.UintArg)
	case n.StrArg != nil:
		return pfqcore.StringArg(*n.StrArg)
	default:
		return nil
	}
}

func indexOr(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}

// loadGraph reads a YAML pipeline description and assembles the
// computation descriptor.
func loadGraph(path string) (*pfqcore.ComputationDescr, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var spec graphSpec
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(spec.Nodes) == 0 {
		return nil, fmt.Errorf("%s: graph has no nodes", path)
	}

	nodes := make([]pfqcore.FunctionalDescr, 0, len(spec.Nodes))
	for i, n := range spec.Nodes {
		kind, err := kindFromString(n.Kind)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		arg := n.arg()
		nodes = append(nodes, pfqcore.FunctionalDescr{
			Symbol:  n.Symbol,
			Kind:    kind,
			Nargs:   n.Nargs,
			ArgPtr:  arg,
			ArgSize: len(arg),
			Fun:     indexOr(n.Fun, pfqcore.NoIndex),
			Left:    indexOr(n.Left, pfqcore.NoIndex),
			Right:   indexOr(n.Right, pfqcore.NoIndex),
		})
	}
	return pfqcore.NewComputationDescr(spec.EntryPoint, nodes...), nil
}
