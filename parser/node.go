package parser

import "sort"

type NodeKind int

const (
	KindSystem NodeKind = iota
	KindEquation
	KindTerm
)

var nodeKindNames = map[NodeKind]string{
	KindSystem:   "System",
	KindEquation: "Equation",
	KindTerm:     "Term",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Node is implemented by *System, *Equation and Term only.
type Node interface {
	Kind() NodeKind
	node()
}

// Term is one coefficient*variable monomial on the left-hand side.
type Term struct {
	Coefficient float64
	Variable    byte
}

// Equation is Σ Terms = Value. Pos is the position of its first token.
type Equation struct {
	Terms []Term
	Value float64
	Pos   Position
}

type System struct {
	Equations []Equation
}

func (Term) Kind() NodeKind      { return KindTerm }
func (*Equation) Kind() NodeKind { return KindEquation }
func (*System) Kind() NodeKind   { return KindSystem }

func (Term) node()      {}
func (*Equation) node() {}
func (*System) node()   {}

// Name returns the variable as a string.
func (t Term) Name() string {
	return string(t.Variable)
}

// Negate returns a copy of t with the opposite sign.
func (t Term) Negate() Term {
	return Term{Coefficient: -t.Coefficient, Variable: t.Variable}
}

// Variables returns the distinct variable names of the system in sorted
// order. The order defines matrix columns and solution keys.
func (s *System) Variables() []string {
	seen := make(map[byte]bool)
	var vars []string
	for _, eq := range s.Equations {
		for _, t := range eq.Terms {
			if !seen[t.Variable] {
				seen[t.Variable] = true
				vars = append(vars, t.Name())
			}
		}
	}
	sort.Strings(vars)
	return vars
}

// Equal reports whether two systems have the same equations, ignoring
// source positions.
func (s *System) Equal(other *System) bool {
	if s == nil || other == nil {
		return s == other
	}
	if len(s.Equations) != len(other.Equations) {
		return false
	}
	for i := range s.Equations {
		a, b := s.Equations[i], other.Equations[i]
		if a.Value != b.Value || len(a.Terms) != len(b.Terms) {
			return false
		}
		for j := range a.Terms {
			if a.Terms[j] != b.Terms[j] {
				return false
			}
		}
	}
	return true
}
