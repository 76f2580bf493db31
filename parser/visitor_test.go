package parser

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// termCounter handles System and Equation only.
type termCounter struct {
	BaseVisitor[int]
}

func (c termCounter) VisitSystem(s *System) (int, error) {
	total := 0
	for i := range s.Equations {
		n, err := Walk[int](c, &s.Equations[i])
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func (c termCounter) VisitEquation(eq *Equation) (int, error) {
	return len(eq.Terms), nil
}

type termNames struct {
	BaseVisitor[string]
}

func (termNames) VisitTerm(t Term) (string, error) {
	return fmt.Sprintf("%g%s", t.Coefficient, t.Name()), nil
}

// foreignNode satisfies Node through embedding but is not one of the AST
// types Walk knows about.
type foreignNode struct {
	Term
}

func TestWalkDispatch(t *testing.T) {
	sys, err := Parse([]byte("x + y = 1\n2x - y + z = 3"))
	if err != nil {
		t.Fatal(err)
	}

	n, err := Walk[int](termCounter{}, sys)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if n != 5 {
		t.Errorf("counted %d terms, want 5", n)
	}

	name, err := Walk[string](termNames{}, sys.Equations[1].Terms[1])
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if name != "-1y" {
		t.Errorf("got %q, want -1y", name)
	}
}

func TestWalkDefaultHandler(t *testing.T) {
	sys, err := Parse([]byte("x = 1"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		run  func() error
	}{
		{"term on counter", func() error {
			_, err := Walk[int](termCounter{}, sys.Equations[0].Terms[0])
			return err
		}},
		{"system on names", func() error {
			_, err := Walk[string](termNames{}, sys)
			return err
		}},
		{"equation on names", func() error {
			_, err := Walk[string](termNames{}, &sys.Equations[0])
			return err
		}},
		{"foreign node", func() error {
			_, err := Walk[int](termCounter{}, foreignNode{})
			return err
		}},
		{"nil node", func() error {
			_, err := Walk[int](termCounter{}, nil)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			var unsupported *UnsupportedNodeError
			if !errors.As(err, &unsupported) {
				t.Fatalf("got %v, want *UnsupportedNodeError", err)
			}
			if !strings.Contains(err.Error(), "unsupported node kind") {
				t.Errorf("message %q", err)
			}
		})
	}
}

func TestNodeKinds(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{&System{}, "System"},
		{&Equation{}, "Equation"},
		{Term{}, "Term"},
	}
	for _, tt := range tests {
		if got := tt.node.Kind().String(); got != tt.want {
			t.Errorf("%T: got %s, want %s", tt.node, got, tt.want)
		}
	}
}
