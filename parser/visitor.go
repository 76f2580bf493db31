package parser

// Visitor has one handler per node kind. Implementations embed BaseVisitor
// and override the handlers for the kinds they support.
type Visitor[R any] interface {
	VisitSystem(*System) (R, error)
	VisitEquation(*Equation) (R, error)
	VisitTerm(Term) (R, error)
}

// Walk dispatches n to the handler of v for its kind.
func Walk[R any](v Visitor[R], n Node) (R, error) {
	switch n := n.(type) {
	case *System:
		return v.VisitSystem(n)
	case *Equation:
		return v.VisitEquation(n)
	case Term:
		return v.VisitTerm(n)
	default:
		var zero R
		return zero, &UnsupportedNodeError{Node: n}
	}
}

// BaseVisitor is the default handler: every kind is unsupported.
type BaseVisitor[R any] struct{}

func (BaseVisitor[R]) VisitSystem(n *System) (R, error) {
	var zero R
	return zero, &UnsupportedNodeError{Node: n}
}

func (BaseVisitor[R]) VisitEquation(n *Equation) (R, error) {
	var zero R
	return zero, &UnsupportedNodeError{Node: n}
}

func (BaseVisitor[R]) VisitTerm(n Term) (R, error) {
	var zero R
	return zero, &UnsupportedNodeError{Node: n}
}
