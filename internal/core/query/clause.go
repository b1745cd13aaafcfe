// Package query compiles clause trees into parameterized SELECT statements.
// It is pure: nothing here touches a store.
package query

import (
	"fmt"
	"strings"

	"github.com/example/bestiary/internal/core/errs"
)

// Operator is a comparison operator allowed on a leaf.
type Operator string

const (
	OpEq      Operator = "="
	OpNe      Operator = "!="
	OpLt      Operator = "<"
	OpGt      Operator = ">"
	OpLe      Operator = "<="
	OpGe      Operator = ">="
	OpLike    Operator = "LIKE"
	OpBetween Operator = "BETWEEN"
)

var operators = map[Operator]bool{
	OpEq: true, OpNe: true, OpLt: true, OpGt: true,
	OpLe: true, OpGe: true, OpLike: true, OpBetween: true,
}

// ParseOperator accepts the operator spellings of the query form, including
// "<>" for inequality and lowercase "like"/"between".
func ParseOperator(s string) (Operator, error) {
	s = strings.TrimSpace(s)
	if s == "<>" {
		return OpNe, nil
	}
	op := Operator(strings.ToUpper(s))
	if !operators[op] {
		return "", fmt.Errorf("unsupported operator %q", s)
	}
	return op, nil
}

// Logic combines sibling fragments.
type Logic string

const (
	And Logic = "AND"
	Or  Logic = "OR"
)

// ParseLogic parses AND/OR case-insensitively.
func ParseLogic(s string) (Logic, error) {
	switch Logic(strings.ToUpper(strings.TrimSpace(s))) {
	case And:
		return And, nil
	case Or:
		return Or, nil
	}
	return "", fmt.Errorf("unsupported logic operator %q (want AND or OR)", s)
}

// Node is either a *Leaf or a *Group.
type Node interface {
	node()
}

// Leaf is a single predicate.
type Leaf struct {
	Field    string
	Operator Operator
	Negate   bool
	Value    string
	// SecondValue is the upper bound of a BETWEEN; nil for other operators.
	SecondValue *string
}

func (*Leaf) node() {}

// NewLeaf builds a non-BETWEEN leaf.
func NewLeaf(field string, op Operator, negate bool, value string) (*Leaf, error) {
	l := &Leaf{Field: field, Operator: op, Negate: negate, Value: value}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// NewBetween builds a BETWEEN leaf with both bounds.
func NewBetween(field string, negate bool, low, high string) *Leaf {
	return &Leaf{Field: field, Operator: OpBetween, Negate: negate, Value: low, SecondValue: &high}
}

// Validate checks the shape of the leaf. Empty field or value is not an
// error; such leaves are dropped at compile time.
func (l *Leaf) Validate() error {
	if !operators[l.Operator] {
		return &errs.InvalidClauseError{Field: l.Field, Reason: fmt.Sprintf("unsupported operator %q", l.Operator)}
	}
	if l.Operator == OpBetween && l.SecondValue == nil {
		return &errs.InvalidClauseError{Field: l.Field, Reason: "BETWEEN requires a second value"}
	}
	return nil
}

// Group combines children with one operator.
type Group struct {
	Operator Logic
	Children []Node
}

func (*Group) node() {}

// NewGroup returns a group over the given children.
func NewGroup(op Logic, children ...Node) *Group {
	return &Group{Operator: op, Children: children}
}

// Add appends a child and returns the group.
func (g *Group) Add(n Node) *Group {
	g.Children = append(g.Children, n)
	return g
}
