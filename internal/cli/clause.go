package cli

import (
	"fmt"
	"strings"

	"github.com/example/bestiary/internal/core/query"
)

// parseClause parses one --where expression:
//
//	Health >= 50
//	not Race = Dragon
//	Name like %fire%
//	Speed between 10 and 90
//
// Field and operator are separated by spaces; the value is the rest of the
// line and may contain spaces.
func parseClause(expr string) (*query.Leaf, error) {
	s := strings.TrimSpace(expr)
	negate := false
	if head, rest, ok := strings.Cut(s, " "); ok && strings.EqualFold(head, "not") {
		negate = true
		s = strings.TrimSpace(rest)
	}

	field, rest, ok := strings.Cut(s, " ")
	if !ok || field == "" {
		return nil, fmt.Errorf("invalid clause %q (want \"Field op value\")", expr)
	}
	opText, value, _ := strings.Cut(strings.TrimSpace(rest), " ")
	op, err := query.ParseOperator(opText)
	if err != nil {
		return nil, fmt.Errorf("invalid clause %q: %w", expr, err)
	}
	value = strings.TrimSpace(value)

	if op == query.OpBetween {
		low, high, err := splitBetween(value)
		if err != nil {
			return nil, fmt.Errorf("invalid clause %q: %w", expr, err)
		}
		return query.NewBetween(field, negate, low, high), nil
	}
	return query.NewLeaf(field, op, negate, value)
}

func splitBetween(value string) (string, string, error) {
	lower := strings.ToLower(value)
	if i := strings.Index(lower, " and "); i >= 0 {
		return strings.TrimSpace(value[:i]), strings.TrimSpace(value[i+len(" and "):]), nil
	}
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("BETWEEN needs two values")
	}
	return parts[0], parts[1], nil
}

// parseGroup parses a ';'-separated list of clauses into one group.
func parseGroup(op query.Logic, expr string) (*query.Group, error) {
	g := query.NewGroup(op)
	for _, part := range strings.Split(expr, ";") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		leaf, err := parseClause(part)
		if err != nil {
			return nil, err
		}
		g.Add(leaf)
	}
	if len(g.Children) == 0 {
		return nil, fmt.Errorf("empty clause group %q", expr)
	}
	return g, nil
}
