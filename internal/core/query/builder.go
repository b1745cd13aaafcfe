package query

import (
	"strings"

	"github.com/example/bestiary/internal/core/errs"
	"github.com/example/bestiary/internal/core/schema"
)

// Statement is a compiled statement and its bound values, in placeholder order.
type Statement struct {
	Text string
	Args []any
}

// Builder compiles clause trees against the schema registry.
type Builder struct {
	coerce Coercer
}

// Option configures a Builder.
type Option func(*Builder)

// WithCoercer replaces the literal coercion policy.
func WithCoercer(c Coercer) Option {
	return func(b *Builder) { b.coerce = c }
}

// NewBuilder returns a Builder using LegacyCoerce unless overridden.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{coerce: LegacyCoerce}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Compile builds "SELECT cols FROM table [WHERE expr];". Root children are
// joined with combine; nested groups use their own operator and are
// parenthesized. A nil tree selects unconditionally.
func (b *Builder) Compile(table string, columns []string, tree *Group, combine Logic) (Statement, error) {
	if len(columns) == 0 {
		return Statement{}, errs.ErrNoColumnsSelected
	}
	tbl, ok := schema.Lookup(table)
	if !ok {
		return Statement{}, &errs.UnknownTableError{Table: table}
	}

	cols := make([]string, len(columns))
	for i, c := range columns {
		cols[i] = tbl.Column(strings.TrimSpace(c))
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(cols, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(tbl.Name)

	var args []any
	if tree != nil {
		fragments, err := b.fragments(tbl, tree.Children, &args)
		if err != nil {
			return Statement{}, err
		}
		if len(fragments) > 0 {
			sb.WriteString(" WHERE ")
			sb.WriteString(strings.Join(fragments, " "+string(combine)+" "))
		}
	}
	sb.WriteString(";")

	return Statement{Text: sb.String(), Args: args}, nil
}

func (b *Builder) fragments(tbl *schema.Table, nodes []Node, args *[]any) ([]string, error) {
	var out []string
	for _, n := range nodes {
		switch n := n.(type) {
		case *Leaf:
			frag, vals, err := b.leaf(tbl, n)
			if err != nil {
				return nil, err
			}
			if frag == "" {
				continue
			}
			out = append(out, frag)
			*args = append(*args, vals...)
		case *Group:
			inner, err := b.fragments(tbl, n.Children, args)
			if err != nil {
				return nil, err
			}
			if len(inner) == 0 {
				continue
			}
			out = append(out, "("+strings.Join(inner, " "+string(n.Operator)+" ")+")")
		}
	}
	return out, nil
}

// leaf returns an empty fragment for incomplete clauses.
func (b *Builder) leaf(tbl *schema.Table, l *Leaf) (string, []any, error) {
	if err := l.Validate(); err != nil {
		return "", nil, err
	}
	field := strings.TrimSpace(l.Field)
	if field == "" || l.Value == "" {
		return "", nil, nil
	}
	col := tbl.Column(field)

	if l.Operator == OpBetween {
		if *l.SecondValue == "" {
			return "", nil, nil
		}
		frag := col + " BETWEEN ? AND ?"
		if l.Negate {
			frag = "NOT (" + frag + ")"
		}
		return frag, []any{b.coerce(l.Value), b.coerce(*l.SecondValue)}, nil
	}

	frag := col + " " + string(l.Operator) + " ?"
	if l.Negate {
		frag = "NOT " + frag
	}
	return frag, []any{b.coerce(l.Value)}, nil
}
