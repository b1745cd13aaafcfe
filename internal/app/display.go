package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/example/bestiary/internal/core/delimited"
	"github.com/example/bestiary/internal/core/schema"
	"github.com/example/bestiary/internal/ports/secondary"
)

// NotAvailable is shown when a join finds no target row.
const NotAvailable = "N/A"

// joinResolver resolves display joins, caching lookups for one request.
type joinResolver struct {
	store  secondary.TabularStore
	logger *zap.Logger
	cache  map[string]string
}

func newJoinResolver(store secondary.TabularStore, logger *zap.Logger) *joinResolver {
	return &joinResolver{store: store, logger: logger, cache: make(map[string]string)}
}

// resolve returns "Name: Description" for the join target matching value,
// or NotAvailable when there is none.
func (r *joinResolver) resolve(ctx context.Context, j schema.Join, value any) string {
	if value == nil {
		return NotAvailable
	}
	key := j.Target + "\x00" + delimited.FormatValue(value)
	if v, ok := r.cache[key]; ok {
		return v
	}

	stmt := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ? LIMIT 1;",
		strings.Join(j.Returns, ", "), j.Target, j.TargetColumn)
	out := NotAvailable
	rs, err := r.store.Execute(ctx, stmt, value)
	switch {
	case err != nil:
		r.logger.Debug("join lookup failed", zap.String("target", j.Target), zap.Error(err))
	case rs.Len() > 0:
		parts := make([]string, len(rs.Rows[0]))
		for i, v := range rs.Rows[0] {
			parts[i] = delimited.FormatValue(v)
		}
		out = strings.Join(parts, ": ")
	}

	r.cache[key] = out
	return out
}
