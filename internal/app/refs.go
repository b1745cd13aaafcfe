package app

import (
	"context"
	"strconv"
	"strings"

	"github.com/example/bestiary/internal/models"
	"github.com/example/bestiary/internal/ports/secondary"
)

// loadRef loads a record by reference: integer text is an identifier,
// anything else a name.
func loadRef(ctx context.Context, store secondary.TabularStore, table, ref string) (*models.RecordHandle, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return models.LoadByID(ctx, store, table, id)
	}
	return models.LoadByName(ctx, store, table, ref)
}

// quoteIdent quotes a table name taken from the store listing.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
