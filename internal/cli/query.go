package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/bestiary/internal/core/query"
	"github.com/example/bestiary/internal/core/schema"
	"github.com/example/bestiary/internal/ports/primary"
	"github.com/example/bestiary/internal/wire"
)

// QueryCmd returns the query command
func QueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <table>",
		Short: "Run a filtered query against a table",
		Long: `Select columns from a table, filtered by clauses.

Each --where adds one clause; --any and --all add a parenthesized group of
';'-separated clauses. Top-level clauses are joined with AND, or with OR when
--or is given. Fields are logical names (Health, Race) or physical columns.

Examples:
  bestiary query creature --columns Name,Health --where "Health >= 50"
  bestiary query creature --where "not Race = Dragon" --where "Speed between 10 and 90"
  bestiary query creature --any "Race = Dragon; Race = Golem" --where "Tier > 1"
  bestiary query spell --columns Name --where "Name like %bolt%" --sql`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ready(); err != nil {
				return err
			}
			req, err := buildQueryRequest(cmd, args[0])
			if err != nil {
				return err
			}
			showSQL, _ := cmd.Flags().GetBool("sql")
			_, err = wire.QueryAdapter().Run(NewContext(), req, showSQL)
			return err
		},
	}
	cmd.Flags().StringSliceP("columns", "c", nil, "Columns to select (default: every field of a known table)")
	cmd.Flags().StringArray("where", nil, "Clause \"Field op value\" (repeatable)")
	cmd.Flags().StringArray("any", nil, "Group of ';'-separated clauses joined with OR (repeatable)")
	cmd.Flags().StringArray("all", nil, "Group of ';'-separated clauses joined with AND (repeatable)")
	cmd.Flags().Bool("or", false, "Join top-level clauses with OR instead of AND")
	cmd.Flags().Bool("sql", false, "Print the compiled statement")
	return cmd
}

func buildQueryRequest(cmd *cobra.Command, table string) (primary.QueryRequest, error) {
	columns, _ := cmd.Flags().GetStringSlice("columns")
	wheres, _ := cmd.Flags().GetStringArray("where")
	anys, _ := cmd.Flags().GetStringArray("any")
	alls, _ := cmd.Flags().GetStringArray("all")
	useOr, _ := cmd.Flags().GetBool("or")

	if len(columns) == 0 {
		if tbl, ok := schema.Lookup(table); ok {
			columns = tbl.LogicalNames()
		}
	}

	combine := query.And
	if useOr {
		combine = query.Or
	}
	root := query.NewGroup(combine)

	for _, w := range wheres {
		leaf, err := parseClause(w)
		if err != nil {
			return primary.QueryRequest{}, err
		}
		root.Add(leaf)
	}
	for _, expr := range anys {
		g, err := parseGroup(query.Or, expr)
		if err != nil {
			return primary.QueryRequest{}, err
		}
		root.Add(g)
	}
	for _, expr := range alls {
		g, err := parseGroup(query.And, expr)
		if err != nil {
			return primary.QueryRequest{}, err
		}
		root.Add(g)
	}

	return primary.QueryRequest{
		Table:   table,
		Columns: columns,
		Where:   root,
		Combine: combine,
	}, nil
}

// TablesCmd returns the tables command
func TablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List known and loaded tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ready(); err != nil {
				return err
			}
			return wire.QueryAdapter().Tables(NewContext())
		},
	}
}
