package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"sqltree/internal/sqltree"
)

func newFormatCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "format FILE",
		Short: "Print the SQL rendering of a tree document",
		Example: `  # Render a table reference with its temporal clause
  sqltree format orders.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := e.loader.Load(args[0])
			if err != nil {
				return err
			}
			sql := sqltree.Format(doc.Root)
			if getOutputFormat(cmd) == "json" {
				return printJSON(cmd.OutOrStdout(), map[string]string{
					"path": doc.Path,
					"kind": sqltree.Kind(doc.Root),
					"sql":  sql,
				})
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), sql)
			return nil
		},
	}
}

// ChildEntry describes one immediate child of a document's root.
type ChildEntry struct {
	Index    int    `json:"index"`
	Kind     string `json:"kind"`
	SQL      string `json:"sql"`
	Location string `json:"location,omitempty"`
}

func newChildrenCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "children FILE",
		Short: "List the immediate children of a tree document's root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := e.loader.Load(args[0])
			if err != nil {
				return err
			}

			entries := make([]ChildEntry, 0)
			for i, c := range doc.Root.Children() {
				if c == nil {
					continue
				}
				entry := ChildEntry{Index: i, Kind: sqltree.Kind(c), SQL: sqltree.Format(c)}
				if loc, ok := c.Location(); ok {
					entry.Location = loc.String()
				}
				entries = append(entries, entry)
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(cmd.OutOrStdout(), entries)
			}
			rows := make([][]string, 0, len(entries))
			for _, c := range entries {
				rows = append(rows, []string{strconv.Itoa(c.Index), c.Kind, c.SQL, c.Location})
			}
			printTable(cmd.OutOrStdout(), []string{"index", "kind", "sql", "location"}, rows)
			return nil
		},
	}
}
