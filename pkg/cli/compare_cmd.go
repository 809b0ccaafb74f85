package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"sqltree/internal/sqltree"
	"sqltree/internal/sqltree/treedoc"
)

func formatHash(h uint64) string {
	return fmt.Sprintf("%016x", h)
}

// HashEntry is the structural hash of one document.
type HashEntry struct {
	Path string `json:"path"`
	Kind string `json:"kind"`
	Hash string `json:"hash"`
}

func newHashCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "hash FILE...",
		Short: "Print the structural hash of each tree document",
		Long: `Prints a hash that ignores source locations. For table_version nodes the
AS OF / BEFORE mode is not hashed either, matching structural equality.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := e.loader.LoadAll(cmd.Context(), args)
			if err != nil {
				return err
			}
			entries := make([]HashEntry, len(docs))
			for i, d := range docs {
				entries[i] = HashEntry{Path: d.Path, Kind: sqltree.Kind(d.Root), Hash: formatHash(sqltree.Hash(d.Root))}
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(cmd.OutOrStdout(), entries)
			}
			rows := make([][]string, 0, len(entries))
			for _, h := range entries {
				rows = append(rows, []string{h.Hash, h.Kind, h.Path})
			}
			printTable(cmd.OutOrStdout(), []string{"hash", "kind", "path"}, rows)
			return nil
		},
	}
}

func newEqualCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "equal A B",
		Short: "Report whether two tree documents are structurally equal",
		Example: `  # Exit status is 1 when the trees differ
  sqltree equal before.yaml after.yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := e.loader.LoadAll(cmd.Context(), args)
			if err != nil {
				return err
			}
			a, b := docs[0], docs[1]
			equal := sqltree.Equal(a.Root, b.Root)
			e.logger.Debug("compared trees", "a", a.Path, "b", b.Path, "equal", equal)

			if getOutputFormat(cmd) == "json" {
				if err := printJSON(cmd.OutOrStdout(), map[string]interface{}{
					"equal":  equal,
					"hash_a": formatHash(sqltree.Hash(a.Root)),
					"hash_b": formatHash(sqltree.Hash(b.Root)),
				}); err != nil {
					return err
				}
			} else if equal {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "equal")
			} else {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "not equal")
			}
			if !equal {
				return errNotEqual
			}
			return nil
		},
	}
}

// DedupGroup lists documents that are structurally equal to each other.
type DedupGroup struct {
	Group int      `json:"group"`
	Hash  string   `json:"hash"`
	Paths []string `json:"paths"`
}

func newDedupCmd(e *env) *cobra.Command {
	var duplicatesOnly bool

	cmd := &cobra.Command{
		Use:   "dedup FILE...",
		Short: "Group tree documents by structural equality",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := e.loader.LoadAll(cmd.Context(), args)
			if err != nil {
				return err
			}

			var groups []DedupGroup
			for _, g := range treedoc.GroupByStructure(docs) {
				if duplicatesOnly && len(g.Docs) < 2 {
					continue
				}
				dg := DedupGroup{Group: len(groups) + 1, Hash: formatHash(g.Hash)}
				for _, d := range g.Docs {
					dg.Paths = append(dg.Paths, d.Path)
				}
				groups = append(groups, dg)
			}
			e.logger.Info("dedup finished", "documents", len(docs), "groups", len(groups))

			if getOutputFormat(cmd) == "json" {
				if groups == nil {
					groups = []DedupGroup{}
				}
				return printJSON(cmd.OutOrStdout(), groups)
			}
			var rows [][]string
			for _, g := range groups {
				for _, p := range g.Paths {
					rows = append(rows, []string{strconv.Itoa(g.Group), g.Hash, p})
				}
			}
			printTable(cmd.OutOrStdout(), []string{"group", "hash", "path"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&duplicatesOnly, "duplicates-only", false, "Only show groups with more than one document")
	return cmd
}
