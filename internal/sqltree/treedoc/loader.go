package treedoc

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"sqltree/internal/sqltree"
)

// Document is a decoded tree together with where it came from.
type Document struct {
	Path string
	Root sqltree.Node
}

// Loader reads tree documents from disk.
type Loader struct {
	logger *slog.Logger
	limit  int
}

// NewLoader creates a Loader. A nil logger falls back to slog.Default().
// limit bounds concurrent reads in LoadAll; values below 1 mean 8.
func NewLoader(logger *slog.Logger, limit int) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if limit < 1 {
		limit = 8
	}
	return &Loader{logger: logger, limit: limit}
}

// Load reads and decodes one file.
func (l *Loader) Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	root, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	l.logger.Debug("tree document loaded", "path", path, "kind", sqltree.Kind(root), "nodes", sqltree.CountNodes(root))
	return &Document{Path: path, Root: root}, nil
}

// LoadAll loads every path concurrently. Results keep the order of paths.
// The first failure cancels the remaining reads and is returned.
func (l *Loader) LoadAll(ctx context.Context, paths []string) ([]*Document, error) {
	docs := make([]*Document, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.limit) // bounded parallelism

	for i := range paths {
		i := i
		path := paths[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := l.Load(path)
			if err != nil {
				l.logger.Warn("tree document failed to load", "path", path, "error", err)
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// Group is a set of structurally equal documents.
type Group struct {
	Hash uint64
	Docs []*Document
}

// GroupByStructure buckets documents by structural equality, in order of
// first appearance. Hash picks the bucket; Equal confirms membership so a
// hash collision never merges different trees.
func GroupByStructure(docs []*Document) []Group {
	var groups []Group
	byHash := make(map[uint64][]int)

	for _, d := range docs {
		h := sqltree.Hash(d.Root)
		placed := false
		for _, gi := range byHash[h] {
			if sqltree.Equal(groups[gi].Docs[0].Root, d.Root) {
				groups[gi].Docs = append(groups[gi].Docs, d)
				placed = true
				break
			}
		}
		if !placed {
			byHash[h] = append(byHash[h], len(groups))
			groups = append(groups, Group{Hash: h, Docs: []*Document{d}})
		}
	}
	return groups
}
