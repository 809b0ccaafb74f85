package architecture_test

import (
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const modulePath = "sqltree"

type layerRule struct {
	sourcePrefix string
	forbidden    []string
	hint         string
}

// architectureRules is matched in order; the first rule whose prefix covers a
// package applies, so nested packages come before their parents.
var architectureRules = []layerRule{
	{
		sourcePrefix: modulePath + "/internal/sqltree/treedoc",
		forbidden: []string{
			modulePath + "/internal/config",
			modulePath + "/pkg",
			modulePath + "/cmd",
		},
		hint: "treedoc may only import the node model",
	},
	{
		sourcePrefix: modulePath + "/internal/sqltree",
		forbidden: []string{
			modulePath + "/internal/sqltree/treedoc",
			modulePath + "/internal/config",
			modulePath + "/pkg",
			modulePath + "/cmd",
		},
		hint: "the node model imports nothing from this module",
	},
	{
		sourcePrefix: modulePath + "/internal/config",
		forbidden: []string{
			modulePath + "/internal/sqltree",
			modulePath + "/pkg",
			modulePath + "/cmd",
		},
		hint: "config is a leaf package",
	},
	{
		sourcePrefix: modulePath + "/internal/architecture",
		forbidden: []string{
			modulePath + "/internal",
			modulePath + "/pkg",
			modulePath + "/cmd",
		},
		hint: "architecture tests inspect sources, never import them",
	},
	{
		sourcePrefix: modulePath + "/pkg/cli",
		forbidden: []string{
			modulePath + "/cmd",
		},
		hint: "cli is imported by cmd, not the other way round",
	},
	{
		sourcePrefix: modulePath + "/cmd",
		forbidden: []string{
			modulePath + "/internal",
		},
		hint: "binaries go through pkg/cli",
	},
}

// collectGoFiles returns every .go file under root, skipping hidden and
// underscore-prefixed directories and testdata.
func collectGoFiles(root string) ([]string, error) {
	files := make([]string, 0)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") || name == "testdata") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".go") {
			files = append(files, filepath.ToSlash(path))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func repoRootDir() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return "."
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}

func findRule(sourcePkg string) (layerRule, bool) {
	for _, rule := range architectureRules {
		if hasPathPrefix(sourcePkg, rule.sourcePrefix) {
			return rule, true
		}
	}
	return layerRule{}, false
}

func matchingForbiddenPrefix(importPath string, forbidden []string) string {
	for _, prefix := range forbidden {
		if hasPathPrefix(importPath, prefix) {
			return prefix
		}
	}
	return ""
}

func hasPathPrefix(value string, prefix string) bool {
	return value == prefix || strings.HasPrefix(value, prefix+"/")
}

// packageImportPath maps a file to the import path of its package.
func packageImportPath(file string) string {
	dir := filepath.Dir(relToRepoRoot(file))
	if dir == "." {
		return modulePath
	}
	return modulePath + "/" + dir
}

func isTestFile(path string) bool {
	return strings.HasSuffix(filepath.Base(path), "_test.go")
}

func parseImports(t *testing.T, file string) []string {
	t.Helper()

	fset := token.NewFileSet()
	parsed, err := parser.ParseFile(fset, file, nil, parser.ImportsOnly)
	require.NoErrorf(t, err, "parse imports for %s", file)

	imports := make([]string, 0, len(parsed.Imports))
	for _, imp := range parsed.Imports {
		imports = append(imports, strings.Trim(imp.Path.Value, "\""))
	}
	return imports
}

func relToRepoRoot(path string) string {
	rel, err := filepath.Rel(repoRootDir(), path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
