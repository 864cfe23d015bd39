// Package filetree reconstructs a sorted directory forest from the flat,
// unordered path list a snapshot file listing returns. Listings may or may
// not contain explicit entries for intermediate directories; the builder
// synthesizes whatever is missing.
package filetree

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/glare-project/glare/pkg/model"
)

// Build turns entries into a sorted forest. For each entry the path segments
// are walked left to right, creating or reusing a node keyed by the
// cumulative prefix at each depth. Non-terminal segments are forced to
// directories regardless of what was previously recorded; the terminal
// segment's kind and size come from the entry, last write wins. Reprocessing
// the same path is idempotent: a node links into its parent exactly once.
func Build(entries []model.FileEntry) []*model.PathTreeNode {
	byPath := make(map[string]*model.PathTreeNode)
	linked := make(map[string]bool)
	var roots []*model.PathTreeNode

	for _, entry := range entries {
		segments := splitPath(entry.Path)
		if len(segments) == 0 {
			continue
		}

		var parent *model.PathTreeNode
		prefix := ""
		for depth, segment := range segments {
			if prefix == "" {
				prefix = segment
			} else {
				prefix = prefix + "/" + segment
			}

			node, ok := byPath[prefix]
			if !ok {
				node = &model.PathTreeNode{
					Path: prefix,
					Name: segment,
					Kind: model.FileKindDir,
				}
				byPath[prefix] = node
			}

			terminal := depth == len(segments)-1
			if terminal {
				node.Kind = entry.Kind
				node.Size = entry.Size
			} else {
				// An intermediate segment implies a directory even if an
				// earlier entry recorded this path as a file.
				node.Kind = model.FileKindDir
			}

			if !linked[prefix] {
				linked[prefix] = true
				if parent == nil {
					roots = append(roots, node)
				} else {
					parent.Children = append(parent.Children, node)
				}
			}
			parent = node
		}
	}

	sortForest(roots)
	return roots
}

// Flatten converts a forest back to its flat (path, kind, size) facts in
// depth-first order. Building and flattening round-trips the deduplicated,
// directory-normalized input set.
func Flatten(forest []*model.PathTreeNode) []model.FileEntry {
	var out []model.FileEntry
	var walk func(nodes []*model.PathTreeNode)
	walk = func(nodes []*model.PathTreeNode) {
		for _, node := range nodes {
			out = append(out, model.FileEntry{Path: node.Path, Kind: node.Kind, Size: node.Size})
			walk(node.Children)
		}
	}
	walk(forest)
	return out
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	var segments []string
	for _, segment := range strings.Split(trimmed, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

// collator orders sibling names the way a file browser does: locale-aware
// and case-insensitive, with numeric runs compared by value.
var collator = collate.New(language.Und, collate.IgnoreCase, collate.Numeric)

func sortForest(nodes []*model.PathTreeNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i], nodes[j]
		aDir := a.Kind == model.FileKindDir
		bDir := b.Kind == model.FileKindDir
		if aDir != bDir {
			return aDir
		}
		return collator.CompareString(norm.NFC.String(a.Name), norm.NFC.String(b.Name)) < 0
	})
	for _, node := range nodes {
		sortForest(node.Children)
	}
}
