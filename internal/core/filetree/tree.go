// Package filetree organizes changed files into a sorted folder hierarchy and
// its flattened, indentation-aware display form.
package filetree

import (
	"cmp"
	"slices"
	"strings"

	"github.com/colonyops/lado/internal/core/diff"
)

// Node is a folder or file in the tree. Only file nodes carry a Status.
type Node struct {
	Name     string
	Path     string // full slash-separated path from the repository root
	IsFolder bool
	Children []*Node
	Status   diff.FileStatus
}

// FlatEntry is one row of the pre-order projection of the tree.
type FlatEntry struct {
	Name       string
	Path       string
	Depth      int
	IsFolder   bool
	IsExpanded bool
	Status     diff.FileStatus
}

type builder struct {
	node     *Node
	children map[string]*builder
}

func newBuilder(name, path string) *builder {
	return &builder{
		node:     &Node{Name: name, Path: path},
		children: make(map[string]*builder),
	}
}

// Build inserts every file path into a tree keyed by path segment and returns
// the sorted top-level nodes.
//
// When a path is both a file and a folder prefix of another path, the folder
// wins and the file's status is dropped. A path listed twice keeps the status
// of its last occurrence.
func Build(files []diff.ChangedFile) []*Node {
	root := newBuilder("", "")

	for _, f := range files {
		if f.Path == "" {
			continue
		}

		parts := strings.Split(f.Path, "/")
		current := root
		for i, part := range parts {
			child, ok := current.children[part]
			if !ok {
				child = newBuilder(part, strings.Join(parts[:i+1], "/"))
				current.children[part] = child
			}

			if i < len(parts)-1 {
				child.node.IsFolder = true
				child.node.Status = ""
			} else if !child.node.IsFolder {
				child.node.Status = f.Status
			}
			current = child
		}
	}

	return root.sortedChildren()
}

func (b *builder) sortedChildren() []*Node {
	if len(b.children) == 0 {
		return nil
	}

	nodes := make([]*Node, 0, len(b.children))
	for _, child := range b.children {
		if child.node.IsFolder {
			child.node.Children = child.sortedChildren()
		}
		nodes = append(nodes, child.node)
	}
	slices.SortFunc(nodes, compareNodes)
	return nodes
}

// compareNodes orders folders before files, then by case-insensitive name.
// Names differing only in case fall back to byte order so the order is total.
func compareNodes(a, b *Node) int {
	if a.IsFolder != b.IsFolder {
		if a.IsFolder {
			return -1
		}
		return 1
	}
	if c := cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
		return c
	}
	return cmp.Compare(a.Name, b.Name)
}

// Flatten walks nodes in pre-order, recording nesting depth starting at depth.
// Folders are always expanded; entries without a status report modified.
func Flatten(nodes []*Node, depth int) []FlatEntry {
	var out []FlatEntry
	for _, n := range nodes {
		status := n.Status
		if n.IsFolder || status == "" {
			status = diff.StatusModified
		}

		out = append(out, FlatEntry{
			Name:       n.Name,
			Path:       n.Path,
			Depth:      depth,
			IsFolder:   n.IsFolder,
			IsExpanded: n.IsFolder,
			Status:     status,
		})

		if n.IsFolder {
			out = append(out, Flatten(n.Children, depth+1)...)
		}
	}
	return out
}
