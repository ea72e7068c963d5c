// File: pkg/include/tree.go
package include

import (
	"path/filepath"
	"strings"
)

// NodeStatus classifies how an inclusion-tree node was resolved.
type NodeStatus int

const (
	StatusOK       NodeStatus = iota // Target exists and was descended into.
	StatusNotFound                   // Target path does not exist.
	StatusCircular                   // Target closes a cycle with an ancestor.
)

// TreeNode is one document in an inclusion tree. Children appear in
// directive order, first-style matches before second-style matches, the
// same order the expander resolves them in.
type TreeNode struct {
	Path     string
	Status   NodeStatus
	Children []*TreeNode
}

// Tree resolves the inclusion graph of the document at path without splicing
// any content, applying the same resolution, range, and cycle rules as
// ExpandDocument.
func (e *Expander) Tree(path string) (*TreeNode, error) {
	content, err := e.fsys.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	root := &TreeNode{Path: path}
	if err := e.buildTree(root, content, []string{path}); err != nil {
		return nil, err
	}
	return root, nil
}

// buildTree appends a child node per directive found in content and recurses
// into the children that resolve cleanly. Nothing is spliced here, so all
// matches can be collected in one pass per pattern.
func (e *Expander) buildTree(node *TreeNode, content string, chain []string) error {
	for _, pattern := range e.enabledPatterns() {
		for _, d := range matchAllDirectives(pattern, content) {
			target := e.fsys.ResolvePath(filepath.Dir(node.Path), d.Target)
			child := &TreeNode{Path: target}
			node.Children = append(node.Children, child)

			if !e.fsys.FileExists(target) {
				child.Status = StatusNotFound
				continue
			}
			if containsPath(chain, target) {
				child.Status = StatusCircular
				continue
			}

			original, err := e.fsys.ReadFile(target)
			if err != nil {
				return &ReadError{Path: target, Err: err}
			}

			sliced := selectRange(original, d.RangeStart, d.RangeEnd)
			if err := e.buildTree(child, sliced, extendChain(chain, target)); err != nil {
				return err
			}
		}
	}
	return nil
}

// RenderTree renders an inclusion tree with box-drawing connectors. The root
// keeps its full path; children show base names with a marker for nodes that
// did not resolve.
func RenderTree(root *TreeNode) string {
	var b strings.Builder
	b.WriteString(root.Path)
	b.WriteByte('\n')
	renderChildren(&b, root, "")
	return b.String()
}

func renderChildren(b *strings.Builder, node *TreeNode, prefix string) {
	for i, child := range node.Children {
		connector := "├── "
		extension := "│   "
		if i == len(node.Children)-1 {
			connector = "└── "
			extension = "    "
		}

		b.WriteString(prefix)
		b.WriteString(connector)
		b.WriteString(filepath.Base(child.Path))
		b.WriteString(child.marker())
		b.WriteByte('\n')

		renderChildren(b, child, prefix+extension)
	}
}

func (n *TreeNode) marker() string {
	switch n.Status {
	case StatusNotFound:
		return " (not found)"
	case StatusCircular:
		return " (circular)"
	}
	return ""
}
