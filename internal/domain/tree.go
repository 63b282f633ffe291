package domain

import (
	"fmt"
	"slices"
	"strings"
)

// TreeNode is a node in the record tree used for navigation
type TreeNode struct {
	Kind       Kind
	ID         int64
	Name       string
	Detail     string
	Children   []*TreeNode
	IsExpanded bool
	Parent     *TreeNode
}

// Flatten returns all visible nodes in the tree (for list rendering)
func (n *TreeNode) Flatten() []*TreeNode {
	var result []*TreeNode
	n.flatten(&result)
	return result
}

func (n *TreeNode) flatten(result *[]*TreeNode) {
	*result = append(*result, n)
	if n.IsExpanded {
		for _, child := range n.Children {
			child.flatten(result)
		}
	}
}

// Depth returns the depth of this node in the tree
func (n *TreeNode) Depth() int {
	depth := 0
	for p := n.Parent; p != nil; p = p.Parent {
		depth++
	}
	return depth
}

// Toggle expands or collapses the node
func (n *TreeNode) Toggle() {
	n.IsExpanded = !n.IsExpanded
}

// Expand sets the node as expanded
func (n *TreeNode) Expand() {
	n.IsExpanded = true
}

// Collapse sets the node as collapsed
func (n *TreeNode) Collapse() {
	n.IsExpanded = false
}

// IsLeaf reports whether the node has nothing to expand
func (n *TreeNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// Label is the one-line text for the node
func (n *TreeNode) Label() string {
	if n.Kind == KindMonth {
		return n.Name
	}
	if n.Detail != "" {
		return fmt.Sprintf("#%d %s (%s)", n.ID, n.Name, n.Detail)
	}
	return fmt.Sprintf("#%d %s", n.ID, n.Name)
}

func (n *TreeNode) add(child *TreeNode) *TreeNode {
	child.Parent = n
	n.Children = append(n.Children, child)
	return child
}

// ClientTree builds a root node whose children are the clients, expanded
// down through plants and jobs to months.
func ClientTree(clients []Client) *TreeNode {
	root := &TreeNode{Name: "Clients", IsExpanded: true}
	for _, c := range clients {
		node := root.add(&TreeNode{Kind: KindClient, ID: c.ID, Name: c.Name})
		if plants, ok := c.Plants.Items(); ok {
			for _, p := range plants {
				addPlant(node, p)
			}
		}
	}
	return root
}

// PlantTree builds a root node whose children are the plants.
func PlantTree(plants []Plant) *TreeNode {
	root := &TreeNode{Name: "Plants", IsExpanded: true}
	for _, p := range plants {
		addPlant(root, p)
	}
	return root
}

// JobTree builds a root node whose children are the maintenance jobs.
func JobTree(jobs []Maintenance) *TreeNode {
	root := &TreeNode{Name: "Jobs", IsExpanded: true}
	for _, j := range jobs {
		addJob(root, j)
	}
	return root
}

func addPlant(parent *TreeNode, p Plant) {
	node := parent.add(&TreeNode{Kind: KindPlant, ID: p.ID, Name: p.Name, Detail: p.LatinName})
	if jobs, ok := p.Jobs.Items(); ok {
		for _, j := range jobs {
			addJob(node, j)
		}
	}
}

func addJob(parent *TreeNode, j Maintenance) {
	node := parent.add(&TreeNode{Kind: KindJob, ID: j.ID, Name: j.Name})
	for _, m := range j.Months {
		node.add(&TreeNode{Kind: KindMonth, ID: int64(m), Name: m.String()})
	}
}

// RenderTree writes an indented text rendering of the tree, skipping the
// root node itself.
func RenderTree(sb *strings.Builder, node *TreeNode) {
	for _, child := range node.Children {
		renderTree(sb, child, "")
	}
}

func renderTree(sb *strings.Builder, node *TreeNode, prefix string) {
	fmt.Fprintf(sb, "%s%s\n", prefix, node.Label())
	for _, child := range node.Children {
		renderTree(sb, child, prefix+"  ")
	}
}

// SortByID sorts entities by ID in ascending order
func SortByID[T Entity](items []T) {
	slices.SortFunc(items, func(a, b T) int {
		switch {
		case a.Key() < b.Key():
			return -1
		case a.Key() > b.Key():
			return 1
		default:
			return 0
		}
	})
}
