package analysis

import (
	"sort"

	"github.com/KaramelBytes/firedash/internal/dataset"
)

// Node is one level of the region > district > sub-district tree.
type Node struct {
	Name     string `json:"name"`
	Value    int    `json:"value"`
	Children []Node `json:"children,omitempty"`
}

// Hierarchy builds the frequency tree under a root named root. Children are
// ordered by descending value, ties in order of first occurrence.
func Hierarchy(root string, rows []dataset.Record) Node {
	type acc struct {
		node  Node
		index map[string]int
		kids  []*acc
	}
	newAcc := func(name string) *acc { return &acc{node: Node{Name: name}, index: map[string]int{}} }
	child := func(a *acc, name string) *acc {
		if i, ok := a.index[name]; ok {
			return a.kids[i]
		}
		c := newAcc(name)
		a.index[name] = len(a.kids)
		a.kids = append(a.kids, c)
		return c
	}

	top := newAcc(root)
	for _, r := range rows {
		reg := child(top, r.Region)
		dis := child(reg, r.District)
		sub := child(dis, r.Subdistrict)
		top.node.Value += r.Frequency
		reg.node.Value += r.Frequency
		dis.node.Value += r.Frequency
		sub.node.Value += r.Frequency
	}

	var build func(a *acc) Node
	build = func(a *acc) Node {
		n := a.node
		for _, k := range a.kids {
			n.Children = append(n.Children, build(k))
		}
		sort.SliceStable(n.Children, func(i, j int) bool { return n.Children[i].Value > n.Children[j].Value })
		return n
	}
	return build(top)
}

// Leaves counts the nodes without children.
func (n Node) Leaves() int {
	if len(n.Children) == 0 {
		return 1
	}
	var c int
	for _, k := range n.Children {
		c += k.Leaves()
	}
	return c
}
