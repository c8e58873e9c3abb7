// Package search provides the prefix index used to find orders by product
// name or SKU.
package search

import (
	"sort"
	"strings"

	"github.com/BisonV07/order-management-system/internal/domain"
)

// node is one trie position. Children are arena indices owned by this node.
type node struct {
	children   map[rune]int
	isEnd      bool
	productIDs map[string]struct{}
}

// Index is a trie over lowercased text. Nodes live in a single arena slice;
// index 0 is the root. An Index is not safe for concurrent Insert, but
// concurrent PrefixSearch calls on a fully built Index are.
type Index struct {
	nodes []node
	ids   map[string]struct{}
}

// New returns an empty index
func New() *Index {
	return &Index{
		nodes: []node{{children: map[rune]int{}}},
		ids:   map[string]struct{}{},
	}
}

// Build indexes the name and SKU of every product.
func Build(products []domain.Product) *Index {
	idx := New()
	for _, p := range products {
		idx.Insert(p.Name, p.ID)
		idx.Insert(p.SKU, p.ID)
	}
	return idx
}

// Insert records that text was produced by productID. Empty text or
// productID is ignored; repeating a pair changes nothing.
func (idx *Index) Insert(text, productID string) {
	if text == "" || productID == "" {
		return
	}

	cur := 0
	for _, r := range strings.ToLower(text) {
		next, ok := idx.nodes[cur].children[r]
		if !ok {
			next = len(idx.nodes)
			idx.nodes = append(idx.nodes, node{children: map[rune]int{}})
			idx.nodes[cur].children[r] = next
		}
		cur = next
	}

	n := &idx.nodes[cur]
	n.isEnd = true
	if n.productIDs == nil {
		n.productIDs = map[string]struct{}{}
	}
	n.productIDs[productID] = struct{}{}
	idx.ids[productID] = struct{}{}
}

// PrefixSearch returns the ids of every product with an indexed word that
// starts with query (case-insensitive). An empty query matches every id.
func (idx *Index) PrefixSearch(query string) map[string]struct{} {
	result := map[string]struct{}{}

	cur := 0
	for _, r := range strings.ToLower(query) {
		next, ok := idx.nodes[cur].children[r]
		if !ok {
			return result
		}
		cur = next
	}

	stack := []int{cur}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &idx.nodes[i]
		if n.isEnd {
			for id := range n.productIDs {
				result[id] = struct{}{}
			}
		}
		for _, child := range n.children {
			stack = append(stack, child)
		}
	}
	return result
}

// IDs is PrefixSearch with the result sorted.
func (idx *Index) IDs(query string) []string {
	set := idx.PrefixSearch(query)
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of distinct product ids in the index
func (idx *Index) Len() int {
	return len(idx.ids)
}
