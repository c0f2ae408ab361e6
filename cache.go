package huff

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// treeCache memoizes BuildTree by byte histogram. Cached trees are shared and
// must stay read-only.
type treeCache struct {
	trees *lru.Cache[[256]uint64, *Node]
}

func newTreeCache(size int) *treeCache {
	if size <= 0 {
		return nil
	}
	trees, err := lru.New[[256]uint64, *Node](size)
	if err != nil {
		// lru.New only fails for non-positive sizes
		panic(err)
	}
	return &treeCache{trees: trees}
}

// build returns the tree for ft and whether it came from the cache.
// A nil cache always builds.
func (c *treeCache) build(ft *FrequencyTable) (*Node, bool) {
	if c == nil {
		return BuildTree(ft), false
	}
	key := ft.histogram()
	if tree, ok := c.trees.Get(key); ok {
		return tree, true
	}
	tree := BuildTree(ft)
	c.trees.Add(key, tree)
	return tree, false
}

func (c *treeCache) len() int {
	if c == nil {
		return 0
	}
	return c.trees.Len()
}
