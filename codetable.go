package huff

import (
	"fmt"
	"strings"
)

// Code is the bit sequence assigned to a symbol: its root-to-leaf path with
// left as 0 and right as 1. Bits are stored MSB-first in 64-bit words.
type Code struct {
	words  [4]uint64
	length int
}

// Len returns the number of bits in the code.
func (c Code) Len() int {
	return c.length
}

// Bit returns bit i of the code (0 is the first bit emitted).
func (c Code) Bit(i int) bool {
	if i < 0 || i >= c.length {
		panic(fmt.Sprintf("huff: code bit %d out of range [0,%d)", i, c.length))
	}
	return c.words[i/64]>>(63-uint(i%64))&1 == 1
}

// HasPrefix reports whether p is a prefix of c.
func (c Code) HasPrefix(p Code) bool {
	if p.length > c.length {
		return false
	}
	for i := 0; i < p.length; i++ {
		if c.Bit(i) != p.Bit(i) {
			return false
		}
	}
	return true
}

// String renders the code as a string of '0' and '1'.
func (c Code) String() string {
	var sb strings.Builder
	sb.Grow(c.length)
	for i := 0; i < c.length; i++ {
		if c.Bit(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func (c Code) append(bit bool) Code {
	if bit {
		c.words[c.length/64] |= 1 << (63 - uint(c.length%64))
	}
	c.length++
	return c
}

// word returns the k-th 64-bit chunk right-aligned with its bit count.
func (c Code) word(k int) (uint64, uint8) {
	n := c.length - k*64
	if n > 64 {
		n = 64
	}
	return c.words[k] >> (64 - uint(n)), uint8(n)
}

// CodeTable maps each symbol of a tree to its code. It is read-only once
// derived.
type CodeTable struct {
	codes   [256]Code
	present [256]bool
	n       int
}

// DeriveCodeTable walks root and records every leaf's path as its symbol's
// code. A tree that is a single leaf gives its symbol the one-bit code 0.
func DeriveCodeTable(root *Node) *CodeTable {
	t := &CodeTable{}
	if root == nil {
		return t
	}
	if root.IsLeaf() {
		t.set(root.Symbol, Code{}.append(false))
		return t
	}
	t.walk(root, Code{})
	return t
}

func (t *CodeTable) walk(n *Node, path Code) {
	if n.IsLeaf() {
		t.set(n.Symbol, path)
		return
	}
	t.walk(n.Left, path.append(false))
	t.walk(n.Right, path.append(true))
}

func (t *CodeTable) set(sym byte, c Code) {
	if !t.present[sym] {
		t.n++
	}
	t.codes[sym] = c
	t.present[sym] = true
}

// Lookup returns the code for sym and whether sym is in the table.
func (t *CodeTable) Lookup(sym byte) (Code, bool) {
	return t.codes[sym], t.present[sym]
}

// Len returns the number of symbols with a code.
func (t *CodeTable) Len() int {
	return t.n
}

// Symbols returns the symbols with a code in ascending order.
func (t *CodeTable) Symbols() []byte {
	syms := make([]byte, 0, t.n)
	for i, ok := range t.present {
		if ok {
			syms = append(syms, byte(i))
		}
	}
	return syms
}

// Cost returns the payload size in bits of an input with frequencies ft,
// before alignment padding.
func (t *CodeTable) Cost(ft *FrequencyTable) uint64 {
	var bits uint64
	for _, sym := range ft.Symbols() {
		bits += uint64(t.codes[sym].length) * ft.Count(sym)
	}
	return bits
}
