package huff

import (
	"fmt"

	"github.com/seiflotfy/huff/bitstream"
)

// Tree wire format, pre-order:
//
//	branch = 1 left right
//	leaf   = 0 symbol[8]
//
// No weights are stored; the decoder only needs the shape.

// WriteTree serializes root to w.
func WriteTree(w *bitstream.Writer, root *Node) error {
	if root.IsLeaf() {
		if err := w.WriteBit(false); err != nil {
			return err
		}
		return w.WriteByte(root.Symbol)
	}
	if err := w.WriteBit(true); err != nil {
		return err
	}
	if err := WriteTree(w, root.Left); err != nil {
		return err
	}
	return WriteTree(w, root.Right)
}

// ReadTree deserializes a tree written by WriteTree.
//
// Trees deeper than 255 or with a repeated symbol cannot come from BuildTree
// and are reported as ErrCorrupt, as is running out of input.
func ReadTree(r *bitstream.Reader) (*Node, error) {
	tr := treeReader{r: r}
	return tr.read(0)
}

type treeReader struct {
	r    *bitstream.Reader
	seen [256]bool
}

func (tr *treeReader) read(depth int) (*Node, error) {
	if depth > maxTreeDepth {
		return nil, fmt.Errorf("%w: tree deeper than %d", ErrCorrupt, maxTreeDepth)
	}
	branch, err := tr.r.ReadBit()
	if err != nil {
		return nil, fmt.Errorf("%w: reading tree: %w", ErrCorrupt, err)
	}
	if !branch {
		sym, err := tr.r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("%w: reading tree leaf: %w", ErrCorrupt, err)
		}
		if tr.seen[sym] {
			return nil, fmt.Errorf("%w: symbol 0x%02x appears twice in tree", ErrCorrupt, sym)
		}
		tr.seen[sym] = true
		return &Node{Symbol: sym}, nil
	}
	left, err := tr.read(depth + 1)
	if err != nil {
		return nil, err
	}
	right, err := tr.read(depth + 1)
	if err != nil {
		return nil, err
	}
	return &Node{Left: left, Right: right}, nil
}
