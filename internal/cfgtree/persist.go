package cfgtree

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/dekarrin/cfgkit/internal/cfg"
	"github.com/dekarrin/rezi"
)

// Save writes t to path as a rezi-encoded binary session file, so an
// interactive derivation session can be resumed across separate runs of the
// driver (spec.md §4.6 says nothing about persistence; this is one of the
// supplemented features in SPEC_FULL.md §12).
func Save(t *Tree, path string) error {
	data := rezi.EncBinary(t)
	return os.WriteFile(path, data, 0644)
}

// Load reads a Tree previously written by Save.
func Load(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t := &Tree{}
	if _, err := rezi.DecBinary(data, t); err != nil {
		return nil, fmt.Errorf("decode tree session: %w", err)
	}
	return t, nil
}

// MarshalBinary encodes the tree as a flattened preorder node list, each
// entry as: type byte, name length + name bytes, letter-name length +
// letter-name bytes, is-variable byte, child-count varint. This is enough to reconstruct the full shape and
// relabel parent pointers on decode. The undo log is not preserved; a
// reloaded session starts with an empty undo stack.
func (t *Tree) MarshalBinary() ([]byte, error) {
	var buf []byte
	var walk func(n *Node)
	walk = func(n *Node) {
		buf = append(buf, byte(n.Type))
		buf = appendString(buf, n.Name)
		buf = appendString(buf, n.Letter.Name)
		if n.Letter.Variable {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
		buf = appendUvarint(buf, uint64(len(n.Children)))
		for _, c := range n.Children {
			walk(c)
		}
	}
	if t.Root != nil {
		walk(t.Root)
	}
	return buf, nil
}

// UnmarshalBinary decodes a tree written by MarshalBinary.
func (t *Tree) UnmarshalBinary(data []byte) error {
	pos := 0

	var decodeNode func(parent *Node) (*Node, error)
	decodeNode = func(parent *Node) (*Node, error) {
		if pos >= len(data) {
			return nil, fmt.Errorf("cfgtree: truncated node header")
		}
		nodeType := NodeType(data[pos])
		pos++

		name, err := readString(data, &pos)
		if err != nil {
			return nil, err
		}
		letterName, err := readString(data, &pos)
		if err != nil {
			return nil, err
		}
		if pos >= len(data) {
			return nil, fmt.Errorf("cfgtree: truncated variable flag")
		}
		isVar := data[pos] == 1
		pos++

		childCount, err := readUvarint(data, &pos)
		if err != nil {
			return nil, err
		}

		n := &Node{Type: nodeType, Name: name, Parent: parent}
		if nodeType == LetterNode {
			n.Letter = cfg.Letter{Name: letterName, Variable: isVar}
		}

		for i := uint64(0); i < childCount; i++ {
			child, err := decodeNode(n)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		}
		return n, nil
	}

	root, err := decodeNode(nil)
	if err != nil {
		return err
	}
	t.Root = root
	t.lastAdded = nil
	return nil
}

func appendString(buf []byte, s string) []byte {
	buf = appendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

func appendUvarint(buf []byte, v uint64) []byte {
	tmp := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(tmp, v)
	return append(buf, tmp[:n]...)
}

func readString(data []byte, pos *int) (string, error) {
	n, err := readUvarint(data, pos)
	if err != nil {
		return "", err
	}
	if *pos+int(n) > len(data) {
		return "", fmt.Errorf("cfgtree: truncated string")
	}
	s := string(data[*pos : *pos+int(n)])
	*pos += int(n)
	return s, nil
}

func readUvarint(data []byte, pos *int) (uint64, error) {
	v, n := binary.Uvarint(data[*pos:])
	if n <= 0 {
		return 0, fmt.Errorf("cfgtree: invalid varint")
	}
	*pos += n
	return v, nil
}
