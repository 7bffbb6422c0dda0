package dom

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrStructural is returned when a range spans nodes without a common
	// parent.
	ErrStructural = errors.New("range spans nodes without common parent")
	// ErrNotChild is returned by adapters when mutation references node
	// which is not a child of the given parent.
	ErrNotChild = errors.New("node is not a child of parent")
	// ErrForeignNode is returned by adapters for nodes of other documents.
	ErrForeignNode = errors.New("node does not belong to document")
)

// StructuralError describes broken range.
type StructuralError struct {
	Index int // position of first node whose parent differs
	Len   int
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s: node %d of %d", ErrStructural, e.Index, e.Len)
}

func (e *StructuralError) Unwrap() error {
	return ErrStructural
}

// Unit is a navigation unit: ordered sibling nodes of one parent which are
// contiguous once ignorable and non-focusable siblings are filtered out.
type Unit []Node

// Empty reports boundary sentinel.
func (u Unit) Empty() bool {
	return len(u) == 0
}

// First returns first node or nil.
func (u Unit) First() Node {
	if len(u) == 0 {
		return nil
	}
	return u[0]
}

// Last returns last node or nil.
func (u Unit) Last() Node {
	if len(u) == 0 {
		return nil
	}
	return u[len(u)-1]
}

// Parent returns common parent of all nodes in the unit.
func (u Unit) Parent() (Node, error) {
	if len(u) == 0 {
		return nil, nil
	}
	p := u[0].Parent()
	if p == nil {
		return nil, &StructuralError{Index: 0, Len: len(u)}
	}
	for i := 1; i < len(u); i++ {
		if u[i].Parent() != p {
			return nil, &StructuralError{Index: i, Len: len(u)}
		}
	}
	return p, nil
}

// Validate checks that nodes share a parent and follow document order.
func (u Unit) Validate() error {
	p, err := u.Parent()
	if err != nil || p == nil {
		return err
	}
	prev := -1
	for i, n := range u {
		idx := IndexOf(p, n)
		if idx <= prev {
			return &StructuralError{Index: i, Len: len(u)}
		}
		prev = idx
	}
	return nil
}

// Contains reports whether n is one of the unit nodes.
func (u Unit) Contains(n Node) bool {
	for _, m := range u {
		if m == n {
			return true
		}
	}
	return false
}

// Equal compares units node by node.
func (u Unit) Equal(o Unit) bool {
	if len(u) != len(o) {
		return false
	}
	for i := range u {
		if u[i] != o[i] {
			return false
		}
	}
	return true
}

// Span returns all children of the common parent from first to last unit
// node inclusive, ignorable and skipped siblings included.
func (u Unit) Span() (Unit, error) {
	p, err := u.Parent()
	if err != nil || p == nil {
		return nil, err
	}
	var (
		span Unit
		in   bool
	)
	for _, c := range p.Children() {
		if c == u[0] {
			in = true
		}
		if in {
			span = append(span, c)
		}
		if c == u[len(u)-1] {
			if !in {
				break
			}
			return span, nil
		}
	}
	return nil, &StructuralError{Index: len(u) - 1, Len: len(u)}
}

// String is short debug form: tags and quoted texts.
func (u Unit) String() string {
	parts := make([]string, 0, len(u))
	for _, n := range u {
		parts = append(parts, Short(n))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
