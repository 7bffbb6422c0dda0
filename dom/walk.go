package dom

import (
	"iter"
	"strconv"
	"strings"

	"axnav/common"
)

// IsElement reports element nodes.
func IsElement(n Node) bool {
	return n != nil && n.Type() == common.NodeTypeElement
}

// IsText reports text nodes.
func IsText(n Node) bool {
	return n != nil && n.Type() == common.NodeTypeText
}

// IsWhitespace reports text nodes without any visible character.
func IsWhitespace(n Node) bool {
	return IsText(n) && strings.TrimSpace(n.Text()) == ""
}

// IsTag reports element with one of the given names.
func IsTag(n Node, tags ...string) bool {
	if !IsElement(n) {
		return false
	}
	t := n.Tag()
	for _, tag := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ID returns element id attribute.
func ID(n Node) string {
	if !IsElement(n) {
		return ""
	}
	id, _ := n.Attr("id")
	return strings.TrimSpace(id)
}

// Descendants iterates over the subtree rooted at n in document order, n
// itself excluded. Uses explicit stack so pathological depth does not blow
// the goroutine stack.
func Descendants(n Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		if n == nil {
			return
		}
		stack := reverse(n.Children())
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(cur) {
				return
			}
			stack = append(stack, reverse(cur.Children())...)
		}
	}
}

// Ancestors iterates from parent of n up to (and including) the top node.
func Ancestors(n Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		if n == nil {
			return
		}
		for p := n.Parent(); p != nil; p = p.Parent() {
			if !yield(p) {
				return
			}
		}
	}
}

func reverse(in []Node) []Node {
	out := make([]Node, len(in))
	for i, n := range in {
		out[len(in)-1-i] = n
	}
	return out
}

// IsAncestor reports whether a is a proper ancestor of n.
func IsAncestor(a, n Node) bool {
	for p := range Ancestors(n) {
		if p == a {
			return true
		}
	}
	return false
}

// IndexOf returns position of child among parent children or -1.
func IndexOf(parent, child Node) int {
	if parent == nil {
		return -1
	}
	for i, c := range parent.Children() {
		if c == child {
			return i
		}
	}
	return -1
}

// NextSibling returns raw next sibling or nil.
func NextSibling(n Node) Node {
	p := n.Parent()
	if p == nil {
		return nil
	}
	children := p.Children()
	for i, c := range children {
		if c == n {
			if i+1 < len(children) {
				return children[i+1]
			}
			return nil
		}
	}
	return nil
}

// PrevSibling returns raw previous sibling or nil.
func PrevSibling(n Node) Node {
	p := n.Parent()
	if p == nil {
		return nil
	}
	var prev Node
	for _, c := range p.Children() {
		if c == n {
			return prev
		}
		prev = c
	}
	return nil
}

// TextContent concatenates text of all descendant text nodes.
func TextContent(n Node) string {
	if n == nil {
		return ""
	}
	switch n.Type() {
	case common.NodeTypeText:
		return n.Text()
	case common.NodeTypeElement, common.NodeTypeDocument:
	default:
		return ""
	}
	var sb strings.Builder
	for d := range Descendants(n) {
		if d.Type() == common.NodeTypeText {
			sb.WriteString(d.Text())
		}
	}
	return sb.String()
}

// FindByAttr returns first element under root (root included) with attribute
// name equal to value.
func FindByAttr(root Node, name, value string) Node {
	if root == nil {
		return nil
	}
	match := func(n Node) bool {
		if !IsElement(n) {
			return false
		}
		v, ok := n.Attr(name)
		return ok && v == value
	}
	if match(root) {
		return root
	}
	for d := range Descendants(root) {
		if match(d) {
			return d
		}
	}
	return nil
}

// Short is compact debug representation of a node.
func Short(n Node) string {
	if n == nil {
		return "<nil>"
	}
	switch n.Type() {
	case common.NodeTypeText:
		t := strings.Join(strings.Fields(n.Text()), " ")
		if len(t) > 32 {
			t = t[:32] + "..."
		}
		return strconv.Quote(t)
	case common.NodeTypeElement:
		if id := ID(n); id != "" {
			return "<" + n.Tag() + "#" + id + ">"
		}
		return "<" + n.Tag() + ">"
	default:
		return n.Type().String()
	}
}
