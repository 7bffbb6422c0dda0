package reader

import (
	"fmt"

	"axnav/classify"
	"axnav/common"
	"axnav/describe"
	"axnav/dom"
	"axnav/traverse"
	"axnav/utils/debug"
)

// maxUnits bounds unit listing of the dump.
const maxUnits = 100000

func flag(on bool, name string) string {
	if on {
		return name
	}
	return ""
}

// Dump renders document tree with classification of every node for src
// followed by the list of navigation units in reading order.
func Dump(doc dom.Document, cls *classify.Classifier, eng *traverse.Engine, desc *describe.Describer, src common.Source) *debug.TreeWriter {
	tw := debug.NewTreeWriter()

	tw.Line(0, "tree (%s):", src)
	var walk func(n dom.Node, depth int)
	walk = func(n dom.Node, depth int) {
		if dom.IsWhitespace(n) {
			return
		}
		tw.Node(depth, dom.Short(n),
			flag(cls.IsFocusable(n, src), "focusable"),
			flag(cls.IsGrouped(n), "grouped"),
			flag(cls.IsIgnorable(n), "ignorable"),
			flag(dom.IsElement(n) && cls.IsInlineElement(n, src), "inline"),
			flag(cls.IsMergeable(n, src), "mergeable"),
			flag(dom.IsElement(n) && len(n.Children()) > 0 && cls.AreAllChildrenInline(n, src), "inline-content"),
			flag(cls.HasFlow(n), "flow"),
		)
		for _, c := range n.Children() {
			walk(c, depth+1)
		}
	}
	walk(doc.Root(), 1)

	tw.Line(0, "units:")
	u := eng.First(doc.Root(), src)
	for i := 0; !u.Empty() && i < maxUnits; i++ {
		tw.TextBlock(1, fmt.Sprintf("%d %s", i+1, u), desc.Describe(u))
		next, err := eng.Next(u, src)
		if err != nil {
			tw.Line(1, "error: %v", err)
			break
		}
		u = next
	}
	return tw
}
