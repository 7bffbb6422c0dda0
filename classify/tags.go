package classify

// Elements which never take part in navigation, together with their
// subtrees.
var skippedTags = set(
	// document head
	"head", "title", "meta", "link", "base", "style", "script", "noscript", "template",
	// plugins and embedded browsing contexts
	"object", "embed", "applet", "param", "frameset", "frame", "noframes", "iframe",
	// resources and non rendered helpers
	"source", "track", "datalist", "map", "area", "colgroup", "col", "slot",
	// deprecated
	"basefont", "bgsound", "blink", "isindex", "keygen", "nextid", "spacer", "marquee",
)

// Elements flowing with text.
var inlineTags = set(
	"a", "abbr", "acronym", "b", "bdi", "bdo", "big", "br", "cite", "code", "data",
	"del", "dfn", "em", "font", "i", "img", "ins", "kbd", "label", "mark", "nobr",
	"q", "rp", "rt", "ruby", "s", "samp", "small", "span", "strike", "strong", "sub",
	"sup", "time", "tt", "u", "var", "wbr", "output", "picture", "svg", "math",
)

// Elements known to be laid out as blocks. Tags in none of the sets are
// treated as inline.
var blockTags = set(
	"html", "body", "address", "article", "aside", "blockquote", "caption", "center",
	"dd", "details", "dialog", "dir", "div", "dl", "dt", "fieldset", "figcaption",
	"figure", "footer", "form", "h1", "h2", "h3", "h4", "h5", "h6", "header", "hgroup",
	"hr", "legend", "li", "listing", "main", "menu", "nav", "ol", "optgroup", "option",
	"p", "plaintext", "pre", "section", "summary", "table", "tbody", "td", "tfoot",
	"th", "thead", "tr", "ul", "xmp", "audio", "video", "canvas", "meter", "progress",
	"search",
)

// Resolved types which make an element an opaque leaf.
var groupedRoles = set(
	"button", "checkbox", "radio", "switch", "textbox", "searchbox", "combobox",
	"listbox", "slider", "spinbutton", "menuitemcheckbox", "menuitemradio",
	"file", "color", "date",
)

func set(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, s := range items {
		m[s] = true
	}
	return m
}
