package describe

import (
	"strconv"
	"strings"

	"axnav/dom"
)

// Resolved types which are not ARIA roles but still need telling apart.
const (
	RoleFile  = "file"
	RoleColor = "color"
	RoleDate  = "date"
)

// ARIA roles recognized in role attribute. Unknown tokens are skipped so
// fallback lists ("switch checkbox") work.
var ariaRoles = map[string]bool{
	"alert": true, "alertdialog": true, "application": true, "article": true,
	"banner": true, "blockquote": true, "button": true, "caption": true, "cell": true,
	"checkbox": true, "code": true, "columnheader": true, "combobox": true,
	"complementary": true, "contentinfo": true, "definition": true, "deletion": true,
	"dialog": true, "document": true, "emphasis": true, "feed": true, "figure": true,
	"form": true, "generic": true, "grid": true, "gridcell": true, "group": true,
	"heading": true, "img": true, "image": true, "insertion": true, "link": true, "list": true,
	"listbox": true, "listitem": true, "log": true, "main": true, "marquee": true,
	"math": true, "menu": true, "menubar": true, "menuitem": true,
	"menuitemcheckbox": true, "menuitemradio": true, "meter": true, "navigation": true,
	"none": true, "note": true, "option": true, "paragraph": true, "presentation": true,
	"progressbar": true, "radio": true, "radiogroup": true, "region": true, "row": true,
	"rowgroup": true, "rowheader": true, "scrollbar": true, "search": true,
	"searchbox": true, "separator": true, "slider": true, "spinbutton": true,
	"status": true, "strong": true, "subscript": true, "superscript": true,
	"switch": true, "tab": true, "table": true, "tablist": true, "tabpanel": true,
	"term": true, "textbox": true, "time": true, "timer": true, "toolbar": true,
	"tooltip": true, "tree": true, "treegrid": true, "treeitem": true,
}

var tagRoles = map[string]string{
	"button": "button", "textarea": "textbox", "img": "img",
	"h1": "heading", "h2": "heading", "h3": "heading", "h4": "heading", "h5": "heading", "h6": "heading",
	"ul": "list", "ol": "list", "menu": "list", "li": "listitem",
	"table": "table", "tr": "row", "td": "cell", "th": "columnheader",
	"nav": "navigation", "main": "main", "header": "banner", "footer": "contentinfo",
	"aside": "complementary", "article": "article", "section": "region", "form": "form",
	"dialog": "dialog", "hr": "separator", "figure": "figure", "p": "paragraph",
	"option": "option", "progress": "progressbar", "meter": "meter", "details": "group",
	"fieldset": "group", "output": "status", "math": "math",
}

var inputRoles = map[string]string{
	"checkbox": "checkbox", "radio": "radio", "range": "slider", "number": "spinbutton",
	"search": "searchbox", "button": "button", "submit": "button", "reset": "button",
	"image": "button", "file": RoleFile, "color": RoleColor, "date": RoleDate,
	"datetime-local": RoleDate, "month": RoleDate, "week": RoleDate, "time": RoleDate,
	"text": "textbox", "email": "textbox", "tel": "textbox", "url": "textbox",
	"password": "textbox",
}

// spoken role words, roles without entry are not announced.
var roleWords = map[string]string{
	"link": "link", "button": "button", "checkbox": "check box", "radio": "radio button",
	"switch": "switch", "textbox": "edit text", "searchbox": "search edit",
	"combobox": "combo box", "listbox": "list box", "slider": "slider",
	"spinbutton": "spin button", "heading": "heading", "img": "image", "image": "image",
	"menuitem": "menu item", "menuitemcheckbox": "menu item check box",
	"menuitemradio": "menu item radio button", "tab": "tab", "treeitem": "tree item",
	"progressbar": "progress bar", "meter": "meter", "table": "table",
	RoleFile: "file upload button", RoleColor: "color picker", RoleDate: "date picker",
}

// roles whose children text is not part of the spoken label.
var opaqueContent = map[string]bool{
	"combobox": true, "listbox": true, "textbox": true, "searchbox": true,
	"slider": true, "spinbutton": true, "progressbar": true, "meter": true,
}

// InputType returns lower-cased type of input element, "text" when absent.
func InputType(n dom.Node) string {
	t, ok := n.Attr("type")
	t = strings.ToLower(strings.TrimSpace(t))
	if !ok || t == "" {
		return "text"
	}
	return t
}

// ResolveRole returns resolved type of element: first recognized token of
// role attribute, else implicit role of tag. Empty for elements without
// semantics.
func ResolveRole(n dom.Node) string {
	if !dom.IsElement(n) {
		return ""
	}
	for _, r := range dom.IDRefs(n, dom.AttrRole) {
		if r = strings.ToLower(r); ariaRoles[r] {
			return r
		}
	}
	tag := n.Tag()
	switch tag {
	case "a", "area":
		if _, ok := n.Attr("href"); ok {
			return "link"
		}
		return ""
	case "img":
		if alt, ok := n.Attr("alt"); ok && alt == "" {
			return "presentation"
		}
		return "img"
	case "input":
		t := InputType(n)
		if t == "hidden" {
			return ""
		}
		if _, ok := n.Attr("list"); ok && inputRoles[t] == "textbox" {
			return "combobox"
		}
		if r, ok := inputRoles[t]; ok {
			return r
		}
		return "textbox"
	case "select":
		if _, ok := n.Attr("multiple"); ok {
			return "listbox"
		}
		if size, ok := n.Attr("size"); ok {
			if v, err := strconv.Atoi(strings.TrimSpace(size)); err == nil && v > 1 {
				return "listbox"
			}
		}
		return "combobox"
	}
	return tagRoles[tag]
}

// headingLevel returns aria-level or level implied by tag, 0 if unknown.
func headingLevel(n dom.Node) int {
	if v, ok := n.Attr("aria-level"); ok {
		if l, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && l > 0 {
			return l
		}
	}
	if t := n.Tag(); len(t) == 2 && t[0] == 'h' && t[1] >= '1' && t[1] <= '6' {
		return int(t[1] - '0')
	}
	return 0
}
