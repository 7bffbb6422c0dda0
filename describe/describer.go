package describe

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"axnav/common"
	"axnav/dom"
)

// Describer builds spoken text for nodes and units.
type Describer struct {
	log *zap.Logger
	doc dom.Document
}

// New creates describer for doc.
func New(doc dom.Document, log *zap.Logger) *Describer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Describer{log: log.Named("describe"), doc: doc}
}

func attrText(n dom.Node, name string) string {
	v, _ := n.Attr(name)
	return Normalize(v)
}

// hidden reports subtrees which are never spoken.
func hidden(n dom.Node) bool {
	if !dom.IsElement(n) {
		return false
	}
	if v, ok := dom.BoolAttr(n, dom.AttrHidden); ok && v {
		return true
	}
	return n.Style().Hidden()
}

// ExplicitLabel returns label author attached to element: data-nav-name,
// aria-labelledby, aria-label or alt text.
func (d *Describer) ExplicitLabel(n dom.Node) (string, bool) {
	if !dom.IsElement(n) {
		return "", false
	}
	if v, ok := n.Attr(dom.AttrName); ok {
		return Normalize(v), true
	}
	if refs := dom.IDRefs(n, dom.AttrLabelledBy); len(refs) > 0 && d.doc != nil {
		var parts []string
		for _, id := range refs {
			if ref := d.doc.ByID(id); ref != nil {
				parts = append(parts, d.content(ref))
			} else {
				d.log.Debug("Unresolved aria-labelledby reference", zap.String("id", id))
			}
		}
		if label := Normalize(strings.Join(parts, " ")); label != "" {
			return label, true
		}
	}
	if v, ok := n.Attr(dom.AttrLabel); ok && strings.TrimSpace(v) != "" {
		return Normalize(v), true
	}
	switch n.Tag() {
	case "img", "area":
		if v, ok := n.Attr("alt"); ok {
			return Normalize(v), true
		}
	case "input":
		if InputType(n) == "image" {
			if v, ok := n.Attr("alt"); ok {
				return Normalize(v), true
			}
		}
	}
	return "", false
}

// Label returns spoken name of node. Associated <label> elements are not
// included, see AssociatedLabel.
func (d *Describer) Label(n dom.Node) string {
	switch {
	case dom.IsText(n):
		return Normalize(n.Text())
	case !dom.IsElement(n):
		return ""
	}
	if label, ok := d.ExplicitLabel(n); ok {
		return label
	}
	if !opaqueContent[ResolveRole(n)] {
		if label := d.content(n); label != "" {
			return label
		}
	}
	for _, name := range []string{"title", "placeholder"} {
		if v := attrText(n, name); v != "" {
			return v
		}
	}
	if n.Tag() == "input" {
		switch InputType(n) {
		case "submit", "reset", "button":
			if v, ok := n.Attr("value"); ok {
				return Normalize(v)
			}
			if t := InputType(n); t != "button" {
				return t
			}
		}
	}
	return ""
}

// content is spoken text of element children.
func (d *Describer) content(n dom.Node) string {
	var sb strings.Builder
	for _, c := range n.Children() {
		d.describe(&sb, c)
	}
	return Normalize(sb.String())
}

// Role returns spoken role word, empty for nodes without announced role.
func (d *Describer) Role(n dom.Node) string {
	if !dom.IsElement(n) {
		return ""
	}
	if v, ok := n.Attr(dom.AttrRoleAs); ok {
		return Normalize(v)
	}
	role := ResolveRole(n)
	word := roleWords[role]
	if role == "heading" {
		if l := headingLevel(n); l > 0 {
			word = fmt.Sprintf("%s level %d", word, l)
		}
	}
	return word
}

// Value returns spoken state or value of a control.
func (d *Describer) Value(n dom.Node) string {
	if !dom.IsElement(n) {
		return ""
	}
	if v, ok := n.Attr(dom.AttrValue); ok {
		return Normalize(v)
	}
	switch role := ResolveRole(n); role {
	case "checkbox", "radio", "switch", "menuitemcheckbox", "menuitemradio":
		switch checked(n) {
		case checkedTrue:
			return "checked"
		case checkedMixed:
			return "partially checked"
		}
		return "not checked"
	case "textbox", "searchbox":
		if n.Tag() == "textarea" {
			return Normalize(dom.TextContent(n))
		}
		if InputType(n) == "password" {
			return ""
		}
		return attrText(n, "value")
	case "combobox", "listbox":
		if n.Tag() == "select" {
			return strings.Join(selectedOptions(n), ", ")
		}
		return attrText(n, "value")
	case "slider", "spinbutton", "progressbar", "meter":
		if v := attrText(n, "aria-valuetext"); v != "" {
			return v
		}
		if v := attrText(n, "aria-valuenow"); v != "" {
			return v
		}
		return attrText(n, "value")
	}
	return ""
}

type checkState int

const (
	checkedFalse checkState = iota
	checkedTrue
	checkedMixed
)

// checked reads native checked attribute or aria-checked.
func checked(n dom.Node) checkState {
	if v, ok := n.Attr(dom.AttrChecked); ok {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			return checkedTrue
		case "mixed":
			return checkedMixed
		}
		return checkedFalse
	}
	if _, ok := n.Attr("checked"); ok {
		return checkedTrue
	}
	return checkedFalse
}

// Checked reports whether checkable control is on.
func Checked(n dom.Node) bool {
	return checked(n) == checkedTrue
}

func selectedOptions(n dom.Node) []string {
	var (
		first    string
		selected []string
	)
	for c := range dom.Descendants(n) {
		if !dom.IsTag(c, "option") {
			continue
		}
		text := Normalize(dom.TextContent(c))
		if text == "" {
			text = attrText(c, "label")
		}
		if first == "" {
			first = text
		}
		if _, ok := c.Attr("selected"); ok {
			selected = append(selected, text)
		}
	}
	if len(selected) == 0 && first != "" {
		if _, multiple := n.Attr("multiple"); !multiple {
			return []string{first}
		}
	}
	return selected
}

// describe appends spoken form of n. Text nodes keep their spacing so that
// inline runs read naturally, elements with semantics are padded.
func (d *Describer) describe(sb *strings.Builder, n dom.Node) {
	switch n.Type() {
	case common.NodeTypeText:
		sb.WriteString(n.Text())
		return
	case common.NodeTypeElement:
	default:
		return
	}
	if hidden(n) || n.Tag() == "script" || n.Tag() == "style" {
		return
	}

	before, after := attrText(n, dom.AttrBefore), attrText(n, dom.AttrAfter)
	role, value := d.Role(n), d.Value(n)
	label, explicit := d.ExplicitLabel(n)

	if !explicit && before == "" && after == "" && role == "" && value == "" {
		if !blockish(n) {
			for _, c := range n.Children() {
				d.describe(sb, c)
			}
			return
		}
		sb.WriteByte(' ')
		for _, c := range n.Children() {
			d.describe(sb, c)
		}
		sb.WriteByte(' ')
		return
	}
	if !explicit {
		label = d.Label(n)
	}
	parts := make([]string, 0, 5)
	for _, p := range []string{before, label, role, value, after} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	sb.WriteByte(' ')
	sb.WriteString(strings.Join(parts, " "))
	sb.WriteByte(' ')
}

var blockTextTags = map[string]bool{
	"p": true, "div": true, "li": true, "td": true, "th": true, "tr": true, "br": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"dt": true, "dd": true, "blockquote": true, "pre": true, "section": true,
}

// blockish elements separate words of neighbours.
func blockish(n dom.Node) bool {
	return blockTextTags[n.Tag()]
}

// Describe returns spoken text of unit.
func (d *Describer) Describe(u dom.Unit) string {
	var sb strings.Builder
	for _, n := range u {
		d.describe(&sb, n)
	}
	return Normalize(sb.String())
}

// Speakable reports whether node would produce more than one meaningful
// character when spoken. Hidden subtrees do not count.
func (d *Describer) Speakable(n dom.Node) bool {
	if dom.IsText(n) {
		return !IsPunctuationOnly(n.Text())
	}
	if !dom.IsElement(n) {
		return false
	}
	total := 0
	count := func(s string) bool {
		total += MeaningfulRunes(s)
		return total >= 2
	}
	stack := []dom.Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch {
		case dom.IsText(cur):
			if count(cur.Text()) {
				return true
			}
			continue
		case !dom.IsElement(cur):
			continue
		case cur != n && hidden(cur):
			continue
		}
		if label, ok := d.ExplicitLabel(cur); ok {
			if count(label) {
				return true
			}
			if count(d.Role(cur)) {
				return true
			}
			continue
		}
		for _, s := range []string{attrText(cur, dom.AttrBefore), attrText(cur, dom.AttrAfter), d.Role(cur), d.Value(cur), attrText(cur, "title"), attrText(cur, "placeholder")} {
			if count(s) {
				return true
			}
		}
		children := cur.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return false
}

// AssociatedLabel finds <label> element describing form control n, either
// by for reference or by wrapping it, and its spoken text without the
// control itself.
func (d *Describer) AssociatedLabel(n dom.Node) (dom.Node, string) {
	if !dom.IsTag(n, "input", "select", "textarea", "button", "meter", "progress", "output") {
		return nil, ""
	}
	var label dom.Node
	if id := dom.ID(n); id != "" && d.doc != nil {
		for c := range dom.Descendants(d.doc.Root()) {
			if v, ok := c.Attr("for"); ok && dom.IsTag(c, "label") && strings.TrimSpace(v) == id {
				label = c
				break
			}
		}
	}
	if label == nil {
		for a := range dom.Ancestors(n) {
			if dom.IsTag(a, "label") {
				label = a
				break
			}
		}
	}
	if label == nil || hidden(label) {
		return nil, ""
	}
	var sb strings.Builder
	for _, c := range label.Children() {
		if c == n || dom.IsAncestor(c, n) {
			continue
		}
		d.describe(&sb, c)
	}
	return label, Normalize(sb.String())
}

// Sound picks audio cue for unit from its first element.
func (d *Describer) Sound(u dom.Unit) common.Sound {
	var el dom.Node
	for _, n := range u {
		if dom.IsElement(n) {
			el = n
			break
		}
	}
	if el != nil {
		switch ResolveRole(el) {
		case "link":
			return common.SoundLink
		case "button", RoleFile, RoleColor, RoleDate:
			return common.SoundButton
		case "checkbox", "switch", "menuitemcheckbox":
			if Checked(el) {
				return common.SoundCheckboxOn
			}
			return common.SoundCheckboxOff
		case "radio", "menuitemradio":
			if Checked(el) {
				return common.SoundRadioOn
			}
			return common.SoundRadioOff
		case "textbox", "searchbox", "spinbutton":
			return common.SoundEdit
		case "combobox", "listbox", "slider":
			return common.SoundSelect
		case "heading":
			return common.SoundHeading
		case "img":
			return common.SoundImage
		case "table":
			return common.SoundTable
		case "listitem":
			return common.SoundListItem
		}
	}
	if p, err := u.Parent(); err == nil && p != nil && ResolveRole(p) == "listitem" {
		for _, c := range p.Children() {
			if dom.IsWhitespace(c) || c.Type() == common.NodeTypeComment {
				continue
			}
			if c == u[0] {
				return common.SoundListItem
			}
			break
		}
	}
	return common.SoundNone
}
