package dom

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// Author declared attributes navigation understands. Values are opaque strings
// coerced permissively: booleans compare case-insensitively to "true" or
// "false", numbers go through strconv.
const (
	AttrID         = "id"
	AttrRole       = "role"
	AttrFlowTo     = "aria-flowto"
	AttrHidden     = "aria-hidden"
	AttrLabel      = "aria-label"
	AttrLabelledBy = "aria-labelledby"
	AttrChecked    = "aria-checked"
	AttrDisabled   = "disabled"

	AttrFocusable      = "data-nav-focusable"
	AttrFocusableNav   = "data-nav-focusable-nav"
	AttrFocusablePoint = "data-nav-focusable-point"

	AttrChunk       = "data-nav-chunk"
	AttrBlock       = "data-nav-block"
	AttrInline      = "data-nav-inline"
	AttrBlockNav    = "data-nav-block-nav"
	AttrInlineNav   = "data-nav-inline-nav"
	AttrBlockPoint  = "data-nav-block-point"
	AttrInlinePoint = "data-nav-inline-point"

	AttrName   = "data-nav-name"
	AttrRoleAs = "data-nav-role"
	AttrValue  = "data-nav-value"
	AttrBefore = "data-nav-before"
	AttrAfter  = "data-nav-after"

	AttrAutoAdvance = "data-nav-autoadvance"
	AttrStart       = "data-nav-start"
	AttrIdle        = "data-nav-idle"
)

// ChunkGroup is data-nav-chunk value marking opaque composite.
const ChunkGroup = "group"

// ErrMalformed reports attribute value which could not be coerced.
var ErrMalformed = errors.New("malformed attribute value")

// BoolAttr returns boolean attribute value. ok is false when attribute is
// absent or is neither "true" nor "false".
func BoolAttr(n Node, name string) (value, ok bool) {
	if !IsElement(n) {
		return false, false
	}
	v, present := n.Attr(name)
	if !present {
		return false, false
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

const maxSeconds = float64(math.MaxInt64) / float64(time.Second)

// SecondsAttr returns duration from attribute holding number of seconds.
// present is false when attribute is absent, err is ErrMalformed when value
// does not parse or is out of duration range.
func SecondsAttr(n Node, name string) (d time.Duration, present bool, err error) {
	if !IsElement(n) {
		return 0, false, nil
	}
	v, present := n.Attr(name)
	if !present {
		return 0, false, nil
	}
	f, perr := strconv.ParseFloat(strings.TrimSpace(v), 64)
	// NaN fails both comparisons
	if perr != nil || !(f >= 0 && f < maxSeconds) {
		return 0, true, ErrMalformed
	}
	return time.Duration(f * float64(time.Second)), true, nil
}

// IDRefs splits space separated id reference list.
func IDRefs(n Node, name string) []string {
	if !IsElement(n) {
		return nil
	}
	v, ok := n.Attr(name)
	if !ok {
		return nil
	}
	return strings.Fields(v)
}
