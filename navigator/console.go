package navigator

import (
	"fmt"
	"io"
	"strings"

	"axnav/common"
	"axnav/dom"
)

// Console renders all collaborator output as text lines, it is used by
// command line reader and in tests. Speech completes instantly: tags of
// spoken utterances accumulate until Drain is called, the caller reports
// them to the controller as separate events.
type Console struct {
	w       io.Writer
	prefix  bool
	spoken  []string
	visible bool
	box     dom.Rect
}

// NewConsole returns console writing to w. When prefix is set every line
// is marked with collaborator kind.
func NewConsole(w io.Writer, prefix bool) *Console {
	return &Console{w: w, prefix: prefix}
}

func (c *Console) line(kind, format string, args ...any) {
	if c.w == nil {
		return
	}
	if c.prefix {
		fmt.Fprintf(c.w, "[%s] ", kind)
	}
	fmt.Fprintf(c.w, format+"\n", args...)
}

// Drain returns and forgets tags of utterances spoken so far.
func (c *Console) Drain() []string {
	tags := c.spoken
	c.spoken = nil
	return tags
}

// Box returns last highlighted area.
func (c *Console) Box() (dom.Rect, bool) {
	return c.box, c.visible
}

// Highlighter returns highlighter face of the console.
func (c *Console) Highlighter() Highlighter { return consoleHighlighter{c} }

// Speaker returns speaker face of the console.
func (c *Console) Speaker() Speaker { return consoleSpeaker{c} }

// Cues returns audio cue face of the console.
func (c *Console) Cues() Cues { return consoleCues{c} }

// Alerts returns alert face of the console.
func (c *Console) Alerts() Alerts { return consoleAlerts{c} }

type consoleHighlighter struct{ c *Console }

func (h consoleHighlighter) Show(rects []dom.Rect, target dom.Node) {
	var box dom.Rect
	for _, r := range rects {
		box = box.Union(r)
	}
	h.c.box, h.c.visible = box, true
	if box.Empty() {
		return
	}
	h.c.line("box", "%.0f,%.0f %.0fx%.0f %s", box.X, box.Y, box.Width, box.Height, dom.Short(target))
}

func (h consoleHighlighter) Hide() {
	h.c.visible = false
}

type consoleSpeaker struct{ c *Console }

func (s consoleSpeaker) Speak(u Utterance) {
	if u.Mode == common.QueueModeInterrupt {
		s.c.spoken = s.c.spoken[:0]
	}
	s.c.spoken = append(s.c.spoken, u.Tag)
	s.c.line("say", "%s", u.Text)
}

func (s consoleSpeaker) Cancel() {
	s.c.spoken = nil
}

type consoleCues struct{ c *Console }

func (a consoleCues) Play(s common.Sound) {
	if s == common.SoundNone {
		return
	}
	a.c.line("cue", "%s", s)
}

type consoleAlerts struct{ c *Console }

func (a consoleAlerts) Show(message string) {
	a.c.line("alert", "%s", strings.TrimSpace(message))
}
