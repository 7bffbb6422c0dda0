// Package navigator implements the navigation state machine driving
// highlight, speech and audio cues.
package navigator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"axnav/classify"
	"axnav/common"
	"axnav/describe"
	"axnav/dom"
	"axnav/mask"
	"axnav/traverse"
)

// ErrNothingToRead is returned by Start when document has no navigable
// content.
var ErrNothingToRead = errors.New("document has no navigable content")

// maxSkips bounds chain of skipped units during one transition.
const maxSkips = 10000

// State is snapshot of navigation state.
type State struct {
	Unit         dom.Unit
	Mode         common.Mode
	EdgeAttempts int // -1 when last move succeeded
	Source       common.Source
}

// Options configures Controller.
type Options struct {
	// AlertMessages is escalating list of boundary alert templates, first
	// entry is normally empty so the first boundary hit is silent.
	AlertMessages []string
	// LabelFormat combines associated label with unit description.
	LabelFormat string
	// ShortSelection is the largest number of meaningful characters of
	// single inline unit which is skipped.
	ShortSelection    int
	LabelAugmentation bool
	// AutoAdvance and Idle are defaults for documents which do not declare
	// their own, zero disables.
	AutoAdvance time.Duration
	Idle        time.Duration
	// CacheClassification memoises classifier results between mutations.
	CacheClassification bool
	Splitter            *describe.Splitter

	Highlighter Highlighter
	Speaker     Speaker
	Cues        Cues
	Alerts      Alerts
	Scheduler   Scheduler
}

// Controller is navigation state machine for one document at a time. It is
// not safe for concurrent use: all calls, including collaborator callbacks,
// must come from one event loop.
type Controller struct {
	log  *zap.Logger
	opts Options
	msgs *describe.Messages

	doc  dom.Document
	cls  *classify.Classifier
	eng  *traverse.Engine
	mask *mask.Manager
	desc *describe.Describer

	state State

	seq        uint64 // changes with every transition, stale callbacks compare it
	pendingTag string
	cancelAuto func()
	cancelIdle func()
}

// New creates controller for doc.
func New(doc dom.Document, opts Options, log *zap.Logger) (*Controller, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.LabelFormat == "" {
		opts.LabelFormat = "{{.Label}} {{.Text}}"
	}
	if opts.ShortSelection < 0 {
		opts.ShortSelection = 0
	}
	msgs, err := describe.NewMessages(opts.AlertMessages, opts.LabelFormat)
	if err != nil {
		return nil, fmt.Errorf("unable to prepare messages: %w", err)
	}
	if opts.Highlighter == nil {
		opts.Highlighter = nopHighlighter{}
	}
	if opts.Speaker == nil {
		opts.Speaker = nopSpeaker{}
	}
	if opts.Cues == nil {
		opts.Cues = nopCues{}
	}
	if opts.Alerts == nil {
		opts.Alerts = nopAlerts{}
	}
	if opts.Scheduler == nil {
		opts.Scheduler = nopScheduler{}
	}
	c := &Controller{log: log.Named("navigator"), opts: opts, msgs: msgs}
	c.attach(doc)
	return c, nil
}

func (c *Controller) attach(doc dom.Document) {
	c.doc = doc
	c.desc = describe.New(doc, c.log)
	var copts []classify.Option
	if c.opts.CacheClassification {
		copts = append(copts, classify.WithCache())
	}
	c.cls = classify.New(doc, c.desc, c.log, copts...)
	c.eng = traverse.New(c.cls, c.log)
	c.mask = mask.New(doc, c.log)
	c.state = State{Mode: common.ModeIdle, EdgeAttempts: -1}
}

// Reset stops navigation and switches to freshly loaded document.
func (c *Controller) Reset(doc dom.Document) {
	c.Stop()
	c.attach(doc)
	c.seq++
}

// State returns current state.
func (c *Controller) State() State {
	s := c.state
	s.Unit = append(dom.Unit(nil), c.state.Unit...)
	return s
}

// Classifier exposes classifier of current document.
func (c *Controller) Classifier() *classify.Classifier {
	return c.cls
}

// Engine exposes traversal engine of current document.
func (c *Controller) Engine() *traverse.Engine {
	return c.eng
}

// Describer exposes describer of current document.
func (c *Controller) Describer() *describe.Describer {
	return c.desc
}

// Start activates navigation. Explicit start anchor of the root container
// wins, then (for navigation propagated from previous page) URL fragment
// anchor, then the first unit. Navigation stays idle with ErrNothingToRead
// when no unit survives skip guards.
func (c *Controller) Start(propagated bool, src common.Source) error {
	if c.state.Mode == common.ModeActive {
		return nil
	}
	c.unmask()

	u, _ := c.resolve(c.anchor(propagated, src), common.DirectionDown, src)
	if u.Empty() {
		c.log.Warn("Nothing to navigate")
		return ErrNothingToRead
	}
	c.state = State{Mode: common.ModeActive, EdgeAttempts: -1, Source: src}
	c.opts.Cues.Play(common.SoundStart)
	c.present(u, src)
	return nil
}

func (c *Controller) anchor(propagated bool, src common.Source) dom.Unit {
	root := c.doc.Root()
	if id, ok := root.Attr(dom.AttrStart); ok {
		if n := c.doc.ByID(strings.TrimSpace(id)); n != nil {
			if u := c.eng.UnitAt(n, src); !u.Empty() {
				return u
			}
		}
		c.log.Warn("Start anchor does not resolve, ignoring", zap.String("id", id))
	}
	if propagated {
		if u := c.doc.URL(); u != nil && u.Fragment != "" {
			n := c.doc.ByID(u.Fragment)
			if n == nil {
				// legacy named anchors
				n = dom.FindByAttr(c.doc.Top(), "name", u.Fragment)
			}
			if n != nil {
				if unit := c.eng.UnitAt(n, src); !unit.Empty() {
					return unit
				}
			}
			c.log.Debug("Fragment anchor does not resolve", zap.String("fragment", u.Fragment))
		}
	}
	return c.eng.First(root, src)
}

// Move changes current unit. Reaching document edge keeps unit and raises
// escalating alert.
func (c *Controller) Move(dir common.Direction) error {
	if c.state.Mode != common.ModeActive {
		return nil
	}
	if !dir.IsValid() {
		return fmt.Errorf("invalid direction %d", dir)
	}
	c.unmask()
	src := c.state.Source

	next, err := c.step(c.state.Unit, dir, src)
	if err != nil {
		if !errors.Is(err, dom.ErrStructural) {
			return err
		}
		c.log.Warn("Current unit is broken, starting over", zap.Stringer("unit", c.state.Unit), zap.Error(err))
		next, dir = c.eng.First(c.doc.Root(), src), common.DirectionDown
	}
	c.land(next, dir, src)
	return nil
}

// Jump selects explicit unit, activating navigation when idle. State is
// left as is when neither u nor anything after it survives skip guards.
func (c *Controller) Jump(u dom.Unit, src common.Source) error {
	c.unmask()
	if u.Empty() {
		c.remask()
		return nil
	}
	if err := u.Validate(); err != nil {
		c.remask()
		return err
	}
	if u, _ = c.resolve(u, common.DirectionDown, src); u.Empty() {
		c.remask()
		return nil
	}
	if c.state.Mode != common.ModeActive {
		c.state = State{Mode: common.ModeActive, EdgeAttempts: -1}
		c.opts.Cues.Play(common.SoundStart)
	}
	c.present(u, src)
	return nil
}

// UnitAt returns unit containing n (pointer target, anchor).
func (c *Controller) UnitAt(n dom.Node, src common.Source) dom.Unit {
	if n != nil && n == c.mask.Marker() {
		return c.State().Unit
	}
	c.unmask()
	defer c.remask()
	return c.eng.UnitAt(n, src)
}

// Stop deactivates navigation, clearing selection and all pending side
// effects.
func (c *Controller) Stop() {
	if c.state.Mode != common.ModeActive {
		return
	}
	c.unmask()
	c.cancelTimers()
	c.opts.Highlighter.Hide()
	c.opts.Speaker.Cancel()
	c.opts.Cues.Play(common.SoundStop)
	c.pendingTag = ""
	c.seq++
	c.state = State{Mode: common.ModeIdle, EdgeAttempts: -1}
	c.log.Debug("Navigation stopped")
}

// OnSpeechDone is completion callback of the speaker. Only completion of
// the last utterance of the current unit counts, then auto-advance timer is
// armed when configured.
func (c *Controller) OnSpeechDone(tag string) {
	if c.state.Mode != common.ModeActive || tag == "" || tag != c.pendingTag {
		return
	}
	c.pendingTag = ""
	d := c.autoAdvance()
	if d <= 0 {
		return
	}
	seq := c.seq
	c.cancelAuto = c.opts.Scheduler.After(d, func() {
		if c.seq != seq || c.state.Mode != common.ModeActive {
			return
		}
		if err := c.Move(common.DirectionDown); err != nil {
			c.log.Warn("Auto-advance failed", zap.Error(err))
		}
	})
}

func (c *Controller) step(u dom.Unit, dir common.Direction, src common.Source) (dom.Unit, error) {
	switch dir {
	case common.DirectionUp:
		return c.eng.Prev(u, src)
	case common.DirectionDown:
		return c.eng.Next(u, src)
	case common.DirectionTop:
		return c.eng.First(c.doc.Root(), src), nil
	case common.DirectionBottom:
		return c.eng.Last(c.doc.Root(), src), nil
	}
	return nil, fmt.Errorf("invalid direction %d", dir)
}

// land finishes transition: either selects first unit surviving skip
// guards or reports boundary.
func (c *Controller) land(u dom.Unit, dir common.Direction, src common.Source) {
	u, dir = c.resolve(u, dir, src)
	if u.Empty() {
		c.boundary(dir)
		return
	}
	c.present(u, src)
}

// resolve applies skip guards starting at u, continuing in dir. Returns
// empty unit when nothing presentable remains along with direction the
// search ended in.
func (c *Controller) resolve(u dom.Unit, dir common.Direction, src common.Source) (dom.Unit, common.Direction) {
	for skips := 0; !u.Empty(); skips++ {
		reason := c.skip(u, src)
		if reason == "" {
			return u, dir
		}
		if skips >= maxSkips {
			c.log.Error("Too many units skipped in a row, giving up", zap.Int("skips", skips))
			break
		}
		c.log.Debug("Skipping unit", zap.String("reason", reason), zap.Stringer("unit", u))
		dir = dir.Continuation()
		next, err := c.step(u, dir, src)
		if err != nil {
			c.log.Warn("Unable to continue past skipped unit", zap.Stringer("unit", u), zap.Error(err))
			break
		}
		u = next
	}
	return nil, dir
}

// skip returns reason unit must not be presented or empty string.
func (c *Controller) skip(u dom.Unit, src common.Source) string {
	inline := true
	for _, n := range u {
		if !c.cls.IsMergeable(n, src) {
			inline = false
			break
		}
	}
	if inline && describe.MeaningfulRunes(c.desc.Describe(u)) <= c.opts.ShortSelection {
		return "short selection"
	}
	if c.orphanLabel(u) {
		return "orphaned label"
	}
	return ""
}

// orphanLabel detects lone <label> (or unit covering all of one) which
// labels nothing: for does not resolve, nobody references it and it has no
// element children.
func (c *Controller) orphanLabel(u dom.Unit) bool {
	var label dom.Node
	switch p, _ := u.Parent(); {
	case dom.IsTag(u[0], "label"):
		label = u[0]
	case dom.IsTag(p, "label"):
		for _, ch := range p.Children() {
			if !c.cls.IsIgnorable(ch) && !u.Contains(ch) {
				return false
			}
		}
		label = p
	default:
		return false
	}
	for _, ch := range label.Children() {
		if dom.IsElement(ch) {
			return false
		}
	}
	if id, ok := label.Attr("for"); ok && c.doc.ByID(strings.TrimSpace(id)) != nil {
		return false
	}
	if id := dom.ID(label); id != "" {
		for n := range dom.Descendants(c.doc.Root()) {
			for _, ref := range dom.IDRefs(n, dom.AttrLabelledBy) {
				if ref == id {
					return false
				}
			}
		}
	}
	return true
}

// boundary keeps current unit and escalates alert.
func (c *Controller) boundary(dir common.Direction) {
	limit := max(c.msgs.Alerts()-1, 0)
	c.state.EdgeAttempts = min(c.state.EdgeAttempts+1, limit)
	c.remask()
	c.armIdle()

	if c.msgs.Alerts() == 0 {
		return
	}
	msg, err := c.msgs.Alert(c.state.EdgeAttempts, describe.AlertValues{Direction: dir.String(), Attempt: c.state.EdgeAttempts})
	if err != nil {
		c.log.Warn("Unable to expand alert message", zap.Int("index", c.state.EdgeAttempts), zap.Error(err))
		return
	}
	if msg = strings.TrimSpace(msg); msg == "" {
		return
	}
	c.opts.Cues.Play(common.SoundEdge)
	c.opts.Alerts.Show(msg)
}

// present makes u current unit and dispatches side effects.
func (c *Controller) present(u dom.Unit, src common.Source) {
	c.seq++
	c.cancelTimers()
	c.state.Unit, c.state.EdgeAttempts, c.state.Source = u, -1, src

	marker, err := c.mask.Mask(u)
	if err != nil {
		c.log.Warn("Unable to mask unit", zap.Stringer("unit", u), zap.Error(err))
	}
	var (
		rects  []dom.Rect
		target dom.Node = marker
	)
	if marker != nil {
		rects = marker.Rects()
	} else {
		target = u.First()
		for _, n := range u {
			rects = append(rects, n.Rects()...)
		}
	}

	text := c.desc.Describe(u)
	if c.opts.LabelAugmentation {
		if label, labelText := c.associatedLabel(u); label != nil && labelText != "" {
			rects = append(rects, label.Rects()...)
			if augmented, err := c.msgs.Augment(labelText, text); err == nil {
				text = augmented
			} else {
				c.log.Warn("Unable to expand label format", zap.Error(err))
			}
		}
	}
	c.opts.Highlighter.Show(rects, target)

	c.opts.Speaker.Cancel()
	c.pendingTag = ""
	for i, sentence := range c.opts.Splitter.Split(text) {
		mode := common.QueueModeEnqueue
		if i == 0 {
			mode = common.QueueModeInterrupt
		}
		c.pendingTag = uuid.NewString()
		c.opts.Speaker.Speak(Utterance{Text: sentence, Mode: mode, Tag: c.pendingTag})
	}
	if s := c.desc.Sound(u); s != common.SoundNone {
		c.opts.Cues.Play(s)
	}
	c.armIdle()
	c.log.Debug("Unit selected", zap.Stringer("unit", u), zap.String("text", text))
}

// associatedLabel finds label of form control unit stands for, unless the
// label is already part of the unit.
func (c *Controller) associatedLabel(u dom.Unit) (dom.Node, string) {
	for _, n := range u {
		if !dom.IsElement(n) {
			continue
		}
		label, text := c.desc.AssociatedLabel(n)
		if label == nil {
			continue
		}
		for _, m := range u {
			if m == label || dom.IsAncestor(m, label) {
				return nil, ""
			}
		}
		return label, text
	}
	return nil, ""
}

// autoAdvance reads interval from unit ancestors or root container.
func (c *Controller) autoAdvance() time.Duration {
	if p, err := c.state.Unit.Parent(); err == nil && p != nil {
		for n := p; n != nil; n = n.Parent() {
			if d, ok := c.secondsAttr(n, dom.AttrAutoAdvance); ok {
				return d
			}
			if n == c.doc.Root() {
				break
			}
		}
	}
	return c.opts.AutoAdvance
}

func (c *Controller) secondsAttr(n dom.Node, name string) (time.Duration, bool) {
	d, present, err := dom.SecondsAttr(n, name)
	if err != nil {
		v, _ := n.Attr(name)
		c.log.Warn("Malformed timing attribute ignored", zap.String("attr", name), zap.String("value", v))
		return 0, false
	}
	return d, present
}

// armIdle restarts inactivity timer which stops navigation.
func (c *Controller) armIdle() {
	if c.cancelIdle != nil {
		c.cancelIdle()
		c.cancelIdle = nil
	}
	d, ok := c.secondsAttr(c.doc.Root(), dom.AttrIdle)
	if !ok {
		d = c.opts.Idle
	}
	if d <= 0 {
		return
	}
	seq := c.seq
	c.cancelIdle = c.opts.Scheduler.After(d, func() {
		if c.seq != seq || c.state.Mode != common.ModeActive {
			return
		}
		c.log.Debug("Idle timeout, stopping", zap.Duration("after", d))
		c.Stop()
	})
}

func (c *Controller) cancelTimers() {
	if c.cancelAuto != nil {
		c.cancelAuto()
		c.cancelAuto = nil
	}
	if c.cancelIdle != nil {
		c.cancelIdle()
		c.cancelIdle = nil
	}
}

func (c *Controller) unmask() {
	if err := c.mask.Unmask(); err != nil {
		c.log.Warn("Unable to remove selection marker", zap.Error(err))
	}
}

// remask restores marker around current unit after tree was unmasked for
// traversal.
func (c *Controller) remask() {
	if c.state.Mode != common.ModeActive || c.state.Unit.Empty() {
		return
	}
	if _, err := c.mask.Mask(c.state.Unit); err != nil {
		c.log.Warn("Unable to restore selection marker", zap.Stringer("unit", c.state.Unit), zap.Error(err))
	}
}
