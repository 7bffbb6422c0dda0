package navigator

import (
	"time"

	"axnav/common"
	"axnav/dom"
)

// Highlighter renders selection box.
type Highlighter interface {
	// Show draws box around rects (to be unioned) and scrolls target into
	// view.
	Show(rects []dom.Rect, scrollTarget dom.Node)
	Hide()
}

// Utterance is one piece of speech.
type Utterance struct {
	Text string
	Mode common.QueueMode
	// Tag identifies utterance in completion callback.
	Tag string
}

// Speaker is speech synthesis backend. Completion is reported back through
// Controller.OnSpeechDone as a separate event.
type Speaker interface {
	Speak(u Utterance)
	Cancel()
}

// Cues plays symbolic audio cues.
type Cues interface {
	Play(s common.Sound)
}

// Alerts presents boundary messages. Newer message replaces older one.
type Alerts interface {
	Show(message string)
}

// Scheduler runs fn after d as a separate event. Returned function cancels
// it, calling it after fn has run is harmless.
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
}

type nopHighlighter struct{}

func (nopHighlighter) Show([]dom.Rect, dom.Node) {}
func (nopHighlighter) Hide()                     {}

type nopSpeaker struct{}

func (nopSpeaker) Speak(Utterance) {}
func (nopSpeaker) Cancel()         {}

type nopCues struct{}

func (nopCues) Play(common.Sound) {}

type nopAlerts struct{}

func (nopAlerts) Show(string) {}

type nopScheduler struct{}

func (nopScheduler) After(time.Duration, func()) func() { return func() {} }
