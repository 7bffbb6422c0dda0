package navigator_test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"axnav/common"
	"axnav/dom"
	"axnav/navigator"
)

func TestConsole(t *testing.T) {
	buf := new(bytes.Buffer)
	c := navigator.NewConsole(buf, false)

	c.Highlighter().Show([]dom.Rect{{X: 8, Y: 16, Width: 16, Height: 16}, {X: 0, Y: 32, Width: 8, Height: 16}}, nil)
	if box, visible := c.Box(); !visible || box != (dom.Rect{X: 0, Y: 16, Width: 24, Height: 32}) {
		t.Errorf("Box() = %+v, %v", box, visible)
	}
	c.Highlighter().Hide()
	if _, visible := c.Box(); visible {
		t.Error("Hide() must hide the box")
	}
	// nothing to draw
	c.Highlighter().Show(nil, nil)

	sp := c.Speaker()
	sp.Speak(navigator.Utterance{Text: "one", Mode: common.QueueModeInterrupt, Tag: "a"})
	sp.Speak(navigator.Utterance{Text: "two", Mode: common.QueueModeEnqueue, Tag: "b"})
	if diff := cmp.Diff([]string{"a", "b"}, c.Drain()); diff != "" {
		t.Errorf("Drain() mismatch (-want +got):\n%s", diff)
	}
	if tags := c.Drain(); len(tags) != 0 {
		t.Errorf("second Drain() = %q", tags)
	}

	sp.Speak(navigator.Utterance{Text: "three", Mode: common.QueueModeInterrupt, Tag: "c"})
	sp.Speak(navigator.Utterance{Text: "four", Mode: common.QueueModeInterrupt, Tag: "d"})
	if diff := cmp.Diff([]string{"d"}, c.Drain()); diff != "" {
		t.Errorf("interrupt must drop queued speech (-want +got):\n%s", diff)
	}

	sp.Speak(navigator.Utterance{Text: "five", Mode: common.QueueModeInterrupt, Tag: "e"})
	sp.Cancel()
	if tags := c.Drain(); len(tags) != 0 {
		t.Errorf("Cancel() must drop speech, got %q", tags)
	}

	c.Cues().Play(common.SoundNone)
	c.Cues().Play(common.SoundLink)
	c.Alerts().Show("  End of content ")

	want := "0,16 24x32 <nil>\none\ntwo\nthree\nfour\nfive\nlink\nEnd of content\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestConsole_Tagged(t *testing.T) {
	buf := new(bytes.Buffer)
	c := navigator.NewConsole(buf, true)

	c.Cues().Play(common.SoundCheckboxOn)
	c.Alerts().Show("x")
	if diff := cmp.Diff("[cue] checkbox-on\n[alert] x\n", buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}

	silent := navigator.NewConsole(nil, true)
	silent.Speaker().Speak(navigator.Utterance{Text: "x", Tag: "t"})
	if tags := silent.Drain(); len(tags) != 1 {
		t.Errorf("speech must be tracked without writer, got %q", tags)
	}
}
