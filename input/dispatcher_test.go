package input_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"

	"axnav/common"
	"axnav/dom"
	"axnav/input"
	"axnav/navigator"
)

// fake records calls in order.
type fake struct {
	mode  common.Mode
	calls []string
	unit  dom.Unit
	err   error
}

func (f *fake) Start(propagated bool, src common.Source) error {
	f.calls = append(f.calls, fmt.Sprintf("start %v %s", propagated, src))
	if f.err == nil {
		f.mode = common.ModeActive
	}
	return f.err
}

func (f *fake) Stop() {
	f.calls = append(f.calls, "stop")
	f.mode = common.ModeIdle
}

func (f *fake) Move(dir common.Direction) error {
	f.calls = append(f.calls, "move "+dir.String())
	return f.err
}

func (f *fake) Jump(u dom.Unit, src common.Source) error {
	f.calls = append(f.calls, fmt.Sprintf("jump %d %s", len(u), src))
	f.mode = common.ModeActive
	return f.err
}

func (f *fake) UnitAt(n dom.Node, src common.Source) dom.Unit {
	f.calls = append(f.calls, "unit-at "+src.String())
	return f.unit
}

func (f *fake) State() navigator.State {
	return navigator.State{Mode: f.mode, EdgeAttempts: -1}
}

func (f *fake) take() []string {
	c := f.calls
	f.calls = nil
	return c
}

var toggle = input.Key{Name: "n", Alt: true, Shift: true}

func press(t *testing.T, d *input.Dispatcher, k input.Key) bool {
	t.Helper()
	consumed, err := d.KeyDown(k)
	if err != nil {
		t.Fatalf("KeyDown(%+v) error = %v", k, err)
	}
	d.KeyUp(k)
	return consumed
}

func TestDispatcher_Toggle(t *testing.T) {
	f := &fake{}
	d := input.New(f, zaptest.NewLogger(t))

	if !press(t, d, toggle) {
		t.Error("toggle must be consumed")
	}
	if !press(t, d, input.Key{Name: "N", Alt: true, Shift: true}) {
		t.Error("toggle must be consumed")
	}
	if diff := cmp.Diff([]string{"start false nav", "stop"}, f.take()); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}

	// extra modifiers make it a different chord
	for _, k := range []input.Key{
		{Name: "N", Alt: true, Shift: true, Ctrl: true},
		{Name: "N", Alt: true},
		{Name: "M", Alt: true, Shift: true},
	} {
		if press(t, d, k) {
			t.Errorf("%+v must not be consumed", k)
		}
	}
	if calls := f.take(); len(calls) != 0 {
		t.Errorf("unexpected calls %q", calls)
	}
}

func TestDispatcher_Keys(t *testing.T) {
	f := &fake{}
	d := input.New(f, zaptest.NewLogger(t))

	// navigation keys are ignored while idle
	if press(t, d, input.Key{Name: input.KeyArrowDown}) {
		t.Error("idle dispatcher consumed arrow")
	}
	press(t, d, toggle)

	tests := []struct {
		key      input.Key
		consumed bool
		call     string
	}{
		{input.Key{Name: input.KeyArrowDown}, true, "move down"},
		{input.Key{Name: input.KeyArrowUp}, true, "move up"},
		{input.Key{Name: input.KeyHome}, true, "move top"},
		{input.Key{Name: input.KeyEnd}, true, "move bottom"},
		{input.Key{Name: input.KeyArrowDown, Shift: true}, true, "move down"},
		{input.Key{Name: input.KeyArrowDown, Alt: true}, false, ""},
		{input.Key{Name: input.KeyArrowDown, Ctrl: true}, false, ""},
		{input.Key{Name: input.KeyArrowDown, Meta: true}, false, ""},
		{input.Key{Name: "a"}, false, ""},
	}
	f.take()
	for _, tt := range tests {
		if got := press(t, d, tt.key); got != tt.consumed {
			t.Errorf("KeyDown(%+v) consumed = %v, want %v", tt.key, got, tt.consumed)
		}
		var want []string
		if tt.call != "" {
			want = []string{tt.call}
		}
		if diff := cmp.Diff(want, f.take()); diff != "" {
			t.Errorf("KeyDown(%+v) calls mismatch (-want +got):\n%s", tt.key, diff)
		}
	}

	if !press(t, d, input.Key{Name: input.KeyEscape}) {
		t.Error("escape must be consumed")
	}
	if diff := cmp.Diff([]string{"stop"}, f.take()); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	if press(t, d, input.Key{Name: input.KeyEscape}) {
		t.Error("escape must not be consumed while idle")
	}
}

func TestDispatcher_Held(t *testing.T) {
	f := &fake{mode: common.ModeActive}
	d := input.New(f, zaptest.NewLogger(t))

	down := input.Key{Name: input.KeyArrowDown}
	for range 3 {
		consumed, err := d.KeyDown(down)
		if err != nil || !consumed {
			t.Fatalf("KeyDown() = %v, %v", consumed, err)
		}
	}
	if diff := cmp.Diff([]string{"move down"}, f.take()); diff != "" {
		t.Errorf("auto-repeat must not move (-want +got):\n%s", diff)
	}
	if n := d.Held(); n != 1 {
		t.Errorf("Held() = %d", n)
	}
	d.KeyUp(down)
	press(t, d, down)
	if diff := cmp.Diff([]string{"move down"}, f.take()); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}

	// letters are tracked regardless of case
	if _, err := d.KeyDown(input.Key{Name: "x"}); err != nil {
		t.Fatal(err)
	}
	d.KeyUp(input.Key{Name: "X"})
	if n := d.Held(); n != 0 {
		t.Errorf("Held() = %d after release", n)
	}

	// repeated unconsumed key stays unconsumed
	if _, err := d.KeyDown(input.Key{Name: "q"}); err != nil {
		t.Fatal(err)
	}
	if consumed, _ := d.KeyDown(input.Key{Name: "q"}); consumed {
		t.Error("repeated plain letter consumed")
	}
	if consumed, _ := d.KeyDown(input.Key{Name: "q"}); consumed {
		t.Error("repeated plain letter consumed")
	}

	// toggle forgets all held keys but itself
	d.KeyDown(input.Key{Name: input.KeyArrowUp})
	if consumed, _ := d.KeyDown(toggle); !consumed {
		t.Error("toggle must be consumed")
	}
	if n := d.Held(); n != 1 {
		t.Errorf("Held() = %d after toggle", n)
	}
	d.KeyUp(toggle)

	d.KeyDown(input.Key{Name: input.KeyArrowUp})
	d.Reset()
	if n := d.Held(); n != 0 {
		t.Errorf("Held() = %d after reset", n)
	}
}

func TestDispatcher_ToggleRepeat(t *testing.T) {
	f := &fake{}
	d := input.New(f, zaptest.NewLogger(t))

	for range 3 {
		if consumed, err := d.KeyDown(toggle); !consumed || err != nil {
			t.Fatalf("KeyDown() = %v, %v", consumed, err)
		}
	}
	if diff := cmp.Diff([]string{"start false nav"}, f.take()); diff != "" {
		t.Errorf("auto-repeat of toggle must not flip mode (-want +got):\n%s", diff)
	}

	escape := input.Key{Name: input.KeyEscape}
	for range 2 {
		d.KeyDown(escape)
	}
	if diff := cmp.Diff([]string{"stop"}, f.take()); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}

	d.KeyUp(escape)
	d.KeyUp(toggle)
	press(t, d, toggle)
	if diff := cmp.Diff([]string{"start false nav"}, f.take()); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestDispatcher_Errors(t *testing.T) {
	boom := errors.New("boom")
	f := &fake{err: boom}
	d := input.New(f, nil)

	if consumed, err := d.KeyDown(toggle); !consumed || !errors.Is(err, boom) {
		t.Errorf("KeyDown() = %v, %v", consumed, err)
	}

	f.mode = common.ModeActive
	if consumed, err := d.KeyDown(input.Key{Name: input.KeyArrowDown}); !consumed || !errors.Is(err, boom) {
		t.Errorf("KeyDown() = %v, %v", consumed, err)
	}
}

func TestDispatcher_Pointer(t *testing.T) {
	f := &fake{}
	d := input.New(f, zaptest.NewLogger(t))

	if err := d.Pointer(nil); err != nil {
		t.Fatal(err)
	}
	if calls := f.take(); len(calls) != 0 {
		t.Errorf("unexpected calls %q", calls)
	}

	root := &stubNode{}
	if err := d.Pointer(root); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"unit-at point"}, f.take()); diff != "" {
		t.Errorf("empty unit must not jump (-want +got):\n%s", diff)
	}

	f.unit = dom.Unit{root, root}
	d.KeyDown(input.Key{Name: input.KeyArrowUp})
	if err := d.Pointer(root); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"unit-at point", "jump 2 point"}, f.take()); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	if n := d.Held(); n != 0 {
		t.Errorf("activation by pointer must forget held keys, Held() = %d", n)
	}
}

// stubNode is the smallest dom.Node, dispatcher only passes it through.
type stubNode struct{ dom.Node }

func (*stubNode) Type() common.NodeType { return common.NodeTypeElement }
func (*stubNode) Tag() string           { return "span" }
func (*stubNode) Attr(string) (string, bool) {
	return "", false
}
