package navigator_test

import (
	"bytes"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/zap/zaptest"
	"golang.org/x/text/language"

	"axnav/common"
	"axnav/describe"
	"axnav/dom"
	"axnav/dom/htmldoc"
	"axnav/navigator"
)

var alerts = []string{"", "End of content", "No more content"}

type harness struct {
	t     *testing.T
	doc   *htmldoc.Document
	out   *bytes.Buffer
	con   *navigator.Console
	sched *navigator.QueueScheduler
	ctrl  *navigator.Controller
}

func newHarness(t *testing.T, src string, opts navigator.Options, docOpts ...htmldoc.Option) *harness {
	t.Helper()
	log := zaptest.NewLogger(t)
	doc, err := htmldoc.Parse(strings.NewReader(src), log, docOpts...)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	h := &harness{t: t, doc: doc, out: new(bytes.Buffer), sched: navigator.NewQueueScheduler()}
	h.con = navigator.NewConsole(h.out, true)
	opts.Highlighter = h.con.Highlighter()
	opts.Speaker = h.con.Speaker()
	opts.Cues = h.con.Cues()
	opts.Alerts = h.con.Alerts()
	opts.Scheduler = h.sched
	if h.ctrl, err = navigator.New(doc, opts, log); err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return h
}

// expect compares console output produced since previous call.
func (h *harness) expect(want ...string) {
	h.t.Helper()
	var got []string
	if s := strings.TrimRight(h.out.String(), "\n"); s != "" {
		got = strings.Split(s, "\n")
	}
	h.out.Reset()
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		h.t.Errorf("console output mismatch (-want +got):\n%s", diff)
	}
}

func (h *harness) start(propagated bool) {
	h.t.Helper()
	if err := h.ctrl.Start(propagated, common.SourceNav); err != nil {
		h.t.Fatalf("Start() error = %v", err)
	}
}

func (h *harness) move(dir common.Direction) {
	h.t.Helper()
	if err := h.ctrl.Move(dir); err != nil {
		h.t.Fatalf("Move(%s) error = %v", dir, err)
	}
}

// done reports completion of everything spoken so far.
func (h *harness) done() {
	for _, tag := range h.con.Drain() {
		h.ctrl.OnSpeechDone(tag)
	}
}

func (h *harness) render() string {
	h.t.Helper()
	var sb strings.Builder
	if err := h.doc.Render(&sb); err != nil {
		h.t.Fatal(err)
	}
	return sb.String()
}

func (h *harness) current() string {
	return h.ctrl.Describer().Describe(h.ctrl.State().Unit)
}

func TestController_Boundary(t *testing.T) {
	h := newHarness(t, `<p>First para</p><p>Second para</p>`, navigator.Options{AlertMessages: alerts})

	h.start(false)
	h.expect("[cue] start", "[say] First para")
	if st := h.ctrl.State(); st.Mode != common.ModeActive || st.EdgeAttempts != -1 || st.Source != common.SourceNav {
		t.Errorf("unexpected state %+v", st)
	}
	if !strings.Contains(h.render(), "<axnav-marker>First para</axnav-marker>") {
		t.Errorf("current unit is not masked: %s", h.render())
	}

	h.move(common.DirectionDown)
	h.expect("[say] Second para")

	// first boundary hit is silent
	h.move(common.DirectionDown)
	h.expect()
	if st := h.ctrl.State(); st.EdgeAttempts != 0 || h.current() != "Second para" {
		t.Errorf("unexpected state after boundary %+v", st)
	}
	if !strings.Contains(h.render(), "<axnav-marker>Second para</axnav-marker>") {
		t.Errorf("marker must be restored after boundary: %s", h.render())
	}

	h.move(common.DirectionDown)
	h.expect("[cue] edge", "[alert] End of content")
	h.move(common.DirectionDown)
	h.expect("[cue] edge", "[alert] No more content")
	h.move(common.DirectionDown)
	h.expect("[cue] edge", "[alert] No more content")
	if st := h.ctrl.State(); st.EdgeAttempts != 2 {
		t.Errorf("edge counter must saturate, got %d", st.EdgeAttempts)
	}

	h.move(common.DirectionUp)
	h.expect("[say] First para")
	if st := h.ctrl.State(); st.EdgeAttempts != -1 {
		t.Errorf("successful move must reset edge counter, got %d", st.EdgeAttempts)
	}
	h.move(common.DirectionUp)
	h.expect()

	h.move(common.DirectionBottom)
	h.expect("[say] Second para")
	h.move(common.DirectionTop)
	h.expect("[say] First para")

	h.ctrl.Stop()
	h.expect("[cue] stop")
	if st := h.ctrl.State(); st.Mode != common.ModeIdle || !st.Unit.Empty() || st.EdgeAttempts != -1 {
		t.Errorf("unexpected state after stop %+v", st)
	}
	if strings.Contains(h.render(), dom.MarkerTag) {
		t.Errorf("marker left after stop: %s", h.render())
	}

	// idle controller ignores moves and repeated stops
	h.move(common.DirectionDown)
	h.ctrl.Stop()
	h.expect()
}

func TestController_StartTwice(t *testing.T) {
	h := newHarness(t, `<p>First para</p><p>Second para</p>`, navigator.Options{})
	h.start(false)
	h.move(common.DirectionDown)
	h.expect("[cue] start", "[say] First para", "[say] Second para")

	h.start(false)
	h.expect()
	if got := h.current(); got != "Second para" {
		t.Errorf("Start() on active controller moved to %q", got)
	}
}

func TestController_InvalidDirection(t *testing.T) {
	h := newHarness(t, `<p>First para</p>`, navigator.Options{})
	h.start(false)
	if err := h.ctrl.Move(common.Direction(42)); err == nil {
		t.Error("expected error for invalid direction")
	}
}

func TestController_NothingToRead(t *testing.T) {
	h := newHarness(t, `<p>.</p><script>var x = "text";</script>`, navigator.Options{})

	if err := h.ctrl.Start(false, common.SourceNav); !errors.Is(err, navigator.ErrNothingToRead) {
		t.Errorf("Start() error = %v", err)
	}
	h.expect()
	if st := h.ctrl.State(); st.Mode != common.ModeIdle {
		t.Errorf("Mode = %s", st.Mode)
	}
}

func TestController_StartAnchor(t *testing.T) {
	const src = `<p id="one">One para</p><p id="two">Two para</p><p><a name="legacy">Named anchor</a></p>`

	tests := []struct {
		name       string
		src        string
		fragment   string
		propagated bool
		want       string
	}{
		{"first unit", src, "", false, "One para"},
		{"fragment", src, "two", true, "Two para"},
		{"fragment ignored when not propagated", src, "two", false, "One para"},
		{"legacy named anchor", src, "legacy", true, "Named anchor"},
		{"unresolved fragment", src, "missing", true, "One para"},
		{"explicit start wins", `<body data-nav-start="two">` + src + `</body>`, "legacy", true, "Two para"},
		{"unresolved start anchor", `<body data-nav-start="nowhere">` + src + `</body>`, "", false, "One para"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.src, navigator.Options{}, htmldoc.WithURL(&url.URL{Scheme: "file", Path: "/page.html", Fragment: tt.fragment}))
			h.start(tt.propagated)
			if got := h.current(); got != tt.want {
				t.Errorf("started at %q, want %q", got, tt.want)
			}
		})
	}
}

func TestController_ShortSelection(t *testing.T) {
	const src = `<p>Intro text</p><p>a b</p><p>Outro text</p>`

	h := newHarness(t, src, navigator.Options{ShortSelection: 2})
	h.start(false)
	h.move(common.DirectionDown)
	h.expect("[cue] start", "[say] Intro text", "[say] Outro text")
	h.move(common.DirectionUp)
	h.expect("[say] Intro text")

	// the same unit is long enough with default threshold
	h = newHarness(t, src, navigator.Options{ShortSelection: 1})
	h.start(false)
	h.move(common.DirectionDown)
	h.expect("[cue] start", "[say] Intro text", "[say] a b")

	// skipped unit at document end reports boundary
	h = newHarness(t, `<p>Intro text</p><p>a b</p>`, navigator.Options{ShortSelection: 2, AlertMessages: []string{"End"}})
	h.start(false)
	h.move(common.DirectionDown)
	h.expect("[cue] start", "[say] Intro text", "[cue] edge", "[alert] End")
	if got := h.current(); got != "Intro text" {
		t.Errorf("current unit = %q", got)
	}

	// controls are never short, even when every text around is
	h = newHarness(t, `<p>Intro text</p><button>OK</button>`, navigator.Options{ShortSelection: 100})
	h.start(false)
	h.expect("[cue] start", "[say] OK button", "[cue] button")
}

func TestController_AllSkipped(t *testing.T) {
	h := newHarness(t, `<p id="a">ab</p>`, navigator.Options{ShortSelection: 3})

	if err := h.ctrl.Start(false, common.SourceNav); !errors.Is(err, navigator.ErrNothingToRead) {
		t.Errorf("Start() error = %v", err)
	}
	h.expect()
	if st := h.ctrl.State(); st.Mode != common.ModeIdle || !st.Unit.Empty() {
		t.Errorf("unexpected state %+v", st)
	}

	if err := h.ctrl.Jump(h.ctrl.UnitAt(h.doc.ByID("a"), common.SourcePoint), common.SourcePoint); err != nil {
		t.Errorf("Jump() error = %v", err)
	}
	h.expect()
	if st := h.ctrl.State(); st.Mode != common.ModeIdle || !st.Unit.Empty() {
		t.Errorf("unexpected state %+v", st)
	}
	if strings.Contains(h.render(), dom.MarkerTag) {
		t.Errorf("idle document must stay unmasked: %s", h.render())
	}

	// jump continues past short unit
	h = newHarness(t, `<p id="a">ab</p><p>Long enough</p>`, navigator.Options{ShortSelection: 3})
	if err := h.ctrl.Jump(h.ctrl.UnitAt(h.doc.ByID("a"), common.SourcePoint), common.SourcePoint); err != nil {
		t.Fatalf("Jump() error = %v", err)
	}
	h.expect("[cue] start", "[say] Long enough")
	if st := h.ctrl.State(); st.Mode != common.ModeActive || st.Source != common.SourcePoint {
		t.Errorf("unexpected state %+v", st)
	}
}

func TestController_OrphanLabel(t *testing.T) {
	h := newHarness(t, `<p>Intro text</p><label>Orphan label</label><p>Outro text</p>`, navigator.Options{})
	h.start(false)
	h.move(common.DirectionDown)
	h.expect("[cue] start", "[say] Intro text", "[say] Outro text")

	h = newHarness(t, `<p>Intro text</p><label for="name">Your name</label><input id="name" type="text" value="Bob">`, navigator.Options{})
	h.start(false)
	h.move(common.DirectionDown)
	h.expect("[cue] start", "[say] Intro text", "[say] Your name")
}

func TestController_LabelAugmentation(t *testing.T) {
	const src = `<label for="name">Your name</label><input id="name" type="text" value="Bob">`

	h := newHarness(t, src, navigator.Options{LabelAugmentation: true, LabelFormat: "{{.Label}}: {{.Text}}"})
	h.start(false)
	h.move(common.DirectionDown)
	h.expect("[cue] start", "[say] Your name", "[say] Your name: edit text Bob", "[cue] edit")

	h = newHarness(t, src, navigator.Options{})
	h.start(false)
	h.move(common.DirectionDown)
	h.expect("[cue] start", "[say] Your name", "[say] edit text Bob", "[cue] edit")
}

func TestController_Structural(t *testing.T) {
	h := newHarness(t, `<p id="a">Hello <b id="b">bold</b> world</p><p id="c">Other para</p>`, navigator.Options{})
	h.start(false)
	h.expect("[cue] start", "[say] Hello bold world")

	// host moves part of the selection elsewhere
	if err := h.doc.InsertBefore(h.doc.ByID("c"), h.doc.ByID("b"), nil); err != nil {
		t.Fatal(err)
	}
	h.move(common.DirectionDown)
	h.expect("[say] Hello world")
	if err := h.ctrl.State().Unit.Validate(); err != nil {
		t.Errorf("controller kept broken unit: %v", err)
	}
}

func TestController_Jump(t *testing.T) {
	h := newHarness(t, `<p id="a">First para</p><p id="b">Second para</p><p><input id="cb" type="checkbox" checked></p>`, navigator.Options{})

	u := h.ctrl.UnitAt(h.doc.ByID("b"), common.SourcePoint)
	if err := h.ctrl.Jump(u, common.SourcePoint); err != nil {
		t.Fatalf("Jump() error = %v", err)
	}
	h.expect("[cue] start", "[say] Second para")
	if st := h.ctrl.State(); st.Mode != common.ModeActive || st.Source != common.SourcePoint {
		t.Errorf("unexpected state %+v", st)
	}

	marker := h.doc.ByID("b").Children()[0]
	if marker.Tag() != dom.MarkerTag {
		t.Fatalf("expected marker, got %s", dom.Short(marker))
	}
	if got := h.ctrl.UnitAt(marker, common.SourcePoint); !got.Equal(h.ctrl.State().Unit) {
		t.Errorf("UnitAt(marker) = %s", got)
	}
	if got := h.ctrl.UnitAt(h.doc.ByID("a"), common.SourcePoint); h.ctrl.Describer().Describe(got) != "First para" {
		t.Errorf("UnitAt() = %s", got)
	}
	if !strings.Contains(h.render(), "<axnav-marker>Second para</axnav-marker>") {
		t.Errorf("UnitAt() must keep selection masked: %s", h.render())
	}

	broken := dom.Unit{h.doc.ByID("a").Children()[0], h.ctrl.State().Unit[0]}
	if err := h.ctrl.Jump(broken, common.SourcePoint); !errors.Is(err, dom.ErrStructural) {
		t.Errorf("Jump() error = %v", err)
	}
	if got := h.current(); got != "Second para" {
		t.Errorf("failed Jump() changed unit to %q", got)
	}
	if !strings.Contains(h.render(), "<axnav-marker>Second para</axnav-marker>") {
		t.Errorf("failed Jump() must restore marker: %s", h.render())
	}

	if err := h.ctrl.Jump(nil, common.SourcePoint); err != nil {
		t.Errorf("Jump(nil) error = %v", err)
	}
	h.expect()

	if err := h.ctrl.Jump(h.ctrl.UnitAt(h.doc.ByID("cb"), common.SourcePoint), common.SourcePoint); err != nil {
		t.Fatal(err)
	}
	h.expect("[say] check box checked", "[cue] checkbox-on")
}

func TestController_AutoAdvance(t *testing.T) {
	h := newHarness(t, `<p>First para</p><p>Second para</p><p>Third para</p>`, navigator.Options{AutoAdvance: 2 * time.Second})
	h.start(false)
	h.expect("[cue] start", "[say] First para")

	if n := h.sched.Pending(); n != 0 {
		t.Fatalf("timer armed before speech completed: %d", n)
	}
	h.ctrl.OnSpeechDone("bogus")
	if n := h.sched.Pending(); n != 0 {
		t.Fatalf("timer armed by stale completion: %d", n)
	}
	h.done()
	if n := h.sched.Pending(); n != 1 {
		t.Fatalf("Pending() = %d, want 1", n)
	}
	h.sched.Advance(time.Second)
	h.expect()
	h.sched.Advance(time.Second)
	h.expect("[say] Second para")

	// user input cancels pending advance
	h.done()
	h.move(common.DirectionDown)
	h.expect("[say] Third para")
	if n := h.sched.Pending(); n != 0 {
		t.Errorf("Pending() after move = %d", n)
	}

	// auto advance stops at document end
	h.done()
	h.sched.Advance(2 * time.Second)
	h.expect()
	if got := h.current(); got != "Third para" {
		t.Errorf("current unit = %q", got)
	}
	if n := h.sched.Pending(); n != 0 {
		t.Errorf("Pending() at the end = %d", n)
	}

	// completions arriving after stop are ignored
	h.move(common.DirectionUp)
	tags := h.con.Drain()
	h.ctrl.Stop()
	for _, tag := range tags {
		h.ctrl.OnSpeechDone(tag)
	}
	if n := h.sched.Pending(); n != 0 {
		t.Errorf("Pending() after stop = %d", n)
	}
}

func TestController_AutoAdvanceAttribute(t *testing.T) {
	h := newHarness(t, `<div data-nav-autoadvance="0.5"><p>First para</p><p>Second para</p></div><p data-nav-autoadvance="soon">Third para</p>`, navigator.Options{AutoAdvance: time.Minute})
	h.start(false)
	h.done()
	if at, ok := h.sched.Next(); !ok || at != 500*time.Millisecond {
		t.Errorf("Next() = %v, %v", at, ok)
	}
	h.sched.Advance(500 * time.Millisecond)
	h.done()
	h.sched.Advance(500 * time.Millisecond)
	if got := h.current(); got != "Third para" {
		t.Fatalf("current unit = %q", got)
	}

	// malformed value falls back to configured default
	h.done()
	if at, ok := h.sched.Next(); !ok || at != h.sched.Now()+time.Minute {
		t.Errorf("Next() = %v, %v", at, ok)
	}
}

func TestController_Sentences(t *testing.T) {
	log := zaptest.NewLogger(t)
	h := newHarness(t, `<p>First sentence here. Second sentence here.</p><p>Next para</p>`, navigator.Options{
		AutoAdvance: time.Second,
		Splitter:    describe.NewSplitter(language.English, log),
	})
	h.start(false)
	h.expect("[cue] start", "[say] First sentence here.", "[say] Second sentence here.")

	tags := h.con.Drain()
	if len(tags) != 2 {
		t.Fatalf("expected two utterances, got %q", tags)
	}
	h.ctrl.OnSpeechDone(tags[0])
	if n := h.sched.Pending(); n != 0 {
		t.Errorf("timer armed before last utterance completed: %d", n)
	}
	h.ctrl.OnSpeechDone(tags[1])
	if n := h.sched.Pending(); n != 1 {
		t.Errorf("Pending() = %d, want 1", n)
	}
}

func TestController_Idle(t *testing.T) {
	h := newHarness(t, `<p>First para</p><p>Second para</p>`, navigator.Options{Idle: 5 * time.Second})
	h.start(false)
	h.expect("[cue] start", "[say] First para")

	h.sched.Advance(4 * time.Second)
	h.move(common.DirectionDown)
	h.sched.Advance(4 * time.Second)
	h.expect("[say] Second para")
	if st := h.ctrl.State(); st.Mode != common.ModeActive {
		t.Fatal("activity must restart idle timer")
	}
	h.sched.Advance(time.Second)
	h.expect("[cue] stop")
	if st := h.ctrl.State(); st.Mode != common.ModeIdle {
		t.Errorf("Mode = %s after idle timeout", st.Mode)
	}

	// root container overrides configuration
	h = newHarness(t, `<body data-nav-idle="1"><p>First para</p></body>`, navigator.Options{})
	h.start(false)
	h.sched.Advance(time.Second)
	if st := h.ctrl.State(); st.Mode != common.ModeIdle {
		t.Errorf("Mode = %s after document idle timeout", st.Mode)
	}

	h = newHarness(t, `<body data-nav-idle="0"><p>First para</p></body>`, navigator.Options{Idle: time.Second})
	h.start(false)
	if n := h.sched.Pending(); n != 0 {
		t.Errorf("zero idle must disable timer, Pending() = %d", n)
	}
}

func TestController_Reset(t *testing.T) {
	h := newHarness(t, `<p>First para</p>`, navigator.Options{})
	h.start(false)
	h.expect("[cue] start", "[say] First para")

	other, err := htmldoc.Parse(strings.NewReader(`<p>Other page</p>`), zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	h.ctrl.Reset(other)
	h.expect("[cue] stop")
	if strings.Contains(h.render(), dom.MarkerTag) {
		t.Error("marker left in previous document")
	}
	if h.ctrl.Classifier().Document() != other {
		t.Error("classifier must follow new document")
	}

	h.start(false)
	h.expect("[cue] start", "[say] Other page")
}

func TestController_BadTemplates(t *testing.T) {
	doc, err := htmldoc.Parse(strings.NewReader(`<p>x</p>`), zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := navigator.New(doc, navigator.Options{AlertMessages: []string{"{{"}}, nil); err == nil {
		t.Error("expected error for malformed alert")
	}
	if _, err := navigator.New(doc, navigator.Options{LabelFormat: "{{ .Label"}, nil); err == nil {
		t.Error("expected error for malformed label format")
	}
	c, err := navigator.New(doc, navigator.Options{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if c.Engine() == nil || c.Describer() == nil {
		t.Error("collaborators must be exposed")
	}
}
