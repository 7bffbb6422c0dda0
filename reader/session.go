package reader

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"axnav/common"
	"axnav/config"
	"axnav/describe"
	"axnav/document"
	"axnav/input"
	"axnav/navigator"
)

// maxReadMoves bounds "read" step on pathological documents.
const maxReadMoves = 100000

// Session is navigation over one loaded page driven by scripted events
// with all output going to console.
type Session struct {
	log     *zap.Logger
	doc     *document.Loaded
	ctrl    *navigator.Controller
	input   *input.Dispatcher
	console *navigator.Console
	sched   *navigator.QueueScheduler
}

// NewSession wires controller collaborators to console writing to w.
func NewSession(doc *document.Loaded, cfg *config.Config, splitter *describe.Splitter, w io.Writer, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{
		log:     log.Named("session"),
		doc:     doc,
		console: navigator.NewConsole(w, cfg.Console.Format.Tagged()),
		sched:   navigator.NewQueueScheduler(),
	}
	ctrl, err := navigator.New(doc, navigator.Options{
		AlertMessages:       cfg.Navigation.Alerts,
		LabelFormat:         cfg.Speech.LabelFormat,
		ShortSelection:      cfg.Navigation.ShortSelection,
		LabelAugmentation:   cfg.Navigation.LabelAugmentation,
		AutoAdvance:         cfg.Navigation.AutoAdvance,
		Idle:                cfg.Navigation.Idle,
		CacheClassification: cfg.Navigation.Cache,
		Splitter:            splitter,
		Highlighter:         s.console.Highlighter(),
		Speaker:             s.console.Speaker(),
		Cues:                s.console.Cues(),
		Alerts:              s.console.Alerts(),
		Scheduler:           s.sched,
	}, log)
	if err != nil {
		return nil, err
	}
	s.ctrl = ctrl
	s.input = input.New(ctrl, log)
	return s, nil
}

// Controller returns navigation controller of the session.
func (s *Session) Controller() *navigator.Controller {
	return s.ctrl
}

// Elapsed returns virtual time spent waiting.
func (s *Session) Elapsed() time.Duration {
	return s.sched.Now()
}

// settle reports completion of everything spoken so far, which may arm
// timers.
func (s *Session) settle() {
	for {
		tags := s.console.Drain()
		if len(tags) == 0 {
			return
		}
		for _, tag := range tags {
			s.ctrl.OnSpeechDone(tag)
		}
	}
}

func (s *Session) press(name string, alt, shift bool) error {
	k := input.Key{Name: name, Alt: alt, Shift: shift}
	_, err := s.input.KeyDown(k)
	s.input.KeyUp(k)
	return err
}

// wait lets d of virtual time pass, firing timers in order.
func (s *Session) wait(d time.Duration) {
	end := s.sched.Now() + d
	for {
		s.settle()
		at, ok := s.sched.Next()
		if !ok || at > end {
			break
		}
		s.sched.RunNext()
	}
	s.sched.Advance(end - s.sched.Now())
	s.settle()
}

// read starts navigation when needed and moves down until document end.
func (s *Session) read() error {
	if s.ctrl.State().Mode != common.ModeActive {
		if err := s.ctrl.Start(s.doc.URL() != nil && s.doc.URL().Fragment != "", common.SourceNav); err != nil {
			return err
		}
		s.settle()
	}
	for range maxReadMoves {
		st := s.ctrl.State()
		if st.Mode != common.ModeActive || st.EdgeAttempts >= 0 {
			return nil
		}
		if err := s.ctrl.Move(common.DirectionDown); err != nil {
			return err
		}
		s.settle()
	}
	s.log.Warn("Document is too long, stopped reading", zap.Int("moves", maxReadMoves))
	return nil
}

// Play runs steps in order.
func (s *Session) Play(ctx context.Context, steps []Step) error {
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.log.Debug("Step", zap.Stringer("step", step))

		var err error
		switch step.Kind {
		case StepKindToggle:
			err = s.press(input.KeyToggle, true, true)
		case StepKindDown:
			err = s.press(input.KeyArrowDown, false, false)
		case StepKindUp:
			err = s.press(input.KeyArrowUp, false, false)
		case StepKindHome:
			err = s.press(input.KeyHome, false, false)
		case StepKindEnd:
			err = s.press(input.KeyEnd, false, false)
		case StepKindEscape:
			err = s.press(input.KeyEscape, false, false)
		case StepKindWait:
			s.wait(step.Wait)
		case StepKindClick:
			n := s.doc.ByID(step.Target)
			if n == nil {
				s.log.Warn("Click target not found, ignoring", zap.String("id", step.Target))
				continue
			}
			err = s.input.Pointer(n)
		case StepKindRead:
			err = s.read()
		default:
			err = fmt.Errorf("unsupported step %s", step)
		}
		if err != nil {
			return fmt.Errorf("step %s: %w", step, err)
		}
		s.settle()
	}
	return nil
}

// Close stops navigation.
func (s *Session) Close() {
	s.ctrl.Stop()
	s.input.Reset()
}
