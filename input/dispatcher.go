// Package input turns raw host events into controller calls.
package input

import (
	"strings"

	"go.uber.org/zap"

	"axnav/common"
	"axnav/dom"
	"axnav/navigator"
)

// Well known key names, values follow DOM KeyboardEvent.key.
const (
	KeyArrowDown = "ArrowDown"
	KeyArrowUp   = "ArrowUp"
	KeyHome      = "Home"
	KeyEnd       = "End"
	KeyEscape    = "Escape"
	KeyAlt       = "Alt"
	KeyShift     = "Shift"
	KeyToggle    = "N"
)

// Key is keyboard event.
type Key struct {
	Name  string
	Alt   bool
	Shift bool
	Ctrl  bool
	Meta  bool
}

// Controller is what dispatcher drives.
type Controller interface {
	Start(propagated bool, src common.Source) error
	Stop()
	Move(dir common.Direction) error
	Jump(u dom.Unit, src common.Source) error
	UnitAt(n dom.Node, src common.Source) dom.Unit
	State() navigator.State
}

// Dispatcher maps events to navigation operations and tracks keys which are
// currently held down so auto-repeat does not turn into series of moves.
type Dispatcher struct {
	log  *zap.Logger
	ctrl Controller
	held map[string]bool
}

// New creates dispatcher for ctrl.
func New(ctrl Controller, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{log: log.Named("input"), ctrl: ctrl, held: make(map[string]bool)}
}

// Reset forgets held keys, called on document load.
func (d *Dispatcher) Reset() {
	clear(d.held)
}

func keyID(name string) string {
	// letters arrive in either case depending on Shift
	if len([]rune(name)) == 1 {
		return strings.ToUpper(name)
	}
	return name
}

func (k Key) toggle() bool {
	return k.Alt && k.Shift && !k.Ctrl && !k.Meta && keyID(k.Name) == KeyToggle
}

// KeyDown handles key press. Returns true when event was consumed and host
// should not process it further.
func (d *Dispatcher) KeyDown(k Key) (bool, error) {
	id := keyID(k.Name)
	if d.held[id] {
		return d.consumes(k), nil
	}
	d.held[id] = true

	active := d.ctrl.State().Mode == common.ModeActive
	switch {
	case k.toggle():
		d.rehold(id)
		if active {
			d.ctrl.Stop()
			return true, nil
		}
		return true, d.ctrl.Start(false, common.SourceNav)
	case !active || k.Alt || k.Ctrl || k.Meta:
		return false, nil
	}

	switch id {
	case KeyEscape:
		d.rehold(id)
		d.ctrl.Stop()
		return true, nil
	case KeyArrowDown:
		return true, d.ctrl.Move(common.DirectionDown)
	case KeyArrowUp:
		return true, d.ctrl.Move(common.DirectionUp)
	case KeyHome:
		return true, d.ctrl.Move(common.DirectionTop)
	case KeyEnd:
		return true, d.ctrl.Move(common.DirectionBottom)
	}
	return false, nil
}

// rehold forgets held keys on mode change except id, which is still down and
// must not act again on auto-repeat.
func (d *Dispatcher) rehold(id string) {
	clear(d.held)
	d.held[id] = true
}

// consumes reports whether repeated k would be consumed had it been fresh.
func (d *Dispatcher) consumes(k Key) bool {
	if k.toggle() {
		return true
	}
	if d.ctrl.State().Mode != common.ModeActive || k.Alt || k.Ctrl || k.Meta {
		return false
	}
	switch keyID(k.Name) {
	case KeyEscape, KeyArrowDown, KeyArrowUp, KeyHome, KeyEnd:
		return true
	}
	return false
}

// KeyUp handles key release.
func (d *Dispatcher) KeyUp(k Key) {
	delete(d.held, keyID(k.Name))
}

// Held returns number of keys currently held.
func (d *Dispatcher) Held() int {
	return len(d.held)
}

// Pointer handles click or touch on n, selecting unit containing it.
func (d *Dispatcher) Pointer(n dom.Node) error {
	if n == nil {
		return nil
	}
	u := d.ctrl.UnitAt(n, common.SourcePoint)
	if u.Empty() {
		d.log.Debug("Nothing to select at pointer", zap.String("node", dom.Short(n)))
		return nil
	}
	if d.ctrl.State().Mode != common.ModeActive {
		clear(d.held)
	}
	return d.ctrl.Jump(u, common.SourcePoint)
}
