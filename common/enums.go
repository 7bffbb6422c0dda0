// Package common keeps enumerations shared by the classifiers, the traversal
// engine, the controller and configuration. Keeping them apart from config
// lets the library packages be used without pulling in program configuration.
package common

// Origin of a navigation request: keyboard driven linear navigation or
// pointer/touch driven selection.
// ENUM(nav, point)
type Source int

// Navigation controller mode.
// ENUM(idle, active)
type Mode int

// Requested move.
// ENUM(up, down, top, bottom)
type Direction int

// Kind of content node as reported by document adapter.
// ENUM(other, element, text, comment, doctype, document)
type NodeType int

// Symbolic audio cue identifiers handed to the audio collaborator.
// ENUM(none, edge, start, stop, link, button, checkbox-on, checkbox-off, radio-on, radio-off, edit, select, heading, image, list-item, table)
type Sound int

// Speech queueing mode for an utterance.
// ENUM(interrupt, enqueue)
type QueueMode int

// Markup flavour of a loaded document.
// ENUM(html, xhtml)
type Markup int

// Absolute reports whether the move ignores the current unit.
func (d Direction) Absolute() bool {
	return d == DirectionTop || d == DirectionBottom
}

// Continuation returns relative direction used to keep walking after a unit
// reached with d had to be skipped.
func (d Direction) Continuation() Direction {
	switch d {
	case DirectionTop:
		return DirectionDown
	case DirectionBottom:
		return DirectionUp
	default:
		return d
	}
}
