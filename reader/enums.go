package reader

// Scripted input event.
// ENUM(toggle, down, up, home, end, escape, wait, click, read)
type StepKind int
