package config

// Layout of text produced by console collaborators.
// ENUM(plain, tagged)
type ConsoleFormat int

// Tagged reports whether every line is prefixed with its source.
func (f ConsoleFormat) Tagged() bool {
	return f == ConsoleFormatTagged
}
