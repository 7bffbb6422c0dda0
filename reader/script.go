package reader

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Step is one scripted event.
type Step struct {
	Kind StepKind
	// Wait is virtual time to let pass for wait steps.
	Wait time.Duration
	// Target is element id for click steps.
	Target string
}

func (s Step) String() string {
	switch s.Kind {
	case StepKindWait:
		return s.Kind.String() + ":" + s.Wait.String()
	case StepKindClick:
		return s.Kind.String() + ":" + s.Target
	}
	return s.Kind.String()
}

// ParseScript reads steps separated by commas or spaces, for example
// "toggle down down wait:3s click:submit end escape". Kind names are case
// insensitive. "read" keeps moving down until document end.
func ParseScript(in string) ([]Step, error) {
	var steps []Step
	for _, token := range strings.FieldsFunc(in, func(r rune) bool { return r == ',' || unicode.IsSpace(r) }) {
		name, arg, hasArg := strings.Cut(token, ":")
		kind, err := ParseStepKind(strings.ToLower(name))
		if err != nil {
			return nil, fmt.Errorf("bad step %q: %w", token, err)
		}
		step := Step{Kind: kind}
		switch kind {
		case StepKindWait:
			if !hasArg {
				return nil, fmt.Errorf("bad step %q: duration is required", token)
			}
			if step.Wait, err = time.ParseDuration(arg); err != nil || step.Wait < 0 {
				return nil, fmt.Errorf("bad step %q: invalid duration", token)
			}
		case StepKindClick:
			if step.Target = strings.TrimPrefix(arg, "#"); !hasArg || step.Target == "" {
				return nil, fmt.Errorf("bad step %q: element id is required", token)
			}
		default:
			if hasArg {
				return nil, fmt.Errorf("bad step %q: unexpected argument", token)
			}
		}
		steps = append(steps, step)
	}
	return steps, nil
}
