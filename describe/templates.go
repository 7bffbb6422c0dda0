package describe

import (
	"bytes"
	"fmt"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
)

// AlertValues are available to boundary alert templates.
type AlertValues struct {
	Direction string // direction of failed move
	Attempt   int    // edge counter value, 0 for the first failed move
}

// LabelValues are available to label augmentation template.
type LabelValues struct {
	Label string // text of associated label element
	Text  string // unit description
}

// Messages holds parsed user facing message templates.
type Messages struct {
	alerts []*template.Template
	label  *template.Template
}

// NewMessages parses alert list and label augmentation format. Empty alert
// entry means silent alert.
func NewMessages(alerts []string, labelFormat string) (*Messages, error) {
	m := &Messages{}
	for i, a := range alerts {
		t, err := parse(fmt.Sprintf("alert-%d", i), a)
		if err != nil {
			return nil, err
		}
		m.alerts = append(m.alerts, t)
	}
	t, err := parse("label", labelFormat)
	if err != nil {
		return nil, err
	}
	m.label = t
	return m, nil
}

func parse(name, field string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return nil, fmt.Errorf("unable to parse template field %s: %w", name, err)
	}
	return tmpl, nil
}

func execute(tmpl *template.Template, values any) (string, error) {
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Alerts returns number of alert entries.
func (m *Messages) Alerts() int {
	return len(m.alerts)
}

// Alert expands alert entry i.
func (m *Messages) Alert(i int, values AlertValues) (string, error) {
	if i < 0 || i >= len(m.alerts) {
		return "", fmt.Errorf("alert index %d out of range [0, %d)", i, len(m.alerts))
	}
	return execute(m.alerts[i], values)
}

// Augment attaches label text to unit description.
func (m *Messages) Augment(label, text string) (string, error) {
	s, err := execute(m.label, LabelValues{Label: label, Text: text})
	if err != nil {
		return "", err
	}
	return Normalize(s), nil
}
