package reader_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"axnav/reader"
)

func TestParseScript(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []reader.Step
		wantErr bool
	}{
		{name: "empty", in: "  ", want: nil},
		{
			name: "mixed separators",
			in:   "toggle, down  DOWN\twait:1.5s,click:#submit end escape read",
			want: []reader.Step{
				{Kind: reader.StepKindToggle},
				{Kind: reader.StepKindDown},
				{Kind: reader.StepKindDown},
				{Kind: reader.StepKindWait, Wait: 1500 * time.Millisecond},
				{Kind: reader.StepKindClick, Target: "submit"},
				{Kind: reader.StepKindEnd},
				{Kind: reader.StepKindEscape},
				{Kind: reader.StepKindRead},
			},
		},
		{name: "home and up", in: "home up", want: []reader.Step{{Kind: reader.StepKindHome}, {Kind: reader.StepKindUp}}},
		{name: "unknown step", in: "toggle jump", wantErr: true},
		{name: "wait without duration", in: "wait", wantErr: true},
		{name: "bad duration", in: "wait:soon", wantErr: true},
		{name: "negative duration", in: "wait:-1s", wantErr: true},
		{name: "click without target", in: "click", wantErr: true},
		{name: "click with empty target", in: "click:#", wantErr: true},
		{name: "unexpected argument", in: "down:2", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reader.ParseScript(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseScript(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseScript(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestStep_String(t *testing.T) {
	for _, tt := range []struct {
		step reader.Step
		want string
	}{
		{reader.Step{Kind: reader.StepKindDown}, "down"},
		{reader.Step{Kind: reader.StepKindWait, Wait: 2 * time.Second}, "wait:2s"},
		{reader.Step{Kind: reader.StepKindClick, Target: "ok"}, "click:ok"},
	} {
		if got := tt.step.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
