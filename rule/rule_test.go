package rule

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"

	"github.com/karagen/karagen/karabiner"
	"github.com/karagen/karagen/mode"
)

var (
	leader = mode.Var{Name: "leader", Kind: mode.Sequence, Inactive: karabiner.Int(0),
		Active: []karabiner.Value{karabiner.Int(1)}}
	prefix = mode.Flag("finder_g", mode.Sequence)
)

func TestMapSimultaneous(t *testing.T) {
	m, err := MapSimultaneous([]string{"l", ";"}, 250).
		Set(leader, karabiner.Int(1)).
		Notify("leader", "(A)pps").
		Condition(leader.IsOff()).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	want := karabiner.Manipulator{
		Type: "basic",
		From: karabiner.From{Simultaneous: []karabiner.SimultaneousKey{{KeyCode: "l"}, {KeyCode: "semicolon"}}},
		To: []karabiner.ToEvent{
			{SetVariable: &karabiner.SetVariable{Name: "leader", Value: karabiner.Int(1).Ptr()}},
			{SetNotificationMessage: &karabiner.NotificationMessage{ID: "leader", Text: "(A)pps"}},
		},
		Conditions: []karabiner.Condition{{Type: "variable_if", Name: "leader", Value: karabiner.Int(0).Ptr()}},
		Parameters: &karabiner.Parameters{SimultaneousThresholdMilliseconds: 250},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("manipulator mismatch (-want +got):\n%s", diff)
	}
}

func TestMapModifiers(t *testing.T) {
	m, err := Map("h", "⌘⌥⌃").ToKey("⇥", "⌃⇧").Build()
	if err != nil {
		t.Fatal(err)
	}
	want := karabiner.Manipulator{
		Type: "basic",
		From: karabiner.From{KeyCode: "h", Modifiers: &karabiner.FromModifiers{Mandatory: []string{"command", "option", "control"}}},
		To:   []karabiner.ToEvent{{KeyCode: "tab", Modifiers: []string{"control", "shift"}}},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("manipulator mismatch (-want +got):\n%s", diff)
	}

	m, err = Map("caps_lock").Optional("any").To(Hyper()).ToIfAlone(MustKey("caps_lock")).Build()
	if err != nil {
		t.Fatal(err)
	}
	if m.From.Modifiers == nil || !cmp.Equal(m.From.Modifiers.Optional, []string{"any"}) {
		t.Errorf("optional modifiers = %+v, want [any]", m.From.Modifiers)
	}

	m, err = Map("p").ToKey("play_or_pause").Build()
	if err != nil {
		t.Fatal(err)
	}
	if m.To[0].ConsumerKeyCode != "play_or_pause" || m.To[0].KeyCode != "" {
		t.Errorf("media key emitted as %+v, want consumer_key_code", m.To[0])
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		b    *Builder
		want error
	}{
		{"empty key", Map("").ToKey("a"), ErrEmptyTrigger},
		{"unknown from key", Map("hyper").ToKey("a"), karabiner.ErrUnknownKey},
		{"unknown to key", Map("a").ToKey("arrow_up"), karabiner.ErrUnknownKey},
		{"unknown modifier", Map("a", "super").ToKey("b"), karabiner.ErrUnknownModifier},
		{"one key chord", MapSimultaneous([]string{"j"}, 50).ToKey("a"), ErrEmptyTrigger},
		{"no events", Map("a"), ErrNoEvents},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.b.Build(); !errors.Is(err, tt.want) {
				t.Errorf("Build() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestWithConditionNesting(t *testing.T) {
	vim := mode.Flag("finder_vim_mode", mode.Toggle)
	r, err := New("Finder", IfApp(`^com\.apple\.finder$`)).Manipulators(
		WithCondition(prefix.IsOff())(Map("g").Set(prefix, karabiner.Int(1))),
		WithCondition(vim.Is(karabiner.Int(1)))(
			WithCondition(prefix.IsOff())(Map("j").ToKey("down_arrow")),
		),
	).Build()
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Manipulators) != 2 {
		t.Fatalf("got %d manipulators, want 2", len(r.Manipulators))
	}
	var got []string
	for _, c := range r.Manipulators[1].Conditions {
		got = append(got, c.Type+":"+c.Name)
	}
	want := []string{"frontmost_application_if:", "variable_if:finder_vim_mode", "variable_if:finder_g"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("condition order mismatch (-want +got):\n%s", diff)
	}
	if n := len(r.Manipulators[0].Conditions); n != 2 {
		t.Errorf("first manipulator has %d conditions, want 2", n)
	}
}

func TestBuilderReuse(t *testing.T) {
	b := Map("j").ToKey("down_arrow")
	r1, err := New("a", IfApp("x")).Manipulators(b).Build()
	if err != nil {
		t.Fatal(err)
	}
	r2, err := New("b").Manipulators(b).Build()
	if err != nil {
		t.Fatal(err)
	}
	if len(r1.Manipulators[0].Conditions) != 1 || r2.Manipulators[0].Conditions != nil {
		t.Errorf("conditions leaked between rules: %+v / %+v", r1.Manipulators[0].Conditions, r2.Manipulators[0].Conditions)
	}
}

func TestEmptyRule(t *testing.T) {
	r, err := New("empty").Build()
	if err != nil {
		t.Fatal(err)
	}
	if r.Manipulators == nil {
		t.Error("Manipulators is nil; want empty slice so JSON encodes []")
	}
}

func TestUnless(t *testing.T) {
	if got := Unless(IfApp("x")).Type; got != karabiner.FrontmostApplicationUnless {
		t.Errorf("Unless(IfApp).Type = %q", got)
	}
	if got := Unless(leader.IsOff()); got.Type != karabiner.VariableUnless || got.Name != "leader" {
		t.Errorf("Unless(IsOff) = %+v", got)
	}
	if got := Unless(Unless(leader.IsOff())).Type; got != karabiner.VariableIf {
		t.Errorf("double Unless type = %q", got)
	}
}

func TestLaunchEvents(t *testing.T) {
	tests := []struct {
		name string
		ev   karabiner.ToEvent
		want string
	}{
		{"app", App("Visual Studio Code"), "open -a 'Visual Studio Code'.app"},
		{"app quote", App("Bob's App"), `open -a 'Bob'\''s App'.app`},
		{"url", OpenURL("https://github.com"), "open 'https://github.com'"},
		{"background", OpenURLBackground("raycast://x"), "open -g 'raycast://x'"},
	}
	for _, tt := range tests {
		if tt.ev.ShellCommand != tt.want {
			t.Errorf("%s: shell_command = %q, want %q", tt.name, tt.ev.ShellCommand, tt.want)
		}
	}
}

func TestPaste(t *testing.T) {
	cmd := Paste(`say "hi" it's`).ShellCommand
	if !strings.HasPrefix(cmd, "osascript -e '") {
		t.Fatalf("Paste command = %q", cmd)
	}
	if !strings.Contains(cmd, `set the clipboard to "say \"hi\" it'\''s"`) {
		t.Errorf("text not escaped for AppleScript and shell: %q", cmd)
	}
	if !strings.Contains(cmd, "set the clipboard to prev") {
		t.Errorf("clipboard not restored: %q", cmd)
	}
}

func TestTrigger(t *testing.T) {
	m, _ := Map("h", "control", "option").ToKey("a").Build()
	if got := Trigger(m); got != "control+option+h" {
		t.Errorf("Trigger = %q", got)
	}
	m, _ = MapSimultaneous([]string{"j", "k"}, 0).ToKey("a").Build()
	if got := Trigger(m); got != "j+k" {
		t.Errorf("Trigger = %q", got)
	}
	if m.Parameters != nil {
		t.Errorf("zero threshold produced parameters %+v", m.Parameters)
	}
}
