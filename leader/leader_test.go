package leader

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"

	"github.com/karagen/karagen/karabiner"
	"github.com/karagen/karagen/rule"
)

func testConfig() Config {
	cats := []Category{
		{Key: "a", Name: "Apps", Tag: "apps", Actions: []Action{
			{Key: "v", Description: "VS Code", Events: []karabiner.ToEvent{rule.App("Visual Studio Code")}},
			{Key: "f", Description: "Finder", Events: []karabiner.ToEvent{rule.App("Finder")}},
		}},
		{Key: "w", Name: "Window", Tag: "window", Actions: []Action{
			{Key: "[", Description: "Previous Display", Events: []karabiner.ToEvent{rule.OpenURLBackground("raycast://prev")}},
			{Key: "h", Modifiers: []string{"shift"}, Description: "Move Left", Events: []karabiner.ToEvent{rule.Shell("aerospace move left")}},
			{Key: "1", Modifiers: []string{"shift"}, Description: "Move to N", MenuKey: "⇧N", Events: []karabiner.ToEvent{rule.Shell("x")}},
			{Key: "2", Modifiers: []string{"shift"}, Description: "Move to 2", Hidden: true, Events: []karabiner.ToEvent{rule.Shell("y")}},
		}},
		{Key: "n", Name: "Notifications", Immediate: []karabiner.ToEvent{rule.Shell("clear")}},
		{Key: "t", Name: "Tiling", Tag: "aerospace", Actions: []Action{
			{Key: "f", Description: "Float Toggle", Events: []karabiner.ToEvent{rule.Shell("aerospace layout floating tiling")}},
		}},
	}
	return Config{
		Var:            NewVar("leader", cats),
		Keys:           []string{"l", ";"},
		Threshold:      250,
		Escape:         "escape",
		NotificationID: "leader",
		Categories:     cats,
	}
}

func TestMenuText(t *testing.T) {
	c := testConfig()
	if got, want := c.MenuText(), "(A)pps (W)indow (N)otifications (T)iling"; got != want {
		t.Errorf("MenuText() = %q, want %q", got, want)
	}
	if got, want := c.Categories[1].MenuText(), "([)Previous Display (⇧H)Move Left (⇧N)Move to N"; got != want {
		t.Errorf("Category.MenuText() = %q, want %q", got, want)
	}
	cat := Category{Key: "x", Name: "Lexicon"}
	if got := cat.label(); got != "(X)Lexicon" {
		t.Errorf("label() = %q", got)
	}
}

func TestNewVar(t *testing.T) {
	c := testConfig()
	want := []karabiner.Value{karabiner.Int(1), karabiner.String("apps"), karabiner.String("window"), karabiner.String("aerospace")}
	if diff := cmp.Diff(want, c.Var.Active); diff != "" {
		t.Errorf("active values mismatch (-want +got):\n%s", diff)
	}
	if c.Var.Legal(karabiner.String("notifications")) {
		t.Error("immediate category produced an active value")
	}
}

func TestBuildOrder(t *testing.T) {
	r, err := Build(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	type step struct {
		trigger string
		guard   string
	}
	var got []step
	for _, m := range r.Manipulators {
		c := m.Conditions[0]
		got = append(got, step{rule.Trigger(m), c.Type + " " + c.Value.String()})
	}
	want := []step{
		{"l+semicolon", "variable_if 0"},
		{"escape", "variable_unless 0"},
		{"a", "variable_if 1"},
		{"w", "variable_if 1"},
		{"n", "variable_if 1"},
		{"t", "variable_if 1"},
		{"v", `variable_if "apps"`},
		{"f", `variable_if "apps"`},
		{"open_bracket", `variable_if "window"`},
		{"shift+h", `variable_if "window"`},
		{"shift+1", `variable_if "window"`},
		{"shift+2", `variable_if "window"`},
		{"f", `variable_if "aerospace"`},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(step{})); diff != "" {
		t.Errorf("emission order mismatch (-want +got):\n%s", diff)
	}
}

func TestEntryChord(t *testing.T) {
	r, err := Build(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	entry := r.Manipulators[0]
	if entry.Parameters == nil || entry.Parameters.SimultaneousThresholdMilliseconds != 250 {
		t.Errorf("entry parameters = %+v, want 250ms threshold", entry.Parameters)
	}
	want := []karabiner.ToEvent{
		{SetVariable: &karabiner.SetVariable{Name: "leader", Value: karabiner.Int(1).Ptr()}},
		{SetNotificationMessage: &karabiner.NotificationMessage{ID: "leader", Text: "(A)pps (W)indow (N)otifications (T)iling"}},
	}
	if diff := cmp.Diff(want, entry.To); diff != "" {
		t.Errorf("entry events mismatch (-want +got):\n%s", diff)
	}
	if entry.ToDelayedAction != nil {
		t.Error("entry has a delayed action without a timeout")
	}
}

func TestActionsAreTerminal(t *testing.T) {
	c := testConfig()
	r, err := Build(c)
	if err != nil {
		t.Fatal(err)
	}
	exit := c.Exit()
	for _, m := range r.Manipulators[6:] {
		tail := m.To[len(m.To)-2:]
		if diff := cmp.Diff(exit, tail); diff != "" {
			t.Errorf("%s does not end by leaving the leader (-want +got):\n%s", rule.Trigger(m), diff)
		}
	}
	immediate := r.Manipulators[4]
	want := append([]karabiner.ToEvent{rule.Shell("clear")}, exit...)
	if diff := cmp.Diff(want, immediate.To); diff != "" {
		t.Errorf("immediate category events mismatch (-want +got):\n%s", diff)
	}
}

func TestTimeout(t *testing.T) {
	c := testConfig()
	c.Timeout = 1500
	r, err := Build(c)
	if err != nil {
		t.Fatal(err)
	}
	for i, m := range r.Manipulators {
		delayed := m.ToDelayedAction != nil
		wantDelayed := i == 0 || (i >= 2 && i <= 5 && rule.Trigger(m) != "n")
		if delayed != wantDelayed {
			t.Errorf("%s: delayed action = %v, want %v", rule.Trigger(m), delayed, wantDelayed)
			continue
		}
		if !delayed {
			continue
		}
		if diff := cmp.Diff(c.Exit(), m.ToDelayedAction.ToIfInvoked); diff != "" {
			t.Errorf("%s: timeout events mismatch (-want +got):\n%s", rule.Trigger(m), diff)
		}
		if m.Parameters.ToDelayedActionDelayMilliseconds != 1500 {
			t.Errorf("%s: delay = %d", rule.Trigger(m), m.Parameters.ToDelayedActionDelayMilliseconds)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"duplicate category key", func(c *Config) { c.Categories[1].Key = "a" }, ErrDuplicateBinding},
		{"duplicate action key", func(c *Config) { c.Categories[0].Actions[1].Key = "v" }, ErrDuplicateBinding},
		{"alias duplicates name", func(c *Config) {
			c.Categories[1].Actions[0].Key = "open_bracket"
			c.Categories[1].Actions = append(c.Categories[1].Actions, Action{Key: "[", Description: "again"})
		}, ErrDuplicateBinding},
		{"escape as action", func(c *Config) { c.Categories[0].Actions[0].Key = "escape" }, ErrDuplicateBinding},
		{"escape as category", func(c *Config) { c.Categories[0].Key = "⎋" }, ErrDuplicateBinding},
		{"unknown key", func(c *Config) { c.Categories[0].Actions[0].Key = "nope" }, karabiner.ErrUnknownKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testConfig()
			tt.mutate(&c)
			if _, err := Build(c); !errors.Is(err, tt.want) {
				t.Errorf("Build() error = %v, want %v", err, tt.want)
			}
		})
	}

	c := testConfig()
	c.Categories[0].Tag = "applications"
	if _, err := Build(c); err == nil {
		t.Error("Build accepted a tag the variable does not declare")
	}
	c = testConfig()
	c.Categories[2].Actions = c.Categories[0].Actions
	if _, err := Build(c); err == nil {
		t.Error("Build accepted a category with both immediate events and actions")
	}
}

func TestShiftedActionDoesNotCollide(t *testing.T) {
	c := testConfig()
	c.Categories[3].Actions = append(c.Categories[3].Actions,
		Action{Key: "f", Modifiers: []string{"⇧"}, Description: "Shifted", Events: []karabiner.ToEvent{rule.Shell("z")}})
	if _, err := Build(c); err != nil {
		t.Errorf("Build() error = %v, want nil", err)
	}
}
