package layers

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"

	"github.com/karagen/karagen/karabiner"
	"github.com/karagen/karagen/rule"
)

func TestParseCapsLock(t *testing.T) {
	for _, s := range []string{"control", "hyper", "none"} {
		if _, err := ParseCapsLock(s); err != nil {
			t.Errorf("ParseCapsLock(%q) error = %v", s, err)
		}
	}
	if _, err := ParseCapsLock("escape"); !errors.Is(err, ErrCapsLock) {
		t.Errorf("ParseCapsLock(escape) error = %v, want ErrCapsLock", err)
	}
}

func TestCapsLockToControl(t *testing.T) {
	r, err := CapsLockToControl()
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Manipulators) != 2 {
		t.Fatalf("got %d manipulators, want 2", len(r.Manipulators))
	}
	lex, rest := r.Manipulators[0], r.Manipulators[1]
	if diff := cmp.Diff([]karabiner.ToEvent{rule.Hyper()}, lex.To); diff != "" {
		t.Errorf("lexicon events mismatch (-want +got):\n%s", diff)
	}
	if lex.Conditions[0].Type != karabiner.FrontmostApplicationIf || rest.Conditions[0].Type != karabiner.FrontmostApplicationUnless {
		t.Errorf("guards = %+v / %+v", lex.Conditions, rest.Conditions)
	}
	if rest.To[0].KeyCode != "left_control" || rest.ToIfAlone[0].KeyCode != "caps_lock" {
		t.Errorf("control mapping = %+v alone %+v", rest.To, rest.ToIfAlone)
	}
}

func TestCapsLockToHyper(t *testing.T) {
	r, err := CapsLockToHyper(true)
	if err != nil {
		t.Fatal(err)
	}
	m := r.Manipulators[0]
	want := karabiner.Manipulator{
		Type:        "basic",
		Description: "Caps Lock -> Hyper Key",
		From:        karabiner.From{KeyCode: "caps_lock", Modifiers: &karabiner.FromModifiers{Optional: []string{"any"}}},
		To: []karabiner.ToEvent{
			{SetVariable: &karabiner.SetVariable{Name: "hyper", Value: karabiner.Int(1).Ptr()}},
			rule.Hyper(),
		},
		ToIfAlone:    []karabiner.ToEvent{{KeyCode: "escape"}},
		ToAfterKeyUp: []karabiner.ToEvent{{SetVariable: &karabiner.SetVariable{Name: "hyper", Value: karabiner.Int(0).Ptr()}}},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("manipulator mismatch (-want +got):\n%s", diff)
	}

	r, err = CapsLockToHyper(false)
	if err != nil {
		t.Fatal(err)
	}
	if m := r.Manipulators[0]; len(m.To) != 1 || m.ToAfterKeyUp != nil {
		t.Errorf("untracked hyper = %+v", m)
	}
}

func TestAppRules(t *testing.T) {
	tests := []struct {
		name  string
		build func() (karabiner.Rule, error)
		n     int
		apps  int
	}{
		{"lexicon", LexiconVim, 4, 1},
		{"editors", CodeEditors, 7, 4},
		{"browsers", BrowserNavigation, 6, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := tt.build()
			if err != nil {
				t.Fatal(err)
			}
			if len(r.Manipulators) != tt.n {
				t.Errorf("got %d manipulators, want %d", len(r.Manipulators), tt.n)
			}
			for _, m := range r.Manipulators {
				if got := len(m.Conditions[0].BundleIdentifiers); got != tt.apps {
					t.Errorf("%s guards %d apps, want %d", rule.Trigger(m), got, tt.apps)
				}
			}
		})
	}
}

func TestBrowserForwardAllowsCommand(t *testing.T) {
	r, err := BrowserNavigation()
	if err != nil {
		t.Fatal(err)
	}
	fwd := r.Manipulators[1]
	want := &karabiner.FromModifiers{Mandatory: []string{"control", "option"}, Optional: []string{"command"}}
	if diff := cmp.Diff(want, fwd.From.Modifiers); diff != "" {
		t.Errorf("forward modifiers mismatch (-want +got):\n%s", diff)
	}
}

func TestHyperSublayers(t *testing.T) {
	layers := DefaultSublayers()
	rules, err := HyperSublayers(layers)
	if err != nil {
		t.Fatal(err)
	}
	if len(rules) != len(layers) {
		t.Fatalf("got %d rules, want %d", len(rules), len(layers))
	}
	w := rules[2]
	if w.Description != `Hyper Key sublayer "w" (window-management)` {
		t.Errorf("description = %q", w.Description)
	}
	entry := w.Manipulators[0]
	if len(entry.Conditions) != len(layers) {
		t.Errorf("entry has %d guards, want hyper plus %d other layers", len(entry.Conditions), len(layers)-1)
	}
	if entry.Conditions[0].Name != "hyper" {
		t.Errorf("first guard = %+v, want hyper", entry.Conditions[0])
	}
	for _, c := range entry.Conditions[1:] {
		if c.Name == "hyper_sublayer_w" || c.Value.String() != "0" {
			t.Errorf("unexpected guard %+v", c)
		}
	}
	if diff := cmp.Diff([]karabiner.ToEvent{layers[2].Var().Reset()}, entry.ToAfterKeyUp); diff != "" {
		t.Errorf("key-up mismatch (-want +got):\n%s", diff)
	}
	for _, m := range w.Manipulators[1:] {
		if len(m.Conditions) != 1 || m.Conditions[0].Name != "hyper_sublayer_w" {
			t.Errorf("%s guards = %+v", rule.Trigger(m), m.Conditions)
		}
	}

	music := rules[5].Manipulators[1]
	if music.To[0].ConsumerKeyCode != "play_or_pause" {
		t.Errorf("music play = %+v", music.To[0])
	}

	dup := append(DefaultSublayers(), Sublayer{Key: "b", Name: "again"})
	if _, err := HyperSublayers(dup); err == nil {
		t.Error("HyperSublayers accepted two layers on one key")
	}
}
