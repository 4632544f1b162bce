package cheatsheet

import (
	"strings"
	"testing"

	"github.com/karagen/karagen/karabiner"
	"github.com/karagen/karagen/leader"
	"github.com/karagen/karagen/rule"
)

func testLeader() leader.Config {
	cats := []leader.Category{
		{Key: "a", Name: "Apps", Tag: "apps", Actions: []leader.Action{
			{Key: "v", Description: "VS Code", Events: []karabiner.ToEvent{rule.App("Visual Studio Code")}},
			{Key: "h", Modifiers: []string{"shift"}, Description: "Hidden", Hidden: true},
		}},
		{Key: "w", Name: "Window", Tag: "window", Actions: []leader.Action{
			{Key: "[", Description: "Previous Display"},
		}},
		{Key: "n", Name: "Notifications", Immediate: []karabiner.ToEvent{rule.Shell("true")}},
	}
	return leader.Config{Var: leader.NewVar("leader", cats), Keys: []string{"l", "semicolon"}, Categories: cats}
}

func TestRender(t *testing.T) {
	out := Render(testLeader(), false)
	if !strings.HasPrefix(out, "Leader L+;\n") {
		t.Errorf("title line missing:\n%s", out)
	}
	for _, want := range []string{"Keys", "A V", "VS Code", "W [", "Previous Display", "(runs immediately)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Hidden") {
		t.Errorf("hidden action rendered:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("uncolored output has escape codes:\n%q", out)
	}
}

func TestRenderTimeout(t *testing.T) {
	c := testLeader()
	c.Timeout = 1000
	if out := Render(c, false); !strings.HasPrefix(out, "Leader L+; (times out)\n") {
		t.Errorf("title = %q", strings.SplitN(out, "\n", 2)[0])
	}
}
