package profile

import (
	"github.com/karagen/karagen/karabiner"
	"github.com/karagen/karagen/leader"
	"github.com/karagen/karagen/rule"
	"github.com/karagen/karagen/tables"
)

// LeaderVarName is the host variable of the leader state machine.
const LeaderVarName = "leader"

// LeaderNotificationID is shared by every leader menu.
const LeaderNotificationID = "leader"

func events(evs ...karabiner.ToEvent) []karabiner.ToEvent { return evs }

func launch(key string, app tables.App, desc string) leader.Action {
	if desc == "" {
		desc = app.Name
	}
	return leader.Action{Key: key, Description: desc, Events: events(rule.App(app.Name))}
}

func open(key string, l tables.Link) leader.Action {
	return leader.Action{Key: key, Description: l.Name, Events: events(rule.OpenLink(l.URL, l.Background))}
}

func press(key, desc, to string, mods ...string) leader.Action {
	return leader.Action{Key: key, Description: desc, Events: events(rule.MustKey(to, mods...))}
}

// LeaderCategories returns the leader menu in display order. aerospace is
// the binary the tiling category shells out to.
func LeaderCategories(aerospace string) []leader.Category {
	return []leader.Category{
		{Key: "a", Name: "Apps", Tag: "apps", Actions: []leader.Action{
			launch("1", tables.OnePassword, ""),
			launch("a", tables.Akiflow, ""),
			launch("b", tables.Arc, ""),
			launch("c", tables.Cursor, ""),
			launch("d", tables.Discord, ""),
			launch("e", tables.Superhuman, ""),
			launch("f", tables.Finder, ""),
			launch("g", tables.Chrome, "Chrome"),
			launch("i", tables.ChatGPT, ""),
			launch("m", tables.Beeper, "Beeper"),
			launch("n", tables.Notion, ""),
			launch("p", tables.Perplexity, ""),
			launch("r", tables.Reflect, ""),
			launch("s", tables.Slack, ""),
			launch("t", tables.Ghostty, "Terminal"),
			launch("v", tables.VSCode, "VS Code"),
			launch("w", tables.Teams, "Teams"),
			launch("x", tables.Lexicon, ""),
			launch("z", tables.Zed, ""),
		}},
		{Key: "r", Name: "Raycast", Tag: "raycast", Actions: []leader.Action{
			open("c", tables.Camera),
			open("e", tables.EmojiSearch),
			open("g", tables.GoogleSearch),
			open("h", tables.ClipboardHistory),
			open("i", tables.AIChat),
			open("n", tables.DismissNotifications),
			open("p", tables.Confetti),
		}},
		{Key: "w", Name: "Window", Tag: "window", Actions: []leader.Action{
			open("c", tables.WindowCenter),
			open("f", tables.WindowMaximize),
			open("h", tables.WindowLeft),
			open("j", tables.WindowBottom),
			open("k", tables.WindowTop),
			open("l", tables.WindowRight),
			open("[", tables.WindowPreviousDisplay),
			open("]", tables.WindowNextDisplay),
			open("-", tables.WindowPreviousDesktop),
			open("=", tables.WindowNextDesktop),
		}},
		{Key: "b", Name: "Browser", Tag: "browser", Actions: []leader.Action{
			open("c", tables.ChatGPTWeb),
			open("g", tables.GitHub),
			open("h", tables.HackerNews),
			open("l", tables.LinkedIn),
			open("p", tables.Perplex),
			open("r", tables.Reddit),
			open("t", tables.Twitter),
			open("y", tables.YouTube),
		}},
		{Key: "s", Name: "System", Tag: "system", Actions: []leader.Action{
			press("d", "Do Not Disturb", "d", "left_command", "left_option", "left_control"),
			press("l", "Lock Screen", "q", "right_control", "right_command"),
			press("e", "Emoji Picker", "spacebar", "right_control", "right_command"),
		}},
		{Key: "e", Name: "Emoji", Tag: "emoji", Actions: emojiActions()},
		{Key: "c", Name: "Code", Tag: "code", Actions: snippetActions()},
		{Key: "n", Name: "Notifications", Immediate: events(rule.OSAScript(tables.ClearNotificationsScript))},
		{Key: "t", Name: "Tiling", Tag: "aerospace", Actions: aerospaceActions(aerospace)},
	}
}

func emojiActions() []leader.Action {
	out := make([]leader.Action, 0, len(tables.Emojis))
	for _, e := range tables.Emojis {
		out = append(out, leader.Action{Key: e.Key, Description: e.Glyph, Events: events(rule.Paste(e.Glyph))})
	}
	return out
}

func snippetActions() []leader.Action {
	out := make([]leader.Action, 0, len(tables.Snippets))
	for _, s := range tables.Snippets {
		out = append(out, leader.Action{Key: s.Key, Description: s.Description, Events: events(rule.Paste(s.Text))})
	}
	return out
}

func aerospaceActions(bin string) []leader.Action {
	if bin == "" {
		bin = tables.DefaultAerospacePath
	}
	out := make([]leader.Action, 0, len(tables.AeroCommands))
	for _, c := range tables.AeroCommands {
		a := leader.Action{
			Key:         c.Key,
			Description: c.Description,
			MenuKey:     c.MenuKey,
			Hidden:      c.Hidden,
			Events:      events(rule.Shell(bin + " " + c.Command)),
		}
		if c.Shift {
			a.Modifiers = []string{"shift"}
		}
		out = append(out, a)
	}
	return out
}
