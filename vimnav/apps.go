package vimnav

import (
	"github.com/karagen/karagen/mode"
	"github.com/karagen/karagen/tables"
)

var (
	cmdShift = []string{"command", "shift"}
	cmd      = []string{"command"}
)

// Finder navigates the file list: j/k move, h/l leave and enter folders and
// the g prefix jumps to well-known locations.
func Finder(threshold int) Config {
	return Config{
		Name:             "Finder",
		App:              tables.Finder.BundleID,
		ToggleVar:        mode.Flag("finder_vim_mode", mode.Toggle),
		PrefixVar:        mode.Flag("finder_g", mode.Sequence),
		ToggleKeys:       []string{"j", "k"},
		Threshold:        threshold,
		PrefixKey:        "g",
		Escape:           "escape",
		NotificationID:   "finder_vim",
		NotificationText: "🎯 Finder Vim Mode: ON (ESC to exit)",
		GlobalExit:       true,
		Jumps: []Motion{
			{Key: "g", To: "left_arrow", ToModifiers: []string{"fn"}, Description: "First item"},
			{Key: "e", To: "right_arrow", ToModifiers: []string{"fn"}, Description: "Last item"},
			{Key: "h", To: "h", ToModifiers: cmdShift, Description: "Home"},
			{Key: "d", To: "d", ToModifiers: cmdShift, Description: "Desktop"},
			{Key: "c", To: "c", ToModifiers: cmdShift, Description: "Computer"},
			{Key: "a", To: "a", ToModifiers: cmdShift, Description: "Applications"},
			{Key: "u", To: "u", ToModifiers: cmdShift, Description: "Utilities"},
			{Key: "i", To: "i", ToModifiers: cmdShift, Description: "iCloud Drive"},
			{Key: "l", To: "l", ToModifiers: []string{"command", "option"}, Description: "Downloads"},
		},
		Motions: []Motion{
			{Key: "j", To: "down_arrow", Description: "Down"},
			{Key: "k", To: "up_arrow", Description: "Up"},
			{Key: "h", To: "up_arrow", ToModifiers: cmd, Description: "Parent folder"},
			{Key: "l", To: "down_arrow", ToModifiers: cmd, Description: "Open folder"},
			{Key: "j", Modifiers: []string{"shift"}, To: "down_arrow", ToModifiers: []string{"shift"}, Description: "Extend selection down"},
			{Key: "k", Modifiers: []string{"shift"}, To: "up_arrow", ToModifiers: []string{"shift"}, Description: "Extend selection up"},
			{Key: "slash", To: "f", ToModifiers: cmd, Description: "Search"},
			{Key: "n", To: "g", ToModifiers: cmd, Description: "Find next"},
			{Key: "n", Modifiers: []string{"shift"}, To: "g", ToModifiers: cmdShift, Description: "Find previous"},
			{Key: "d", To: "delete_or_backspace", ToModifiers: cmd, Description: "Move to trash"},
			{Key: "r", To: "return_or_enter", Description: "Rename"},
			{Key: "m", To: "n", ToModifiers: cmdShift, Description: "New folder"},
			{Key: "y", To: "c", ToModifiers: cmd, Description: "Copy"},
			{Key: "p", To: "v", ToModifiers: cmd, Description: "Paste"},
			{Key: "x", To: "x", ToModifiers: cmd, Description: "Cut"},
			{Key: "u", To: "z", ToModifiers: cmd, Description: "Undo"},
			{Key: "r", Modifiers: []string{"control"}, To: "z", ToModifiers: cmdShift, Description: "Redo"},
			{Key: "v", To: "spacebar", Description: "Quick Look"},
		},
	}
}

// Slack moves between messages, threads and views.
func Slack(threshold int) Config {
	return Config{
		Name:             "Slack",
		App:              tables.Slack.BundleID,
		ToggleVar:        mode.Flag("slack_vim_mode", mode.Toggle),
		PrefixVar:        mode.Flag("slack_g", mode.Sequence),
		ToggleKeys:       []string{"j", "k"},
		Threshold:        threshold,
		PrefixKey:        "g",
		Escape:           "escape",
		NotificationID:   "slack_vim",
		NotificationText: "💬 Slack Vim Mode: ON (ESC to exit)",
		GlobalExit:       true,
		Jumps: []Motion{
			{Key: "g", To: "home", Description: "Oldest message"},
			{Key: "h", To: "h", ToModifiers: cmdShift, Description: "Home"},
			{Key: "u", To: "a", ToModifiers: cmdShift, Description: "Unreads"},
			{Key: "d", To: "k", ToModifiers: cmdShift, Description: "Direct messages"},
			{Key: "t", To: "t", ToModifiers: cmdShift, Description: "Threads"},
			{Key: "s", To: "s", ToModifiers: cmdShift, Description: "Saved items"},
			{Key: "m", To: "m", ToModifiers: cmdShift, Description: "Mentions"},
			{Key: "f", To: "d", ToModifiers: cmdShift, Description: "Toggle sidebar"},
		},
		Motions: []Motion{
			{Key: "j", To: "down_arrow", Description: "Next message"},
			{Key: "k", To: "up_arrow", Description: "Previous message"},
			{Key: "h", To: "open_bracket", ToModifiers: cmd, Description: "Back"},
			{Key: "l", To: "right_arrow", Description: "Enter thread"},
			{Key: "d", Modifiers: []string{"control"}, To: "page_down", Description: "Page down"},
			{Key: "u", Modifiers: []string{"control"}, To: "page_up", Description: "Page up"},
			{Key: "g", Modifiers: []string{"shift"}, To: "end", Description: "Newest message"},
			{Key: "u", To: "j", ToModifiers: cmd, Description: "First unread"},
			{Key: "spacebar", To: "k", ToModifiers: cmd, Description: "Quick switcher"},
			{Key: "slash", To: "f", ToModifiers: cmd, Description: "Search"},
			{Key: "n", To: "g", ToModifiers: cmd, Description: "Find next"},
			{Key: "n", Modifiers: []string{"shift"}, To: "g", ToModifiers: cmdShift, Description: "Find previous"},
			{Key: "r", To: "t", ToModifiers: cmd, Description: "Reply in thread"},
			{Key: "e", To: "up_arrow", Description: "Edit last message"},
			{Key: "a", To: "r", ToModifiers: cmdShift, Description: "Add reaction"},
			{Key: "m", To: "m", ToModifiers: []string{"option"}, Description: "Mark unread"},
			{Key: "t", To: "t", ToModifiers: cmdShift, Description: "Threads view"},
			{Key: "tab", To: "f6", ToModifiers: cmd, Description: "Next section"},
			{Key: "tab", Modifiers: []string{"shift"}, To: "f6", ToModifiers: cmdShift, Description: "Previous section"},
			{Key: "o", To: "return_or_enter", Description: "Open conversation"},
			{Key: "i", To: "c", ToModifiers: cmd, Description: "Compose"},
			{Key: "p", To: "p", ToModifiers: cmdShift, Description: "Preferences"},
			{Key: "y", To: "c", ToModifiers: cmd, Description: "Copy"},
			{Key: "v", To: "v", ToModifiers: cmd, Description: "Paste"},
			{Key: "z", Modifiers: []string{"shift"}, To: "z", ToModifiers: cmd, Description: "Undo"},
		},
	}
}
