package tables

// AeroCommand is one AeroSpace CLI invocation bound in the tiling category.
// MenuKey overrides the menu label; Hidden keeps the entry out of the menu
// when a neighbouring entry already summarizes it.
type AeroCommand struct {
	Key         string
	Shift       bool
	Command     string
	Description string
	MenuKey     string
	Hidden      bool
}

// DefaultAerospacePath is where Homebrew installs the aerospace binary.
const DefaultAerospacePath = "/opt/homebrew/bin/aerospace"

// AeroCommands in menu order.
var AeroCommands = []AeroCommand{
	{Key: "s", Command: "layout stack", Description: "Stack Layout"},
	{Key: "f", Command: "layout floating tiling", Description: "Float Toggle"},
	{Key: "u", Command: "fullscreen", Description: "Fullscreen"},
	{Key: "z", Command: "balance-sizes", Description: "Balance Sizes"},

	{Key: "h", Command: "focus left", Description: "Focus Left"},
	{Key: "j", Command: "focus down", Description: "Focus Down"},
	{Key: "k", Command: "focus up", Description: "Focus Up"},
	{Key: "l", Command: "focus right", Description: "Focus Right"},

	{Key: "h", Shift: true, Command: "move left", Description: "Move Left"},
	{Key: "j", Shift: true, Command: "move down", Description: "Move Down"},
	{Key: "k", Shift: true, Command: "move up", Description: "Move Up"},
	{Key: "l", Shift: true, Command: "move right", Description: "Move Right"},

	{Key: "1", Command: "workspace 1", Description: "Workspace 1"},
	{Key: "2", Command: "workspace 2", Description: "Workspace 2"},
	{Key: "3", Command: "workspace 3", Description: "Workspace 3"},
	{Key: "4", Command: "workspace 4", Description: "Workspace 4"},
	{Key: "5", Command: "workspace 5", Description: "Workspace 5"},
	{Key: "b", Command: "workspace B", Description: "Workspace B"},
	{Key: "c", Command: "workspace C", Description: "Workspace C"},
	{Key: "t", Command: "workspace T", Description: "Workspace T"},

	{Key: "1", Shift: true, Command: "move-node-to-workspace 1", Description: "Move to N", MenuKey: "⇧N"},
	{Key: "2", Shift: true, Command: "move-node-to-workspace 2", Description: "Move to 2", Hidden: true},
	{Key: "3", Shift: true, Command: "move-node-to-workspace 3", Description: "Move to 3", Hidden: true},
	{Key: "4", Shift: true, Command: "move-node-to-workspace 4", Description: "Move to 4", Hidden: true},
	{Key: "5", Shift: true, Command: "move-node-to-workspace 5", Description: "Move to 5", Hidden: true},
	{Key: "b", Shift: true, Command: "move-node-to-workspace B", Description: "Move to B", Hidden: true},
	{Key: "c", Shift: true, Command: "move-node-to-workspace C", Description: "Move to C", Hidden: true},
	{Key: "t", Shift: true, Command: "move-node-to-workspace T", Description: "Move to T", Hidden: true},

	{Key: "-", Command: "resize smart -50", Description: "Resize -50"},
	{Key: "=", Command: "resize smart +50", Description: "Resize +50"},
	{Key: "slash", Command: "layout tiles horizontal vertical", Description: "Tiles Layout"},
	{Key: "comma", Command: "layout accordion horizontal vertical", Description: "Accordion Layout"},

	{Key: "o", Command: "enable toggle", Description: "Enable Toggle"},
	{Key: "r", Command: "flatten-workspace-tree", Description: "Reset Layout"},
	{Key: "tab", Command: "workspace-back-and-forth", Description: "Back and Forth"},
	{Key: "tab", Shift: true, Command: "move-workspace-to-monitor --wrap-around next", Description: "Next Monitor"},
}
