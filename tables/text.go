package tables

// Emoji is a glyph pasted from the leader's emoji category.
type Emoji struct {
	Key         string
	Glyph       string
	Description string
}

// Emojis in menu order.
var Emojis = []Emoji{
	{"j", "😂", "Joy/Laughing"},
	{"h", "❤️", "Heart"},
	{"t", "👍", "Thumbs up"},
	{"f", "🔥", "Fire"},
	{"s", "🙁", "Slightly frowning face"},
	{"o", "😍", "Heart eyes"},
	{"p", "🙏", "Prayer/Thank you"},
	{"c", "👏", "Clap"},
	{"l", "🥰", "Love/Smiling with hearts"},
	{"w", "🙂", "Smile"},
	{"e", "🤔", "Thinking"},
	{"a", "😅", "Sweat smile"},
	{"r", "🚀", "Rocket"},
	{"v", "✅", "Check mark"},
	{"g", "😬", "Grimacing"},
	{"m", "🤯", "Mind blown"},
	{"z", "😎", "Sunglasses"},
	{"b", "💪", "Flexed biceps"},
}

// Snippet is literal code pasted from the leader's code category.
type Snippet struct {
	Key         string
	Text        string
	Description string
}

// Snippets in menu order.
var Snippets = []Snippet{
	{"l", "console.log();", "Log"},
	{"f", "() => {}", "Function"},
	{"i", "if () {}", "If"},
	{"r", "return ", "Return"},
	{"t", "this.", "This"},
}

// ClearNotificationsScript dismisses every banner in Notification Center.
const ClearNotificationsScript = `tell application "System Events"
  try
    repeat
      set _groups to groups of UI element 1 of scroll area 1 of group 1 of window "Notification Center" of application process "NotificationCenter"
      set numGroups to number of _groups
      if numGroups = 0 then
        exit repeat
      end if
      repeat with _group in _groups
        set _actions to actions of _group
        set actionPerformed to false
        repeat with _action in _actions
          if description of _action is in {"Clear All", "Close"} then
            perform _action
            set actionPerformed to true
            exit repeat
          end if
        end repeat
        if actionPerformed then
          exit repeat
        end if
      end repeat
    end repeat
  end try
end tell`
