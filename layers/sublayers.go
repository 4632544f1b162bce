package layers

import (
	"github.com/cockroachdb/errors"

	"github.com/karagen/karagen/karabiner"
	"github.com/karagen/karagen/mode"
	"github.com/karagen/karagen/rule"
	"github.com/karagen/karagen/tables"
)

// Sublayer is a set of hyper+key shortcuts reached by holding hyper and the
// layer key together.
type Sublayer struct {
	Key     string
	Name    string
	Actions []SublayerAction
}

// SublayerAction is one key of a sublayer.
type SublayerAction struct {
	Key         string
	Description string
	Events      []karabiner.ToEvent
}

// Var is the momentary variable held while the layer key is down.
func (s Sublayer) Var() mode.Var {
	return mode.Flag("hyper_sublayer_"+s.Key, mode.Momentary)
}

// HyperSublayers returns one rule per layer. Holding hyper+layer key sets the
// layer variable until the key is released; a layer can only be entered
// while no other layer is held.
func HyperSublayers(layers []Sublayer) ([]karabiner.Rule, error) {
	seen := map[string]string{}
	for _, l := range layers {
		if prev, ok := seen[l.Key]; ok {
			return nil, errors.Newf("sublayers %q and %q share key %q", prev, l.Name, l.Key)
		}
		seen[l.Key] = l.Name
	}

	on := karabiner.Int(1)
	rules := make([]karabiner.Rule, 0, len(layers))
	for _, l := range layers {
		v := l.Var()
		guards := []karabiner.Condition{HyperVar.Is(on)}
		for _, o := range layers {
			if o.Key != l.Key {
				guards = append(guards, o.Var().IsOff())
			}
		}
		entry := rule.Map(l.Key, rule.HyperModifiers...).
			Set(v, on).
			ToAfterKeyUp(v.Reset()).
			Condition(guards...)

		actions := make([]rule.Item, 0, len(l.Actions))
		for _, a := range l.Actions {
			actions = append(actions, rule.Map(a.Key, rule.HyperModifiers...).Description(a.Description).To(a.Events...))
		}
		r, err := rule.New("Hyper Key sublayer \""+l.Key+"\" ("+l.Name+")").Manipulators(
			entry,
			rule.WithCondition(v.Is(on))(actions...),
		).Build()
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// SublayerVars declares the variables of layers.
func SublayerVars(layers []Sublayer) []mode.Var {
	vars := make([]mode.Var, 0, len(layers))
	for _, l := range layers {
		vars = append(vars, l.Var())
	}
	return vars
}

func link(key string, l tables.Link) SublayerAction {
	return SublayerAction{Key: key, Description: l.Name, Events: []karabiner.ToEvent{rule.OpenLink(l.URL, l.Background)}}
}

func app(key string, a tables.App) SublayerAction {
	return SublayerAction{Key: key, Description: a.Name, Events: []karabiner.ToEvent{rule.App(a.Name)}}
}

func key(k, desc, to string, mods ...string) SublayerAction {
	return SublayerAction{Key: k, Description: desc, Events: []karabiner.ToEvent{rule.MustKey(to, mods...)}}
}

// DefaultSublayers are the layers bound when hyper layers are enabled.
func DefaultSublayers() []Sublayer {
	return []Sublayer{
		{Key: "b", Name: "browser-shortcuts", Actions: []SublayerAction{
			link("g", tables.GitHub),
			link("t", tables.Twitter),
			link("h", tables.HackerNews),
			link("f", tables.Facebook),
			link("r", tables.Reddit),
			link("p", tables.Perplex),
			link("y", tables.YouTube),
			link("l", tables.LinkedIn),
			link("c", tables.ChatGPTWeb),
		}},
		{Key: "o", Name: "open-apps", Actions: []SublayerAction{
			app("1", tables.OnePassword),
			app("a", tables.Akiflow),
			{Key: "b", Description: tables.ChatGPTAtlas.Name, Events: []karabiner.ToEvent{rule.OpenAppPath(tables.AtlasPath)}},
			app("c", tables.Cursor),
			app("d", tables.Discord),
			app("e", tables.Superhuman),
			app("f", tables.Finder),
			app("g", tables.Chrome),
			app("h", tables.Figma),
			app("i", tables.ChatGPT),
			app("m", tables.Beeper),
			app("n", tables.Notion),
			app("p", tables.Spotify),
			app("r", tables.Reflect),
			app("s", tables.Slack),
			app("t", tables.Ghostty),
			app("v", tables.VSCode),
			app("x", tables.Lexicon),
			app("z", tables.Zed),
		}},
		{Key: "w", Name: "window-management", Actions: []SublayerAction{
			key("semicolon", "Hide", "h", "right_command"),
			key("u", "Previous tab", "tab", "right_control", "right_shift"),
			key("i", "Next tab", "tab", "right_control"),
			key("b", "Back", "open_bracket", "right_command"),
			key("n", "Forward", "close_bracket", "right_command"),
			link("c", tables.WindowCenter),
			link("k", tables.WindowTop),
			link("j", tables.WindowBottom),
			link("h", tables.WindowLeft),
			link("l", tables.WindowRight),
			link("f", tables.WindowMaximize),
			link("r", tables.WindowLayout(tables.ReactNativeLayout)),
		}},
		{Key: "s", Name: "system-controls", Actions: []SublayerAction{
			key("l", "Lock Screen", "q", "right_control", "right_command"),
			key("e", "Emoji Picker", "spacebar", "right_control", "right_command"),
			link("d", tables.DoNotDisturb),
		}},
		{Key: "v", Name: "movement", Actions: []SublayerAction{
			key("h", "Left", "left_arrow"),
			key("j", "Down", "down_arrow"),
			key("k", "Up", "up_arrow"),
			key("l", "Right", "right_arrow"),
			key("m", "Control F", "f", "right_control"),
			key("s", "Control J", "j", "right_control"),
			key("d", "Shift Command D", "d", "right_shift", "right_command"),
			key("u", "Page Down", "page_down"),
			key("i", "Page Up", "page_up"),
		}},
		{Key: "c", Name: "music-controls", Actions: []SublayerAction{
			key("p", "Play/Pause", "play_or_pause"),
			key("n", "Next", "fastforward"),
			key("b", "Previous", "rewind"),
		}},
		{Key: "r", Name: "raycast-commands", Actions: []SublayerAction{
			link("c", tables.Camera),
			link("e", tables.EmojiSearch),
			link("g", tables.GoogleSearch),
			link("h", tables.ClipboardHistory),
			link("i", tables.AIChat),
			link("n", tables.DismissNotifications),
			link("p", tables.Confetti),
		}},
	}
}
