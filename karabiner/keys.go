package karabiner

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	// ErrUnknownKey is returned for names outside the host's key-code vocabulary.
	ErrUnknownKey = errors.New("unknown key code")
	// ErrUnknownModifier is returned for names that are not modifiers.
	ErrUnknownModifier = errors.New("unknown modifier")
)

var keyCodes = func() map[string]bool {
	m := map[string]bool{}
	for c := 'a'; c <= 'z'; c++ {
		m[string(c)] = true
	}
	for c := '0'; c <= '9'; c++ {
		m[string(c)] = true
	}
	for i := 1; i <= 24; i++ {
		m["f"+strconv.Itoa(i)] = true
	}
	for _, k := range []string{
		"return_or_enter", "escape", "delete_or_backspace", "delete_forward", "tab", "spacebar",
		"hyphen", "equal_sign", "open_bracket", "close_bracket", "backslash", "non_us_pound",
		"semicolon", "quote", "grave_accent_and_tilde", "comma", "period", "slash",
		"non_us_backslash", "caps_lock",
		"up_arrow", "down_arrow", "left_arrow", "right_arrow",
		"page_up", "page_down", "home", "end",
		"left_control", "left_shift", "left_option", "left_command",
		"right_control", "right_shift", "right_option", "right_command", "fn",
		"print_screen", "scroll_lock", "pause", "insert", "application",
		"help", "power", "execute", "menu", "select", "stop", "again", "undo",
		"cut", "copy", "paste", "find", "mute", "volume_decrement", "volume_increment",
		"display_brightness_decrement", "display_brightness_increment",
		"mission_control", "launchpad", "dashboard", "illumination_decrement",
		"illumination_increment", "apple_display_brightness_decrement",
		"apple_display_brightness_increment", "apple_top_case_display_brightness_decrement",
		"apple_top_case_display_brightness_increment", "lang1", "lang2",
		"japanese_eisuu", "japanese_kana",
		"keypad_num_lock", "keypad_slash", "keypad_asterisk", "keypad_hyphen",
		"keypad_plus", "keypad_enter", "keypad_1", "keypad_2", "keypad_3", "keypad_4",
		"keypad_5", "keypad_6", "keypad_7", "keypad_8", "keypad_9", "keypad_0",
		"keypad_period", "keypad_equal_sign", "keypad_comma",
	} {
		m[k] = true
	}
	return m
}()

var consumerKeyCodes = map[string]bool{
	"play_or_pause":       true,
	"fastforward":         true,
	"rewind":              true,
	"scan_next_track":     true,
	"scan_previous_track": true,
	"eject":               true,
}

var keyAliases = map[string]string{
	";":  "semicolon",
	"'":  "quote",
	"[":  "open_bracket",
	"]":  "close_bracket",
	"-":  "hyphen",
	"=":  "equal_sign",
	"/":  "slash",
	"\\": "backslash",
	",":  "comma",
	".":  "period",
	"`":  "grave_accent_and_tilde",
	"⇥":  "tab",
	"⎋":  "escape",
	"⏎":  "return_or_enter",
	"␣":  "spacebar",
	"⌫":  "delete_or_backspace",
	"↑":  "up_arrow",
	"↓":  "down_arrow",
	"←":  "left_arrow",
	"→":  "right_arrow",
}

var modifierNames = map[string]bool{
	"any": true, "command": true, "control": true, "option": true, "shift": true, "fn": true,
	"caps_lock": true,
	"left_command": true, "left_control": true, "left_option": true, "left_shift": true,
	"right_command": true, "right_control": true, "right_option": true, "right_shift": true,
}

var modifierAliases = map[string]string{
	"⌘":    "command",
	"⌥":    "option",
	"⌃":    "control",
	"⇧":    "shift",
	"cmd":  "command",
	"alt":  "option",
	"opt":  "option",
	"ctrl": "control",
}

// KeyCode resolves a key name or alias to its canonical key code.
func KeyCode(name string) (string, error) {
	if code, ok := keyAliases[name]; ok {
		return code, nil
	}
	if keyCodes[name] || consumerKeyCodes[name] {
		return name, nil
	}
	return "", errors.WithHint(errors.Wrapf(ErrUnknownKey, "%q", name),
		"use a Karabiner key_code name such as \"semicolon\" or an alias such as \";\"")
}

// MustKeyCode is like KeyCode but panics on unknown names. It is meant for
// compile-time tables.
func MustKeyCode(name string) string {
	code, err := KeyCode(name)
	if err != nil {
		panic(err)
	}
	return code
}

// IsConsumerKey reports whether code must be emitted as consumer_key_code.
func IsConsumerKey(code string) bool {
	return consumerKeyCodes[code]
}

// Modifiers expands modifier names, aliases and glyph strings such as "⌘⇧"
// into canonical modifier names, preserving order.
func Modifiers(names ...string) ([]string, error) {
	var out []string
	for _, name := range names {
		if name == "" {
			continue
		}
		if modifierNames[name] {
			out = append(out, name)
			continue
		}
		if m, ok := modifierAliases[name]; ok {
			out = append(out, m)
			continue
		}
		// glyph run, e.g. "⌘⌥⌃"
		var run []string
		for _, r := range name {
			m, ok := modifierAliases[string(r)]
			if !ok {
				run = nil
				break
			}
			run = append(run, m)
		}
		if run == nil {
			return nil, errors.Wrapf(ErrUnknownModifier, "%q", name)
		}
		out = append(out, run...)
	}
	return out, nil
}

var keyLabels = map[string]string{
	"semicolon":              ";",
	"quote":                  "'",
	"open_bracket":           "[",
	"close_bracket":          "]",
	"hyphen":                 "-",
	"equal_sign":             "=",
	"slash":                  "/",
	"backslash":              "\\",
	"comma":                  ",",
	"period":                 ".",
	"grave_accent_and_tilde": "`",
	"tab":                    "⇥",
	"spacebar":               "␣",
	"escape":                 "⎋",
	"return_or_enter":        "⏎",
}

// Label renders a key code for on-screen menus: punctuation keys become their
// glyph, everything else is upper-cased.
func Label(code string) string {
	if l, ok := keyLabels[code]; ok {
		return l
	}
	return strings.ToUpper(code)
}
