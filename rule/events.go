package rule

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/karagen/karagen/karabiner"
)

// Key returns a key-press event. Modifiers accept names, aliases and glyph runs.
func Key(key string, mods ...string) (karabiner.ToEvent, error) {
	code, err := karabiner.KeyCode(key)
	if err != nil {
		return karabiner.ToEvent{}, err
	}
	m, err := karabiner.Modifiers(mods...)
	if err != nil {
		return karabiner.ToEvent{}, errors.Wrapf(err, "key %q", key)
	}
	if karabiner.IsConsumerKey(code) {
		return karabiner.ToEvent{ConsumerKeyCode: code, Modifiers: m}, nil
	}
	return karabiner.ToEvent{KeyCode: code, Modifiers: m}, nil
}

// MustKey is like Key but panics on bad input. Use it for literal tables only.
func MustKey(key string, mods ...string) karabiner.ToEvent {
	ev, err := Key(key, mods...)
	if err != nil {
		panic(err)
	}
	return ev
}

// Shell runs cmd through the host's shell.
func Shell(cmd string) karabiner.ToEvent {
	return karabiner.ToEvent{ShellCommand: cmd}
}

// App launches (or focuses) an application by name.
func App(name string) karabiner.ToEvent {
	return Shell(fmt.Sprintf("open -a %s.app", shellQuote(name)))
}

// OpenURL opens a URL or deep link in the foreground.
func OpenURL(url string) karabiner.ToEvent {
	return Shell("open " + shellQuote(url))
}

// OpenURLBackground opens a deep link without activating its handler.
func OpenURLBackground(url string) karabiner.ToEvent {
	return Shell("open -g " + shellQuote(url))
}

// OpenLink opens url in the background or the foreground.
func OpenLink(url string, background bool) karabiner.ToEvent {
	if background {
		return OpenURLBackground(url)
	}
	return OpenURL(url)
}

// OpenAppPath launches an application bundle by file path.
func OpenAppPath(path string) karabiner.ToEvent {
	return karabiner.ToEvent{SoftwareFunction: &karabiner.SoftwareFunction{
		OpenApplication: &karabiner.OpenApplication{FilePath: path},
	}}
}

// Paste types text by swapping it through the clipboard and restoring the
// previous clipboard contents afterwards.
func Paste(text string) karabiner.ToEvent {
	script := []string{
		"set prev to the clipboard",
		`set the clipboard to "` + appleScriptEscape(text) + `"`,
		`tell application "System Events"`,
		`  keystroke "v" using command down`,
		"  delay 0.1",
		"end tell",
		"set the clipboard to prev",
	}
	return OSAScript(strings.Join(script, "\n"))
}

// OSAScript runs an AppleScript program.
func OSAScript(script string) karabiner.ToEvent {
	return Shell("osascript -e " + shellQuote(script))
}

// Notify shows a persistent notification.
func Notify(id, text string) karabiner.ToEvent {
	return karabiner.ToEvent{SetNotificationMessage: &karabiner.NotificationMessage{ID: id, Text: text}}
}

// ClearNotification removes the notification with the given id.
func ClearNotification(id string) karabiner.ToEvent {
	return Notify(id, "")
}

// Hyper is the four-modifier chord used as a "hyper" key.
func Hyper() karabiner.ToEvent {
	return karabiner.ToEvent{
		KeyCode:   "left_shift",
		Modifiers: []string{"left_command", "left_control", "left_option"},
	}
}

// HyperModifiers are the mandatory modifiers of a hyper-key trigger.
var HyperModifiers = []string{"left_command", "left_control", "left_option", "left_shift"}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func appleScriptEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
