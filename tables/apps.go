// Package tables holds the literal data the generator turns into rules:
// applications, web and deep links, emoji, code snippets and AeroSpace
// commands. Nothing here knows about the host's rule format.
package tables

import "fmt"

// App names an application and, when known, the pattern matching its bundle
// identifier.
type App struct {
	Name     string
	BundleID string
}

// Applications launched or matched by the generated rules.
var (
	OnePassword  = App{Name: "1Password"}
	Akiflow      = App{Name: "Akiflow"}
	Arc          = App{Name: "Arc", BundleID: `^company\.thebrowser\.Browser$`}
	Beeper       = App{Name: "Beeper Desktop", BundleID: `^com\.automattic\.beeper\.desktop$`}
	Brave        = App{Name: "Brave", BundleID: `^com\.brave\.Browser$`}
	ChatGPT      = App{Name: "ChatGPT"}
	ChatGPTAtlas = App{Name: "ChatGPT Atlas", BundleID: `^com\.openai\.atlas$`}
	Chrome       = App{Name: "Google Chrome", BundleID: `^com\.google\.Chrome$`}
	Cursor       = App{Name: "Cursor", BundleID: `^com\.todesktop\.230313mzl4w4u92$`}
	Discord      = App{Name: "Discord"}
	Figma        = App{Name: "Figma", BundleID: `^com\.figma\.Desktop$`}
	Finder       = App{Name: "Finder", BundleID: `^com\.apple\.finder$`}
	Ghostty      = App{Name: "GHOSTTY", BundleID: `^com\.ghostty\.Ghostty$`}
	Lexicon      = App{Name: "Lexicon", BundleID: `^com\.rekord\.cloud\.lexicon$`}
	Notion       = App{Name: "Notion"}
	Perplexity   = App{Name: "Perplexity"}
	Reflect      = App{Name: "Reflect"}
	Safari       = App{Name: "Safari", BundleID: `^com\.apple\.Safari$`}
	Slack        = App{Name: "Slack", BundleID: `^com\.tinyspeck\.slackmacgap$`}
	Spotify      = App{Name: "Spotify"}
	Superhuman   = App{Name: "Superhuman"}
	Teams        = App{Name: "Microsoft Teams"}
	VSCode       = App{Name: "Visual Studio Code", BundleID: `^com\.microsoft\.VSCode$`}
	WezTerm      = App{Name: "WezTerm", BundleID: `^com\.github\.wez\.wezterm$`}
	Zed          = App{Name: "Zed", BundleID: `^dev\.zed\.Zed$`}
	Zen          = App{Name: "Zen Browser", BundleID: `^app\.zen-browser\.zen$`}
)

// Apps lists every application above.
var Apps = []App{
	OnePassword, Akiflow, Arc, Beeper, Brave, ChatGPT, ChatGPTAtlas, Chrome, Cursor,
	Discord, Figma, Finder, Ghostty, Lexicon, Notion, Perplexity, Reflect, Safari,
	Slack, Spotify, Superhuman, Teams, VSCode, WezTerm, Zed, Zen,
}

// AtlasPath is opened by path; the app does not respond to open -a reliably.
const AtlasPath = "/Applications/ChatGPT Atlas.app"

// Browsers get history, tab and window-switcher remaps.
var Browsers = []App{Arc, Safari, Chrome, Zen, Brave, ChatGPTAtlas}

// CodeEditors get hyper+key translated to control+key.
var CodeEditors = []App{VSCode, Cursor, Zed, WezTerm}

// BundleIDs returns the bundle identifier patterns of apps. It panics if an
// app has none, which is a mistake in a literal table.
func BundleIDs(apps ...App) []string {
	out := make([]string, 0, len(apps))
	for _, a := range apps {
		if a.BundleID == "" {
			panic(fmt.Sprintf("tables: %s has no bundle identifier", a.Name))
		}
		out = append(out, a.BundleID)
	}
	return out
}
