package tables

import (
	"net/url"
	"strings"
)

// Link is a URL or deep link. Background links are opened without bringing
// their handler to the front.
type Link struct {
	Name       string
	URL        string
	Background bool
}

// Websites.
var (
	Twitter    = Link{Name: "Twitter", URL: "https://twitter.com"}
	HackerNews = Link{Name: "Hacker News", URL: "https://news.ycombinator.com"}
	Facebook   = Link{Name: "Facebook", URL: "https://facebook.com"}
	Reddit     = Link{Name: "Reddit", URL: "https://reddit.com"}
	Perplex    = Link{Name: "Perplexity", URL: "https://perplexity.com"}
	GitHub     = Link{Name: "GitHub", URL: "https://github.com"}
	YouTube    = Link{Name: "YouTube", URL: "https://youtube.com"}
	LinkedIn   = Link{Name: "LinkedIn", URL: "https://linkedin.com"}
	ChatGPTWeb = Link{Name: "ChatGPT", URL: "https://chatgpt.com"}
)

const raycastWindow = "raycast://extensions/raycast/window-management/"

func window(name, cmd string) Link {
	return Link{Name: name, URL: raycastWindow + cmd, Background: true}
}

// Raycast window management.
var (
	WindowCenter          = window("Center", "center-half")
	WindowTop             = window("Top", "top-half")
	WindowBottom          = window("Bottom", "bottom-half")
	WindowLeft            = window("Left", "left-half")
	WindowRight           = window("Right", "right-half")
	WindowMaximize        = window("Fullscreen", "maximize")
	WindowPreviousDisplay = window("Previous Display", "previous-display")
	WindowNextDisplay     = window("Next Display", "next-display")
	WindowPreviousDesktop = window("Previous Desktop", "previous-desktop")
	WindowNextDesktop     = window("Next Desktop", "next-desktop")
)

// WindowLayout opens a saved Raycast custom window layout by name.
func WindowLayout(name string) Link {
	return Link{
		Name:       name,
		URL:        "raycast://raycast/customWindowManagementCommand?name=" + strings.ReplaceAll(url.QueryEscape(name), "+", "%20"),
		Background: true,
	}
}

// ReactNativeLayout is the custom layout bound in the window sublayer.
const ReactNativeLayout = "React Native Dev"

// Raycast system commands.
var (
	DoNotDisturb         = Link{Name: "Do Not Disturb", URL: "raycast://extensions/do-not-disturb/toggle"}
	Camera               = Link{Name: "Camera", URL: "raycast://extensions/raycast/system/open-camera"}
	EmojiSearch          = Link{Name: "Emoji", URL: "raycast://extensions/raycast/emoji-symbols/search-emoji-symbols"}
	GoogleSearch         = Link{Name: "Google", URL: "raycast://extensions/mblode/google-search/index"}
	ClipboardHistory     = Link{Name: "History", URL: "raycast://extensions/raycast/clipboard-history/clipboard-history"}
	AIChat               = Link{Name: "AI Chat", URL: "raycast://extensions/raycast/raycast-ai/ai-chat"}
	DismissNotifications = Link{Name: "Notifications", URL: "raycast://script-commands/dismiss-notifications"}
	Confetti             = Link{Name: "Confetti", URL: "raycast://extensions/raycast/raycast/confetti"}
)

// Links lists every named link above.
var Links = []Link{
	Twitter, HackerNews, Facebook, Reddit, Perplex, GitHub, YouTube, LinkedIn, ChatGPTWeb,
	WindowCenter, WindowTop, WindowBottom, WindowLeft, WindowRight, WindowMaximize,
	WindowPreviousDisplay, WindowNextDisplay, WindowPreviousDesktop, WindowNextDesktop,
	DoNotDisturb, Camera, EmojiSearch, GoogleSearch, ClipboardHistory, AIChat,
	DismissNotifications, Confetti,
}
