package tables

import (
	"regexp"
	"strings"
	"testing"
)

func TestBundleIDsCompile(t *testing.T) {
	var apps []App
	for _, a := range Apps {
		if a.BundleID != "" {
			apps = append(apps, a)
		}
	}
	for _, id := range BundleIDs(apps...) {
		re, err := regexp.Compile(id)
		if err != nil {
			t.Errorf("%s: %v", id, err)
			continue
		}
		if !strings.HasPrefix(id, "^") || !strings.HasSuffix(id, "$") {
			t.Errorf("%s is not anchored", id)
		}
		if re.MatchString("com.example.Other") {
			t.Errorf("%s matches an unrelated bundle", id)
		}
	}
}

func TestBundleIDsPanicsWithoutPattern(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("BundleIDs(Discord) did not panic")
		}
	}()
	BundleIDs(Discord)
}

func TestUniqueKeys(t *testing.T) {
	seen := map[string]bool{}
	for _, e := range Emojis {
		if seen[e.Key] {
			t.Errorf("emoji key %q bound twice", e.Key)
		}
		seen[e.Key] = true
	}
	if len(Emojis) != 18 {
		t.Errorf("got %d emoji, want 18", len(Emojis))
	}

	seen = map[string]bool{}
	for _, s := range Snippets {
		if seen[s.Key] {
			t.Errorf("snippet key %q bound twice", s.Key)
		}
		seen[s.Key] = true
	}

	seen = map[string]bool{}
	for _, c := range AeroCommands {
		k := c.Key
		if c.Shift {
			k = "⇧" + k
		}
		if seen[k] {
			t.Errorf("aerospace key %q bound twice", k)
		}
		seen[k] = true
	}
	if len(AeroCommands) != 36 {
		t.Errorf("got %d aerospace commands, want 36", len(AeroCommands))
	}
}

func TestWindowLayout(t *testing.T) {
	got := WindowLayout(ReactNativeLayout)
	want := "raycast://raycast/customWindowManagementCommand?name=React%20Native%20Dev"
	if got.URL != want || !got.Background {
		t.Errorf("WindowLayout = %+v, want URL %s in background", got, want)
	}
	if got := WindowLayout("a+b&c").URL; !strings.HasSuffix(got, "name=a%2Bb%26c") {
		t.Errorf("WindowLayout did not escape reserved characters: %s", got)
	}
}
