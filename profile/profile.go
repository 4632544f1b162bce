// Package profile assembles the ordered rule list of one Karabiner profile
// from the options and declares every mode variable it uses.
package profile

import (
	"github.com/cockroachdb/errors"

	"github.com/karagen/karagen/karabiner"
	"github.com/karagen/karagen/layers"
	"github.com/karagen/karagen/leader"
	"github.com/karagen/karagen/mode"
	"github.com/karagen/karagen/options"
	"github.com/karagen/karagen/vimnav"
)

// Profile is a built profile together with the variables its rules use.
type Profile struct {
	Name       string
	Parameters karabiner.Parameters
	Rules      []karabiner.Rule
	Registry   *mode.Registry
	// Leader is the leader as configured, for menus and cheatsheets.
	Leader leader.Config
}

// Karabiner returns the wire form of p.
func (p *Profile) Karabiner() karabiner.Profile {
	cm := karabiner.ComplexModifications{Rules: p.Rules}
	if params := p.Parameters; !params.IsZero() {
		cm.Parameters = &params
	}
	return karabiner.Profile{Name: p.Name, ComplexModifications: cm}
}

// Leader returns the leader configuration described by cfg.
func Leader(cfg *options.Config) leader.Config {
	cats := LeaderCategories(cfg.AerospacePath)
	return leader.Config{
		Var:            leader.NewVar(LeaderVarName, cats),
		Keys:           cfg.Leader.Keys,
		Threshold:      cfg.Leader.Threshold,
		Escape:         "escape",
		Timeout:        cfg.Leader.Timeout,
		NotificationID: LeaderNotificationID,
		Categories:     cats,
	}
}

// Build assembles the profile. Rules are emitted in a fixed order: caps lock,
// leader, hyper sublayers, code editors, Lexicon, browsers, then each
// application's vim navigation followed by its exit.
func Build(cfg *options.Config) (*Profile, error) {
	if cfg == nil {
		return nil, errors.New("nil config")
	}
	caps, err := layers.ParseCapsLock(cfg.CapsLock)
	if err != nil {
		return nil, err
	}
	if cfg.HyperLayers && caps != layers.CapsHyper {
		return nil, errors.WithHint(errors.Newf("hyper layers need caps lock %q, have %q", layers.CapsHyper, caps),
			"set capsLock: hyper or turn hyperLayers off")
	}
	if len(cfg.Leader.Keys) == 0 {
		return nil, errors.WithHint(errors.New("leader has no entry keys"), "set leader.keys, e.g. [l, semicolon]")
	}

	p := &Profile{
		Name:       cfg.Profile,
		Parameters: karabiner.Parameters{SimultaneousThresholdMilliseconds: cfg.SimultaneousThreshold},
		Leader:     Leader(cfg),
	}
	if p.Name == "" {
		p.Name = options.DefaultProfile
	}
	vars := []mode.Var{p.Leader.Var}

	add := func(rs ...karabiner.Rule) { p.Rules = append(p.Rules, rs...) }
	build := func(name string, f func() (karabiner.Rule, error)) error {
		r, err := f()
		if err != nil {
			return errors.Wrapf(err, "build %s", name)
		}
		add(r)
		return nil
	}

	switch caps {
	case layers.CapsControl:
		if err := build("caps lock", layers.CapsLockToControl); err != nil {
			return nil, err
		}
	case layers.CapsHyper:
		r, err := layers.CapsLockToHyper(cfg.HyperLayers)
		if err != nil {
			return nil, errors.Wrap(err, "build caps lock")
		}
		add(r)
		if cfg.HyperLayers {
			vars = append(vars, layers.HyperVar)
		}
	}

	if err := build("leader", func() (karabiner.Rule, error) { return leader.Build(p.Leader) }); err != nil {
		return nil, err
	}

	if cfg.HyperLayers {
		sub := layers.DefaultSublayers()
		rs, err := layers.HyperSublayers(sub)
		if err != nil {
			return nil, errors.Wrap(err, "build hyper sublayers")
		}
		add(rs...)
		vars = append(vars, layers.SublayerVars(sub)...)
	}

	for _, s := range []struct {
		name string
		f    func() (karabiner.Rule, error)
	}{
		{"code editors", layers.CodeEditors},
		{"lexicon", layers.LexiconVim},
		{"browser navigation", layers.BrowserNavigation},
	} {
		if err := build(s.name, s.f); err != nil {
			return nil, err
		}
	}

	var navs []vimnav.Config
	if cfg.Finder {
		navs = append(navs, vimnav.Finder(cfg.VimThreshold))
	}
	if cfg.Slack {
		navs = append(navs, vimnav.Slack(cfg.VimThreshold))
	}
	for _, n := range navs {
		rs, err := vimnav.Build(n)
		if err != nil {
			return nil, errors.Wrapf(err, "build %s navigation", n.Name)
		}
		add(rs...)
		vars = append(vars, n.Vars()...)
	}

	p.Registry, err = mode.NewRegistry(vars...)
	if err != nil {
		return nil, err
	}
	return p, nil
}
