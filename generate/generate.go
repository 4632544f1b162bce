// Package generate builds the Karabiner document for a configuration,
// verifies it and writes it out.
package generate

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/karagen/karagen/cheatsheet"
	"github.com/karagen/karagen/check"
	"github.com/karagen/karagen/karabiner"
	"github.com/karagen/karagen/options"
	"github.com/karagen/karagen/profile"
)

// Service is the main entry point for generation.
type Service struct {
	cfg    *options.Config
	logger *zap.SugaredLogger
	stdout io.Writer
	stderr io.Writer
}

type ServiceOption func(*Service)

// WithStdout sets the stdout writer
func WithStdout(w io.Writer) ServiceOption {
	return func(s *Service) {
		s.stdout = w
	}
}

// WithStderr sets the stderr writer
func WithStderr(w io.Writer) ServiceOption {
	return func(s *Service) {
		s.stderr = w
	}
}

// WithLogger sets the logger for the service.
func WithLogger(l *zap.SugaredLogger) ServiceOption {
	return func(s *Service) {
		s.logger = l
	}
}

// New creates a new Service with the given configuration.
func New(cfg *options.Config, opts ...ServiceOption) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	s := &Service{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}
	if s.stdout == nil {
		s.stdout = os.Stdout
	}
	if s.stderr == nil {
		s.stderr = os.Stderr
	}
	if s.logger == nil {
		s.logger = zap.NewNop().Sugar()
	}
	return s, nil
}

// Build assembles and verifies the document. Warning findings are logged.
// Error findings fail the build unless the configuration is not strict, in
// which case they are logged and the document is still returned.
func (s *Service) Build(ctx context.Context) (*karabiner.Config, check.Report, error) {
	p, report, err := s.build(ctx)
	if err != nil {
		return nil, report, err
	}
	doc := &karabiner.Config{
		Global:   karabiner.Global{ShowInMenuBar: s.cfg.ShowInMenuBar},
		Profiles: []karabiner.Profile{p.Karabiner()},
	}
	return doc, report, nil
}

func (s *Service) build(ctx context.Context) (*profile.Profile, check.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, check.Report{}, err
	}
	p, err := profile.Build(s.cfg)
	if err != nil {
		return nil, check.Report{}, err
	}
	s.logger.Debugf("built profile %q with %d rules", p.Name, len(p.Rules))
	for _, r := range p.Rules {
		s.logger.Debugf("rule %q: %d manipulators", r.Description, len(r.Manipulators))
	}

	report := check.Run(p.Rules, p.Registry)
	for _, f := range report.Warnings() {
		s.logger.Warn(f.String())
	}
	if err := report.Err(); err != nil {
		if s.cfg.Strict {
			return nil, report, err
		}
		for _, f := range report.Errors() {
			s.logger.Error(f.String())
		}
	}
	return p, report, nil
}

// Run performs one invocation: print the cheatsheet, check the rules, or
// build and write the document.
func (s *Service) Run(ctx context.Context, ro options.RunOptions) error {
	switch {
	case ro.Cheatsheet:
		p, _, err := s.build(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(s.stdout, cheatsheet.Render(p.Leader, ro.Color))
		return err
	case ro.Check:
		return s.check(ctx)
	}

	doc, _, err := s.Build(ctx)
	if err != nil {
		return err
	}
	data, err := karabiner.Marshal(doc)
	if err != nil {
		return err
	}
	if ro.DryRun || s.cfg.Output == "-" {
		_, err := s.stdout.Write(data)
		return err
	}

	path, err := expandTilde(s.cfg.Output)
	if err != nil {
		return err
	}
	if s.cfg.Merge {
		data, err = s.merge(path, doc.Profiles[0])
		if err != nil {
			return err
		}
	}
	if err := writeFileAtomic(path, data); err != nil {
		return err
	}
	s.logger.Infof("wrote %d rules to %s", len(doc.Profiles[0].ComplexModifications.Rules), path)
	return nil
}

// check prints every finding and fails when any of them is an error,
// whatever the strict setting.
func (s *Service) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := profile.Build(s.cfg)
	if err != nil {
		return err
	}
	report := check.Run(p.Rules, p.Registry)
	for _, f := range report.Findings {
		fmt.Fprintln(s.stdout, f)
	}
	fmt.Fprintf(s.stdout, "%d rules, %d errors, %d warnings\n",
		len(p.Rules), len(report.Errors()), len(report.Warnings()))
	return report.Err()
}

func (s *Service) merge(path string, p karabiner.Profile) ([]byte, error) {
	existing, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.WithHint(errors.Wrapf(err, "merge into %s", path),
				"run once without --merge to create the file")
		}
		return nil, errors.Wrapf(err, "merge into %s", path)
	}
	s.logger.Debugf("merging profile %q into %s", p.Name, path)
	return karabiner.MergeProfile(existing, p)
}
