package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/goinertia/internal/analysis"
	"github.com/dbsmedya/goinertia/internal/catalog"
	"github.com/dbsmedya/goinertia/internal/config"
	"github.com/dbsmedya/goinertia/internal/logger"
	"github.com/dbsmedya/goinertia/internal/metrics"
	"github.com/dbsmedya/goinertia/internal/report"
	"github.com/dbsmedya/goinertia/internal/shutdown"
)

// session holds everything one command invocation needs.
type session struct {
	cfg      *config.Config
	log      *logger.Logger
	metrics  *metrics.Metrics
	analyzer *analysis.Analyzer
	printer  *report.Printer
	out      io.Writer

	ctx    context.Context
	cancel context.CancelFunc
}

// loadConfig reads the config file with CLI overrides applied. The default
// file is optional; an explicitly named one must exist.
func loadConfig() (*config.Config, error) {
	configFile := GetConfigFile()

	var (
		cfg *config.Config
		err error
	)
	if configFile == defaultConfigFile {
		cfg, err = config.LoadOrDefault(configFile)
	} else {
		cfg, err = config.Load(configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.Concurrency, overrides.Overdensity, overrides.MetricsFile)
	return cfg, nil
}

func colorEnabled() bool {
	if GetCLIOverrides().NoColor {
		return false
	}
	_, set := os.LookupEnv("NO_COLOR")
	return !set
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log = log.WithRun(uuid.NewString())

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	m := metrics.New()
	a, err := analysis.New(cfg, cat, log, m)
	if err != nil {
		return nil, err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := shutdown.WithSignals(parent, func(sig os.Signal) {
		log.Warnw("Received signal, cancelling analysis", "signal", sig.String())
	})

	log.Debugw("Session ready",
		"command", cmd.Name(),
		"galaxies", cat.Len(),
		"concurrency", cfg.Processing.Concurrency,
	)

	out := cmd.OutOrStdout()
	return &session{
		cfg:      cfg,
		log:      log,
		metrics:  m,
		analyzer: a,
		printer:  report.New(out, colorEnabled()),
		out:      out,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// close stops signal handling, writes the metrics textfile if configured
// and flushes the logger.
func (s *session) close() error {
	s.cancel()

	var err error
	if path := s.cfg.Metrics.Path; path != "" {
		if err = s.metrics.WriteTextfile(path); err != nil {
			s.log.Errorw("Failed to write metrics", "path", path, "error", err)
		} else {
			s.log.Infow("Metrics written", "path", path)
		}
	}

	_ = s.log.Sync()
	return err
}

// withSession runs fn with a fresh session and closes it afterwards.
func withSession(cmd *cobra.Command, fn func(*session) error) (err error) {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.close(); err == nil {
			err = cerr
		}
	}()
	return fn(s)
}
