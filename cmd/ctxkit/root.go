package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/ctxkit/assembler"
	"github.com/randalmurphal/ctxkit/config"
	"github.com/randalmurphal/ctxkit/source"
)

// globalFlags holds the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	maxTokens  int
	root       string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "ctxkit",
		Short: "Budget-aware context assembly for LLM prompts",
		Long: "ctxkit reads a set of files, concatenates them into one prompt-ready\n" +
			"context under a token budget, and reports how much of the budget is used.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&g.configPath, "config", "c", "", "config file (.yaml, .yml, .toml or .json)")
	pf.IntVar(&g.maxTokens, "max-tokens", 0, "token ceiling (overrides config)")
	pf.StringVar(&g.root, "root", "", "project root for block headers (default: detected from the working directory)")
	pf.StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn or error")

	cmd.AddCommand(newAssembleCmd(g))
	cmd.AddCommand(newStatsCmd(g))
	cmd.AddCommand(newPromptCmd(g))
	cmd.AddCommand(newWatchCmd(g))
	cmd.AddCommand(newSchemaCmd())

	return cmd
}

// loadConfig applies defaults, then the config file, then the
// environment, then command-line flags.
func (g *globalFlags) loadConfig() (config.Config, error) {
	cfg := config.DefaultConfig()
	if g.configPath != "" {
		if err := cfg.LoadFile(g.configPath); err != nil {
			return config.Config{}, err
		}
	}
	cfg.LoadFromEnv()

	if g.maxTokens > 0 {
		cfg = cfg.WithMaxTokens(g.maxTokens)
	}
	if g.root != "" {
		cfg = cfg.WithProjectRoot(g.root)
	}
	if g.logLevel != "" {
		cfg = cfg.WithLogLevel(g.logLevel)
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// session is an assembler built from the resolved configuration.
type session struct {
	cfg    config.Config
	logger *slog.Logger
	reader *source.FileReader
	asm    *assembler.Assembler
}

func (g *globalFlags) open(cmd *cobra.Command) (*session, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	root, err := resolveRoot(cfg.ProjectRoot)
	if err != nil {
		return nil, err
	}
	if dir, ok := root.Root(); ok {
		logger.Debug("resolved project root", slog.String("root", dir))
	}

	reader := source.NewFileReader().WithMaxBytes(cfg.MaxFileBytes)
	asm := assembler.New(reader,
		assembler.WithBudget(cfg.Budget()),
		assembler.WithRootResolver(root),
		assembler.WithTruncator(cfg.Truncator()),
		assembler.WithLogger(logger),
	)

	return &session{cfg: cfg, logger: logger, reader: reader, asm: asm}, nil
}

// resolveRoot returns the configured root, else the nearest directory
// holding a root marker, else the working directory.
func resolveRoot(configured string) (assembler.RootResolver, error) {
	if configured != "" {
		abs, err := filepath.Abs(configured)
		if err != nil {
			return nil, fmt.Errorf("resolve project root: %w", err)
		}
		return source.StaticRoot(abs), nil
	}
	if detected := source.DetectRoot("."); detected != "" {
		return detected, nil
	}
	return source.WorkDirRoot{}, nil
}

// addFiles adds each path to the context. Files that cannot be added are
// logged and skipped. It returns the number of files added.
func (s *session) addFiles(ctx context.Context, paths []string) int {
	added := 0
	for _, p := range paths {
		id, err := filepath.Abs(p)
		if err != nil {
			id = p
		}
		if err := s.asm.Add(ctx, id); err != nil {
			s.logger.Warn("skipping file",
				slog.String("path", p),
				slog.Any("error", err))
			continue
		}
		added++
	}
	return added
}

// watch keeps the context in sync with the filesystem until ctx is done,
// calling fn after every change.
func (s *session) watch(ctx context.Context, fn assembler.Listener) error {
	unsubscribe := s.asm.OnChange(fn)
	defer unsubscribe()

	w, err := source.NewWatcher(s.asm, source.WatchOptions{
		Prune:  s.cfg.PruneDeleted,
		Logger: s.logger,
	})
	if err != nil {
		return err
	}
	defer w.Close()

	s.logger.Info("watching context files",
		slog.Int("files", s.asm.Len()),
		slog.Int("dirs", len(w.Dirs())))
	return w.Run(ctx)
}

func (s *session) close() {
	_ = s.asm.Close()
}
