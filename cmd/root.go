// Package cmd implements the mywallet CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/mywallet/internal/assistant"
	"github.com/theirongolddev/mywallet/internal/auth"
	"github.com/theirongolddev/mywallet/internal/cli"
	"github.com/theirongolddev/mywallet/internal/config"
	"github.com/theirongolddev/mywallet/internal/logging"
	"github.com/theirongolddev/mywallet/internal/model"
	"github.com/theirongolddev/mywallet/internal/store"
	"github.com/theirongolddev/mywallet/internal/wallet"
)

var (
	flagDataDir   string
	flagBackend   string
	flagEphemeral bool
	flagQuiet     bool
	flagVerbose   bool
)

var errNotLoggedIn = errors.New("not logged in; run `mywallet login` first")

var rootCmd = &cobra.Command{
	Use:           "mywallet",
	Short:         "Personal finance wallet",
	Long:          "Track your balance, spending categories and savings vaults, and ask the wallet assistant about them.",
	RunE:          runBalance,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.RenderError("Error", userMessage(err)))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Directory holding the wallet database")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Storage backend: sqlite, bolt or memory")
	rootCmd.PersistentFlags().BoolVar(&flagEphemeral, "ephemeral", false, "Keep everything in memory for this run")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output to stderr")
}

// env is everything a command needs to touch the wallet.
type env struct {
	cfg    config.Config
	logger *slog.Logger
	store  store.Store
	gate   *auth.Gate
	engine *wallet.Engine

	closeLog func() error
}

// loadConfig reads .env, the config file and the environment, then applies
// command-line overrides.
func loadConfig() (config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}
	if flagBackend != "" {
		cfg.Store.Backend = flagBackend
	}
	if flagEphemeral {
		cfg.Store.Backend = store.BackendMemory
	}
	if flagVerbose {
		cfg.Log.Level = "debug"
	}
	return cfg, cfg.Validate()
}

// openEnv opens the store, the auth gate and the wallet engine. logFile
// sends logs to a file instead of stderr, for full-screen commands.
func openEnv(logFile bool) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logCfg := logging.Config{Level: cfg.LogLevel(), File: cfg.Log.File}
	if logFile && logCfg.File == "" {
		logCfg.File = filepath.Join(cfg.DataDir(), "mywallet.log")
	}
	if !logFile && !flagVerbose && cfg.Log.File == "" {
		// Keep command output clean unless asked.
		logCfg.Level = slog.LevelWarn
	}
	logger, closeLog, err := logging.New(logCfg)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	st, err := store.Open(cfg.Store.Backend, cfg.StorePath())
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("opening %s store: %w", cfg.Store.Backend, err)
	}
	logger.Debug("store opened", "component", "store", "backend", cfg.Store.Backend, "path", cfg.StorePath())

	gate, err := auth.New(st,
		auth.WithBcryptCost(cfg.Auth.BcryptCost),
		auth.WithDemoAccount(cfg.Auth.DemoAccount),
		auth.WithLogger(logger),
	)
	if err != nil {
		_ = st.Close()
		_ = closeLog()
		return nil, err
	}

	return &env{
		cfg:      cfg,
		logger:   logger,
		store:    st,
		gate:     gate,
		engine:   wallet.Open(st, wallet.WithLogger(logger)),
		closeLog: closeLog,
	}, nil
}

// Close persists pending writes and releases the store.
func (e *env) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := e.engine.Flush(ctx)
	if cerr := e.engine.Close(); err == nil {
		err = cerr
	}
	if cerr := e.store.Close(); err == nil {
		err = cerr
	}
	if cerr := e.closeLog(); err == nil {
		err = cerr
	}
	return err
}

// requireSession returns the logged-in user or errNotLoggedIn. A memory
// store cannot remember a login between runs, so it runs as a guest.
func (e *env) requireSession() (model.Session, error) {
	if e.cfg.Store.Backend == store.BackendMemory {
		return model.Session{Email: auth.DemoEmail, Name: "Guest"}, nil
	}
	sess, ok := e.gate.CurrentSession()
	if !ok {
		return model.Session{}, errNotLoggedIn
	}
	return sess, nil
}

func (e *env) responder() *assistant.Responder {
	return assistant.NewResponder(
		assistant.WithCurrency(e.cfg.General.Currency),
		assistant.WithAdviceThresholds(
			decimal.NewFromFloat(e.cfg.Assistant.HighBalance),
			decimal.NewFromFloat(e.cfg.Assistant.SpendingRatio),
		),
	)
}

func (e *env) money(d decimal.Decimal) string {
	return cli.FormatMoney(e.cfg.General.Currency, d)
}

// withWallet opens the environment, checks the session and runs fn.
func withWallet(fn func(*env, model.Session) error) error {
	e, err := openEnv(false)
	if err != nil {
		return err
	}
	sess, err := e.requireSession()
	if err == nil {
		err = fn(e, sess)
	}
	if cerr := e.Close(); err == nil {
		err = cerr
	}
	return err
}

// userMessage turns an error into the text shown on the terminal.
func userMessage(err error) string {
	var ie *wallet.InputError
	switch {
	case errors.As(err, &ie), errors.Is(err, wallet.ErrNotFound):
		return wallet.UserMessage(err)
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidRegistration),
		errors.Is(err, auth.ErrUserExists):
		return auth.UserMessage(err)
	default:
		return err.Error()
	}
}
