package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/maghams62/launcher/app"
	"github.com/maghams62/launcher/client"
	"github.com/maghams62/launcher/config"
	"github.com/maghams62/launcher/logging"
	"github.com/maghams62/launcher/opener"
	"github.com/maghams62/launcher/search"
	"github.com/maghams62/launcher/style"
)

var version = "dev"

var (
	urlFlag     string
	profileFlag string
	variantFlag string
	noColor     bool
	debug       bool
)

var rootCmd = &cobra.Command{
	Use:   "launcher",
	Short: "Keyboard launcher for file search, commands and the assistant",
	Long: `launcher is a terminal command palette over a local assistant backend.

Type to search indexed files and the command catalog, press Enter to open
a result or send the line to the assistant, and watch replies and plans
stream into the conversation below.

Run without arguments to start the interactive launcher.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			style.DisableColor()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLauncher()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&urlFlag, "url", "", "Backend base URL (overrides config and "+config.EnvURL+")")
	pf.StringVar(&profileFlag, "profile", "", "Named profile for state isolation (~/.launcher/profiles/<name>)")
	pf.BoolVar(&noColor, "no-color", false, "Disable ANSI colors")
	pf.BoolVar(&debug, "debug", false, "Log at debug level")
	rootCmd.Flags().StringVar(&variantFlag, "variant", "", "Surface variant: overlay or launcher")

	rootCmd.AddCommand(searchCmd, commandsCmd, transcribeCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// profileDir resolves --profile to a directory, creating it if needed.
func profileDir() string {
	dir := config.DefaultProfileDir()
	if profileFlag != "" {
		dir = filepath.Join(dir, "profiles", profileFlag)
	}
	_ = os.MkdirAll(dir, 0o755)
	return dir
}

// loadConfig reads the profile config and applies command-line overrides.
// A token file in the profile is used when no token is configured.
func loadConfig(dir string) (config.Config, error) {
	cfg, err := config.Load(dir)
	if urlFlag != "" {
		cfg.BackendURL = strings.TrimRight(urlFlag, "/")
	}
	if variantFlag != "" {
		cfg.Variant = variantFlag
	}
	if debug {
		cfg.Log.Level = "debug"
	}
	if cfg.Token == "" {
		if data, rerr := os.ReadFile(filepath.Join(dir, "token")); rerr == nil {
			cfg.Token = strings.TrimSpace(string(data))
		}
	}
	return cfg, err
}

func newClient(cfg config.Config) *client.Client {
	c := client.New(cfg.BackendURL)
	if cfg.Token != "" {
		c.SetToken(cfg.Token)
	}
	return c
}

func runLauncher() error {
	dir := profileDir()
	cfg, cfgErr := loadConfig(dir)

	log, err := logging.New(logging.Options{Path: cfg.Log.Path, Level: cfg.Log.Level})
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer func() { _ = log.Sync() }()
	if cfgErr != nil {
		log.Warn("config ignored, using defaults", zap.Error(cfgErr))
	}
	log.Info("starting launcher",
		zap.String("version", version),
		zap.String("backend", cfg.BackendURL),
		zap.String("variant", cfg.Variant))

	// The config theme wins; the terminal background only picks between
	// the two stock themes when the config still holds the default.
	if cfg.Theme == config.Defaults().Theme && !lipgloss.HasDarkBackground() {
		cfg.Theme = "light"
	}

	c := newClient(cfg)
	stream := client.NewChatStream(cfg.BackendURL, cfg.Token, uuid.NewString())
	defer stream.Close()

	var reloads <-chan config.Reload
	if w, werr := config.Watch(dir); werr != nil {
		log.Warn("config watch disabled", zap.Error(werr))
	} else {
		defer func() { _ = w.Close() }()
		reloads = w.Reloads()
	}

	m := app.New(app.Deps{
		Config:     cfg,
		ProfileDir: dir,
		Version:    version,
		Log:        log,
		Backend:    c,
		Searcher:   search.NewCached(c),
		Stream:     stream,
		Opener:     opener.New(c, log.Named("opener")),
		Reloads:    reloads,
		Clipboard:  clipboard.WriteAll,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	go func() {
		p.Send(app.ProgramReady{Program: p})
	}()

	if _, err := p.Run(); err != nil {
		log.Error("program exited", zap.Error(err))
		return err
	}
	return nil
}
