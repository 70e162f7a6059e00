package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/haim4shekel213/apiforge/internal/config"
	"github.com/haim4shekel213/apiforge/internal/history"
	"github.com/haim4shekel213/apiforge/internal/httpclient"
	"github.com/haim4shekel213/apiforge/internal/store"
	"github.com/haim4shekel213/apiforge/internal/telemetry"
	"github.com/haim4shekel213/apiforge/internal/ui"
	"github.com/haim4shekel213/apiforge/internal/workspace"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	settings, settingsHandle, err := config.LoadSettings()
	if err != nil {
		log.Printf("settings load error: %v", err)
		settings = config.DefaultSettings()
		settingsHandle = config.SettingsHandle{
			Path:   filepath.Join(config.Dir(), "settings.toml"),
			Format: config.SettingsFormatTOML,
		}
	}

	var (
		workspaceDir string
		timeout      time.Duration
		insecure     bool
		follow       bool
		proxyURL     string
		historyLimit int
		importPath   string
		showVersion  bool
	)

	flag.StringVar(
		&workspaceDir,
		"workspace",
		settings.Workspace,
		"Directory to persist collections as files (empty: built-in database)",
	)
	flag.DurationVar(
		&timeout,
		"timeout",
		time.Duration(settings.TimeoutSeconds)*time.Second,
		"Request timeout",
	)
	flag.BoolVar(&insecure, "insecure", settings.Insecure, "Skip TLS certificate verification")
	flag.BoolVar(&follow, "follow", settings.FollowRedirects, "Follow redirects")
	flag.StringVar(&proxyURL, "proxy", settings.ProxyURL, "HTTP proxy URL")
	flag.IntVar(&historyLimit, "history-limit", settings.HistoryLimit, "Max persisted history entries")
	flag.StringVar(&importPath, "import", "", "Import a collection file before starting")
	flag.BoolVar(&showVersion, "version", false, "Show apiforge version")
	flag.Parse()

	if showVersion {
		fmt.Printf("apiforge %s (commit %s, built %s)\n", version, commit, date)
		return
	}

	configDir := config.Dir()
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		log.Fatalf("config dir: %v", err)
	}

	kv, err := store.OpenKV(filepath.Join(configDir, "state.db"))
	if err != nil {
		log.Fatalf("open state database: %v", err)
	}
	defer func() {
		_ = kv.Close()
	}()

	if workspaceDir == "" {
		workspaceDir = kv.LastWorkspace()
	}

	var backend store.Store
	if workspaceDir != "" && store.Available(workspaceDir) {
		backend = store.NewDirStore(workspaceDir)
		kv.RememberWorkspace(workspaceDir)
	} else {
		if workspaceDir != "" {
			log.Printf("workspace %q not usable, falling back to the built-in database", workspaceDir)
		}
		backend = store.NewKVStore(kv)
	}

	ws := workspace.New(backend)
	if err := ws.Load(); err != nil {
		log.Fatalf("load collections: %v", err)
	}

	if importPath != "" {
		data, err := os.ReadFile(importPath)
		if err != nil {
			log.Fatalf("read import file: %v", err)
		}
		col, err := ws.Import(data)
		if err != nil {
			log.Fatalf("import collection: %v", err)
		}
		log.Printf("imported %q", col.Info.Name)
	}

	client := httpclient.NewClient()

	telemetryCfg := telemetry.ConfigFromEnv(os.Getenv)
	telemetryCfg.Version = version
	provider, err := telemetry.New(telemetryCfg)
	if err != nil {
		if telemetryCfg.Enabled() {
			log.Printf("telemetry init error: %v", err)
		}
	} else {
		client.SetTelemetry(provider)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if shutdownErr := provider.Shutdown(ctx); shutdownErr != nil {
				log.Printf("telemetry shutdown: %v", shutdownErr)
			}
		}()
	}

	historyStore := history.NewStore(filepath.Join(configDir, "history.json"), historyLimit)
	if err := historyStore.Load(); err != nil {
		log.Printf("history load error: %v", err)
	}

	settings.Workspace = workspaceDir
	settings.TimeoutSeconds = int(timeout / time.Second)
	settings.FollowRedirects = follow
	settings.Insecure = insecure
	settings.ProxyURL = proxyURL
	settings.HistoryLimit = historyLimit
	if err := config.SaveSettings(settings, settingsHandle); err != nil {
		log.Printf("settings save error: %v", err)
	}

	model := ui.New(ui.Config{
		Workspace: ws,
		Client:    client,
		Options: httpclient.Options{
			Timeout:            timeout,
			FollowRedirects:    follow,
			InsecureSkipVerify: insecure,
			ProxyURL:           proxyURL,
		},
		History: historyStore,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
