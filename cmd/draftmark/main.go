package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/redis/go-redis/v9"

	"github.com/iw2rmb/draftmark"
	"github.com/iw2rmb/draftmark/editor"
	"github.com/iw2rmb/draftmark/editorstate"
	"github.com/iw2rmb/draftmark/internal/app"
	"github.com/iw2rmb/draftmark/internal/config"
	"github.com/iw2rmb/draftmark/persist"
)

// build is set with -ldflags "-X main.build=<commit>".
var build string

const placeholder = "Start typing. # heading, * bold, ** red, *** underline"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		_, _ = fmt.Fprintln(os.Stderr, "draftmark:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("draftmark", flag.ContinueOnError)
	var (
		configPath  = fs.String("config", "", "config file (.toml, .yaml)")
		store       = fs.String("store", "", "storage backend: memory, file or redis")
		path        = fs.String("path", "", "store file for the file backend")
		key         = fs.String("key", "", "key the document is saved under")
		debug       = fs.Bool("debug", true, "show the raw document below the editor")
		showVersion = fs.Bool("version", false, "print the version and exit")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *showVersion {
		_, err := fmt.Fprintln(stdout, draftmark.UserAgent(build))
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	flags := config.Flags{Store: *store, Path: *path, Key: *key}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "debug" {
			flags.Debug = debug
		}
	})
	cfg = cfg.WithFlags(flags)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Log.File != "" {
		f, err := tea.LogToFile(cfg.Log.File, "draftmark")
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	st, closeStore, err := openStore(cfg.Storage)
	if err != nil {
		return err
	}
	defer closeStore()
	bridge := persist.NewBridge(st, cfg.Storage.Key)

	ctx, cancel := withTimeout(context.Background(), cfg.Storage.Timeout.Std())
	es, err := app.LoadState(ctx, bridge, editorstate.Options{HistoryLimit: cfg.Editor.HistoryLimit}, cfg.Storage.Strict)
	cancel()
	if err != nil {
		return err
	}

	m := app.New(app.Options{
		Title:  cfg.Editor.Title,
		Bridge: bridge,
		Editor: editor.Config{
			State:       es,
			Style:       editor.DefaultStyle(),
			StyleMap:    editor.DefaultStyleMap(),
			Clipboard:   newClipboard(),
			Placeholder: placeholder,
		},
		Debug:       cfg.Editor.Debug,
		PrettyDebug: cfg.Editor.PrettyDebug,
		SaveTimeout: cfg.Storage.Timeout.Std(),
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// openStore builds the configured backend. The returned func releases it.
func openStore(cfg config.Storage) (persist.Store, func(), error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return persist.NewMemoryStore(), func() {}, nil
	case config.BackendFile:
		log.Printf("using file store %s", cfg.Path)
		return persist.NewFileStore(cfg.Path), func() {}, nil
	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			ClientName: draftmark.UserAgent(build),
		})
		ctx, cancel := withTimeout(context.Background(), cfg.Timeout.Std())
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("redis %s: %w", cfg.Redis.Addr, err)
		}
		log.Printf("using redis store %s db=%d", cfg.Redis.Addr, cfg.Redis.DB)
		return persist.NewRedisStore(rdb, cfg.Redis.Prefix), func() { _ = rdb.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Backend)
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
