package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"inksearch/internal/backend"
	"inksearch/internal/config"
	"inksearch/internal/history"
	"inksearch/internal/logger"
	"inksearch/internal/repository/sqlite"
	"inksearch/internal/search"
	"inksearch/internal/theme"
)

// app holds everything a command needs, opened from one config.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	db      *sqlite.DB
	artists *sqlite.ArtistRepository
	kv      *sqlite.KVStore
	theme   *theme.Theme
	styles  *theme.Styles
	logFile io.Closer
}

// loads config, applies global flags and opens the log file and database
func loadApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}

	f, err := logger.OpenFile(config.GetLogFile())
	if err != nil {
		return nil, err
	}

	log, err := logger.New("inksearch", cfg.LogLevel, f)
	if err != nil {
		f.Close()
		return nil, err
	}

	a, err := newApp(cfg, log)
	if err != nil {
		f.Close()
		return nil, err
	}
	a.logFile = f

	return a, nil
}

func newApp(cfg *config.Config, log zerolog.Logger) (*app, error) {
	db, err := sqlite.NewDB(sqlite.Config{Path: cfg.DBPath})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	t := theme.Resolve(cfg.ThemeName)

	return &app{
		cfg:     cfg,
		log:     log,
		db:      db,
		artists: sqlite.NewArtistRepository(db),
		kv:      sqlite.NewKVStore(db),
		theme:   t,
		styles:  theme.NewStyles(t),
	}, nil
}

func (a *app) backend() (backend.Backend, error) {
	switch a.cfg.Backend {
	case config.BackendHTTP:
		return backend.NewHTTP(a.cfg.BackendURL,
			backend.WithTimeout(a.cfg.BackendTimeout()),
			backend.WithToken(a.cfg.BackendToken),
			backend.WithLogger(a.log),
		)
	default:
		return backend.Func(a.artists.Search), nil
	}
}

// controller builds a search session over the configured backend, with
// history kept in the database
func (a *app) controller(opts ...search.Option) (*search.Controller, error) {
	b, err := a.backend()
	if err != nil {
		return nil, err
	}

	all := append([]search.Option{
		search.WithLogger(a.log),
		search.WithStorage(a.kv),
	}, opts...)

	return search.New(a.cfg.SearchConfig(), b, all...)
}

func (a *app) history(ctx context.Context) *history.Store {
	return history.New(ctx, a.kv,
		history.WithCapacity(a.cfg.Search.HistoryCapacity),
		history.WithLogger(a.log),
	)
}

func (a *app) Close() error {
	err := a.db.Close()
	if a.logFile != nil {
		a.logFile.Close()
	}
	return err
}
