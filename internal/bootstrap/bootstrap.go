package bootstrap

import (
	"strings"

	"github.com/ganeshlonare/lms-client/internal/api"
	"github.com/ganeshlonare/lms-client/internal/app/courses"
	"github.com/ganeshlonare/lms-client/internal/app/session"
	"github.com/ganeshlonare/lms-client/internal/config"
	"github.com/ganeshlonare/lms-client/internal/pkg/logger"
	"github.com/ganeshlonare/lms-client/internal/storage"
)

// Dependencies holds the wired client components
type Dependencies struct {
	Config  *config.Config
	Storage *storage.Store
	Jar     *api.PersistentJar
	Client  *api.Client
	Session *session.Store
	Actions *session.Actions
	Courses *courses.Store
}

// Setup loads configuration and wires every component: logger first,
// then storage, the cookie jar and HTTP client on top of it, and
// finally the stores seeded from the persisted snapshot.
func Setup(configPath string) (*Dependencies, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	configureLogger(cfg)

	// Unavailable storage degrades to an empty session and an
	// in-memory cookie jar instead of refusing to start.
	var kv api.KV
	var bridge session.Bridge
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		logger.Warn().Err(err).Msg("Storage unavailable, running without persistence")
		store = nil
	} else {
		kv = store
		bridge = store
	}

	jar, err := api.NewPersistentJar(cfg.API.BaseURL, kv)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}

	client, err := api.New(api.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.APITimeout(),
		Jar:     jar,
	})
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}

	sessionStore := session.New(bridge)

	return &Dependencies{
		Config:  cfg,
		Storage: store,
		Jar:     jar,
		Client:  client,
		Session: sessionStore,
		Actions: session.NewActions(client, sessionStore),
		Courses: courses.New(client),
	}, nil
}

// Close releases held resources
func (d *Dependencies) Close() {
	if d.Storage != nil {
		if err := d.Storage.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close storage")
		}
	}
}

// configureLogger applies the logging section. Development mode drops
// the level to debug so per-request API diagnostics are emitted; in
// production they stay silent.
func configureLogger(cfg *config.Config) {
	level := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	if cfg.IsDevelopment() {
		level = logger.DebugLevel
	}

	logger.Configure(logger.Config{
		Level:  level,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})
}
