package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/scx/internal/models"
	"github.com/desertthunder/scx/internal/repositories"
	"github.com/desertthunder/scx/internal/services"
	"github.com/desertthunder/scx/internal/shared"
	"github.com/desertthunder/scx/internal/store"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// Collaborators that are not injected are built on first use from the loaded config.
type Runner struct {
	config      *shared.Config
	user        string
	source      services.TrackSource
	settings    *repositories.ConfigRepository
	configs     services.ConfigStore
	preferences store.Store
	db          *sql.DB
	httpClient  *http.Client
	logger      *log.Logger
	output      io.Writer
	openBrowser func(string) error
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config      *shared.Config
	User        string
	Source      services.TrackSource
	Settings    *repositories.ConfigRepository
	Configs     services.ConfigStore
	Preferences store.Store
	HTTPClient  *http.Client
	Logger      *log.Logger
	Output      io.Writer
	OpenBrowser func(string) error
}

// NewRunner creates a new Runner with the provided configuration.
//
// Credentials are read through Configs when given, otherwise through the settings table.
// A nil HTTPClient is replaced by one using the configured API timeout when the source is built.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.OpenBrowser == nil {
		opts.OpenBrowser = shared.OpenBrowser
	}

	return &Runner{
		config:      opts.Config,
		user:        opts.User,
		source:      opts.Source,
		settings:    opts.Settings,
		configs:     opts.Configs,
		preferences: opts.Preferences,
		httpClient:  opts.HTTPClient,
		logger:      opts.Logger,
		output:      opts.Output,
		openBrowser: opts.OpenBrowser,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, tracksCommand, settingsCommand, statusCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before loads the config file named by --config and overlays the environment.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	config, err := shared.LoadConfigOrDefault(cmd.String("config"))
	if err != nil {
		return ctx, err
	}
	if err := shared.ApplyEnv(config, cmd.StringSlice("env")...); err != nil {
		return ctx, err
	}

	if s := cmd.String("store"); s != "" {
		config.Store.Type = s
	}
	if l := cmd.String("log-level"); l != "" {
		config.Log.Level = l
	}

	r.config = config
	shared.SetLogLevel(r.logger, shared.ParseLogLevel(config.Log.Level))
	return ctx, nil
}

// Close releases whatever the runner opened.
func (r *Runner) Close(ctx context.Context, cmd *cli.Command) error {
	var errs []error
	if r.preferences != nil {
		errs = append(errs, r.preferences.Close())
		r.preferences = nil
	}
	if r.db != nil {
		errs = append(errs, r.db.Close())
		r.db = nil
	}
	return errors.Join(errs...)
}

// SetLogger replaces the runner's logger, used by the TUI to log to a file.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) currentUser() string {
	if r.user != "" {
		return r.user
	}
	if r.config.User != "" {
		return r.config.User
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "default"
}

func (r *Runner) database() (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return nil, err
	}
	r.db = db
	return db, nil
}

func (r *Runner) configRepository() (*repositories.ConfigRepository, error) {
	if r.settings != nil {
		return r.settings, nil
	}

	db, err := r.database()
	if err != nil {
		return nil, err
	}
	r.settings = repositories.NewConfigRepository(db)
	return r.settings, nil
}

// configStore is the read side of the settings used to resolve credentials.
func (r *Runner) configStore() (services.ConfigStore, error) {
	if r.configs != nil {
		return r.configs, nil
	}
	return r.configRepository()
}

func (r *Runner) preferenceStore() (store.Store, error) {
	if r.preferences != nil {
		return r.preferences, nil
	}

	var db *sql.DB
	if store.ParseStoreType(r.config.Store.Type) == store.StoreTypeSQLite {
		var err error
		if db, err = r.database(); err != nil {
			return nil, err
		}
	}

	prefs, err := store.NewStore(store.ConfigFrom(r.config, db))
	if err != nil {
		return nil, fmt.Errorf("failed to open preference store: %w", err)
	}
	r.preferences = prefs
	return prefs, nil
}

// credential merges the client credentials: environment first, then the settings table, then the config file.
func (r *Runner) credential() (models.Credential, error) {
	sc := r.config.Credentials.SoundCloud
	cred := models.Credential{
		ClientID:     sc.ClientID,
		ClientSecret: sc.ClientSecret,
		RedirectURI:  r.config.RedirectURI(),
	}

	settings, err := r.configStore()
	if err != nil {
		return cred, err
	}

	for _, o := range []struct {
		env, name string
		field     *string
	}{
		{shared.EnvClientID, repositories.SettingClientID, &cred.ClientID},
		{shared.EnvClientSecret, repositories.SettingClientSecret, &cred.ClientSecret},
	} {
		if os.Getenv(o.env) != "" {
			continue
		}

		v, err := settings.GetConfig(repositories.ConfigNamespace, o.name)
		switch {
		case errors.Is(err, shared.ErrConfigNotFound):
		case err != nil:
			return cred, err
		case v != "":
			*o.field = v
		}
	}
	return cred, nil
}

// trackSource returns the injected source or builds a [services.SoundCloudService] from config.
func (r *Runner) trackSource(ctx context.Context) (services.TrackSource, error) {
	if r.source != nil {
		return r.source, nil
	}

	cred, err := r.credential()
	if err != nil {
		return nil, err
	}
	prefs, err := r.preferenceStore()
	if err != nil {
		return nil, err
	}

	client := r.httpClient
	if client == nil {
		client = &http.Client{Timeout: r.config.API.Timeout()}
	}

	var limiter *rate.Limiter
	if r.config.API.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(r.config.API.RateLimit), 1)
	}

	svc, err := services.NewSoundCloudService(ctx, services.SoundCloudOpts{
		Credential:  cred,
		User:        r.currentUser(),
		Preferences: prefs,
		Icons:       services.ExtensionIcons{BaseURL: r.config.API.IconBaseURL},
		HTTPClient:  client,
		Limiter:     limiter,
		Logger:      r.logger,
		BaseURL:     r.config.API.BaseURL,
		AuthURL:     r.config.API.AuthURL,
		TokenURL:    r.config.API.TokenURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SoundCloud: %w", err)
	}
	r.source = svc
	return svc, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
