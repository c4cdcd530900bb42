package main

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/smazurov/streamroles/cmd"
	"github.com/smazurov/streamroles/internal/api"
	"github.com/smazurov/streamroles/internal/config"
	"github.com/smazurov/streamroles/internal/events"
	"github.com/smazurov/streamroles/internal/logging"
	"github.com/smazurov/streamroles/internal/metrics"
	"github.com/smazurov/streamroles/internal/monitoring"
	"github.com/smazurov/streamroles/internal/roles"
	"github.com/smazurov/streamroles/internal/settings"
	"github.com/smazurov/streamroles/internal/streams"
	"github.com/smazurov/streamroles/internal/systemd"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"config.toml"`

	// Server settings
	Port string `help:"Port to listen on" short:"p" default:":8090" toml:"server.port" env:"SERVER_PORT"`

	// Camera settings
	CameraURL string `help:"Camera base URL" default:"http://localhost:8080" toml:"camera.url" env:"CAMERA_URL"`

	// Settings storage
	SettingsFile string `help:"Role and prebuffer settings file" default:"settings.toml" toml:"settings.file" env:"SETTINGS_FILE"`

	// Camera polling
	CameraPollInterval string `help:"Camera stream list poll interval, 0 disables polling" default:"30s" toml:"camera.poll_interval" env:"CAMERA_POLL_INTERVAL"`

	// Auth settings
	AuthUsername string `help:"Basic auth username" default:"" toml:"auth.username" env:"AUTH_USERNAME"`
	AuthPassword string `help:"Basic auth password" default:"" toml:"auth.password" env:"AUTH_PASSWORD"`

	// Logging settings
	LoggingLevel    string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat   string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingRoles    string `help:"Role resolution logging level" default:"info" toml:"logging.roles" env:"LOGGING_ROLES"`
	LoggingCamera   string `help:"Camera client logging level" default:"info" toml:"logging.camera" env:"LOGGING_CAMERA"`
	LoggingSettings string `help:"Settings store logging level" default:"info" toml:"logging.settings" env:"LOGGING_SETTINGS"`
	LoggingAPI      string `help:"API logging level" default:"info" toml:"logging.api" env:"LOGGING_API"`
}

func main() {
	var cli humacli.CLI
	cli = humacli.New(func(hooks humacli.Hooks, opts *Options) {
		if loadErr := config.LoadConfig(opts, cli.Root()); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		logging.Initialize(logging.Config{
			Level:  opts.LoggingLevel,
			Format: opts.LoggingFormat,
			Modules: map[string]string{
				"roles":    opts.LoggingRoles,
				"camera":   opts.LoggingCamera,
				"settings": opts.LoggingSettings,
				"api":      opts.LoggingAPI,
			},
		})

		logger := logging.GetLogger("main")

		eventBus := events.New()

		// Forward log entries onto the bus for SSE clients
		logging.SetLogCallback(func(entry logging.LogEntry) {
			eventBus.Publish(events.LogEntryEvent{
				Timestamp:  entry.Timestamp.Format(time.RFC3339Nano),
				Level:      entry.Level,
				Module:     entry.Module,
				Message:    entry.Message,
				Attributes: entry.Attributes,
			})
		})

		store := settings.NewTOML(opts.SettingsFile)
		if loadErr := store.Load(); loadErr != nil {
			logger.Warn("Failed to load settings, starting with defaults", "error", loadErr)
		}

		recorder := metrics.NewRecorder(nil)
		client := streams.NewClient(opts.CameraURL)
		service := roles.NewService(store, client, eventBus, recorder)

		// Reload settings when the file is edited out of band
		watcher := config.NewConfigWatcher(opts.SettingsFile,
			func(string) (settings.Repository, error) {
				if reloadErr := store.Load(); reloadErr != nil {
					return nil, reloadErr
				}
				return store, nil
			},
			logging.GetLogger("settings"),
		)
		watcher.OnReload(func(settings.Repository) {
			logger.Info("Settings file changed, preferences reloaded")
			names, explicit := store.EnabledStreams()
			eventBus.Publish(events.PrebufferChangedEvent{
				Enabled:   names,
				Explicit:  explicit,
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			})
		})

		var poller *monitoring.Poller
		if interval, parseErr := time.ParseDuration(opts.CameraPollInterval); parseErr == nil && interval > 0 {
			poller = monitoring.NewPoller(client, interval, func(list []streams.Descriptor) {
				recorder.SetAvailableStreams(len(list))
				eventBus.Publish(events.StreamsRefreshedEvent{
					Streams:   list,
					Count:     len(list),
					Timestamp: time.Now().UTC().Format(time.RFC3339),
				})
			})
		}

		server := api.NewServer(&api.Options{
			AuthUsername:      opts.AuthUsername,
			AuthPassword:      opts.AuthPassword,
			Service:           service,
			EventBus:          eventBus,
			PrometheusHandler: recorder.Handler(),
		})

		hooks.OnStart(func() {
			if watchErr := watcher.Start(); watchErr != nil {
				logger.Warn("Failed to watch settings file", "error", watchErr)
			}
			if poller != nil {
				poller.Start()
			}

			systemd.NotifyReady()

			logger.Info("Starting HTTP server", "port", opts.Port)
			if startErr := server.Start(opts.Port); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
				logger.Error("Failed to start HTTP server", "error", startErr)
			}
		})

		hooks.OnStop(func() {
			systemd.NotifyStopping()

			logger.Info("Shutting down server")
			if stopErr := server.Stop(); stopErr != nil {
				logger.Error("Error stopping HTTP server", "error", stopErr)
			}
			if poller != nil {
				poller.Stop()
			}
			if stopErr := watcher.Stop(); stopErr != nil {
				logger.Error("Error stopping settings watcher", "error", stopErr)
			}
		})
	})

	cli.Root().AddCommand(cmd.CreateResolveCmd())
	cli.Root().AddCommand(cmd.CreateCheckSettingsCmd())

	cli.Run()
}
