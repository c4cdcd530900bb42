package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/smazurov/streamroles/internal/logging"
	"github.com/smazurov/streamroles/internal/roles"
	"github.com/smazurov/streamroles/internal/settings"
	"github.com/smazurov/streamroles/internal/streams"
	"github.com/spf13/cobra"
)

// CreateResolveCmd creates the resolve command for one-shot role resolution.
func CreateResolveCmd() *cobra.Command {
	var cameraURL string
	var settingsFile string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resolve [role]",
		Short: "Resolve stream roles against the camera",
		Long: `Resolves one role, or every role when none is given, against the camera's ` +
			`current stream variants and the persisted preferences, then prints the result.`,
		Args: cobra.MaximumNArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			logging.Initialize(logging.Config{Level: "warn", Format: "text"})

			store := settings.NewTOML(settingsFile)
			if err := store.Load(); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to load settings: %v\n", err)
				os.Exit(1)
			}

			client := streams.NewClient(cameraURL)
			service := roles.NewService(store, client, nil, nil)

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			var results []roles.Resolved
			if len(args) == 1 {
				res, err := service.Resolve(ctx, roles.Role(args[0]))
				if err != nil {
					fmt.Fprintf(os.Stderr, "%v\n", err)
					os.Exit(1)
				}
				results = []roles.Resolved{res}
			} else {
				results = service.ResolveAll(ctx)
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(results); err != nil {
					fmt.Fprintf(os.Stderr, "Failed to encode results: %v\n", err)
					os.Exit(1)
				}
				return
			}

			for _, res := range results {
				origin := "explicit"
				if res.IsDefault {
					origin = "default"
				}
				name := "(none)"
				if res.Stream != nil {
					name = res.Stream.Name
					if res.Stream.Video != nil {
						name = fmt.Sprintf("%s %dx%d", name, res.Stream.Video.Width, res.Stream.Video.Height)
					}
				}
				fmt.Printf("%-22s %-10s %s\n", res.Role, origin, name)
			}
		},
	}

	cmd.Flags().StringVar(&cameraURL, "camera-url", "http://localhost:8080", "Camera base URL")
	cmd.Flags().StringVar(&settingsFile, "settings-file", "settings.toml", "Settings file path")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")

	return cmd
}
