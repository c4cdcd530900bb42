package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/smazurov/streamroles/internal/logging"
	"github.com/smazurov/streamroles/internal/roles"
	"github.com/smazurov/streamroles/internal/settings"
	"github.com/smazurov/streamroles/internal/streams"
	"github.com/spf13/cobra"
)

// CreateCheckSettingsCmd creates the check-settings command, which audits
// the persisted preferences against the camera's current stream variants.
func CreateCheckSettingsCmd() *cobra.Command {
	var cameraURL string
	var settingsFile string

	cmd := &cobra.Command{
		Use:   "check-settings",
		Short: "Audit persisted preferences against the camera",
		Long: `Loads the settings file and reports role selections and prebuffer entries ` +
			`that name streams the camera no longer offers. Exits non-zero when stale names are found.`,
		Run: func(_ *cobra.Command, _ []string) {
			logging.Initialize(logging.Config{Level: "warn", Format: "text"})

			store := settings.NewTOML(settingsFile)
			if err := store.Load(); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to load settings: %v\n", err)
				os.Exit(1)
			}

			client := streams.NewClient(cameraURL)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			list, err := client.ListStreamOptions(ctx)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to query camera: %v\n", err)
				os.Exit(1)
			}

			stale := 0
			for _, role := range roles.All() {
				selection := store.RoleSelection(string(role))
				if selection == "" || selection == streams.SelectionDefault {
					fmt.Printf("%-22s Default\n", role)
					continue
				}
				if streams.FindByName(list, selection) == nil {
					fmt.Printf("%-22s %s  STALE (camera no longer offers it)\n", role, selection)
					stale++
					continue
				}
				fmt.Printf("%-22s %s\n", role, selection)
			}

			if names, explicit := store.EnabledStreams(); explicit {
				for _, name := range names {
					if streams.FindByName(list, name) == nil {
						fmt.Printf("prebuffer              %s  STALE (camera no longer offers it)\n", name)
						stale++
					} else {
						fmt.Printf("prebuffer              %s\n", name)
					}
				}
			} else {
				fmt.Println("prebuffer              Default")
			}

			if stale > 0 {
				fmt.Fprintf(os.Stderr, "\n%d stale entries found\n", stale)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVar(&cameraURL, "camera-url", "http://localhost:8080", "Camera base URL")
	cmd.Flags().StringVar(&settingsFile, "settings-file", "settings.toml", "Settings file path")

	return cmd
}
