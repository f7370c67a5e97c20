package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aretw0/notes"
	"github.com/aretw0/notes/pkg/gateway"
)

// Config keys, also readable from NOTES_* environment variables.
const (
	keyAPIURL  = "api_url"
	keyState   = "state"
	keyBackend = "backend"
	keyOffline = "offline"
)

// cli holds the state shared by every command of one invocation.
type cli struct {
	v          *viper.Viper
	logger     *slog.Logger
	verbose    bool
	configFile string
}

// newRootCmd represents the base command when called without any subcommands
func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New(), logger: slog.Default()}

	root := &cobra.Command{
		Use:   "notes",
		Short: "Manage notes synced with the notes API",
		Long: `notes keeps a local copy of your notes, with the selected category and
search query, and synchronizes it with the notes API.
When the API is unreachable, reads fall back to the local copy.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if c.verbose {
				level = slog.LevelDebug
			}

			opts := &slog.HandlerOptions{
				Level: level,
			}
			c.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
			slog.SetDefault(c.logger)

			return c.initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&c.configFile, "config", "", "Config file (default $HOME/.config/notes/notes.yaml)")
	flags.String("api-url", gateway.DefaultBaseURL, "Notes API base URL")
	flags.String("state", "", "State file (or badger directory)")
	flags.String("backend", notes.BackendFile, "Storage backend: file, badger or memory")
	flags.Bool("offline", false, "Use an in-memory API seeded from the local state")

	_ = c.v.BindPFlag(keyAPIURL, flags.Lookup("api-url"))
	_ = c.v.BindPFlag(keyState, flags.Lookup("state"))
	_ = c.v.BindPFlag(keyBackend, flags.Lookup("backend"))
	_ = c.v.BindPFlag(keyOffline, flags.Lookup("offline"))

	root.AddCommand(
		newListCmd(c),
		newShowCmd(c),
		newCreateCmd(c),
		newUpdateCmd(c),
		newDeleteCmd(c),
		newCountsCmd(c),
		newExportCmd(c),
		newWatchCmd(c),
		newVersionCmd(),
	)
	return root
}

// initConfig reads the config file and environment. A missing config file is fine.
func (c *cli) initConfig() error {
	if c.configFile != "" {
		c.v.SetConfigFile(c.configFile)
	} else {
		c.v.SetConfigName("notes")
		c.v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			c.v.AddConfigPath(filepath.Join(home, ".config", "notes"))
		}
		c.v.AddConfigPath(".")
	}

	c.v.SetEnvPrefix("NOTES")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	c.v.SetDefault(keyAPIURL, gateway.DefaultBaseURL)
	c.v.SetDefault(keyBackend, notes.BackendFile)

	if err := c.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		c.logger.Debug("using config file", "path", c.v.ConfigFileUsed())
	}
	return nil
}

// openApp builds a session from the resolved configuration.
// The caller must Close it.
func (c *cli) openApp(ctx context.Context) (*notes.App, error) {
	app, err := notes.New(ctx,
		notes.WithAPIURL(c.v.GetString(keyAPIURL)),
		notes.WithStatePath(c.v.GetString(keyState)),
		notes.WithStorageBackend(c.v.GetString(keyBackend)),
		notes.WithOffline(c.v.GetBool(keyOffline)),
		notes.WithLogger(c.logger),
		// The CLI always operates on the user's real state.
		notes.WithDevSafety(false),
	)
	if err != nil {
		return nil, failed("Failed to initialize notes", err)
	}
	return app, nil
}
