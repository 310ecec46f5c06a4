// Command portfolio-admin edits portfolio projects and their option lists against the API.
package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rpupo63/bsd-portfolio/client"
	"github.com/rpupo63/bsd-portfolio/config"
	"github.com/rpupo63/bsd-portfolio/idcodec"
	"github.com/rpupo63/bsd-portfolio/options"
)

var (
	// Global flags
	apiURL  string
	cacheDB string
	idKey   string
	verbose bool
	timeout time.Duration

	logger zerolog.Logger
	api    *client.Client
	codec  *idcodec.Codec
)

var rootCmd = &cobra.Command{
	Use:   "portfolio-admin",
	Short: "Manage portfolio projects, skills and option lists",
	Long: `portfolio-admin is the command line admin for the portfolio API.

Project forms are YAML files with the same keys as the API. Use "project show"
to get the form of an existing project, edit it, and send it back with
"project save-section" or "project submit".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
			Level(level).With().Timestamp().Logger()

		var err error
		codec, err = idcodec.New(idKey)
		if err != nil {
			return fmt.Errorf("invalid id key: %w", err)
		}
		api = client.New(apiURL,
			client.WithLogger(logger),
			client.WithHTTPClient(&http.Client{Timeout: timeout}),
		)
		return nil
	},
}

func init() {
	cfg := config.New()

	rootCmd.PersistentFlags().StringVar(&apiURL, "api", config.GetString(cfg, "PORTFOLIO_API_URL", "http://localhost:8080"), "Portfolio API base URL (or set PORTFOLIO_API_URL)")
	rootCmd.PersistentFlags().StringVar(&cacheDB, "cache", config.GetString(cfg, "PORTFOLIO_CACHE_DB", defaultCachePath()), "Option cache database (or set PORTFOLIO_CACHE_DB)")
	rootCmd.PersistentFlags().StringVar(&idKey, "key", config.GetString(cfg, "ID_OBFUSCATION_KEY", idcodec.DefaultKey), "Project id obfuscation key (or set ID_OBFUSCATION_KEY)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	rootCmd.AddCommand(idCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(imageTypesCmd)
	rootCmd.AddCommand(skillsCmd)
}

func defaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "portfolio-admin.db"
	}
	return filepath.Join(dir, "portfolio-admin", "options.db")
}

// openCache opens the option cache; the caller closes it
func openCache() (*options.SQLiteRepository, error) {
	repo, err := options.OpenSQLite(cacheDB)
	if err != nil {
		return nil, fmt.Errorf("failed to open option cache %s: %w", cacheDB, err)
	}
	return repo, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
