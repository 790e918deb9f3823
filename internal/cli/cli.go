// Package cli implements the rphylopic command-line interface.
//
// This package provides commands for resolving taxonomic names against the
// PhyloPic API, downloading silhouette images in vector or raster form, and
// placing silhouettes on rendered charts. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - resolve: Match a taxonomic name to PhyloPic nodes
//   - pick: Interactively choose a silhouette and rendition
//   - fetch: Download a silhouette as SVG or PNG with optional transforms
//   - chart: Render a silhouette onto a PNG chart
//   - attribution: Print creator and license credits for images
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Verbose mode
// also registers observability hooks that trace every API request and name
// resolution.
//
// # Example
//
//	import "github.com/palaeoverse-community/rphylopic/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"image/color"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/palaeoverse-community/rphylopic/pkg/buildinfo"
	"github.com/palaeoverse-community/rphylopic/pkg/errors"
	"github.com/palaeoverse-community/rphylopic/pkg/phylopic"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "rphylopic"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	cfg    Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:          "rphylopic",
		Short:        "rphylopic places PhyloPic silhouettes on charts",
		Long:         `rphylopic is a CLI tool for finding organism silhouettes on PhyloPic, downloading them, and placing them on charts with transforms and styling.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configFile)
			if err != nil {
				return err
			}
			c.cfg = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default $XDG_CONFIG_HOME/rphylopic/config.toml)")

	// Register all subcommands
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.attributionCommand())
	root.AddCommand(c.chartCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Client Factory
// =============================================================================

// newClient creates a PhyloPic API client from the loaded configuration.
func (c *CLI) newClient() *phylopic.Client {
	var opts []phylopic.Option
	if c.cfg.APIURL != "" {
		opts = append(opts, phylopic.WithBaseURL(c.cfg.APIURL))
	}
	if c.cfg.Contact != "" {
		opts = append(opts, phylopic.WithContact(c.cfg.Contact))
	}
	if c.cfg.TimeoutSeconds > 0 {
		opts = append(opts, phylopic.WithHTTPClient(&http.Client{
			Timeout: time.Duration(c.cfg.TimeoutSeconds) * time.Second,
		}))
	}
	return phylopic.NewClient(opts...)
}

// =============================================================================
// Paths
// =============================================================================

// configPath returns the config file path using XDG standard
// (~/.config/rphylopic/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// =============================================================================
// Argument Helpers
// =============================================================================

// isUUID reports whether arg is an image UUID rather than a taxon name.
func isUUID(arg string) bool {
	_, err := uuid.Parse(arg)
	return err == nil
}

// parseFill parses a hex color flag such as "#5F9EA0" or "#fff".
func parseFill(s string) (color.Color, error) {
	if err := errors.ValidateHexColor(s); err != nil {
		return nil, err
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidColor, err, "failed to parse color %q", s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}
