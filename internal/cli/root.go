// Package cli implements the modeldctl command tree. Every command is a
// thin wrapper over pkg/client; the CLI owns flag parsing, config loading
// and progress rendering, nothing else.
package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"modeldctl/internal/common/fsutil"
	"modeldctl/internal/config"
	"modeldctl/pkg/client"
)

// Version is the CLI version reported by `modeldctl version`.
const Version = "0.1.0"

// defaultConfigPath is consulted when --config is not given.
const defaultConfigPath = "~/.config/modeldctl/config.yaml"

// app carries the resolved configuration shared by all commands.
type app struct {
	out io.Writer
	cfg config.Config
	log zerolog.Logger
}

// client builds a Client from the resolved configuration.
func (a *app) client() (*client.Client, error) {
	h := &http.Client{}
	if a.cfg.TimeoutSeconds > 0 {
		h.Timeout = time.Duration(a.cfg.TimeoutSeconds) * time.Second
	}
	return client.New(a.cfg.Host, client.WithHTTPClient(h), client.WithLogger(a.log))
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// NewRootCmd constructs the modeldctl command tree writing to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:           "modeldctl",
		Short:         "Manage models on a modeld-compatible server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("host", "", "Server address, e.g. http://127.0.0.1:8080 (defaults MODELD_HOST)")
	root.PersistentFlags().String("config", "", "Config file (yaml/json/toml); defaults "+defaultConfigPath+" when present")
	root.PersistentFlags().String("log-level", "", "Log level: debug|info|warn|error|off")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			if p, err := fsutil.ExpandHome(defaultConfigPath); err == nil && fsutil.PathExists(p) {
				path = p
			}
		}
		if path != "" {
			cfg, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.cfg = cfg
		}
		a.cfg = a.cfg.ApplyEnv()
		// Flags win over file and environment.
		if v, _ := cmd.Flags().GetString("host"); v != "" {
			a.cfg.Host = v
		}
		if v, _ := cmd.Flags().GetString("log-level"); v != "" {
			a.cfg.LogLevel = v
		}
		a.log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(parseLevel(a.cfg.LogLevel)).
			With().Timestamp().Logger()
		return nil
	}

	root.AddCommand(
		newCreateCmd(a),
		newPushCmd(a),
		newPullCmd(a),
		newLoadCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newCopyCmd(a),
		newDeleteCmd(a),
		newVersionCmd(a),
	)
	return root
}

// Execute runs the CLI and returns a process exit code.
func Execute() int {
	root := NewRootCmd(os.Stdout)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
