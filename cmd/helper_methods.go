package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/PolarWolf314/ghadmin/internal/configs"
	kerrors "github.com/PolarWolf314/ghadmin/internal/errors"
	"github.com/PolarWolf314/ghadmin/internal/ghapi"
	"github.com/PolarWolf314/ghadmin/internal/ui"
	"github.com/PolarWolf314/ghadmin/internal/utils"

	"github.com/briandowns/spinner"
	"github.com/spf13/pflag"
)

// Flags shared by every command group.
var (
	verbose    bool
	debug      bool
	configFile string
	hostname   string
	outputDir  string
	auditLog   string
)

// addCommonFlags binds the shared flags to fs. Every group binds the same
// variables, so they behave the same whichever group is run.
func addCommonFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	fs.BoolVarP(&debug, "debug", "d", false, "enable debug output")
	fs.StringVar(&configFile, "config", "", "path to a TOML config file (default: ./"+configs.DefaultConfigFile+" if present)")
	fs.StringVar(&hostname, "hostname", "", "GitHub Enterprise Server host (overrides GHE_HOSTNAME)")
	fs.StringVar(&outputDir, "output-dir", "", "directory reports are written to (default: current directory)")
	fs.StringVar(&auditLog, "audit-log", "", "append an audit trail to this JSON Lines file (overrides GHADMIN_AUDIT_LOG)")
}

// resetCommonFlags resets the shared flags for testing.
func resetCommonFlags(sets ...*pflag.FlagSet) {
	verbose = false
	debug = false
	configFile = ""
	hostname = ""
	outputDir = ""
	auditLog = ""
	for _, fs := range sets {
		fs.VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
		})
	}
}

// newAPIClient builds the GitHub client. Tests replace it.
var newAPIClient = func(ctx context.Context, cfg *configs.Config) (*ghapi.Client, error) {
	return ghapi.NewClient(ctx, cfg)
}

// getenv and stdinIsTerminal are replaceable for testing.
var (
	getenv          = os.Getenv
	stdinIsTerminal = utils.IsTerminal
)

// loadConfig builds the configuration from the .env file, the TOML file,
// the environment and the shared flags, in increasing precedence. When
// needToken is set and no token is configured, it is read from the
// terminal if there is one.
func loadConfig(needToken bool) (*configs.Config, error) {
	if err := configs.LoadDotEnv(configs.DefaultEnvFile); err != nil {
		return nil, err
	}

	path, explicit := configFile, configFile != ""
	if !explicit {
		path = configs.DefaultConfigFile
	}
	Logger.Debugf("Loading configuration from %s", path)

	cfg, err := configs.Load(path, explicit, getenv)
	if err != nil {
		return nil, err
	}

	if hostname != "" {
		cfg.Hostname = hostname
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if auditLog != "" {
		cfg.AuditLog = auditLog
	}

	if needToken && cfg.Token == "" && stdinIsTerminal() {
		token, err := utils.ReadHidden("GitHub API token: ")
		if err != nil {
			return nil, err
		}
		cfg.Token = strings.TrimSpace(token)
	}
	if needToken {
		if err := cfg.Require(configs.FieldToken); err != nil {
			return nil, err
		}
	}

	Logger.Debugf("REST API: %s", cfg.RESTBaseURL())
	return cfg, nil
}

// configErrorMessage turns a configuration problem into a message with a
// hint, or returns "" if err is not one.
func configErrorMessage(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrMissingToken):
		return ui.Cross() + " No GitHub API token found\n" +
			ui.Arrow() + " Set " + ui.Code.Sprint("API_TOKEN") + " in the environment or in a .env file"
	case errors.Is(err, kerrors.ErrMissingConfig):
		return ui.Cross() + " " + err.Error() + "\n" +
			ui.Arrow() + " Set it in the environment, a .env file, " + ui.Path.Sprint(configs.DefaultConfigFile) + " or with a flag"
	case errors.Is(err, kerrors.ErrInvalidConfig):
		return ui.Cross() + " Failed to load configuration.\n\n" +
			ui.Arrow() + " " + ui.Code.Sprint(err.Error())
	case errors.Is(err, kerrors.ErrFileNotFound):
		return ui.Cross() + " " + err.Error()
	default:
		return ""
	}
}

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stderr)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}
