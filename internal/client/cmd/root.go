package cmd

import (
	"bufio"
	"context"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ljxowen/movie-recommender/internal/client/api"
	"github.com/ljxowen/movie-recommender/internal/client/config"
	"github.com/ljxowen/movie-recommender/internal/client/metrics"
	"github.com/ljxowen/movie-recommender/internal/client/session"
	"github.com/ljxowen/movie-recommender/internal/logging"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	version string

	configPath string
	serverURL  string
	logLevel   string

	cfg     config.Config
	logger  zerolog.Logger
	metrics *metrics.Collector
	tokens  *session.File
	client  *api.Client
	in      *bufio.Reader
}

func NewRootCmd(version, buildDate string) *cobra.Command {
	a := &app{version: version, logger: logging.Nop()}
	root := &cobra.Command{
		Use:               "moviecat",
		Short:             "Movie catalog API client",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.pushMetrics,
	}
	root.PersistentFlags().StringVar(&a.serverURL, "server", "", "API base URL (default from config, http://localhost:8000)")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $MOVIECAT_CONFIG or ~/.moviecat.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")

	root.AddCommand(newVersionCmd(version, buildDate))
	root.AddCommand(newAuthCmd(a))
	root.AddCommand(newUsersCmd(a))
	root.AddCommand(newMoviesCmd(a))
	root.AddCommand(newLikesCmd(a))
	root.AddCommand(newUtilsCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.serverURL != "" {
		cfg.ServerURL = a.serverURL
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	a.cfg = cfg
	a.logger = logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cmd.ErrOrStderr()})
	a.metrics = metrics.New()
	a.tokens = session.NewFile(cfg.TokenFile)

	a.client, err = api.NewClient(api.Config{
		BaseURL:    cfg.ServerURL,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		Logger:     &a.logger,
		Observer:   a.metrics,
		UserAgent:  "moviecat/" + a.version,
	}, a.tokens)
	return err
}

func (a *app) pushMetrics(_ *cobra.Command, _ []string) {
	if a.metrics == nil || a.cfg.Metrics.Pushgateway == "" {
		return
	}
	if err := a.metrics.Push(a.cfg.Metrics.Pushgateway, a.cfg.Metrics.Job); err != nil {
		a.logger.Warn().Err(err).Str("pushgateway", a.cfg.Metrics.Pushgateway).Msg("metrics push failed")
	}
}

// run adapts an operation to a cobra handler: failures are logged to
// stderr and returned, results are printed to stdout.
func (a *app) run(fn func(ctx context.Context, cmd *cobra.Command, args []string) (any, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		out, err := fn(cmd.Context(), cmd, args)
		if err != nil {
			a.logger.Error().Err(err).Str("command", cmd.CommandPath()).Msg("command failed")
			return err
		}
		return printResult(cmd.OutOrStdout(), out)
	}
}
