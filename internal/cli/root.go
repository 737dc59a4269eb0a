// Package cli is the terminal front end of the catalog: cobra commands that
// drive a view.ProductList against the catalog API and print its state.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"catalog-console/internal/client"
	"catalog-console/internal/config"
	"catalog-console/internal/logger"
	"catalog-console/internal/service"
	"catalog-console/internal/view"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options wires the console to its surroundings. Zero values fall back to the
// process streams and a logger built from the configuration.
type Options struct {
	In     io.Reader
	Out    io.Writer
	Err    io.Writer
	Logger *zap.Logger
}

type rootFlags struct {
	apiURL  string
	token   string
	envFile string
	env     string
	timeout time.Duration
	verbose bool
}

type app struct {
	opts  Options
	flags rootFlags

	in  *bufio.Reader
	out io.Writer

	cfg     *config.Config
	logger  *zap.Logger
	session *service.Session
	catalog *view.ProductList
	owned   bool
}

// Execute runs the console with args. Pending requests are settled and the
// logger flushed however the command ends, failures included.
func Execute(ctx context.Context, opts Options, args []string) error {
	a := newApp(opts)
	defer a.close()

	root := newRootCommand(a)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newApp(opts Options) *app {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}

	return &app{
		opts: opts,
		in:   bufio.NewReader(opts.In),
		out:  opts.Out,
	}
}

// newRootCommand builds the catalog command tree around a
func newRootCommand(a *app) *cobra.Command {
	opts := a.opts
	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Browse and manage the product catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetIn(opts.In)
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.apiURL, "api-url", "", "catalog API base URL (overrides CATALOG_API_URL)")
	pf.StringVar(&a.flags.token, "token", "", "bearer token for the session (overrides CATALOG_TOKEN)")
	pf.StringVar(&a.flags.envFile, "env-file", "", "load environment variables from this file first")
	pf.StringVar(&a.flags.env, "env", "", "logging environment, development or production (overrides SERVER_ENV)")
	pf.DurationVar(&a.flags.timeout, "timeout", 0, "per-request timeout (overrides CATALOG_TIMEOUT)")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "log every API request")

	root.AddCommand(
		newListCommand(a),
		newSearchCommand(a),
		newCategoryCommand(a),
		newViewCommand(a),
		newUpdateCommand(a),
		newDeleteCommand(a),
		newShellCommand(a),
		newTokenCommand(a),
	)

	return root
}

func (a *app) setup() error {
	if a.flags.envFile != "" {
		if err := godotenv.Load(a.flags.envFile); err != nil {
			return fmt.Errorf("failed to load env file: %w", err)
		}
	}

	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	if a.flags.apiURL != "" {
		cfg.Catalog.APIURL = strings.TrimSpace(a.flags.apiURL)
	}
	if a.flags.token != "" {
		cfg.Catalog.Token = strings.TrimSpace(a.flags.token)
	}
	if a.flags.env != "" {
		cfg.Server.Env = a.flags.env
	}
	if a.flags.timeout != 0 {
		cfg.Catalog.Timeout = a.flags.timeout
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.logger = a.opts.Logger
	if a.logger == nil {
		l, err := logger.New(cfg.Server.Env)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.logger = l.Named("catalog")
		a.owned = true
	}
	if !a.flags.verbose {
		a.logger = logger.Quiet(a.logger, zapcore.WarnLevel)
	}

	var tokens service.TokenService
	if cfg.JWT.Secret != "" {
		tokens = service.NewTokenService(cfg.JWT.Secret)
	}
	a.session = service.NewSession(cfg.Catalog.Token, tokens, a.logger)

	api := client.New(client.Config{
		BaseURL: cfg.Catalog.APIURL,
		Timeout: cfg.Catalog.Timeout,
	}, a.session, a.logger)

	notifier := view.NotifierFunc(func(message string) {
		fmt.Fprintln(a.out, message)
	})
	a.catalog = view.NewProductList(api, a.session, notifier, a.logger)

	a.logger.Debug("Console configured",
		zap.String("api_url", cfg.Catalog.APIURL),
		zap.Bool("signed_in", a.session.CurrentUser() != nil),
	)
	return nil
}

func (a *app) close() {
	if a.catalog != nil {
		a.catalog.Settle()
	}
	if a.logger == nil {
		return
	}

	a.logger.Debug("Console finished")
	if a.owned {
		a.logger.Sync()
	}
}
