package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/dmitrymomot/cookiesync"
	"github.com/dmitrymomot/cookiesync/pkg/account"
	"github.com/dmitrymomot/cookiesync/pkg/config"
	"github.com/dmitrymomot/cookiesync/pkg/diagnostics"
	"github.com/dmitrymomot/cookiesync/pkg/logger"
	"github.com/dmitrymomot/cookiesync/pkg/transport"
)

const envPrefix = "COOKIESYNC_"

var errUsage = errors.New("invalid usage")

var globalFlags = []cli.Flag{
	cli.StringSliceFlag{
		Name:  "env-file",
		Usage: "load variables from `FILE` before reading the environment",
	},
	cli.StringFlag{
		Name:  "backend, b",
		Usage: "storage backend: memory, sqlite or redis (default from " + envPrefix + "STORE_BACKEND)",
	},
	cli.StringFlag{
		Name:  "sqlite-path",
		Usage: "sqlite database `PATH`",
	},
	cli.StringFlag{
		Name:  "redis-url",
		Usage: "redis connection `URL`",
	},
	cli.StringFlag{
		Name:  "uid",
		Usage: "active account user id",
	},
	cli.StringFlag{
		Name:  "account-cookie",
		Usage: "cookie header of the active account",
	},
	cli.StringFlag{
		Name:  "log-level",
		Value: "warn",
		Usage: "debug, info, warn or error",
	},
	cli.BoolFlag{
		Name:  "trace",
		Usage: "log every outgoing request with redacted headers at debug level",
	},
	cli.StringFlag{
		Name:  "log-format",
		Value: string(logger.FormatText),
		Usage: "text or json",
	},
}

func newApp(out io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "cookiectl"
	app.HelpName = "cookiectl"
	app.Usage = "inspect and drive cookiesync cookie state"
	app.UsageText = "cookiectl [global options] <command> [arguments...]"
	app.Version = version
	app.Writer = out
	app.ErrWriter = os.Stderr
	app.Flags = globalFlags
	app.Commands = commands
	return app
}

// session collects what a command needs from the global flags.
type session struct {
	ctx    context.Context
	cfg    cookiesync.Config
	engine *cookiesync.Engine
	out    io.Writer
	log    *slog.Logger
}

func (s *session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// withEngine opens the configured engine, runs fn and closes the engine.
func withEngine(fn func(s *session, c *cli.Context) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		if err := config.LoadEnv(c.GlobalStringSlice("env-file")...); err != nil {
			return err
		}

		var cfg cookiesync.Config
		if err := config.Load(&cfg, config.WithPrefix(envPrefix)); err != nil {
			return err
		}
		if v := c.GlobalString("backend"); v != "" {
			cfg.Backend = v
		}
		if v := c.GlobalString("sqlite-path"); v != "" {
			cfg.SQLite.Path = v
		}
		if v := c.GlobalString("redis-url"); v != "" {
			cfg.Redis.ConnectionURL = v
		}

		format := logger.Format(c.GlobalString("log-format"))
		if format != logger.FormatText && format != logger.FormatJSON {
			return fmt.Errorf("%w: unknown log format %q", errUsage, format)
		}
		level := logger.ParseLevel(c.GlobalString("log-level"))
		if c.GlobalBool("trace") {
			level = slog.LevelDebug
		}
		log := logger.New(
			logger.WithLevel(level),
			logger.WithFormat(format),
			logger.WithOutput(c.App.ErrWriter),
			logger.WithAttr(logger.Component("cookiectl")),
			logger.WithContextExtractors(transport.RequestIDExtractor()),
		)

		ctx := context.Background()
		opts := []cookiesync.Option{cookiesync.WithLogger(log)}
		if c.GlobalBool("trace") {
			opts = append(opts, cookiesync.WithCollector(diagnostics.NewLogger(log.With(logger.Component("diagnostics")))))
		}
		if uid := c.GlobalString("uid"); uid != "" || c.GlobalString("account-cookie") != "" {
			opts = append(opts, cookiesync.WithAccount(account.Static{ID: uid, Header: c.GlobalString("account-cookie")}))
		}

		engine, err := cookiesync.Open(ctx, cfg, opts...)
		if err != nil {
			return err
		}
		defer func() {
			if err := engine.Close(); err != nil {
				log.Warn("failed to close backend", logger.Error(err))
			}
		}()

		return fn(&session{ctx: ctx, cfg: cfg, engine: engine, out: c.App.Writer, log: log}, c)
	}
}
