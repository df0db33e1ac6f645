// Command pagexd serves the extraction API: listing, detail, and category
// endpoints over arbitrary third-party pages.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/pagexio/pagex"
	pagexgin "github.com/pagexio/pagex/gin"
	"github.com/pagexio/pagex/goquery"
	pagexhttp "github.com/pagexio/pagex/http"
	pagexslog "github.com/pagexio/pagex/slog"
	pagexyaml "github.com/pagexio/pagex/yaml"
	"gopkg.in/natefinch/lumberjack.v2"
)

// CLI defines the command-line interface.
type CLI struct {
	Addr      string        `help:"Listen address." default:":3000"`
	Timeout   time.Duration `help:"Outbound fetch timeout." default:"10s"`
	RateLimit float64       `help:"Max outbound requests per second (0 disables throttling)." default:"0"`
	Policy    string        `help:"Path to a YAML policy override file." type:"path"`
	LogFile   string        `help:"Log to a rotating file instead of stderr." type:"path"`
	LogLevel  string        `help:"Minimum log level." enum:"debug,info,warn,error" default:"info"`
}

func main() {
	cli := &CLI{}
	kong.Parse(cli,
		kong.Name("pagexd"),
		kong.Description("HTML extraction API server"),
	)

	if err := run(cli); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cli *CLI) error {
	logger := newLogger(cli)

	policy := pagex.DefaultPolicy()
	if cli.Policy != "" {
		loaded, err := pagexyaml.LoadPolicy(cli.Policy)
		if err != nil {
			return err
		}
		policy = loaded
		logger.Info("policy overrides loaded", "path", cli.Policy)
	}

	fetcher := pagexslog.NewLoggingFetcher(
		pagexhttp.NewFetcher(
			pagexhttp.WithTimeout(cli.Timeout),
			pagexhttp.WithRateLimit(cli.RateLimit),
		),
		logger,
	)
	defer fetcher.Close()

	handler := pagexgin.NewHandler(
		fetcher,
		goquery.NewListingExtractor(policy),
		goquery.NewDetailExtractor(),
		goquery.NewCategoryExtractor(),
		logger,
	)

	srv := &http.Server{
		Addr:    cli.Addr,
		Handler: pagexgin.NewServer(handler),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cli.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}

	logger.Info("server stopped")
	return nil
}

// newLogger builds the process logger: text output to stderr, or a
// size-rotated file when --log-file is set.
func newLogger(cli *CLI) *slog.Logger {
	var out io.Writer = os.Stderr
	if cli.LogFile != "" {
		out = &lumberjack.Logger{
			Filename:   cli.LogFile,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     14, // days
			Compress:   true,
		}
	}

	level := slog.LevelInfo
	switch cli.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}
