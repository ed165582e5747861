package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/undeconstructed/gotichu/client"
	"github.com/undeconstructed/gotichu/config"
	"github.com/undeconstructed/gotichu/status"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(2)
	}

	closeLog, err := setupLogging(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log error: %v\n", err)
		os.Exit(2)
	}
	defer closeLog()

	err = run(cfg)
	log.Info().Err(err).Msg("client return")
	if err != nil {
		closeLog()
		os.Exit(1)
	}
}

func setupLogging(cfg config.Config) (func(), error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zerolog.SetGlobalLevel(level)

	var out io.Writer = os.Stderr
	closer := func() {}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		out = f
		closer = func() { f.Close() }
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, NoColor: cfg.LogFile != ""})

	return closer, nil
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	channel := client.NewChannel()

	// the printer needs the terminal, and the terminal needs the client
	out := &lateWriter{}
	cli := client.NewClient(channel, client.NewPrinter(out, cfg.Colour))

	repl, err := client.NewRepl(cfg.HistoryFile, cli.Box(), cli.Actions())
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer repl.Close()
	out.w = repl.Stdout()

	grp, gctx := errgroup.WithContext(ctx)

	grp.Go(func() error {
		err := cli.Run(gctx)
		if err == context.Canceled {
			return nil
		}
		return err
	})

	grp.Go(func() error {
		return channel.Keep(gctx, cfg.Server, cfg.Reconnect)
	})

	if cfg.StatusAddr != "" {
		grp.Go(func() error {
			return status.NewGateway(cli.Box(), channel.Connected).Run(gctx, cfg.StatusAddr)
		})
	}

	if cfg.Name != "" {
		grp.Go(func() error {
			if err := channel.WaitConnected(gctx); err != nil {
				return nil
			}
			// a refused join is shown by the sink
			_ = cli.Actions().Join(cfg.Name, cfg.Team)
			return nil
		})
	}

	grp.Go(func() error {
		// leaving the repl ends everything
		defer stop()
		return repl.Run(gctx)
	})

	return grp.Wait()
}

// lateWriter discards until w is set.
type lateWriter struct {
	w io.Writer
}

func (lw *lateWriter) Write(p []byte) (int, error) {
	if lw.w == nil {
		return len(p), nil
	}
	return lw.w.Write(p)
}
