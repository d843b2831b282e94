// Command dashboard is a terminal front end for the project dashboard:
// sign in, then list, search and edit projects, review analytics and read
// notifications.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/nhle/project-dashboard/internal/app"
	"github.com/nhle/project-dashboard/internal/logger"
	"github.com/nhle/project-dashboard/internal/model"
	"github.com/nhle/project-dashboard/internal/theme"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	global.SetOutput(stderr)
	configPath := global.String("config", model.DefaultConfigPath(), "path to the configuration file")
	global.Usage = func() { usage(stderr, global) }

	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if global.NArg() == 0 {
		usage(stderr, global)
		return 2
	}

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, theme.ErrorStyle.Render(err.Error()))
		return 1
	}

	log, closer, err := logger.NewFile(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fmt.Fprintln(stderr, theme.ErrorStyle.Render(err.Error()))
		return 1
	}
	defer closer.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx = log.WithContext(ctx)

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("starting application")
		fmt.Fprintln(stderr, theme.ErrorStyle.Render(err.Error()))
		return 1
	}
	defer a.Close()

	theme.Apply(a.Prefs.DarkMode(ctx))
	a.Restore(ctx)

	c := &cli{
		app:         a,
		out:         stdout,
		now:         time.Now,
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}

	name, rest := global.Arg(0), global.Args()[1:]
	if err := c.dispatch(ctx, name, rest); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		log.Debug().Err(err).Str("command", name).Msg("command failed")
		fmt.Fprintln(stderr, theme.ErrorStyle.Render(err.Error()))
		return 1
	}
	return 0
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "usage: dashboard [-config path] <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-14s %s\n", cmd.name, cmd.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "global flags:")
	fs.PrintDefaults()
}
