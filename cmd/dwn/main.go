package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/thejerf/suture/v4"

	"github.com/1broseidon/dwn/internal/config"
	"github.com/1broseidon/dwn/internal/ipc"
	"github.com/1broseidon/dwn/internal/runtimepath"
	"github.com/1broseidon/dwn/internal/wm"
	"github.com/1broseidon/dwn/internal/x11"
)

const usage = "usage: dwn [-v] [-s status] [-c config]"

// LogLevelEnv overrides the configured log level.
const LogLevelEnv = "DWN_LOG_LEVEL"

type options struct {
	version    bool
	status     *string
	configPath string
}

func parseArgs(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("dwn", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&opts.version, "v", false, "print version and exit")
	status := fs.String("s", "", "set the root window name and exit")
	fs.StringVar(&opts.configPath, "c", "", "config file")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "s" {
			opts.status = status
		}
	})
	return opts, nil
}

// logLevel resolves the slog level. The environment wins over the config.
func logLevel(configured, env string) slog.Level {
	name := configured
	if env != "" {
		name = env
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}
	if opts.version {
		fmt.Println(wm.Name + "-" + wm.Version)
		os.Exit(0)
	}
	if opts.status != nil {
		if err := x11.SetRootNameStandalone(*opts.status); err != nil {
			log.Fatalf("dwn: %v", err)
		}
		os.Exit(0)
	}

	cfg, cfgErr := loadConfig(opts.configPath)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel, os.Getenv(LogLevelEnv)),
	}))
	slog.SetDefault(logger)
	if cfgErr != nil {
		logger.Warn("configuration rejected, using defaults", "error", cfgErr)
	}

	restart, err := run(cfg, logger)
	if err != nil {
		log.Fatalf("dwn: %v", err)
	}
	if restart {
		reexec(logger)
	}
}

// loadConfig never returns a nil config: on error the defaults come back
// alongside it.
func loadConfig(path string) (*config.Config, error) {
	var (
		res *config.LoadResult
		err error
	)
	if path != "" {
		res, err = config.LoadFromPath(path)
	} else {
		res, err = config.Load()
	}
	if err == nil {
		if err = wm.ValidateCommands(res.Config); err == nil {
			return res.Config, nil
		}
	}
	return config.DefaultConfig(), err
}

func run(cfg *config.Config, logger *slog.Logger) (bool, error) {
	d, err := x11.NewConnection(x11.Options{Font: cfg.Appearance.Font, Logger: logger})
	if err != nil {
		return false, fmt.Errorf("cannot open display: %w", err)
	}
	defer d.Close()

	if err := d.BecomeWM(); err != nil {
		if errors.Is(err, x11.ErrAnotherWM) {
			log.Fatalf("dwn: another window manager is already running")
		}
		return false, err
	}

	state, err := wm.New(d, cfg, wm.Options{Logger: logger})
	if err != nil {
		return false, err
	}
	if err := state.Setup(); err != nil {
		return false, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sup := suture.New("dwn", suture.Spec{
		EventHook: func(ev suture.Event) {
			logger.Warn("supervisor event", "event", ev.String())
		},
	})
	if socket, err := runtimepath.SocketPath(); err != nil {
		logger.Warn("IPC disabled", "error", err)
	} else {
		sup.Add(ipc.NewServer(socket, state, logger))
	}
	supDone := sup.ServeBackground(ctx)

	logger.Info("dwn started", "version", wm.Version)
	runErr := state.Run(ctx)
	cancel()
	<-supDone

	state.Cleanup()
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return false, runErr
	}
	return state.Restart(), nil
}

// reexec replaces the process with a fresh copy of argv[0].
func reexec(logger *slog.Logger) {
	path, err := exec.LookPath(os.Args[0])
	if err != nil {
		log.Fatalf("dwn: restart: %v", err)
	}
	logger.Info("restarting", "path", path)
	if err := syscall.Exec(path, os.Args, os.Environ()); err != nil {
		log.Fatalf("dwn: restart: %v", err)
	}
}
