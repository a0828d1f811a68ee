package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"fyne.io/fyne/v2/app"
	"github.com/tartampluch/go-datepicker/internal/config"
	"github.com/tartampluch/go-datepicker/internal/engine"
	"github.com/tartampluch/go-datepicker/internal/feed"
	"github.com/tartampluch/go-datepicker/internal/ui"
)

// main delegates to runMain so deferred calls (like closing the log file)
// run before os.Exit.
func main() {
	os.Exit(runMain())
}

// cliOptions holds the parsed command line.
type cliOptions struct {
	version bool
	debug   bool
	port    string
	ui      ui.Options
}

func parseFlags(args []string) (cliOptions, error) {
	var o cliOptions
	fs := flag.NewFlagSet(config.AppID, flag.ContinueOnError)
	fs.BoolVar(&o.version, config.FlagVersion, false, config.FlagDescVersion)
	fs.BoolVar(&o.debug, config.FlagDebug, false, config.FlagDescDebug)
	fs.BoolVar(&o.ui.Lunar, config.FlagLunar, false, config.FlagDescLunar)
	fs.StringVar(&o.ui.Mode, config.FlagMode, config.ModeDate, config.FlagDescMode)
	fs.StringVar(&o.ui.VCard, config.FlagVCard, "", config.FlagDescVCard)
	fs.StringVar(&o.ui.Lang, config.FlagLang, "", config.FlagDescLang)
	fs.StringVar(&o.ui.TextOptions, config.FlagOptions, "", config.FlagDescOptions)
	fs.StringVar(&o.port, config.FlagPort, "", config.FlagDescPort)
	err := fs.Parse(args)
	return o, err
}

// runMain returns the process exit code.
func runMain() int {
	opts, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return config.ExitCodeSuccess
	}
	if err != nil {
		// The flag set already printed the usage.
		return config.ExitCodeError
	}
	if opts.version {
		printVersion()
		return config.ExitCodeSuccess
	}

	if logCloser := setupLogging(opts.debug); logCloser != nil {
		defer func() { _ = logCloser.Close() }()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	if err := run(ctx, opts); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run wires the picker window and, with --port, the anniversary feed.
func run(ctx context.Context, opts cliOptions) error {
	a := app.NewWithID(config.AppID)
	a.Preferences().SetString(config.PrefLastRun, config.Version)

	gui := ui.NewPickerApp(a, ctx, opts.ui, engine.NewHTTPFetcher())
	if opts.port != "" {
		srv, err := startFeed(ctx, opts.port)
		if err != nil {
			return err
		}
		gui.Feed = srv
	}

	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		a.Quit()
	}()

	return gui.Run()
}

// startFeed binds the port synchronously so a busy port fails the start,
// then serves until ctx ends.
func startFeed(ctx context.Context, port string) (*feed.Server, error) {
	ln, err := feed.Listen(port)
	if err != nil {
		return nil, err
	}
	srv := feed.New()
	go func() {
		if err := srv.Serve(ctx, ln); err != nil {
			slog.Error(config.ErrFeedShutdown,
				config.LogKeyComponent, config.CompFeed,
				config.LogKeyError, err,
			)
		}
	}()
	return srv, nil
}

func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging installs a JSON slog logger writing to stdout and, when the
// cache dir is usable, to a log file truncated on each start.
func setupLogging(debugMode bool) io.Closer {
	writers := []io.Writer{os.Stdout}
	var logFile *os.File

	if logPath, err := getLogFilePath(); err == nil {
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}
	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}
	return filepath.Join(appDir, config.LogFileName), nil
}
