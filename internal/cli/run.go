package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/tessro/ffl/internal/config"
	"github.com/tessro/ffl/internal/control"
	"github.com/tessro/ffl/internal/daemon"
	"github.com/tessro/ffl/internal/launcher"
	"github.com/tessro/ffl/internal/lifecycle"
	"github.com/tessro/ffl/internal/logging"
	"github.com/tessro/ffl/internal/metrics"
	"github.com/tessro/ffl/internal/modewatch"
	"github.com/tessro/ffl/internal/paths"
	"github.com/tessro/ffl/internal/probe"
	"github.com/tessro/ffl/internal/profile"
	"github.com/tessro/ffl/internal/tui"
	"github.com/tessro/ffl/internal/xwin"
)

// Flags shared by the root command and `ffl run`.
var (
	runPlain       bool
	runWatch       bool
	runMetricsAddr string
	runLogLevel    string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the launcher (default)",
	Long: "Start the reconciliation loop and the interactive prompt.\n\n" +
		"Commands: set <profile> <mode>, list, shutdown, help, exit/quit.",
	Args: cobra.NoArgs,
	RunE: runLauncher,
}

func addRunFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&runPlain, "plain", false, "read commands line by line instead of the interactive prompt")
	fs.BoolVar(&runWatch, "watch", false, "apply edits of the mode config while running")
	fs.StringVar(&runMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. 127.0.0.1:9477)")
	fs.StringVar(&runLogLevel, "log-level", "", "log level: debug, info, warn, error")
}

// actuator combines the process controller with the window observer's
// close request.
type actuator struct {
	*control.Controller
	*xwin.Observer
}

func loadRunSettings(cmd *cobra.Command) (*config.Settings, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		settings.Log.Level = runLogLevel
	}
	if flags.Changed("metrics-addr") {
		settings.Metrics.Addr = runMetricsAddr
	}
	if flags.Changed("watch") {
		settings.Modes.Watch = runWatch
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func runLauncher(cmd *cobra.Command, args []string) error {
	settings, err := loadRunSettings(cmd)
	if err != nil {
		return err
	}

	cleanup, err := logging.Setup(settings.Log.File, logging.ParseLevel(settings.Log.Level))
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer cleanup()

	lock, err := daemon.Acquire(paths.LockPath())
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer lock.Release()

	profiles, err := profile.LoadRegistry(settings.Browser.Home)
	if err != nil {
		return fmt.Errorf("load profiles: %w", err)
	}
	records, err := profile.LoadModes(settings.Modes.Path)
	if err != nil {
		return fmt.Errorf("load modes: %w", err)
	}
	modes := profile.ResolveModes(profiles, records)

	display, err := xwin.Connect()
	if err != nil {
		return fmt.Errorf("connect to X display: %w", err)
	}
	defer display.Close()
	observer := xwin.NewObserver(display)

	prober, err := probe.New(probe.Config{BinarySuffix: settings.Browser.BinarySuffix})
	if err != nil {
		return fmt.Errorf("open procfs: %w", err)
	}

	reconciler := lifecycle.New(lifecycle.Config{
		Prober: prober,
		Actuator: actuator{
			Controller: control.New(control.Config{Command: settings.Browser.Command}),
			Observer:   observer,
		},
		ShutdownGrace: settings.Lifecycle.ShutdownGrace,
	})

	instances := make([]*lifecycle.Instance, 0, len(profiles))
	for _, p := range profiles {
		instances = append(instances, lifecycle.NewInstance(p, modes[p.Name], settings.Browser.Home))
	}

	var afterTick func([]*lifecycle.Instance)
	if settings.Metrics.Addr != "" {
		m := metrics.New()
		reconciler.Subscribe(m.ObserveTransition)
		afterTick = m.ObserveTick

		srv := metrics.NewServer(settings.Metrics.Addr, m)
		if err := srv.Start(); err != nil {
			return fmt.Errorf("start metrics server: %w", err)
		}
		defer srv.Stop()
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	queue := launcher.NewQueue()

	if settings.Modes.Watch {
		w, err := modewatch.New(modewatch.Config{
			Path:     settings.Modes.Path,
			Profiles: profiles,
			Initial:  modes,
			Push:     queue.Push,
		})
		if err != nil {
			return fmt.Errorf("watch modes: %w", err)
		}
		go w.Run(ctx)
	}

	slog.Info("launcher starting", "profiles", len(profiles), "pid", os.Getpid())
	fmt.Fprintf(cmd.OutOrStdout(), "🦊 ffl managing %d profiles (type help for commands)\n", len(profiles))

	newLoop := func(out io.Writer) *launcher.Loop {
		return launcher.New(launcher.Config{
			Instances:  instances,
			Observer:   observer,
			Reconciler: reconciler,
			Queue:      queue,
			Output:     out,
			AfterTick:  afterTick,
		})
	}

	if runPlain || !term.IsTerminal(int(os.Stdin.Fd())) {
		err = runPlainFrontEnd(ctx, newLoop(cmd.OutOrStdout()), cmd.InOrStdin())
	} else {
		err = runPromptFrontEnd(ctx, queue, newLoop)
	}

	if errors.Is(err, launcher.ErrExit) || errors.Is(err, context.Canceled) {
		slog.Info("launcher exiting")
		return nil
	}
	return err
}

// runPlainFrontEnd feeds input lines to the loop. At EOF an exit command is
// queued, so every line read before it still runs.
func runPlainFrontEnd(ctx context.Context, loop *launcher.Loop, in io.Reader) error {
	queue := loop.Queue()
	go func() {
		defer logging.LogPanic("plain-reader", nil)
		if err := tui.RunPlain(in, queue.Push); err != nil {
			slog.Warn("command reader stopped", "error", err)
		}
		queue.Push("exit")
	}()
	return loop.Run(ctx)
}

// runPromptFrontEnd runs the bubbletea prompt in the foreground and the
// loop in the background. Whichever stops first stops the other.
func runPromptFrontEnd(ctx context.Context, queue *launcher.Queue, newLoop func(io.Writer) *launcher.Loop) error {
	historyPath, err := paths.HistoryPath()
	if err != nil {
		slog.Warn("history disabled", "error", err)
		historyPath = ""
	}

	p := tui.NewProgram(tui.New(tui.Options{Submit: queue.Push, HistoryPath: historyPath}))
	loop := newLoop(tui.NewWriter(p))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loopErr := make(chan error, 1)
	go func() {
		defer logging.LogPanic("reconcile-loop", func(r any) {
			loopErr <- fmt.Errorf("reconciliation loop panicked: %v", r)
			p.Quit()
		})
		err := loop.Run(ctx)
		loopErr <- err
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-loopErr
		return fmt.Errorf("run prompt: %w", err)
	}
	cancel()
	return <-loopErr
}

func init() {
	addRunFlags(runCmd.Flags())
	rootCmd.AddCommand(runCmd)
}
