// hostpulse samples host CPU, memory, virtual memory and disk usage on a
// fixed interval and shows the rolling history.
//
// It runs a background sampler that keeps a bounded history per metric and
// publishes immutable snapshots. The snapshots feed an interactive TUI, a
// one-shot text report, or a JSON dump.
//
// Usage:
//
//	hostpulse [flags]
//
// Flags:
//
//	-tui              Launch interactive Bubbletea dashboard
//	-once             Sample twice, one interval apart, and print a report
//	-json             Print the snapshot as JSON (implies -once)
//	-config string    Path to configuration file (default: ~/.config/hostpulse/config.yaml)
//	-interval float   Sampling interval in seconds (0 = config value)
//	-capacity int     History points kept per metric (0 = config value)
//	-theme string     Theme override (dark|light)
//	-verbose          Enable debug logging
//	-write-config     Write the effective configuration as YAML and exit
//	-version          Print version and exit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"

	"gitlab.com/tinyland/lab/hostpulse/config"
	"gitlab.com/tinyland/lab/hostpulse/display/color"
	"gitlab.com/tinyland/lab/hostpulse/display/tui"
	"gitlab.com/tinyland/lab/hostpulse/sampler"
	"gitlab.com/tinyland/lab/hostpulse/sampler/host"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file (default: ~/.config/hostpulse/config.yaml)")
		runTUI      = flag.Bool("tui", false, "Launch interactive Bubbletea dashboard")
		runOnce     = flag.Bool("once", false, "Sample twice, one interval apart, and print a report")
		jsonOut     = flag.Bool("json", false, "Print the snapshot as JSON (implies -once)")
		interval    = flag.Float64("interval", 0, "Sampling interval in seconds (0 = config value)")
		capacity    = flag.Int("capacity", 0, "History points kept per metric (0 = config value)")
		themeFlag   = flag.String("theme", "", "Theme override (dark|light)")
		verbose     = flag.Bool("verbose", false, "Enable debug logging")
		writeConfig = flag.String("write-config", "", "Write the effective configuration to this YAML file and exit")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("hostpulse %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	mode := selectMode(*runTUI, *runOnce, *jsonOut)
	if mode == modeUsage && *writeConfig == "" {
		fmt.Printf("hostpulse v%s (%s) built %s\n", version, commit, date)
		fmt.Println()
		fmt.Println("Usage: hostpulse [flags]")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(0)
	}

	// ---------------------------------------------------------------
	// Configuration
	// ---------------------------------------------------------------

	cfg, cfgPath, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	applyFlagOverrides(cfg, flagOverrides{
		interval: *interval,
		capacity: *capacity,
		theme:    *themeFlag,
		verbose:  *verbose,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	if *writeConfig != "" {
		if err := writeConfigFile(os.Stdout, cfg, *writeConfig); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write config: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	logger, closeLog, err := newLogger(cfg, mode == modeTUI)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	if cfgPath != "" {
		logger.Debug("config loaded", "path", cfgPath)
	}

	// ---------------------------------------------------------------
	// Context with signal handling
	// ---------------------------------------------------------------

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	scfg := cfg.SamplerConfig(logger)
	s, err := sampler.New(host.NewSystemReader(), scfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sampler init failed: %v\n", err)
		os.Exit(1)
	}

	// ---------------------------------------------------------------
	// One-shot report
	// ---------------------------------------------------------------

	if mode == modeOnce || mode == modeJSON {
		snap, err := sampleTwice(ctx, s, scfg.Interval)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hostpulse: %v\n", err)
			os.Exit(1)
		}
		if mode == modeJSON {
			err = writeJSON(os.Stdout, snap)
		} else {
			color.Apply(os.Stdout)
			err = writeReport(os.Stdout, snap, terminalWidth())
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "hostpulse: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// ---------------------------------------------------------------
	// TUI mode
	// ---------------------------------------------------------------

	defer func() {
		if r := recover(); r != nil {
			// Attempt to restore terminal from alt-screen before printing error.
			fmt.Print("\x1b[?1049l\x1b[?25h")
			fmt.Fprintf(os.Stderr, "hostpulse: TUI panic: %v\n", r)
			os.Exit(1)
		}
	}()

	if err := s.Start(ctx, 0); err != nil {
		fmt.Fprintf(os.Stderr, "hostpulse: %v\n", err)
		os.Exit(1)
	}

	model := tui.NewModel(s, tui.Options{
		Theme:           cfg.Display.Theme,
		RefreshInterval: cfg.Display.RefreshInterval.Duration,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		s.Stop()
		fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
		os.Exit(1)
	}
	s.Stop()
}

// terminalWidth returns the stdout width, or 80 when stdout is not a terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
