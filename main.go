package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MyJournal/internal/config"
	"MyJournal/internal/export"
	jnet "MyJournal/internal/net"
	"MyJournal/internal/sketch"
	"MyJournal/internal/state"
	"MyJournal/internal/ui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "myjournal",
	Short: "A personal journal with a handwriting pad",
	Long: `MyJournal keeps a timeline of journal entries with moods, tags and
handwritten sketches.

Run without arguments to open the journal window.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err = newLogger(cfg.Logging.Level)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGUI()
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the journal to a PDF file",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		store, err := openStore()
		if err != nil {
			return err
		}
		if err := export.ExportPDFFile(out, store.List(), logger); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", store.Len(), out)
		return nil
	},
}

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Print the journal grouped by day",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for _, day := range state.Timeline(store.List()) {
			fmt.Fprintln(w, state.FormatDate(day.Date, state.LayoutDayHeading))
			for _, e := range day.Entries {
				fmt.Fprintf(w, "  %s  %s %s\n", state.FormatDate(e.Date.Local(), state.LayoutTime), state.MoodEmoji(e.Mood), e.Title)
			}
		}

		in := state.Analyze(state.MoodDataFrom(store.List()))
		fmt.Fprintf(w, "\nAverage mood %.1f/5 over %d entries\n", in.Average, in.Count)
		for _, note := range in.Notes {
			fmt.Fprintln(w, "  "+note)
		}
		p := state.RandomPrompt(nil)
		fmt.Fprintf(w, "\nToday's prompt (%s): %s\n", p.Category, p.Text)
		return nil
	},
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find sketch mirrors on the local network",
	RunE: func(cmd *cobra.Command, args []string) error {
		timeout, _ := cmd.Flags().GetDuration("timeout")
		found := 0
		err := jnet.Browse(timeout, func(addr string) {
			found++
			fmt.Fprintf(cmd.OutOrStdout(), "http://%s/\n", addr)
		})
		if err != nil {
			return fmt.Errorf("mDNS query failed: %w", err)
		}
		if found == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No mirrors found")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath(), "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	exportCmd.Flags().StringP("out", "o", "journal.pdf", "Output PDF path")
	discoverCmd.Flags().Duration("timeout", 3*time.Second, "How long to listen for answers")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(timelineCmd)
	rootCmd.AddCommand(discoverCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zc.Level = lvl
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return l, nil
}

func openStore() (*state.Store, error) {
	store := state.NewStore(logger)
	if cfg.SeedDemo {
		if err := state.Seed(store); err != nil {
			return nil, fmt.Errorf("failed to seed journal: %w", err)
		}
	}
	return store, nil
}

// runGUI opens the journal window. When the mirror is enabled the pad's
// snapshots are also served to browsers on the LAN until the window closes.
func runGUI() error {
	store, err := openStore()
	if err != nil {
		return err
	}
	penColor, err := sketch.ParseColor(cfg.Pad.Color)
	if err != nil {
		return fmt.Errorf("pad color: %w", err)
	}
	tools := sketch.DefaultToolState()
	tools.Color = penColor
	tools.Width = cfg.Pad.Width
	pad := sketch.NewPad(tools, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)

	mirrorURL := ""
	if cfg.Mirror.Enabled {
		hub := jnet.NewHub(logger)
		snapshots, unsubscribe := pad.Subscribe(4)
		g.Go(func() error {
			defer unsubscribe()
			return hub.Run(gctx, snapshots)
		})
		server := jnet.NewServer(fmt.Sprintf(":%d", cfg.Mirror.Port), hub, logger)
		g.Go(func() error { return server.ListenAndServe(gctx) })

		if cfg.Mirror.MDNS {
			adv, err := jnet.Advertise(cfg.Mirror.Port)
			if err != nil {
				logger.Warn("mDNS advertisement unavailable", zap.Error(err))
			} else {
				g.Go(func() error {
					<-gctx.Done()
					return adv.Shutdown()
				})
			}
		}

		ip, err := jnet.GetOutgoingIP(logger)
		if err != nil {
			logger.Warn("Could not determine local IP", zap.Error(err))
			ip = "127.0.0.1"
		}
		mirrorURL = jnet.MirrorURL(ip, cfg.Mirror.Port)
		logger.Info("Sketch mirror enabled", zap.String("url", mirrorURL))
	}

	ui.RunApp(cfg, store, pad, mirrorURL, logger)

	cancel()
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
