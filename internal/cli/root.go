package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"crypto-alarm/internal/alert"
	"crypto-alarm/internal/config"
	"crypto-alarm/internal/daemon"
	apperrors "crypto-alarm/internal/errors"
	"crypto-alarm/internal/logging"
	"crypto-alarm/internal/pricesource"
	"crypto-alarm/internal/scheduler"
	"crypto-alarm/internal/store"
	"crypto-alarm/internal/tracker"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-08-31"
)

// App holds the application dependencies.
type App struct {
	Logger zerolog.Logger
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(logger zerolog.Logger) *cobra.Command {
	app := &App{Logger: logger}

	rootCmd := &cobra.Command{
		Use:   "crypto-alarm",
		Short: "Audible step-crossing price alarm for crypto assets",
		Long: `crypto-alarm polls asset prices at a fixed interval and plays a distinct
sound whenever a price crosses an upward or downward multiple of its
configured step size.

Coins and steps are paired by position: --coins BTC,ETH --steps 1000,100
rings for BTC every 1000 USD and for ETH every 100 USD.`,
		Example: `  crypto-alarm --coins BTC --steps 1000
  crypto-alarm --coins BTC,ETH --steps 1000,100 --interval 60
  crypto-alarm --api binance --coins BTC --steps 500 --daemon
  crypto-alarm --kill`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd)
		},
	}

	rootCmd.Flags().BoolP("daemon", "d", false, "run detached as a background service")
	rootCmd.Flags().StringP("api", "a", "coingecko", "price backend (coingecko, binance)")
	rootCmd.Flags().String("config", config.DefaultCredentialsFile(), "credentials file with API keys and secrets")
	rootCmd.Flags().StringP("coins", "c", "", "comma-separated coin symbols to track (e.g. BTC,ETH)")
	rootCmd.Flags().StringP("steps", "s", "", "comma-separated price steps, same count and order as coins")
	rootCmd.Flags().IntP("interval", "i", 300, "price check interval in seconds")
	rootCmd.Flags().BoolP("kill", "k", false, "terminate the running daemon and exit")
	rootCmd.Flags().StringP("up-alert", "u", alert.DefaultUpAlert(), "audio file played on an upward crossing")
	rootCmd.Flags().StringP("down-alert", "w", alert.DefaultDownAlert(), "audio file played on a downward crossing")
	rootCmd.Flags().BoolP("test", "t", false, "play both alert sounds once and exit")
	rootCmd.Flags().Bool("strict", false, "never ring while the price sits still on an exact step multiple")
	rootCmd.Flags().Bool("journal", false, "record fired crossings in the journal database")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	addJournalCommands(rootCmd, app)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			output.Printf("crypto-alarm v%s\n", Version)
			output.Dim("Build date: %s", BuildDate)
		},
	}
}

// run executes the root command: one of --test, --kill, or monitoring.
func (app *App) run(cmd *cobra.Command) error {
	output := NewOutput(cmd)
	flags := cmd.Flags()

	upAlert, _ := flags.GetString("up-alert")
	downAlert, _ := flags.GetString("down-alert")

	if testMode, _ := flags.GetBool("test"); testMode {
		player := alert.NewBeepPlayer()
		output.Info("Playing price increase alert: %s", upAlert)
		if err := player.Play(upAlert); err != nil {
			return err
		}
		output.Info("Playing price decrease alert: %s", downAlert)
		return player.Play(downAlert)
	}

	if kill, _ := flags.GetBool("kill"); kill {
		output.Println("Killing daemon")
		if err := daemon.Kill(daemon.PIDFile); err != nil {
			return err
		}
		output.Success("Daemon terminated")
		return nil
	}

	coins, _ := flags.GetString("coins")
	steps, _ := flags.GetString("steps")
	if coins == "" || steps == "" {
		cmd.Help()
		return fmt.Errorf("nothing to do: give --coins and --steps, or use --kill / --test")
	}

	watches, err := config.ParseWatches(coins, steps)
	if err != nil {
		return err
	}

	interval, _ := flags.GetInt("interval")
	if interval <= 0 {
		return apperrors.NewConfigError("interval", "must be a positive number of seconds", nil)
	}

	// Detach before any network or audio setup so the child starts clean.
	if daemonize, _ := flags.GetBool("daemon"); daemonize {
		ctrl := daemon.New(daemon.PIDFile)
		child, err := ctrl.Detach()
		if err != nil {
			return err
		}
		if !child {
			output.Success("Launched as daemon (PID file %s)", daemon.PIDFile)
			return nil
		}
		defer ctrl.Release()

		// The child has no terminal; log to the rotated file only.
		logCfg := logging.DefaultLogConfig()
		logCfg.Console = false
		app.Logger = logging.NewLoggerWithConfig(logCfg)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api, _ := flags.GetString("api")
	credFile, _ := flags.GetString("config")
	source, err := buildSource(ctx, api, credFile, watches)
	if err != nil {
		return err
	}

	strict, _ := flags.GetBool("strict")
	trk := tracker.New(watches, strict)
	dispatcher := alert.NewDispatcher(alert.NewBeepPlayer(), upAlert, downAlert, app.Logger)

	var opts []scheduler.Option
	if journal, _ := flags.GetBool("journal"); journal {
		js, err := store.NewSQLiteStore(store.DefaultJournalPath())
		if err != nil {
			return apperrors.Wrap(err, "opening journal")
		}
		defer js.Close()
		opts = append(opts, scheduler.WithJournal(js))
	}

	pairs := make([]string, len(watches))
	for i, w := range watches {
		pairs[i] = fmt.Sprintf("%s[%v]", w.Symbol, w.Step)
	}
	output.Bold("Running sound alarm monitoring for %s", strings.Join(pairs, ", "))

	sched := scheduler.New(source, trk, config.Symbols(watches), dispatcher,
		time.Duration(interval)*time.Second, app.Logger, opts...)
	return sched.Run(ctx)
}

// buildSource constructs the configured price backend. The choice is made
// once here; nothing downstream branches on the backend name again.
func buildSource(ctx context.Context, api, credFile string, watches []config.Watch) (pricesource.Source, error) {
	switch api {
	case "coingecko":
		return pricesource.NewCoinGecko(ctx, config.Symbols(watches))
	case "binance":
		creds, err := config.LoadBinanceCredentials(credFile)
		if err != nil {
			return nil, err
		}
		return pricesource.NewBinance(creds)
	default:
		return nil, apperrors.NewConfigError("api", api+" is not a supported backend (coingecko, binance)", nil)
	}
}
