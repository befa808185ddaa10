package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LeJamon/txengine/internal/config"
	"github.com/LeJamon/txengine/internal/logging"
)

var (
	// Global flags
	configFile    string
	workers       int
	queueCapacity int
	sequential    bool
	logLevel      string
	logFormat     string

	// resolved once in initConfig, read by subcommands
	cfg *config.Config
	log *logging.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "txengine",
	Short: "txengine - a client-sharded transaction processing engine",
	Long: `txengine replays a stream of deposit/withdrawal/dispute/resolve/chargeback
events against per-client account state and emits the final account
snapshots. It can run single-threaded for a deterministic trace, or
partitioned across worker goroutines keyed by client id.`,
	Version: "0.1.0-dev",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "configuration file path")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "number of worker partitions (0 lets the engine pick)")
	rootCmd.PersistentFlags().IntVar(&queueCapacity, "queue-capacity", 0, "bounded channel capacity between orchestrator stages (0 uses the default)")
	rootCmd.PersistentFlags().BoolVar(&sequential, "sequential", false, "process on a single goroutine instead of sharding by client")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "trace|debug|info|warn|error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "pretty|json")
}

// initConfig loads configuration from defaults, an optional file, and
// TXENGINE_-prefixed environment variables, then layers any explicitly
// set flags on top, mirroring the teacher's initConfig/LoadConfig split
// between file-and-env resolution and command-line override.
func initConfig() {
	loaded, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if rootCmd.PersistentFlags().Changed("workers") {
		loaded.Workers = workers
	}
	if rootCmd.PersistentFlags().Changed("queue-capacity") {
		loaded.QueueCapacity = queueCapacity
	}
	if rootCmd.PersistentFlags().Changed("sequential") {
		loaded.Sequential = sequential
	}
	if rootCmd.PersistentFlags().Changed("log-level") {
		loaded.LogLevel = logLevel
	}
	if rootCmd.PersistentFlags().Changed("log-format") {
		loaded.LogFormat = logFormat
	}

	if err := config.Validate(loaded); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg = loaded
	log = logging.New(cfg.LogLevel, logging.Format(cfg.LogFormat))
}