package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"fundlookup/internal/config"
	"fundlookup/internal/dataset"
	"fundlookup/internal/logging"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose    bool
	configPath string
	sourceFlag string

	// Resolved in PersistentPreRunE
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "fundlookup",
	Short: "Look up an offshore reporting fund by ISIN",
	Long: `fundlookup checks whether an ISIN appears in the HMRC list of approved
offshore reporting funds and shows its parent fund and sub fund name.

The dataset is a CSV export of the list, read from a file or an http(s) URL.

Run without arguments to start the interactive form.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
	},
	RunE: runForm,
}

// lookupCmd evaluates a single key and prints the result
var lookupCmd = &cobra.Command{
	Use:   "lookup [isin]",
	Short: "Look up one ISIN and print the result",
	Long: `Loads the dataset, evaluates the key once and prints the projected fields,
or the not-found message. A miss is not an error: the exit status is 0.

Example:
  fundlookup lookup AB12CD3FG456
  fundlookup lookup AB12CD3FG456 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

// checkCmd validates the dataset source
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Load the dataset and report what was found",
	Long: `Loads the dataset once and reports the record count and whether the key and
projected columns exist. Exits non-zero when the dataset cannot be fetched or decoded,
which the interactive form would otherwise show as "No fund found" for every query.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

// serveCmd serves the form over HTTP
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the lookup form and JSON API over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

// versionCmd prints the version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the fundlookup version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", cfg.Name, cfg.Version)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigPath, "Config file")
	rootCmd.PersistentFlags().StringVarP(&sourceFlag, "source", "s", "", "Dataset file path or http(s) URL (overrides config)")

	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false, "Print the result as JSON")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8080)")

	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup resolves configuration (file, env, flags) and initializes logging.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if sourceFlag != "" {
		loaded.Dataset.Source = sourceFlag
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := logging.Initialize(loaded.Logging); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	if verbose {
		loaded.Logging.Level = "debug"
		if err := logging.SetLevel(loaded.Logging.Level); err != nil {
			return err
		}
	}

	cfg = loaded
	logging.Boot("%s %s: command=%s source=%s", cfg.Name, cfg.Version, cmd.Name(), cfg.Dataset.Source)
	logging.BootDebug("config=%s key=%q projection=%v logging=%s/%s",
		configPath, cfg.Lookup.KeyColumn, cfg.Lookup.Projection, cfg.Logging.Output, cfg.Logging.Level)
	return nil
}

// newLoader builds the dataset loader described by c. It is not started.
func newLoader(c *config.Config) *dataset.Loader {
	client := &http.Client{Timeout: c.GetFetchTimeout()}
	src := dataset.NewSource(c.Dataset.Source, client)
	return dataset.NewLoader(src, dataset.WithDecodeOptions(dataset.DecodeOptions{
		Comma: c.DelimiterRune(),
	}))
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigCh)
		select {
		case <-sigCh:
			logging.Boot("received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
