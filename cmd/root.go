package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sheetpub/sheetpub/client"
	"github.com/sheetpub/sheetpub/config"
	"github.com/sheetpub/sheetpub/internal/logger"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	verbose bool
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "sheetpub",
	Short: "Publish a OneDrive spreadsheet as a static searchable HTML page",
	Long: `sheetpub downloads a workbook from a user's OneDrive with app-only
Microsoft Graph credentials and renders one worksheet as a self-contained,
searchable HTML table.

Typical pipeline:
  sheetpub fetch
  sheetpub render --input data/source.xlsx --output site/index.html`,
	Version:           Version,
	SilenceErrors:     true,
	PersistentPreRunE: persistentPreRun,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug details to stderr")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load settings from a .env file (already-set variables win)")
	rootCmd.SetGlobalNormalizationFunc(dashedFlags)
}

func persistentPreRun(cmd *cobra.Command, args []string) error {
	logger.SetVerbose(verbose)
	if envFile != "" {
		if err := config.LoadEnvFile(envFile); err != nil {
			cmd.SilenceUsage = true
			return &ExitError{Code: ExitConfig, Err: err}
		}
		log.Debug().Str("path", envFile).Msg("loaded env file")
	}
	return nil
}

// dashedFlags accepts --env_file as --env-file.
func dashedFlags(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// newClient builds a Graph client for the resolved endpoints.
func newClient(creds config.Credentials) *client.Client {
	c := client.New(creds.LoginURL, creds.GraphURL)
	c.UserAgent = "sheetpub/" + Version
	return c
}

// Execute runs the root command. Interrupts cancel in-flight requests. The
// returned error carries an exit code when it is an *ExitError.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return execute(ctx)
}

func execute(ctx context.Context) error {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return classify(err)
	}
	return nil
}
