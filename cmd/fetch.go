package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sheetpub/sheetpub/client"
	"github.com/sheetpub/sheetpub/config"
	"github.com/sheetpub/sheetpub/internal"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the source workbook from OneDrive",
	Long: `Download a file from a user's OneDrive through Microsoft Graph using the
OAuth2 client-credentials flow.

Settings are read from the environment:
  TENANT_ID, CLIENT_ID, CLIENT_SECRET   app registration (required)
  GRAPH_USER_UPN                         drive owner, e.g. reports@contoso.com (required)
  DRIVE_PATH                             path under the drive root, e.g. /Reports/2024.xlsx (required)
  OUTPUT_PATH                            destination (default: data/source.xlsx)
  GRAPH_LOGIN_URL, GRAPH_API_URL         endpoint overrides for national clouds

Exit codes: 2 configuration, 3 authentication, 4 download.`,
	Example: `  sheetpub fetch
  sheetpub fetch --env-file .env.production`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := config.ResolveFetch(os.LookupEnv)
	if err != nil {
		return err
	}

	c := newClient(cfg.Credentials)
	ctx := cmd.Context()

	log.Debug().Str("tenant", cfg.TenantID).Str("client_id", cfg.ClientID).Msg("requesting token")
	token, err := c.ObtainToken(ctx, cfg.TenantID, cfg.ClientID, cfg.ClientSecret)
	if err != nil {
		return err
	}

	log.Debug().Str("upn", cfg.UserPrincipalName).Str("drive_path", cfg.DrivePath).Msg("downloading")
	written, err := c.Download(ctx, token, cfg.UserPrincipalName, cfg.DrivePath, cfg.OutputPath)
	if err != nil {
		var partial *client.PartialDownloadError
		if errors.As(err, &partial) {
			log.Warn().Str("path", partial.Path).Int64("bytes", partial.Written).Msg("incomplete file left on disk")
		}
		return err
	}
	log.Debug().Str("path", cfg.OutputPath).Int64("bytes", written).Msg("download complete")

	warnExtensionMismatch(cfg.OutputPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Downloaded to %s\n", cfg.OutputPath)
	return nil
}

// warnExtensionMismatch logs when the downloaded bytes are a different
// workbook format than the file extension says. The file is left as is.
func warnExtensionMismatch(path string) {
	want, mismatch, err := internal.ExtensionMismatch(path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("could not sniff workbook format")
		return
	}
	if mismatch {
		log.Warn().Str("path", path).Str("expected_extension", want).Msg("file content does not match its extension")
	}
}
