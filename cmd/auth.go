package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sheetpub/sheetpub/config"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
}

var authCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the app credentials by requesting a token",
	Long: `Request an app-only token with TENANT_ID, CLIENT_ID and CLIENT_SECRET and
report when it expires. The token itself is never printed.`,
	Args: cobra.NoArgs,
	RunE: runAuthCheck,
}

func init() {
	authCmd.AddCommand(authCheckCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthCheck(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	creds, err := config.ResolveCredentials(os.LookupEnv)
	if err != nil {
		return err
	}

	token, err := newClient(creds).ObtainToken(cmd.Context(), creds.TenantID, creds.ClientID, creds.ClientSecret)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if token.Expiry.IsZero() {
		fmt.Fprintf(out, "Credentials OK for tenant %s\n", creds.TenantID)
		return nil
	}
	fmt.Fprintf(out, "Credentials OK for tenant %s (token expires %s)\n",
		creds.TenantID, token.Expiry.Local().Format(time.RFC3339))
	return nil
}
