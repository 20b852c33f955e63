package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fivetwenty-io/imgur-client/internal/auth"
	"github.com/fivetwenty-io/imgur-client/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewAuthCommand creates the auth command group
func NewAuthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize the CLI against an imgur account",
		Long:  "Obtain, refresh and inspect OAuth tokens for an imgur account",
	}

	cmd.AddCommand(newAuthURLCommand())
	cmd.AddCommand(newAuthPinCommand())
	cmd.AddCommand(newAuthCodeCommand())
	cmd.AddCommand(newAuthRefreshCommand())
	cmd.AddCommand(newAuthStatusCommand())
	cmd.AddCommand(newAuthLogoutCommand())

	return cmd
}

func newAuthURLCommand() *cobra.Command {
	var (
		responseType string
		state        string
	)

	cmd := &cobra.Command{
		Use:   "url",
		Short: "Print the authorization URL",
		Long:  "Print the page where an account owner authorizes this application",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			authURL, err := client.AuthorizationURL(responseType, state)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), authURL)

			return nil
		},
	}

	cmd.Flags().StringVar(&responseType, "response", "pin", "response type: pin or code")
	cmd.Flags().StringVar(&state, "state", "", "opaque value returned with the authorization")

	return cmd
}

func newAuthPinCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pin [PIN]",
		Short: "Exchange a pin for tokens",
		Long:  "Exchange the pin shown after authorization for access and refresh tokens. The pin is prompted for when omitted.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var pin string
			if len(args) > 0 {
				pin = args[0]
			} else {
				_, _ = fmt.Fprint(cmd.ErrOrStderr(), "PIN: ")

				bytePin, err := term.ReadPassword(int(os.Stdin.Fd()))
				if err != nil {
					return fmt.Errorf("failed to read pin: %w", err)
				}

				_, _ = fmt.Fprintln(cmd.ErrOrStderr())
				pin = string(bytePin)
			}

			pin = strings.TrimSpace(pin)
			if pin == "" {
				return constants.ErrPinRequired
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			token, err := client.ExchangePin(cmd.Context(), pin)
			if err != nil {
				return fmt.Errorf("failed to exchange pin: %w", err)
			}

			if err := NewConfigPersister().SaveToken(token); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully authorized as %s\n", token.AccountUsername)

			return nil
		},
	}
}

func newAuthCodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "code CODE|REDIRECT_URL",
		Short: "Exchange an authorization code for tokens",
		Long:  "Exchange the code returned to the redirect URL for access and refresh tokens. The full redirect URL is accepted too.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]
			if strings.Contains(code, "://") {
				parsed, err := auth.ParseRedirect(code)
				if err != nil {
					return err
				}

				code = parsed
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			token, err := client.ExchangeCode(cmd.Context(), code)
			if err != nil {
				return fmt.Errorf("failed to exchange code: %w", err)
			}

			if err := NewConfigPersister().SaveToken(token); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully authorized as %s\n", token.AccountUsername)

			return nil
		},
	}
}

func newAuthRefreshCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Refresh the access token",
		Long:  "Obtain a new access token using the stored refresh token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if viper.GetString("refresh_token") == "" {
				return constants.ErrNoRefreshToken
			}

			if viper.GetString("client_secret") == "" {
				return constants.ErrNoClientSecret
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			token, err := client.RefreshAccessToken(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to refresh token: %w", err)
			}

			if err := NewConfigPersister().SaveToken(token); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Access token refreshed")

			return nil
		},
	}
}

// AuthStatus summarizes the stored credentials.
type AuthStatus struct {
	ClientID      string `json:"client_id"            yaml:"client_id"`
	Authenticated bool   `json:"authenticated"        yaml:"authenticated"`
	Expired       bool   `json:"expired"              yaml:"expired"`
	Account       string `json:"account,omitempty"    yaml:"account,omitempty"`
	ExpiresAt     string `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
	CanRefresh    bool   `json:"can_refresh"          yaml:"can_refresh"`
}

func newAuthStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show authorization status",
		Long:  "Show which account the CLI acts as and when its token expires",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			status := AuthStatus{
				ClientID:      config.ClientID,
				Authenticated: config.AccessToken != "",
				Account:       config.AccountUsername,
				CanRefresh:    config.RefreshToken != "" && config.ClientSecret != "",
			}

			token := &auth.Token{AccessToken: config.AccessToken}
			if config.TokenExpiresAt != nil {
				token.ExpiresAt = *config.TokenExpiresAt
				status.ExpiresAt = config.TokenExpiresAt.Format(time.RFC3339)
			}

			status.Expired = status.Authenticated && !token.Valid()

			return renderDetails(cmd.OutOrStdout(), status, []property{
				{"client_id", status.ClientID},
				{"authenticated", formatBool(status.Authenticated)},
				{"expired", formatBool(status.Expired)},
				{"account", status.Account},
				{"expires_at", status.ExpiresAt},
				{"can_refresh", formatBool(status.CanRefresh)},
			})
		},
	}
}

func newAuthLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored tokens",
		Long:  "Remove the access and refresh tokens from the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := NewConfigPersister().ClearTokens(); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Successfully logged out")

			return nil
		},
	}
}
