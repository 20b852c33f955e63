package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fivetwenty-io/imgur-client/internal/constants"
	"github.com/fivetwenty-io/imgur-client/pkg/imgurclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration file.
type Config struct {
	ClientID     string `json:"client_id,omitempty"     yaml:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty" yaml:"client_secret,omitempty"`
	MashapeKey   string `json:"mashape_key,omitempty"   yaml:"mashape_key,omitempty"`

	AccessToken     string     `json:"access_token,omitempty"     yaml:"access_token,omitempty"`
	RefreshToken    string     `json:"refresh_token,omitempty"    yaml:"refresh_token,omitempty"`
	TokenExpiresAt  *time.Time `json:"token_expires_at,omitempty" yaml:"token_expires_at,omitempty"`
	AccountUsername string     `json:"account_username,omitempty" yaml:"account_username,omitempty"`

	Output            string  `json:"output,omitempty"     yaml:"output,omitempty"`
	Timeout           string  `json:"timeout,omitempty"    yaml:"timeout,omitempty"`
	RateLimit         float64 `json:"rate_limit,omitempty" yaml:"rate_limit,omitempty"`
	LogFile           string  `json:"log_file,omitempty"   yaml:"log_file,omitempty"`
	SkipSSLValidation bool    `json:"skip_ssl_validation"  yaml:"skip_ssl_validation"`
}

// configField reads and writes one settable key.
type configField struct {
	set    func(config *Config, value string) error
	unset  func(config *Config)
	secret bool
}

var configFields = map[string]configField{
	"client_id": {
		set:   func(c *Config, v string) error { c.ClientID = v; return nil },
		unset: func(c *Config) { c.ClientID = "" },
	},
	"client_secret": {
		set:    func(c *Config, v string) error { c.ClientSecret = v; return nil },
		unset:  func(c *Config) { c.ClientSecret = "" },
		secret: true,
	},
	"mashape_key": {
		set:    func(c *Config, v string) error { c.MashapeKey = v; return nil },
		unset:  func(c *Config) { c.MashapeKey = "" },
		secret: true,
	},
	"access_token": {
		set:    func(c *Config, v string) error { c.AccessToken = v; return nil },
		unset:  func(c *Config) { c.AccessToken = ""; c.TokenExpiresAt = nil },
		secret: true,
	},
	"refresh_token": {
		set:    func(c *Config, v string) error { c.RefreshToken = v; return nil },
		unset:  func(c *Config) { c.RefreshToken = "" },
		secret: true,
	},
	"output": {
		set: func(c *Config, v string) error {
			switch v {
			case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
				c.Output = v

				return nil
			default:
				return fmt.Errorf("%w: %s", constants.ErrInvalidOutputType, v)
			}
		},
		unset: func(c *Config) { c.Output = "" },
	},
	"timeout": {
		set: func(c *Config, v string) error {
			if _, err := imgurclient.ParseTimeout(v); err != nil {
				return err
			}

			c.Timeout = v

			return nil
		},
		unset: func(c *Config) { c.Timeout = "" },
	},
	"rate_limit": {
		set: func(c *Config, v string) error {
			rate, err := strconv.ParseFloat(v, 64)
			if err != nil || rate < 0 {
				return fmt.Errorf("%w: rate_limit %q", constants.ErrInvalidConfigVal, v)
			}

			c.RateLimit = rate

			return nil
		},
		unset: func(c *Config) { c.RateLimit = 0 },
	},
	"log_file": {
		set:   func(c *Config, v string) error { c.LogFile = v; return nil },
		unset: func(c *Config) { c.LogFile = "" },
	},
	"skip_ssl_validation": {
		set: func(c *Config, v string) error {
			skip, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%w: skip_ssl_validation %q", constants.ErrInvalidConfigVal, v)
			}

			c.SkipSSLValidation = skip

			return nil
		},
		unset: func(c *Config) { c.SkipSSLValidation = false },
	},
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage imgur CLI configuration including credentials and output settings",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig().masked()

			expires := ""
			if config.TokenExpiresAt != nil {
				expires = config.TokenExpiresAt.Format(time.RFC3339)
			}

			rate := ""
			if config.RateLimit > 0 {
				rate = strconv.FormatFloat(config.RateLimit, 'f', -1, 64)
			}

			return renderDetails(cmd.OutOrStdout(), config, []property{
				{"client_id", config.ClientID},
				{"client_secret", config.ClientSecret},
				{"mashape_key", config.MashapeKey},
				{"access_token", config.AccessToken},
				{"refresh_token", config.RefreshToken},
				{"token_expires_at", expires},
				{"account_username", config.AccountUsername},
				{"output", config.Output},
				{"timeout", config.Timeout},
				{"rate_limit", rate},
				{"log_file", config.LogFile},
				{"skip_ssl_validation", formatBool(config.SkipSSLValidation)},
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value such as client_id, client_secret, output or timeout",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			field, ok := configFields[key]
			if !ok {
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
			}

			config := loadConfig()
			if err := field.set(config, value); err != nil {
				return err
			}

			if err := saveConfigStruct(config); err != nil {
				return err
			}

			viper.Set(key, value)

			shown := value
			if field.secret {
				shown = constants.MaskedSecret
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, shown)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			field, ok := configFields[key]
			if !ok {
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
			}

			config := loadConfig()
			field.unset(config)

			if err := saveConfigStruct(config); err != nil {
				return err
			}

			viper.Set(key, "")
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", key)

			return nil
		},
	}
}

func newConfigClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear configuration",
		Long:  "Remove the configuration file and every stored credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile, err := configFilePath()
			if err != nil {
				return err
			}

			if err := os.Remove(configFile); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove config file: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cleared all configuration")

			return nil
		},
	}
}

// loadConfig reads the effective configuration from viper.
func loadConfig() *Config {
	config := &Config{
		ClientID:          viper.GetString("client_id"),
		ClientSecret:      viper.GetString("client_secret"),
		MashapeKey:        viper.GetString("mashape_key"),
		AccessToken:       viper.GetString("access_token"),
		RefreshToken:      viper.GetString("refresh_token"),
		AccountUsername:   viper.GetString("account_username"),
		Output:            viper.GetString("output"),
		Timeout:           viper.GetString("timeout"),
		RateLimit:         viper.GetFloat64("rate_limit"),
		LogFile:           viper.GetString("log_file"),
		SkipSSLValidation: viper.GetBool("skip_ssl_validation"),
	}

	if expires := viper.GetTime("token_expires_at"); !expires.IsZero() {
		config.TokenExpiresAt = &expires
	}

	return config
}

func (c *Config) masked() *Config {
	masked := *c
	masked.ClientSecret = maskSecret(c.ClientSecret)
	masked.MashapeKey = maskSecret(c.MashapeKey)
	masked.AccessToken = maskSecret(c.AccessToken)
	masked.RefreshToken = maskSecret(c.RefreshToken)

	return &masked
}

func configFilePath() (string, error) {
	if configFile := viper.ConfigFileUsed(); configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".imgur", "config.yml"), nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(configFile, data, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
