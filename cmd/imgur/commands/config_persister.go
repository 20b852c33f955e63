package commands

import (
	"sync"

	"github.com/fivetwenty-io/imgur-client/pkg/imgur"
	"github.com/spf13/viper"
)

// ConfigPersister stores OAuth tokens in the config file.
type ConfigPersister struct {
	mutex sync.Mutex
}

// NewConfigPersister creates a new config persister.
func NewConfigPersister() *ConfigPersister {
	return &ConfigPersister{}
}

// SaveToken records token as the active credentials. An empty refresh
// token keeps the stored one.
func (p *ConfigPersister) SaveToken(token *imgur.Token) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config := loadConfig()
	config.AccessToken = token.AccessToken

	if token.RefreshToken != "" {
		config.RefreshToken = token.RefreshToken
	}

	if token.AccountUsername != "" {
		config.AccountUsername = token.AccountUsername
	}

	config.TokenExpiresAt = nil
	if !token.ExpiresAt.IsZero() {
		expires := token.ExpiresAt
		config.TokenExpiresAt = &expires
	}

	if err := saveConfigStruct(config); err != nil {
		return err
	}

	viper.Set("access_token", config.AccessToken)
	viper.Set("refresh_token", config.RefreshToken)
	viper.Set("account_username", config.AccountUsername)
	viper.Set("token_expires_at", config.TokenExpiresAt)

	return nil
}

// ClearTokens forgets the stored user credentials.
func (p *ConfigPersister) ClearTokens() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config := loadConfig()
	config.AccessToken = ""
	config.RefreshToken = ""
	config.AccountUsername = ""
	config.TokenExpiresAt = nil

	if err := saveConfigStruct(config); err != nil {
		return err
	}

	for _, key := range []string{"access_token", "refresh_token", "account_username", "token_expires_at"} {
		viper.Set(key, "")
	}

	return nil
}
