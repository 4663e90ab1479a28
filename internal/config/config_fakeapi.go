package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	DefaultServerAddress        = "localhost:8000"
	DefaultServerRequestTimeout = 30 * time.Second
	DefaultAccessTokenDuration  = 5 * time.Minute
	DefaultRefreshTokenDuration = 24 * time.Hour
)

// FakeAPIConfig is the development backend's view of the configuration.
type FakeAPIConfig struct {
	App    App
	Server Server
}

// GetFakeAPIConfig builds, defaults and validates the development backend
// configuration.
func GetFakeAPIConfig(args []string) (*FakeAPIConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error getting structured config: %w", err)
	}

	apiCfg := &FakeAPIConfig{
		App:    cfg.App,
		Server: cfg.Server,
	}
	if apiCfg.Server.HTTPAddress == "" {
		apiCfg.Server.HTTPAddress = DefaultServerAddress
	}
	if apiCfg.Server.RequestTimeout == 0 {
		apiCfg.Server.RequestTimeout = DefaultServerRequestTimeout
	}
	if apiCfg.App.AccessTokenDuration == 0 {
		apiCfg.App.AccessTokenDuration = DefaultAccessTokenDuration
	}
	if apiCfg.App.RefreshTokenDuration == 0 {
		apiCfg.App.RefreshTokenDuration = DefaultRefreshTokenDuration
	}

	var errs []error
	if err := validateStruct(apiCfg.Server); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidServerConfigs, err))
	}
	if apiCfg.App.TokenSignKey == "" {
		errs = append(errs, fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return apiCfg, nil
}
