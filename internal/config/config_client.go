package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Defaults applied to the client configuration when no source sets a value.
const (
	DefaultAdapterAddress         = "http://localhost:8000"
	DefaultRequestTimeout         = 15 * time.Second
	DefaultLogoutTimeout          = 3 * time.Second
	DefaultSessionDSN             = "applicant-desk.db"
	DefaultRedisPrefix            = "applicant-desk:"
	DefaultProfileRefreshInterval = 5 * time.Minute
)

// ClientConfig is the terminal client's view of the merged configuration.
type ClientConfig struct {
	App     App
	Adapter Adapter
	Storage Storage
	Workers Workers
}

// GetClientConfig builds, defaults and validates the client configuration.
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error getting structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App:     cfg.App,
		Adapter: cfg.Adapter,
		Storage: cfg.Storage,
		Workers: cfg.Workers,
	}
	clientCfg.applyDefaults()

	if err := clientCfg.validate(); err != nil {
		return nil, err
	}

	return clientCfg, nil
}

func (c *ClientConfig) applyDefaults() {
	if c.Adapter.HTTPAddress == "" {
		c.Adapter.HTTPAddress = DefaultAdapterAddress
	}
	if c.Adapter.RequestTimeout == 0 {
		c.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if c.Adapter.LogoutTimeout == 0 {
		c.Adapter.LogoutTimeout = DefaultLogoutTimeout
	}
	if c.Storage.Session.DSN == "" {
		c.Storage.Session.DSN = DefaultSessionDSN
	}
	if c.Storage.Session.RedisPrefix == "" {
		c.Storage.Session.RedisPrefix = DefaultRedisPrefix
	}
	if c.Workers.ProfileRefreshInterval == 0 {
		c.Workers.ProfileRefreshInterval = DefaultProfileRefreshInterval
	}

	c.Adapter.HTTPAddress = normalizeBaseURL(c.Adapter.HTTPAddress)
}

func (c *ClientConfig) validate() error {
	var errs []error

	if err := validateStruct(c.Adapter); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidAdapterConfigs, err))
	} else if u, err := url.Parse(c.Adapter.HTTPAddress); err != nil || u.Host == "" {
		errs = append(errs, fmt.Errorf("%w: malformed address %q", ErrInvalidAdapterConfigs, c.Adapter.HTTPAddress))
	}
	if err := validateStruct(c.Storage.Session); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidStorageConfigs, err))
	}
	if err := validateStruct(c.Workers); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidWorkerConfigs, err))
	}

	return errors.Join(errs...)
}

// normalizeBaseURL adds an http scheme when missing and strips trailing slashes.
func normalizeBaseURL(address string) string {
	address = strings.TrimSpace(address)
	if !strings.Contains(address, "://") {
		address = "http://" + address
	}
	return strings.TrimRight(address, "/")
}
