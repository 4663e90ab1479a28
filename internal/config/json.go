package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for decoding JSON files.
// Durations accept both Go duration strings ("15s") and nanosecond numbers.
type StructuredJSONConfig struct {
	App struct {
		SecretKey            string   `json:"secret_key"`
		LogFile              string   `json:"log_file"`
		TokenSignKey         string   `json:"token_sign_key"`
		AccessTokenDuration  Duration `json:"access_token_duration"`
		RefreshTokenDuration Duration `json:"refresh_token_duration"`
	} `json:"app,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		LogoutTimeout  Duration `json:"logout_timeout"`
	} `json:"adapter,omitempty"`

	Storage struct {
		Session struct {
			DSN         string `json:"dsn"`
			RedisPrefix string `json:"redis_prefix"`
		} `json:"session,omitempty"`
	} `json:"storage,omitempty"`

	Workers struct {
		ProfileRefreshInterval Duration `json:"profile_refresh_interval"`
	} `json:"workers,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			SecretKey:            jsonCfg.App.SecretKey,
			LogFile:              jsonCfg.App.LogFile,
			TokenSignKey:         jsonCfg.App.TokenSignKey,
			AccessTokenDuration:  time.Duration(jsonCfg.App.AccessTokenDuration),
			RefreshTokenDuration: time.Duration(jsonCfg.App.RefreshTokenDuration),
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			LogoutTimeout:  time.Duration(jsonCfg.Adapter.LogoutTimeout),
		},
		Storage: Storage{
			Session: SessionStorage{
				DSN:         jsonCfg.Storage.Session.DSN,
				RedisPrefix: jsonCfg.Storage.Session.RedisPrefix,
			},
		},
		Workers: Workers{
			ProfileRefreshInterval: time.Duration(jsonCfg.Workers.ProfileRefreshInterval),
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
