package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags from args.
//
// Flags:
//
//	-a backend base URL (e.g. http://localhost:8000)
//	-d session storage DSN (SQLite path, redis:// URL or :memory:)
//	-c/-config json file path with configs
//	-secret-key secret used to seal persisted session values
//	-log-file client log file path
//	-request-timeout outbound request timeout (e.g., "15s")
//	-logout-timeout best-effort logout timeout (e.g., "3s")
//	-profile-refresh-interval profile refresh period (e.g., "5m")
//	-server-address development backend listen address host:port
//	-token-sign-key development backend token signing key
//	-access-token-duration development backend access token lifetime
//	-refresh-token-duration development backend refresh token lifetime
func ParseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var adapterAddress string
	var sessionDSN string
	var jsonConfigPath string
	var secretKey string
	var logFile string
	var tokenSignKey string
	var requestTimeout time.Duration
	var logoutTimeout time.Duration
	var profileRefreshInterval time.Duration
	var accessTokenDuration time.Duration
	var refreshTokenDuration time.Duration

	fs := flag.NewFlagSet("applicant-desk", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&adapterAddress, "a", "", "Backend base URL")
	fs.StringVar(&sessionDSN, "d", "", "Session storage DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&secretKey, "secret-key", "", "Secret used to seal persisted session values")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s)")
	fs.DurationVar(&logoutTimeout, "logout-timeout", 0, "Logout timeout (e.g., 3s)")
	fs.DurationVar(&profileRefreshInterval, "profile-refresh-interval", 0, "Profile refresh interval (e.g., 5m)")
	fs.Var(&serverAddress, "server-address", "Development backend address host:port")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.DurationVar(&accessTokenDuration, "access-token-duration", 0, "Access token lifetime (e.g., 5m)")
	fs.DurationVar(&refreshTokenDuration, "refresh-token-duration", 0, "Refresh token lifetime (e.g., 24h)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			SecretKey:            secretKey,
			LogFile:              logFile,
			TokenSignKey:         tokenSignKey,
			AccessTokenDuration:  accessTokenDuration,
			RefreshTokenDuration: refreshTokenDuration,
		},
		Adapter: Adapter{
			HTTPAddress:    adapterAddress,
			RequestTimeout: requestTimeout,
			LogoutTimeout:  logoutTimeout,
		},
		Storage: Storage{
			Session: SessionStorage{
				DSN: sessionDSN,
			},
		},
		Workers: Workers{
			ProfileRefreshInterval: profileRefreshInterval,
		},
		Server: Server{
			HTTPAddress: serverAddress.String(),
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost"
// or empty, and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
