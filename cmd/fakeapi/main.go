// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command fakeapi runs an in-memory development backend that implements the
// applicant-desk REST contract. Verification and password reset links are
// written to the log instead of being emailed.
package main

import (
	"fmt"
	"os"

	"github.com/MKhiriev/go-applicant-desk/internal/config"
	"github.com/MKhiriev/go-applicant-desk/internal/fakeapi"
	"github.com/MKhiriev/go-applicant-desk/internal/handler"
	"github.com/MKhiriev/go-applicant-desk/internal/logger"
	"github.com/MKhiriev/go-applicant-desk/internal/server"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("applicant-desk-fakeapi")
	cfg, err := config.GetFakeAPIConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().
		Str("address", cfg.Server.HTTPAddress).
		Dur("access_token_duration", cfg.App.AccessTokenDuration).
		Dur("refresh_token_duration", cfg.App.RefreshTokenDuration).
		Msg("received configs")

	services, err := fakeapi.NewServices(cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
