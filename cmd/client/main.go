// Command client is the terminal dashboard for applicant-desk staff.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/common-nighthawk/go-figure"

	"github.com/MKhiriev/go-applicant-desk/internal/adapter"
	"github.com/MKhiriev/go-applicant-desk/internal/client"
	"github.com/MKhiriev/go-applicant-desk/internal/config"
	"github.com/MKhiriev/go-applicant-desk/internal/crypto"
	"github.com/MKhiriev/go-applicant-desk/internal/logger"
	"github.com/MKhiriev/go-applicant-desk/internal/service"
	"github.com/MKhiriev/go-applicant-desk/internal/session"
	"github.com/MKhiriev/go-applicant-desk/internal/store"
	"github.com/MKhiriev/go-applicant-desk/internal/tui"
	"github.com/MKhiriev/go-applicant-desk/models"
)

const role = "applicant-desk-client"

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	displayAppname("Applicant Desk")
	printBuildInfo(buildInfo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		logger.NewClientLogger(role, "").Fatal().Err(err).Msg("error getting configs")
	}
	log := logger.NewClientLogger(role, cfg.App.LogFile)

	sealer, err := crypto.NewSealer(cfg.App.SecretKey)
	if err != nil {
		log.Fatal().Err(err).Msg("create sealer")
	}

	storage, err := store.NewSessionStorage(ctx, cfg.Storage.Session, sealer, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create session storage")
	}
	defer storage.Close()

	sess := session.NewManager(storage, log)

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, sess, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	services := service.NewClientServices(serverAdapter, sess, log)

	ui, err := tui.New(services, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(services, sess, ui, cfg.Workers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("client run error")
		stop()
		os.Exit(1)
	}
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

func printBuildInfo(info models.AppBuildInfo) {
	for _, e := range info.Entries() {
		fmt.Printf("Build %s: %s\n", strings.ToLower(e.Label), e.Value)
	}
}
