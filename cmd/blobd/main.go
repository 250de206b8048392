package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/MKhiriev/go-sealed-drive/internal/config"
	handler "github.com/MKhiriev/go-sealed-drive/internal/handler/http"
	"github.com/MKhiriev/go-sealed-drive/internal/logger"
	"github.com/MKhiriev/go-sealed-drive/internal/server"
	"github.com/MKhiriev/go-sealed-drive/internal/service"
	"github.com/MKhiriev/go-sealed-drive/internal/store"
	"github.com/MKhiriev/go-sealed-drive/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(build)

	log := logger.NewLogger("blobd")

	fs := pflag.NewFlagSet("blobd", pflag.ExitOnError)
	config.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.GetServerConfig(fs)
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	log.Debug().Str("backend", cfg.Storage.Backend).Str("address", cfg.Server.HTTPAddress).Msg("received configs")

	backend, err := store.NewBlobStore(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating blob store")
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Err(err).Msg("error closing blob store")
		}
	}()

	blobs := service.NewBlobServer(backend, cfg.App, log)
	h := handler.NewHandler(blobs, build.WithVersion(cfg.App.Version), log)

	srv, err := server.NewServer(h.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(); err != nil {
		log.Err(err).Msg("server stopped with error")
	}
}
