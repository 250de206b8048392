package main

import (
	"context"
	"os"

	"github.com/MKhiriev/go-sealed-drive/internal/client"
	"github.com/MKhiriev/go-sealed-drive/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	app := client.NewApp(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
	if err := app.Execute(context.Background(), os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
