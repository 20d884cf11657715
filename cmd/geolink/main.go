package main

import (
	"context"
	"errors"
	"os"

	"go.uber.org/zap"

	"github.com/fsdevblog/geolink/internal/app"
	"github.com/fsdevblog/geolink/internal/bmeta"
	"github.com/fsdevblog/geolink/internal/config"
)

//nolint:gochecknoglobals
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	meta := bmeta.New(buildVersion, buildDate, buildCommit)
	meta.Fprint(os.Stdout)

	appConf := config.MustLoadConfig()

	a := app.Must(app.New(*appConf))

	a.Logger.Info("Starting server", append(meta.Fields(),
		zap.String("address", appConf.ServerAddress),
		zap.String("storage", string(appConf.DBType)),
		zap.Bool("https", appConf.EnableHTTPS),
	)...)
	if err := a.Run(); err != nil && !errors.Is(err, context.Canceled) {
		panic(err)
	}
}
