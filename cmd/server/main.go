package main

import (
	"context"
	"flag"
	"net/http"

	"github.com/gabrielsantosba/caminho/pkg/costfunction"
	"github.com/gabrielsantosba/caminho/pkg/directory"
	caminho_http "github.com/gabrielsantosba/caminho/pkg/http"
	"github.com/gabrielsantosba/caminho/pkg/http/usecases"
	"github.com/gabrielsantosba/caminho/pkg/logger"
	"github.com/gabrielsantosba/caminho/pkg/metrics"
	"github.com/gabrielsantosba/caminho/pkg/osm"
	"github.com/gabrielsantosba/caminho/pkg/render"
	"github.com/gabrielsantosba/caminho/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	useRateLimit = flag.Bool("rate_limit", false, "enable per-client rate limiting")
	extractPath  = flag.String("extract", "", "path to a local .osm.pbf extract; empty uses the Overpass API")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	if err := util.ReadConfig(); err != nil {
		logger.Warn("no config file found, using defaults", zap.Error(err))
	}

	dir, err := directory.Load(viper.GetString("DIRECTORY_PATH"), logger)
	if err != nil {
		panic(err)
	}

	var acquirer usecases.Acquirer
	if *extractPath != "" {
		acquirer = osm.NewExtractAcquirer(*extractPath, logger)
	} else {
		acquirer = osm.NewOverpassAcquirer(viper.GetString("OVERPASS_URL"), http.DefaultClient, logger)
	}

	metric := metrics.NewMetric(costfunction.NewTimeCostFunction(), logger)
	renderer := render.NewRenderer(viper.GetString("STATIC_DIR"), logger)

	routingService := usecases.NewRoutingService(logger, dir, acquirer, metric, renderer,
		viper.GetDuration("ACQUIRE_TIMEOUT"))

	api := caminho_http.NewServer(logger)

	ctx, cleanup := newContext()
	_, err = api.Use(ctx, logger, *useRateLimit, routingService)
	if err != nil {
		panic(err)
	}

	signal := caminho_http.GracefulShutdown()

	logger.Info("Caminho route server stopped", zap.String("signal", signal.String()))
	cleanup()
}

func newContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	return ctx, func() {
		cancel()
	}
}
