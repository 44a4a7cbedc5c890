package main

import (
	"context"
	"log"
	"os"

	"github.com/labstack/echo/v4"
	"go.elastic.co/apm"
	"go.elastic.co/apm/module/apmechov4"
	"go.elastic.co/apm/module/apmzap"
	"go.uber.org/zap"
)

var (
	zapLogger *zap.Logger
	appEnv    string = os.Getenv("APP_ENV")
	appName   string = os.Getenv("APP_NAME")
	apmActive string = os.Getenv("ELASTIC_APM_ACTIVE")
)

func init() {

	// Set logging configuration
	var err error
	zapLogger, err = zap.NewProduction(zap.WrapCore((&apmzap.Core{}).WrapCore))
	if err != nil {
		log.Fatalf("Can't initialize zap logger: %v", err)
	}

	// Flushes buffer if it exists
	defer zapLogger.Sync()
}

func initAPM(e *echo.Echo) {
	// Close default Elastic APM tracer
	zapLogger.Info("Disable default APM logger")
	apm.DefaultTracer.Close()

	// Conditionally enable APM logger based on "ELASTIC_APM_ACTIVE" environment variable.
	if apmActive == "true" {
		// Create new tracer with basic options
		// Use environment variables for the remaining options
		zapLogger.Info("Creating new APM tracer",
			zap.String("ServiceName", appName),
			zap.String("ServiceEnvironment", appEnv))
		tracer, err := apm.NewTracerOptions(apm.TracerOptions{
			ServiceName:        appName,
			ServiceEnvironment: appEnv,
		})
		if err != nil {
			zapLogger.Fatal(err.Error())
		}

		// Adds elastic APM middleware to web server to capture requests
		// and send them to elastic
		zapLogger.Info("Enabling APM logger")
		e.Use(apmechov4.Middleware(apmechov4.WithTracer(tracer)))
	}
}

func logger(c context.Context, err error) {
	zapLogger.Error(err.Error())
	if apmActive == "true" {
		apm.CaptureError(c, err).Send()
	}
}
