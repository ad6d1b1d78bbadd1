package main

import (
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/sirupsen/logrus"

	"github.com/famboard/famboard/internal/config"
	"github.com/famboard/famboard/internal/container"
	"github.com/famboard/famboard/internal/router"
)

func main() {
	c := container.New()

	handler := router.New(router.RouterConfig{
		EventHandler: c.EventContainer.Handler,
		SyncHandler:  c.SyncContainer.Handler,
	})

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambda.Start(httpadapter.New(handler).ProxyWithContext)
		return
	}

	addr := config.Getenv("LISTEN_ADDR", ":8080")
	logrus.WithField("addr", addr).Info("Starting famboard API")
	if err := http.ListenAndServe(addr, handler); err != nil {
		logrus.WithError(err).Fatal("HTTP server stopped")
	}
}
