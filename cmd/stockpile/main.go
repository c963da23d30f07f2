package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/stockpilehq/stockpile/config"
	"github.com/stockpilehq/stockpile/internal/adminapi"
	"github.com/stockpilehq/stockpile/internal/app"
	"github.com/stockpilehq/stockpile/internal/webserver"
	"go.uber.org/zap"
)

var (
	h        = flag.Bool("h", false, "help usage")
	conffile = flag.String("c", "", "config yaml file")
	initdb   = flag.Bool("initdb", false, "drop and rebuild the database schema")
)

func printHelp() {
	if *h {
		fmt.Fprintln(os.Stderr, "stockpile usage:\nstockpile -h\nstockpile -c stockpile.yml\nOptions:")
		flag.PrintDefaults()
		os.Exit(0)
	}
}

func main() {
	flag.Parse()
	printHelp()

	_ = godotenv.Load()

	appConfig := config.LoadConfig(*conffile)
	appConfig.InitDirs()

	application := app.NewApplication(appConfig)
	application.Init(appConfig)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.S().Info("database initialized")
		return
	}

	server := webserver.New(appConfig)
	adminapi.Initialize(server, application)

	errchan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errchan <- err
		}
	}()

	sigchan := make(chan os.Signal, 1)
	signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errchan:
		zap.S().Fatalf("web server error: %v", err)
	case sig := <-sigchan:
		zap.S().Infof("received signal %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			zap.S().Errorf("web server shutdown error: %v", err)
		}
	}
}
