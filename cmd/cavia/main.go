package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/pixil98/go-cavia/cmd/cavia/command"
	"github.com/pixil98/go-service"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel()})))

	app, err := service.NewApp(&command.Config{}, command.BuildWorkers)
	if err != nil {
		slog.Error("creating application", "error", err)
		os.Exit(1)
	}

	err = app.Run(context.Background())
	if err != nil {
		slog.Error("running application", "error", err)
		os.Exit(1)
	}

	slog.Info("exiting")
}

// logLevel reads CAVIA_LOG_LEVEL (debug, info, warn, error).
func logLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(os.Getenv("CAVIA_LOG_LEVEL"))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
