// Command fakeapi runs an in-memory stand-in for the movie catalog backend,
// for local development of the moviecat client.
package main

import (
	"os"

	"github.com/ljxowen/movie-recommender/internal/logging"
	"github.com/ljxowen/movie-recommender/internal/server/app"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	logger := logging.New(logging.Config{Level: "trace", Format: os.Getenv("FAKEAPI_LOG_FORMAT"), Output: os.Stdout})
	application, err := app.New(version, buildDate, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init server")
	}
	if err := application.Run(); err != nil {
		logger.Fatal().Err(err).Msg("server stopped with error")
	}
}
