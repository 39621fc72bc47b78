package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"uno-server/internal/config"
	"uno-server/internal/mux"
	"uno-server/internal/rng"
	"uno-server/pkg/archive"
	"uno-server/pkg/db"
	"uno-server/pkg/room"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10
const shutdownTimeout = time.Second * 15

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", "", "the listen address, overrides the configuration")
var seed = flag.Int64("seed", 0, "seed the shuffles for reproducible games, 0 uses a cryptographic source")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()

	opts := room.Options{
		CardsPerPlayer: cfg.Game.CardsPerPlayer,
		MaxGames:       cfg.Game.MaxGames,
		FinishedTTL:    time.Duration(cfg.Game.FinishedSeconds) * time.Second,
	}

	if *seed != 0 {
		gen := rng.NewSeeded(*seed)
		logrus.WithField("seed", gen.Seed()).Warn("using a seeded generator")
		opts.Generator = gen
	}

	var archiveLister mux.ArchiveLister
	if cfg.Archive.Enabled {
		// fail fast
		dbh := db.Instance()
		if err := db.Migrate(dbh, cfg.MigrationsPath); err != nil {
			logrus.WithError(err).Fatal("could not run migrations")
		}

		store := archive.NewStore(dbh)
		opts.Archiver = store
		archiveLister = store
	}

	pitBoss := room.NewPitBoss(opts)

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	listenAddr := cfg.Addr
	if *addr != "" {
		listenAddr = *addr
	}

	srv := &http.Server{
		Addr:         listenAddr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, pitBoss, archiveLister))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	go func() {
		logrus.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("could not listen")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logrus.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("could not shut down cleanly")
	}

	// waits for finished games to be archived
	pitBoss.EndShift()
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
