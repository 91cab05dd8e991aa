package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/playerboard/internal/feedstub"
	"github.com/okian/playerboard/pkg/logger"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func main() {
	var (
		addr     = flag.String("addr", feedstub.DefaultAddr, "Listen address")
		players  = flag.Int("players", feedstub.DefaultPlayers, "Number of generated players")
		seedFile = flag.String("seed-file", "", "JSON feed to serve verbatim instead of generated players")
		verbose  = flag.Bool("verbose", false, "Log every request")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}
	log := logger.Named("feed-stub")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stub, err := feedstub.NewServer(feedstub.Config{
		Addr:     *addr,
		Players:  *players,
		SeedFile: *seedFile,
	}, feedstub.WithLogger(log))
	if err != nil {
		log.Error(ctx, "failed to build feed", logger.Error(err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           stub.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "serving player feed",
			logger.String("addr", *addr),
			logger.Int("players", stub.Count()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "feed server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "feed server shutdown failed", logger.Error(err))
	}
}
