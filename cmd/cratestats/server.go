package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cratestats/cratestats/internal/duckdb"
	"github.com/cratestats/cratestats/internal/executor"
	"github.com/cratestats/cratestats/internal/httpserver"
	"golang.org/x/sync/errgroup"
)

// runServer wires the store, the query executor, and the HTTP server, then
// blocks until a termination signal arrives.
func runServer(cfg appConfig) error {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	store, err := duckdb.NewStore(cfg.DatabaseURL, cfg.QueryTimeout)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()
	store.SetMaxConnections(cfg.MaxConnections)

	pool := executor.NewPool(cfg.QueryWorkers, cfg.QueryQueueSize)
	defer pool.Close()

	// A development watcher can hand us an already-bound socket so the
	// listening port survives restarts.
	listener, err := inheritedListener()
	if err != nil {
		return fmt.Errorf("failed to take inherited listener: %w", err)
	}

	srv := httpserver.NewServer(httpserver.Config{
		Addr:      cfg.Addr,
		Listener:  listener,
		BodyLimit: cfg.BodyLimit,
		StaticDir: cfg.StaticDir,
	}, store, pool)

	if err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	defer srv.Stop()

	if listener != nil {
		log.Printf("cratestats %s serving on inherited socket %s", version, listener.Addr())
	} else {
		log.Printf("cratestats %s serving on %s", version, cfg.Addr)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nShutting down gracefully...")
		cancel()
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Printf("server: errgroup exited with error: %v", err)
	}

	signal.Stop(sigCh)
	return nil
}
