package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "flipboard/internal/api/http"
	"flipboard/internal/api/ws"
	"flipboard/internal/config"
	"flipboard/internal/events"
	"flipboard/internal/room"
	"flipboard/internal/store"

	"github.com/rs/cors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	results := events.New(cfg)
	defer func() {
		if err := results.Close(); err != nil {
			log.Printf("events: close: %v", err)
		}
	}()

	mem := store.NewMemoryStore()
	rm := room.NewManager(mem, cfg, nil, room.WithResults(results))
	hub := ws.NewHub(rm, cfg)
	rm.SetBroadcaster(hub)
	r := httpapi.NewRouter(rm, hub, cfg)

	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}).Handler(r)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go reapIdleRooms(ctx, rm, cfg.IdleSweepInterval)

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func reapIdleRooms(ctx context.Context, rm *room.Manager, every time.Duration) {
	if every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := rm.ReapIdle(now); n > 0 {
				log.Printf("reaped %d idle rooms", n)
			}
		}
	}
}
