package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"static-server/internal/handler"
	"static-server/internal/metrics"
	"static-server/internal/netinfo"
	"static-server/internal/repository"
	"static-server/internal/server"
	"static-server/internal/service"
	"syscall"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Installed before anything else so an early Ctrl+C still exits cleanly.
	stop := notifyShutdown(cancel, os.Stdout, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		stop()
		cancel()
		log.Fatal(err)
	}
}

// notifyShutdown cancels on the first of sigs and returns a func that
// stops listening for them.
func notifyShutdown(cancel context.CancelFunc, w io.Writer, sigs ...os.Signal) func() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, sigs...)
	done := make(chan struct{})

	go func() {
		select {
		case <-sigChan:
			printShutdown(w)
			cancel()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigChan)
		select {
		case <-done:
		default:
			close(done)
		}
	}
}

// run serves until ctx is cancelled; it returns nil on a clean shutdown
func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg := server.DefaultConfig()
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	fs.IntVar(&cfg.Port, "port", cfg.Port, "HTTP server port")
	fs.StringVar(&cfg.Root, "dir", cfg.Root, "directory to serve")
	fs.StringVar(&cfg.Entry, "entry", cfg.Entry, "entry page printed in the access URLs")
	fs.StringVar(&cfg.AccessDB, "access-db", cfg.AccessDB, "path to SQLite access log (disabled when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize repository
	var repo repository.AccessLogRepository
	if cfg.AccessDB != "" {
		sqliteRepo, err := repository.NewSQLiteRepository(cfg.AccessDB)
		if err != nil {
			return fmt.Errorf("failed to initialize repository: %w", err)
		}
		defer sqliteRepo.Close()
		repo = sqliteRepo
	}

	metricsInstance := metrics.NewMetrics()
	accessService := service.NewAccessLogService(repo, metricsInstance)

	srv := server.New(cfg, handler.NewStaticHandler(cfg.Root, accessService))
	if err := srv.Listen(); err != nil {
		return err
	}

	if !cfg.EntryExists() {
		log.Printf("warning: %s not found in %s", cfg.Entry, cfg.Root)
	}
	printBanner(stdout, cfg.Root, srv.Port(), cfg.Entry, netinfo.OutboundIP())

	if err := srv.Serve(ctx); err != nil {
		return err
	}

	logSummary(accessService)
	log.Println("server stopped")
	return nil
}

// logSummary reports what was served; persisted figures appear only with an access log
func logSummary(svc *service.AccessLogService) {
	ctx := context.Background()

	log.Printf("served %d requests %v", svc.TotalRequests(), svc.Snapshot())

	notFound, err := svc.CountByStatus(ctx, http.StatusNotFound)
	if err != nil {
		log.Printf("error counting access log: %v", err)
		return
	}
	recent, err := svc.Recent(ctx, 5)
	if err != nil {
		log.Printf("error reading access log: %v", err)
		return
	}
	if recent == nil {
		return
	}

	log.Printf("access log: %d not found", notFound)
	for _, rec := range recent {
		log.Printf("  %s %s %d", rec.Method, rec.Path, rec.Status)
	}
}
