package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mmynk/scavhunt/internal/auth"
	"github.com/mmynk/scavhunt/internal/facematch"
	"github.com/mmynk/scavhunt/internal/media"
	"github.com/mmynk/scavhunt/internal/qr"
	"github.com/mmynk/scavhunt/internal/realtime"
	"github.com/mmynk/scavhunt/internal/server"
	"github.com/mmynk/scavhunt/internal/service"
	"github.com/mmynk/scavhunt/internal/storage/sqlite"
	"github.com/mmynk/scavhunt/pkg/logging"
)

const releaseVersion = "0.1.0"

func main() {
	cfg := &Config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCmd(cfg).ExecuteContext(ctx); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *Config) error {
	if cfg.verbose {
		logging.SetupWithLevel(slog.LevelDebug)
	} else {
		logging.Setup()
	}

	store, err := sqlite.New(cfg.dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.dbPath)

	mediaStore, mediaRoot, err := newMediaStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize media store: %w", err)
	}

	comparer, err := facematch.NewRekognition(cfg.awsRegion)
	if err != nil {
		return fmt.Errorf("failed to initialize face comparison: %w", err)
	}
	gate := facematch.NewGate(comparer, cfg.faceThreshold)

	verifier := qr.NewVerifier(cfg.qrPayload)
	sessions := auth.NewSessionManager(cfg.sessionSecret, 0)

	hub := realtime.NewHub()
	go hub.Run(ctx)

	srv := server.New(
		service.NewUserService(store, mediaStore, sessions),
		service.NewAdminService(store, mediaStore, hub),
		service.NewGameService(store, mediaStore, gate, verifier, hub),
		sessions,
		verifier,
		hub,
		mediaRoot,
		releaseVersion,
	)

	httpSrv := &http.Server{
		Addr:              net.JoinHostPort(cfg.bind, strconv.Itoa(cfg.port)),
		Handler:           srv.Router(),
		IdleTimeout:       10 * time.Minute,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", httpSrv.Addr, "version", releaseVersion)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// newMediaStore picks S3 when a bucket is configured and the local filesystem
// otherwise. The returned root is empty for S3 since its objects are served
// straight from the bucket.
func newMediaStore(cfg *Config) (media.Store, string, error) {
	if cfg.s3Bucket != "" {
		s3Store, err := media.NewS3Store(cfg.s3Bucket, cfg.awsRegion)
		if err != nil {
			return nil, "", err
		}
		slog.Info("Using S3 media store", "bucket", cfg.s3Bucket, "region", cfg.awsRegion)
		return s3Store, "", nil
	}

	local, err := media.NewLocalStore(cfg.mediaDir, cfg.mediaBaseURL)
	if err != nil {
		return nil, "", err
	}
	slog.Info("Using local media store", "dir", cfg.mediaDir)
	return local, local.Root(), nil
}
