package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"inanisgarage/internal/calendar"
	"inanisgarage/internal/config"
	"inanisgarage/internal/files"
	"inanisgarage/internal/httpserver"
	"inanisgarage/internal/logger"
	"inanisgarage/internal/mirror"
	"inanisgarage/internal/store"
)

func main() {
	_ = godotenv.Load()
	lg := logger.New()
	defer lg.Sync()
	cfg := config.Load()

	fs, err := files.New(cfg.UploadDir)
	if err != nil {
		lg.Fatalw("upload dir init failed", "dir", cfg.UploadDir, "error", err)
	}

	st, err := store.Open(cfg.SnapshotPath(), lg)
	if err != nil {
		lg.Fatalw("store open failed", "path", cfg.SnapshotPath(), "error", err)
	}

	ctx := context.Background()
	mr, err := mirror.New(ctx, cfg.GCSBucket, cfg.GCSPrefix, cfg.CredentialsFile, lg)
	if err != nil {
		// Mirroring is best-effort from the very start: run without it.
		lg.Warnw("cloud mirror disabled", "error", err)
		mr = nil
	}
	mr.Start()
	defer mr.Stop()
	if mr != nil {
		st.SetMirror(mr.Enqueue)
	}

	cal, err := calendar.New(ctx, cfg.CalendarID, cfg.CredentialsFile, lg)
	if err != nil {
		lg.Warnw("calendar notifier disabled", "error", err)
		cal = nil
	}

	router := httpserver.NewRouter(st, fs, mr, cal, lg)
	lg.Infow("listening", "port", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, router); err != nil {
		log.Fatal(err)
	}
}
