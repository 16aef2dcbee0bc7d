package sheetgen

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ryanmford/apexspeedrun/pkg/logger"
)

const (
	filePermission      = 0600
	directoryPermission = 0750
	serveReadTimeout    = 5 * time.Second
	serveWriteTimeout   = 10 * time.Second
)

// Serve exposes the dataset over HTTP at /sheets/{name}.csv and blocks
// until the context is cancelled. Point the dashboard's sheet URLs at this
// server to run the full pipeline locally.
func Serve(ctx context.Context, cfg *Config, ds *Dataset) error {
	mux := http.NewServeMux()
	for name, text := range ds.Sheets() {
		body := []byte(text)
		mux.HandleFunc("/sheets/"+name+".csv", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			_, _ = w.Write(body)
		})
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  serveReadTimeout,
		WriteTimeout: serveWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Get().Info(ctx, "serving sheets", logger.String("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), serveWriteTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// WriteFiles writes each sheet as a CSV file under dir.
func WriteFiles(ctx context.Context, dir string, ds *Dataset) error {
	if err := os.MkdirAll(dir, directoryPermission); err != nil {
		return err
	}
	for name, text := range ds.Sheets() {
		path := filepath.Join(dir, name+".csv")
		if err := os.WriteFile(path, []byte(text), filePermission); err != nil {
			return err
		}
		logger.Get().Info(ctx, "sheet written", logger.String("path", path))
	}
	return nil
}
