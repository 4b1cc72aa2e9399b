// Command qasmplay-server exposes the compiler/executor pipeline over
// HTTP: POST a QASM source string to /api/run and get back a measurement
// histogram.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kegliz/qasmplay/internal/app"
	"github.com/kegliz/qasmplay/internal/config"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("qasmplay-server: loading config: " + err.Error() + "\n")
		os.Exit(1)
	}

	srv, err := app.NewServer(app.ServerOptions{
		C:       cfg,
		Version: version,
	})
	if err != nil {
		os.Stderr.WriteString("qasmplay-server: creating server: " + err.Error() + "\n")
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(cfg.Port, false)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			os.Stderr.WriteString("qasmplay-server: " + err.Error() + "\n")
			os.Exit(1)
		}
	case <-sigCh:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			os.Stderr.WriteString("qasmplay-server: shutdown: " + err.Error() + "\n")
			os.Exit(1)
		}
	}
}
