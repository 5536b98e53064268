package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"gokwh/storage"
	"gokwh/web"

	"github.com/spf13/cobra"
)

var (
	servePort   int
	serveDBPath string
	serveNoOpen bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start local read-only viewer over stored meter profiles",
	Long: `Start a local HTTP server exposing the meter registry and stored profiles
as JSON, with day and month navigation per meter.

The server binds to localhost only and never modifies the registry.`,
	Example: `
  # Start local server on default port
  gokwh serve

  # Start with explicit db and custom port
  gokwh serve --port 9090 --db ./gokwh.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.OpenSQLite(serveDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		addr := fmt.Sprintf("127.0.0.1:%d", servePort)
		server := &http.Server{
			Addr:    addr,
			Handler: web.NewServer(store),
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.ListenAndServe()
		}()

		listenURL := fmt.Sprintf("http://localhost:%d", servePort)
		fmt.Printf("Listening on %s\n", listenURL)
		if !serveNoOpen {
			if openErr := openURLInBrowser(listenURL + "/api/meters"); openErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to open browser: %v\n", openErr)
			}
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-sigCh:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown server: %w", err)
			}
			err := <-errCh
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 8080, "HTTP port for the local web server")
	serveCmd.Flags().StringVar(&serveDBPath, "db", "./gokwh.db", "Path to local SQLite registry")
	serveCmd.Flags().BoolVar(&serveNoOpen, "no-open", false, "Do not open browser automatically")
}

func openURLInBrowser(rawURL string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		cmd = exec.Command("xdg-open", rawURL)
	}
	return cmd.Start()
}
