package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/voyager/pkg/observability"
	"github.com/matzehuels/voyager/pkg/pipeline"
)

const shutdownTimeout = 5 * time.Second

// serveCommand creates the serve command that builds the site and serves it.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags buildFlags
		addr  string
	)

	cmd := &cobra.Command{
		Use:   "serve [data-dir]",
		Short: "Build the site and serve it locally",
		Long: `Build the site and serve it locally.

The site is built into the output directory exactly as 'build' does and then
served over HTTP under the configured base path. The zoom runtime needs
voyager.wasm and wasm_exec.js in the output directory; build them with

  GOOS=js GOARCH=wasm go build -o dist/voyager.wasm ./cmd/voyager-wasm
  cp "$(go env GOROOT)/lib/wasm/wasm_exec.js" dist/`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(args)
			if err != nil {
				return err
			}
			if err := flags.apply(&cfg); err != nil {
				return err
			}
			if addr != "" {
				cfg.Serve.Addr = addr
			}

			ctx := cmd.Context()
			result, err := c.runBuild(ctx, cfg, nil, flags)
			if err != nil {
				return err
			}
			for _, name := range []string{cfg.Page.Wasm, "wasm_exec.js"} {
				if _, err := os.Stat(filepath.Join(cfg.OutDir, name)); err != nil {
					printWarning("%s missing from %s; the page will not zoom", name, cfg.OutDir)
				}
			}
			return c.serve(ctx, cfg.Serve.Addr, newSiteHandler(cfg.OutDir, cfg.BasePath, result.BuildID))
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: :5173)")
	return cmd
}

// serve runs an HTTP server until ctx is cancelled.
func (c *CLI) serve(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	printNewline()
	printInfo("Serving on %s", StyleLink.Render("http://localhost"+addr))
	printDetail("Press Ctrl+C to stop")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		c.Logger.Warn("shutdown", "err", err)
	}
	c.Logger.Debug("server stopped")
	return ctx.Err()
}

// newSiteHandler serves dir under basePath. GET /healthz reports the build id.
func newSiteHandler(dir, basePath, buildID string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(httpHooks)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "build": buildID})
	})

	if basePath != "/" {
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, basePath, http.StatusFound)
		})
	}

	files := http.StripPrefix(basePath, http.FileServer(http.Dir(dir)))
	r.Get(basePath+"*", func(w http.ResponseWriter, req *http.Request) {
		if filepath.Ext(req.URL.Path) == ".wasm" {
			w.Header().Set("Content-Type", "application/wasm")
		}
		if req.URL.Path == basePath || filepath.Base(req.URL.Path) == pipeline.FileName(pipeline.FormatHTML) {
			w.Header().Set("Cache-Control", "no-cache")
		}
		files.ServeHTTP(w, req)
	})
	return r
}

// httpHooks reports every request and response to the registered HTTP hooks.
func httpHooks(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
