package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/cache"
	apperrors "github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/errors"
	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/pipeline"
	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/rigdoc"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string
	noCache bool
}

// serveCommand creates the serve command: a local HTTP preview server that
// renders posed frames on demand. Documents are re-read per request, so
// edits show up on refresh.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8423"}

	cmd := &cobra.Command{
		Use:   "serve <rig.toml> <scene.json>",
		Short: "Serve a live frame preview over HTTP",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], args[1], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable artifact caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, rigPath, scenePath string, opts *serveOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/frames/{frame}.svg", func(w http.ResponseWriter, req *http.Request) {
		frame, err := strconv.Atoi(chi.URLParam(req, "frame"))
		if err != nil || frame < 0 {
			http.Error(w, "bad frame index", http.StatusBadRequest)
			return
		}

		result, err := runner.Execute(req.Context(), pipeline.Options{
			RigPath:     rigPath,
			ScenePath:   scenePath,
			Frame:       frame,
			Formats:     []string{pipeline.FormatSVG},
			ShowBones:   req.URL.Query().Get("bones") == "1",
			ShowAnchors: req.URL.Query().Get("anchors") == "1",
			Refresh:     req.URL.Query().Get("refresh") == "1",
			Logger:      c.Logger,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(result.Artifacts[pipeline.FormatSVG])
	})

	r.Get("/graph.svg", func(w http.ResponseWriter, req *http.Request) {
		data, err := os.ReadFile(rigPath)
		if err != nil {
			writeError(w, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "open %s", rigPath))
			return
		}
		store, err := rigdoc.ImportRig(rigPath)
		if err != nil {
			writeError(w, err)
			return
		}
		s, err := selectSkeleton(store, req.URL.Query().Get("skeleton"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		svg, err := runner.RenderGraph(req.Context(), cache.Hash(data), s,
			req.URL.Query().Get("detailed") == "1",
			req.URL.Query().Get("refresh") == "1")
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(svg)
	})

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("preview server listening", "addr", opts.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	}
}

// writeError maps application error codes to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeFileNotFound, apperrors.ErrCodeNotFound, apperrors.ErrCodeSkeletonNotFound:
		status = http.StatusNotFound
	case apperrors.ErrCodeInvalidDocument, apperrors.ErrCodeInvalidFormat, apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidFrame:
		status = http.StatusUnprocessableEntity
	case apperrors.ErrCodeUnsupported:
		status = http.StatusNotImplemented
	}
	http.Error(w, apperrors.UserMessage(err), status)
}
