package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/imjasonh/replicator/apis/replicator"
	"github.com/imjasonh/replicator/apis/replicator/v1alpha1"
	"github.com/imjasonh/replicator/config"
	"github.com/imjasonh/replicator/controller"
	"github.com/imjasonh/replicator/generic"
	"github.com/imjasonh/replicator/metrics"
	"github.com/imjasonh/replicator/replication"
	"github.com/imjasonh/replicator/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func main() {
	var cfg config.Config

	cmd := &cobra.Command{
		Use:   "replicator-operator",
		Short: "Replicates Kubernetes objects as declared by Replicator resources",
		Long: `replicator-operator watches Replicator resources and copies the objects they
select (optionally renamed or moved to another namespace) to their target
location, reporting progress in each Replicator's status.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.Load(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	cfg.AddFlags(cmd.Flags())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	ctx = clog.WithLogger(ctx, clog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	restConfig, err := cfg.RESTConfig()
	if err != nil {
		return fmt.Errorf("loading kubeconfig: %w", err)
	}

	gvr := replicator.Resource(cfg.Domain)
	client, err := generic.NewClient[*v1alpha1.Replicator](gvr, restConfig)
	if err != nil {
		return err
	}
	objects, err := store.NewForConfig(restConfig)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	if cfg.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			clog.InfoContext(ctx, "serving metrics", "addr", cfg.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				clog.ErrorContext(ctx, "metrics server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	ctrl := controller.New(client, replication.New(objects, m), &controller.Options{
		Namespace: cfg.Namespace,
		Metrics:   m,
	})

	clog.InfoContext(ctx, "starting replicator operator",
		"resource", gvr.String(),
		"namespace", cfg.Namespace)
	return ctrl.Run(ctx)
}
