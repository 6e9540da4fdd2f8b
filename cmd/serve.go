package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/prahari/internal/dashboard"
	"github.com/xkilldash9x/prahari/internal/evidence"
	"github.com/xkilldash9x/prahari/internal/observability"
	"github.com/xkilldash9x/prahari/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard API and the live data simulator",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				return nil
			}
			addr, err := cmd.Flags().GetString("addr")
			if err != nil {
				return err
			}
			a.cfg.Server.Addr = addr
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, a)
		},
	}
	serveCmd.Flags().String("addr", "", "listen address (overrides server.addr)")
	return serveCmd
}

func runServe(cmd *cobra.Command, a *app) error {
	ctx := cmd.Context()
	cfg := a.cfg

	metrics := observability.NewMetrics("prahari")

	svc, closeLLM, err := a.analysisService(ctx, metrics)
	if err != nil {
		return err
	}
	defer closeLLM()

	sim := dashboard.NewSimulator(cfg.Dashboard, rand.New(rand.NewSource(time.Now().UnixNano())), metrics, a.logger)
	handlers := server.NewHandlers(a.logger, svc, evidence.NewMockLedger(), sim, metrics)
	srv := server.New(cfg.Server, handlers, metrics, a.logger)

	a.logger.Info("PrahariAI serving",
		zap.String("addr", cfg.Server.Addr),
		zap.String("model", cfg.LLM.Model),
		zap.Bool("metrics", cfg.Server.MetricsEnabled),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Start(gctx) })
	g.Go(func() error { return sim.Run(gctx) })

	if err := g.Wait(); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	a.logger.Info("PrahariAI stopped")
	return nil
}
