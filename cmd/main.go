package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agentmesh/agentmesh/internal/config"
	"github.com/agentmesh/agentmesh/internal/node"
)

var cfgFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "agentmesh",
		Short: "agentmesh — registry-gated P2P messaging fabric for agents",
	}

	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start an agentmesh node",
		RunE:  runStart,
	}
	startCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "Path to config file (default: configs/config.yaml)")
	rootCmd.AddCommand(startCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runStart(cmd *cobra.Command, args []string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("logger init: %w", err)
	}
	defer logger.Sync()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	ctrl := node.NewController(cfg, logger)
	return ctrl.Run(context.Background())
}
