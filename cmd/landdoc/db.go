package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/landdoc-verifier/internal/common"
	"github.com/joseph-ayodele/landdoc-verifier/internal/repository"
	"github.com/joseph-ayodele/landdoc-verifier/internal/server"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database maintenance",
}

var dbHealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Connect to DB_URL, apply the schema and report record counts",
	RunE:  runDBHealth,
}

func init() {
	dbCmd.AddCommand(dbHealthCmd)
	rootCmd.AddCommand(dbCmd)
}

func runDBHealth(cmd *cobra.Command, _ []string) error {
	ctx := cmdContext(cmd)
	cfg, err := common.LoadConfig()
	if err != nil {
		return err
	}
	logger := appLogger(cfg)

	store, err := server.ConnectDB(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("DB health: FAIL (%w)", err)
	}
	defer server.CloseDB(store, logger)

	if err := server.PingDB(ctx, store, logger, time.Second); err != nil {
		return fmt.Errorf("DB health: FAIL (%w)", err)
	}
	fmt.Printf("DB health: OK (%s)\n", store.Dialect())

	vs, err := repository.NewVerificationHistory(store, logger).ListRecent(ctx, 0)
	if err != nil {
		return err
	}
	cs, err := repository.NewContractHistory(store, logger).ListRecent(ctx, 0)
	if err != nil {
		return err
	}
	fmt.Printf("verifications: %d\ncontracts: %d\n", len(vs), len(cs))
	return nil
}
