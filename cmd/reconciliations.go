package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	reconciliationRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/reconciliation"
	reconciliationsService "github.com/m04kA/SMC-TourBookingService/internal/service/reconciliations"
	"github.com/m04kA/SMC-TourBookingService/internal/service/reconciliations/models"
	"github.com/m04kA/SMC-TourBookingService/pkg/logger"
)

var reconciliationsCmd = &cobra.Command{
	Use:   "reconciliations",
	Short: "Inspect captured payments that have no booking",
}

var reconciliationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reconciliation records (pending by default)",
	Run: func(cmd *cobra.Command, args []string) {
		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetUint64("limit")

		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Failed to load config: %v\n", err)
			os.Exit(1)
		}
		if !cfg.Database.Enabled {
			fmt.Println("Database is disabled in config, there is no reconciliation ledger.")
			os.Exit(1)
		}

		db, executor, err := openDatabase(cfg, false)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()

		svc := reconciliationsService.NewService(reconciliationRepo.NewRepository(executor), logger.NewNop())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var result *models.ReconciliationListResponse
		if status == "pending" {
			result, err = svc.ListPending(ctx, limit)
		} else {
			result, err = svc.List(ctx, &models.ListRequest{Status: &status, Limit: limit})
		}
		if err != nil {
			fmt.Printf("Error listing reconciliations: %v\n", err)
			os.Exit(1)
		}

		if result.Total == 0 {
			fmt.Println("No reconciliation records found.")
			return
		}

		data, err := json.MarshalIndent(result.Reconciliations, "", "  ")
		if err != nil {
			fmt.Printf("Error marshaling records: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	},
}

func init() {
	reconciliationsListCmd.Flags().String("status", "pending", "pending, resolved или all")
	reconciliationsListCmd.Flags().Uint64("limit", 100, "Максимум записей")

	reconciliationsCmd.AddCommand(reconciliationsListCmd)
}
