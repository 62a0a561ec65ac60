package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tour-booking",
	Short: "Tour booking session service",
	Long:  `BFF-сервис двухшагового бронирования туров: черновик, оплата через PayPal/Stripe, отправка бронирования.`,
	// без подкоманды запускается сервер
	Run: func(cmd *cobra.Command, args []string) {
		serveCmd.Run(cmd, args)
	},
}

// Execute запускает корневую команду
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "config.toml", "Путь к файлу конфигурации")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reconciliationsCmd)
}
