// Command courierfront serves the courier booking and tracking front-end API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "courierfront",
	Short: "Courier booking and tracking front-end service",
	Long: `courierfront drives the booking wizard, price quotes, OTP-gated
booking submission and live shipment tracking for browser clients.
It talks to the courier backend for every decision and keeps only
per-session page state.

Configuration is read from the environment. JWT_SECRET is required;
BACKEND_URL, REDIS_ADDR and PORT cover the usual deployment.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

//go:generate swag init -g main.go -d ./,../../internal/api -o ../../docs

// @title                       courierfront API
// @version                     1.0
// @description                 Booking wizard, pricing and live tracking for courier clients.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
