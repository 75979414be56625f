package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "hms",
		Short:        "Hospital records manager",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(patientCmd())
	rootCmd.AddCommand(doctorCmd())
	rootCmd.AddCommand(appointmentCmd())
	rootCmd.AddCommand(inventoryCmd())
	rootCmd.AddCommand(billCmd())
	rootCmd.AddCommand(storeCmd())

	return rootCmd
}
