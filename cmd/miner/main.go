// Command miner is the GlowMine client: it runs mining sessions and tasks
// locally and reconciles every reward with the ledger backend.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "glowmine.toml"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "miner",
	Short: "GlowMine mining client",
	Long: `Run mining sessions and one-shot tasks, and submit their rewards to the
GlowMine ledger. The ledger's balance is authoritative; rewards that cannot
reach it are parked locally and retried.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to the client TOML config")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
