// gaterush is a side-scrolling puzzle game: crowds of passengers
// walk generated terminal levels toward the check-in gate, and the player
// spends one-shot abilities to clear obstacles before the clock runs out.
//
// Usage:
//
//	gaterush play              - open the game window
//	gaterush headless          - run batch simulations and print reports
//	gaterush gen               - print generated level layouts
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "gaterush",
	Short: "Gate Rush - guide passengers to the check-in gate",
	Long: `Gate Rush is a 2D puzzle-action game. Passengers spawn over time and
walk toward the check-in gate across generated platforms, walls, gaps and
security checkpoints. Some carry a one-shot ability (bridge building, door
breaking, security bribing); the rest rely on the player spending the level
inventory. Rescue the quota before the timer expires to advance.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a tuning YAML (default: built-in)")
	rootCmd.AddCommand(playCmd, headlessCmd, genCmd)
}

func main() {
	log.SetReportTimestamp(false)
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
