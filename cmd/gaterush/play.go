package main

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/gaterush/gaterush/internal/config"
	"github.com/gaterush/gaterush/internal/game"
)

const (
	windowWidth  = 1280
	windowHeight = 720
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the game window",
	Long: `Start the game.

Controls:
  Enter/Space - start / advance past end-of-level screens
  1 / 2 / 3   - arm bridge / breaker / briber from the inventory
  Click       - assign armed ability, or select an ability passenger
  Esc         - cancel selection
  P           - pause
  C           - copy the level report (on end-of-level screens)`,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagConfig != "" {
		log.Info("loaded tuning", "path", flagConfig)
	}

	eng := game.NewEngine(windowWidth, windowHeight, cfg)
	app := game.NewApp(eng, windowWidth, windowHeight)

	ebiten.SetWindowTitle("Gate Rush")
	ebiten.SetWindowSize(windowWidth, windowHeight)
	if err := ebiten.RunGame(app); err != nil {
		// Losing the rendering surface is the one unrecoverable failure.
		log.Fatal("render surface lost", "err", err)
	}
	return nil
}
