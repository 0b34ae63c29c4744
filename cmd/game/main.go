package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/mtreland/broadside/internal/config"
	"github.com/mtreland/broadside/internal/game"
	"github.com/mtreland/broadside/internal/logging"
)

func main() {
	logger := logging.New("info")
	if err := config.Load("."); err != nil {
		logger.Fatal().Err(err).Msg("config load failed")
	}
	logger = logging.New(config.LogLevel())

	g := game.New(config.Tuning(), logger)
	defer g.Close()

	ebiten.SetWindowTitle("Broadside")
	ebiten.SetWindowSize(1328, 648)
	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal().Err(err).Msg("game exited")
	}
}
