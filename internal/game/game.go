package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// borderWidth is the pixel gap between the window edge and the bay.
const borderWidth = 24

// meshCellSize is the spacing of the cosmetic mesh overlay grid.
const meshCellSize = 48

// Game is the ebiten shell around one simulation context. It owns the
// registry, loop, and injector explicitly; lifecycle is initialized here and
// torn down by Close, never implied by anything else.
type Game struct {
	width  int
	height int
	offX   int // pixel offset from window left to bay left
	offY   int

	tuning   Tuning
	logger   zerolog.Logger
	renderer *SpriteRenderer
	blog     *BattleLog
	fleet    *Fleet
	injector *EventInjector
	loop     *BattleLoop

	showMesh bool
	prevKeys map[ebiten.Key]bool
	face     font.Face
}

// New wires a full simulation context with time-based seeds.
func New(tuning Tuning, logger zerolog.Logger) *Game {
	g := &Game{
		width:    borderWidth + int(tuning.BayWidth) + borderWidth + logPanelWidth,
		height:   borderWidth + int(tuning.BayHeight) + borderWidth,
		offX:     borderWidth,
		offY:     borderWidth,
		tuning:   tuning,
		logger:   logger,
		renderer: NewSpriteRenderer(),
		blog:     NewBattleLog(),
		prevKeys: make(map[ebiten.Key]bool),
		face:     basicfont.Face7x13,
	}
	seed := time.Now().UnixNano()
	g.fleet = NewFleet(tuning, g.renderer, g.blog, seed, logger)
	g.injector = NewEventInjector(tuning, g.fleet, g.blog, seed+1, logger)
	g.loop = NewBattleLoop(tuning, g.fleet, g.blog, g.renderer, g.injector, seed+2, logger)
	return g
}

// keyPressed reports an edge-triggered key press.
func (g *Game) keyPressed(k ebiten.Key) bool {
	down := ebiten.IsKeyPressed(k)
	was := g.prevKeys[k]
	g.prevKeys[k] = down
	return down && !was
}

func (g *Game) Update() error {
	g.renderer.Update()

	if g.keyPressed(ebiten.KeyP) {
		g.fleet.Deploy(FactionPirates) //nolint:errcheck // failure already logged
	}
	if g.keyPressed(ebiten.KeyN) {
		g.fleet.Deploy(FactionNinjas) //nolint:errcheck // failure already logged
	}
	if g.keyPressed(ebiten.KeySpace) {
		if err := g.loop.Start(); err != nil {
			g.logger.Debug().Err(err).Msg("start rejected")
		}
	}
	if g.keyPressed(ebiten.KeyM) {
		g.showMesh = !g.showMesh
	}
	if g.keyPressed(ebiten.KeyC) {
		if err := clipboard.WriteAll(BuildReport(g.fleet, g.loop, g.blog)); err != nil {
			g.logger.Warn().Err(err).Msg("clipboard copy failed")
		} else {
			g.blog.Addf("Battle report copied to clipboard.")
		}
	}

	g.loop.Tick()
	g.injector.Tick()
	g.fleet.SyncVisuals(g.renderer)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Open water.
	screen.Fill(color.RGBA{R: 12, G: 26, B: 44, A: 255})

	// Bay surface.
	vector.FillRect(screen, float32(g.offX), float32(g.offY),
		float32(g.tuning.BayWidth), float32(g.tuning.BayHeight),
		color.RGBA{R: 18, G: 42, B: 66, A: 255}, false)

	if g.showMesh {
		g.drawMesh(screen)
	}

	g.renderer.Draw(screen, float64(g.offX), float64(g.offY))
	g.blog.Draw(screen, g.width-logPanelWidth, g.height)
	g.drawHUD(screen)

	if txt, ok := g.injector.ActiveText(); ok {
		x := g.offX + (int(g.tuning.BayWidth)-len(txt)*7)/2
		text.Draw(screen, txt, g.face, x, g.offY+20, color.RGBA{R: 255, G: 220, B: 120, A: 255})
	}
}

// drawMesh renders the cosmetic grid overlay across the bay.
func (g *Game) drawMesh(screen *ebiten.Image) {
	c := color.RGBA{R: 60, G: 110, B: 140, A: 70}
	x0, y0 := float32(g.offX), float32(g.offY)
	w, h := float32(g.tuning.BayWidth), float32(g.tuning.BayHeight)
	for x := float32(0); x <= w; x += meshCellSize {
		vector.StrokeLine(screen, x0+x, y0, x0+x, y0+h, 1.0, c, false)
	}
	for y := float32(0); y <= h; y += meshCellSize {
		vector.StrokeLine(screen, x0, y0+y, x0+w, y0+y, 1.0, c, false)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	pirates := len(g.fleet.Active(FactionPirates))
	ninjas := len(g.fleet.Active(FactionNinjas))
	counts := g.fleet.LootCounts()

	start := "SPACE start battle"
	if !g.loop.CanStart() {
		start = "SPACE start battle (unavailable)"
	}
	hud := fmt.Sprintf("P pirate boat | N ninja boat | %s | M mesh | C copy report", start)
	ebitenutil.DebugPrintAt(screen, hud, g.offX, 4)

	status := fmt.Sprintf("pirates %d  ninjas %d  |  %s  |  loot: %d chests, %d caches",
		pirates, ninjas, g.loop.State(), counts[LootDoubloonChest], counts[LootShurikenCache])
	ebitenutil.DebugPrintAt(screen, status, g.offX, g.height-18)
}

// Layout fixes the window size; the first call marks the rendering surface
// ready, which is what allows deploys to materialize.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.renderer.SetReady(true)
	return g.width, g.height
}

// Close tears down the simulation: both countdowns are cancelled so no round
// or banner callback runs afterwards. Safe to call more than once.
func (g *Game) Close() {
	g.loop.Stop()
}
