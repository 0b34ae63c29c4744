package game

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ErrRendererNotReady is returned by Materialize before the rendering surface
// has completed its first layout pass. Deploys issued in that window are
// rolled back by the registry.
var ErrRendererNotReady = errors.New("rendering surface not ready")

// Handle is an opaque reference to one boat's visual representation. It is
// valid from Materialize until Dispose and must not be reused afterwards.
type Handle int

// RenderAdapter is the contract the simulation core holds against the
// rendering layer. The core never draws; it only asks for visuals to be
// created, moved, discarded, or flashed.
type RenderAdapter interface {
	Materialize(id int, f Faction, pos Vec2) (Handle, error)
	Reposition(h Handle, pos Vec2)
	Dispose(h Handle)
	// PulseEffect is fire-and-forget decoration at a hit position.
	PulseEffect(pos Vec2)
}

const pulseLifetime = 20 // ticks a hit pulse persists

// pulse is a short-lived expanding ring drawn where a shot landed.
type pulse struct {
	pos Vec2
	age int
}

func (p *pulse) done() bool { return p.age >= pulseLifetime }

// boatSprite is the renderer-side record for one materialized boat.
type boatSprite struct {
	id      int
	faction Faction
	pos     Vec2
	health  int
}

// SpriteRenderer is the ebiten implementation of RenderAdapter. It keeps a
// handle table of live sprites and a list of aging pulse effects.
type SpriteRenderer struct {
	ready      bool
	nextHandle Handle
	sprites    map[Handle]*boatSprite
	pulses     []*pulse
}

func NewSpriteRenderer() *SpriteRenderer {
	return &SpriteRenderer{
		nextHandle: 1,
		sprites:    make(map[Handle]*boatSprite),
	}
}

// SetReady marks the rendering surface usable. Called once the window layout
// is known; Materialize fails before that.
func (r *SpriteRenderer) SetReady(ready bool) { r.ready = ready }

func (r *SpriteRenderer) Materialize(id int, f Faction, pos Vec2) (Handle, error) {
	if !r.ready {
		return 0, ErrRendererNotReady
	}
	h := r.nextHandle
	r.nextHandle++
	r.sprites[h] = &boatSprite{id: id, faction: f, pos: pos, health: boatMaxHealth}
	return h, nil
}

func (r *SpriteRenderer) Reposition(h Handle, pos Vec2) {
	if s, ok := r.sprites[h]; ok {
		s.pos = pos
	}
}

func (r *SpriteRenderer) Dispose(h Handle) {
	delete(r.sprites, h)
}

func (r *SpriteRenderer) PulseEffect(pos Vec2) {
	r.pulses = append(r.pulses, &pulse{pos: pos})
}

// SetHealth mirrors a boat's hull state onto its sprite so the health ring
// tracks the simulation.
func (r *SpriteRenderer) SetHealth(h Handle, health int) {
	if s, ok := r.sprites[h]; ok {
		s.health = health
	}
}

// SpriteCount returns the number of live sprites in the handle table.
func (r *SpriteRenderer) SpriteCount() int { return len(r.sprites) }

// Update ages pulse effects and drops finished ones.
func (r *SpriteRenderer) Update() {
	kept := r.pulses[:0]
	for _, p := range r.pulses {
		p.age++
		if !p.done() {
			kept = append(kept, p)
		}
	}
	r.pulses = kept
}

// Draw renders all sprites and pulses, offset into the playfield area.
func (r *SpriteRenderer) Draw(screen *ebiten.Image, offX, offY float64) {
	for _, s := range r.sprites {
		drawBoat(screen, s.faction, s.pos, s.health, offX, offY)
	}
	for _, p := range r.pulses {
		progress := float32(p.age) / float32(pulseLifetime)
		radius := boatRadius * (0.6 + 1.6*progress)
		a := uint8(200 * (1 - progress))
		vector.StrokeCircle(screen,
			float32(p.pos.X+offX), float32(p.pos.Y+offY), radius, 1.6,
			color.RGBA{R: 255, G: 180, B: 80, A: a}, true)
	}
}
