package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	boatMaxHealth = 100
	boatRadius    = 10 // visual footprint, also the spawn margin unit
)

// Faction distinguishes the two fleets.
type Faction int

const (
	FactionPirates Faction = iota
	FactionNinjas
)

func (f Faction) String() string {
	switch f {
	case FactionPirates:
		return "pirates"
	case FactionNinjas:
		return "ninjas"
	default:
		return "unknown"
	}
}

// Opponent returns the other faction.
func (f Faction) Opponent() Faction {
	if f == FactionPirates {
		return FactionNinjas
	}
	return FactionPirates
}

// Vec2 is a 2D position on the bay.
type Vec2 struct {
	X, Y float64
}

// Boat is one deployed combatant. The Fleet registry owns every Boat for its
// whole lifetime; health and position are only mutated through the battle
// loop and the surprise-event injector.
type Boat struct {
	id          int
	faction     Faction
	health      int // [0, boatMaxHealth]
	attackPower int // fixed per faction at deploy time
	pos         Vec2
}

func (b *Boat) ID() int          { return b.id }
func (b *Boat) Faction() Faction { return b.faction }
func (b *Boat) Health() int      { return b.health }
func (b *Boat) AttackPower() int { return b.attackPower }
func (b *Boat) Position() Vec2   { return b.pos }

// Afloat reports whether the boat is still in the fight.
func (b *Boat) Afloat() bool { return b.health > 0 }

// applyDamage reduces health, clamped so it never goes below zero.
func (b *Boat) applyDamage(dmg int) {
	if dmg <= 0 {
		return
	}
	b.health -= dmg
	if b.health < 0 {
		b.health = 0
	}
}

func factionColor(f Faction) color.RGBA {
	if f == FactionPirates {
		return color.RGBA{R: 200, G: 60, B: 40, A: 255}
	}
	return color.RGBA{R: 50, G: 60, B: 110, A: 255}
}

// drawBoat renders a hull as a filled circle with a mast line and a health
// arc. Sunk boats are not drawn; the registry disposes their sprite instead.
func drawBoat(screen *ebiten.Image, f Faction, pos Vec2, health int, offX, offY float64) {
	c := factionColor(f)
	x := float32(pos.X + offX)
	y := float32(pos.Y + offY)

	vector.DrawFilledCircle(screen, x, y, boatRadius, c, true)

	// Mast.
	vector.StrokeLine(screen, x, y, x, y-boatRadius*1.8, 1.5,
		color.RGBA{R: 230, G: 220, B: 200, A: 220}, true)

	// Health ring: a partial arc approximated with short segments.
	frac := float64(health) / float64(boatMaxHealth)
	segs := int(math.Ceil(frac * 12))
	for i := 0; i < segs; i++ {
		a0 := -math.Pi/2 + 2*math.Pi*float64(i)/12
		a1 := -math.Pi/2 + 2*math.Pi*float64(i+1)/12
		r := float64(boatRadius) + 3
		vector.StrokeLine(screen,
			x+float32(math.Cos(a0)*r), y+float32(math.Sin(a0)*r),
			x+float32(math.Cos(a1)*r), y+float32(math.Sin(a1)*r),
			1.2, color.RGBA{R: 120, G: 220, B: 120, A: 200}, true)
	}
}
