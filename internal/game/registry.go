package game

import (
	"math/rand"

	"github.com/rs/zerolog"
)

// Fleet is the entity registry. It exclusively owns every Boat record, the
// append-only loot collection, and the boat-to-visual-handle association.
// The handle table is written only here (on deploy and removal); the loop
// and injector reach the renderer through Fleet so each handle is disposed
// exactly once.
type Fleet struct {
	tuning  Tuning
	adapter RenderAdapter
	log     *BattleLog
	logger  zerolog.Logger
	rng     *rand.Rand

	pirates []*Boat
	ninjas  []*Boat
	loot    []LootItem
	handles map[int]Handle // boat id -> live visual handle

	nextBoatID int
	nextLootID int
}

// NewFleet creates an empty registry with its own seeded RNG for spawn
// placement.
func NewFleet(tuning Tuning, adapter RenderAdapter, log *BattleLog, seed int64, logger zerolog.Logger) *Fleet {
	return &Fleet{
		tuning:     tuning,
		adapter:    adapter,
		log:        log,
		logger:     logger,
		rng:        rand.New(rand.NewSource(seed)), // #nosec G404 -- game only
		handles:    make(map[int]Handle),
		nextBoatID: 1,
		nextLootID: 1,
	}
}

// randomSpawn picks an in-bounds position with a margin so the boat's visual
// footprint stays fully on the playfield.
func (fl *Fleet) randomSpawn() Vec2 {
	m := fl.tuning.SpawnMargin
	return Vec2{
		X: m + fl.rng.Float64()*(fl.tuning.BayWidth-2*m),
		Y: m + fl.rng.Float64()*(fl.tuning.BayHeight-2*m),
	}
}

// Deploy creates a boat for the given faction at a random spawn position and
// asks the adapter to materialize it. When the adapter fails, the deploy is
// rolled back: the boat never joins a roster and the error is surfaced.
func (fl *Fleet) Deploy(f Faction) (*Boat, error) {
	b := &Boat{
		id:          fl.nextBoatID,
		faction:     f,
		health:      boatMaxHealth,
		attackPower: fl.tuning.AttackPower(f),
		pos:         fl.randomSpawn(),
	}

	h, err := fl.adapter.Materialize(b.id, f, b.pos)
	if err != nil {
		fl.logger.Warn().Err(err).Stringer("faction", f).Msg("deploy aborted")
		fl.log.Addf("The shipwright isn't ready, no %s boat launched.", f)
		return nil, err
	}

	fl.nextBoatID++
	fl.handles[b.id] = h
	switch f {
	case FactionPirates:
		fl.pirates = append(fl.pirates, b)
	case FactionNinjas:
		fl.ninjas = append(fl.ninjas, b)
	}
	fl.log.Addf("A %s boat sets sail at (%.0f, %.0f).", f, b.pos.X, b.pos.Y)
	return b, nil
}

// roster returns the full (alive and sunk) roster for a faction.
func (fl *Fleet) roster(f Faction) []*Boat {
	if f == FactionPirates {
		return fl.pirates
	}
	return fl.ninjas
}

// Active returns the faction's boats with health > 0, in roster order.
func (fl *Fleet) Active(f Faction) []*Boat {
	var out []*Boat
	for _, b := range fl.roster(f) {
		if b.Afloat() {
			out = append(out, b)
		}
	}
	return out
}

// ActiveAll returns the pooled active boats of both factions, pirates first.
func (fl *Fleet) ActiveAll() []*Boat {
	return append(fl.Active(FactionPirates), fl.Active(FactionNinjas)...)
}

// RemoveDefeated releases a sunk boat's visual handle exactly once, then
// grants a loot item flavoured for the opposing faction. Calling it again
// for the same boat is a no-op.
func (fl *Fleet) RemoveDefeated(b *Boat) {
	h, ok := fl.handles[b.id]
	if !ok {
		return
	}
	delete(fl.handles, b.id)
	fl.adapter.Dispose(h)

	fl.loot = append(fl.loot, LootItem{ID: fl.nextLootID, Kind: lootFor(b.faction.Opponent())})
	fl.nextLootID++
}

// Reposition moves a boat and mirrors the new position onto its visual
// handle, if one is still live.
func (fl *Fleet) Reposition(b *Boat, pos Vec2) {
	b.pos = pos
	if h, ok := fl.handles[b.id]; ok {
		fl.adapter.Reposition(h, pos)
	}
}

// Loot returns the loot collection, oldest first.
func (fl *Fleet) Loot() []LootItem { return fl.loot }

// LootCounts tallies loot items by kind.
func (fl *Fleet) LootCounts() map[LootKind]int {
	counts := make(map[LootKind]int, 2)
	for _, li := range fl.loot {
		counts[li.Kind]++
	}
	return counts
}

// HandleCount returns the number of live visual handles (for invariant checks).
func (fl *Fleet) HandleCount() int { return len(fl.handles) }

// SyncVisuals pushes each boat's hull state to the sprite renderer so health
// rings track the simulation. UI-only; the headless harness never calls it.
func (fl *Fleet) SyncVisuals(r *SpriteRenderer) {
	for _, f := range []Faction{FactionPirates, FactionNinjas} {
		for _, b := range fl.roster(f) {
			if h, ok := fl.handles[b.id]; ok {
				r.SetHealth(h, b.health)
			}
		}
	}
}
