package game

import (
	"math/rand"

	"github.com/rs/zerolog"
)

// EventKind identifies one entry of the fixed surprise-event catalogue.
type EventKind int

const (
	EventKraken EventKind = iota // area damage to every active boat
	EventFog                     // cosmetic
	EventTreasure                // cosmetic
	EventAlliance                // cosmetic
	EventTeleport                // relocates one random active boat
	eventKindCount
)

func (k EventKind) String() string {
	switch k {
	case EventKraken:
		return "kraken"
	case EventFog:
		return "fog"
	case EventTreasure:
		return "treasure"
	case EventAlliance:
		return "alliance"
	case EventTeleport:
		return "teleport"
	default:
		return "unknown"
	}
}

// SurpriseEvent is one triggered narrative event.
type SurpriseEvent struct {
	Kind EventKind
	Text string
}

var eventTexts = [eventKindCount]string{
	EventKraken:   "A kraken surfaces and thrashes every hull in the bay!",
	EventFog:      "A thick fog rolls in. Nobody can see a thing.",
	EventTreasure: "A drifting treasure chest is spotted between the wrecks.",
	EventAlliance: "A truce is called... for about five minutes.",
	EventTeleport: "A freak whirlpool drags a boat across the bay!",
}

// EventInjector fires exactly one surprise event per battle conclusion.
// Three events are narrative only; kraken and teleport carry a mechanical
// side effect. The banner text stays visible for a fixed time, then clears
// through a cancellable countdown.
type EventInjector struct {
	fleet  *Fleet
	log    *BattleLog
	logger zerolog.Logger
	rng    *rand.Rand

	display  countdown
	active   *SurpriseEvent
	last     *SurpriseEvent
	triggers int
	tuning   Tuning
}

// NewEventInjector creates an injector with its own seeded RNG.
func NewEventInjector(tuning Tuning, fleet *Fleet, log *BattleLog, seed int64, logger zerolog.Logger) *EventInjector {
	return &EventInjector{
		fleet:  fleet,
		log:    log,
		logger: logger,
		rng:    rand.New(rand.NewSource(seed)), // #nosec G404 -- game only
		tuning: tuning,
	}
}

// Trigger picks one event uniformly at random from the catalogue and applies it.
func (ei *EventInjector) Trigger() SurpriseEvent {
	return ei.apply(EventKind(ei.rng.Intn(int(eventKindCount))))
}

// apply runs one specific event. Tests use it to force a kind.
func (ei *EventInjector) apply(kind EventKind) SurpriseEvent {
	ev := SurpriseEvent{Kind: kind, Text: eventTexts[kind]}

	switch kind {
	case EventKraken:
		ei.applyKraken()
	case EventTeleport:
		ei.applyTeleport()
	}

	ei.log.Addf("%s", ev.Text)
	ei.logger.Info().Stringer("event", kind).Msg("surprise event")
	ei.active = &ev
	ei.last = &ev
	ei.triggers++
	ei.display.arm(ei.tuning.EventDisplayTicks)
	return ev
}

// Triggers returns how many events have fired over the injector's lifetime.
func (ei *EventInjector) Triggers() int { return ei.triggers }

// applyKraken deals fixed area damage to every active boat of both factions.
// Boats sunk by the kraken go through the standard removal pipeline so their
// handles are released and loot is granted, same as a combat sinking.
func (ei *EventInjector) applyKraken() {
	for _, b := range ei.fleet.ActiveAll() {
		b.applyDamage(ei.tuning.KrakenDamage)
		if !b.Afloat() {
			ei.fleet.RemoveDefeated(b)
			ei.log.Addf("A %s boat is dragged under by the kraken!", b.Faction())
		}
	}
}

// applyTeleport relocates one random active boat (pooled across both fleets)
// to a fresh in-bounds position.
func (ei *EventInjector) applyTeleport() {
	pool := ei.fleet.ActiveAll()
	if len(pool) == 0 {
		return
	}
	b := pool[ei.rng.Intn(len(pool))]
	ei.fleet.Reposition(b, ei.fleet.randomSpawn())
}

// Tick advances the banner countdown, clearing the active text when it fires.
func (ei *EventInjector) Tick() {
	if ei.display.tick() {
		ei.active = nil
	}
}

// ActiveText returns the banner text while an event is on display.
func (ei *EventInjector) ActiveText() (string, bool) {
	if ei.active == nil {
		return "", false
	}
	return ei.active.Text, true
}

// Last returns the most recently triggered event, if any.
func (ei *EventInjector) Last() (SurpriseEvent, bool) {
	if ei.last == nil {
		return SurpriseEvent{}, false
	}
	return *ei.last, true
}

// Stop cancels the banner countdown and clears the display. Idempotent;
// part of simulation teardown.
func (ei *EventInjector) Stop() {
	ei.display.cancel()
	ei.active = nil
}
