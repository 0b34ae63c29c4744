package game

import (
	"errors"
	"math/rand"

	"github.com/rs/zerolog"
)

// ErrBattleInProgress is returned by Start while a battle is already running
// or concluding.
var ErrBattleInProgress = errors.New("battle already in progress")

// ErrFleetNotReady is returned by Start when either faction has no active boat.
var ErrFleetNotReady = errors.New("both factions need at least one active boat")

// LoopState is the battle loop's state machine position.
type LoopState int

const (
	StateIdle LoopState = iota
	StateRunning
	StateConcluding
)

func (s LoopState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateConcluding:
		return "concluding"
	default:
		return "unknown"
	}
}

// Outcome names the result of a concluded battle.
type Outcome int

const (
	OutcomeNone Outcome = iota // no battle concluded yet
	OutcomePirateVictory
	OutcomeNinjaVictory
	OutcomeNoWinner // both fleets emptied in the same round
)

func (o Outcome) String() string {
	switch o {
	case OutcomePirateVictory:
		return "pirate_victory"
	case OutcomeNinjaVictory:
		return "ninja_victory"
	case OutcomeNoWinner:
		return "no_winner"
	case OutcomeNone:
		return "none"
	default:
		return "unknown"
	}
}

// BattleLoop runs timed battle rounds between the two fleets. All state
// mutation happens on the tick path; the round cadence is a cooperative
// countdown, so cancelling it guarantees no round runs after teardown.
type BattleLoop struct {
	fleet    *Fleet
	log      *BattleLog
	adapter  RenderAdapter
	injector *EventInjector
	logger   zerolog.Logger
	rng      *rand.Rand
	tuning   Tuning

	state       LoopState
	roundTimer  countdown
	rounds      int // rounds resolved in the current/last battle
	lastOutcome Outcome
}

// NewBattleLoop creates an idle loop with its own seeded RNG for target and
// damage rolls.
func NewBattleLoop(tuning Tuning, fleet *Fleet, log *BattleLog, adapter RenderAdapter, injector *EventInjector, seed int64, logger zerolog.Logger) *BattleLoop {
	return &BattleLoop{
		fleet:    fleet,
		log:      log,
		adapter:  adapter,
		injector: injector,
		logger:   logger,
		rng:      rand.New(rand.NewSource(seed)), // #nosec G404 -- game only
		tuning:   tuning,
	}
}

// State returns the loop's current state.
func (bl *BattleLoop) State() LoopState { return bl.state }

// Rounds returns the number of rounds resolved in the current or most recent
// battle.
func (bl *BattleLoop) Rounds() int { return bl.rounds }

// LastOutcome returns the result of the most recently concluded battle.
func (bl *BattleLoop) LastOutcome() Outcome { return bl.lastOutcome }

// CanStart reports whether a start request would be accepted. The UI uses it
// to grey out the start control instead of surfacing an error.
func (bl *BattleLoop) CanStart() bool {
	return bl.state == StateIdle &&
		len(bl.fleet.Active(FactionPirates)) > 0 &&
		len(bl.fleet.Active(FactionNinjas)) > 0
}

// Start transitions Idle -> Running. A running battle cannot be restarted,
// and both factions need at least one active boat.
func (bl *BattleLoop) Start() error {
	if bl.state != StateIdle {
		return ErrBattleInProgress
	}
	if len(bl.fleet.Active(FactionPirates)) == 0 || len(bl.fleet.Active(FactionNinjas)) == 0 {
		return ErrFleetNotReady
	}
	bl.state = StateRunning
	bl.rounds = 0
	bl.roundTimer.arm(bl.tuning.RoundTicks)
	bl.log.Addf("The battle begins!")
	bl.logger.Info().
		Int("pirates", len(bl.fleet.Active(FactionPirates))).
		Int("ninjas", len(bl.fleet.Active(FactionNinjas))).
		Msg("battle started")
	return nil
}

// Tick advances the loop one tick. Rounds run strictly sequentially: a round
// only executes when the cadence countdown fires, and the next one is armed
// after the current round's mutations and log entries are complete.
func (bl *BattleLoop) Tick() {
	switch bl.state {
	case StateConcluding:
		bl.state = StateIdle
	case StateRunning:
		if bl.roundTimer.tick() {
			bl.runRound()
			if bl.state == StateRunning {
				bl.roundTimer.arm(bl.tuning.RoundTicks)
			}
		}
	}
}

// runRound executes one battle round. The termination check always precedes
// attack resolution, so attacks only happen while both sides are non-empty.
func (bl *BattleLoop) runRound() {
	pirates := bl.fleet.Active(FactionPirates)
	ninjas := bl.fleet.Active(FactionNinjas)

	if len(pirates) == 0 || len(ninjas) == 0 {
		bl.conclude(len(pirates), len(ninjas))
		return
	}

	bl.rounds++
	// Both directions resolve in the same round, independently sampled from
	// the start-of-round views. A boat sunk by the first resolution can still
	// fire back in the second.
	bl.resolveAttack(pirates, ninjas)
	bl.resolveAttack(ninjas, pirates)
}

// resolveAttack picks a uniformly random attacker and defender, rolls damage
// as attack power minus a random 0-4 reduction, and handles a sinking.
func (bl *BattleLoop) resolveAttack(attackers, defenders []*Boat) {
	attacker := attackers[bl.rng.Intn(len(attackers))]
	defender := defenders[bl.rng.Intn(len(defenders))]

	damage := attacker.attackPower - bl.rng.Intn(5)
	if damage < 0 {
		damage = 0
	}
	defender.applyDamage(damage)

	bl.log.Addf("%s boat %d hits %s boat %d for %d (hull %d).",
		attacker.faction, attacker.id, defender.faction, defender.id, damage, defender.health)
	bl.adapter.PulseEffect(defender.pos)

	if !defender.Afloat() {
		bl.fleet.RemoveDefeated(defender)
		bl.log.Addf("%s boat %d goes down!", defender.faction, defender.id)
	}
}

// conclude transitions Running -> Concluding, names the winner, and fires
// the surprise-event injector exactly once. The Concluding -> Idle step
// happens on the next tick.
func (bl *BattleLoop) conclude(piratesLeft, ninjasLeft int) {
	bl.state = StateConcluding
	bl.roundTimer.cancel()

	switch {
	case piratesLeft > 0:
		bl.lastOutcome = OutcomePirateVictory
		bl.log.Addf("The pirates rule the bay!")
	case ninjasLeft > 0:
		bl.lastOutcome = OutcomeNinjaVictory
		bl.log.Addf("The ninjas rule the bay!")
	default:
		bl.lastOutcome = OutcomeNoWinner
		bl.log.Addf("Both fleets lie on the seabed. Nobody wins.")
	}
	bl.logger.Info().
		Stringer("outcome", bl.lastOutcome).
		Int("rounds", bl.rounds).
		Msg("battle concluded")

	bl.injector.Trigger()
}

// Stop tears the loop down: the pending round countdown and the injector's
// banner countdown are cancelled and the state returns to Idle. Idempotent;
// no round executes after Stop returns.
func (bl *BattleLoop) Stop() {
	bl.roundTimer.cancel()
	bl.injector.Stop()
	bl.state = StateIdle
}
