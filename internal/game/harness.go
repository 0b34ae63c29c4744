package game

import (
	"fmt"

	"github.com/rs/zerolog"
)

// RecordingAdapter is a RenderAdapter fake used by the headless harness and
// tests. It tracks every contract call so tests can assert handle lifecycle
// invariants, and can be switched into a failure mode to exercise the
// deploy rollback path.
type RecordingAdapter struct {
	FailMaterialize bool

	nextHandle Handle
	live       map[Handle]Vec2

	MaterializeCalls int
	RepositionCalls  int
	DisposeCalls     int
	PulseCalls       int

	DisposedPerHandle map[Handle]int
	LastReposition    Vec2
}

func NewRecordingAdapter() *RecordingAdapter {
	return &RecordingAdapter{
		nextHandle:        1,
		live:              make(map[Handle]Vec2),
		DisposedPerHandle: make(map[Handle]int),
	}
}

func (ra *RecordingAdapter) Materialize(id int, f Faction, pos Vec2) (Handle, error) {
	ra.MaterializeCalls++
	if ra.FailMaterialize {
		return 0, ErrRendererNotReady
	}
	h := ra.nextHandle
	ra.nextHandle++
	ra.live[h] = pos
	return h, nil
}

func (ra *RecordingAdapter) Reposition(h Handle, pos Vec2) {
	ra.RepositionCalls++
	ra.LastReposition = pos
	if _, ok := ra.live[h]; ok {
		ra.live[h] = pos
	}
}

func (ra *RecordingAdapter) Dispose(h Handle) {
	ra.DisposeCalls++
	ra.DisposedPerHandle[h]++
	delete(ra.live, h)
}

func (ra *RecordingAdapter) PulseEffect(pos Vec2) { ra.PulseCalls++ }

// LiveHandles returns the number of handles materialized and not yet disposed.
func (ra *RecordingAdapter) LiveHandles() int { return len(ra.live) }

// TestBattle is a headless harness mirroring the game's update path without
// any ebiten dependency. It supports deterministic seeding and structured
// logging for assertions.
type TestBattle struct {
	Tuning   Tuning
	Fleet    *Fleet
	Loop     *BattleLoop
	Injector *EventInjector
	Log      *BattleLog
	Adapter  *RecordingAdapter
	Sim      *SimLog

	tick int
	seed int64
}

// battleOptionKind controls the pass in which an option is applied.
type battleOptionKind int

const (
	optInfra battleOptionKind = iota // seed, tuning, adapter mode; applied first
	optBoat                          // deploys, applied once the registry exists
)

// BattleOption is a builder function applied to a TestBattle during construction.
type BattleOption struct {
	kind battleOptionKind
	fn   func(*TestBattle)
}

// WithSeed sets the base RNG seed for deterministic runs. The registry, loop,
// and injector each derive their own stream from it.
func WithSeed(seed int64) BattleOption {
	return BattleOption{optInfra, func(tb *TestBattle) { tb.seed = seed }}
}

// WithTuning overrides the default gameplay parameters.
func WithTuning(t Tuning) BattleOption {
	return BattleOption{optInfra, func(tb *TestBattle) { tb.Tuning = t }}
}

// WithAdapterFailure puts the recording adapter into materialize-failure mode
// before any deploys run.
func WithAdapterFailure() BattleOption {
	return BattleOption{optInfra, func(tb *TestBattle) { tb.Adapter.FailMaterialize = true }}
}

// WithPirates deploys n pirate boats.
func WithPirates(n int) BattleOption {
	return BattleOption{optBoat, func(tb *TestBattle) { tb.deploy(FactionPirates, n) }}
}

// WithNinjas deploys n ninja boats.
func WithNinjas(n int) BattleOption {
	return BattleOption{optBoat, func(tb *TestBattle) { tb.deploy(FactionNinjas, n) }}
}

// NewTestBattle constructs a harness from the given options in two ordered
// passes: infrastructure first, then boat deploys.
func NewTestBattle(opts ...BattleOption) *TestBattle {
	tb := &TestBattle{
		Tuning:  DefaultTuning(),
		Adapter: NewRecordingAdapter(),
		Log:     NewBattleLog(),
		Sim:     &SimLog{},
		seed:    1,
	}
	for _, o := range opts {
		if o.kind == optInfra {
			o.fn(tb)
		}
	}

	nop := zerolog.Nop()
	tb.Fleet = NewFleet(tb.Tuning, tb.Adapter, tb.Log, tb.seed, nop)
	tb.Injector = NewEventInjector(tb.Tuning, tb.Fleet, tb.Log, tb.seed+1, nop)
	tb.Loop = NewBattleLoop(tb.Tuning, tb.Fleet, tb.Log, tb.Adapter, tb.Injector, tb.seed+2, nop)

	for _, o := range opts {
		if o.kind == optBoat {
			o.fn(tb)
		}
	}
	return tb
}

func (tb *TestBattle) deploy(f Faction, n int) {
	for i := 0; i < n; i++ {
		if _, err := tb.Fleet.Deploy(f); err != nil {
			tb.Sim.Add(tb.tick, "battle", "deploy_failed", err.Error(), 0)
		}
	}
}

// CurrentTick returns the harness tick counter.
func (tb *TestBattle) CurrentTick() int { return tb.tick }

// RunTicks advances the simulation n ticks, recording state transitions and
// resolved rounds to the SimLog.
func (tb *TestBattle) RunTicks(n int) {
	for i := 0; i < n; i++ {
		tb.tick++
		tb.stepOneTick()
	}
}

// RunRounds advances exactly n round intervals.
func (tb *TestBattle) RunRounds(n int) {
	tb.RunTicks(n * tb.Tuning.RoundTicks)
}

// RunUntil advances up to maxTicks, stopping early if predicate returns true.
// Returns the tick at which the predicate was satisfied, or -1.
func (tb *TestBattle) RunUntil(predicate func(*TestBattle) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		tb.tick++
		tb.stepOneTick()
		if predicate(tb) {
			return tb.tick
		}
	}
	return -1
}

// RunUntilIdle runs until the loop has concluded and returned to Idle.
func (tb *TestBattle) RunUntilIdle(maxTicks int) int {
	return tb.RunUntil(func(tb *TestBattle) bool {
		return tb.Loop.State() == StateIdle && tb.Loop.LastOutcome() != OutcomeNone
	}, maxTicks)
}

// stepOneTick mirrors Game.Update for the headless harness.
func (tb *TestBattle) stepOneTick() {
	prevState := tb.Loop.State()
	prevRounds := tb.Loop.Rounds()

	tb.Loop.Tick()
	tb.Injector.Tick()

	if st := tb.Loop.State(); st != prevState {
		tb.Sim.Add(tb.tick, "state", "change",
			fmt.Sprintf("%s -> %s", prevState, st), 0)
		if st == StateConcluding {
			tb.Sim.Add(tb.tick, "battle", "concluded", tb.Loop.LastOutcome().String(), 0)
		}
	}
	if r := tb.Loop.Rounds(); r != prevRounds {
		tb.Sim.Add(tb.tick, "round", "resolved", fmt.Sprintf("round %d", r), float64(r))
	}
}
