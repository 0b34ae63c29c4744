package game

import (
	"strings"
	"testing"
)

func countLogContaining(bl *BattleLog, substr string) int {
	n := 0
	for _, e := range bl.Recent() {
		if strings.Contains(e.Text, substr) {
			n++
		}
	}
	return n
}

func TestStart_RequiresBothFleets(t *testing.T) {
	tb := NewTestBattle(WithSeed(1), WithPirates(1))
	if err := tb.Loop.Start(); err != ErrFleetNotReady {
		t.Fatalf("start with empty ninja fleet: err = %v, want ErrFleetNotReady", err)
	}
	if tb.Loop.State() != StateIdle {
		t.Errorf("state = %s, want idle", tb.Loop.State())
	}
}

func TestStart_RejectsReentrantStart(t *testing.T) {
	tb := NewTestBattle(WithSeed(1), WithPirates(1), WithNinjas(1))
	if err := tb.Loop.Start(); err != nil {
		t.Fatalf("first start failed: %v", err)
	}
	if err := tb.Loop.Start(); err != ErrBattleInProgress {
		t.Fatalf("second start: err = %v, want ErrBattleInProgress", err)
	}
}

func TestCanStart_TracksPreconditions(t *testing.T) {
	tb := NewTestBattle(WithSeed(1))
	if tb.Loop.CanStart() {
		t.Error("CanStart true with no boats")
	}
	tb.deploy(FactionPirates, 1)
	if tb.Loop.CanStart() {
		t.Error("CanStart true with only pirates")
	}
	tb.deploy(FactionNinjas, 1)
	if !tb.Loop.CanStart() {
		t.Error("CanStart false with both fleets deployed")
	}
	if err := tb.Loop.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if tb.Loop.CanStart() {
		t.Error("CanStart true while running")
	}
}

// Scenario: one boat per faction, one round. Both attack directions resolve,
// each leaves exactly one log entry, and each defender loses an amount in
// [attackPower-4, attackPower].
func TestRound_BothDirectionsResolve(t *testing.T) {
	tb := NewTestBattle(WithSeed(11), WithPirates(1), WithNinjas(1))
	pirate := tb.Fleet.Active(FactionPirates)[0]
	ninja := tb.Fleet.Active(FactionNinjas)[0]

	if err := tb.Loop.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	tb.RunRounds(1)

	if tb.Loop.Rounds() != 1 {
		t.Fatalf("rounds = %d, want 1", tb.Loop.Rounds())
	}
	if got := countLogContaining(tb.Log, "hits"); got != 2 {
		t.Errorf("hit log entries = %d, want 2 (one per direction)\n%s", got, tb.Sim.Format())
	}
	if countLogContaining(tb.Log, "pirates boat 1 hits") != 1 {
		t.Error("expected exactly one pirate attack entry")
	}
	if countLogContaining(tb.Log, "ninjas boat 2 hits") != 1 {
		t.Error("expected exactly one ninja attack entry")
	}

	pirateLoss := boatMaxHealth - pirate.Health()
	ninjaLoss := boatMaxHealth - ninja.Health()
	if pirateLoss < tb.Tuning.NinjaAttack-4 || pirateLoss > tb.Tuning.NinjaAttack {
		t.Errorf("pirate lost %d, want within [%d, %d]", pirateLoss, tb.Tuning.NinjaAttack-4, tb.Tuning.NinjaAttack)
	}
	if ninjaLoss < tb.Tuning.PirateAttack-4 || ninjaLoss > tb.Tuning.PirateAttack {
		t.Errorf("ninja lost %d, want within [%d, %d]", ninjaLoss, tb.Tuning.PirateAttack-4, tb.Tuning.PirateAttack)
	}
	if tb.Adapter.PulseCalls != 2 {
		t.Errorf("pulse effects = %d, want 2", tb.Adapter.PulseCalls)
	}
}

// Scenario: a boat at 1 health is targeted: it sinks, leaves the active view,
// its handle is disposed, and exactly one opposing-kind loot item appears.
func TestRound_SinkingRemovesDisposesAndGrantsLoot(t *testing.T) {
	tb := NewTestBattle(WithSeed(11), WithPirates(1), WithNinjas(1))
	ninja := tb.Fleet.Active(FactionNinjas)[0]
	ninja.health = 1

	if err := tb.Loop.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	tb.RunRounds(1)

	if ninja.Health() != 0 {
		t.Errorf("targeted boat health = %d, want 0", ninja.Health())
	}
	if got := len(tb.Fleet.Active(FactionNinjas)); got != 0 {
		t.Errorf("active ninjas = %d, want 0", got)
	}
	if tb.Adapter.DisposeCalls != 1 {
		t.Errorf("dispose calls = %d, want 1", tb.Adapter.DisposeCalls)
	}
	for h, n := range tb.Adapter.DisposedPerHandle {
		if n != 1 {
			t.Errorf("handle %d disposed %d times, want 1", h, n)
		}
	}
	loot := tb.Fleet.Loot()
	if len(loot) != 1 || loot[0].Kind != LootDoubloonChest {
		t.Fatalf("loot = %v, want exactly one %s", loot, LootDoubloonChest)
	}
	if countLogContaining(tb.Log, "goes down") != 1 {
		t.Error("expected one sunk log entry")
	}
}

// Scenario: one fleet fully sunk. The loop passes through Concluding, logs
// the winner, fires the injector exactly once, and returns to Idle.
func TestConclusion_WinnerLoggedAndInjectorFiresOnce(t *testing.T) {
	tb := NewTestBattle(WithSeed(21), WithPirates(2), WithNinjas(1))
	for _, b := range tb.Fleet.Active(FactionNinjas) {
		b.health = 1
	}

	if err := tb.Loop.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if got := tb.RunUntilIdle(20 * tb.Tuning.RoundTicks); got < 0 {
		t.Fatalf("battle never concluded\n%s", tb.Sim.Format())
	}

	if tb.Loop.LastOutcome() != OutcomePirateVictory {
		t.Errorf("outcome = %s, want %s", tb.Loop.LastOutcome(), OutcomePirateVictory)
	}
	if tb.Sim.Count("battle", "concluded") != 1 {
		t.Errorf("concluded %d times, want 1\n%s", tb.Sim.Count("battle", "concluded"), tb.Sim.Format())
	}
	if countLogContaining(tb.Log, "pirates rule") != 1 {
		t.Error("expected a conclusion log entry naming the pirates")
	}
	if tb.Injector.Triggers() != 1 {
		t.Errorf("injector fired %d times, want exactly 1", tb.Injector.Triggers())
	}
	if tb.Loop.State() != StateIdle {
		t.Errorf("state = %s, want idle", tb.Loop.State())
	}
}

// The termination condition is checked at every active-set boundary:
// the loop concludes exactly when at least one side is empty.
func TestRound_TerminationBoundaries(t *testing.T) {
	cases := []struct {
		name        string
		pirates     int
		piratesSunk int
		ninjas      int
		ninjasSunk  int
		wantState   LoopState
		wantOutcome Outcome
	}{
		{"both empty", 1, 1, 1, 1, StateConcluding, OutcomeNoWinner},
		{"pirates empty", 1, 1, 2, 0, StateConcluding, OutcomeNinjaVictory},
		{"ninjas empty", 2, 0, 1, 1, StateConcluding, OutcomePirateVictory},
		{"both populated", 2, 0, 2, 0, StateRunning, OutcomeNone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tb := NewTestBattle(WithSeed(31), WithPirates(tc.pirates), WithNinjas(tc.ninjas))
			for i, b := range tb.Fleet.roster(FactionPirates) {
				if i < tc.piratesSunk {
					b.health = 0
				}
			}
			for i, b := range tb.Fleet.roster(FactionNinjas) {
				if i < tc.ninjasSunk {
					b.health = 0
				}
			}

			tb.Loop.state = StateRunning
			tb.Loop.runRound()

			if tb.Loop.State() != tc.wantState {
				t.Errorf("state after round = %s, want %s", tb.Loop.State(), tc.wantState)
			}
			if tb.Loop.LastOutcome() != tc.wantOutcome {
				t.Errorf("outcome = %s, want %s", tb.Loop.LastOutcome(), tc.wantOutcome)
			}
			if tc.wantState == StateRunning && tb.Loop.Rounds() != 1 {
				t.Errorf("attack phase should have run: rounds = %d, want 1", tb.Loop.Rounds())
			}
			if tc.wantState == StateConcluding && tb.Loop.Rounds() != 0 {
				t.Errorf("attack phase ran before termination check: rounds = %d", tb.Loop.Rounds())
			}
		})
	}
}

// Property: across a whole seeded battle, health stays in [0, 100] and a
// boat that leaves the active view never returns to it.
func TestBattle_HealthBoundedAndSunkStaySunk(t *testing.T) {
	for _, seed := range []int64{1, 17, 99, 4242} {
		tb := NewTestBattle(WithSeed(seed), WithPirates(3), WithNinjas(3))
		if err := tb.Loop.Start(); err != nil {
			t.Fatalf("seed %d: start failed: %v", seed, err)
		}

		sunk := map[int]bool{}
		bad := tb.RunUntil(func(tb *TestBattle) bool {
			for _, f := range []Faction{FactionPirates, FactionNinjas} {
				active := map[int]bool{}
				for _, b := range tb.Fleet.Active(f) {
					active[b.ID()] = true
				}
				for _, b := range tb.Fleet.roster(f) {
					if b.Health() < 0 || b.Health() > boatMaxHealth {
						t.Fatalf("seed %d: boat %d health %d out of bounds", seed, b.ID(), b.Health())
					}
					if !b.Afloat() {
						sunk[b.ID()] = true
					}
					if sunk[b.ID()] && active[b.ID()] {
						t.Fatalf("seed %d: sunk boat %d reappeared in active view", seed, b.ID())
					}
				}
			}
			return false
		}, 500*tb.Tuning.RoundTicks)
		if bad != -1 {
			t.Fatalf("seed %d: predicate should never trigger", seed)
		}
	}
}

func TestStop_IdempotentTeardownCancelsTimers(t *testing.T) {
	tb := NewTestBattle(WithSeed(13), WithPirates(2), WithNinjas(2))
	if err := tb.Loop.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	tb.RunTicks(tb.Tuning.RoundTicks / 2)

	tb.Loop.Stop()
	tb.Loop.Stop()

	if tb.Loop.State() != StateIdle {
		t.Errorf("state after stop = %s, want idle", tb.Loop.State())
	}
	if tb.Loop.roundTimer.active() {
		t.Error("round countdown still armed after stop")
	}
	if tb.Injector.display.active() {
		t.Error("event display countdown still armed after stop")
	}

	// No round may execute after teardown.
	before := tb.Loop.Rounds()
	tb.RunTicks(5 * tb.Tuning.RoundTicks)
	if tb.Loop.Rounds() != before {
		t.Errorf("rounds advanced from %d to %d after stop", before, tb.Loop.Rounds())
	}
}

func TestBattle_CanRestartAfterConclusion(t *testing.T) {
	tb := NewTestBattle(WithSeed(8), WithPirates(1), WithNinjas(1))
	tb.Fleet.Active(FactionNinjas)[0].health = 1

	if err := tb.Loop.Start(); err != nil {
		t.Fatalf("first start failed: %v", err)
	}
	if tb.RunUntilIdle(20*tb.Tuning.RoundTicks) < 0 {
		t.Fatal("first battle never concluded")
	}

	if _, err := tb.Fleet.Deploy(FactionNinjas); err != nil {
		t.Fatalf("redeploy failed: %v", err)
	}
	if err := tb.Loop.Start(); err != nil {
		t.Fatalf("restart after conclusion failed: %v", err)
	}
}
