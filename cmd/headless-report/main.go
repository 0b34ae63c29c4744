package main

import (
	"flag"
	"fmt"

	"github.com/mtreland/broadside/internal/config"
	"github.com/mtreland/broadside/internal/game"
	"github.com/mtreland/broadside/internal/logging"
)

type runStats struct {
	runIndex int
	seed     int64

	outcome  game.Outcome
	rounds   int
	ticks    int
	chests   int
	caches   int
	event    game.EventKind
	hasEvent bool
}

func main() {
	var runs int
	var maxRounds int
	var seedBase int64
	var seedStep int64
	var pirates int
	var ninjas int

	flag.IntVar(&runs, "runs", 10, "number of headless battles")
	flag.IntVar(&maxRounds, "max-rounds", 200, "round budget per battle")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&pirates, "pirates", 3, "pirate boats per battle")
	flag.IntVar(&ninjas, "ninjas", 3, "ninja boats per battle")
	flag.Parse()

	logger := logging.New("info")
	if err := config.Load("."); err != nil {
		logger.Fatal().Err(err).Msg("config load failed")
	}
	logger = logging.New(config.LogLevel())

	if runs <= 0 || maxRounds <= 0 || pirates <= 0 || ninjas <= 0 {
		logger.Fatal().Msg("-runs, -max-rounds, -pirates and -ninjas must all be > 0")
	}

	fmt.Printf("=== Headless Battle Report ===\n")
	fmt.Printf("runs=%d pirates=%d ninjas=%d seed_base=%d seed_step=%d\n\n",
		runs, pirates, ninjas, seedBase, seedStep)

	tuning := config.Tuning()
	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runBattle(i+1, seed, tuning, pirates, ninjas, maxRounds)
		all = append(all, stats)
		printRun(stats)
		logger.Debug().Int("run", stats.runIndex).Stringer("outcome", stats.outcome).Msg("run done")
	}

	printAggregate(all)
}

func runBattle(runIndex int, seed int64, tuning game.Tuning, pirates, ninjas, maxRounds int) runStats {
	tb := game.NewTestBattle(
		game.WithSeed(seed),
		game.WithTuning(tuning),
		game.WithPirates(pirates),
		game.WithNinjas(ninjas),
	)
	if err := tb.Loop.Start(); err != nil {
		return runStats{runIndex: runIndex, seed: seed}
	}
	ticks := tb.RunUntilIdle(maxRounds*tuning.RoundTicks + tuning.RoundTicks)

	counts := tb.Fleet.LootCounts()
	stats := runStats{
		runIndex: runIndex,
		seed:     seed,
		outcome:  tb.Loop.LastOutcome(),
		rounds:   tb.Loop.Rounds(),
		ticks:    ticks,
		chests:   counts[game.LootDoubloonChest],
		caches:   counts[game.LootShurikenCache],
	}
	if ev, ok := tb.Injector.Last(); ok {
		stats.event = ev.Kind
		stats.hasEvent = true
	}
	return stats
}

func printRun(s runStats) {
	ev := "-"
	if s.hasEvent {
		ev = s.event.String()
	}
	fmt.Printf("run %2d  seed=%-6d  %-15s rounds=%-4d chests=%d caches=%d event=%s\n",
		s.runIndex, s.seed, s.outcome, s.rounds, s.chests, s.caches, ev)
}

func printAggregate(all []runStats) {
	outcomes := map[game.Outcome]int{}
	events := map[game.EventKind]int{}
	totalRounds := 0
	totalChests := 0
	totalCaches := 0
	for _, s := range all {
		outcomes[s.outcome]++
		if s.hasEvent {
			events[s.event]++
		}
		totalRounds += s.rounds
		totalChests += s.chests
		totalCaches += s.caches
	}

	fmt.Printf("\n--- Aggregate over %d runs ---\n", len(all))
	for _, o := range []game.Outcome{game.OutcomePirateVictory, game.OutcomeNinjaVictory, game.OutcomeNoWinner} {
		if n := outcomes[o]; n > 0 {
			fmt.Printf("%-15s %d\n", o, n)
		}
	}
	fmt.Printf("mean rounds     %.1f\n", float64(totalRounds)/float64(len(all)))
	fmt.Printf("loot            %d chests, %d caches\n", totalChests, totalCaches)
	fmt.Printf("events:")
	kinds := []game.EventKind{game.EventKraken, game.EventFog, game.EventTreasure, game.EventAlliance, game.EventTeleport}
	for _, k := range kinds {
		if n := events[k]; n > 0 {
			fmt.Printf("  %s=%d", k, n)
		}
	}
	fmt.Println()
}
