package game

import (
	"fmt"
	"strings"
)

// BuildReport assembles a plain-text snapshot of the bay: loop state,
// rosters with hull values, loot tally, and the rolling battle log. The UI
// copies it to the clipboard; the headless tool prints it.
func BuildReport(fleet *Fleet, loop *BattleLoop, log *BattleLog) string {
	var sb strings.Builder

	sb.WriteString("=== Broadside Battle Report ===\n")
	fmt.Fprintf(&sb, "state=%s rounds=%d outcome=%s\n\n", loop.State(), loop.Rounds(), loop.LastOutcome())

	for _, f := range []Faction{FactionPirates, FactionNinjas} {
		active := fleet.Active(f)
		fmt.Fprintf(&sb, "%s: %d afloat / %d deployed\n", f, len(active), len(fleet.roster(f)))
		for _, b := range fleet.roster(f) {
			status := fmt.Sprintf("hull %3d", b.health)
			if !b.Afloat() {
				status = "sunk"
			}
			fmt.Fprintf(&sb, "  boat %-3d %-8s (%.0f, %.0f)\n", b.id, status, b.pos.X, b.pos.Y)
		}
		sb.WriteByte('\n')
	}

	counts := fleet.LootCounts()
	fmt.Fprintf(&sb, "loot: %d %s, %d %s\n\n",
		counts[LootDoubloonChest], LootDoubloonChest,
		counts[LootShurikenCache], LootShurikenCache)

	sb.WriteString("recent log (newest first):\n")
	for _, e := range log.Recent() {
		fmt.Fprintf(&sb, "  %s %s\n", e.At.Format("15:04:05"), e.Text)
	}
	return sb.String()
}
