package game

// LootKind is the flavour of a reward. Sinking a boat grants loot flavoured
// for the opposing (i.e. the victorious) faction.
type LootKind int

const (
	LootDoubloonChest LootKind = iota // pirate-flavoured, granted when a ninja boat sinks
	LootShurikenCache                 // ninja-flavoured, granted when a pirate boat sinks
)

func (k LootKind) String() string {
	switch k {
	case LootDoubloonChest:
		return "doubloon chest"
	case LootShurikenCache:
		return "shuriken cache"
	default:
		return "unknown"
	}
}

// LootItem is a reward created exactly once per sunk boat. The collection is
// append-only; items are never removed.
type LootItem struct {
	ID   int
	Kind LootKind
}

// lootFor returns the loot kind flavoured for the given victorious faction.
func lootFor(victor Faction) LootKind {
	if victor == FactionPirates {
		return LootDoubloonChest
	}
	return LootShurikenCache
}
