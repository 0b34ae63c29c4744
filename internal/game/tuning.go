package game

// Tuning bundles the gameplay constants that configuration may override.
// None of them is correctness-critical; invariants hold for any positive
// values.
type Tuning struct {
	BayWidth    float64 // playfield width in pixels
	BayHeight   float64 // playfield height in pixels
	SpawnMargin float64 // kept clear around the playfield edge

	PirateAttack int
	NinjaAttack  int

	RoundTicks        int // ticks between battle rounds (90 = 1.5s at 60 TPS)
	KrakenDamage      int
	EventDisplayTicks int // ticks a surprise-event banner stays visible
}

// DefaultTuning returns the stock parameters.
func DefaultTuning() Tuning {
	return Tuning{
		BayWidth:          960,
		BayHeight:         600,
		SpawnMargin:       3 * boatRadius,
		PirateAttack:      20,
		NinjaAttack:       25,
		RoundTicks:        90,
		KrakenDamage:      10,
		EventDisplayTicks: 300,
	}
}

// AttackPower returns the fixed per-faction attack power.
func (t Tuning) AttackPower(f Faction) int {
	if f == FactionPirates {
		return t.PirateAttack
	}
	return t.NinjaAttack
}
