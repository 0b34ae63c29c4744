package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event during a headless battle run.
type SimLogEntry struct {
	Tick     int
	Category string  // state, round, battle
	Key      string  // specific event within the category
	Value    string  // human-readable detail
	Num      float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%05d] %-8s %-16s %s", e.Tick, e.Category, e.Key, e.Value)
}

// SimLog collects structured events during a headless run. Unlike BattleLog
// (the bounded UI ring), SimLog is unbounded and machine-readable.
type SimLog struct {
	entries []SimLogEntry
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, category, key, value string, num float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Category: category,
		Key:      key,
		Value:    value,
		Num:      num,
	})
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry { return sl.entries }

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Count returns how many entries match the given category and key.
func (sl *SimLog) Count(category, key string) int {
	return len(sl.Filter(category, key))
}

// Last returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) Last(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
