package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	logPanelWidth = 320
	logMaxEntries = 10
	logLineHeight = 14
)

// BattleLogEntry is one immutable line in the rolling battle log.
type BattleLogEntry struct {
	At   time.Time
	Text string
}

// BattleLog is a bounded ring of the most recent battle messages. Once full,
// the oldest entry is evicted on every insert.
type BattleLog struct {
	entries []BattleLogEntry
	head    int
	count   int
}

// NewBattleLog creates a battle log with a fixed capacity of logMaxEntries.
func NewBattleLog() *BattleLog {
	return &BattleLog{
		entries: make([]BattleLogEntry, logMaxEntries),
	}
}

// Addf formats and appends an entry, evicting the oldest when full.
func (bl *BattleLog) Addf(format string, args ...any) {
	bl.entries[bl.head] = BattleLogEntry{
		At:   time.Now(),
		Text: fmt.Sprintf(format, args...),
	}
	bl.head = (bl.head + 1) % logMaxEntries
	if bl.count < logMaxEntries {
		bl.count++
	}
}

// Len returns the number of retained entries (at most logMaxEntries).
func (bl *BattleLog) Len() int { return bl.count }

// Recent returns retained entries newest first.
func (bl *BattleLog) Recent() []BattleLogEntry {
	result := make([]BattleLogEntry, bl.count)
	for i := 0; i < bl.count; i++ {
		idx := (bl.head - 1 - i + logMaxEntries*2) % logMaxEntries
		result[i] = bl.entries[idx]
	}
	return result
}

// Draw renders the log panel on the right side of the screen, newest at the top.
func (bl *BattleLog) Draw(screen *ebiten.Image, panelX, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH),
		color.RGBA{R: 8, G: 12, B: 18, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0,
		color.RGBA{R: 40, G: 60, B: 80, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 16,
		color.RGBA{R: 16, G: 24, B: 36, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "BATTLE LOG", panelX+8, 2)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+logPanelWidth), 16, 1.0,
		color.RGBA{R: 40, G: 70, B: 100, A: 200}, false)

	y := 20
	for i, e := range bl.Recent() {
		// Newest entry gets a highlight row.
		if i == 0 {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4),
				logLineHeight, color.RGBA{R: 24, G: 36, B: 52, A: 160}, false)
		}
		line := fmt.Sprintf("%s %s", e.At.Format("15:04:05"), e.Text)
		ebitenutil.DebugPrintAt(screen, line, panelX+6, y)
		y += logLineHeight
	}
}
