// Package progress tracks a player's unlocked levels and best times for one
// level pack. It is pure bookkeeping; storage persists it.
package progress

import "fmt"

// Progress is the per-pack player record.
type Progress struct {
	BestTimes []int // Milliseconds per level, 0 = not yet cleared
	MaxLevel  int   // Highest unlocked level, 0-based
}

// New returns an empty record for a pack with levelCount levels.
func New(levelCount int) *Progress {
	return &Progress{BestTimes: make([]int, levelCount)}
}

// LevelCount returns the number of levels tracked.
func (p *Progress) LevelCount() int {
	return len(p.BestTimes)
}

// Unlocked reports whether a level may be played.
func (p *Progress) Unlocked(level int) bool {
	return level >= 0 && level < len(p.BestTimes) && level <= p.MaxLevel
}

// Best returns the best time for a level, 0 if none.
func (p *Progress) Best(level int) int {
	if level < 0 || level >= len(p.BestTimes) {
		return 0
	}
	return p.BestTimes[level]
}

// Complete records a clear of level in millis milliseconds. Clearing the
// highest unlocked level unlocks the next one. Returns true if millis is a new
// best time for the level.
func (p *Progress) Complete(level, millis int) bool {
	if level < 0 || level >= len(p.BestTimes) {
		return false
	}

	if level == p.MaxLevel && level+1 < len(p.BestTimes) {
		p.MaxLevel++
	}

	if millis <= 0 {
		millis = 1
	}
	if p.BestTimes[level] == 0 || millis < p.BestTimes[level] {
		p.BestTimes[level] = millis
		return true
	}
	return false
}

// Normalize repairs a record loaded from storage: the slice is resized to
// levelCount, MaxLevel is clamped, and if the highest unlocked level already
// has a time the next level is unlocked too.
func (p *Progress) Normalize(levelCount int) {
	switch {
	case len(p.BestTimes) < levelCount:
		p.BestTimes = append(p.BestTimes, make([]int, levelCount-len(p.BestTimes))...)
	case len(p.BestTimes) > levelCount:
		p.BestTimes = p.BestTimes[:levelCount]
	}

	if p.MaxLevel < 0 {
		p.MaxLevel = 0
	}
	if p.MaxLevel > levelCount-1 {
		p.MaxLevel = max(levelCount-1, 0)
	}

	if levelCount > 0 && p.BestTimes[p.MaxLevel] != 0 && p.MaxLevel < levelCount-1 {
		p.MaxLevel++
	}
}

// Cleared returns the number of levels with a recorded time.
func (p *Progress) Cleared() int {
	n := 0
	for _, ms := range p.BestTimes {
		if ms > 0 {
			n++
		}
	}
	return n
}

// Total returns the sum of all recorded best times.
func (p *Progress) Total() int {
	total := 0
	for _, ms := range p.BestTimes {
		total += ms
	}
	return total
}

// FormatTime renders milliseconds as seconds with a three digit fraction,
// e.g. 12345 -> "12.345". Zero renders as "-".
func FormatTime(millis int) string {
	if millis <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d.%03d", millis/1000, millis%1000)
}
