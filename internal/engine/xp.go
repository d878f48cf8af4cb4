package engine

import (
	"math"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/catalog"
)

const (
	// BaseXPToNext is the threshold for leaving level 1.
	BaseXPToNext = 100

	// Thresholds grow by 1.2x per level, floored. Kept as a ratio so the
	// floor is exact integer arithmetic.
	xpGrowthNum = 6
	xpGrowthDen = 5

	// SubtaskXP is the flat reward for finishing one subtask.
	SubtaskXP = 10
)

// NextXPThreshold returns floor(current * 1.2), strictly larger than current
// until it saturates at math.MaxInt.
func NextXPThreshold(current int) int {
	if current < 1 {
		return BaseXPToNext
	}
	if current > math.MaxInt/xpGrowthNum {
		return math.MaxInt
	}
	next := current * xpGrowthNum / xpGrowthDen
	if next <= current {
		next = current + 1
	}
	return next
}

// CategoryStat maps a habit category to the stat that grows with it.
func CategoryStat(c catalog.Category) Stat {
	switch c {
	case catalog.CategoryAcademics, catalog.CategoryTech:
		return StatIntelligence
	case catalog.CategoryBusiness, catalog.CategoryContent:
		return StatCharisma
	case catalog.CategoryFitness:
		return StatStrength
	case catalog.CategoryPersonal:
		return StatWisdom
	default:
		return DefaultStat
	}
}

type LevelResult struct {
	XPGained     int
	LevelBefore  int
	LevelAfter   int
	LevelsGained int
	Stat         Stat
}

func (r LevelResult) LevelUp() bool { return r.LevelsGained > 0 }

// applyXP adds amount to the character and levels up as many times as the
// pool allows. Each level gained adds one point to stat when stat is valid.
// After it returns, 0 <= c.XP < c.XPToNext.
func applyXP(c *Character, amount int, stat Stat) LevelResult {
	if amount < 0 {
		amount = 0
	}
	if c.Level < 1 {
		c.Level = 1
	}
	if c.XPToNext < 1 {
		c.XPToNext = BaseXPToNext
	}
	if c.XP < 0 {
		c.XP = 0
	}

	res := LevelResult{XPGained: amount, LevelBefore: c.Level, Stat: stat}
	if amount > math.MaxInt-c.XP {
		amount = math.MaxInt - c.XP
		res.XPGained = amount
	}
	c.XP += amount
	for c.XP >= c.XPToNext {
		c.XP -= c.XPToNext
		c.Level++
		c.XPToNext = NextXPThreshold(c.XPToNext)
		if stat.IsValid() {
			c.Stats.add(stat, 1)
		}
	}
	res.LevelAfter = c.Level
	res.LevelsGained = res.LevelAfter - res.LevelBefore
	return res
}

// DefaultCharacter is the character created on first load.
func DefaultCharacter() Character {
	return Character{
		Name:     "Adventurer",
		Level:    1,
		XP:       0,
		XPToNext: BaseXPToNext,
		Class:    "Novice",
		Stats: Stats{
			Intelligence: 10,
			Strength:     10,
			Dexterity:    10,
			Charisma:     10,
			Wisdom:       10,
		},
	}
}
