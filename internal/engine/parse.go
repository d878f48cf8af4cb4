package engine

import "strings"

// ParseStat parses user input to a Stat.
// Supported: int/intelligence, str/strength, dex/dexterity, cha/charisma, wis/wisdom.
// Unrecognized input returns "" which GainXP treats as "no stat".
func ParseStat(input string) Stat {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "int", "intelligence":
		return StatIntelligence
	case "str", "strength":
		return StatStrength
	case "dex", "dexterity":
		return StatDexterity
	case "cha", "charisma":
		return StatCharisma
	case "wis", "wisdom":
		return StatWisdom
	default:
		return ""
	}
}
