package engine

import "strings"

// Field names one member of the Aggregate. Mutations report the set of
// fields they changed so the cache and stores write only those.
type Field uint8

const (
	FieldCharacter Field = 1 << iota
	FieldHabits
	FieldAchievements
	FieldUserRoles
	FieldDailyActivities
	FieldRevision
)

const AllFields = FieldCharacter | FieldHabits | FieldAchievements | FieldUserRoles | FieldDailyActivities | FieldRevision

var fieldKeys = []struct {
	field Field
	key   string
}{
	{FieldCharacter, "character"},
	{FieldHabits, "habits"},
	{FieldAchievements, "achievements"},
	{FieldUserRoles, "user_roles"},
	{FieldDailyActivities, "daily_activities"},
	{FieldRevision, "revision"},
}

func (f Field) Has(other Field) bool { return f&other == other }

// Keys returns the storage key of every field in the set, in a fixed order.
func (f Field) Keys() []string {
	var out []string
	for _, fk := range fieldKeys {
		if f.Has(fk.field) {
			out = append(out, fk.key)
		}
	}
	return out
}

func (f Field) String() string {
	if f == 0 {
		return "none"
	}
	return strings.Join(f.Keys(), ",")
}

// FieldForKey maps a storage key back to its Field.
func FieldForKey(key string) (Field, bool) {
	for _, fk := range fieldKeys {
		if fk.key == key {
			return fk.field, true
		}
	}
	return 0, false
}
