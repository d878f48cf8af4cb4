package catalog

import (
	"strings"
	"testing"
)

func TestTemplateIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, tpl := range Templates() {
		if seen[tpl.ID] {
			t.Fatalf("duplicate template id %q", tpl.ID)
		}
		seen[tpl.ID] = true
		if !tpl.Category.IsValid() {
			t.Fatalf("template %q has invalid category %q", tpl.ID, tpl.Category)
		}
		if !tpl.Frequency.IsValid() || !tpl.Difficulty.IsValid() {
			t.Fatalf("template %q has invalid frequency/difficulty", tpl.ID)
		}
		for _, st := range tpl.Subtasks {
			if st.EstimatedPomodoros < 1 {
				t.Fatalf("template %q subtask %q needs at least one pomodoro", tpl.ID, st.ID)
			}
		}
	}
}

func TestQuestsForRolesRoleIntersection(t *testing.T) {
	got := QuestsForRoles([]string{RoleEntrepreneur}, nil, 1, 0)
	if len(got) == 0 {
		t.Fatalf("expected entrepreneur quests")
	}
	for _, tpl := range got {
		if !containsString(tpl.Roles, RoleEntrepreneur) {
			t.Fatalf("template %q does not list role %q", tpl.ID, RoleEntrepreneur)
		}
		if tpl.Unlock != nil && tpl.Unlock.Level > 1 {
			t.Fatalf("template %q should be locked at level 1", tpl.ID)
		}
	}
}

func TestQuestsForRolesFitnessFilter(t *testing.T) {
	got := QuestsForRoles([]string{RoleAthlete}, []string{FitnessRunning}, 1, 0)
	ids := idSet(got)
	if !ids["fit-run"] {
		t.Fatalf("expected fit-run for runners, got %v", ids)
	}
	if ids["fit-strength"] {
		t.Fatalf("fit-strength requires gym/calisthenics")
	}
	if !ids["fit-steps"] {
		t.Fatalf("templates without fitness types should pass the fitness filter")
	}

	none := QuestsForRoles([]string{RoleAthlete}, nil, 1, 0)
	if idSet(none)["fit-run"] {
		t.Fatalf("fit-run should require a matching fitness type")
	}
}

func TestQuestsForRolesUnlockRequirement(t *testing.T) {
	if idSet(QuestsForRoles([]string{RoleDeveloper}, nil, 3, 2))["dev-side-project"] {
		t.Fatalf("dev-side-project needs streak 3")
	}
	if !idSet(QuestsForRoles([]string{RoleDeveloper}, nil, 3, 3))["dev-side-project"] {
		t.Fatalf("dev-side-project should unlock at level 3 streak 3")
	}
	if idSet(QuestsForRoles([]string{RoleDeveloper}, nil, 2, 10))["dev-side-project"] {
		t.Fatalf("dev-side-project needs level 3")
	}
}

func TestQuestsForRolesEmpty(t *testing.T) {
	if got := QuestsForRoles(nil, nil, 50, 50); len(got) != 0 {
		t.Fatalf("expected no quests without roles, got %d", len(got))
	}
	if got := QuestsForRoles([]string{"astronaut"}, nil, 1, 0); len(got) != 0 {
		t.Fatalf("expected no quests for unknown role, got %d", len(got))
	}
}

func TestQuestsForRolesCaseInsensitive(t *testing.T) {
	if len(QuestsForRoles([]string{" Student "}, nil, 1, 0)) == 0 {
		t.Fatalf("expected role matching to ignore case and spaces")
	}
}

func TestScaleQuestDifficulty(t *testing.T) {
	base, ok := Lookup("fit-run")
	if !ok {
		t.Fatalf("fit-run missing")
	}

	cases := []struct {
		streak     int
		wantTitle  string
		wantDiff   Difficulty
		wantReward int
	}{
		{0, base.Title, DifficultyBasic, base.XPReward},
		{2, base.Title, DifficultyBasic, base.XPReward},
		{3, "Advanced " + base.Title, DifficultyIntermediate, base.XPReward + 10},
		{6, "Advanced " + base.Title, DifficultyIntermediate, base.XPReward + 20},
		{7, "Elite " + base.Title, DifficultyElite, base.XPReward + 20},
		{8, "Elite " + base.Title, DifficultyElite, base.XPReward + 20},
		{9, "Elite " + base.Title, DifficultyElite, base.XPReward + 30},
	}
	for _, tc := range cases {
		got := ScaleQuestDifficulty(base, tc.streak)
		if got.Title != tc.wantTitle || got.Difficulty != tc.wantDiff || got.XPReward != tc.wantReward {
			t.Fatalf("streak %d: got (%q, %s, %d), want (%q, %s, %d)",
				tc.streak, got.Title, got.Difficulty, got.XPReward, tc.wantTitle, tc.wantDiff, tc.wantReward)
		}
	}

	if base.Title != "Morning Run" || strings.HasPrefix(base.Title, "Elite") {
		t.Fatalf("scaling must not mutate the input template")
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	a, _ := Lookup("dev-side-project")
	a.Subtasks[0].Title = "changed"
	b, _ := Lookup("dev-side-project")
	if b.Subtasks[0].Title == "changed" {
		t.Fatalf("Lookup must not expose catalog storage")
	}
}

func TestParsers(t *testing.T) {
	if ParseCategory("Coding") != CategoryTech {
		t.Fatalf("coding should map to Tech")
	}
	if ParseCategory("???") != DefaultCategory {
		t.Fatalf("unknown category should default")
	}
	if ParseFrequency("WEEKLY") != FrequencyWeekly {
		t.Fatalf("weekly parse")
	}
	if ParseDifficulty("hard") != DifficultyElite {
		t.Fatalf("hard should map to elite")
	}
}

func idSet(ts []Template) map[string]bool {
	out := map[string]bool{}
	for _, t := range ts {
		out[t.ID] = true
	}
	return out
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
