package root

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/engine"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/questgen"
)

func TestParseStep(t *testing.T) {
	cases := []struct {
		in    string
		title string
		est   int
	}{
		{"Outline", "Outline", 1},
		{"Write draft:3", "Write draft", 3},
		{"Ratio 16:9 check", "Ratio 16:9 check", 1},
	}
	for _, tc := range cases {
		got := parseStep(tc.in)
		if got.Title != tc.title || got.EstimatedPomodoros != tc.est {
			t.Fatalf("parseStep(%q) = %+v, want %q/%d", tc.in, got, tc.title, tc.est)
		}
	}
}

func TestResolveHabit(t *testing.T) {
	ctx := context.Background()
	e := engine.New(nil)
	a, _ := e.AddHabit(ctx, engine.HabitDraft{Title: "Alpha"})
	b, _ := e.AddHabit(ctx, engine.HabitDraft{Title: "Beta"})

	if h, err := resolveHabit(e, a.ID); err != nil || h.ID != a.ID {
		t.Fatalf("by id: %v %v", h.ID, err)
	}
	if h, err := resolveHabit(e, "2"); err != nil || h.ID != b.ID {
		t.Fatalf("by position: %v %v", h.ID, err)
	}
	if _, err := resolveHabit(e, "3"); err == nil {
		t.Fatalf("out of range position should fail")
	}
	if h, err := resolveHabit(e, b.ID[:8]); err != nil || h.ID != b.ID {
		t.Fatalf("by prefix: %v %v", h.ID, err)
	}
	if _, err := resolveHabit(e, "zzz-none"); err == nil {
		t.Fatalf("unknown habit should fail")
	}
}

func TestChatWithScriptedOracle(t *testing.T) {
	in := strings.NewReader("Rin\ndeveloper, athlete\nrunning\nbeginner\n1 hour\n")
	var out bytes.Buffer

	p := chat(context.Background(), in, &out, questgen.Fallback{}, questgen.Profile{})
	if p.Name != "Rin" {
		t.Fatalf("name = %q", p.Name)
	}
	if strings.Join(p.Roles, ",") != "developer,athlete" {
		t.Fatalf("roles = %v", p.Roles)
	}
	if strings.Join(p.FitnessTypes, ",") != "running" {
		t.Fatalf("fitness = %v", p.FitnessTypes)
	}
	if p.SkillLevel != "beginner" || p.TimeCommitment != "1 hour" {
		t.Fatalf("profile = %+v", p)
	}
	if len(p.Interests) == 0 {
		t.Fatalf("finalized profile should have default interests")
	}
}

func TestChatEndsOnEOF(t *testing.T) {
	var out bytes.Buffer
	p := chat(context.Background(), strings.NewReader("Rin\n"), &out, questgen.Fallback{}, questgen.Profile{})
	if p.Name != "Rin" || p.SkillLevel != questgen.DefaultSkillLevel {
		t.Fatalf("profile = %+v", p)
	}
}

func TestAddAndListCommands(t *testing.T) {
	dir := t.TempDir()
	dbPath = filepath.Join(dir, "aq.db")
	configPath = filepath.Join(dir, "aq.toml")
	offline = true
	t.Cleanup(func() { dbPath, configPath, offline = "", "", false })
	t.Setenv("AQ_LOG_FILE", filepath.Join(dir, "aq.log"))
	writeFile(t, configPath, "[remote]\nbackend = \"none\"\n")

	var out bytes.Buffer
	add := newAddCmd()
	add.SetOut(&out)
	add.SetArgs([]string{"Write essay", "-c", "academics", "-s", "Outline:2", "-s", "Draft"})
	if err := add.Execute(); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out.String(), "Write essay") {
		t.Fatalf("add output = %q", out.String())
	}

	out.Reset()
	list := newListCmd()
	list.SetOut(&out)
	list.SetArgs([]string{"--steps"})
	if err := list.Execute(); err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"Write essay", "Outline", "Draft"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("list output missing %q:\n%s", want, out.String())
		}
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestRolesAndResetCommands(t *testing.T) {
	dir := t.TempDir()
	dbPath = filepath.Join(dir, "aq.db")
	configPath = filepath.Join(dir, "aq.toml")
	offline = true
	t.Cleanup(func() { dbPath, configPath, offline = "", "", false })
	t.Setenv("AQ_LOG_FILE", filepath.Join(dir, "aq.log"))
	writeFile(t, configPath, "[remote]\nbackend = \"none\"\n")

	var out bytes.Buffer
	roles := newRolesCmd()
	roles.SetOut(&out)
	roles.SetArgs([]string{"--role", "developer,student"})
	if err := roles.Execute(); err != nil {
		t.Fatalf("roles: %v", err)
	}
	if !strings.Contains(out.String(), "developer, student") {
		t.Fatalf("roles output = %q", out.String())
	}

	reset := newResetCmd()
	reset.SetOut(&out)
	reset.SetArgs(nil)
	if err := reset.Execute(); err == nil {
		t.Fatal("reset without --yes succeeded")
	}

	reset = newResetCmd()
	reset.SetOut(&out)
	reset.SetArgs([]string{"--yes"})
	if err := reset.Execute(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	out.Reset()
	roles = newRolesCmd()
	roles.SetOut(&out)
	roles.SetArgs(nil)
	if err := roles.Execute(); err != nil {
		t.Fatalf("roles: %v", err)
	}
	if strings.Contains(out.String(), "developer") {
		t.Fatalf("roles survived reset: %q", out.String())
	}
}
