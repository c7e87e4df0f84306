package model

import (
	"testing"
	"time"
)

func TestStageRank_ForwardOrder(t *testing.T) {
	stages := []Stage{StageNew, StageQuestioned, StageTriaged, StageComplete}
	for i := 1; i < len(stages); i++ {
		if stages[i].Rank() <= stages[i-1].Rank() {
			t.Errorf("%q does not rank above %q", stages[i], stages[i-1])
		}
	}
	if Stage("BOGUS").Rank() >= StageNew.Rank() {
		t.Error("unknown stage must rank below NEW")
	}
}

func TestAddCategories_GrowOnlyDedup(t *testing.T) {
	c := NewClaim(time.Now().UTC())
	c.AddCategories([]string{"theft", "fire"})
	c.AddCategories([]string{"fire", "", "administrative"})

	want := []string{"theft", "fire", "administrative"}
	if len(c.IncidentCategories) != len(want) {
		t.Fatalf("categories = %v, want %v", c.IncidentCategories, want)
	}
	for i, tag := range want {
		if c.IncidentCategories[i] != tag {
			t.Errorf("categories[%d] = %q, want %q", i, c.IncidentCategories[i], tag)
		}
	}
}

func TestMarkRun_Idempotent(t *testing.T) {
	c := NewClaim(time.Now().UTC())
	c.MarkRun("theft_assistant")
	c.MarkRun("theft_assistant")
	if len(c.AgentsRun) != 1 {
		t.Errorf("agents_run = %v, want one entry", c.AgentsRun)
	}
	if !c.HasRun("theft_assistant") {
		t.Error("HasRun = false after MarkRun")
	}
}

func TestTakeFollowUps_Drains(t *testing.T) {
	c := NewClaim(time.Now().UTC())
	c.AddFollowUp(FollowUp{SpecialistID: "fire_assistant", Response: "How did the fire start?"})
	c.AddFollowUp(FollowUp{SpecialistID: "theft_assistant", Response: "Was the car locked?"})

	taken := c.TakeFollowUps()
	if len(taken) != 2 {
		t.Fatalf("taken = %d, want 2", len(taken))
	}
	if len(c.FollowUps) != 0 {
		t.Error("follow-ups not drained")
	}
	if len(c.TakeFollowUps()) != 0 {
		t.Error("second drain must be empty")
	}
}

func TestSaveSpecialistData_ReplacesLatest(t *testing.T) {
	c := NewClaim(time.Now().UTC())
	c.SaveSpecialistData("fire_assistant", `{"was_there_a_fire": true}`)
	c.SaveSpecialistData("fire_assistant", `{"was_there_a_fire": true, "fire_origin": "engine bay"}`)

	if got := c.SpecialistData["fire_assistant"]; got != `{"was_there_a_fire": true, "fire_origin": "engine bay"}` {
		t.Errorf("specialist data = %q", got)
	}
}
