package store

import (
	"errors"
	"testing"
)

func TestAddAndGetPlan(t *testing.T) {
	s := tempStore(t)
	if err := s.AddPlan("survey", "NNNNCCRR"); err != nil {
		t.Fatalf("AddPlan: %v", err)
	}

	p, err := s.GetPlan("survey")
	if err != nil {
		t.Fatalf("GetPlan: %v", err)
	}
	if p.Name != "survey" || p.Sequence != "NNNNCCRR" {
		t.Fatalf("unexpected plan: %+v", p)
	}
	if p.CreatedAt.IsZero() {
		t.Fatal("created_at not persisted")
	}
}

func TestAddPlanReplacesExisting(t *testing.T) {
	s := tempStore(t)
	if err := s.AddPlan("survey", "NNNN"); err != nil {
		t.Fatalf("AddPlan: %v", err)
	}
	if err := s.AddPlan("survey", "HHRR"); err != nil {
		t.Fatalf("AddPlan replace: %v", err)
	}

	p, err := s.GetPlan("survey")
	if err != nil {
		t.Fatalf("GetPlan: %v", err)
	}
	if p.Sequence != "HHRR" {
		t.Fatalf("sequence %q, want replacement HHRR", p.Sequence)
	}

	plans, err := s.ListPlans()
	if err != nil {
		t.Fatalf("ListPlans: %v", err)
	}
	if len(plans) != 1 {
		t.Fatalf("got %d plans, want 1", len(plans))
	}
}

func TestGetPlanNotFound(t *testing.T) {
	s := tempStore(t)
	if _, err := s.GetPlan("absent"); !errors.Is(err, ErrPlanNotFound) {
		t.Fatalf("expected ErrPlanNotFound, got %v", err)
	}
}

func TestListPlansOrderedByName(t *testing.T) {
	s := tempStore(t)
	for _, name := range []string{"charlie", "alpha", "bravo"} {
		if err := s.AddPlan(name, "RR"); err != nil {
			t.Fatalf("AddPlan %s: %v", name, err)
		}
	}

	plans, err := s.ListPlans()
	if err != nil {
		t.Fatalf("ListPlans: %v", err)
	}
	want := []string{"alpha", "bravo", "charlie"}
	if len(plans) != len(want) {
		t.Fatalf("got %d plans, want %d", len(plans), len(want))
	}
	for i, name := range want {
		if plans[i].Name != name {
			t.Fatalf("position %d: %s, want %s", i, plans[i].Name, name)
		}
	}
}
