package coursestore

import (
	"context"
	"testing"
	"time"
)

func TestMemory_UpdateStrictlyIncreasesWithFrozenClock(t *testing.T) {
	frozen := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return frozen }
	ctx := context.Background()

	c, err := m.Create(ctx, CreateInput{Title: "T"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	title := "U"
	u1, err := m.Update(ctx, c.ID.Hex(), UpdateInput{Title: &title})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	u2, err := m.Update(ctx, c.ID.Hex(), UpdateInput{Title: &title})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !u1.UpdatedAt.After(c.UpdatedAt) || !u2.UpdatedAt.After(u1.UpdatedAt) {
		t.Errorf("UpdatedAt not strictly increasing: %v, %v, %v", c.UpdatedAt, u1.UpdatedAt, u2.UpdatedAt)
	}
}

func TestMemory_ReturnsCopies(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	desc := "original"

	c, err := m.Create(ctx, CreateInput{Title: "T", Description: &desc})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	*c.Description = "mutated"

	got, err := m.GetByID(ctx, c.ID.Hex())
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if *got.Description != "original" {
		t.Errorf("store state leaked through returned pointer: %q", *got.Description)
	}
}
