package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"mushroom-trivia/internal/app"
	"mushroom-trivia/internal/domain"
)

func TestCharacterRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewCharacterRepository()

	mario := domain.Character{Name: "Mario", Description: "The heroic plumber."}
	if err := repo.Create(ctx, &mario); err != nil {
		t.Fatalf("create: %v", err)
	}
	if mario.ID == 0 || mario.CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamps assigned, got %+v", mario)
	}

	got, err := repo.Get(ctx, mario.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Mario" {
		t.Fatalf("expected Mario, got %q", got.Name)
	}

	got.Description = "Still a plumber."
	if err := repo.Update(ctx, &got); err != nil {
		t.Fatalf("update: %v", err)
	}

	if err := repo.Delete(ctx, mario.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, mario.ID); !errors.Is(err, domain.ErrCharacterNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestCharacterListNewestFirst(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	repo := NewCharacterRepositoryWithClock(func() time.Time {
		tick++
		return now.Add(time.Duration(tick) * time.Minute)
	})

	for _, name := range []string{"Mario", "Luigi", "Peach"} {
		c := domain.Character{Name: name, Description: name}
		if err := repo.Create(ctx, &c); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	page, total, err := repo.List(ctx, 0, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(page) != 2 {
		t.Fatalf("expected total 3 page 2, got total=%d len=%d", total, len(page))
	}
	if page[0].Name != "Peach" || page[1].Name != "Luigi" {
		t.Fatalf("expected newest first, got %q then %q", page[0].Name, page[1].Name)
	}
}

func TestHighScoreTopOrdering(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	repo := NewHighScoreRepositoryWithClock(func() time.Time {
		tick++
		return now.Add(time.Duration(tick) * time.Minute)
	})

	// Insertion order fixes the timestamps: 90@t1, 100@t2, 90@t3.
	scores := []domain.HighScore{
		{PlayerName: "Early Ninety", Score: 90, TotalQuestions: 10, CorrectAnswers: 9},
		{PlayerName: "Hundred", Score: 100, TotalQuestions: 10, CorrectAnswers: 10},
		{PlayerName: "Late Ninety", Score: 90, TotalQuestions: 10, CorrectAnswers: 9},
	}
	for i := range scores {
		if err := repo.Create(ctx, &scores[i]); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	top, err := repo.Top(ctx, 10)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	want := []string{"Hundred", "Early Ninety", "Late Ninety"}
	for i, name := range want {
		if top[i].PlayerName != name {
			t.Fatalf("rank %d: expected %s, got %s", i, name, top[i].PlayerName)
		}
	}
}

func TestHighScoreRecentOrdering(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	repo := NewHighScoreRepositoryWithClock(func() time.Time {
		tick++
		return now.Add(time.Duration(tick) * time.Minute)
	})

	for _, name := range []string{"First", "Second"} {
		s := domain.HighScore{PlayerName: name, Score: 50, TotalQuestions: 10, CorrectAnswers: 5}
		if err := repo.Create(ctx, &s); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	recent, total, err := repo.Recent(ctx, 0, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if total != 2 || recent[0].PlayerName != "Second" {
		t.Fatalf("expected most recent first, got %+v", recent)
	}
}

func TestSessionStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session not found, got %v", err)
	}

	session := &app.Session{Token: "tok-1", Questions: sampleBank(), State: app.SessionInProgress}
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Get(ctx, "tok-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.Score = 10
	// Mutating the returned copy must not leak into the store until Save.
	again, _ := store.Get(ctx, "tok-1")
	if again.Score != 0 {
		t.Fatalf("expected stored score 0, got %d", again.Score)
	}

	if err := store.Delete(ctx, "tok-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "tok-1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
