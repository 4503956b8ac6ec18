package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"mushroom-trivia/internal/app"
	"mushroom-trivia/internal/domain"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewSessionStore(client, time.Minute)
	ctx := context.Background()

	session := &app.Session{
		Token:     "tok-1",
		Questions: sampleBank(),
		Score:     10,
		State:     app.SessionInProgress,
	}
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !mr.Exists("trivia:session:tok-1") {
		t.Fatalf("expected redis key to be set")
	}

	got, err := store.Get(ctx, "tok-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Score != 10 || got.State != app.SessionInProgress || len(got.Questions) != 2 {
		t.Fatalf("session did not round-trip: %+v", got)
	}

	if err := store.Delete(ctx, "tok-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "tok-1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestSessionStoreExpiry(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewSessionStore(client, time.Second)
	ctx := context.Background()

	session := &app.Session{Token: "tok-2", Questions: sampleBank(), State: app.SessionInProgress}
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}

	mr.FastForward(2 * time.Second)

	if _, err := store.Get(ctx, "tok-2"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected expired session to read as not found, got %v", err)
	}
}
