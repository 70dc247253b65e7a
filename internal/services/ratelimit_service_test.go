package services

import (
	"context"
	"testing"
	"time"

	"khola-chithi/engine/internal/constants"
	"khola-chithi/engine/internal/db/repositories"
	"khola-chithi/engine/internal/models/entities"
)

func newRateLimitFixture(t *testing.T, now time.Time) (*RateLimitService, *repositories.LetterRepository) {
	t.Helper()

	docs := newTestStore(t)
	letters := repositories.NewLetterRepository(context.Background(), docs)
	svc := NewRateLimitService(letters)
	svc.now = fixedClock(now)
	return svc, letters
}

func sendLetterAt(t *testing.T, letters *repositories.LetterRepository, authorID string, at time.Time) {
	t.Helper()

	_, err := letters.Add(context.Background(), entities.Letter{
		AuthorID: authorID,
		Subject:  "hello",
		Body:     "body",
		Status:   entities.LetterPending,
		DateSent: at,
	})
	if err != nil {
		t.Fatalf("Failed to add letter: %v", err)
	}
}

func TestLettersSentInWindow(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	svc, letters := newRateLimitFixture(t, now)

	sendLetterAt(t, letters, "u1", now.Add(-time.Hour))
	sendLetterAt(t, letters, "u1", now.Add(-23*time.Hour))
	sendLetterAt(t, letters, "u1", now.Add(-25*time.Hour)) // outside window
	sendLetterAt(t, letters, "u2", now.Add(-time.Hour))    // other author

	if got := svc.LettersSentInWindow("u1", 24*time.Hour); got != 2 {
		t.Errorf("Expected 2 letters in window, got %d", got)
	}
}

func TestLettersSentInWindow_BoundaryInclusive(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	svc, letters := newRateLimitFixture(t, now)

	sendLetterAt(t, letters, "u1", now.Add(-24*time.Hour)) // exactly on the edge
	sendLetterAt(t, letters, "u1", now)

	if got := svc.LettersSentInWindow("u1", 24*time.Hour); got != 2 {
		t.Errorf("Expected boundary letters counted, got %d", got)
	}
}

func TestLettersSentInWindow_DefaultWindow(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	svc, letters := newRateLimitFixture(t, now)

	sendLetterAt(t, letters, "u1", now.Add(-time.Hour))
	sendLetterAt(t, letters, "u1", now.Add(-30*time.Hour))

	if got := svc.LettersSentInWindow("u1", 0); got != 1 {
		t.Errorf("Expected default window to count 1, got %d", got)
	}
}

func TestLetterQuota(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	svc, letters := newRateLimitFixture(t, now)

	sendLetterAt(t, letters, "u1", now.Add(-time.Hour))

	quota := svc.LetterQuota("u1")
	if quota.SentInWindow != 1 {
		t.Errorf("Expected 1 sent, got %d", quota.SentInWindow)
	}
	if quota.Cap != constants.LetterWindowCap {
		t.Errorf("Expected cap %d, got %d", constants.LetterWindowCap, quota.Cap)
	}
	if !quota.WindowEnds.Equal(now.Add(constants.LetterWindow)) {
		t.Errorf("Unexpected window end %v", quota.WindowEnds)
	}
}

func TestCanPostMemory(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	svc, _ := newRateLimitFixture(t, now)

	cases := []struct {
		name     string
		lastPost *time.Time
		want     bool
	}{
		{"never posted", nil, true},
		{"posted yesterday", ptrTime(now.Add(-24 * time.Hour)), false},
		{"exactly seven days", ptrTime(now.Add(-constants.MemoryCooldown)), true},
		{"just under seven days", ptrTime(now.Add(-constants.MemoryCooldown + time.Minute)), false},
		{"well past cooldown", ptrTime(now.Add(-30 * 24 * time.Hour)), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := &entities.User{LastMemoryPostDate: tc.lastPost}
			if got := svc.CanPostMemory(u); got != tc.want {
				t.Errorf("Expected %v, got %v", tc.want, got)
			}
		})
	}
}
