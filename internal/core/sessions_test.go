package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/JonMunkholm/catalog-admin/internal/view"
)

func TestSessions_CreateGet(t *testing.T) {
	m := NewSessions(view.DefaultPageSize, time.Hour)

	sess := m.Create()
	if sess.Loaded() {
		t.Error("new session should not be loaded")
	}

	got, err := m.Get(sess.ID.String())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != sess {
		t.Error("Get() returned a different session")
	}

	var pageSize int
	got.Do(func(st *view.State) { pageSize = st.PageSize() })
	if pageSize != view.DefaultPageSize {
		t.Errorf("PageSize = %d, want %d", pageSize, view.DefaultPageSize)
	}
}

func TestSessions_GetUnknown(t *testing.T) {
	m := NewSessions(5, time.Hour)

	for _, id := range []string{"", "not-a-uuid", "7f1c4c52-4b7e-4d0c-9f5e-0a8e1d2c3b4a"} {
		if _, err := m.Get(id); !errors.Is(err, ErrSessionExpired) {
			t.Errorf("Get(%q) error = %v, want ErrSessionExpired", id, err)
		}
	}
}

func TestSessions_Sweep(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewSessions(5, 30*time.Minute)
	m.now = func() time.Time { return now }

	idle := m.Create()
	active := m.Create()

	now = now.Add(20 * time.Minute)
	if _, err := m.Get(active.ID.String()); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	now = now.Add(15 * time.Minute)
	if removed := m.Sweep(); removed != 1 {
		t.Errorf("Sweep() = %d, want 1", removed)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
	if _, err := m.Get(idle.ID.String()); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("idle session still present, err = %v", err)
	}
	if _, err := m.Get(active.ID.String()); err != nil {
		t.Errorf("active session removed: %v", err)
	}
}

func TestStartSessionSweeper_StopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	sessions := NewSessions(5, time.Nanosecond)
	sessions.Create()
	svc := NewService(&fakeCatalog{}, sessions, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.StartSessionSweeper(ctx, time.Millisecond)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for sessions.Len() > 0 {
		select {
		case <-deadline:
			t.Fatal("sweeper did not remove the idle session")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	<-done
}
