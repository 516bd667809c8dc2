package store

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionRoundTrip(t *testing.T) {
	s := openTestStore(t)

	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	id, err := s.BeginSession("pullup", started)
	if err != nil {
		t.Fatalf("BeginSession: %v", err)
	}
	if id == 0 {
		t.Fatal("session id is zero")
	}

	reps := []Rep{
		{Time: started.Add(5 * time.Second), Score: 100},
		{Time: started.Add(12 * time.Second), Score: 75, Issues: []string{"partial_top_rom"}},
		{Time: started.Add(19 * time.Second), Score: 45, Issues: []string{"asymmetry", "partial_bottom_rom"}},
	}
	for _, r := range reps {
		if err := s.SaveRep(id, r); err != nil {
			t.Fatalf("SaveRep: %v", err)
		}
	}

	if err := s.FinishSession(id, started.Add(time.Minute), 3, 73.3); err != nil {
		t.Fatalf("FinishSession: %v", err)
	}

	got, err := s.SessionReps(id)
	if err != nil {
		t.Fatalf("SessionReps: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d reps, want 3", len(got))
	}
	for i, r := range got {
		if r.Score != reps[i].Score {
			t.Errorf("rep %d score = %d, want %d", i, r.Score, reps[i].Score)
		}
		if len(r.Issues) != len(reps[i].Issues) {
			t.Errorf("rep %d issues = %v, want %v", i, r.Issues, reps[i].Issues)
		}
	}

	sessions, err := s.RecentSessions(10)
	if err != nil {
		t.Fatalf("RecentSessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}
	sess := sessions[0]
	if sess.Exercise != "pullup" || sess.RepCount != 3 {
		t.Errorf("session = %+v", sess)
	}
	if sess.AvgScore < 73 || sess.AvgScore > 74 {
		t.Errorf("avg score = %f", sess.AvgScore)
	}
}

func TestRecentSessionsOrder(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, ex := range []string{"pullup", "jump", "pullup"} {
		if _, err := s.BeginSession(ex, base.Add(time.Duration(i)*time.Hour)); err != nil {
			t.Fatal(err)
		}
	}

	sessions, err := s.RecentSessions(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sessions))
	}
	// Newest first.
	if sessions[0].Exercise != "pullup" || sessions[1].Exercise != "jump" {
		t.Errorf("order = %s, %s", sessions[0].Exercise, sessions[1].Exercise)
	}
	if !sessions[0].Started.After(sessions[1].Started) {
		t.Error("sessions not newest-first")
	}
}

func TestInMemoryStore(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:): %v", err)
	}
	defer s.Close()

	id, err := s.BeginSession("jump", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveRep(id, Rep{Time: time.Now(), Score: 70, Issues: []string{"stiff_landing"}}); err != nil {
		t.Fatal(err)
	}
	got, err := s.SessionReps(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Score != 70 {
		t.Errorf("reps = %+v", got)
	}
}

func TestSessionRepsEmpty(t *testing.T) {
	s := openTestStore(t)
	got, err := s.SessionReps(12345)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("reps for unknown session = %+v", got)
	}
}
