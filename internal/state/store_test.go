package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/moodlog/internal/api"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	d := &Dashboard{
		User:      api.User{ID: 7, Username: "alice"},
		Notes:     []api.Note{{ID: 1}, {ID: 2}},
		Analytics: api.MoodAnalytics{"happy": 3},
	}

	before := time.Now()
	s.Update(d, nil)

	snap := s.Snapshot()
	if !snap.HasData || snap.User.ID != 7 {
		t.Fatalf("snapshot user = %#v, want id=7 HasData=true", snap.User)
	}
	if len(snap.Notes) != 2 || snap.Notes[0].ID != 1 {
		t.Fatalf("snapshot notes = %#v, want 2 items", snap.Notes)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Notes[0].ID = 999
	snap.Analytics["happy"] = 100
	snap2 := s.Snapshot()
	if snap2.Notes[0].ID != 1 {
		t.Fatalf("Snapshot should clone notes; got id %d want 1", snap2.Notes[0].ID)
	}
	if snap2.Analytics["happy"] != 3 {
		t.Fatalf("Snapshot should clone analytics; got %d want 3", snap2.Analytics["happy"])
	}

	// Mutating the caller's dashboard after Update must not leak in either.
	d.Notes[1].ID = 555
	if got := s.Snapshot().Notes[1].ID; got != 2 {
		t.Fatalf("Update should clone notes; got id %d want 2", got)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update(&Dashboard{User: api.User{ID: 1}, Notes: []api.Note{{ID: 1}}}, nil)
	prev := s.Snapshot()

	before := time.Now()
	origErr := errors.New("boom")
	s.Update(nil, origErr)

	snap := s.Snapshot()
	if snap.HasData != prev.HasData || snap.User.ID != prev.User.ID {
		t.Fatalf("user changed on error: got %#v want %#v", snap.User, prev.User)
	}
	if len(snap.Notes) != 1 || snap.Notes[0].ID != 1 {
		t.Fatalf("notes changed on error: got %#v want %#v", snap.Notes, prev.Notes)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatalf("LastError should wrap the original error")
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("zero store: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	for i, wantOffline := range []bool{false, true, true} {
		s.Update(nil, errors.New("fail"))
		snap = s.Snapshot()
		if snap.ConsecutiveFailures != i+1 {
			t.Fatalf("ConsecutiveFailures = %d, want %d", snap.ConsecutiveFailures, i+1)
		}
		if snap.IsOffline() != wantOffline {
			t.Fatalf("IsOffline() = %v after %d failures, want %v", snap.IsOffline(), i+1, wantOffline)
		}
	}

	// Success resets counter
	s.Update(&Dashboard{}, nil)
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("after success: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}
}

func TestStore_Reset(t *testing.T) {
	var s Store
	s.Update(&Dashboard{User: api.User{ID: 1}}, nil)
	s.Update(nil, errors.New("fail"))

	s.Reset()
	snap := s.Snapshot()
	if snap.HasData || snap.User.ID != 0 || snap.LastError != nil || snap.ConsecutiveFailures != 0 {
		t.Fatalf("Reset left data behind: %#v", snap)
	}
}
