package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/soul-abducter-glitch/Store-3D/internal/bridge"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	jobs := []bridge.Job{{JobID: "J1"}, {JobID: "J2"}}

	before := time.Now()
	s.Update(jobs, nil)

	snap := s.Snapshot()
	if len(snap.Jobs) != 2 || snap.Jobs[0].JobID != "J1" {
		t.Fatalf("snapshot jobs = %#v, want 2 jobs starting with J1", snap.Jobs)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Jobs[0].JobID = "mutated"
	snap2 := s.Snapshot()
	if snap2.Jobs[0].JobID != "J1" {
		t.Fatalf("Snapshot should clone jobs; got %q want J1", snap2.Jobs[0].JobID)
	}
}

func TestStore_UpdateErrorKeepsPreviousJobs(t *testing.T) {
	var s Store

	s.Update([]bridge.Job{{JobID: "J1"}}, nil)

	before := time.Now()
	origErr := errors.New("boom")
	s.Update(nil, origErr)

	snap := s.Snapshot()
	if len(snap.Jobs) != 1 || snap.Jobs[0].JobID != "J1" {
		t.Fatalf("jobs changed on error: got %#v want J1", snap.Jobs)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_SuccessClearsError(t *testing.T) {
	var s Store

	s.Update(nil, errors.New("fail"))
	s.Update([]bridge.Job{{JobID: "J1"}}, nil)

	snap := s.Snapshot()
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil after successful update", snap.LastError)
	}
	if len(snap.Jobs) != 1 {
		t.Fatalf("jobs = %#v, want 1 job", snap.Jobs)
	}
}
