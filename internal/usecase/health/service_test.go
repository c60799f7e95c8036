package health

import (
	"context"
	"errors"
	"testing"
	"time"
)

// --- Mocks ---

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type mockIndexChecker struct {
	exists bool
	err    error
	calls  int
}

func (m *mockIndexChecker) IndexExists(_ context.Context) (bool, error) {
	m.calls++
	return m.exists, m.err
}

type mockEnsurer struct {
	err   error
	calls int
}

func (m *mockEnsurer) EnsureIndex(_ context.Context) error {
	m.calls++
	return m.err
}

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockPinger{}, &mockIndexChecker{exists: true})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if !r.SearchConnected {
		t.Error("expected search connected")
	}
	if r.Checks["search"] != CheckOK || r.Checks["index"] != CheckOK {
		t.Errorf("unexpected checks: %v", r.Checks)
	}
}

func TestCheck_SearchDown(t *testing.T) {
	idx := &mockIndexChecker{exists: true}
	svc := New(&mockPinger{err: errors.New("conn refused")}, idx)
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.SearchConnected {
		t.Error("expected search disconnected")
	}
	if r.Checks["search"] != CheckError {
		t.Errorf("expected search %q, got %q", CheckError, r.Checks["search"])
	}
	if idx.calls != 0 {
		t.Error("index must not be checked without a connection")
	}
	if _, ok := r.Checks["index"]; ok {
		t.Error("index check should be absent when search is down")
	}
}

func TestCheck_IndexMissing(t *testing.T) {
	svc := New(&mockPinger{}, &mockIndexChecker{exists: false})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if !r.SearchConnected {
		t.Error("expected search connected")
	}
	if r.Checks["index"] != CheckMissing {
		t.Errorf("expected index %q, got %q", CheckMissing, r.Checks["index"])
	}
}

func TestCheck_MissingIndexIsCreated(t *testing.T) {
	ens := &mockEnsurer{}
	svc := New(&mockPinger{}, &mockIndexChecker{exists: false}).WithEnsurer(ens)
	r := svc.Check(context.Background())

	if ens.calls != 1 {
		t.Errorf("expected 1 ensure call, got %d", ens.calls)
	}
	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["index"] != CheckOK {
		t.Errorf("expected index %q, got %q", CheckOK, r.Checks["index"])
	}
}

func TestCheck_MissingIndexEnsureFails(t *testing.T) {
	ens := &mockEnsurer{err: errors.New("READONLY")}
	svc := New(&mockPinger{}, &mockIndexChecker{exists: false}).WithEnsurer(ens)
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["index"] != CheckMissing {
		t.Errorf("expected index %q, got %q", CheckMissing, r.Checks["index"])
	}
}

func TestCheck_ExistingIndexSkipsEnsure(t *testing.T) {
	ens := &mockEnsurer{}
	svc := New(&mockPinger{}, &mockIndexChecker{exists: true}).WithEnsurer(ens)
	svc.Check(context.Background())

	if ens.calls != 0 {
		t.Errorf("expected no ensure call, got %d", ens.calls)
	}
}

func TestCheck_IndexError(t *testing.T) {
	svc := New(&mockPinger{}, &mockIndexChecker{err: errors.New("timeout")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["index"] != CheckError {
		t.Errorf("expected index %q, got %q", CheckError, r.Checks["index"])
	}
}

func TestCheck_NoIndexChecker(t *testing.T) {
	svc := New(&mockPinger{}, nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks["index"]; ok {
		t.Error("index check should be absent when checker is nil")
	}
}

func TestCheck_TimestampUTC(t *testing.T) {
	svc := New(&mockPinger{}, nil)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("BST", 3600))
	svc.now = func() time.Time { return fixed }

	r := svc.Check(context.Background())
	if !r.Timestamp.Equal(fixed) || r.Timestamp.Location() != time.UTC {
		t.Errorf("expected UTC timestamp, got %v", r.Timestamp)
	}
}
