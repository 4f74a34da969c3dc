package health

import (
	"context"
	"errors"
	"testing"
)

type mockChecker struct{ err error }

func (m *mockChecker) HealthCheck(_ context.Context) error { return m.err }

type mockPinger struct{ err error }

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockChecker{}, &mockPinger{})

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("status = %q, expected %q", report.Status, Healthy)
	}
	if report.Checks["model"] != CheckOK || report.Checks["ratelimit_store"] != CheckOK {
		t.Errorf("checks = %v", report.Checks)
	}
}

func TestCheck_ModelDown(t *testing.T) {
	svc := New(&mockChecker{err: errors.New("provider down")}, &mockPinger{})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("status = %q, expected %q", report.Status, Degraded)
	}
	if report.Checks["model"] != CheckError {
		t.Errorf("model check = %q", report.Checks["model"])
	}
	if report.Checks["ratelimit_store"] != CheckOK {
		t.Errorf("store check = %q", report.Checks["ratelimit_store"])
	}
}

func TestCheck_StoreDown(t *testing.T) {
	svc := New(&mockChecker{}, &mockPinger{err: errors.New("redis down")})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("status = %q, expected %q", report.Status, Degraded)
	}
	if report.Checks["ratelimit_store"] != CheckError {
		t.Errorf("store check = %q", report.Checks["ratelimit_store"])
	}
}

func TestCheck_NilCheckersSkipped(t *testing.T) {
	svc := New(nil, nil)

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("status = %q, expected %q", report.Status, Healthy)
	}
	if len(report.Checks) != 0 {
		t.Errorf("checks = %v, expected none", report.Checks)
	}
}

func TestCheck_StoreOptional(t *testing.T) {
	svc := New(&mockChecker{}, nil)

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("status = %q", report.Status)
	}
	if _, ok := report.Checks["ratelimit_store"]; ok {
		t.Error("store check should be absent when no store is configured")
	}
}
