package reminder

import (
	"context"
)

// Backend is the facility that actually fires timed alerts.
// Schedule overwrites any live record with the same id.
type Backend interface {
	RequestPermission(ctx context.Context) (bool, error)
	Schedule(ctx context.Context, rec Record) error
	Cancel(ctx context.Context, id string) error
	ListPending(ctx context.Context) ([]Record, error)
}

// NoopBackend serves deployments that cannot deliver reminders. Permission is
// never granted, so sweeps still classify but never schedule.
type NoopBackend struct{}

func (NoopBackend) RequestPermission(context.Context) (bool, error) { return false, nil }

func (NoopBackend) Schedule(context.Context, Record) error { return nil }

func (NoopBackend) Cancel(context.Context, string) error { return nil }

func (NoopBackend) ListPending(context.Context) ([]Record, error) { return nil, nil }
