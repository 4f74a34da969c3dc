package health

import "context"

// ModelChecker checks model provider availability.
type ModelChecker interface {
	HealthCheck(ctx context.Context) error
}

// StorePinger checks rate-limit store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}
