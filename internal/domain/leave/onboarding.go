package leave

import (
	"context"
	"log/slog"
	"time"
)

// InitializeCounters opens the default entitlement counters for a freshly
// onboarded person. The first cycle starts on the onboarding date and runs
// for one year.
//
// Creation is best-effort per type: a counter that already exists is skipped
// silently, and a failure on one type does not stop the rest of the batch.
func InitializeCounters(ctx context.Context, store CounterStore, personID string, onboardingDate time.Time) (int, error) {
	start := DateOnly(onboardingDate)
	next := start.AddDate(1, 0, 0)

	created := 0
	var lastErr error
	for _, entitlement := range DefaultEntitlements {
		ok, err := store.CreateCounter(ctx, Counter{
			PersonID:       personID,
			LeaveType:      entitlement.LeaveType,
			TotalAllowed:   entitlement.Days,
			Used:           0,
			Balance:        entitlement.Days,
			CycleStartDate: start,
			NextResetDate:  next,
		})
		if err != nil {
			slog.Warn("leave counter init failed",
				"personId", personID,
				"leaveType", entitlement.LeaveType,
				"err", err)
			lastErr = err
			continue
		}
		if ok {
			created++
		}
	}
	return created, lastErr
}

// InitializeCounters is the service-level form used by onboarding callers.
func (s *Service) InitializeCounters(ctx context.Context, personID string, onboardingDate time.Time) (int, error) {
	return InitializeCounters(ctx, s.Counters, personID, onboardingDate)
}
