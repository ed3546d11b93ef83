package leave

import (
	"context"
	"log/slog"
	"time"
)

type ResetSummary struct {
	Examined int `json:"examined"`
	Reset    int `json:"reset"`
	Exempt   int `json:"exempt"`
	Failed   int `json:"failed"`
}

// RunCycleReset rolls every counter whose nextResetDate has passed into a new
// 1-year cycle: used back to 0, balance restored to the full allowance.
// Counters of reset-exempt types (Maternity Leave) are never touched.
//
// Each counter is processed independently; one failure never aborts the
// batch. Re-running on the same day is a no-op because ResetCounter is
// conditioned on next_reset_date <= now.
func RunCycleReset(ctx context.Context, store CounterStore, now time.Time) (ResetSummary, error) {
	var summary ResetSummary

	counters, err := store.ExpiredCounters(ctx, now)
	if err != nil {
		return summary, err
	}
	summary.Examined = len(counters)

	for _, counter := range counters {
		if ResetExempt(counter.LeaveType) {
			summary.Exempt++
			continue
		}
		ok, err := store.ResetCounter(ctx, counter.ID, now)
		if err != nil {
			slog.Warn("leave cycle reset failed",
				"counterId", counter.ID,
				"personId", counter.PersonID,
				"leaveType", counter.LeaveType,
				"err", err)
			summary.Failed++
			continue
		}
		if ok {
			summary.Reset++
		}
	}
	return summary, nil
}
