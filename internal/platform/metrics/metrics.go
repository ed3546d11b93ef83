package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps cheap process-wide HTTP counters plus totals for the leave
// workflow. All counters are monotonically increasing.
type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	clientErrors    uint64
	totalDurationMs uint64

	leaveApplied  uint64
	leaveApproved uint64
	leaveRejected uint64
	countersReset uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	} else if status >= 400 {
		atomic.AddUint64(&c.clientErrors, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) LeaveApplied()  { atomic.AddUint64(&c.leaveApplied, 1) }
func (c *Collector) LeaveApproved() { atomic.AddUint64(&c.leaveApproved, 1) }
func (c *Collector) LeaveRejected() { atomic.AddUint64(&c.leaveRejected, 1) }

func (c *Collector) CountersReset(n int) {
	if n > 0 {
		atomic.AddUint64(&c.countersReset, uint64(n))
	}
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":      total,
		"errorsTotal":        atomic.LoadUint64(&c.errorRequests),
		"clientErrorsTotal":  atomic.LoadUint64(&c.clientErrors),
		"avgDurationMs":      avg,
		"leaveAppliedTotal":  atomic.LoadUint64(&c.leaveApplied),
		"leaveApprovedTotal": atomic.LoadUint64(&c.leaveApproved),
		"leaveRejectedTotal": atomic.LoadUint64(&c.leaveRejected),
		"countersResetTotal": atomic.LoadUint64(&c.countersReset),
	}
}
