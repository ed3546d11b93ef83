package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"internhr/internal/domain/leave"
	"internhr/internal/platform/config"
	"internhr/internal/platform/querier"
)

const JobCycleReset = "leave_cycle_reset"

type Service struct {
	DB       querier.Querier
	Cfg      config.Config
	Counters leave.CounterStore

	queue     chan job
	loc       *time.Location
	resetHour int
	resetMin  int
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

func New(db querier.Querier, cfg config.Config, counters leave.CounterStore) (*Service, error) {
	loc, err := time.LoadLocation(cfg.ResetTimezone)
	if err != nil {
		return nil, fmt.Errorf("load reset timezone: %w", err)
	}
	hour, minute, err := cfg.ResetClock()
	if err != nil {
		return nil, err
	}
	return &Service{
		DB:        db,
		Cfg:       cfg,
		Counters:  counters,
		queue:     make(chan job, 128),
		loc:       loc,
		resetHour: hour,
		resetMin:  minute,
	}, nil
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	go s.scheduleDailyReset(ctx)
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType)
	}
}

// RunNow executes the job inline, still recording a job_runs row. Used by the
// admin endpoint to trigger a reset outside the schedule.
func (s *Service) RunNow(ctx context.Context, jobType string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, Run: run})
}

func (s *Service) RunCycleResetNow(ctx context.Context) (any, error) {
	return s.RunNow(ctx, JobCycleReset, func(ctx context.Context) (any, error) {
		return leave.RunCycleReset(ctx, s.Counters, time.Now().In(s.loc))
	})
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	runID := ""
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO job_runs (job_type, status)
    VALUES ($1, $2)
    RETURNING id
  `, j.Type, "running").Scan(&runID); err != nil {
		slog.Warn("job run insert failed", "err", err)
	}

	details, err := j.Run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	detailsJSON, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		slog.Warn("job details marshal failed", "err", marshalErr)
		detailsJSON = []byte("{}")
	}
	if runID != "" {
		if _, updErr := s.DB.Exec(ctx, `
      UPDATE job_runs
      SET status = $1, details_json = $2, completed_at = now()
      WHERE id = $3
    `, status, detailsJSON, runID); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	return details, err
}

// NextRunAt returns the next wall-clock occurrence of hour:minute in loc at or
// after now. DST gaps are absorbed by time.Date normalization.
func NextRunAt(now time.Time, loc *time.Location, hour, minute int) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func (s *Service) scheduleDailyReset(ctx context.Context) {
	for {
		next := NextRunAt(time.Now(), s.loc, s.resetHour, s.resetMin)
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		s.Enqueue(JobCycleReset, func(ctx context.Context) (any, error) {
			return leave.RunCycleReset(ctx, s.Counters, time.Now().In(s.loc))
		})
	}
}
