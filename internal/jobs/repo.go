package jobs

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repo struct {
	DB *gorm.DB
}

// EnqueueResync queues a full geofence reconciliation to run at runAt.
func (r *Repo) EnqueueResync(reason string, runAt time.Time) error {
	j := Job{
		Type:   TypeResync,
		Reason: reason,
		RunAt:  runAt,
		Status: StatusPending,
	}
	return r.DB.Create(&j).Error
}

// Claim picks one due job and marks it RUNNING. The claim is a plain
// read-then-conditional-update inside a transaction so it works on both
// SQLite (which serializes writers anyway) and Postgres. Returns nil when
// nothing is due.
func (r *Repo) Claim(workerID string) (*Job, error) {
	var job Job
	claimed := false

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		// requeue jobs whose worker died mid-run
		stale := now.Add(-5 * time.Minute)
		tx.Model(&Job{}).
			Where("status = ? AND locked_at IS NOT NULL AND locked_at < ?", StatusRunning, stale).
			Updates(map[string]any{"status": StatusPending, "locked_by": nil, "locked_at": nil})

		err := tx.Where("status = ? AND run_at <= ?", StatusPending, now).
			Order("run_at asc").
			First(&job).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		res := tx.Model(&Job{}).
			Where("id = ? AND status = ?", job.ID, StatusPending).
			Updates(map[string]any{"status": StatusRunning, "locked_by": workerID, "locked_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// lost the race to another worker
			return nil
		}
		claimed = true
		job.Status = StatusRunning
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, nil
	}
	return &job, nil
}

func (r *Repo) MarkDone(id uint64) error {
	return r.DB.Model(&Job{}).Where("id = ?", id).
		Update("status", StatusDone).Error
}

func (r *Repo) MarkFailed(id uint64, errMsg string) error {
	return r.DB.Model(&Job{}).Where("id = ?", id).
		Updates(map[string]any{"status": StatusFailed, "last_error": errMsg}).Error
}

func (r *Repo) RetryLater(id uint64, attempts int, runAt time.Time, errMsg string) error {
	return r.DB.Model(&Job{}).Where("id = ?", id).
		Updates(map[string]any{
			"status":     StatusPending,
			"attempts":   attempts,
			"run_at":     runAt,
			"locked_by":  nil,
			"locked_at":  nil,
			"last_error": errMsg,
		}).Error
}
