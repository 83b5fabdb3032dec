package scheduler

import (
	"testing"

	"ecoride-backend/internal/config"
	"ecoride-backend/internal/jobs"

	"github.com/stretchr/testify/assert"
)

func TestNewScheduler(t *testing.T) {
	t.Run("Registers the lifecycle job", func(t *testing.T) {
		cfg := config.Default()
		cfg.Scheduler.CompleteFinishedReservations = "0 0 1 * * *"
		s := NewScheduler(jobs.NewJobRunner(&jobs.Services{}, nil, &cfg))

		assert.True(t, s.IsRunning())
		assert.True(t, s.NextRun().IsZero())

		s.Start()
		defer s.Stop()
		next := s.NextRun()
		assert.False(t, next.IsZero())
		assert.Equal(t, 1, next.Hour())
		assert.Equal(t, 0, next.Minute())
	})

	t.Run("Unparseable schedule is skipped", func(t *testing.T) {
		cfg := config.Default()
		cfg.Scheduler.CompleteFinishedReservations = "every full moon"
		s := NewScheduler(jobs.NewJobRunner(&jobs.Services{}, nil, &cfg))

		assert.False(t, s.IsRunning())
	})
}
