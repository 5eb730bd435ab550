package runner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterJobAndRunImmediately(t *testing.T) {
	r, err := NewRunner()
	require.NoError(t, err)
	defer r.Stop(context.Background())

	ran := 0
	require.NoError(t, r.RegisterJob("manual", "", func() { ran++ }))

	require.NoError(t, r.RunJobImmediately("manual"))
	assert.Equal(t, 1, ran)

	assert.Error(t, r.RunJobImmediately("unknown"))
}

func TestRegisterJobRejectsDuplicates(t *testing.T) {
	r, err := NewRunner()
	require.NoError(t, err)
	defer r.Stop(context.Background())

	require.NoError(t, r.RegisterJob("sweep", "", func() {}))
	assert.ErrorIs(t, r.RegisterJob("sweep", "", func() {}), ErrJobAlreadyExists)
}

func TestRegisterJobWithCronSchedule(t *testing.T) {
	r, err := NewRunner()
	require.NoError(t, err)
	defer r.Stop(context.Background())

	require.NoError(t, r.RegisterJob("scheduled", "0 */10 * * * *", func() {}))

	// Next run times are only computed once the scheduler is running.
	r.Start()

	next, err := r.GetNextRunTime("scheduled")
	require.NoError(t, err)
	assert.False(t, next.IsZero())
}

func TestRegisterJobBadCron(t *testing.T) {
	r, err := NewRunner()
	require.NoError(t, err)
	defer r.Stop(context.Background())

	assert.ErrorIs(t, r.RegisterJob("broken", "not a cron", func() {}), ErrFailedToCreateJob)
}
