package jobs

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newRepo(t *testing.T) *Repo {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "jobs.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&Job{}))
	return &Repo{DB: gdb}
}

func TestClaimReturnsNilWhenEmpty(t *testing.T) {
	r := newRepo(t)

	job, err := r.Claim("w1")
	require.NoError(t, err)
	assert.Nil(t, job)
}

func TestEnqueueAndClaim(t *testing.T) {
	r := newRepo(t)

	require.NoError(t, r.EnqueueResync("boot", time.Now().Add(-time.Second)))

	job, err := r.Claim("w1")
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, TypeResync, job.Type)
	assert.Equal(t, "boot", job.Reason)
	assert.Equal(t, StatusRunning, job.Status)

	// already claimed: nothing left
	again, err := r.Claim("w2")
	require.NoError(t, err)
	assert.Nil(t, again)
}

func TestClaimSkipsFutureJobs(t *testing.T) {
	r := newRepo(t)

	require.NoError(t, r.EnqueueResync("periodic", time.Now().Add(time.Hour)))

	job, err := r.Claim("w1")
	require.NoError(t, err)
	assert.Nil(t, job)
}

func TestMarkDone(t *testing.T) {
	r := newRepo(t)

	require.NoError(t, r.EnqueueResync("startup", time.Now().Add(-time.Second)))
	job, err := r.Claim("w1")
	require.NoError(t, err)
	require.NotNil(t, job)

	require.NoError(t, r.MarkDone(job.ID))

	var got Job
	require.NoError(t, r.DB.First(&got, job.ID).Error)
	assert.Equal(t, StatusDone, got.Status)
}

func TestRetryLaterRequeues(t *testing.T) {
	r := newRepo(t)

	require.NoError(t, r.EnqueueResync("startup", time.Now().Add(-time.Second)))
	job, err := r.Claim("w1")
	require.NoError(t, err)
	require.NotNil(t, job)

	require.NoError(t, r.RetryLater(job.ID, 1, time.Now().Add(-time.Millisecond), "store read error"))

	again, err := r.Claim("w1")
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.Equal(t, 1, again.Attempts)
}
