package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"repair/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type MockProber struct{ mock.Mock }

func (m *MockProber) Probe(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockProber) PrimaryDown() bool {
	return m.Called().Bool(0)
}

type MockJob struct{ mock.Mock }

func (m *MockJob) Start() error { return m.Called().Error(0) }

func (m *MockJob) Stop() { m.Called() }

func TestCodeStoreProbeJob_Run_SkipsHealthyPrimary(t *testing.T) {
	prober := new(MockProber)
	prober.On("PrimaryDown").Return(false).Once()

	jobs.NewCodeStoreProbeJob(prober, "", time.Second, discard).Run()

	prober.AssertNotCalled(t, "Probe", mock.Anything)
}

func TestCodeStoreProbeJob_Run_ProbesDownPrimary(t *testing.T) {
	prober := new(MockProber)
	prober.On("PrimaryDown").Return(true).Twice()
	prober.On("Probe", mock.Anything).Return(errors.New("still down")).Once()
	prober.On("Probe", mock.Anything).Return(nil).Once()

	job := jobs.NewCodeStoreProbeJob(prober, "", time.Second, discard)
	job.Run()
	job.Run()

	prober.AssertExpectations(t)
}

func TestCodeStoreProbeJob_Start_InvalidSchedule(t *testing.T) {
	job := jobs.NewCodeStoreProbeJob(new(MockProber), "not a schedule", time.Second, discard)
	assert.Error(t, job.Start())
}

func TestCodeStoreProbeJob_StartStop(t *testing.T) {
	prober := new(MockProber)
	prober.On("PrimaryDown").Return(false).Maybe()

	job := jobs.NewCodeStoreProbeJob(prober, "@every 1h", time.Second, discard)
	require.NoError(t, job.Start())
	job.Stop()
}

func TestJobManager_StartAll_StopsStartedJobsOnFailure(t *testing.T) {
	first := new(MockJob)
	first.On("Start").Return(nil).Once()
	first.On("Stop").Return().Once()

	second := new(MockJob)
	second.On("Start").Return(errors.New("bad schedule")).Once()

	err := jobs.NewJobManager(discard, first, second).StartAll()

	require.Error(t, err)
	first.AssertExpectations(t)
	second.AssertNotCalled(t, "Stop")
}

func TestJobManager_StopAll(t *testing.T) {
	first := new(MockJob)
	second := new(MockJob)
	first.On("Start").Return(nil).Once()
	second.On("Start").Return(nil).Once()
	first.On("Stop").Return().Once()
	second.On("Stop").Return().Once()

	jm := jobs.NewJobManager(discard, first, second)
	require.NoError(t, jm.StartAll())
	jm.StopAll()

	first.AssertExpectations(t)
	second.AssertExpectations(t)
}
