package reconcile

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docrag-be/pkg/backend"
)

func TestCleanupJobRecordsEachSessionOnce(t *testing.T) {
	job := NewCleanupJob("job-1", []string{"a", "b", "a", ""})
	assert.Equal(t, "job-1", job.ID())
	assert.Equal(t, []string{"a", "b"}, job.SessionIDs())

	job.Record("a", nil)
	job.Record("a", errors.New("late duplicate"))
	job.Record("unknown", nil)

	report := job.Report()
	assert.False(t, report.Done)
	assert.Nil(t, report.FinishedAt)
	assert.Equal(t, []string{"a"}, report.Deleted)
	assert.Empty(t, report.Failed)

	job.Record("b", errors.New("404"))

	select {
	case <-job.Done():
	default:
		t.Fatal("job should be done after every session is recorded")
	}
	report = job.Report()
	assert.True(t, report.Done)
	assert.NotNil(t, report.FinishedAt)
	assert.Equal(t, []CleanupFailure{{SessionID: "b", Error: "404"}}, report.Failed)
}

func TestEmptyCleanupJobIsDone(t *testing.T) {
	job := NewCleanupJob("", nil)
	assert.NotEmpty(t, job.ID())

	report, err := job.Wait(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Done)
	assert.Zero(t, report.Total)
	assert.NotNil(t, report.Deleted)
	assert.NotNil(t, report.Failed)
}

func TestCleanupJobWaitHonorsContext(t *testing.T) {
	job := NewCleanupJob("", []string{"a"})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	report, err := job.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, report.Done)
}

func TestAsyncCleanerIsolatesFailures(t *testing.T) {
	deleter := &recordingDeleter{errs: map[string]error{"b": errors.New("500")}}

	job := NewAsyncCleaner(deleter, nil).Cleanup(context.Background(), []string{"a", "b", "c"})
	report := waitJob(t, job)

	assert.ElementsMatch(t, []string{"a", "c"}, report.Deleted)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, "b", report.Failed[0].SessionID)
	assert.Len(t, deleter.deleted, 3)
}

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name      string
		storeName string
		want      string
	}{
		{"last segment", "a/b/ClassName", "ClassName"},
		{"truncated to 15 runes", "fileSearchStores/calendario-academico-2025", "calendario-acad"},
		{"multibyte runes", "fileSearchStores/graduação-edição-especial", "graduação-ediçã"},
		{"no separator", "avulso", "avulso"},
		{"empty", "", "Chat"},
		{"trailing slash", "fileSearchStores/", "Chat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveTitle(tt.storeName))
		})
	}
}

func TestPreview(t *testing.T) {
	long := strings.Repeat("á", 50)

	assert.Equal(t, "Sem mensagens", Preview(nil))
	assert.Equal(t, "segunda", Preview([]backend.Message{{Content: "primeira"}, {Content: "segunda"}}))
	assert.Equal(t, strings.Repeat("á", 40), Preview([]backend.Message{{Content: long}}))
}
