package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskbot-backend/internal/detect/domain"
	tododomain "taskbot-backend/internal/todo/domain"
	"taskbot-backend/pkg/ai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClassifier struct {
	det   *ai.Detection
	err   error
	calls int
}

func (s *stubClassifier) ClassifyMessage(_ context.Context, _, _ string) (*ai.Detection, error) {
	s.calls++
	return s.det, s.err
}

// Wednesday, 2025-06-11 10:00 UTC
var fixedNow = time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC)

func newTestDetector(stub *stubClassifier) *Detector {
	d := NewDetector(stub, domain.DefaultPolicy())
	d.nowFn = func() time.Time { return fixedNow }
	return d
}

func TestDetectSkipsNonTaskText(t *testing.T) {
	stub := &stubClassifier{det: &ai.Detection{IsTask: true, Confidence: 0.9}}
	d := newTestDetector(stub)

	cand := d.Detect(context.Background(), "nice weather out there", "general")
	assert.Nil(t, cand)
	// Keyword gate short-circuits before any provider call
	assert.Equal(t, 0, stub.calls)
}

func TestDetectBuildsCandidate(t *testing.T) {
	stub := &stubClassifier{det: &ai.Detection{
		IsTask:     true,
		Confidence: 0.85,
		Title:      "Fix checkout crash",
		TaskType:   "bug",
		Priority:   "high",
	}}
	d := newTestDetector(stub)

	cand := d.Detect(context.Background(), "@john please fix the checkout crash by tomorrow", "payments")
	require.NotNil(t, cand)

	assert.Equal(t, "Fix checkout crash", cand.Title)
	assert.Equal(t, tododomain.TaskTypeBug, cand.TaskType)
	assert.Equal(t, tododomain.PriorityHigh, cand.Priority)
	assert.Equal(t, 0.85, cand.Confidence)
	assert.Equal(t, "john", cand.AssigneeName)

	require.NotNil(t, cand.DueDate)
	assert.Equal(t, time.Date(2025, 6, 12, 17, 0, 0, 0, time.UTC), *cand.DueDate)
}

func TestDetectFallsBackToMessageText(t *testing.T) {
	stub := &stubClassifier{det: &ai.Detection{IsTask: true, Confidence: 0.7}}
	d := newTestDetector(stub)

	text := "need to update the backup schedule"
	cand := d.Detect(context.Background(), text, "infra")
	require.NotNil(t, cand)

	assert.Equal(t, text, cand.Title)
	assert.Equal(t, text, cand.Description)
	assert.Equal(t, tododomain.TaskTypeGeneral, cand.TaskType)
	assert.Equal(t, tododomain.PriorityMedium, cand.Priority)
}

func TestDetectTruncatesLongTitleFallback(t *testing.T) {
	stub := &stubClassifier{det: &ai.Detection{IsTask: true, Confidence: 0.7}}
	d := newTestDetector(stub)

	long := "need to "
	for len(long) < 300 {
		long += "review all the things "
	}
	cand := d.Detect(context.Background(), long, "infra")
	require.NotNil(t, cand)
	assert.Len(t, cand.Title, 100)
}

func TestDetectNotATaskVerdict(t *testing.T) {
	stub := &stubClassifier{det: &ai.Detection{IsTask: false, Confidence: 0.2}}
	d := newTestDetector(stub)

	assert.Nil(t, d.Detect(context.Background(), "should we grab lunch", "general"))
	assert.Equal(t, 1, stub.calls)
}

func TestDetectClassifierErrorIsAbsorbed(t *testing.T) {
	stub := &stubClassifier{err: errors.New("provider exploded")}
	d := newTestDetector(stub)

	assert.Nil(t, d.Detect(context.Background(), "please fix the build", "eng"))
}

func TestDetectNoVerdictIsNotATask(t *testing.T) {
	stub := &stubClassifier{}
	d := newTestDetector(stub)

	assert.Nil(t, d.Detect(context.Background(), "please fix the build", "eng"))
}

func TestIsPotentiallyTaskRelated(t *testing.T) {
	assert.True(t, IsPotentiallyTaskRelated("we need to ship this"))
	assert.True(t, IsPotentiallyTaskRelated("URGENT: server down"))
	assert.True(t, IsPotentiallyTaskRelated("ping @sarah about the report"))
	assert.False(t, IsPotentiallyTaskRelated("good morning everyone"))
	assert.False(t, IsPotentiallyTaskRelated("lol nice one"))
}
