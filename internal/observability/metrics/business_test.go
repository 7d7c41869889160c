package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordArticleWrite(t *testing.T) {
	before := testutil.ToFloat64(ArticlesWrittenTotal.WithLabelValues("create"))

	RecordArticleWrite("create")
	RecordArticleWrite("create")

	after := testutil.ToFloat64(ArticlesWrittenTotal.WithLabelValues("create"))
	assert.Equal(t, before+2, after)
}

func TestRecordSourceArticleCreated_EmptySource(t *testing.T) {
	before := testutil.ToFloat64(SourceArticlesCreatedTotal.WithLabelValues("unknown", "api"))

	RecordSourceArticleCreated("", "api")

	after := testutil.ToFloat64(SourceArticlesCreatedTotal.WithLabelValues("unknown", "api"))
	assert.Equal(t, before+1, after)
}

func TestRecordLikeCountRead(t *testing.T) {
	before := testutil.ToFloat64(LikeCountReadsTotal)
	RecordLikeCountRead()
	assert.Equal(t, before+1, testutil.ToFloat64(LikeCountReadsTotal))
}

func TestRecordDBOperation(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantDelta float64
	}{
		{name: "success", err: nil, wantDelta: 0},
		{name: "failure", err: errors.New("timeout"), wantDelta: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := DBOperationErrors.WithLabelValues("articles", "test_"+tt.name)
			before := testutil.ToFloat64(counter)

			assert.NotPanics(t, func() {
				RecordDBOperation("articles", "test_"+tt.name, 15*time.Millisecond, tt.err)
			})

			assert.Equal(t, before+tt.wantDelta, testutil.ToFloat64(counter))
		})
	}
}

func TestRecordImportRecord(t *testing.T) {
	for _, result := range []string{"inserted", "invalid", "failed", "skipped"} {
		t.Run(result, func(t *testing.T) {
			c := ImportRecordsTotal.WithLabelValues("article", result)
			before := testutil.ToFloat64(c)
			RecordImportRecord("article", result)
			assert.Equal(t, before+1, testutil.ToFloat64(c))
		})
	}
}

func TestRecordFeedCrawl(t *testing.T) {
	inserted := FeedItemsTotal.WithLabelValues("bbc-test", "inserted")
	duplicate := FeedItemsTotal.WithLabelValues("bbc-test", "duplicate")
	beforeIns := testutil.ToFloat64(inserted)
	beforeDup := testutil.ToFloat64(duplicate)

	RecordFeedCrawl("bbc-test", 2*time.Second, 3, 7, 0, 0)

	assert.Equal(t, beforeIns+3, testutil.ToFloat64(inserted))
	assert.Equal(t, beforeDup+7, testutil.ToFloat64(duplicate))
}

func TestRecordFeedCrawlError(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordFeedCrawlError("bbc-test", "parse")
	})
}

func TestContentFetchRecorders(t *testing.T) {
	success := ContentFetchAttemptsTotal.WithLabelValues("success")
	skipped := ContentFetchAttemptsTotal.WithLabelValues("skipped")
	beforeSuccess := testutil.ToFloat64(success)
	beforeSkipped := testutil.ToFloat64(skipped)

	RecordContentFetchSuccess(500 * time.Millisecond)
	RecordContentFetchFailed(time.Second)
	RecordContentFetchSkipped()

	assert.Equal(t, beforeSuccess+1, testutil.ToFloat64(success))
	assert.Equal(t, beforeSkipped+1, testutil.ToFloat64(skipped))
}

func TestRecordBreaker(t *testing.T) {
	RecordBreakerState("test-breaker", 2)
	assert.Equal(t, 2.0, testutil.ToFloat64(CircuitBreakerState.WithLabelValues("test-breaker")))
	RecordBreakerState("test-breaker", 0)
	assert.Equal(t, 0.0, testutil.ToFloat64(CircuitBreakerState.WithLabelValues("test-breaker")))

	before := testutil.ToFloat64(CircuitBreakerRejectionsTotal.WithLabelValues("test-breaker"))
	RecordBreakerRejection("test-breaker")
	assert.Equal(t, before+1, testutil.ToFloat64(CircuitBreakerRejectionsTotal.WithLabelValues("test-breaker")))
}
