package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("test-provider", "success"))
	beforeErr := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("test-provider", "error"))

	RecordAPIRequest("test-provider", 120*time.Millisecond, nil)
	RecordAPIRequest("test-provider", 80*time.Millisecond, errors.New("boom"))

	assert.Equal(t, before+1, testutil.ToFloat64(APIRequestsTotal.WithLabelValues("test-provider", "success")))
	assert.Equal(t, beforeErr+1, testutil.ToFloat64(APIRequestsTotal.WithLabelValues("test-provider", "error")))
}

func TestRecordAdvisory(t *testing.T) {
	beforeRisky := testutil.ToFloat64(AdvisoriesTotal.WithLabelValues("Risky"))
	beforeNone := testutil.ToFloat64(NoSafeWindowTotal)

	window := 3 * time.Hour
	RecordAdvisory("Risky", &window)
	RecordAdvisory("Risky", nil)

	assert.Equal(t, beforeRisky+2, testutil.ToFloat64(AdvisoriesTotal.WithLabelValues("Risky")))
	assert.Equal(t, beforeNone+1, testutil.ToFloat64(NoSafeWindowTotal))
}

func TestRecordPublish(t *testing.T) {
	before := testutil.ToFloat64(PublishedTotal.WithLabelValues("redis", "error"))
	RecordPublish("redis", errors.New("connection refused"))
	assert.Equal(t, before+1, testutil.ToFloat64(PublishedTotal.WithLabelValues("redis", "error")))
}

func TestAppInfo(t *testing.T) {
	assert.Equal(t, 1.0, testutil.ToFloat64(AppInfo))
	assert.Greater(t, testutil.ToFloat64(AppStartTime), 0.0)
}
