package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestInitializeIsIdempotent(t *testing.T) {
	assert.Same(t, Initialize(), Get())
}

func TestRecordFriendOperation(t *testing.T) {
	m := Get()
	m.FriendOperationsTotal.Reset()

	RecordFriendOperation("send_request", "ok")
	RecordFriendOperation("send_request", "ok")
	RecordFriendOperation("send_request", "conflict")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.FriendOperationsTotal.WithLabelValues("send_request", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FriendOperationsTotal.WithLabelValues("send_request", "conflict")))
}

func TestRecordEmailJob(t *testing.T) {
	m := Get()
	m.EmailJobsTotal.Reset()

	RecordEmailJob("enqueued")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.EmailJobsTotal.WithLabelValues("enqueued")))
}
