package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordStoreOp(t *testing.T) {
	before := testutil.ToFloat64(storeOpTotal.WithLabelValues("metrics-test", "get"))

	RecordStoreOp("metrics-test", "get", 2*time.Microsecond)
	RecordStoreOp("metrics-test", "get", 3*time.Microsecond)

	assert.Equal(t, before+2, testutil.ToFloat64(storeOpTotal.WithLabelValues("metrics-test", "get")))
}

func TestRecordStoreMiss(t *testing.T) {
	before := testutil.ToFloat64(storeMisses.WithLabelValues("metrics-test", "delete"))

	RecordStoreMiss("metrics-test", "delete")

	assert.Equal(t, before+1, testutil.ToFloat64(storeMisses.WithLabelValues("metrics-test", "delete")))
}

func TestSetStoreRecords(t *testing.T) {
	SetStoreRecords("metrics-test", 5)
	assert.Equal(t, float64(5), testutil.ToFloat64(storeRecords.WithLabelValues("metrics-test")))

	SetStoreRecords("metrics-test", 4)
	assert.Equal(t, float64(4), testutil.ToFloat64(storeRecords.WithLabelValues("metrics-test")))
}
