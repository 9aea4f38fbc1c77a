// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/platewise/internal/recommend"
)

// TestRecordDBQuery tests database query metric recording
func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		table     string
		err       error
	}{
		{name: "successful import", operation: "IMPORT", table: "restaurants"},
		{name: "successful select", operation: "SELECT", table: "reviews"},
		{name: "failed query", operation: "SELECT", table: "users", err: errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table, "connection refused"))
			RecordDBQuery(tt.operation, tt.table, 10*time.Millisecond, tt.err)
			after := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table, "connection refused"))

			want := before
			if tt.err != nil {
				want++
			}
			if after != want {
				t.Errorf("error counter = %v, want %v", after, want)
			}
		})
	}
}

// TestRecordDBQuery_ErrorTruncation verifies error messages are truncated at 50 chars
func TestRecordDBQuery_ErrorTruncation(t *testing.T) {
	long := errors.New(strings.Repeat("c", 100))
	RecordDBQuery("SELECT", "truncation", time.Millisecond, long)

	got := testutil.ToFloat64(DBQueryErrors.WithLabelValues("SELECT", "truncation", strings.Repeat("c", 50)))
	if got != 1 {
		t.Errorf("truncated label counter = %v, want 1", got)
	}
}

func TestRecordImport(t *testing.T) {
	before := testutil.ToFloat64(DBRowsImported.WithLabelValues("reviews"))
	RecordImport("reviews", 250)
	if got := testutil.ToFloat64(DBRowsImported.WithLabelValues("reviews")); got != before+250 {
		t.Errorf("rows imported = %v, want %v", got, before+250)
	}
}

// TestRecordAPIRequest tests API request metric recording
func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recommendations", "200"))
	RecordAPIRequest("GET", "/api/v1/recommendations", "200", 25*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recommendations", "200"))
	if after != before+1 {
		t.Errorf("requests = %v, want %v", after, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+2 {
		t.Errorf("active = %v, want %v", got, before+2)
	}
	TrackActiveRequest(false)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active = %v, want %v", got, before)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(CacheHits.WithLabelValues("test"))
	misses := testutil.ToFloat64(CacheMisses.WithLabelValues("test"))

	RecordCacheLookup("test", true)
	RecordCacheLookup("test", false)
	RecordCacheLookup("test", false)

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("test")); got != hits+1 {
		t.Errorf("hits = %v, want %v", got, hits+1)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("test")); got != misses+2 {
		t.Errorf("misses = %v, want %v", got, misses+2)
	}
}

func TestRecordCacheGC(t *testing.T) {
	before := testutil.ToFloat64(CacheGCRuns.WithLabelValues("gc-test", "noop"))
	RecordCacheGC("gc-test", false)
	RecordCacheGC("gc-test", true)
	if got := testutil.ToFloat64(CacheGCRuns.WithLabelValues("gc-test", "noop")); got != before+1 {
		t.Errorf("noop runs = %v", got)
	}
	if got := testutil.ToFloat64(CacheGCRuns.WithLabelValues("gc-test", "rewrote")); got < 1 {
		t.Errorf("rewrote runs = %v", got)
	}
}

func TestRecordFit(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind string
	}{
		{name: "no history", err: &recommend.NoHistoryError{UserID: "u"}, kind: "no_history"},
		{name: "degenerate", err: &recommend.DegenerateModelError{UserID: "u"}, kind: "degenerate_model"},
		{name: "unknown", err: errors.New("boom"), kind: "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(FitErrors.WithLabelValues(tt.kind))
			RecordFit(time.Millisecond, tt.err)
			if got := testutil.ToFloat64(FitErrors.WithLabelValues(tt.kind)); got != before+1 {
				t.Errorf("fit errors[%s] = %v, want %v", tt.kind, got, before+1)
			}
		})
	}

	// Successful fits only feed the histogram.
	RecordFit(2*time.Millisecond, nil)
	if n := testutil.CollectAndCount(FitDuration); n != 1 {
		t.Errorf("FitDuration collectors = %d, want 1", n)
	}
}

func TestRecordDatasetLoad(t *testing.T) {
	RecordDatasetLoad(time.Second, 10, 4, 30, 7)

	if got := testutil.ToFloat64(DatasetRows.WithLabelValues("restaurants")); got != 10 {
		t.Errorf("restaurants = %v", got)
	}
	if got := testutil.ToFloat64(DatasetRows.WithLabelValues("reviews")); got != 30 {
		t.Errorf("reviews = %v", got)
	}
	if got := testutil.ToFloat64(VocabularySize); got != 7 {
		t.Errorf("vocabulary = %v", got)
	}

	before := testutil.ToFloat64(RecommendationsServed)
	RecordServed(5)
	if got := testutil.ToFloat64(RecommendationsServed); got != before+5 {
		t.Errorf("served = %v", got)
	}
}

// TestMetricGathering tests that metrics can be gathered using testutil
func TestMetricGathering(t *testing.T) {
	RecordDBQuery("TEST", "test_table", time.Millisecond, nil)
	RecordAPIRequest("GET", "/test", "200", time.Millisecond)

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Logf("Lint errors (may be expected): %v", err)
	}
	for _, p := range problems {
		t.Logf("Metric lint problem: %s", p.Text)
	}
}
