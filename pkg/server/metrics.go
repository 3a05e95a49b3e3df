package server

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"sqlcompiler/pkg/lexer"
)

// maxDurations bounds the rolling window used for the average duration.
const maxDurations = 1000

// MetricsCollector accumulates request and token counters for /metrics.
type MetricsCollector struct {
	requestCount  int64
	rejectedCount int64
	tokenCount    int64
	errorTokens   int64
	haltedScans   int64
	tokensByType  map[lexer.TokenType]int64
	durations     []time.Duration
	lastRequestAt time.Time
	mu            sync.RWMutex
}

func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		tokensByType: make(map[lexer.TokenType]int64),
		durations:    make([]time.Duration, 0),
	}
}

// RecordAnalysis records one successful /analyze call.
func (mc *MetricsCollector) RecordAnalysis(duration time.Duration, summary lexer.Summary) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.requestCount++
	mc.tokenCount += int64(summary.Total)
	mc.errorTokens += int64(summary.Errors)
	if summary.Halted {
		mc.haltedScans++
	}
	for tt, n := range summary.ByType {
		mc.tokensByType[tt] += int64(n)
	}

	mc.durations = append(mc.durations, duration)
	if len(mc.durations) > maxDurations {
		mc.durations = mc.durations[len(mc.durations)-maxDurations:]
	}
	mc.lastRequestAt = time.Now()
}

// RecordRejected records a request refused before tokenizing.
func (mc *MetricsCollector) RecordRejected() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.requestCount++
	mc.rejectedCount++
	mc.lastRequestAt = time.Now()
}

// Snapshot is a point-in-time copy of the collector's counters.
type Snapshot struct {
	Requests      int64
	Rejected      int64
	Tokens        int64
	ErrorTokens   int64
	HaltedScans   int64
	TokensByType  map[lexer.TokenType]int64
	AvgDurationUs float64
	LastRequestAt time.Time
}

func (mc *MetricsCollector) Snapshot() Snapshot {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	var total time.Duration
	for _, d := range mc.durations {
		total += d
	}
	avg := float64(0)
	if len(mc.durations) > 0 {
		avg = float64(total.Microseconds()) / float64(len(mc.durations))
	}

	byType := make(map[lexer.TokenType]int64, len(mc.tokensByType))
	for tt, n := range mc.tokensByType {
		byType[tt] = n
	}

	return Snapshot{
		Requests:      mc.requestCount,
		Rejected:      mc.rejectedCount,
		Tokens:        mc.tokenCount,
		ErrorTokens:   mc.errorTokens,
		HaltedScans:   mc.haltedScans,
		TokensByType:  byType,
		AvgDurationUs: avg,
		LastRequestAt: mc.lastRequestAt,
	}
}

// GetMetrics renders the counters in the Prometheus text exposition format.
func (mc *MetricsCollector) GetMetrics() string {
	s := mc.Snapshot()

	lastSeen := int64(0)
	if !s.LastRequestAt.IsZero() {
		lastSeen = s.LastRequestAt.Unix()
	}

	var b strings.Builder
	fmt.Fprintf(&b, `# HELP sqlcompiler_requests_total Total number of analyze requests
# TYPE sqlcompiler_requests_total counter
sqlcompiler_requests_total %d

# HELP sqlcompiler_rejected_requests_total Requests rejected before tokenizing
# TYPE sqlcompiler_rejected_requests_total counter
sqlcompiler_rejected_requests_total %d

# HELP sqlcompiler_tokens_total Tokens emitted across all requests
# TYPE sqlcompiler_tokens_total counter
sqlcompiler_tokens_total %d

# HELP sqlcompiler_error_tokens_total ERROR tokens emitted across all requests
# TYPE sqlcompiler_error_tokens_total counter
sqlcompiler_error_tokens_total %d

# HELP sqlcompiler_halted_scans_total Scans stopped early by an unclosed string
# TYPE sqlcompiler_halted_scans_total counter
sqlcompiler_halted_scans_total %d

# HELP sqlcompiler_analyze_duration_microseconds Average analyze duration in microseconds
# TYPE sqlcompiler_analyze_duration_microseconds gauge
sqlcompiler_analyze_duration_microseconds %.2f

# HELP sqlcompiler_up Service up status (1 = up, 0 = down)
# TYPE sqlcompiler_up gauge
sqlcompiler_up 1

# HELP sqlcompiler_last_request_timestamp_seconds Unix timestamp of last request
# TYPE sqlcompiler_last_request_timestamp_seconds gauge
sqlcompiler_last_request_timestamp_seconds %d
`,
		s.Requests,
		s.Rejected,
		s.Tokens,
		s.ErrorTokens,
		s.HaltedScans,
		s.AvgDurationUs,
		lastSeen,
	)

	b.WriteString("\n# HELP sqlcompiler_tokens_by_type_total Tokens emitted per token type\n")
	b.WriteString("# TYPE sqlcompiler_tokens_by_type_total counter\n")
	for tt := lexer.SELECT; tt <= lexer.ERROR; tt++ {
		if n, ok := s.TokensByType[tt]; ok {
			fmt.Fprintf(&b, "sqlcompiler_tokens_by_type_total{type=%q} %d\n", tt.String(), n)
		}
	}

	return b.String()
}
