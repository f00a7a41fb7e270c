package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	rateLimited     uint64
	totalDurationMs uint64
	importRowsOK    uint64
	importRowsFail  uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// RecordImport tracks bulk import row outcomes across all batches.
func (c *Collector) RecordImport(succeeded, failed int) {
	atomic.AddUint64(&c.importRowsOK, uint64(succeeded))
	atomic.AddUint64(&c.importRowsFail, uint64(failed))
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	limited := atomic.LoadUint64(&c.rateLimited)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":     total,
		"errorsTotal":       errs,
		"rateLimitedTotal":  limited,
		"avgDurationMs":     avg,
		"totalDurationMs":   totalMs,
		"importRowsOkTotal": atomic.LoadUint64(&c.importRowsOK),
		"importRowsFailed":  atomic.LoadUint64(&c.importRowsFail),
	}
}
