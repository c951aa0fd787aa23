package metrics

import (
	"context"
	"database/sql"
	"time"
)

const defaultPoolInterval = 15 * time.Second

// StartPoolMetrics publishes db.Stats() every interval until ctx is done.
func StartPoolMetrics(ctx context.Context, db *sql.DB, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPoolInterval
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			RecordPoolStats(db.Stats())
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// RecordPoolStats copies one snapshot of pool statistics into the gauges.
func RecordPoolStats(stats sql.DBStats) {
	DBPoolInUseConnections.Set(float64(stats.InUse))
	DBPoolIdleConnections.Set(float64(stats.Idle))
	DBPoolOpenConnections.Set(float64(stats.OpenConnections))
}
