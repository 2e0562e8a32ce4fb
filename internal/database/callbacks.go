package database

import (
	"database/sql"
	"time"

	"gorm.io/gorm"
)

const queryStartKey = "metrics:query_start_time"

// MetricsRecorder is an interface for recording database metrics
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
	UpdateDBStats(stats sql.DBStats)
}

type registrar interface {
	Register(name string, fn func(*gorm.DB)) error
}

// RegisterMetricsCallbacks times every query, create, update and delete
// statement and reports it to recorder
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) {
	cb := db.Callback()
	register(cb.Query().Before("gorm:query"), cb.Query().After("gorm:query"), "select", recorder)
	register(cb.Create().Before("gorm:create"), cb.Create().After("gorm:create"), "insert", recorder)
	register(cb.Update().Before("gorm:update"), cb.Update().After("gorm:update"), "update", recorder)
	register(cb.Delete().Before("gorm:delete"), cb.Delete().After("gorm:delete"), "delete", recorder)
}

func register(before, after registrar, operation string, recorder MetricsRecorder) {
	_ = before.Register("metrics:"+operation+"_before", func(db *gorm.DB) {
		db.InstanceSet(queryStartKey, time.Now())
	})

	_ = after.Register("metrics:"+operation+"_after", func(db *gorm.DB) {
		started, ok := db.InstanceGet(queryStartKey)
		if !ok {
			return
		}
		recorder.RecordDBQuery(operation, db.Statement.Table, time.Since(started.(time.Time)), db.Error)
	})
}

// StartDBStatsCollector reports connection pool stats every interval until
// the returned channel is closed
func StartDBStatsCollector(db *gorm.DB, recorder MetricsRecorder, interval time.Duration) chan struct{} {
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					continue
				}
				recorder.UpdateDBStats(sqlDB.Stats())
			case <-done:
				return
			}
		}
	}()

	return done
}
