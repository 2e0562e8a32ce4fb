package metrics

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BusinessMetricsCollector periodically refreshes the trip and participant gauges
type BusinessMetricsCollector struct {
	db      *gorm.DB
	metrics *Metrics
	logger  *zap.Logger
	ticker  *time.Ticker
	done    chan struct{}
}

// NewBusinessMetricsCollector creates a new collector. A non-positive
// interval falls back to one minute.
func NewBusinessMetricsCollector(db *gorm.DB, metrics *Metrics, interval time.Duration, logger *zap.Logger) *BusinessMetricsCollector {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &BusinessMetricsCollector{
		db:      db,
		metrics: metrics,
		logger:  logger,
		ticker:  time.NewTicker(interval),
		done:    make(chan struct{}),
	}
}

// Start begins collecting metrics
func (c *BusinessMetricsCollector) Start() {
	go func() {
		// 즉시 한 번 수집
		c.collect()

		for {
			select {
			case <-c.ticker.C:
				c.collect()
			case <-c.done:
				return
			}
		}
	}()
}

// Stop stops the collector. It must be called at most once.
func (c *BusinessMetricsCollector) Stop() {
	c.ticker.Stop()
	close(c.done)
}

// collect gathers business metrics
func (c *BusinessMetricsCollector) collect() {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic in business metrics collection",
				zap.Any("panic", r),
			)
		}
	}()

	if c.db == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var tripCount int64
	if err := c.db.WithContext(ctx).Table("trips").Count(&tripCount).Error; err != nil {
		c.logger.Error("Failed to count trips", zap.Error(err))
	} else {
		c.metrics.SetTripsTotal(tripCount)
	}

	var participantCount int64
	if err := c.db.WithContext(ctx).Table("trip_participants").Count(&participantCount).Error; err != nil {
		c.logger.Error("Failed to count participants", zap.Error(err))
	} else {
		c.metrics.SetParticipantsTotal(participantCount)
	}

	var conditionalCount int64
	if err := c.db.WithContext(ctx).Table("trip_participants").
		Where("confirmation_status = ?", "conditional").
		Count(&conditionalCount).Error; err != nil {
		c.logger.Error("Failed to count conditional participants", zap.Error(err))
	} else {
		c.metrics.SetConditionalParticipants(conditionalCount)
	}
}
