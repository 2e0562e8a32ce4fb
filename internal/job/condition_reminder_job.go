package job

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"trip-roster-api/internal/client"
	"trip-roster-api/internal/commitment"
	"trip-roster-api/internal/domain"
	"trip-roster-api/internal/metrics"
	"trip-roster-api/internal/repository"
)

// ConditionReminderJob notifies conditional participants whose conditions
// now hold. It never changes a participant's status.
type ConditionReminderJob struct {
	tripRepo           repository.TripRepository
	participantRepo    repository.ParticipantRepository
	notificationClient client.NotificationClient
	metrics            *metrics.Metrics
	logger             *zap.Logger
	now                func() time.Time
}

// NewConditionReminderJob creates a new ConditionReminderJob instance
func NewConditionReminderJob(
	tripRepo repository.TripRepository,
	participantRepo repository.ParticipantRepository,
	notificationClient client.NotificationClient,
	m *metrics.Metrics,
	logger *zap.Logger,
) *ConditionReminderJob {
	return &ConditionReminderJob{
		tripRepo:           tripRepo,
		participantRepo:    participantRepo,
		notificationClient: notificationClient,
		metrics:            m,
		logger:             logger,
		now:                func() time.Time { return time.Now().UTC() },
	}
}

// Run executes the reminder pass over every trip with a conditional participant
func (j *ConditionReminderJob) Run() {
	ctx := context.Background()

	j.logger.Info("Starting condition reminder job")

	tripIDs, err := j.participantRepo.FindTripIDsByStatus(ctx, commitment.StatusConditional)
	if err != nil {
		j.logger.Error("Failed to find trips with conditional participants", zap.Error(err))
		return
	}

	if len(tripIDs) == 0 {
		j.logger.Info("No conditional participants found")
		return
	}

	sent := 0
	failed := 0
	for _, tripID := range tripIDs {
		n, err := j.remindTrip(ctx, tripID)
		if err != nil {
			j.logger.Error("Failed to send condition reminders",
				zap.String("trip_id", tripID.String()),
				zap.Error(err),
			)
			failed++
			continue
		}
		sent += n
	}

	j.metrics.IncrementConditionReminders(sent)

	j.logger.Info("Condition reminder job completed",
		zap.Int("trips", len(tripIDs)),
		zap.Int("reminders", sent),
		zap.Int("failed_trips", failed),
	)
}

// remindTrip returns how many reminders were queued for one trip. A participant
// is reminded once per commitment; changing it clears the mark.
func (j *ConditionReminderJob) remindTrip(ctx context.Context, tripID uuid.UUID) (int, error) {
	trip, err := j.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return 0, err
	}

	rows, err := j.participantRepo.FindByTripID(ctx, tripID)
	if err != nil {
		return 0, err
	}
	all := domain.ToCommitmentSnapshot(rows)

	now := j.now()
	var events []client.NotificationEvent
	var reminded []uuid.UUID
	for i, p := range all {
		if rows[i].ConditionsRemindedAt != nil || !commitment.ConditionsMetAt(p, all, now) {
			continue
		}
		reminded = append(reminded, p.UserID)
		events = append(events, client.NotificationEvent{
			Type:         client.NotificationConditionsMet,
			ActorID:      trip.OrganizerID,
			TargetUserID: p.UserID,
			TripID:       tripID,
			ResourceType: "trip",
			ResourceID:   tripID,
			ResourceName: trip.Name,
			Metadata: map[string]interface{}{
				"conditionalType": string(p.ConditionalType),
			},
			OccurredAt: now.Format(time.RFC3339),
		})
	}

	if len(events) == 0 {
		return 0, nil
	}
	if err := j.notificationClient.SendBulkNotifications(ctx, events); err != nil {
		return 0, err
	}
	if err := j.participantRepo.MarkConditionsReminded(ctx, tripID, reminded, now); err != nil {
		j.logger.Warn("Failed to record condition reminders",
			zap.String("trip_id", tripID.String()),
			zap.Error(err),
		)
	}

	j.logger.Debug("Queued condition reminders",
		zap.String("trip_id", tripID.String()),
		zap.Int("count", len(events)),
	)
	return len(events), nil
}

// Scheduler runs jobs on cron expressions
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

// NewScheduler creates a scheduler that recovers from panicking jobs
func NewScheduler(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithChain(cron.Recover(cronLogger{logger}))),
		logger: logger,
	}
}

// Add registers job under a standard five field cron spec
func (s *Scheduler) Add(spec string, job cron.Job) error {
	id, err := s.cron.AddJob(spec, job)
	if err != nil {
		return err
	}
	s.logger.Info("Scheduled job", zap.String("spec", spec), zap.Int("entry_id", int(id)))
	return nil
}

// Start begins running scheduled jobs in the background
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("Scheduler stopped before running jobs finished")
	}
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Infow(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().With(zap.Error(err)).Errorw(msg, keysAndValues...)
}
