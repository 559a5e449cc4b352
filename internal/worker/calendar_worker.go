package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/fleetops/fleet-scheduler/internal/calendar"
	"github.com/fleetops/fleet-scheduler/internal/models"
)

const (
	TaskUpsert = "upsert"
	TaskCancel = "cancel"
)

const (
	taskPending   = "pending"
	taskRetry     = "retry"
	taskCompleted = "completed"
	taskFailed    = "failed"
)

// entryPayload is persisted in SyncTask.Payload as JSON.
type entryPayload struct {
	BookingID uint      `json:"booking_id"`
	Status    string    `json:"status"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// CalendarWorker drains the sync_tasks outbox and applies entries to the
// external calendar. Tasks are written to the database first (source of
// truth); Redis carries task ids for low-latency pickup, with an in-memory
// channel as the fallback when Redis is absent. Exhausted retries
// dead-letter the task as failed.
type CalendarWorker struct {
	db           *gorm.DB
	client       calendar.Client
	redis        *redis.Client
	retryPolicy  RetryPolicy
	queue        chan uint
	redisKey     string
	pollInterval time.Duration
	batchSize    int
	log          zerolog.Logger
}

func NewCalendarWorker(db *gorm.DB, client calendar.Client, redisClient *redis.Client, retry RetryPolicy, log zerolog.Logger) *CalendarWorker {
	if retry.MaxRetries == 0 {
		retry.MaxRetries = 5
	}
	if retry.InitialDelay == 0 {
		retry.InitialDelay = 2 * time.Second
	}
	if retry.MaxDelay == 0 {
		retry.MaxDelay = time.Minute
	}
	if retry.BackoffFactor == 0 {
		retry.BackoffFactor = 2
	}

	return &CalendarWorker{
		db:           db,
		client:       client,
		redis:        redisClient,
		retryPolicy:  retry,
		queue:        make(chan uint, 128),
		redisKey:     "calendar:queue",
		pollInterval: 2 * time.Second,
		batchSize:    20,
		log:          log,
	}
}

// Enqueue persists the task and schedules it. Persisting can fail; pushing
// to Redis or the channel cannot lose the task because the poll loop reads
// the table anyway.
func (w *CalendarWorker) Enqueue(ctx context.Context, taskType string, b *models.Booking) error {
	payload := entryPayload{
		BookingID: b.ID,
		Status:    b.Status,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	task := models.SyncTask{
		TaskType:  taskType,
		BookingID: b.ID,
		Payload:   string(payloadBytes),
		Status:    taskPending,
	}

	if err := w.db.WithContext(ctx).Create(&task).Error; err != nil {
		return fmt.Errorf("persist sync task: %w", err)
	}

	if w.redis != nil {
		if err := w.redis.LPush(ctx, w.redisKey, task.ID).Err(); err == nil {
			return nil
		} else {
			w.log.Warn().Err(err).Msg("calendar worker: redis push failed, using memory queue")
		}
	}

	select {
	case w.queue <- task.ID:
	default:
		// Poll loop will pick it up.
	}

	return nil
}

// Start runs the main loop until ctx is done.
func (w *CalendarWorker) Start(ctx context.Context) {
	w.log.Info().Msg("calendar worker started")
	defer w.log.Info().Msg("calendar worker stopped")

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case id := <-w.queue:
			w.processByID(ctx, id)
		case <-ticker.C:
			w.drainRedis(ctx)
			w.pollPending(ctx)
		}
	}
}

func (w *CalendarWorker) drainRedis(ctx context.Context) {
	if w.redis == nil {
		return
	}
	for i := 0; i < w.batchSize; i++ {
		val, err := w.redis.LPop(ctx, w.redisKey).Uint64()
		if err != nil {
			return
		}
		w.processByID(ctx, uint(val))
	}
}

func (w *CalendarWorker) pollPending(ctx context.Context) {
	var tasks []models.SyncTask
	err := w.db.WithContext(ctx).
		Where("status IN ? AND (next_retry_at IS NULL OR next_retry_at <= ?)",
			[]string{taskPending, taskRetry}, time.Now()).
		Order("created_at ASC").
		Limit(w.batchSize).
		Find(&tasks).Error
	if err != nil {
		w.log.Error().Err(err).Msg("calendar worker: poll failed")
		return
	}

	for _, t := range tasks {
		w.process(ctx, &t)
	}
}

func (w *CalendarWorker) processByID(ctx context.Context, id uint) {
	var task models.SyncTask
	if err := w.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return
	}
	if task.Status != taskPending && task.Status != taskRetry {
		return
	}
	w.process(ctx, &task)
}

func (w *CalendarWorker) process(ctx context.Context, task *models.SyncTask) {
	var payload entryPayload
	if err := json.Unmarshal([]byte(task.Payload), &payload); err != nil {
		w.finish(ctx, task, taskFailed, "bad payload: "+err.Error())
		return
	}

	entry := calendar.Entry{
		BookingID: payload.BookingID,
		Status:    payload.Status,
		StartTime: payload.StartTime,
		EndTime:   payload.EndTime,
		Summary:   fmt.Sprintf("booking #%d (%s)", payload.BookingID, task.TaskType),
	}

	if err := w.client.SyncBooking(ctx, entry); err != nil {
		w.retryOrFail(ctx, task, err)
		return
	}

	w.finish(ctx, task, taskCompleted, "")
}

func (w *CalendarWorker) retryOrFail(ctx context.Context, task *models.SyncTask, cause error) {
	if task.RetryCount+1 >= w.retryPolicy.MaxRetries {
		w.log.Error().Err(cause).
			Uint("task_id", task.ID).
			Uint("booking_id", task.BookingID).
			Msg("calendar worker: retries exhausted")
		w.finish(ctx, task, taskFailed, cause.Error())
		return
	}

	next := time.Now().Add(w.retryPolicy.NextDelay(task.RetryCount + 1))
	err := w.db.WithContext(ctx).Model(task).Updates(map[string]any{
		"status":        taskRetry,
		"retry_count":   gorm.Expr("retry_count + 1"),
		"last_error":    cause.Error(),
		"next_retry_at": next,
	}).Error
	if err != nil {
		w.log.Error().Err(err).Uint("task_id", task.ID).Msg("calendar worker: retry update failed")
	}
}

func (w *CalendarWorker) finish(ctx context.Context, task *models.SyncTask, status, errMsg string) {
	now := time.Now()
	err := w.db.WithContext(ctx).Model(task).Updates(map[string]any{
		"status":       status,
		"last_error":   errMsg,
		"processed_at": now,
	}).Error
	if err != nil {
		w.log.Error().Err(err).Uint("task_id", task.ID).Msg("calendar worker: status update failed")
	}
}
