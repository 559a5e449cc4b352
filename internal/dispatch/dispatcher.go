package dispatch

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/fleetops/fleet-scheduler/internal/models"
	"github.com/fleetops/fleet-scheduler/internal/notify"
	"github.com/fleetops/fleet-scheduler/internal/worker"
)

type EventType string

const (
	EventCreated   EventType = "booking_created"
	EventUpdated   EventType = "booking_updated"
	EventConfirmed EventType = "booking_confirmed"
	EventDeclined  EventType = "booking_declined"
)

// Event carries a snapshot of the booking at the moment of the change, so
// the worker never races a later mutation.
type Event struct {
	Type        EventType
	Booking     models.Booking
	DriverEmail string

	// PreviousDriverEmail is set on updates that moved the booking away
	// from a driver, so that driver hears about it too.
	PreviousDriverEmail string

	Reason string
}

// CalendarEnqueuer is the slice of the calendar worker the dispatcher needs.
type CalendarEnqueuer interface {
	Enqueue(ctx context.Context, taskType string, b *models.Booking) error
}

// Dispatcher fans booking changes out to email and calendar sync. It is
// strictly best-effort: the channel drops on overflow, every downstream
// failure is logged and swallowed, and nothing here can fail the request
// that produced the event.
type Dispatcher struct {
	notifier *notify.Notifier
	cal      CalendarEnqueuer
	log      zerolog.Logger
	queue    chan Event
}

func NewDispatcher(notifier *notify.Notifier, cal CalendarEnqueuer, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		notifier: notifier,
		cal:      cal,
		log:      log,
		queue:    make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn().
			Str("event", string(ev.Type)).
			Uint("booking_id", ev.Booking.ID).
			Msg("dispatch queue full, dropping event")
	}
}

func (d *Dispatcher) worker() {
	ctx := context.Background()

	for ev := range d.queue {
		b := ev.Booking

		switch ev.Type {
		case EventCreated:
			d.notifier.BookingCreated(ctx, &b)
		case EventUpdated:
			d.notifier.BookingUpdated(ctx, &b, ev.DriverEmail, ev.PreviousDriverEmail)
		case EventConfirmed:
			d.notifier.BookingConfirmed(ctx, &b, ev.DriverEmail)
			d.enqueueCalendar(ctx, worker.TaskUpsert, &b)
		case EventDeclined:
			d.notifier.BookingDeclined(ctx, &b, ev.Reason)
			d.enqueueCalendar(ctx, worker.TaskCancel, &b)
		}
	}
}

func (d *Dispatcher) enqueueCalendar(ctx context.Context, taskType string, b *models.Booking) {
	if d.cal == nil {
		return
	}
	if err := d.cal.Enqueue(ctx, taskType, b); err != nil {
		d.log.Error().Err(err).
			Uint("booking_id", b.ID).
			Str("task_type", taskType).
			Msg("calendar enqueue failed")
	}
}
