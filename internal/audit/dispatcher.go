package audit

import "github.com/rs/zerolog"

type Event struct {
	BookingID uint
	ActorRole string
	Action    string
	Note      string
}

// Dispatcher decouples audit writes from request handling. Events go through
// a buffered channel to a single worker; a full queue drops the event rather
// than block the API.
type Dispatcher struct {
	logger *Logger
	log    zerolog.Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(ev.BookingID, ev.ActorRole, ev.Action, ev.Note); err != nil {
			d.log.Error().Err(err).
				Uint("booking_id", ev.BookingID).
				Str("action", ev.Action).
				Msg("audit write failed")
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn().
			Uint("booking_id", ev.BookingID).
			Str("action", ev.Action).
			Msg("audit queue full, dropping event")
	}
}
