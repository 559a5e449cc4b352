package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/fleetops/fleet-scheduler/internal/models"
)

// Notifier composes the booking emails. Every send is best-effort: failures
// are logged and swallowed, and a missing recipient skips the send.
type Notifier struct {
	mailer     Mailer
	adminEmail string
	log        zerolog.Logger
}

func NewNotifier(mailer Mailer, adminEmail string, log zerolog.Logger) *Notifier {
	return &Notifier{
		mailer:     mailer,
		adminEmail: adminEmail,
		log:        log,
	}
}

func (n *Notifier) send(ctx context.Context, to, subject, html string, bookingID uint) {
	if to == "" {
		return
	}
	if err := n.mailer.Send(ctx, Message{To: to, Subject: subject, HTML: html}); err != nil {
		n.log.Error().Err(err).
			Uint("booking_id", bookingID).
			Str("to", to).
			Str("subject", subject).
			Msg("notification send failed")
	}
}

func window(b *models.Booking) string {
	return fmt.Sprintf("%s — %s",
		b.StartTime.UTC().Format(time.RFC3339),
		b.EndTime.UTC().Format(time.RFC3339),
	)
}

// BookingCreated emails the fleet admin about the pending booking and sends
// the contact an acknowledgement.
func (n *Notifier) BookingCreated(ctx context.Context, b *models.Booking) {
	n.send(ctx, n.adminEmail,
		fmt.Sprintf("New booking #%d pending", b.ID),
		fmt.Sprintf("<p>Booking #%d (%s) is awaiting review.</p><p>%s</p><p>Approval reference: %s</p>",
			b.ID, b.Source, window(b), b.AdminApproveToken),
		b.ID)

	n.send(ctx, b.ContactEmail,
		fmt.Sprintf("Your booking #%d was received", b.ID),
		fmt.Sprintf("<p>Hi %s, we received your booking for %s. We will confirm shortly.</p>",
			b.ContactName, window(b)),
		b.ID)
}

// BookingUpdated tells the contact, the currently assigned driver, and, when
// the update moved the booking away from a driver, the previous one.
func (n *Notifier) BookingUpdated(ctx context.Context, b *models.Booking, driverEmail, previousDriverEmail string) {
	n.send(ctx, b.ContactEmail,
		fmt.Sprintf("Your booking #%d was updated", b.ID),
		fmt.Sprintf("<p>Hi %s, your booking was updated. Current window: %s.</p>",
			b.ContactName, window(b)),
		b.ID)

	n.send(ctx, driverEmail,
		fmt.Sprintf("Booking #%d changed", b.ID),
		fmt.Sprintf("<p>Booking #%d assigned to you was updated. Window: %s.</p>",
			b.ID, window(b)),
		b.ID)

	if previousDriverEmail != "" && previousDriverEmail != driverEmail {
		n.send(ctx, previousDriverEmail,
			fmt.Sprintf("Booking #%d reassigned", b.ID),
			fmt.Sprintf("<p>Booking #%d is no longer assigned to you.</p>", b.ID),
			b.ID)
	}
}

// BookingConfirmed sends the customer a verification link and tells the
// assigned driver, when there is one with an email on file.
func (n *Notifier) BookingConfirmed(ctx context.Context, b *models.Booking, driverEmail string) {
	n.send(ctx, b.ContactEmail,
		fmt.Sprintf("Booking #%d confirmed", b.ID),
		fmt.Sprintf("<p>Hi %s, your booking for %s is confirmed.</p><p>Verification code: %s</p>",
			b.ContactName, window(b), b.CustomerVerifyToken),
		b.ID)

	n.send(ctx, driverEmail,
		fmt.Sprintf("You have been assigned booking #%d", b.ID),
		fmt.Sprintf("<p>Booking #%d, window %s.</p>", b.ID, window(b)),
		b.ID)
}

func (n *Notifier) BookingDeclined(ctx context.Context, b *models.Booking, reason string) {
	body := fmt.Sprintf("<p>Hi %s, your booking for %s was declined.</p>", b.ContactName, window(b))
	if reason != "" {
		body += fmt.Sprintf("<p>Reason: %s</p>", reason)
	}

	n.send(ctx, b.ContactEmail,
		fmt.Sprintf("Booking #%d declined", b.ID),
		body,
		b.ID)
}
