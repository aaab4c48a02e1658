package worker

// progress_worker.go
// Processes progress-email jobs from QueueProgressEmail: renders the guest's
// registration card PDF and mails it. SMTP sends go through the circuit
// breaker so a downed relay fails fast instead of tying up the pool.

import (
	"context"
	"encoding/json"
	"fmt"

	"frontdesk/internal/infra"

	"github.com/rs/zerolog/log"
)

// ProgressEmailPayload is the job envelope sent to QueueProgressEmail.
type ProgressEmailPayload struct {
	ToEmail      string `json:"to_email"`
	GuestName    string `json:"guest_name"`
	BookingRef   string `json:"booking_ref"`
	OccupantID   string `json:"occupant_id"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
}

// ProgressEmailWorker sends booking-progress emails with the registration
// card attached.
type ProgressEmailWorker struct {
	mailer      *infra.Mailer
	cb          *infra.CircuitBreaker
	storagePath string
}

func NewProgressEmailWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, storagePath string) *ProgressEmailWorker {
	return &ProgressEmailWorker{mailer: mailer, cb: cb, storagePath: storagePath}
}

// Process renders the PDF and sends the email. A returned error makes the
// pool retry the job (up to maxAttempts) before dead-lettering it.
func (w *ProgressEmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload ProgressEmailPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("progress_worker: invalid payload")
		return nil // malformed payloads never succeed — do not retry
	}
	if payload.ToEmail == "" {
		log.Warn().Str("occupant", payload.OccupantID).Msg("progress_worker: empty to_email — skipping")
		return nil
	}

	pdfPath, err := infra.GenerateRegistrationCardPDF(infra.RegistrationCard{
		GuestName:    payload.GuestName,
		BookingRef:   payload.BookingRef,
		OccupantID:   payload.OccupantID,
		CheckInDate:  payload.CheckInDate,
		CheckOutDate: payload.CheckOutDate,
	}, w.storagePath)
	if err != nil {
		return fmt.Errorf("progress_worker: render card: %w", err)
	}

	subject := fmt.Sprintf("Your booking %s — next steps", payload.BookingRef)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour stay from %s to %s is confirmed. Your registration card is attached — please check the details before arrival.\n",
		payload.GuestName, payload.CheckInDate, payload.CheckOutDate,
	)

	sendErr := w.cb.Execute(func() error {
		return w.mailer.SendProgress(payload.ToEmail, subject, body, pdfPath)
	})
	if sendErr != nil {
		log.Error().Err(sendErr).Str("to", payload.ToEmail).Msg("progress_worker: send failed")
		return sendErr
	}

	log.Info().Str("to", payload.ToEmail).Str("booking", payload.BookingRef).Msg("progress_worker: email sent")
	return nil
}
