package plan

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ReminderSlot is one scheduled nudge: an hour of the day and the SMS text
// that goes out once that hour is reached.
type ReminderSlot struct {
	Hour    int
	Message string
}

// DailyReminders are the fixed slots, ascending by hour.
var DailyReminders = []ReminderSlot{
	{Hour: 9, Message: "Don't forget to set your meal preferences for tomorrow before 9 PM!"},
	{Hour: 14, Message: "Just a friendly reminder to confirm your meals for tomorrow."},
	{Hour: 20, Message: "Last call! Please submit your meal choices for tomorrow in the next hour."},
}

// WeekendReminderMessage is shown on the weekly flow during weekends.
const WeekendReminderMessage = "Time to plan your meals for the upcoming week! Please submit your choices."

// ReminderLedger records which (employee, date, hour) reminders have already
// been dispatched, so each fires at most once per day.
type ReminderLedger interface {
	Sent(ctx context.Context, employeeID, date string, hour int) (bool, error)
	MarkSent(ctx context.Context, employeeID, date string, hour int) error
}

// Notifier delivers a message to a phone number.
type Notifier interface {
	Send(ctx context.Context, phone, message string) error
}

// ReminderScheduler decides which reminder slots are due and dispatches
// them. A slot is marked in the ledger only after its dispatch succeeded, so
// a failed send is retried on the next pass (at-least-once).
type ReminderScheduler struct {
	slots    []ReminderSlot
	ledger   ReminderLedger
	notifier Notifier
}

// NewReminderScheduler builds a scheduler over the given slots, which must
// be sorted ascending by hour.
func NewReminderScheduler(slots []ReminderSlot, ledger ReminderLedger, notifier Notifier) *ReminderScheduler {
	return &ReminderScheduler{slots: slots, ledger: ledger, notifier: notifier}
}

// Due returns every slot whose hour has been reached today and which has no
// ledger entry yet, in ascending hour order. Slots are independent: a later
// slot can be due even if an earlier one already fired.
func (s *ReminderScheduler) Due(ctx context.Context, now time.Time, employeeID string) ([]ReminderSlot, error) {
	date := DateKey(now)
	var due []ReminderSlot
	for _, slot := range s.slots {
		if now.Hour() < slot.Hour {
			continue
		}
		sent, err := s.ledger.Sent(ctx, employeeID, date, slot.Hour)
		if err != nil {
			return nil, err
		}
		if !sent {
			due = append(due, slot)
		}
	}
	return due, nil
}

// Dispatch sends every due reminder to the employee's phone, marking each in
// the ledger as it succeeds. Failing slots are skipped and collected; the
// remaining slots are still attempted.
func (s *ReminderScheduler) Dispatch(ctx context.Context, now time.Time, emp Employee) error {
	due, err := s.Due(ctx, now, emp.ID)
	if err != nil {
		return err
	}

	date := DateKey(now)
	var errs []error
	for _, slot := range due {
		if err := s.notifier.Send(ctx, emp.Phone, slot.Message); err != nil {
			errs = append(errs, fmt.Errorf("reminder %02d:00: %w", slot.Hour, err))
			continue
		}
		if err := s.ledger.MarkSent(ctx, emp.ID, date, slot.Hour); err != nil {
			errs = append(errs, fmt.Errorf("reminder %02d:00 ledger: %w", slot.Hour, err))
		}
	}
	return errors.Join(errs...)
}
