package planning

import (
	"context"
	"time"
)

// WindowState is the observable state of the submission window.
type WindowState string

const (
	WindowOpen    WindowState = "open"
	WindowClosed  WindowState = "closed"  // today is Sunday
	WindowExpired WindowState = "expired" // clock skew / stale render guard
)

// Countdown is the remaining time broken down for display.
type Countdown struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Window is the submission window as seen at a single instant.
type Window struct {
	State     WindowState `json:"state"`
	Remaining Countdown   `json:"remaining"`
	Deadline  time.Time   `json:"deadline"`
}

// SubmissionWindow evaluates the Monday–Saturday submission window at now.
// The deadline is Saturday 23:59:59.999 of the current week in now's
// location. Sunday is closed outright. Expired covers the boundary where the
// week's window has numerically elapsed; with a live 1s tick it is close to
// unreachable but stale renders and skewed clocks do land there.
func SubmissionWindow(now time.Time) Window {
	if now.Weekday() == time.Sunday {
		return Window{State: WindowClosed}
	}

	daysToSaturday := int(time.Saturday) - int(now.Weekday())
	deadline := time.Date(now.Year(), now.Month(), now.Day()+daysToSaturday,
		23, 59, 59, 999_000_000, now.Location())

	if !now.Before(deadline) {
		return Window{State: WindowExpired, Deadline: deadline}
	}

	remaining := deadline.Sub(now)
	total := int(remaining / time.Second)
	return Window{
		State: WindowOpen,
		Remaining: Countdown{
			Days:    total / 86400,
			Hours:   total % 86400 / 3600,
			Minutes: total % 3600 / 60,
			Seconds: total % 60,
		},
		Deadline: deadline,
	}
}

// RunCountdown recomputes the window from the wall clock once per second and
// hands each result to fn until ctx is cancelled. Recomputing from now
// instead of decrementing keeps the display correct across sleep/suspend.
func RunCountdown(ctx context.Context, fn func(Window)) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	fn(SubmissionWindow(time.Now()))
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(SubmissionWindow(time.Now()))
		}
	}
}
