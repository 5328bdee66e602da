// internal/game/scheduler.go
package game

import "time"

// Task is a scheduled function that has not necessarily run yet.
type Task interface {
	// Cancel prevents the task from running. It reports false if the task already ran
	// or was already cancelled.
	Cancel() bool
}

// Scheduler runs functions after a delay.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) Task
}

// TimerScheduler schedules with time.AfterFunc; fn runs on its own goroutine.
type TimerScheduler struct{}

func (TimerScheduler) Schedule(delay time.Duration, fn func()) Task {
	return timerTask{time.AfterFunc(delay, fn)}
}

type timerTask struct{ t *time.Timer }

func (t timerTask) Cancel() bool { return t.t.Stop() }
