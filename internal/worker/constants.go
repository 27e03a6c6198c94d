package worker

import "time"

const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgQueueClosed     = "Worker pool stopped, dropping job"
)

// Result labels for the jobs-processed counter
const (
	ResultOK    = "ok"
	ResultError = "error"
)

const (
	LogMsgReservationsExpired = "Expired reservations released"
	LogMsgWeekRolloverStart   = "Week rollover starting"
	LogMsgWeekRolloverDone    = "Week rollover completed"
	LogMsgWeekRolloverFailed  = "Week rollover failed"
	LogMsgWeekRolloverNext    = "Next week rollover scheduled"
)

// JobTimeout bounds a single job run
const JobTimeout = 30 * time.Second
