package logger

import (
	logModel "logistics-erp/models/log"
	"logistics-erp/types"

	"gorm.io/gorm"
)

// AsyncLogger persists HTTP request logs to the database off the request
// path. Entries are dropped with a console warning when the buffer is full;
// request handling never blocks on logging.
type AsyncLogger struct {
	db      *gorm.DB
	channel chan types.LogEntry
}

func NewAsyncLogger(db *gorm.DB) *AsyncLogger {
	return &AsyncLogger{
		db:      db,
		channel: make(chan types.LogEntry, 100),
	}
}

// ProcessLog drains the channel into the logs table. Run it in its own
// goroutine; it returns when Close is called.
func (l *AsyncLogger) ProcessLog() {
	Info("Starting asynchronous request logger")

	for entry := range l.channel {
		dbLog := logModel.Log{
			Method:          entry.Method,
			URL:             entry.URL,
			RequestBody:     entry.RequestBody,
			ResponseBody:    entry.ResponseBody,
			RequestHeaders:  entry.RequestHeaders,
			ResponseHeaders: entry.ResponseHeaders,
			StatusCode:      entry.StatusCode,
			CreatedAt:       entry.CreatedAt,
		}

		if err := l.db.Create(&dbLog).Error; err != nil {
			Error("Failed to insert request log entry", err)
		}
	}
}

// Log queues a log entry without blocking the caller.
func (l *AsyncLogger) Log(entry types.LogEntry) {
	select {
	case l.channel <- entry:
	default:
		Warning("Request log buffer full, dropping entry: " + entry.Method + " " + entry.URL)
	}
}

// Close stops ProcessLog once the queue drains.
func (l *AsyncLogger) Close() {
	close(l.channel)
}
