package logger

import (
	"context"
	"fmt"
	"time"

	"go-transformer/internal/config"
	"go-transformer/internal/database"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap/zapcore"
)

// LogEntry holds the data passed from Zap to our worker
type LogEntry struct {
	Level   zapcore.Level
	Message string
	Feature string
	Caller  string
}

type logRecord struct {
	AppId        string    `bson:"app_id"`
	Message      string    `bson:"message"`
	Feature      string    `bson:"feature,omitempty"`
	Caller       string    `bson:"caller,omitempty"`
	LogLevelId   int       `bson:"log_level_id"`
	CreatedOnUtc time.Time `bson:"created_on_utc"`
}

// DBLogWriter handles the async writing
type DBLogWriter struct {
	db      *mongo.Database
	logChan chan LogEntry
	appId   string
}

// NewDBLogWriter initializes the worker
func NewDBLogWriter(mongodb *database.MongodbDB, cfg *config.Config) *DBLogWriter {
	writer := &DBLogWriter{
		db:      mongodb.DB,
		logChan: make(chan LogEntry, 1000),
		appId:   cfg.AppId,
	}

	go writer.processLogs()

	return writer
}

// AddLog is called by our Zap hook
func (w *DBLogWriter) AddLog(entry LogEntry) {
	select {
	case w.logChan <- entry:
	default:
		// Channel full: drop instead of blocking the API
		fmt.Println("DB Log Channel Full! Dropping log:", entry.Message)
	}
}

func (w *DBLogWriter) processLogs() {
	for entry := range w.logChan {
		record := logRecord{
			AppId:        w.appId,
			Message:      entry.Message,
			Feature:      entry.Feature,
			Caller:       entry.Caller,
			LogLevelId:   mapLevelToInt(entry.Level),
			CreatedOnUtc: time.Now().UTC(),
		}

		// Insert errors are swallowed to keep the app running
		w.db.Collection("logs").InsertOne(context.Background(), record)
	}
}

func mapLevelToInt(l zapcore.Level) int {
	switch l {
	case zapcore.DebugLevel:
		return 10
	case zapcore.InfoLevel:
		return 20
	case zapcore.WarnLevel:
		return 30
	case zapcore.ErrorLevel:
		return 40
	case zapcore.FatalLevel:
		return 50
	default:
		return 20
	}
}
