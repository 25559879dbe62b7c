package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the shared application logger.
var Logger = logrus.New()

var once sync.Once

// Init configures the shared logger to write to stdout and a rotating log
// file. Safe to call more than once; only the first call takes effect.
func Init(logFile string) {
	once.Do(func() {
		if dir := filepath.Dir(logFile); dir != "." {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				logrus.Fatalf("Failed to create log directory %s: %v", dir, err)
			}
		}

		rotating := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}

		Logger.SetOutput(io.MultiWriter(os.Stdout, rotating))
		Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		Logger.SetLevel(logrus.InfoLevel)

		Logger.WithField("file", logFile).Info("Logger initialized")
	})
}

// Event returns an entry tagged with the event name and a unique event id,
// for correlating a request's log lines.
func Event(name string) *logrus.Entry {
	return Logger.WithFields(logrus.Fields{
		"event":    name,
		"event_id": uuid.NewString(),
	})
}
