package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Logger = logrus.New()
var once sync.Once

// Configure sets level, formatter and output of logger.
// When file is set, entries go to stderr and to a rotated file.
func Configure(logger *logrus.Logger, level, file string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if file == "" {
		logger.SetOutput(os.Stderr)
		return nil
	}

	if dir := filepath.Dir(file); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	logFile := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	logger.SetOutput(io.MultiWriter(os.Stderr, logFile))
	return nil
}

// InitLogger configures the global Logger. Only the first call has an effect.
func InitLogger(level, file string) {
	once.Do(func() {
		if err := Configure(Logger, level, file); err != nil {
			Logger.Warnf("falling back to default logger: %v", err)
			return
		}
		Logger.Debugf("logger initialized (level=%s, file=%q)", level, file)
	})
}
