package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the process-wide logger. It is usable before Init so packages and
// tests can log without setup.
var Log = logrus.New()

type Options struct {
	Level   string
	Format  string
	File    string
	Session string
}

// Init configures Log. It must be called once from main before the game
// starts.
func Init(opts Options) {
	Log = logrus.New()

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(opts.Format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	var out io.Writer = os.Stderr
	if opts.File != "" {
		out = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     7,
		})
	}
	Log.SetOutput(out)

	if opts.Session != "" {
		Log.AddHook(sessionHook(opts.Session))
	}
}

// sessionHook stamps every entry with the run's session id.
type sessionHook string

func (h sessionHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h sessionHook) Fire(e *logrus.Entry) error {
	e.Data["session"] = string(h)
	return nil
}
