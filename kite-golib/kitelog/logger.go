package kitelog

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/kiteco/fraudfilter/kite-golib/envutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	release = envutil.GetenvDefault("RELEASE", "dev")
	flags   = log.LstdFlags | log.Lmicroseconds
)

// Basic prefixes the log line with the release identifier and writes to stderr
var Basic = New(os.Stderr, "")

// Interface encapsulates the relevant methods of log.Logger
type Interface interface {
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// Logger encapsulates a logging handler and the stage durations recorded through it
type Logger struct {
	Default   Interface
	Durations Durations
}

// New returns a Logger writing plain prefixed lines to w. The run id, if any, is
// included in the prefix.
func New(w io.Writer, run string) *Logger {
	prefix := fmt.Sprintf("[fraudfilter release=%s] ", release)
	if run != "" {
		prefix = fmt.Sprintf("[fraudfilter release=%s run=%s] ", release, run)
	}
	return &Logger{
		Default: log.New(w, prefix, flags),
	}
}

// NewJSON returns a Logger writing one JSON object per line to w.
func NewJSON(w io.Writer, run string) *Logger {
	config := zap.NewProductionEncoderConfig()
	config.EncodeTime = zapcore.RFC3339TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(config), zapcore.Lock(zapcore.AddSync(w)), zapcore.InfoLevel)

	logger := zap.New(core).With(zap.String("release", release))
	if run != "" {
		logger = logger.With(zap.String("run", run))
	}
	return &Logger{
		Default: zapLogger{logger.Sugar()},
	}
}

// Printf implements Interface
func (l *Logger) Printf(format string, v ...interface{}) {
	l.Default.Printf(format, v...)
}

// Println implements Interface
func (l *Logger) Println(v ...interface{}) {
	l.Default.Println(v...)
}

// Sync flushes any buffered entries of the underlying handler.
func (l *Logger) Sync() error {
	if s, ok := l.Default.(interface{ Sync() error }); ok {
		return s.Sync()
	}
	return nil
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

func (z zapLogger) Printf(format string, v ...interface{}) {
	z.sugar.Infof(format, v...)
}

func (z zapLogger) Println(v ...interface{}) {
	z.sugar.Info(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

func (z zapLogger) Sync() error {
	return z.sugar.Sync()
}
