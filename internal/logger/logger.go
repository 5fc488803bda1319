package logger

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"regexp"
	"strings"
	"sync/atomic"
	"time"
)

type LogLevel string

const (
	DebugLevel LogLevel = "DEBUG"
	InfoLevel  LogLevel = "INFO"
	WarnLevel  LogLevel = "WARN"
	ErrorLevel LogLevel = "ERROR"
)

var rank = map[LogLevel]int32{DebugLevel: 0, InfoLevel: 1, WarnLevel: 2, ErrorLevel: 3}

// minLevel is shared by every Logger so config can set it once at start-up.
var minLevel atomic.Int32

func init() {
	minLevel.Store(rank[InfoLevel])
}

// SetLevel sets the process-wide minimum level. Unknown names are ignored.
func SetLevel(name string) {
	if r, ok := rank[LogLevel(strings.ToUpper(name))]; ok {
		minLevel.Store(r)
	}
}

// LogEntry describes the structure of a log message
type LogEntry struct {
	Time    string   `json:"time"`
	Level   LogLevel `json:"level"`
	Module  string   `json:"module,omitempty"`
	Message string   `json:"message"`
	Error   string   `json:"error,omitempty"`
}

// Logger writes one JSON entry per line.
type Logger struct {
	out *log.Logger
}

func New() *Logger {
	return NewWithWriter(os.Stdout)
}

func NewWithWriter(w io.Writer) *Logger {
	return &Logger{out: log.New(w, "", 0)}
}

var (
	emailRegex  = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	tokenRegex  = regexp.MustCompile(`eyJ[^\s]+`)
	authorRegex = regexp.MustCompile(`\b(user_id|author_id)\s*=\s*-?\d+\b`)
)

// Anonymize masks emails, JWTs and user/author ids.
func Anonymize(s string) string {
	s = emailRegex.ReplaceAllString(s, "[REDACTED_EMAIL]")
	s = tokenRegex.ReplaceAllString(s, "[REDACTED_TOKEN]")
	s = authorRegex.ReplaceAllString(s, "$1=[USER_ID]")
	return s
}

func (l *Logger) log(module string, level LogLevel, msg string, err error) {
	if rank[level] < minLevel.Load() {
		return
	}
	entry := LogEntry{
		Time:    time.Now().Format(time.RFC3339),
		Level:   level,
		Module:  module,
		Message: Anonymize(msg),
	}
	if err != nil {
		entry.Error = Anonymize(err.Error())
	}
	data, _ := json.Marshal(entry)
	l.out.Println(string(data))
}

func (l *Logger) Info(module, msg string) {
	l.log(module, InfoLevel, msg, nil)
}

func (l *Logger) Debug(module, msg string) {
	l.log(module, DebugLevel, msg, nil)
}

func (l *Logger) Warn(module, msg string, err error) {
	l.log(module, WarnLevel, msg, err)
}

func (l *Logger) Error(module, msg string, err error) {
	l.log(module, ErrorLevel, msg, err)
}
