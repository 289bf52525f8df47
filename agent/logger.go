package agent

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"
)

// ActivityLog keeps append-only JSONL records of every dispatched command
// and every failure. A log write failure never aborts the command that
// produced it.
type ActivityLog struct {
	dir string
}

// NewActivityLog returns a log writing under dir.
func NewActivityLog(dir string) *ActivityLog { return &ActivityLog{dir: dir} }

type logRecord struct {
	Timestamp string         `json:"timestamp"`
	Input     string         `json:"input"`
	Action    string         `json:"action,omitempty"`
	Params    map[string]any `json:"params,omitempty"`
	Output    string         `json:"output,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// Command records a successfully dispatched command.
func (l *ActivityLog) Command(input, action string, params map[string]any, output string) {
	l.append("command_log.jsonl", logRecord{
		Timestamp: time.Now().Format(time.RFC3339),
		Input:     input,
		Action:    action,
		Params:    params,
		Output:    output,
	})
}

// Failure records a failed command.
func (l *ActivityLog) Failure(input, action string, params map[string]any, err error) {
	l.append("error_log.jsonl", logRecord{
		Timestamp: time.Now().Format(time.RFC3339),
		Input:     input,
		Action:    action,
		Params:    params,
		Error:     err.Error(),
	})
}

func (l *ActivityLog) append(name string, record logRecord) {
	if l == nil {
		return
	}
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		log.Printf("could not create log directory: %v", err)
		return
	}
	line, err := json.Marshal(record)
	if err != nil {
		log.Printf("could not encode log record: %v", err)
		return
	}
	f, err := os.OpenFile(filepath.Join(l.dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("could not open log file: %v", err)
		return
	}
	defer f.Close()
	if _, err := f.Write(append(line, '\n')); err != nil {
		log.Printf("could not write log record: %v", err)
	}
}
