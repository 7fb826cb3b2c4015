// Package logger provides leveled, component-tagged logging for asnisum.
package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level controls which messages are emitted.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

var (
	mu     sync.Mutex
	level            = INFO
	output io.Writer = os.Stderr
)

// SetLevel sets the minimum level that will be logged.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// SetOutput redirects log output. Used by tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logf(l Level, component, msg string, fields map[string]any) {
	mu.Lock()
	defer mu.Unlock()
	if l < level {
		return
	}

	var b strings.Builder
	b.WriteString(time.Now().UTC().Format(time.RFC3339))
	b.WriteString(" [")
	b.WriteString(levelNames[l])
	b.WriteString("] [")
	b.WriteString(component)
	b.WriteString("] ")
	b.WriteString(msg)

	if len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, fields[k])
		}
	}
	b.WriteByte('\n')

	io.WriteString(output, b.String())
}

func DebugC(component, msg string)                    { logf(DEBUG, component, msg, nil) }
func DebugCF(component, msg string, f map[string]any) { logf(DEBUG, component, msg, f) }
func InfoC(component, msg string)                     { logf(INFO, component, msg, nil) }
func InfoCF(component, msg string, f map[string]any)  { logf(INFO, component, msg, f) }
func WarnC(component, msg string)                     { logf(WARN, component, msg, nil) }
func WarnCF(component, msg string, f map[string]any)  { logf(WARN, component, msg, f) }
func ErrorC(component, msg string)                    { logf(ERROR, component, msg, nil) }
func ErrorCF(component, msg string, f map[string]any) { logf(ERROR, component, msg, f) }
