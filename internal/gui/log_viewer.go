package gui

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// LogViewer is a widget that displays log records. It is also an io.Writer
// for the JSONL logger and can be written to before the window exists.
type LogViewer struct {
	widget.BaseWidget

	mu          sync.Mutex
	messages    []string
	maxMessages int
	partial     string

	// built lazily on the UI thread
	logEntry   *widget.Entry
	scrollView *container.Scroll
}

// NewLogViewer creates a new log viewer widget
func NewLogViewer() *LogViewer {
	v := &LogViewer{maxMessages: 1000}
	v.ExtendBaseWidget(v)
	return v
}

// CreateRenderer implements fyne.Widget
func (v *LogViewer) CreateRenderer() fyne.WidgetRenderer {
	entry := widget.NewMultiLineEntry()
	entry.Disable()
	entry.Wrapping = fyne.TextWrapWord

	scroll := container.NewScroll(entry)
	scroll.SetMinSize(fyne.NewSize(0, 160))

	v.mu.Lock()
	v.logEntry = entry
	v.scrollView = scroll
	text := strings.Join(v.messages, "\n")
	v.mu.Unlock()
	entry.SetText(text)

	return widget.NewSimpleRenderer(container.NewBorder(
		widget.NewLabel("Log messages (newest first):"),
		nil, nil, nil,
		scroll,
	))
}

// Write implements io.Writer. Each complete line is one message.
func (v *LogViewer) Write(p []byte) (int, error) {
	v.mu.Lock()
	data := v.partial + string(p)
	lines := strings.Split(data, "\n")
	v.partial = lines[len(lines)-1]
	v.mu.Unlock()

	for _, line := range lines[:len(lines)-1] {
		if line = strings.TrimSpace(line); line != "" {
			v.AddMessage(formatRecord(line))
		}
	}
	return len(p), nil
}

// AddMessage adds a message to the log
func (v *LogViewer) AddMessage(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.messages = append([]string{message}, v.messages...)
	if len(v.messages) > v.maxMessages {
		v.messages = v.messages[:v.maxMessages]
	}
	v.show(strings.Join(v.messages, "\n"))
}

// Messages returns the buffered messages, newest first.
func (v *LogViewer) Messages() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.messages...)
}

// Clear clears all log messages
func (v *LogViewer) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.messages = v.messages[:0]
	v.show("")
}

// show must be called with mu held.
func (v *LogViewer) show(text string) {
	entry, scroll := v.logEntry, v.scrollView
	if entry == nil {
		return
	}
	fyne.Do(func() {
		entry.SetText(text)
		scroll.Offset = fyne.NewPos(0, 0)
		scroll.Refresh()
	})
}

// formatRecord turns a JSON log record into "15:04:05 INFO msg key=value".
// Lines that are not JSON objects are returned unchanged.
func formatRecord(line string) string {
	var rec map[string]any
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		return line
	}

	stamp := ""
	if s, ok := rec["time"].(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			stamp = t.Local().Format("15:04:05")
		}
	}
	level, _ := rec["level"].(string)
	msg, _ := rec["msg"].(string)
	delete(rec, "time")
	delete(rec, "level")
	delete(rec, "msg")
	delete(rec, "app")

	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+3)
	for _, s := range []string{stamp, level, msg} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, rec[k]))
	}
	return strings.Join(parts, " ")
}
