package tui

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/almanac/internal/drag"
)

// DebugLogger logs TUI state, keystrokes, and pointer events to a file.
type DebugLogger struct {
	mu      sync.Mutex
	file    *os.File
	enabled bool
	seq     int
}

// Global debug logger instance
var debugLog *DebugLogger

// DebugLogPath is the fixed path for debug logs
const DebugLogPath = "almanac-debug.log"

// InitDebugLogger initializes the debug logger if debug mode is enabled.
func InitDebugLogger(enabled bool) error {
	return initDebugLoggerAt(DebugLogPath, enabled)
}

func initDebugLoggerAt(logPath string, enabled bool) error {
	if !enabled {
		debugLog = &DebugLogger{enabled: false}
		return nil
	}

	f, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	debugLog = &DebugLogger{
		file:    f,
		enabled: true,
	}

	debugLog.log("DEBUG_START", map[string]any{
		"log_file": logPath,
		"time":     time.Now().Format(time.RFC3339),
	})

	return nil
}

// CloseDebugLogger closes the debug log file.
func CloseDebugLogger() {
	if debugLog != nil && debugLog.file != nil {
		debugLog.log("DEBUG_END", map[string]any{
			"time": time.Now().Format(time.RFC3339),
		})
		_ = debugLog.file.Close()
		debugLog.file = nil
	}
}

func debugEnabled() bool {
	return debugLog != nil && debugLog.enabled
}

// log writes a structured log entry.
func (d *DebugLogger) log(event string, data map[string]any) {
	if d == nil || !d.enabled || d.file == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	entry := map[string]any{
		"seq":   d.seq,
		"ts":    time.Now().Format("15:04:05.000"),
		"event": event,
	}
	for k, v := range data {
		entry[k] = v
	}

	b, err := sonic.Marshal(entry)
	if err != nil {
		b = []byte(fmt.Sprintf(`{"seq":%d,"event":"LOG_ERROR","error":%q}`, d.seq, err.Error()))
	}
	_, _ = fmt.Fprintf(d.file, "%s\n", b)
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	if !debugEnabled() {
		return
	}
	debugLog.log("KEY_PRESS", map[string]any{
		"key": msg.String(),
	})
}

// LogMouse logs a raw mouse event.
func LogMouse(msg tea.MouseMsg) {
	if !debugEnabled() {
		return
	}
	debugLog.log("MOUSE", map[string]any{
		"x":     msg.X,
		"y":     msg.Y,
		"event": msg.String(),
	})
}

// LogModeChange logs a mode change.
func LogModeChange(from, to Mode, reason string) {
	if !debugEnabled() || from == to {
		return
	}
	debugLog.log("MODE_CHANGE", map[string]any{
		"from":   modeString(from),
		"to":     modeString(to),
		"reason": reason,
	})
}

// LogDragStart logs the beginning of a gesture.
func LogDragStart(s drag.Session) {
	if !debugEnabled() {
		return
	}
	debugLog.log("DRAG_START", map[string]any{
		"gesture":   s.Gesture.String(),
		"index":     s.Index,
		"item":      truncateStr(s.Item.Title, 30),
		"initial_x": s.InitialX,
		"left":      s.Initial.Left,
		"width":     s.Initial.Width,
		"start_day": s.StartDay,
		"end_day":   s.EndDay,
	})
}

// LogDragMove logs provisional geometry during a gesture.
func LogDragMove(s drag.Session) {
	if !debugEnabled() {
		return
	}
	debugLog.log("DRAG_MOVE", map[string]any{
		"gesture":   s.Gesture.String(),
		"left":      s.Current.Left,
		"width":     s.Current.Width,
		"day_delta": s.DayDelta(),
		"preview":   s.Preview.String(),
	})
}

// LogDragEnd logs how a gesture ended.
func LogDragEnd(res drag.Result) {
	if !debugEnabled() {
		return
	}
	debugLog.log("DRAG_END", map[string]any{
		"result":    res.Kind.String(),
		"gesture":   res.Gesture.String(),
		"item":      res.Item.String(),
		"day_delta": res.DayDelta,
	})
}

// LogLayout logs the dimensions derived from a window size.
func LogLayout(layout LayoutCache, timelineWidth float64) {
	if !debugEnabled() {
		return
	}
	debugLog.log("LAYOUT", map[string]any{
		"width":          layout.Width,
		"height":         layout.Height,
		"gutter_w":       layout.GutterW,
		"timeline_w":     layout.TimelineW,
		"rows_h":         layout.RowsH,
		"timeline_cells": timelineWidth,
	})
}

// LogError logs an error.
func LogError(context string, err error) {
	if !debugEnabled() || err == nil {
		return
	}
	debugLog.log("ERROR", map[string]any{
		"context": context,
		"error":   err.Error(),
	})
}

// modeString returns a string representation of a Mode.
func modeString(m Mode) string {
	switch m {
	case ModeNormal:
		return "Normal"
	case ModeDrag:
		return "Drag"
	case ModePrompt:
		return "Prompt"
	case ModeConfirm:
		return "Confirm"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// truncateStr truncates a string to max runes.
func truncateStr(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
