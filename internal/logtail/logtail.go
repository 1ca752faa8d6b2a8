package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
)

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one decoded JSON log line.
type Entry struct {
	Time    time.Time
	Level   zapcore.Level
	Logger  string
	Caller  string
	Message string
	Fields  map[string]string
	Raw     string
	// Structured is false for lines that were not JSON objects.
	Structured bool
}

// TimeLayout matches the layout the application logger writes.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

var reservedKeys = map[string]bool{
	"time": true, "level": true, "logger": true, "caller": true, "msg": true, "stacktrace": true,
}

// Parse decodes a JSON log line. Anything else becomes an unstructured
// info entry carrying the raw text as its message.
func Parse(line string) Entry {
	e := Entry{Raw: line, Level: zapcore.InfoLevel, Message: line}
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") {
		return e
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
		return e
	}

	e.Structured = true
	e.Message = stringField(obj, "msg")
	e.Logger = stringField(obj, "logger")
	e.Caller = stringField(obj, "caller")
	if lvl, err := zapcore.ParseLevel(stringField(obj, "level")); err == nil {
		e.Level = lvl
	}
	if ts := stringField(obj, "time"); ts != "" {
		if t, err := time.Parse(TimeLayout, ts); err == nil {
			e.Time = t
		} else if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			e.Time = t
		}
	}
	for k, v := range obj {
		if reservedKeys[k] {
			continue
		}
		if e.Fields == nil {
			e.Fields = make(map[string]string)
		}
		e.Fields[k] = formatValue(v)
	}
	return e
}

// ParseLines decodes lines in order, skipping blank ones.
func ParseLines(lines []string) []Entry {
	out := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, Parse(line))
	}
	return out
}

// Filter keeps entries at or above min whose text contains query
// (case-insensitive). An empty query matches everything.
func Filter(entries []Entry, min zapcore.Level, query string) []Entry {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []Entry
	for _, e := range entries {
		if e.Level < min {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(e.Raw), query) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FieldKeys returns the entry's extra field names in sorted order.
func (e Entry) FieldKeys() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func stringField(obj map[string]any, key string) string {
	if v, ok := obj[key].(string); ok {
		return v
	}
	return ""
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return "null"
	case float64, bool:
		return fmt.Sprint(val)
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(raw)
	}
}
