// Package logtail reads the tail of the application's log file and decodes
// the JSON lines written by the zap logger.
//
// Read keeps a ring buffer of maxLines entries, so memory is bounded by the
// tail size rather than the file size. A missing file is not an error; the
// log simply has not been written yet.
//
//	lines, err := logtail.Read(cfg.LogFile, 400)
//	entries := logtail.Filter(logtail.ParseLines(lines), zapcore.InfoLevel, "")
//
// Lines that are not JSON objects (console format, stray output) become
// unstructured info entries so nothing is hidden from the log view.
package logtail
