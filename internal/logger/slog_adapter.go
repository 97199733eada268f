package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// NewSlogHandler returns a slog.Handler that forwards records to l. Attributes
// are appended to the message as key=value pairs, joined by dots for groups.
func NewSlogHandler(l *Logger) slog.Handler {
	if l == nil {
		l = discard("")
	}
	return &slogAdapter{log: l}
}

type slogAdapter struct {
	log    *Logger
	groups []string
	// attrs carry the groups that were open when they were added
	attrs []groupedAttr
}

type groupedAttr struct {
	groups []string
	attr   slog.Attr
}

func (h *slogAdapter) Enabled(_ context.Context, level slog.Level) bool {
	return h.log.enabled(slogLevelToLoggerLevel(level))
}

func (h *slogAdapter) Handle(_ context.Context, record slog.Record) error {
	level := slogLevelToLoggerLevel(record.Level)
	if !h.log.enabled(level) {
		return nil
	}

	var builder strings.Builder
	for _, ga := range h.attrs {
		writeAttr(&builder, ga.attr, ga.groups)
	}
	record.Attrs(func(attr slog.Attr) bool {
		writeAttr(&builder, attr, h.groups)
		return true
	})

	message := record.Message
	if attrText := builder.String(); attrText != "" {
		if message != "" {
			message += " "
		}
		message += attrText
	}

	h.log.log(level, "%s", message)
	return nil
}

func (h *slogAdapter) WithAttrs(attrs []slog.Attr) slog.Handler {
	groups := append([]string(nil), h.groups...)
	newAttrs := make([]groupedAttr, 0, len(h.attrs)+len(attrs))
	newAttrs = append(newAttrs, h.attrs...)
	for _, attr := range attrs {
		newAttrs = append(newAttrs, groupedAttr{groups: groups, attr: attr})
	}
	return &slogAdapter{
		log:    h.log,
		groups: groups,
		attrs:  newAttrs,
	}
}

func (h *slogAdapter) WithGroup(name string) slog.Handler {
	newGroups := append([]string(nil), h.groups...)
	if name != "" {
		newGroups = append(newGroups, name)
	}
	return &slogAdapter{
		log:    h.log,
		groups: newGroups,
		attrs:  append([]groupedAttr(nil), h.attrs...),
	}
}

func slogLevelToLoggerLevel(level slog.Level) Level {
	switch {
	case level >= slog.LevelError:
		return LevelError
	case level >= slog.LevelWarn:
		return LevelWarn
	case level >= slog.LevelInfo:
		return LevelInfo
	default:
		return LevelDebug
	}
}

func writeAttr(builder *strings.Builder, attr slog.Attr, prefix []string) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}

	if attr.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if attr.Key != "" {
			groupPrefix = append(append([]string(nil), prefix...), attr.Key)
		}
		for _, nested := range attr.Value.Group() {
			writeAttr(builder, nested, groupPrefix)
		}
		return
	}

	key := attr.Key
	if key == "" {
		key = "attr"
	}
	if len(prefix) > 0 {
		key = strings.Join(prefix, ".") + "." + key
	}

	if builder.Len() > 0 {
		builder.WriteByte(' ')
	}
	fmt.Fprintf(builder, "%s=%s", key, quoteIfNeeded(attr.Value.String()))
}

// quoteIfNeeded keeps values such as calculator input lines readable as one token.
func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}
