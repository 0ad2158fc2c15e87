package handlers

import (
	"context"

	"github.com/sirupsen/logrus"
)

type logEntryKey struct{}

// WithLogEntry returns a context whose handler logs go through entry.
// Entry points use it to attach invocation fields such as the request and
// correlation IDs.
func WithLogEntry(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, logEntryKey{}, entry)
}

func (h *UserHandler) log(ctx context.Context) *logrus.Entry {
	if entry, ok := ctx.Value(logEntryKey{}).(*logrus.Entry); ok && entry != nil {
		return entry
	}
	return logrus.NewEntry(h.logger).WithContext(ctx)
}
