package errutil

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/stresscheck/pkg/utils/logging"
)

// Handle logs err with goerr values and stack trace, and sends it to Sentry
// when a client is configured.
func Handle(ctx context.Context, err error, msg string) {
	if err == nil {
		return
	}

	attrs := []any{slog.String("error", err.Error())}
	var ge *goerr.Error
	if errors.As(err, &ge) {
		attrs = append(attrs,
			slog.Any("values", ge.Values()),
			slog.Any("stack", ge.Stacks()),
		)
	}
	logging.From(ctx).Error(msg, attrs...)

	report(ctx, err)
}

// HandleHTTP logs the error and writes a plain text error response. Server
// side failures (5xx) are also reported to Sentry.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	attrs := []any{
		slog.Int("status", statusCode),
		slog.String("error", err.Error()),
	}
	var ge *goerr.Error
	if errors.As(err, &ge) {
		attrs = append(attrs, slog.Any("values", ge.Values()))
		if statusCode >= http.StatusInternalServerError {
			attrs = append(attrs, slog.Any("stack", ge.Stacks()))
		}
	}

	if statusCode >= http.StatusInternalServerError {
		logging.From(ctx).Error("HTTP error", attrs...)
		report(ctx, err)
	} else {
		logging.From(ctx).Warn("HTTP error", attrs...)
	}

	http.Error(w, err.Error(), statusCode)
}

func report(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}

	hub = hub.Clone()
	var ge *goerr.Error
	if errors.As(err, &ge) {
		hub.ConfigureScope(func(scope *sentry.Scope) {
			for k, v := range ge.Values() {
				scope.SetExtra(k, v)
			}
		})
	}
	if evID := hub.CaptureException(err); evID != nil {
		logging.From(ctx).Info("error reported to sentry", slog.String("event_id", string(*evID)))
	}
}
