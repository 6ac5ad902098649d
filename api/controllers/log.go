package controllers

import (
	"context"

	pkgerrors "github.com/opencourier/client-provider/pkg/errors"
	"github.com/opencourier/client-provider/pkg/logger"
)

// logError emits the flattened error chain alongside the message so
// repository failures keep their postgres diagnostics in the log entry.
func logError(ctx context.Context, logg *logger.Logger, msg string, err error) {
	if logg == nil {
		return
	}
	dump := pkgerrors.Dump(err)
	meta := pkgerrors.MetadataFor(dump.Code)
	ctx = logg.WithFields(ctx, map[string]any{
		"error_code":  dump.Code,
		"error_chain": dump.Chain,
		"retryable":   meta.Retryable,
		"pg_code":     dump.PGCode,
		"pg_detail":   dump.PGDetail,
	})
	logg.Error(ctx, msg, err)
}
