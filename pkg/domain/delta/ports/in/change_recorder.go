package delta_in

import (
	"context"

	delta_entities "github.com/sportlink/sportlink-api/pkg/domain/delta/entities"
)

// ChangeRecorder is the write side of the change log, consumed by every
// domain that mutates tracked entities. Record is best-effort: a failed
// insert is logged and swallowed so it never aborts the business mutation.
type ChangeRecorder interface {
	Record(ctx context.Context, change *delta_entities.EntityChangeLog)
}
