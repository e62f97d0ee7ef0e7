package queries

import (
	"context"

	"github.com/coastalprograms/swms-engine/internal/pkg/errs"
)

var ErrAuditRead = errs.New("failed to read audit trail")

// AuditReadStore scans persisted audit and send state. Each method is
// independent; one failing never blocks the others.
type AuditReadStore interface {
	Trail(ctx context.Context, f Filter) ([]*AuditEntryView, error)
	EmailActivity(ctx context.Context, f Filter) ([]*EmailActivityItem, error)
	DocumentAccess(ctx context.Context, f Filter) ([]*AuditEntryView, error)
}

// AuditQueries serves the compliance export endpoints: the full audit trail,
// email activity per send, and portal document-access events.
type AuditQueries interface {
	Trail(ctx context.Context, f Filter) ([]*AuditEntryView, error)
	EmailActivity(ctx context.Context, f Filter) ([]*EmailActivityItem, error)
	DocumentAccess(ctx context.Context, f Filter) ([]*AuditEntryView, error)
}

type auditQueriesImpl struct {
	store AuditReadStore
}

func NewAuditQueries(store AuditReadStore) AuditQueries {
	return &auditQueriesImpl{store: store}
}

func (q *auditQueriesImpl) Trail(ctx context.Context, f Filter) ([]*AuditEntryView, error) {
	rows, err := q.store.Trail(ctx, f)
	if err != nil {
		return nil, errs.Mark(err, ErrAuditRead)
	}
	return rows, nil
}

func (q *auditQueriesImpl) EmailActivity(ctx context.Context, f Filter) ([]*EmailActivityItem, error) {
	rows, err := q.store.EmailActivity(ctx, f)
	if err != nil {
		return nil, errs.Mark(err, ErrAuditRead)
	}
	return rows, nil
}

func (q *auditQueriesImpl) DocumentAccess(ctx context.Context, f Filter) ([]*AuditEntryView, error) {
	rows, err := q.store.DocumentAccess(ctx, f)
	if err != nil {
		return nil, errs.Mark(err, ErrAuditRead)
	}
	return rows, nil
}
