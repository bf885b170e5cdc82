package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/utils/errutil"
	"github.com/m-mizutani/astrodash/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// recordAudit exports committed changes. Failures are reported but never fail the write that
// already happened on GitHub.
func (x *UseCase) recordAudit(ctx context.Context, sess *model.Session, branch types.BranchName, op, message string, results ...*model.WriteResult) {
	if x.clients.AuditLog() == nil || len(results) == 0 || sess.ActiveRepository == nil {
		return
	}

	now := logging.CtxTime(ctx)
	records := make([]*model.AuditRecord, 0, len(results))
	for _, r := range results {
		records = append(records, &model.AuditRecord{
			ID:        uuid.NewString(),
			Timestamp: now,
			User:      sess.User.Login,
			Repo:      sess.ActiveRepository.FullName,
			Branch:    string(branch),
			Path:      r.Path,
			Operation: op,
			CommitSHA: string(r.CommitSHA),
			Message:   message,
		})
	}

	if err := x.clients.AuditLog().Insert(ctx, records); err != nil {
		errutil.HandleError(ctx, "failed to insert audit records", goerr.Wrap(err, "audit log", goerr.V("records", len(records))))
	}
}
