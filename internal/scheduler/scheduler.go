package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/parvez-irfan/BlogSite/internal/repo"
)

// Run starts a background scheduler that prunes audit log entries older than
// retentionDays once a day. Blocks; run in a goroutine.
func Run(auditRepo *repo.AuditRepo, retentionDays int) {
	c := cron.New()

	_, err := c.AddFunc("@daily", func() {
		cutoff := time.Now().AddDate(0, 0, -retentionDays)
		removed, err := auditRepo.PruneOlderThan(context.Background(), cutoff)
		if err != nil {
			slog.Error("scheduler: prune audit log", "error", err)
			return
		}
		slog.Info("scheduler: pruned audit log", "removed", removed, "cutoff", cutoff)
	})
	if err != nil {
		slog.Error("scheduler: add prune job", "error", err)
		return
	}

	c.Run()
}
