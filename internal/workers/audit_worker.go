package workers

import (
	"context"
	"time"

	"lysodata_backend/internal/config"
	"lysodata_backend/internal/logger"
	"lysodata_backend/internal/repositories"

	"gorm.io/gorm"
)

// AuditWorker prunes audit-trail entries past the retention window.
type AuditWorker struct {
	db        *gorm.DB
	auditRepo repositories.AuditRepository
	cfg       config.AuditConfig
}

func NewAuditWorker(db *gorm.DB, auditRepo repositories.AuditRepository, cfg config.AuditConfig) *AuditWorker {
	return &AuditWorker{db: db, auditRepo: auditRepo, cfg: cfg}
}

// Start launches the retention loop. It prunes once immediately, then on
// every tick until the context is cancelled.
func (w *AuditWorker) Start(ctx context.Context) {
	go w.pruneLoop(ctx)
}

func (w *AuditWorker) pruneLoop(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PruneInterval())
	defer ticker.Stop()

	w.prune(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("audit worker stopped")
			return
		case <-ticker.C:
			w.prune(ctx)
		}
	}
}

func (w *AuditWorker) prune(ctx context.Context) {
	cutoff := time.Now().AddDate(0, 0, -w.cfg.RetentionDays)
	removed, err := w.auditRepo.PruneOlderThan(w.db.WithContext(ctx), cutoff)
	if err != nil {
		logger.WorkerLog("audit", "prune", err)
		return
	}
	if removed > 0 {
		logger.Info("pruned audit entries", "removed", removed, "cutoff", cutoff.Format(time.RFC3339))
	}
}
