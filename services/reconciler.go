package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/UncoreDigital/secure-place-api/idp"
	"github.com/UncoreDigital/secure-place-api/models"
	"github.com/UncoreDigital/secure-place-api/pkg/metrics"
	"gorm.io/gorm"
)

// OrphanReconciler periodically lists identities and flags those with
// no matching profile row for operator review. Such orphans can arise
// when a compensating identity deletion fails after a profile-write
// failure. The sweep only observes and reports; it never deletes.
type OrphanReconciler struct {
	db           *gorm.DB
	idp          idp.IdentityProvider
	metrics      metrics.Recorder
	pollInterval time.Duration
}

// NewOrphanReconciler creates a reconciler with the default interval
func NewOrphanReconciler(db *gorm.DB, provider idp.IdentityProvider, recorder metrics.Recorder) *OrphanReconciler {
	return &OrphanReconciler{
		db:           db,
		idp:          provider,
		metrics:      recorder,
		pollInterval: 1 * time.Hour,
	}
}

// Start runs the background sweep loop until the context is canceled
func (r *OrphanReconciler) Start(ctx context.Context) {
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	slog.Info("Orphan reconciler started", "pollInterval", r.pollInterval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Orphan reconciler stopped")
			return
		case <-ticker.C:
			if _, err := r.Sweep(ctx); err != nil {
				slog.Error("Orphan sweep failed", "error", err)
			}
		}
	}
}

// Sweep performs one reconciliation pass and returns the identities
// that have no profile row
func (r *OrphanReconciler) Sweep(ctx context.Context) ([]*idp.UserInfo, error) {
	identities, err := r.idp.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list identities: %w", err)
	}

	var profileIDs []string
	if err := r.db.WithContext(ctx).Model(&models.Profile{}).Pluck("id", &profileIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to list profile ids: %w", err)
	}

	known := make(map[string]bool, len(profileIDs))
	for _, id := range profileIDs {
		known[id] = true
	}

	var orphans []*idp.UserInfo
	for _, identity := range identities {
		if !known[identity.ID] {
			orphans = append(orphans, identity)
			slog.Warn("Identity has no matching profile; flagging for operator review",
				"identityId", identity.ID, "email", identity.Email)
		}
	}

	if r.metrics != nil {
		r.metrics.RecordOrphanedIdentities(len(orphans))
	}

	slog.Info("Orphan sweep completed", "identities", len(identities), "orphans", len(orphans))
	return orphans, nil
}
