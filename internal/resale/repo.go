package resale

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SyN415/local-marketplace-lister-sub000/internal/repo"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/db"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/db/models"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/errors"
)

// Repository persists completed listing analyses.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// CreateAnalysis inserts one immutable analysis row.
func (r *Repository) CreateAnalysis(ctx context.Context, record *models.ListingAnalysis) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if err := r.DB(ctx).Create(record).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			return errors.Wrap(errors.CodeConflict, err, "analysis already recorded")
		}
		return errors.Wrap(errors.CodeInternal, err, "inserting listing analysis")
	}
	return nil
}

// GetAnalysis fetches one analysis by id.
func (r *Repository) GetAnalysis(ctx context.Context, id uuid.UUID) (*models.ListingAnalysis, error) {
	var record models.ListingAnalysis
	err := r.DB(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "analysis not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "loading listing analysis")
	}
	return &record, nil
}

// ListRecentAnalyses returns the newest analyses first.
func (r *Repository) ListRecentAnalyses(ctx context.Context, limit int) ([]models.ListingAnalysis, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var records []models.ListingAnalysis
	err := r.DB(ctx).Order("created_at DESC").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing analyses")
	}
	return records, nil
}
