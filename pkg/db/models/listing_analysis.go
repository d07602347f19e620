package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/SyN415/local-marketplace-lister-sub000/pkg/db/types"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/enums"
)

// ListingAnalysis is the persisted terminal output of one resale analysis.
// Rows are append-only; a re-analysis inserts a new row rather than editing
// an old one.
type ListingAnalysis struct {
	ID                uuid.UUID            `gorm:"type:uuid;primaryKey"`
	Platform          string               `gorm:"type:text"`
	Title             string               `gorm:"type:text;not null"`
	Description       string               `gorm:"type:text"`
	AskingPrice       float64              `gorm:"type:numeric(12,2);not null"`
	Components        dbtypes.JSON         `gorm:"type:jsonb"`
	EstimatedTier     enums.QualityTier    `gorm:"type:text"`
	FullBuild         bool                 `gorm:"not null;default:false"`
	ComponentsPriced  int                  `gorm:"not null;default:0"`
	AggregateValue    float64              `gorm:"type:numeric(12,2)"`
	GrossProfit       float64              `gorm:"type:numeric(12,2)"`
	NetProfit         float64              `gorm:"type:numeric(12,2)"`
	ROIMultiplier     float64              `gorm:"type:numeric(8,2)"`
	Recommendation    enums.Recommendation `gorm:"type:text;not null"`
	ConfidenceScore   float64              `gorm:"type:numeric(4,3)"`
	Reasoning         string               `gorm:"type:text"`
	CostBreakdown     dbtypes.JSON         `gorm:"type:jsonb"`
	PerComponentPrice dbtypes.JSON         `gorm:"type:jsonb"`
	CreatedAt         time.Time            `gorm:"type:timestamptz;not null"`
}
