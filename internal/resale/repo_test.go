package resale

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/SyN415/local-marketplace-lister-sub000/pkg/db/models"
	dbtypes "github.com/SyN415/local-marketplace-lister-sub000/pkg/db/types"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/enums"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.ListingAnalysis{}); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return conn
}

func sampleRecord(t *testing.T) *models.ListingAnalysis {
	t.Helper()
	components, err := dbtypes.Document(map[string][]string{"gpu": {"rtx 3070"}})
	if err != nil {
		t.Fatalf("encode components: %v", err)
	}
	return &models.ListingAnalysis{
		Platform:         "craigslist",
		Title:            "Gaming PC RTX 3070",
		AskingPrice:      150,
		Components:       components,
		EstimatedTier:    enums.TierMidRange,
		FullBuild:        true,
		ComponentsPriced: 1,
		AggregateValue:   400,
		NetProfit:        131,
		ROIMultiplier:    2.67,
		Recommendation:   enums.RecommendationBuy,
		ConfidenceScore:  0.8,
		Reasoning:        "2.67x return with $131.00 estimated net profit",
	}
}

func TestRepositoryCreateAndGet(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	record := sampleRecord(t)
	if err := repo.CreateAnalysis(ctx, record); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if record.ID == uuid.Nil {
		t.Fatal("create must assign an id")
	}

	loaded, err := repo.GetAnalysis(ctx, record.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if loaded.Title != record.Title || loaded.Recommendation != enums.RecommendationBuy {
		t.Fatalf("loaded record mismatch: %+v", loaded)
	}

	var components map[string][]string
	if err := loaded.Components.Decode(&components); err != nil {
		t.Fatalf("decode components: %v", err)
	}
	if len(components["gpu"]) != 1 || components["gpu"][0] != "rtx 3070" {
		t.Fatalf("components did not round-trip: %v", components)
	}
}

func TestRepositoryGetMissing(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	_, err := repo.GetAnalysis(context.Background(), uuid.New())
	appErr := errors.As(err)
	if appErr == nil || appErr.Code() != errors.CodeNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestRepositoryListRecent(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := repo.CreateAnalysis(ctx, sampleRecord(t)); err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
	}

	records, err := repo.ListRecentAnalyses(ctx, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
}
