package resale

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/SyN415/local-marketplace-lister-sub000/internal/extractor"
	"github.com/SyN415/local-marketplace-lister-sub000/internal/profit"
	"github.com/SyN415/local-marketplace-lister-sub000/internal/valuation"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/config"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/db/models"
	dbtypes "github.com/SyN415/local-marketplace-lister-sub000/pkg/db/types"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/enums"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/errors"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/logger"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/metrics"
)

// defaultLookupTimeout bounds each per-kind valuation when the config does
// not say otherwise. A timed-out kind degrades to "not valued"; it never
// aborts the other lookups.
const defaultLookupTimeout = 10 * time.Second

// ComponentValuer prices one extracted component string.
type ComponentValuer interface {
	Appraise(ctx context.Context, kind enums.ComponentKind, query string) (*valuation.Result, error)
}

// AnalysisStore persists completed analyses. A nil store disables persistence.
type AnalysisStore interface {
	CreateAnalysis(ctx context.Context, record *models.ListingAnalysis) error
	GetAnalysis(ctx context.Context, id uuid.UUID) (*models.ListingAnalysis, error)
	ListRecentAnalyses(ctx context.Context, limit int) ([]models.ListingAnalysis, error)
}

// Service runs the full listing analysis pipeline: extract, value each
// component, aggregate, score, persist.
type Service struct {
	valuer  ComponentValuer
	calc    *profit.Calculator
	store   AnalysisStore
	metrics *metrics.ValuationMetrics
	cfg     config.ValuationConfig
	log     *logger.Logger
}

func NewService(valuer ComponentValuer, calc *profit.Calculator, store AnalysisStore, vm *metrics.ValuationMetrics, cfg config.ValuationConfig, log *logger.Logger) *Service {
	return &Service{
		valuer:  valuer,
		calc:    calc,
		store:   store,
		metrics: vm,
		cfg:     cfg,
		log:     log,
	}
}

// ExtractComponents exposes the extractor to API callers.
func (s *Service) ExtractComponents(title, description string) extractor.Components {
	return extractor.Extract(title, description)
}

// BuildComponentProfile exposes profile construction to API callers.
func (s *Service) BuildComponentProfile(title, description string) extractor.Profile {
	return extractor.BuildProfile(title, description)
}

// IsPCBuildListing reports whether a listing looks like a full PC build.
func (s *Service) IsPCBuildListing(title, description string) bool {
	return extractor.IsPCBuildListing(title, description)
}

// GetAnalysis loads one persisted analysis.
func (s *Service) GetAnalysis(ctx context.Context, id uuid.UUID) (*models.ListingAnalysis, error) {
	if s.store == nil {
		return nil, errors.New(errors.CodeNotFound, "analysis persistence is disabled")
	}
	return s.store.GetAnalysis(ctx, id)
}

// ListRecentAnalyses loads the newest persisted analyses.
func (s *Service) ListRecentAnalyses(ctx context.Context, limit int) ([]models.ListingAnalysis, error) {
	if s.store == nil {
		return nil, errors.New(errors.CodeNotFound, "analysis persistence is disabled")
	}
	return s.store.ListRecentAnalyses(ctx, limit)
}

// AnalyzeListing runs the full pipeline for one listing.
func (s *Service) AnalyzeListing(ctx context.Context, in ListingInput) (*Analysis, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, errors.New(errors.CodeValidation, "listing title is required")
	}
	if in.Price <= 0 {
		return nil, errors.New(errors.CodeValidation, "listing price must be positive")
	}

	profile := extractor.BuildProfile(in.Title, in.Description)
	details := s.valueComponents(ctx, profile.RawComponents)

	aggregate := ComponentValuation{
		PerComponentPrice: make(map[enums.ComponentKind]float64, len(details)),
	}
	var confidenceSum float64
	for _, detail := range details {
		aggregate.TotalAggregatedValue += detail.BestPrice
		aggregate.PerComponentPrice[detail.Kind] = detail.BestPrice
		confidenceSum += detail.Confidence
		aggregate.ComponentsPriced++
	}
	if aggregate.ComponentsPriced > 0 {
		aggregate.Confidence = confidenceSum / float64(aggregate.ComponentsPriced)
	}

	verdict := s.calc.Analyze(profit.Input{
		AskingPrice:     in.Price,
		AggregateValue:  aggregate.TotalAggregatedValue,
		ConfidenceScore: aggregate.Confidence,
		MissingSpecs:    unpricedKinds(aggregate.PerComponentPrice),
	})
	s.metrics.IncAnalysis(verdict.Recommendation.String())

	analysis := &Analysis{
		Input:      in,
		Profile:    profile,
		Components: details,
		Valuation:  aggregate,
		Profit:     verdict,
	}

	if s.store != nil {
		if err := s.persist(ctx, analysis); err != nil {
			// The verdict is the deliverable; a failed insert only costs history.
			s.log.Error(ctx, "persisting listing analysis", err)
		}
	}
	return analysis, nil
}

// valueComponents fans the per-kind lookups out with a bounded group. A
// single kind's failure or timeout is logged and skipped.
func (s *Service) valueComponents(ctx context.Context, components extractor.Components) []ComponentDetail {
	kinds := make([]enums.ComponentKind, 0, len(enums.ValuationOrder))
	for _, kind := range enums.ValuationOrder {
		if len(components[kind]) > 0 {
			kinds = append(kinds, kind)
		}
	}
	if len(kinds) == 0 {
		return nil
	}

	limit := s.cfg.MaxConcurrentLookups
	if limit < 1 {
		limit = 1
	}
	timeout := s.cfg.LookupTimeout
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}

	results := make([]*valuation.Result, len(kinds))
	failures := make([]error, len(kinds))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(limit)
	for i, kind := range kinds {
		query := components[kind][0]
		group.Go(func() error {
			lookupCtx, cancel := context.WithTimeout(groupCtx, timeout)
			defer cancel()
			result, err := s.valuer.Appraise(lookupCtx, kind, query)
			if err != nil {
				failures[i] = err
				return nil
			}
			results[i] = result
			return nil
		})
	}
	_ = group.Wait()

	var skipped error
	details := make([]ComponentDetail, 0, len(kinds))
	for i, kind := range kinds {
		if failures[i] != nil {
			skipped = multierr.Append(skipped, failures[i])
			continue
		}
		result := results[i]
		if result == nil {
			continue
		}
		details = append(details, ComponentDetail{
			Kind:       kind,
			Query:      result.Query,
			BestPrice:  result.BestPrice,
			Method:     result.Method,
			Confidence: result.Confidence,
			Level:      result.Level,
			SampleSize: result.SampleSize,
			CacheHit:   result.CacheHit,
			Stale:      result.Stale,
		})
	}
	if skipped != nil {
		s.log.Warn(s.log.WithField(ctx, "skipped", skipped.Error()), "some components could not be valued")
	}
	return details
}

// unpricedKinds lists every resellable kind without a valuation, whether it
// was never extracted or its lookup failed. Both lower the verdict the same
// way.
func unpricedKinds(priced map[enums.ComponentKind]float64) []enums.ComponentKind {
	var missing []enums.ComponentKind
	for _, kind := range enums.ValuationOrder {
		if _, ok := priced[kind]; ok {
			continue
		}
		missing = append(missing, kind)
	}
	return missing
}

func (s *Service) persist(ctx context.Context, analysis *Analysis) error {
	components, err := dbtypes.Document(analysis.Profile.RawComponents)
	if err != nil {
		return err
	}
	costs, err := dbtypes.Document(analysis.Profit.CostBreakdown)
	if err != nil {
		return err
	}
	perComponent, err := dbtypes.Document(analysis.Valuation.PerComponentPrice)
	if err != nil {
		return err
	}

	record := &models.ListingAnalysis{
		ID:                uuid.New(),
		Platform:          analysis.Input.Platform,
		Title:             analysis.Input.Title,
		Description:       analysis.Input.Description,
		AskingPrice:       analysis.Input.Price,
		Components:        components,
		EstimatedTier:     analysis.Profile.EstimatedTier,
		FullBuild:         analysis.Profile.FullBuild,
		ComponentsPriced:  analysis.Valuation.ComponentsPriced,
		AggregateValue:    analysis.Valuation.TotalAggregatedValue,
		GrossProfit:       analysis.Profit.GrossProfit,
		NetProfit:         analysis.Profit.NetProfit,
		ROIMultiplier:     analysis.Profit.ROIMultiplier,
		Recommendation:    analysis.Profit.Recommendation,
		ConfidenceScore:   analysis.Valuation.Confidence,
		Reasoning:         analysis.Profit.Reasoning,
		CostBreakdown:     costs,
		PerComponentPrice: perComponent,
	}
	if err := s.store.CreateAnalysis(ctx, record); err != nil {
		return err
	}
	analysis.ID = record.ID
	return nil
}
