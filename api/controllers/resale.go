package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/SyN415/local-marketplace-lister-sub000/api/responses"
	"github.com/SyN415/local-marketplace-lister-sub000/api/validators"
	"github.com/SyN415/local-marketplace-lister-sub000/internal/extractor"
	"github.com/SyN415/local-marketplace-lister-sub000/internal/resale"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/db/models"
	pkgerrors "github.com/SyN415/local-marketplace-lister-sub000/pkg/errors"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/logger"
)

// ResaleService is the surface the resale controllers consume.
type ResaleService interface {
	AnalyzeListing(ctx context.Context, in resale.ListingInput) (*resale.Analysis, error)
	ExtractComponents(title, description string) extractor.Components
	BuildComponentProfile(title, description string) extractor.Profile
	IsPCBuildListing(title, description string) bool
	GetAnalysis(ctx context.Context, id uuid.UUID) (*models.ListingAnalysis, error)
	ListRecentAnalyses(ctx context.Context, limit int) ([]models.ListingAnalysis, error)
}

type analyzeListingRequest struct {
	Platform    string   `json:"platform" validate:"omitempty,max=64"`
	Title       string   `json:"title" validate:"required,max=300"`
	Description string   `json:"description" validate:"omitempty,max=10000"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	ImageURLs   []string `json:"image_urls" validate:"omitempty,dive,url"`
}

type extractComponentsRequest struct {
	Title       string `json:"title" validate:"required,max=300"`
	Description string `json:"description" validate:"omitempty,max=10000"`
}

// AnalyzeListing runs the full valuation pipeline for one listing.
func AnalyzeListing(svc ResaleService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req analyzeListingRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		analysis, err := svc.AnalyzeListing(ctx, resale.ListingInput{
			Platform:    validators.SanitizeString(req.Platform, 64),
			Title:       validators.SanitizeString(req.Title, 300),
			Description: req.Description,
			Price:       req.Price,
			ImageURLs:   req.ImageURLs,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, analysis)
	}
}

// ExtractComponents returns the per-kind component matches without pricing.
func ExtractComponents(svc ResaleService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req extractComponentsRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		profile := svc.BuildComponentProfile(req.Title, req.Description)
		responses.WriteSuccess(w, profile)
	}
}

// PCBuildCheck reports whether a listing reads as a full PC build.
func PCBuildCheck(svc ResaleService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req extractComponentsRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{
			"pc_build": svc.IsPCBuildListing(req.Title, req.Description),
		})
	}
}

// GetAnalysis loads one persisted analysis by id.
func GetAnalysis(svc ResaleService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "analysis id must be a uuid"))
			return
		}

		record, err := svc.GetAnalysis(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

// ListAnalyses returns the newest persisted analyses.
func ListAnalyses(svc ResaleService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		limit, err := validators.ParseQueryInt(r, "limit", 20, 1, 100)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		records, err := svc.ListRecentAnalyses(ctx, limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}
