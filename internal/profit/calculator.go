package profit

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/SyN415/local-marketplace-lister-sub000/pkg/config"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/enums"
)

// lowConfidenceFloor marks valuations too uncertain to trust silently; it
// adds a reason but never flips the verdict on its own.
const lowConfidenceFloor = 0.5

// Input is everything the cost model needs for one verdict.
type Input struct {
	AskingPrice     float64
	AggregateValue  float64
	ConfidenceScore float64
	MissingSpecs    []enums.ComponentKind
}

// CostBreakdown itemizes the fixed cost model, rounded to cents.
type CostBreakdown struct {
	DisassemblyLabor float64 `json:"disassembly_labor"`
	Shipping         float64 `json:"shipping"`
	MarketplaceFees  float64 `json:"marketplace_fees"`
	Packaging        float64 `json:"packaging"`
	Total            float64 `json:"total"`
}

// Analysis is the terminal ROI verdict for one listing. It is never mutated
// after creation; a fresh analysis supersedes it.
type Analysis struct {
	ListingPrice            float64              `json:"listing_price"`
	AggregateComponentValue float64              `json:"aggregate_component_value"`
	GrossProfit             float64              `json:"gross_profit"`
	NetProfit               float64              `json:"net_profit"`
	ROIPercentage           float64              `json:"roi_percentage"`
	ROIMultiplier           float64              `json:"roi_multiplier"`
	Recommendation          enums.Recommendation `json:"recommendation"`
	CostBreakdown           CostBreakdown        `json:"cost_breakdown"`
	ConfidenceScore         float64              `json:"confidence_score"`
	Reasoning               string               `json:"reasoning"`
}

// Calculator applies the fixed cost model and the buy policy.
type Calculator struct {
	cfg config.ProfitConfig
}

func NewCalculator(cfg config.ProfitConfig) *Calculator {
	return &Calculator{cfg: cfg}
}

// Analyze produces the ROI verdict for one listing. Degenerate input (no
// asking price, no component value) short-circuits to SKIP with zeroed
// numbers rather than an error.
func (c *Calculator) Analyze(in Input) Analysis {
	if in.AskingPrice <= 0 {
		return Analysis{
			Recommendation:  enums.RecommendationSkip,
			ConfidenceScore: in.ConfidenceScore,
			Reasoning:       "listing has no usable asking price",
		}
	}
	if in.AggregateValue <= 0 {
		return Analysis{
			ListingPrice:    round2(decimal.NewFromFloat(in.AskingPrice)),
			Recommendation:  enums.RecommendationSkip,
			ConfidenceScore: in.ConfidenceScore,
			Reasoning:       "no components could be valued",
		}
	}

	asking := decimal.NewFromFloat(in.AskingPrice)
	aggregate := decimal.NewFromFloat(in.AggregateValue)

	disassembly := decimal.NewFromFloat(c.cfg.DisassemblyLaborUSD)
	packaging := decimal.NewFromFloat(c.cfg.PackagingUSD)
	shipping := aggregate.Mul(decimal.NewFromFloat(c.cfg.ShippingRate))
	fees := aggregate.Mul(decimal.NewFromFloat(c.cfg.MarketplaceFeeRate))
	totalCosts := disassembly.Add(packaging).Add(shipping).Add(fees)

	gross := aggregate.Sub(asking)
	net := gross.Sub(totalCosts)
	multiplier := aggregate.Div(asking)
	roiPct := multiplier.Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100))

	netF := round2(net)
	multiplierF, _ := multiplier.Round(2).Float64()

	meetsMultiplier := multiplier.GreaterThanOrEqual(decimal.NewFromFloat(c.cfg.BuyROIMultiplier))
	meetsFloor := net.GreaterThan(decimal.NewFromFloat(c.cfg.BuyNetProfitFloor))

	recommendation := enums.RecommendationSkip
	if meetsMultiplier && meetsFloor {
		recommendation = enums.RecommendationBuy
	}

	return Analysis{
		ListingPrice:            round2(asking),
		AggregateComponentValue: round2(aggregate),
		GrossProfit:             round2(gross),
		NetProfit:               netF,
		ROIPercentage:           round2(roiPct),
		ROIMultiplier:           multiplierF,
		Recommendation:          recommendation,
		CostBreakdown: CostBreakdown{
			DisassemblyLabor: round2(disassembly),
			Shipping:         round2(shipping),
			MarketplaceFees:  round2(fees),
			Packaging:        round2(packaging),
			Total:            round2(totalCosts),
		},
		ConfidenceScore: in.ConfidenceScore,
		Reasoning:       c.buildReasoning(in, meetsMultiplier, meetsFloor, multiplierF, netF),
	}
}

// buildReasoning lists every reason that applies, not just the first.
func (c *Calculator) buildReasoning(in Input, meetsMultiplier, meetsFloor bool, multiplier, net float64) string {
	var reasons []string
	if meetsMultiplier && meetsFloor {
		reasons = append(reasons, fmt.Sprintf("%.2fx return with $%.2f estimated net profit", multiplier, net))
	}
	if !meetsMultiplier {
		reasons = append(reasons, fmt.Sprintf("ROI multiplier %.2fx is below the %.1fx threshold", multiplier, c.cfg.BuyROIMultiplier))
	}
	if !meetsFloor {
		reasons = append(reasons, fmt.Sprintf("estimated net profit $%.2f does not clear the $%.0f floor", net, c.cfg.BuyNetProfitFloor))
	}
	if in.ConfidenceScore > 0 && in.ConfidenceScore < lowConfidenceFloor {
		reasons = append(reasons, fmt.Sprintf("valuation confidence is low (%.2f)", in.ConfidenceScore))
	}
	if len(in.MissingSpecs) > 0 {
		names := make([]string, len(in.MissingSpecs))
		for i, kind := range in.MissingSpecs {
			names[i] = kind.String()
		}
		reasons = append(reasons, "listing is missing specs for: "+strings.Join(names, ", "))
	}
	return strings.Join(reasons, "; ")
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
