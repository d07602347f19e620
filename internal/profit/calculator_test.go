package profit

import (
	"math"
	"strings"
	"testing"

	"github.com/SyN415/local-marketplace-lister-sub000/pkg/config"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/enums"
)

func defaultConfig() config.ProfitConfig {
	return config.ProfitConfig{
		DisassemblyLaborUSD: 25,
		PackagingUSD:        10,
		ShippingRate:        0.08,
		MarketplaceFeeRate:  0.13,
		BuyROIMultiplier:    2.0,
		BuyNetProfitFloor:   100,
	}
}

func TestAnalyzeBuyVerdict(t *testing.T) {
	calc := NewCalculator(defaultConfig())
	analysis := calc.Analyze(Input{
		AskingPrice:     150,
		AggregateValue:  400,
		ConfidenceScore: 0.8,
	})

	if analysis.Recommendation != enums.RecommendationBuy {
		t.Fatalf("expected BUY, got %s (%s)", analysis.Recommendation, analysis.Reasoning)
	}
	// Costs: 25 labor + 10 packaging + 32 shipping (8% of 400) + 52 fees (13% of 400).
	if analysis.CostBreakdown.Total != 119 {
		t.Fatalf("expected total costs 119, got %f", analysis.CostBreakdown.Total)
	}
	if analysis.GrossProfit != 250 {
		t.Fatalf("expected gross 250, got %f", analysis.GrossProfit)
	}
	if analysis.NetProfit != 131 {
		t.Fatalf("expected net 131, got %f", analysis.NetProfit)
	}
	if math.Abs(analysis.ROIMultiplier-2.67) > 0.001 {
		t.Fatalf("expected multiplier 2.67, got %f", analysis.ROIMultiplier)
	}
	if !strings.Contains(analysis.Reasoning, "net profit") {
		t.Fatalf("buy reasoning should mention net profit: %q", analysis.Reasoning)
	}
}

func TestAnalyzeSkipBelowMultiplier(t *testing.T) {
	calc := NewCalculator(defaultConfig())
	analysis := calc.Analyze(Input{
		AskingPrice:    140,
		AggregateValue: 150,
	})

	if analysis.Recommendation != enums.RecommendationSkip {
		t.Fatalf("expected SKIP, got %s", analysis.Recommendation)
	}
	if !strings.Contains(analysis.Reasoning, "threshold") {
		t.Fatalf("reasoning should name the multiplier threshold: %q", analysis.Reasoning)
	}
	if !strings.Contains(analysis.Reasoning, "floor") {
		t.Fatalf("reasoning should also name the profit floor: %q", analysis.Reasoning)
	}
}

func TestAnalyzeListsAllApplicableReasons(t *testing.T) {
	calc := NewCalculator(defaultConfig())
	analysis := calc.Analyze(Input{
		AskingPrice:     140,
		AggregateValue:  150,
		ConfidenceScore: 0.3,
		MissingSpecs:    []enums.ComponentKind{enums.ComponentPSU, enums.ComponentMotherboard},
	})

	for _, fragment := range []string{"threshold", "floor", "confidence is low", "missing specs", "psu", "motherboard"} {
		if !strings.Contains(analysis.Reasoning, fragment) {
			t.Fatalf("reasoning missing %q: %q", fragment, analysis.Reasoning)
		}
	}
}

func TestAnalyzeMultiplierMetButFloorMissed(t *testing.T) {
	calc := NewCalculator(defaultConfig())
	// 2.5x multiplier but tiny absolute numbers: net profit cannot clear $100.
	analysis := calc.Analyze(Input{
		AskingPrice:    40,
		AggregateValue: 100,
	})

	if analysis.Recommendation != enums.RecommendationSkip {
		t.Fatalf("expected SKIP on floor miss, got %s", analysis.Recommendation)
	}
	if strings.Contains(analysis.Reasoning, "threshold") {
		t.Fatalf("multiplier reason should not fire when met: %q", analysis.Reasoning)
	}
	if !strings.Contains(analysis.Reasoning, "floor") {
		t.Fatalf("floor reason should fire: %q", analysis.Reasoning)
	}
}

func TestAnalyzeDegenerateInputs(t *testing.T) {
	calc := NewCalculator(defaultConfig())

	noPrice := calc.Analyze(Input{AskingPrice: 0, AggregateValue: 400})
	if noPrice.Recommendation != enums.RecommendationSkip {
		t.Fatalf("zero asking price must SKIP, got %s", noPrice.Recommendation)
	}
	if noPrice.NetProfit != 0 || noPrice.ROIMultiplier != 0 {
		t.Fatal("degenerate result must have zeroed numbers")
	}
	if noPrice.Reasoning == "" {
		t.Fatal("degenerate result must carry an explanatory reason")
	}

	noValue := calc.Analyze(Input{AskingPrice: 150, AggregateValue: 0})
	if noValue.Recommendation != enums.RecommendationSkip {
		t.Fatalf("zero aggregate value must SKIP, got %s", noValue.Recommendation)
	}
	if noValue.ListingPrice != 150 {
		t.Fatalf("asking price should be echoed, got %f", noValue.ListingPrice)
	}
}
