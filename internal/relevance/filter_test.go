package relevance

import (
	"testing"

	"github.com/SyN415/local-marketplace-lister-sub000/pkg/enums"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/types"
)

func TestFilterGPUVariantMismatch(t *testing.T) {
	items := []types.CandidateItem{
		{Title: "RTX 3080 Ti 10GB", Price: 700},
		{Title: "NVIDIA RTX 3080 Founders Edition 10GB", Price: 650},
	}

	result := Filter(items, "RTX 3080", enums.ComponentGPU, Options{})

	if len(result) != 1 {
		t.Fatalf("expected exactly the non-Ti card to survive, got %d: %v", len(result), result)
	}
	if result[0].Title != "NVIDIA RTX 3080 Founders Edition 10GB" {
		t.Fatalf("wrong survivor: %s", result[0].Title)
	}
}

func TestFilterRejectsLotsAndBundlesRegardlessOfPrice(t *testing.T) {
	items := []types.CandidateItem{
		{Title: "Lot of 5 CPUs Intel Core i7-9700K", Price: 300},
		{Title: "Intel Core i7-9700K bundle with cooler", Price: 250},
		{Title: "WTB Intel Core i7-9700K", Price: 200},
	}

	result := Filter(items, "Intel Core i7-9700K", enums.ComponentCPU, Options{})
	if len(result) != 0 {
		t.Fatalf("lot/bundle/wanted titles must all be rejected, got %v", result)
	}
}

func TestFilterRejectsPriceOutsideBand(t *testing.T) {
	items := []types.CandidateItem{
		{Title: "NVIDIA RTX 3080 Founders Edition", Price: 0},
		{Title: "NVIDIA RTX 3080 Founders Edition", Price: 5},
		{Title: "NVIDIA RTX 3080 Founders Edition", Price: 9000},
	}

	result := Filter(items, "RTX 3080", enums.ComponentGPU, Options{})
	if len(result) != 0 {
		t.Fatalf("out-of-band prices must be rejected, got %v", result)
	}
}

func TestFilterRejectsForPartsCondition(t *testing.T) {
	items := []types.CandidateItem{
		{Title: "NVIDIA RTX 3080 Founders Edition", Price: 650, Condition: "for parts or not working"},
	}
	result := Filter(items, "RTX 3080", enums.ComponentGPU, Options{})
	if len(result) != 0 {
		t.Fatalf("for-parts condition must be rejected, got %v", result)
	}
}

func TestFilterScoreInvariantAndOrdering(t *testing.T) {
	items := []types.CandidateItem{
		{Title: "RTX 3080", Price: 640},
		{Title: "NVIDIA RTX 3080 Founders Edition 10GB", Price: 650},
		{Title: "Gaming GPU great condition", Price: 500},
	}

	result := Filter(items, "RTX 3080", enums.ComponentGPU, Options{})
	cfg := ConfigFor(enums.ComponentGPU)
	if len(result) == 0 {
		t.Fatal("expected at least one survivor")
	}
	for i, item := range result {
		if item.RelevanceScore < cfg.MinRelevance {
			t.Fatalf("survivor %q below kind minimum: %f", item.Title, item.RelevanceScore)
		}
		if i > 0 && result[i-1].RelevanceScore < item.RelevanceScore {
			t.Fatal("survivors must be sorted by score descending")
		}
	}
	for _, item := range result {
		if item.Title == "Gaming GPU great condition" {
			t.Fatal("vague title without the model token must not survive")
		}
	}
}

func TestFilterTruncatesToMaxResults(t *testing.T) {
	var items []types.CandidateItem
	for i := 0; i < 10; i++ {
		items = append(items, types.CandidateItem{Title: "NVIDIA RTX 3080 10GB", Price: 650})
	}
	result := Filter(items, "RTX 3080", enums.ComponentGPU, Options{MaxResults: 3})
	if len(result) != 3 {
		t.Fatalf("expected cap of 3, got %d", len(result))
	}
}

func TestFilterEmptyInputIsEmptyNotError(t *testing.T) {
	result := Filter(nil, "RTX 3080", enums.ComponentGPU, Options{})
	if len(result) != 0 {
		t.Fatalf("expected empty result, got %v", result)
	}
}

func TestFuzzySimilarityTiers(t *testing.T) {
	if got := FuzzySimilarity("rtx 3080", "RTX 3080"); got != 1.0 {
		t.Fatalf("case-insensitive exact match should score 1.0, got %f", got)
	}
	if got := FuzzySimilarity("3080", "rtx 3080 founders"); got != 0.85 {
		t.Fatalf("containment should score 0.85, got %f", got)
	}
	got := FuzzySimilarity("5800x", "5808x")
	if got != 0.8 {
		t.Fatalf("edit-distance fallback: one edit over five runes should score 0.8, got %f", got)
	}
}

func TestTokenizeDropsNoise(t *testing.T) {
	tokens := Tokenize("The NEW RTX-3080, with box!")
	want := map[string]bool{"rtx": true, "3080": true, "box": true}
	if len(tokens) != len(want) {
		t.Fatalf("unexpected tokens %v", tokens)
	}
	for _, token := range tokens {
		if !want[token] {
			t.Fatalf("unexpected token %q in %v", token, tokens)
		}
	}
}
