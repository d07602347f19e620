package extractor

import (
	"testing"

	"github.com/SyN415/local-marketplace-lister-sub000/pkg/enums"
)

func TestExtractGamingPCListing(t *testing.T) {
	title := "Gaming PC Ryzen 7 5800X, RTX 3070, 32GB DDR4, 1TB NVMe"

	components := Extract(title, "")

	for _, kind := range []enums.ComponentKind{
		enums.ComponentCPU,
		enums.ComponentGPU,
		enums.ComponentRAM,
		enums.ComponentStorage,
	} {
		if len(components[kind]) == 0 {
			t.Fatalf("expected non-empty %s matches, got %v", kind, components)
		}
	}

	profile := BuildProfile(title, "")
	if profile.EstimatedTier != enums.TierMidRange {
		t.Fatalf("expected mid-range tier for RTX 3070, got %s", profile.EstimatedTier)
	}
}

func TestExtractNeverErrorsOnEmptyInput(t *testing.T) {
	components := Extract("", "")
	if components.DistinctKindCount() != 0 {
		t.Fatalf("expected no components for empty input, got %v", components)
	}
}

func TestExtractDeduplicatesCaseAndWhitespace(t *testing.T) {
	components := Extract("RTX 3070 rtx  3070 RTX3070", "")
	gpus := components[enums.ComponentGPU]
	if len(gpus) != 1 {
		t.Fatalf("expected one deduplicated GPU match, got %v", gpus)
	}
}

func TestExtractIgnoresUnqualifiedBareNumbers(t *testing.T) {
	components := Extract("Wooden desk, 1200 x 600, seats 4080 people", "")
	if len(components[enums.ComponentGPU]) != 0 {
		t.Fatalf("bare numbers without tier suffix or vendor prefix must not match, got %v", components[enums.ComponentGPU])
	}
}

func TestExtractBareModelWithSuffix(t *testing.T) {
	components := Extract("Selling my 3080 Ti, barely used", "")
	if len(components[enums.ComponentGPU]) == 0 {
		t.Fatal("suffix-qualified bare model code should match as GPU")
	}
}

func TestRAMKitPostFilter(t *testing.T) {
	// 2x16 implies 32GB, a plausible kit.
	kept := Extract("DDR4 kit 2x16gb", "")
	if len(kept[enums.ComponentRAM]) == 0 {
		t.Fatalf("expected plausible RAM kit to survive, got %v", kept)
	}

	// 9x7 implies 63GB, not a real kit size.
	dropped := Extract("weird lot 9x7gb", "")
	for _, match := range dropped[enums.ComponentRAM] {
		if match == "9x7gb" || match == "9 x 7gb" {
			t.Fatalf("implausible RAM kit should be filtered, got %v", dropped[enums.ComponentRAM])
		}
	}
}

func TestIsPCBuildListingORSemantics(t *testing.T) {
	// Three distinct kinds, no keyword.
	if !IsPCBuildListing("Ryzen 5 3600, RTX 3060, 16GB DDR4", "") {
		t.Fatal("3+ distinct component kinds must flag a full build even without keywords")
	}

	// Keyword, single kind.
	if !IsPCBuildListing("Custom build with RTX 3060", "") {
		t.Fatal("a full-build keyword must flag a build even with one component kind")
	}

	// Neither half.
	if IsPCBuildListing("RTX 3060 graphics card only", "") {
		t.Fatal("single component without keywords is not a full build")
	}
}

func TestEstimateTierOrdering(t *testing.T) {
	cases := []struct {
		gpus []string
		want enums.QualityTier
	}{
		{nil, enums.TierUnknown},
		{[]string{"rtx 3080 ti"}, enums.TierHighEnd},
		{[]string{"rtx 3070"}, enums.TierMidRange},
		{[]string{"gtx 750 ti"}, enums.TierBudget},
		// A high-end match wins even when a mid-range GPU appears first.
		{[]string{"rtx 3060", "rtx 4090"}, enums.TierHighEnd},
	}
	for _, tc := range cases {
		if got := EstimateTier(tc.gpus); got != tc.want {
			t.Fatalf("EstimateTier(%v) = %s, want %s", tc.gpus, got, tc.want)
		}
	}
}

func TestBuildProfileMissingSpecs(t *testing.T) {
	profile := BuildProfile("RTX 3070 only", "")
	if len(profile.RawComponents[enums.ComponentGPU]) == 0 {
		t.Fatal("expected GPU match")
	}
	for _, kind := range profile.MissingSpecs {
		if kind == enums.ComponentGPU {
			t.Fatal("GPU must not be reported missing when matched")
		}
	}
	if len(profile.MissingSpecs) != len(enums.AllComponentKinds)-1 {
		t.Fatalf("expected every other kind missing, got %v", profile.MissingSpecs)
	}
}
