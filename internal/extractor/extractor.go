// Package extractor pattern-matches free-text marketplace listings into typed
// PC component candidates. Matching is a two-phase pipeline: per-kind regexp
// tables first, then a validation pass that removes spurious matches.
package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/SyN415/local-marketplace-lister-sub000/pkg/enums"
)

// Components maps each component kind to the ordered, distinct identifiers
// found for it. Kinds with no match are simply absent.
type Components map[enums.ComponentKind][]string

var kindPatterns = map[enums.ComponentKind][]*regexp.Regexp{
	enums.ComponentCPU: {
		regexp.MustCompile(`ryzen\s*[3579]\s*\d{4}[a-z0-9]{0,3}`),
		regexp.MustCompile(`threadripper\s*\d{4}[a-z0-9]{0,3}`),
		regexp.MustCompile(`(?:intel\s+)?core\s+i[3579][\- ]?\d{4,5}[a-z]{0,2}`),
		regexp.MustCompile(`\bi[3579][\- ]\d{4,5}[a-z]{0,2}`),
		regexp.MustCompile(`xeon\s+[ew]?[35]?-?\d{4}[a-z]{0,2}`),
	},
	enums.ComponentGPU: {
		regexp.MustCompile(`(?:rtx|gtx)\s*\d{3,4}\s*(?:ti\s+super|ti|super)?`),
		regexp.MustCompile(`\brx\s*\d{3,4}\s*(?:xtx|xt)?`),
		regexp.MustCompile(`\barc\s*a\d{3}`),
		regexp.MustCompile(`(?:radeon|geforce)\s+[a-z]{2,3}\s*\d{3,4}\s*(?:ti|super|xtx|xt)?`),
		// Bare model codes only count with a tier suffix; unqualified 3-4
		// digit numbers match storage sizes and zip codes far too often.
		regexp.MustCompile(`\b\d{3,4}\s+(?:ti|super|xt)\b`),
	},
	enums.ComponentRAM: {
		regexp.MustCompile(`\d{1,3}\s*gb\s*(?:of\s+)?ddr[2345][a-z]?(?:[\- ]?\d{4})?`),
		regexp.MustCompile(`ddr[2345][a-z]?\s*\d{1,3}\s*gb`),
		regexp.MustCompile(`\b\d{1,2}\s*x\s*\d{1,2}\s*(?:gb)?\b`),
		regexp.MustCompile(`\d{1,3}\s*gb\s+ram`),
	},
	enums.ComponentStorage: {
		regexp.MustCompile(`\d+(?:\.\d+)?\s*(?:tb|gb)\s*(?:nvme|m\.2|ssd|hdd)(?:\s*ssd)?`),
		regexp.MustCompile(`(?:nvme|m\.2|ssd|hdd)\s*\d+(?:\.\d+)?\s*(?:tb|gb)`),
		regexp.MustCompile(`\d+(?:\.\d+)?\s*tb\s*(?:hard\s*drive|drive)`),
	},
	enums.ComponentPSU: {
		regexp.MustCompile(`\d{3,4}\s*w(?:att)?s?\s*(?:80\s*(?:\+|plus)\s*)?(?:bronze|gold|platinum|titanium)`),
		regexp.MustCompile(`\d{3,4}\s*w(?:att)?s?\s*(?:psu|power\s*supply)`),
		regexp.MustCompile(`(?:psu|power\s*supply)[:\s]*\d{3,4}\s*w(?:att)?s?`),
	},
	enums.ComponentMotherboard: {
		regexp.MustCompile(`\b(?:a[35]20m?|b[345][56]0m?|b[67]60m?|x[3456]70e?|x670e?|z[34567]90|z[3456]70|h[4567]10m?|h[567]70)\b(?:[\- ]?(?:plus|pro|elite|tomahawk|aorus|gaming))?`),
		regexp.MustCompile(`(?:asus|msi|gigabyte|asrock)\s+(?:rog\s+|tuf\s+|prime\s+)?[abxzh]\d{3}m?e?[a-z\-]*`),
	},
	enums.ComponentCase: {
		regexp.MustCompile(`(?:mid|full)[\- ]?tower(?:\s+case)?`),
		regexp.MustCompile(`(?:atx|micro[\- ]?atx|matx|mini[\- ]?itx|itx)\s+(?:case|tower|chassis)`),
		regexp.MustCompile(`tempered\s+glass\s+(?:case|chassis)`),
		regexp.MustCompile(`(?:nzxt\s+h\d{3}[a-z]*|lian\s+li\s+o11[a-z ]*|fractal\s+(?:design\s+)?(?:meshify|define)\s*[a-z0-9]*)`),
	},
	enums.ComponentCooling: {
		regexp.MustCompile(`(?:aio|liquid|water)[\- ]?cool(?:er|ing|ed)?`),
		regexp.MustCompile(`\d{3}\s*mm\s*(?:aio|radiator|rad)\b`),
		regexp.MustCompile(`noctua\s+nh[\- ]?[a-z0-9]+`),
		regexp.MustCompile(`hyper\s+212[a-z ]*`),
		regexp.MustCompile(`(?:cpu|tower)\s+cooler`),
	},
}

var fullBuildKeywords = []string{
	"gaming pc",
	"gaming computer",
	"gaming rig",
	"custom build",
	"custom pc",
	"full build",
	"complete build",
	"desktop pc",
	"full setup",
	"battlestation",
}

var ramKitPattern = regexp.MustCompile(`^(\d{1,2})\s*x\s*(\d{1,2})\s*(?:gb)?$`)

var plausibleRAMTotals = map[int]bool{16: true, 32: true, 64: true, 128: true}

// Extract runs every kind's pattern table over the case-folded title and
// description and returns the deduplicated matches. It never fails; a kind
// with no match is simply absent from the result.
func Extract(title, description string) Components {
	text := strings.ToLower(title + " " + description)

	found := Components{}
	for _, kind := range enums.AllComponentKinds {
		matches := matchKind(kind, text)
		if len(matches) > 0 {
			found[kind] = matches
		}
	}
	return found
}

func matchKind(kind enums.ComponentKind, text string) []string {
	seen := map[string]bool{}
	var out []string
	for _, pattern := range kindPatterns[kind] {
		for _, raw := range pattern.FindAllString(text, -1) {
			normalized := normalizeMatch(raw)
			if normalized == "" || !validateMatch(kind, normalized) {
				continue
			}
			key := strings.ReplaceAll(normalized, " ", "")
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, normalized)
		}
	}
	return out
}

func normalizeMatch(raw string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(raw)), " ")
}

// validateMatch is the post-filter pass. RAM kit tokens such as "16x2" are
// only kept when the implied total capacity is a plausible kit size.
func validateMatch(kind enums.ComponentKind, match string) bool {
	if kind != enums.ComponentRAM {
		return true
	}
	groups := ramKitPattern.FindStringSubmatch(match)
	if groups == nil {
		return true
	}
	sticks, err1 := strconv.Atoi(groups[1])
	size, err2 := strconv.Atoi(groups[2])
	if err1 != nil || err2 != nil {
		return false
	}
	return plausibleRAMTotals[sticks*size]
}

// Kinds returns the kinds with at least one match, in the fixed kind order.
func (c Components) Kinds() []enums.ComponentKind {
	var kinds []enums.ComponentKind
	for _, kind := range enums.AllComponentKinds {
		if len(c[kind]) > 0 {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// DistinctKindCount counts kinds with at least one identifier.
func (c Components) DistinctKindCount() int {
	count := 0
	for _, kind := range enums.AllComponentKinds {
		if len(c[kind]) > 0 {
			count++
		}
	}
	return count
}

// IsPCBuildListing reports whether the listing reads like a whole PC rather
// than a single part. The rule is an OR: three or more distinct component
// kinds, or any full-build keyword. Both halves alone are sufficient.
func IsPCBuildListing(title, description string) bool {
	if Extract(title, description).DistinctKindCount() >= 3 {
		return true
	}
	text := strings.ToLower(title + " " + description)
	for _, keyword := range fullBuildKeywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
