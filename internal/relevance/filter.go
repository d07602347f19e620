// Package relevance reduces the untrusted comparable-sales result set to the
// candidates that genuinely price the queried component: hard exclusions
// first, then a composite title-similarity score with a per-kind floor.
package relevance

import (
	"regexp"
	"sort"
	"strings"

	"github.com/SyN415/local-marketplace-lister-sub000/pkg/enums"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/types"
)

// DefaultMaxResults caps the surviving result set.
const DefaultMaxResults = 50

// Options tunes a single filter run.
type Options struct {
	MaxResults int
}

// gpuModelPattern captures a base model number and its tier suffix. Same
// base with a different suffix ("3080" vs "3080 ti") is a different product
// at a very different price point.
var gpuModelPattern = regexp.MustCompile(`(\d{3,4})\s*(ti|super|xtx|xt)?\b`)

// Filter applies the hard-exclusion and scoring pipeline for one component
// kind. An empty result means "no comparable data", never an error.
func Filter(items []types.CandidateItem, query string, kind enums.ComponentKind, opts Options) []types.FilteredItem {
	cfg := ConfigFor(kind)
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	queryTokens := Tokenize(query)
	queryPhrase := strings.Join(queryTokens, " ")
	queryTop := topTerms(queryTokens, 4)

	var survivors []types.FilteredItem
	for _, item := range items {
		if item.Price <= 0 || item.Price < cfg.MinPrice || item.Price > cfg.MaxPrice {
			continue
		}
		title := strings.ToLower(item.Title)
		if title == "" || excludedByKeyword(title, cfg.ExcludeKeywords) || excludedByPattern(item.Title, cfg.ExcludePatterns) {
			continue
		}
		if kind == enums.ComponentGPU && variantMismatch(query, title) {
			continue
		}
		if !conditionAllowed(item.Condition, cfg.AllowedConditions) {
			continue
		}

		score := scoreTitle(title, queryTokens, queryPhrase, queryTop)
		if score < cfg.MinRelevance {
			continue
		}

		survivors = append(survivors, types.FilteredItem{
			CandidateItem:  item,
			RelevanceScore: score,
			SoftWarnings:   softWarnings(item, cfg),
		})
	}

	sort.SliceStable(survivors, func(i, j int) bool {
		return survivors[i].RelevanceScore > survivors[j].RelevanceScore
	})
	if len(survivors) > maxResults {
		survivors = survivors[:maxResults]
	}
	return survivors
}

func excludedByKeyword(title string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(title, keyword) {
			return true
		}
	}
	return false
}

func excludedByPattern(title string, patterns []*regexp.Regexp) bool {
	for _, pattern := range patterns {
		if pattern.MatchString(title) {
			return true
		}
	}
	return false
}

// variantMismatch rejects a GPU title that names the same base model as the
// query but a different suffix variant. Plain vs Ti vs Super prices diverge
// enough to poison the estimate.
func variantMismatch(query, title string) bool {
	queryBase, queryVariant, ok := firstGPUModel(query)
	if !ok {
		return false
	}
	titleBase, titleVariant, ok := firstGPUModel(title)
	if !ok {
		return false
	}
	return queryBase == titleBase && queryVariant != titleVariant
}

func firstGPUModel(text string) (base, variant string, ok bool) {
	groups := gpuModelPattern.FindStringSubmatch(strings.ToLower(text))
	if groups == nil {
		return "", "", false
	}
	return groups[1], groups[2], true
}

func conditionAllowed(raw string, allowed []enums.Condition) bool {
	condition := enums.NormalizeCondition(raw)
	if condition == enums.ConditionUnknown {
		// Condition is an untrusted, often-empty field; absence is not
		// grounds for exclusion.
		return true
	}
	for _, candidate := range allowed {
		if candidate == condition {
			return true
		}
	}
	return false
}

// scoreTitle blends token-set similarity, top-term coverage, a model-token
// bonus/penalty and a full-phrase containment bonus, clamped to [0,1].
func scoreTitle(title string, queryTokens []string, queryPhrase string, queryTop []string) float64 {
	titleTokens := Tokenize(title)
	titlePhrase := strings.Join(titleTokens, " ")

	score := 0.45 * tokenSetJaccard(queryTokens, titleTokens)
	score += 0.35 * termCoverage(queryTop, titleTokens)
	score += modelTokenAdjustment(queryTop, titleTokens)
	if queryPhrase != "" && strings.Contains(titlePhrase, queryPhrase) {
		score += 0.15
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func termCoverage(terms []string, titleTokens []string) float64 {
	if len(terms) == 0 {
		return 0
	}
	present := 0
	for _, term := range terms {
		for _, token := range titleTokens {
			if token == term {
				present++
				break
			}
		}
	}
	return float64(present) / float64(len(terms))
}

// modelTokenAdjustment rewards an exact hit on the query's most informative
// token, accepts a close fuzzy hit, and penalizes a title that misses it
// entirely.
func modelTokenAdjustment(queryTop []string, titleTokens []string) float64 {
	if len(queryTop) == 0 || len(titleTokens) == 0 {
		return 0
	}
	model := queryTop[0]

	best := 0.0
	for _, token := range titleTokens {
		if token == model {
			return 0.15
		}
		if sim := FuzzySimilarity(model, token); sim > best {
			best = sim
		}
	}
	if best >= 0.8 {
		return 0.08
	}
	if best < 0.5 {
		return -0.20
	}
	return 0
}

func softWarnings(item types.CandidateItem, cfg KindConfig) []string {
	var warnings []string
	if enums.NormalizeCondition(item.Condition) == enums.ConditionUnknown {
		warnings = append(warnings, "condition not reported")
	}
	if item.Price < cfg.MinPrice*1.5 {
		warnings = append(warnings, "price near configured floor")
	}
	return warnings
}
