package cardeals

import (
	"sort"
	"strings"
)

// Known models per make. Extraction and validation only trust models from
// this vocabulary; anything else is rejected rather than silently kept.
var (
	ToyotaModels = []string{
		"4Runner", "bZ4X", "Camry", "Corolla", "Corolla Cross",
		"Crown", "GR86", "GR Corolla", "GR Supra", "Grand Highlander",
		"Highlander", "Land Cruiser", "Mirai", "Prius", "RAV4",
		"Sequoia", "Sienna", "Tacoma", "Tundra", "Venza",
	}
	HondaModels = []string{
		"Accord", "Accord Hybrid", "Civic", "Civic Hybrid", "Civic Hatchback",
		"CR-V", "CR-V Hybrid", "HR-V", "Passport", "Pilot",
		"Prologue", "Ridgeline", "Odyssey", "Insight",
	}
	TeslaModels = []string{
		"Model 3", "Model Y", "Model S", "Model X", "Cybertruck",
	}
)

// KnownMakes are the brands recognized during vehicle descriptor parsing.
// Only the first three have model vocabularies; the rest exist so a title
// like "2026 Hyundai Tucson" doesn't get attributed to the dealer's default
// make.
var KnownMakes = []string{
	"Toyota", "Honda", "Tesla", "Hyundai", "Kia", "Nissan", "Ford", "Chevrolet",
}

// VocabularyMakes are the makes with a known model vocabulary.
var VocabularyMakes = []string{"Toyota", "Honda", "Tesla"}

// modelVariants maps common textual variants to canonical model names.
var modelVariants = map[string]string{
	// Toyota
	"rav 4":            "RAV4",
	"rav-4":            "RAV4",
	"4 runner":         "4Runner",
	"4-runner":         "4Runner",
	"gr 86":            "GR86",
	"gr-86":            "GR86",
	"gr supra":         "GR Supra",
	"gr-supra":         "GR Supra",
	"corolla cross":    "Corolla Cross",
	"grand highlander": "Grand Highlander",
	"land cruiser":     "Land Cruiser",
	// Honda
	"cr-v": "CR-V",
	"crv":  "CR-V",
	"hr-v": "HR-V",
	"hrv":  "HR-V",
	// Tesla
	"model3": "Model 3",
	"modely": "Model Y",
	"models": "Model S",
	"modelx": "Model X",
}

// allModels holds the combined vocabulary; allModelsByLength is the same
// list sorted longest-first so that overlapping names ("Corolla Cross"
// before "Corolla") match correctly.
var (
	allModels         []string
	allModelsByLength []string
)

func init() {
	allModels = append(allModels, ToyotaModels...)
	allModels = append(allModels, HondaModels...)
	allModels = append(allModels, TeslaModels...)

	allModelsByLength = append(allModelsByLength, allModels...)
	sort.SliceStable(allModelsByLength, func(i, j int) bool {
		return len(allModelsByLength[i]) > len(allModelsByLength[j])
	})
}

// AllModels returns the combined model vocabulary across all supported makes.
func AllModels() []string {
	out := make([]string, len(allModels))
	copy(out, allModels)
	return out
}

// NormalizeModel maps a raw model string to its canonical vocabulary entry.
// It tries an exact case-insensitive match first, then the variant table,
// then a longest-first substring match so "Corolla Cross LE" resolves to
// "Corolla Cross" rather than "Corolla". Returns false when the model is
// not recognized.
func NormalizeModel(model string) (string, bool) {
	m := strings.ToLower(strings.TrimSpace(model))
	if m == "" {
		return "", false
	}

	for _, known := range allModels {
		if strings.ToLower(known) == m {
			return known, true
		}
	}

	for variant, canonical := range modelVariants {
		if strings.Contains(m, variant) {
			return canonical, true
		}
	}

	for _, known := range allModelsByLength {
		k := strings.ToLower(known)
		if strings.Contains(m, k) || strings.Contains(k, m) {
			return known, true
		}
	}

	return "", false
}

// NormalizeMake maps a raw make string to its canonical form, falling back
// to defaultMake when absent. Unknown makes are capitalized and passed
// through rather than rejected.
func NormalizeMake(name, defaultMake string) string {
	m := strings.ToLower(strings.TrimSpace(name))
	if m == "" {
		return defaultMake
	}
	for _, known := range KnownMakes {
		if strings.ToLower(known) == m {
			return known
		}
	}
	return strings.ToUpper(m[:1]) + m[1:]
}

// ModelImageKey returns the lookup key used to match a model against image
// URLs and alt text: lowercased with spaces, hyphens, and underscores
// removed, so "CR-V" and "crv" collide on purpose.
func ModelImageKey(model string) string {
	r := strings.NewReplacer(" ", "", "-", "", "_", "")
	return r.Replace(strings.ToLower(model))
}
