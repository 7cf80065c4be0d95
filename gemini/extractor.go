package gemini

import (
	"context"
	"encoding/json"
	"strings"

	cardeals "github.com/nicoselucafi/cardeals-ai"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is specified.
const DefaultModel = "gemini-2.5-flash"

// Ensure Extractor implements cardeals.GenerativeExtractor at compile time.
var _ cardeals.GenerativeExtractor = (*Extractor)(nil)

// Extractor implements cardeals.GenerativeExtractor using Google Gemini.
type Extractor struct {
	client *genai.Client
	model  string
}

// NewExtractor creates a new Extractor. An empty model selects DefaultModel.
func NewExtractor(client *genai.Client, model string) *Extractor {
	if model == "" {
		model = DefaultModel
	}
	return &Extractor{client: client, model: model}
}

// ExtractOffers prompts Gemini with the page text and parses the structured
// response into offer candidates.
func (e *Extractor) ExtractOffers(ctx context.Context, pageText string) ([]*cardeals.OfferCandidate, error) {
	if strings.TrimSpace(pageText) == "" {
		return nil, cardeals.Errorf(cardeals.EINVALID, "page text required")
	}

	prompt := BuildPrompt(pageText)
	config := BuildConfig()

	result, err := e.client.Models.GenerateContent(ctx, e.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, cardeals.Errorf(cardeals.EINTERNAL, "gemini returned nil result")
	}

	return ParseResponse(result.Text()), nil
}

// BuildConfig returns the GenerateContentConfig for extraction calls.
// Temperature zero: we want the most literal reading of the page, not
// creative completion.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a data extraction assistant. Extract vehicle offers from dealer websites and return structured JSON.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildPrompt builds the extraction prompt around the cleaned page text.
func BuildPrompt(pageText string) string {
	var sb strings.Builder
	sb.WriteString(`Extract all current vehicle lease and finance offers from this dealership page.

Return a JSON array. Each offer should have this structure:
{
  "year": 2025,
  "make": "Toyota",
  "model": "RAV4",
  "trim": "LE",
  "offer_type": "lease",
  "monthly_payment": 299.00,
  "down_payment": 3499.00,
  "term_months": 36,
  "annual_mileage": 12000,
  "apr": null,
  "msrp": null,
  "selling_price": null,
  "offer_end_date": "2025-02-28",
  "disclaimer": "Plus tax, title, license. On approved credit...",
  "confidence": 0.95
}

Rules:
- Only extract CURRENT offers (not expired)
- Use null for any field you cannot determine
- The "make" field should be the car manufacturer (Toyota, Honda, Tesla, etc.)
- monthly_payment and down_payment are in dollars (not cents)
- Set confidence between 0.0 and 1.0:
  - 0.9+ : All key fields clearly stated
  - 0.7-0.9 : Most fields clear, some inferred
  - 0.5-0.7 : Several fields uncertain or missing
  - Below 0.5 : Don't include the offer
- If no valid offers found, return an empty array []
- Return ONLY the JSON array, no explanation or markdown

Dealership page content:
`)
	sb.WriteString(pageText)
	return sb.String()
}

// ParseResponse parses a model response into offer candidates. The model is
// asked for a bare JSON array but sometimes wraps it in a markdown fence or
// an {"offers": [...]} envelope; both are accepted. A response that still
// doesn't parse yields an empty list, never an error.
func ParseResponse(text string) []*cardeals.OfferCandidate {
	raw := stripFences(text)
	if raw == "" {
		return nil
	}

	var items []map[string]any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		var envelope struct {
			Offers []map[string]any `json:"offers"`
		}
		if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
			return nil
		}
		items = envelope.Offers
	}

	candidates := make([]*cardeals.OfferCandidate, 0, len(items))
	for _, item := range items {
		candidates = append(candidates, toCandidate(item))
	}
	return candidates
}

// toCandidate converts one decoded JSON object into a candidate, coercing
// loosely-typed fields. Model output mixes numbers and numeric strings
// freely, so every field goes through a forgiving converter.
func toCandidate(item map[string]any) *cardeals.OfferCandidate {
	c := &cardeals.OfferCandidate{
		Make:         asString(item["make"]),
		Model:        asString(item["model"]),
		Trim:         asString(item["trim"]),
		OfferType:    cardeals.OfferType(strings.ToLower(asString(item["offer_type"]))),
		OfferEndDate: asString(item["offer_end_date"]),
		Disclaimer:   asString(item["disclaimer"]),
		ImageURL:     asString(item["image_url"]),

		MonthlyPayment: asFloat(item["monthly_payment"]),
		DownPayment:    asFloat(item["down_payment"]),
		APR:            asFloat(item["apr"]),
		MSRP:           asFloat(item["msrp"]),
		SellingPrice:   asFloat(item["selling_price"]),
		TermMonths:     asInt(item["term_months"]),
		AnnualMileage:  asInt(item["annual_mileage"]),

		ExtractionMethod: cardeals.MethodLLMHTML,
	}
	if y := asInt(item["year"]); y != nil {
		c.Year = *y
	}
	// A missing confidence stays nil (unscored); an explicit zero is kept
	// so validation can reject it.
	c.Confidence = asFloat(item["confidence"])
	return c
}

// stripFences removes a surrounding markdown code fence, if present.
func stripFences(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
