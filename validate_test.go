package cardeals_test

import (
	"testing"
	"time"

	cardeals "github.com/nicoselucafi/cardeals-ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCandidate() *cardeals.OfferCandidate {
	return &cardeals.OfferCandidate{
		Year:           time.Now().UTC().Year(),
		Make:           "Toyota",
		Model:          "RAV4",
		OfferType:      cardeals.OfferTypeLease,
		MonthlyPayment: cardeals.Float(299),
		DownPayment:    cardeals.Float(3499),
		TermMonths:     cardeals.Int(36),
		Confidence:     cardeals.Float(0.85),
	}
}

func TestSnapTerm(t *testing.T) {
	t.Parallel()

	t.Run("keeps canonical terms", func(t *testing.T) {
		t.Parallel()

		got, ok := cardeals.SnapTerm(36)

		assert.True(t, ok)
		assert.Equal(t, 36, got)
	})

	t.Run("snaps nearby terms to canonical values", func(t *testing.T) {
		t.Parallel()

		got, ok := cardeals.SnapTerm(35)
		assert.True(t, ok)
		assert.Equal(t, 36, got)

		got, ok = cardeals.SnapTerm(25)
		assert.True(t, ok)
		assert.Equal(t, 24, got)
	})

	t.Run("rejects terms far from any canonical value", func(t *testing.T) {
		t.Parallel()

		_, ok := cardeals.SnapTerm(55)

		assert.False(t, ok)
	})
}

func TestValidateOffer(t *testing.T) {
	t.Parallel()

	t.Run("accepts a well formed candidate", func(t *testing.T) {
		t.Parallel()

		ok, errs := cardeals.ValidateOffer(validCandidate())

		assert.True(t, ok)
		assert.Empty(t, errs)
	})

	t.Run("rejects missing model and year", func(t *testing.T) {
		t.Parallel()

		ok, errs := cardeals.ValidateOffer(&cardeals.OfferCandidate{})

		assert.False(t, ok)
		assert.Contains(t, errs, "missing model")
		assert.Contains(t, errs, "missing year")
	})

	t.Run("rejects implausible monthly payments", func(t *testing.T) {
		t.Parallel()

		c := validCandidate()
		c.MonthlyPayment = cardeals.Float(25000)

		ok, errs := cardeals.ValidateOffer(c)

		assert.False(t, ok)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], "monthly_payment")
	})

	t.Run("rejects years outside the rolling window", func(t *testing.T) {
		t.Parallel()

		c := validCandidate()
		c.Year = time.Now().UTC().Year() - 3

		ok, errs := cardeals.ValidateOffer(c)

		assert.False(t, ok)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], "invalid year")
	})

	t.Run("rejects terms that cannot snap", func(t *testing.T) {
		t.Parallel()

		c := validCandidate()
		c.TermMonths = cardeals.Int(55)

		ok, _ := cardeals.ValidateOffer(c)

		assert.False(t, ok)
	})

	t.Run("rejects unknown models", func(t *testing.T) {
		t.Parallel()

		c := validCandidate()
		c.Model = "Stratos"

		ok, errs := cardeals.ValidateOffer(c)

		assert.False(t, ok)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], "unknown model")
	})

	t.Run("rejects low confidence but allows unscored", func(t *testing.T) {
		t.Parallel()

		c := validCandidate()
		c.Confidence = cardeals.Float(0.3)
		ok, _ := cardeals.ValidateOffer(c)
		assert.False(t, ok)

		c = validCandidate()
		c.Confidence = nil
		ok, _ = cardeals.ValidateOffer(c)
		assert.True(t, ok)
	})

	t.Run("rejects an explicit zero confidence", func(t *testing.T) {
		t.Parallel()

		c := validCandidate()
		c.Confidence = cardeals.Float(0)

		ok, errs := cardeals.ValidateOffer(c)

		assert.False(t, ok)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], "confidence too low")
	})

	t.Run("rejects unrecognized offer types", func(t *testing.T) {
		t.Parallel()

		c := validCandidate()
		c.OfferType = "rental"

		ok, _ := cardeals.ValidateOffer(c)

		assert.False(t, ok)
	})

	t.Run("allows missing optional numeric fields", func(t *testing.T) {
		t.Parallel()

		c := validCandidate()
		c.MonthlyPayment = nil
		c.DownPayment = nil
		c.TermMonths = nil

		ok, _ := cardeals.ValidateOffer(c)

		assert.True(t, ok)
	})
}

func TestCleanOffer(t *testing.T) {
	t.Parallel()

	t.Run("normalizes make model and offer type", func(t *testing.T) {
		t.Parallel()

		c := &cardeals.OfferCandidate{
			Make:      "toyota",
			Model:     "rav 4",
			Trim:      " XLE ",
			OfferType: "LEASE",
		}

		got := cardeals.CleanOffer(c, "Toyota")

		assert.Equal(t, "Toyota", got.Make)
		assert.Equal(t, "RAV4", got.Model)
		assert.Equal(t, "XLE", got.Trim)
		assert.Equal(t, cardeals.OfferTypeLease, got.OfferType)
	})

	t.Run("defaults year to the current year", func(t *testing.T) {
		t.Parallel()

		got := cardeals.CleanOffer(&cardeals.OfferCandidate{Model: "Civic"}, "Honda")

		assert.Equal(t, time.Now().UTC().Year(), got.Year)
	})

	t.Run("snaps near canonical terms", func(t *testing.T) {
		t.Parallel()

		c := &cardeals.OfferCandidate{Model: "Civic", TermMonths: cardeals.Int(35)}

		got := cardeals.CleanOffer(c, "Honda")

		assert.Equal(t, 36, *got.TermMonths)
	})

	t.Run("defaults unscored confidence", func(t *testing.T) {
		t.Parallel()

		got := cardeals.CleanOffer(&cardeals.OfferCandidate{Model: "Civic"}, "Honda")

		require.NotNil(t, got.Confidence)
		assert.Equal(t, 0.8, *got.Confidence)
	})

	t.Run("keeps an explicit confidence score", func(t *testing.T) {
		t.Parallel()

		c := &cardeals.OfferCandidate{Model: "Civic", Confidence: cardeals.Float(0.6)}

		got := cardeals.CleanOffer(c, "Honda")

		require.NotNil(t, got.Confidence)
		assert.Equal(t, 0.6, *got.Confidence)
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		c := &cardeals.OfferCandidate{
			Make:       "honda",
			Model:      "crv",
			OfferType:  "finance",
			TermMonths: cardeals.Int(47),
		}

		once := cardeals.CleanOffer(c, "Honda")
		twice := cardeals.CleanOffer(once, "Honda")

		assert.Equal(t, once, twice)
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		t.Parallel()

		c := &cardeals.OfferCandidate{Make: "toyota", Model: "Camry"}

		_ = cardeals.CleanOffer(c, "Toyota")

		assert.Equal(t, "toyota", c.Make)
	})
}
