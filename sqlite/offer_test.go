package sqlite_test

import (
	"context"
	"testing"
	"time"

	cardeals "github.com/nicoselucafi/cardeals-ai"
	"github.com/nicoselucafi/cardeals-ai/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLeaseCandidate(model string) *cardeals.OfferCandidate {
	return &cardeals.OfferCandidate{
		Year:             time.Now().UTC().Year(),
		Make:             "Toyota",
		Model:            model,
		Trim:             "LE",
		OfferType:        cardeals.OfferTypeLease,
		MonthlyPayment:   cardeals.Float(289),
		DownPayment:      cardeals.Float(2999),
		TermMonths:       cardeals.Int(36),
		AnnualMileage:    cardeals.Int(12000),
		Confidence:       cardeals.Float(0.85),
		ExtractionMethod: cardeals.MethodCSS,
	}
}

func TestOfferService_ReplaceDealerOffers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("inserts new offers as active", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewOfferService(db)
		dealer := MustCreateDealer(t, db, newTestDealer("longo-toyota"))

		stats, err := s.ReplaceDealerOffers(ctx, dealer.ID, dealer.SpecialsURL,
			[]*cardeals.OfferCandidate{newLeaseCandidate("RAV4"), newLeaseCandidate("Camry")})

		require.NoError(t, err)
		assert.Equal(t, 0, stats.Deactivated)
		assert.Equal(t, 2, stats.Inserted)

		active := true
		offers, err := s.FindOffers(ctx, cardeals.OfferFilter{DealerID: &dealer.ID, Active: &active})
		require.NoError(t, err)
		require.Len(t, offers, 2)

		o := offers[0]
		assert.NotEmpty(t, o.ID)
		assert.Equal(t, dealer.ID, o.DealerID)
		assert.Equal(t, "Toyota", o.Make)
		assert.Equal(t, cardeals.OfferTypeLease, o.OfferType)
		require.NotNil(t, o.MonthlyPayment)
		assert.Equal(t, 289.0, *o.MonthlyPayment)
		require.NotNil(t, o.TermMonths)
		assert.Equal(t, 36, *o.TermMonths)
		assert.Equal(t, dealer.SpecialsURL, o.SourceURL)
		assert.Equal(t, 0.85, o.Confidence)
		assert.True(t, o.Active)
		assert.False(t, o.VerifiedByHuman)
	})

	t.Run("deactivates the previous set in the same transaction", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewOfferService(db)
		dealer := MustCreateDealer(t, db, newTestDealer("longo-toyota"))

		_, err := s.ReplaceDealerOffers(ctx, dealer.ID, dealer.SpecialsURL,
			[]*cardeals.OfferCandidate{newLeaseCandidate("RAV4"), newLeaseCandidate("Camry")})
		require.NoError(t, err)

		stats, err := s.ReplaceDealerOffers(ctx, dealer.ID, dealer.SpecialsURL,
			[]*cardeals.OfferCandidate{newLeaseCandidate("Corolla")})
		require.NoError(t, err)
		assert.Equal(t, 2, stats.Deactivated)
		assert.Equal(t, 1, stats.Inserted)

		active := true
		offers, err := s.FindOffers(ctx, cardeals.OfferFilter{DealerID: &dealer.ID, Active: &active})
		require.NoError(t, err)
		require.Len(t, offers, 1)
		assert.Equal(t, "Corolla", offers[0].Model)

		all, err := s.FindOffers(ctx, cardeals.OfferFilter{DealerID: &dealer.ID})
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("appends the source anchor as a fragment", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewOfferService(db)
		dealer := MustCreateDealer(t, db, newTestDealer("longo-toyota"))

		anchored := newLeaseCandidate("RAV4")
		anchored.SourceAnchor = "offer-rav4"

		_, err := s.ReplaceDealerOffers(ctx, dealer.ID, dealer.SpecialsURL,
			[]*cardeals.OfferCandidate{anchored})
		require.NoError(t, err)

		offers, err := s.FindOffers(ctx, cardeals.OfferFilter{DealerID: &dealer.ID})
		require.NoError(t, err)
		require.Len(t, offers, 1)
		assert.Equal(t, dealer.SpecialsURL+"#offer-rav4", offers[0].SourceURL)
	})

	t.Run("an empty candidate set still deactivates old offers", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewOfferService(db)
		dealer := MustCreateDealer(t, db, newTestDealer("longo-toyota"))

		_, err := s.ReplaceDealerOffers(ctx, dealer.ID, dealer.SpecialsURL,
			[]*cardeals.OfferCandidate{newLeaseCandidate("RAV4")})
		require.NoError(t, err)

		stats, err := s.ReplaceDealerOffers(ctx, dealer.ID, dealer.SpecialsURL, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Deactivated)
		assert.Equal(t, 0, stats.Inserted)

		active := true
		offers, err := s.FindOffers(ctx, cardeals.OfferFilter{DealerID: &dealer.ID, Active: &active})
		require.NoError(t, err)
		assert.Empty(t, offers)
	})

	t.Run("requires a dealer ID", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewOfferService(db)

		_, err := s.ReplaceDealerOffers(ctx, "", "https://x.test/", nil)

		assert.Equal(t, cardeals.EINVALID, cardeals.ErrorCode(err))
	})
}

func TestOfferService_FindOffers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("filters by model and offer type", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewOfferService(db)
		dealer := MustCreateDealer(t, db, newTestDealer("longo-toyota"))

		finance := newLeaseCandidate("Tacoma")
		finance.OfferType = cardeals.OfferTypeFinance
		finance.MonthlyPayment = cardeals.Float(389)
		finance.APR = cardeals.Float(3.9)

		_, err := s.ReplaceDealerOffers(ctx, dealer.ID, dealer.SpecialsURL,
			[]*cardeals.OfferCandidate{newLeaseCandidate("RAV4"), finance})
		require.NoError(t, err)

		model := "Tacoma"
		byModel, err := s.FindOffers(ctx, cardeals.OfferFilter{Model: &model})
		require.NoError(t, err)
		require.Len(t, byModel, 1)
		require.NotNil(t, byModel[0].APR)
		assert.Equal(t, 3.9, *byModel[0].APR)

		leaseType := cardeals.OfferTypeLease
		leases, err := s.FindOffers(ctx, cardeals.OfferFilter{OfferType: &leaseType})
		require.NoError(t, err)
		require.Len(t, leases, 1)
		assert.Equal(t, "RAV4", leases[0].Model)
	})

	t.Run("applies a limit", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewOfferService(db)
		dealer := MustCreateDealer(t, db, newTestDealer("longo-toyota"))

		_, err := s.ReplaceDealerOffers(ctx, dealer.ID, dealer.SpecialsURL,
			[]*cardeals.OfferCandidate{newLeaseCandidate("RAV4"), newLeaseCandidate("Camry"), newLeaseCandidate("Corolla")})
		require.NoError(t, err)

		offers, err := s.FindOffers(ctx, cardeals.OfferFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, offers, 2)
	})
}
