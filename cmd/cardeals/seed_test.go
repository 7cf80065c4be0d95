package main

import (
	"bytes"
	"context"
	"testing"

	cardeals "github.com/nicoselucafi/cardeals-ai"
	"github.com/nicoselucafi/cardeals-ai/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDeps(t *testing.T) (*Dependencies, *bytes.Buffer) {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })

	var stdout bytes.Buffer
	return &Dependencies{
		Ctx:     context.Background(),
		Stdout:  &stdout,
		Stderr:  &bytes.Buffer{},
		DB:      db,
		Dealers: sqlite.NewDealerService(db),
		Offers:  sqlite.NewOfferService(db),
		Runs:    sqlite.NewRunService(db),
	}, &stdout
}

func TestSeedCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("creates the built-in roster", func(t *testing.T) {
		t.Parallel()

		deps, stdout := testDeps(t)

		require.NoError(t, (&SeedCmd{}).Run(deps))

		assert.Contains(t, stdout.String(), "Seeded 11 dealers (0 already present)")

		dealers, err := deps.Dealers.FindDealers(deps.Ctx, cardeals.DealerFilter{})
		require.NoError(t, err)
		assert.Len(t, dealers, 11)

		longo, err := deps.Dealers.FindDealerBySlug(deps.Ctx, "longo-toyota")
		require.NoError(t, err)
		assert.Equal(t, cardeals.PlatformOctane, longo.Platform)
		assert.True(t, longo.Active)
	})

	t.Run("reseeding skips existing dealers", func(t *testing.T) {
		t.Parallel()

		deps, stdout := testDeps(t)

		require.NoError(t, (&SeedCmd{}).Run(deps))
		stdout.Reset()
		require.NoError(t, (&SeedCmd{}).Run(deps))

		assert.Contains(t, stdout.String(), "Seeded 0 dealers (11 already present)")
	})
}
