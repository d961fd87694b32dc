package store

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-metadata-registry/internal/domain"
)

// =============================================================================
// Test Data Builders
// =============================================================================

// buildCreateInput creates a registration input for the given token id and sequence
func buildCreateInput(tokenID domain.TokenID, sequence uint64) CreateMetadataInput {
	return CreateMetadataInput{
		TokenID:     tokenID,
		Name:        fmt.Sprintf("Token #%d", tokenID),
		Description: "Generated for store tests",
		ImageURI:    fmt.Sprintf("ipfs://bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgt/%d.png", tokenID),
		Attributes: []domain.Attribute{
			{Trait: "edition", Value: tokenID.String()},
			{Trait: "palette", Value: "mono"},
		},
		ContentHash: fmt.Sprintf("hash-%d", tokenID),
		Sequence:    sequence,
	}
}

// RunStoreTests runs the shared store suite against the implementation returned by initDB
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store) {
	t.Run("CreateMetadata", func(t *testing.T) { testCreateMetadata(t, initDB(t)) })
	t.Run("UpdateMetadata", func(t *testing.T) { testUpdateMetadata(t, initDB(t)) })
	t.Run("ListMetadata", func(t *testing.T) { testListMetadata(t, initDB(t)) })
	t.Run("MaxSequence", func(t *testing.T) { testMaxSequence(t, initDB(t)) })
	t.Run("TokenURI", func(t *testing.T) { testTokenURI(t, initDB(t)) })
	t.Run("IndependentStores", func(t *testing.T) { testIndependentStores(t, initDB(t)) })
}

// =============================================================================
// Test: CreateMetadata / GetMetadata
// =============================================================================

func testCreateMetadata(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("missing record returns nil without error", func(t *testing.T) {
		row, err := store.GetMetadata(ctx, 9999)
		require.NoError(t, err)
		assert.Nil(t, row)
	})

	t.Run("created record is readable with both markers set", func(t *testing.T) {
		input := buildCreateInput(1, 10)
		require.NoError(t, store.CreateMetadata(ctx, input))

		row, err := store.GetMetadata(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, row)
		assert.Equal(t, domain.TokenID(1), row.TokenID)
		assert.Equal(t, input.Name, row.Name)
		assert.Equal(t, input.Description, row.Description)
		assert.Equal(t, input.ImageURI, row.ImageURI)
		assert.Equal(t, input.Attributes, []domain.Attribute(row.Attributes))
		assert.Equal(t, input.ContentHash, row.ContentHash)
		assert.Equal(t, uint64(10), row.CreatedAt)
		assert.Equal(t, uint64(10), row.UpdatedAt)
	})

	t.Run("second create fails with ErrAlreadyExists and leaves record unchanged", func(t *testing.T) {
		input := buildCreateInput(2, 20)
		require.NoError(t, store.CreateMetadata(ctx, input))

		again := buildCreateInput(2, 21)
		again.Name = "Overwritten"
		err := store.CreateMetadata(ctx, again)
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)

		row, err := store.GetMetadata(ctx, 2)
		require.NoError(t, err)
		require.NotNil(t, row)
		assert.Equal(t, input.Name, row.Name)
		assert.Equal(t, uint64(20), row.CreatedAt)
	})

	t.Run("empty attribute list round trips as empty", func(t *testing.T) {
		input := buildCreateInput(3, 30)
		input.Attributes = nil
		require.NoError(t, store.CreateMetadata(ctx, input))

		row, err := store.GetMetadata(ctx, 3)
		require.NoError(t, err)
		require.NotNil(t, row)
		assert.Empty(t, row.Attributes)
		assert.NotNil(t, row.ToDomain().Attributes)
	})
}

// =============================================================================
// Test: UpdateMetadata
// =============================================================================

func testUpdateMetadata(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("update of a missing record fails with ErrNotFound and creates nothing", func(t *testing.T) {
		err := store.UpdateMetadata(ctx, UpdateMetadataInput{
			TokenID:     100,
			Name:        "ghost",
			Description: "ghost",
			ImageURI:    "ipfs://ghost",
			Sequence:    5,
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)

		row, err := store.GetMetadata(ctx, 100)
		require.NoError(t, err)
		assert.Nil(t, row)
	})

	t.Run("update overwrites fields and keeps created_at", func(t *testing.T) {
		require.NoError(t, store.CreateMetadata(ctx, buildCreateInput(101, 7)))

		update := UpdateMetadataInput{
			TokenID:     101,
			Name:        "Renamed",
			Description: "Revised description",
			ImageURI:    "ar://revised",
			Attributes:  []domain.Attribute{{Trait: "state", Value: "revised"}},
			ContentHash: "revised-hash",
			Sequence:    12,
		}
		require.NoError(t, store.UpdateMetadata(ctx, update))

		row, err := store.GetMetadata(ctx, 101)
		require.NoError(t, err)
		require.NotNil(t, row)
		assert.Equal(t, "Renamed", row.Name)
		assert.Equal(t, "Revised description", row.Description)
		assert.Equal(t, "ar://revised", row.ImageURI)
		assert.Equal(t, update.Attributes, []domain.Attribute(row.Attributes))
		assert.Equal(t, "revised-hash", row.ContentHash)
		assert.Equal(t, uint64(7), row.CreatedAt)
		assert.Equal(t, uint64(12), row.UpdatedAt)
	})

	t.Run("returned rows do not alias stored attributes", func(t *testing.T) {
		require.NoError(t, store.CreateMetadata(ctx, buildCreateInput(102, 1)))

		row, err := store.GetMetadata(ctx, 102)
		require.NoError(t, err)
		require.NotNil(t, row)
		row.Attributes[0].Value = "mutated"

		again, err := store.GetMetadata(ctx, 102)
		require.NoError(t, err)
		assert.Equal(t, "102", again.Attributes[0].Value)
	})
}

// =============================================================================
// Test: ListMetadata
// =============================================================================

func testListMetadata(t *testing.T, store Store) {
	ctx := context.Background()

	for _, id := range []domain.TokenID{205, 201, 203, 202, 204} {
		require.NoError(t, store.CreateMetadata(ctx, buildCreateInput(id, uint64(id))))
	}

	t.Run("ordered by token id", func(t *testing.T) {
		rows, err := store.ListMetadata(ctx, 0, 10)
		require.NoError(t, err)
		require.Len(t, rows, 5)
		for i, row := range rows {
			assert.Equal(t, domain.TokenID(201+i), row.TokenID)
		}
	})

	t.Run("after and limit page through records", func(t *testing.T) {
		rows, err := store.ListMetadata(ctx, 202, 2)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, domain.TokenID(203), rows[0].TokenID)
		assert.Equal(t, domain.TokenID(204), rows[1].TokenID)
	})

	t.Run("past the end is empty", func(t *testing.T) {
		rows, err := store.ListMetadata(ctx, 205, 10)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("largest cursor is empty", func(t *testing.T) {
		rows, err := store.ListMetadata(ctx, domain.TokenID(math.MaxInt64), 10)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

// =============================================================================
// Test: MaxSequence
// =============================================================================

func testMaxSequence(t *testing.T, store Store) {
	ctx := context.Background()

	seq, err := store.MaxSequence(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), seq)

	require.NoError(t, store.CreateMetadata(ctx, buildCreateInput(301, 40)))
	require.NoError(t, store.CreateMetadata(ctx, buildCreateInput(302, 30)))
	require.NoError(t, store.UpdateMetadata(ctx, UpdateMetadataInput{
		TokenID:     302,
		Name:        "n",
		Description: "d",
		ImageURI:    "u",
		ContentHash: "h",
		Sequence:    55,
	}))

	seq, err = store.MaxSequence(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(55), seq)
}

// =============================================================================
// Test: TokenURI
// =============================================================================

func testTokenURI(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("missing uri returns nil without error", func(t *testing.T) {
		uri, err := store.GetTokenURI(ctx, 400)
		require.NoError(t, err)
		assert.Nil(t, uri)
	})

	t.Run("upsert overwrites the previous value", func(t *testing.T) {
		require.NoError(t, store.UpsertTokenURI(ctx, 401, "ipfs://first"))
		require.NoError(t, store.UpsertTokenURI(ctx, 401, "ipfs://second"))

		uri, err := store.GetTokenURI(ctx, 401)
		require.NoError(t, err)
		require.NotNil(t, uri)
		assert.Equal(t, domain.TokenID(401), uri.TokenID)
		assert.Equal(t, "ipfs://second", uri.URI)
	})
}

// =============================================================================
// Test: stores are independent
// =============================================================================

func testIndependentStores(t *testing.T, store Store) {
	ctx := context.Background()

	require.NoError(t, store.UpsertTokenURI(ctx, 500, "ipfs://only-uri"))
	row, err := store.GetMetadata(ctx, 500)
	require.NoError(t, err)
	assert.Nil(t, row)

	require.NoError(t, store.CreateMetadata(ctx, buildCreateInput(501, 1)))
	uri, err := store.GetTokenURI(ctx, 501)
	require.NoError(t, err)
	assert.Nil(t, uri)
}
