package mongodb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestEnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates indexes on every collection", func(mt *mtest.T) {
		for range indexSpecs() {
			mt.AddMockResponses(mtest.CreateSuccessResponse())
		}

		assert.NoError(mt, EnsureIndexes(context.Background(), mt.DB))
	})

	mt.Run("stops at first failure", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateCommandErrorResponse(mtest.CommandError{
				Code:    86,
				Message: "index key specs conflict",
				Name:    "IndexKeySpecsConflict",
			}),
		)

		err := EnsureIndexes(context.Background(), mt.DB)

		require.Error(mt, err)
		assert.Contains(mt, err.Error(), SourceArticlesCollection)
	})
}

func TestIndexSpecs_Names(t *testing.T) {
	seen := map[string]bool{}
	for _, spec := range indexSpecs() {
		for _, m := range spec.models {
			require.NotNil(t, m.Options)
			require.NotNil(t, m.Options.Name)
			assert.False(t, seen[*m.Options.Name], "duplicate index name %s", *m.Options.Name)
			seen[*m.Options.Name] = true
		}
	}
	assert.Contains(t, seen, "idx_source_articles_source_url")
}

func TestIndexSpecs_CategoryLevelUsesListCollation(t *testing.T) {
	var found bool
	for _, spec := range indexSpecs() {
		for _, m := range spec.models {
			if *m.Options.Name != "idx_articles_category_level_ci" {
				continue
			}
			found = true
			assert.Equal(t, ArticlesCollection, spec.collection)
			require.NotNil(t, m.Options.Collation)
			assert.Equal(t, enumCollation, m.Options.Collation)
		}
	}
	assert.True(t, found)
}
