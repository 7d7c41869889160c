package mongodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"content-api/internal/domain/entity"
)

var fixedNow = time.Date(2024, 11, 9, 4, 30, 0, 0, time.UTC)

func testOptions() Options {
	return Options{
		OpTimeout: time.Second,
		Now:       func() time.Time { return fixedNow },
	}
}

func articleBSON(id primitive.ObjectID, title string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: title},
		{Key: "content", Value: "Binary code is a two-symbol system used by every digital computer."},
		{Key: "category", Value: "Technology"},
		{Key: "level", Value: "Easy"},
		{Key: "author", Value: "Jane Doe"},
		{Key: "createdAt", Value: primitive.NewDateTimeFromTime(fixedNow)},
		{Key: "updatedAt", Value: primitive.NewDateTimeFromTime(fixedNow)},
	}
}

func ns(mt *mtest.T, coll string) string {
	return mt.DB.Name() + "." + coll
}

func TestArticleRepo_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewArticleRepo(mt.DB, testOptions())

		a := &entity.Article{
			Title:    "The Rise of Artificial General Intelligence",
			Content:  "AGI represents the theoretical future of AI...",
			Category: entity.CategoryTechnology,
			Level:    entity.LevelHard,
		}
		err := repo.Create(context.Background(), a)

		require.NoError(mt, err)
		assert.True(mt, entity.IsValidID(a.ID), "expected 24 hex id, got %q", a.ID)
		assert.Equal(mt, fixedNow, a.CreatedAt)
		assert.Equal(mt, fixedNow, a.UpdatedAt)
	})

	mt.Run("invalid source id", func(mt *mtest.T) {
		repo := NewArticleRepo(mt.DB, testOptions())

		err := repo.Create(context.Background(), &entity.Article{Title: "T", SourceID: "nope"})

		assert.ErrorIs(mt, err, entity.ErrInvalidID)
	})

	mt.Run("write error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))
		repo := NewArticleRepo(mt.DB, testOptions())

		a := &entity.Article{Title: "T"}
		err := repo.Create(context.Background(), a)

		assert.ErrorIs(mt, err, entity.ErrPersistence)
		assert.Empty(mt, a.ID)
	})
}

func TestArticleRepo_Get(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	id := primitive.NewObjectID()

	mt.Run("found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, ArticlesCollection), mtest.FirstBatch,
			articleBSON(id, "The Basics of Binary Code")))
		repo := NewArticleRepo(mt.DB, testOptions())

		got, err := repo.Get(context.Background(), id.Hex())

		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), got.ID)
		assert.Equal(mt, "The Basics of Binary Code", got.Title)
		assert.Equal(mt, entity.CategoryTechnology, got.Category)
		assert.Equal(mt, entity.LevelEasy, got.Level)
		assert.Equal(mt, fixedNow, got.CreatedAt.UTC())
	})

	mt.Run("legacy english_level", func(mt *mtest.T) {
		doc := bson.D{
			{Key: "_id", Value: id},
			{Key: "title", Value: "Understanding the Roman Republic"},
			{Key: "category", Value: "history"},
			{Key: "english_level", Value: "medium"},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, ArticlesCollection), mtest.FirstBatch, doc))
		repo := NewArticleRepo(mt.DB, testOptions())

		got, err := repo.Get(context.Background(), id.Hex())

		require.NoError(mt, err)
		assert.Equal(mt, entity.CategoryHistory, got.Category)
		assert.Equal(mt, entity.LevelMedium, got.Level)
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, ArticlesCollection), mtest.FirstBatch))
		repo := NewArticleRepo(mt.DB, testOptions())

		got, err := repo.Get(context.Background(), id.Hex())

		assert.Nil(mt, got)
		assert.ErrorIs(mt, err, entity.ErrNotFound)
		assert.NotErrorIs(mt, err, entity.ErrPersistence)
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		repo := NewArticleRepo(mt.DB, testOptions())

		_, err := repo.Get(context.Background(), "12345")

		assert.ErrorIs(mt, err, entity.ErrInvalidID)
	})

	mt.Run("command error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad value",
			Name:    "BadValue",
		}))
		repo := NewArticleRepo(mt.DB, testOptions())

		_, err := repo.Get(context.Background(), id.Hex())

		assert.ErrorIs(mt, err, entity.ErrPersistence)
	})
}

func TestArticleRepo_List(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns every document", func(mt *mtest.T) {
		first, second := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, ArticlesCollection), mtest.FirstBatch,
			articleBSON(first, "one"),
			articleBSON(second, "two"),
		))
		repo := NewArticleRepo(mt.DB, testOptions())

		got, err := repo.List(context.Background(), entity.ArticleFilter{Category: entity.CategoryTechnology})

		require.NoError(mt, err)
		require.Len(mt, got, 2)
		assert.Equal(mt, first.Hex(), got[0].ID)
		assert.Equal(mt, second.Hex(), got[1].ID)
	})

	mt.Run("filters case-insensitively", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		legacy := bson.D{
			{Key: "_id", Value: id},
			{Key: "title", Value: "Legacy casing"},
			{Key: "content", Value: "stored before enums were capitalised"},
			{Key: "category", Value: "technology"},
			{Key: "level", Value: "easy"},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, ArticlesCollection), mtest.FirstBatch, legacy))
		repo := NewArticleRepo(mt.DB, testOptions())

		got, err := repo.List(context.Background(), entity.ArticleFilter{Category: entity.CategoryTechnology})
		require.NoError(mt, err)
		require.Len(mt, got, 1)
		assert.Equal(mt, entity.CategoryTechnology, got[0].Category)
		assert.Equal(mt, entity.LevelEasy, got[0].Level)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "find", evt.CommandName)
		assert.Equal(mt, "Technology", evt.Command.Lookup("filter", "category").StringValue())
		assert.Equal(mt, "en", evt.Command.Lookup("collation", "locale").StringValue())
		assert.Equal(mt, int32(2), evt.Command.Lookup("collation", "strength").Int32())
	})

	mt.Run("empty result is an empty slice", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, ArticlesCollection), mtest.FirstBatch))
		repo := NewArticleRepo(mt.DB, testOptions())

		got, err := repo.List(context.Background(), entity.ArticleFilter{Category: "Sports"})

		require.NoError(mt, err)
		assert.NotNil(mt, got)
		assert.Empty(mt, got)
	})
}

func TestArticleRepo_Update(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	id := primitive.NewObjectID()

	mt.Run("returns updated document", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: articleBSON(id, "Binary Code, Revisited")},
		))
		repo := NewArticleRepo(mt.DB, testOptions())

		title := "Binary Code, Revisited"
		got, err := repo.Update(context.Background(), id.Hex(), entity.ArticlePatch{Title: &title})

		require.NoError(mt, err)
		assert.Equal(mt, "Binary Code, Revisited", got.Title)
		assert.Equal(mt, id.Hex(), got.ID)
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))
		repo := NewArticleRepo(mt.DB, testOptions())

		title := "x"
		got, err := repo.Update(context.Background(), id.Hex(), entity.ArticlePatch{Title: &title})

		assert.Nil(mt, got)
		assert.ErrorIs(mt, err, entity.ErrNotFound)
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		repo := NewArticleRepo(mt.DB, testOptions())

		_, err := repo.Update(context.Background(), "zz", entity.ArticlePatch{})

		assert.ErrorIs(mt, err, entity.ErrInvalidID)
	})
}

func TestArticleRepo_Delete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	id := primitive.NewObjectID()

	mt.Run("deleted", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		repo := NewArticleRepo(mt.DB, testOptions())

		assert.NoError(mt, repo.Delete(context.Background(), id.Hex()))
	})

	mt.Run("nothing to delete", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		repo := NewArticleRepo(mt.DB, testOptions())

		assert.ErrorIs(mt, repo.Delete(context.Background(), id.Hex()), entity.ErrNotFound)
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		repo := NewArticleRepo(mt.DB, testOptions())

		assert.ErrorIs(mt, repo.Delete(context.Background(), "not-an-id"), entity.ErrInvalidID)
	})
}

func TestArticleRepo_BreakerOpensOnRepeatedFailures(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("open circuit", func(mt *mtest.T) {
		for i := 0; i < 5; i++ {
			mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
				Code: 2, Message: "bad value", Name: "BadValue",
			}))
		}
		repo := NewArticleRepo(mt.DB, testOptions())
		id := primitive.NewObjectID().Hex()

		for i := 0; i < 5; i++ {
			_, err := repo.Get(context.Background(), id)
			require.ErrorIs(mt, err, entity.ErrPersistence)
		}

		_, err := repo.Get(context.Background(), id)
		assert.ErrorIs(mt, err, entity.ErrPersistence)
		assert.True(mt, errors.Is(err, gobreaker.ErrOpenState), "expected open circuit, got %v", err)
	})
}
