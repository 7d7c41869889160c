package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"content-api/internal/domain/entity"
)

// Collection names. They match the names the original data set was written with.
const (
	ArticlesCollection       = "articles"
	SourceArticlesCollection = "sourcearticles"
	LikedArticlesCollection  = "likedarticles"
)

type articleDoc struct {
	ID       primitive.ObjectID  `bson:"_id,omitempty"`
	Title    string              `bson:"title"`
	Content  string              `bson:"content"`
	Summary  string              `bson:"summary,omitempty"`
	ImageURL string              `bson:"imageUrl,omitempty"`
	Category string              `bson:"category"`
	Level    string              `bson:"level,omitempty"`
	Author   string              `bson:"author,omitempty"`
	SourceID *primitive.ObjectID `bson:"sourceId,omitempty"`
	// 旧スキーマのドキュメントは english_level を持つ（読み込み専用）
	EnglishLevel string    `bson:"english_level,omitempty"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

func newArticleDoc(a *entity.Article) (articleDoc, error) {
	doc := articleDoc{
		Title:     a.Title,
		Content:   a.Content,
		Summary:   a.Summary,
		ImageURL:  a.ImageURL,
		Category:  string(a.Category),
		Level:     string(a.Level),
		Author:    a.Author,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.SourceID != "" {
		oid, err := toObjectID(a.SourceID)
		if err != nil {
			return articleDoc{}, err
		}
		doc.SourceID = &oid
	}
	return doc, nil
}

func (d *articleDoc) toEntity() *entity.Article {
	level := d.Level
	if level == "" {
		level = d.EnglishLevel
	}
	a := &entity.Article{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Content:   d.Content,
		Summary:   d.Summary,
		ImageURL:  d.ImageURL,
		Category:  entity.ParseCategory(d.Category),
		Level:     entity.ParseLevel(level),
		Author:    d.Author,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if d.SourceID != nil {
		a.SourceID = d.SourceID.Hex()
	}
	return a
}

// patchUpdate builds the update document for a partial update.
// An empty sourceId removes the reference.
func patchUpdate(p entity.ArticlePatch, now time.Time) (bson.M, error) {
	set := bson.M{"updatedAt": now}
	unset := bson.M{}

	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Content != nil {
		set["content"] = *p.Content
	}
	if p.Summary != nil {
		set["summary"] = *p.Summary
	}
	if p.ImageURL != nil {
		set["imageUrl"] = *p.ImageURL
	}
	if p.Category != nil {
		set["category"] = string(*p.Category)
	}
	if p.Level != nil {
		set["level"] = string(*p.Level)
		unset["english_level"] = ""
	}
	if p.Author != nil {
		set["author"] = *p.Author
	}
	if p.SourceID != nil {
		if *p.SourceID == "" {
			unset["sourceId"] = ""
		} else {
			oid, err := toObjectID(*p.SourceID)
			if err != nil {
				return nil, err
			}
			set["sourceId"] = oid
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update, nil
}

// enumCollation compares category and level case-insensitively. Older
// documents store "technology" / "easy", which toEntity reports as
// Technology / Easy, so list filters must match them too.
var enumCollation = &options.Collation{Locale: "en", Strength: 2}

// filterDoc is evaluated under enumCollation.
func filterDoc(f entity.ArticleFilter) bson.M {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = string(f.Category)
	}
	if f.Level != "" {
		filter["$or"] = bson.A{
			bson.M{"level": string(f.Level)},
			bson.M{"level": bson.M{"$exists": false}, "english_level": string(f.Level)},
		}
	}
	return filter
}

type sourceArticleDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Content     string             `bson:"content"`
	SourceURL   string             `bson:"sourceUrl"`
	ImageURL    string             `bson:"imageUrl,omitempty"`
	Source      string             `bson:"source,omitempty"`
	PublishedAt *time.Time         `bson:"publishedAt,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func newSourceArticleDoc(s *entity.SourceArticle) sourceArticleDoc {
	return sourceArticleDoc{
		Title:       s.Title,
		Content:     s.Content,
		SourceURL:   s.SourceURL,
		ImageURL:    s.ImageURL,
		Source:      string(s.Source),
		PublishedAt: s.PublishedAt,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// toObjectID converts a hex identifier, failing with entity.ErrInvalidID
// for wrong length or non-hex characters.
func toObjectID(id string) (primitive.ObjectID, error) {
	if !entity.IsValidID(id) {
		return primitive.NilObjectID, entity.ErrInvalidID
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, entity.ErrInvalidID
	}
	return oid, nil
}
