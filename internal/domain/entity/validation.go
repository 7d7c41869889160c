package entity

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Default article constraints.
const (
	DefaultTitleMaxLength   = 200
	DefaultContentMinLength = 50
)

// SourceTitleMaxLength caps the title of an ingested record.
const SourceTitleMaxLength = 100

// ArticleRules holds the configurable bounds applied to article fields.
// A zero TitleMaxLength or ContentMinLength disables that bound.
type ArticleRules struct {
	TitleMaxLength   int
	ContentMinLength int
}

// DefaultArticleRules returns the production constraints.
func DefaultArticleRules() ArticleRules {
	return ArticleRules{
		TitleMaxLength:   DefaultTitleMaxLength,
		ContentMinLength: DefaultContentMinLength,
	}
}

// notBlank rejects whitespace-only text. Content is stored verbatim, so
// Required alone would accept "   ".
var notBlank = validation.NewStringRuleWithError(func(s string) bool {
	return strings.TrimSpace(s) != ""
}, validation.ErrRequired)

var objectIDRule = validation.NewStringRuleWithError(IsValidID,
	validation.NewError("validation_is_object_id", "must be a 24 character hex identifier"))

func categoryRule() validation.Rule {
	in := make([]interface{}, 0, len(Categories()))
	names := make([]string, 0, len(Categories()))
	for _, c := range Categories() {
		in = append(in, c)
		names = append(names, string(c))
	}
	return validation.In(in...).Error("must be one of " + strings.Join(names, ", "))
}

func levelRule() validation.Rule {
	in := make([]interface{}, 0, len(Levels()))
	names := make([]string, 0, len(Levels()))
	for _, l := range Levels() {
		in = append(in, l)
		names = append(names, string(l))
	}
	return validation.In(in...).Error("must be one of " + strings.Join(names, ", "))
}

func sourceRule() validation.Rule {
	in := make([]interface{}, 0, len(Sources()))
	names := make([]string, 0, len(Sources()))
	for _, s := range Sources() {
		in = append(in, s)
		names = append(names, string(s))
	}
	return validation.In(in...).Error("must be one of " + strings.Join(names, ", "))
}

func (r ArticleRules) titleRules() []validation.Rule {
	if r.TitleMaxLength <= 0 {
		return nil
	}
	return []validation.Rule{validation.RuneLength(0, r.TitleMaxLength).
		Error(fmt.Sprintf("must be no more than %d characters", r.TitleMaxLength))}
}

func (r ArticleRules) contentRules() []validation.Rule {
	if r.ContentMinLength <= 0 {
		return nil
	}
	return []validation.Rule{validation.RuneLength(r.ContentMinLength, 0).
		Error(fmt.Sprintf("must be at least %d characters", r.ContentMinLength))}
}

// ValidateArticle checks a full article before it is created.
// Every violated constraint is reported, not only the first.
func (r ArticleRules) ValidateArticle(a *Article) error {
	return fromOzzo(validation.Errors{
		"title":    validation.Validate(a.Title, append([]validation.Rule{validation.Required}, r.titleRules()...)...),
		"content":  validation.Validate(a.Content, append([]validation.Rule{validation.Required, notBlank}, r.contentRules()...)...),
		"category": validation.Validate(a.Category, validation.Required, categoryRule()),
		"level":    validation.Validate(a.Level, validation.Required, levelRule()),
		"sourceId": validation.Validate(a.SourceID, objectIDRule),
	}.Filter())
}

// ValidatePatch checks only the fields present in a partial update.
// Required fields may be omitted but never set to blank.
func (r ArticleRules) ValidatePatch(p *ArticlePatch) error {
	return fromOzzo(validation.Errors{
		"title":    validation.Validate(p.Title, append([]validation.Rule{validation.NilOrNotEmpty}, r.titleRules()...)...),
		"content":  validation.Validate(p.Content, append([]validation.Rule{validation.NilOrNotEmpty, notBlank}, r.contentRules()...)...),
		"category": validation.Validate(p.Category, validation.NilOrNotEmpty, categoryRule()),
		"level":    validation.Validate(p.Level, validation.NilOrNotEmpty, levelRule()),
		"sourceId": validation.Validate(p.SourceID, objectIDRule),
	}.Filter())
}

// ValidateSourceArticle checks an ingested record before it is stored.
// Title, content, URL and a supported publisher are all required.
func ValidateSourceArticle(s *SourceArticle) error {
	return fromOzzo(validation.Errors{
		"title": validation.Validate(s.Title, validation.Required,
			validation.RuneLength(0, SourceTitleMaxLength).
				Error(fmt.Sprintf("must be no more than %d characters", SourceTitleMaxLength))),
		"content":   validation.Validate(s.Content, validation.Required, notBlank),
		"sourceUrl": validation.Validate(s.SourceURL, validation.Required, is.URL),
		"source":    validation.Validate(s.Source, validation.Required, sourceRule()),
	}.Filter())
}
