package extract

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TagName identifies one of the recognized document-level metadata blocks.
type TagName string

const (
	TagLawName     TagName = "name"
	TagSource      TagName = "source"
	TagPreamble    TagName = "preamble"
	TagSignatures  TagName = "signatures"
	TagPublication TagName = "publication"
)

// Vocabulary configures the tokens the classifier recognizes. It is passed
// explicitly into NewParser so concurrent parses can use different
// vocabularies (e.g. a future non-Hebrew source) without shared state.
type Vocabulary struct {
	// PartKeywords mark part-level headings (חלק). Addendum headings
	// (תוספת) reset the same context levels as a part, so the addendum
	// keyword belongs in this list.
	PartKeywords []string `yaml:"part_keywords"`

	// ChapterKeywords mark chapter-level headings (פרק).
	ChapterKeywords []string `yaml:"chapter_keywords"`

	// SignKeywords mark sign-level headings (סימן).
	SignKeywords []string `yaml:"sign_keywords"`

	// MetaTags maps a tag token as written in the source (e.g. "שם") to
	// its canonical field name. Bracketed tokens not in this map are not
	// metadata and fall through to header/text classification.
	MetaTags map[string]TagName `yaml:"meta_tags"`
}

// DefaultVocabulary returns the vocabulary for the Hebrew statute corpus
// (ספר החוקים הפתוח edit-format conventions).
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		PartKeywords:    []string{"חלק", "תוספת"},
		ChapterKeywords: []string{"פרק"},
		SignKeywords:    []string{"סימן"},
		MetaTags: map[string]TagName{
			"שם":     TagLawName,
			"מקור":   TagSource,
			"מבוא":   TagPreamble,
			"חתימות": TagSignatures,
			"פרסום":  TagPublication,
		},
	}
}

// LoadVocabulary reads a vocabulary from a YAML file.
func LoadVocabulary(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("failed to read vocabulary file: %w", err)
	}

	var vocab Vocabulary
	if err := yaml.Unmarshal(data, &vocab); err != nil {
		return Vocabulary{}, fmt.Errorf("failed to parse vocabulary file %s: %w", path, err)
	}

	if err := vocab.validate(); err != nil {
		return Vocabulary{}, fmt.Errorf("invalid vocabulary in %s: %w", path, err)
	}

	return vocab, nil
}

func (v Vocabulary) validate() error {
	if len(v.PartKeywords) == 0 && len(v.ChapterKeywords) == 0 && len(v.SignKeywords) == 0 {
		return fmt.Errorf("no header keywords defined")
	}
	if len(v.MetaTags) == 0 {
		return fmt.Errorf("no metadata tags defined")
	}
	return nil
}

// tokensFor returns the source tokens that map to the given canonical tag.
func (v Vocabulary) tokensFor(tag TagName) []string {
	var tokens []string
	for token, name := range v.MetaTags {
		if name == tag {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
