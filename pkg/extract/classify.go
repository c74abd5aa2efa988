// Package extract parses wiki edit-format Hebrew legal documents into flat
// per-section records tagged with their enclosing part, chapter, and sign.
package extract

import (
	"regexp"
	"strings"
)

// LineRole is the structural role assigned to one raw input line.
// Classification is total: every line maps to exactly one role.
type LineRole int

const (
	RoleBlank LineRole = iota
	RoleText
	RoleMetaOpen
	RoleMetaClose
	RolePart
	RoleChapter
	RoleSign
	RoleSection
)

func (r LineRole) String() string {
	switch r {
	case RoleBlank:
		return "blank"
	case RoleText:
		return "text"
	case RoleMetaOpen:
		return "meta-open"
	case RoleMetaClose:
		return "meta-close"
	case RolePart:
		return "part"
	case RoleChapter:
		return "chapter"
	case RoleSign:
		return "sign"
	case RoleSection:
		return "section"
	}
	return "unknown"
}

// ClassifiedLine is one input line with its assigned role.
type ClassifiedLine struct {
	// Index is the 0-based line number in the source document.
	Index int

	Role LineRole

	// Tag is the canonical metadata tag for RoleMetaOpen/RoleMetaClose.
	Tag TagName

	// Label is the header label for RolePart/RoleChapter/RoleSign
	// (heading text with wiki decoration stripped) or the section number
	// for RoleSection.
	Label string

	// Text is the content payload: the line itself for RoleText, inline
	// text after the number for RoleSection, and block content carried on
	// the same line as a tag for RoleMetaOpen/RoleMetaClose.
	Text string

	// SelfClosed marks a RoleMetaOpen whose close tag appears on the same
	// line (the common single-line form, e.g. <שם>חוק X</שם>).
	SelfClosed bool
}

// headingTrimSet strips wiki heading markers and decoration from header
// labels, matching the source corpus convention.
const headingTrimSet = " =(){}"

// Classifier assigns a LineRole to each raw line. It is deterministic,
// side-effect-free, and safe for concurrent use.
type Classifier struct {
	vocab Vocabulary

	headingPattern   *regexp.Regexp
	sectionPattern   *regexp.Regexp
	metaOpenPattern  *regexp.Regexp
	metaClosePattern *regexp.Regexp
}

// NewClassifier creates a Classifier for the given vocabulary.
func NewClassifier(vocab Vocabulary) *Classifier {
	return &Classifier{
		vocab: vocab,

		// Wiki heading: = title =, == title ==, etc.
		headingPattern: regexp.MustCompile(`^(=+)\s*(.+?)\s*(=+)?$`),

		// Section marker: @ <number>. <inline text>. The number may carry
		// Hebrew letters, dots, dashes, and maqaf (e.g. 15א, 1-2).
		sectionPattern: regexp.MustCompile(`^\s*@\s*([\p{L}\p{N}־.-]+)\.\s*(.*)$`),

		metaOpenPattern:  regexp.MustCompile(`^<([^<>/]+)>(.*)$`),
		metaClosePattern: regexp.MustCompile(`^</([^<>/]+)>\s*$`),
	}
}

// Classify assigns a role to one line. open is the currently open metadata
// tag, or "" when no block is open. While a block is open every line that is
// not the block's close marker is content of that block, even if it looks
// like a structural header.
func (c *Classifier) Classify(line string, open TagName) ClassifiedLine {
	if open != "" {
		if before, ok := c.findClose(line, open); ok {
			return ClassifiedLine{Role: RoleMetaClose, Tag: open, Text: before}
		}
		return ClassifiedLine{Role: RoleText, Text: line}
	}

	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ClassifiedLine{Role: RoleBlank}
	}

	if m := c.metaOpenPattern.FindStringSubmatch(trimmed); m != nil {
		token := strings.TrimSpace(m[1])
		if tag, ok := c.vocab.MetaTags[token]; ok {
			rest := m[2]
			if before, closed := c.findClose(rest, tag); closed {
				return ClassifiedLine{Role: RoleMetaOpen, Tag: tag, Text: strings.TrimSpace(before), SelfClosed: true}
			}
			return ClassifiedLine{Role: RoleMetaOpen, Tag: tag, Text: strings.TrimSpace(rest)}
		}
		// Unrecognized bracketed token: not metadata, fall through.
	}

	if m := c.metaClosePattern.FindStringSubmatch(trimmed); m != nil {
		token := strings.TrimSpace(m[1])
		if tag, ok := c.vocab.MetaTags[token]; ok {
			return ClassifiedLine{Role: RoleMetaClose, Tag: tag}
		}
	}

	if m := c.headingPattern.FindStringSubmatch(trimmed); m != nil {
		title := strings.Trim(m[2], headingTrimSet)
		if role, ok := c.classifyHeading(title); ok {
			return ClassifiedLine{Role: role, Label: title}
		}
	}

	if m := c.sectionPattern.FindStringSubmatch(trimmed); m != nil {
		return ClassifiedLine{Role: RoleSection, Label: m[1], Text: strings.TrimSpace(m[2])}
	}

	return ClassifiedLine{Role: RoleText, Text: line}
}

// classifyHeading matches a stripped heading title against the header
// keyword vocabulary. The keyword must start the title; provision text can
// mention חלק or פרק mid-sentence without being a header.
func (c *Classifier) classifyHeading(title string) (LineRole, bool) {
	for _, keyword := range c.vocab.PartKeywords {
		if strings.HasPrefix(title, keyword) {
			return RolePart, true
		}
	}
	for _, keyword := range c.vocab.ChapterKeywords {
		if strings.HasPrefix(title, keyword) {
			return RoleChapter, true
		}
	}
	for _, keyword := range c.vocab.SignKeywords {
		if strings.HasPrefix(title, keyword) {
			return RoleSign, true
		}
	}
	return RoleText, false
}

// findClose looks for the close marker of the given canonical tag anywhere
// in the line. It returns the content before the marker and whether a marker
// was found.
func (c *Classifier) findClose(line string, tag TagName) (string, bool) {
	for _, token := range c.vocab.tokensFor(tag) {
		if idx := strings.Index(line, "</"+token+">"); idx >= 0 {
			return line[:idx], true
		}
	}
	return "", false
}
