package extract

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxLineSize bounds scanner line length; statute bodies occasionally carry
// very long single-line tables.
const maxLineSize = 1 << 20

// Document is the result of parsing one law. Records hold every section in
// document order; Warnings lists recovered structural problems (malformed
// metadata, missing name block). A document with warnings is degraded, not
// failed: partial structure is still emitted.
type Document struct {
	LawName  string          `json:"law_name"`
	Metadata Metadata        `json:"metadata,omitempty"`
	Records  []SectionRecord `json:"records"`
	Stats    Statistics      `json:"statistics"`
	Warnings []string        `json:"warnings,omitempty"`
}

// Degraded reports whether any structural problem was recovered during the
// parse.
func (d *Document) Degraded() bool {
	return len(d.Warnings) > 0
}

// Parser parses wiki edit-format legal documents. A Parser holds only the
// compiled classifier and is safe for concurrent use; all per-parse state
// lives inside Parse.
type Parser struct {
	classifier *Classifier
}

// NewParser creates a Parser with the default Hebrew statute vocabulary.
func NewParser() *Parser {
	return NewParserWithVocabulary(DefaultVocabulary())
}

// NewParserWithVocabulary creates a Parser recognizing the given vocabulary.
func NewParserWithVocabulary(vocab Vocabulary) *Parser {
	return &Parser{classifier: NewClassifier(vocab)}
}

// Parse reads one document and returns its flattened section records. The
// only error condition is a failed read: structural problems in the text
// itself degrade to warnings on the Document.
func (p *Parser) Parse(r io.Reader) (*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	blocks := newBlockExtractor()
	asm := newAssembler(blocks.appendPreamble)

	index := 0
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		classified := p.classifier.Classify(line, blocks.openTag())
		classified.Index = index
		p.processLine(classified, line, blocks, asm)
		index++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	p.recoverOpenBlocks(blocks, asm)

	meta, warnings := blocks.finish()

	lawName := meta[TagLawName]
	if lawName == "" {
		warnings = append(warnings, "document has no name block")
	}

	doc := &Document{
		LawName:  lawName,
		Metadata: meta,
		Records:  emitRecords(asm.root, lawName),
		Stats:    collectStatistics(asm.root),
		Warnings: warnings,
	}
	return doc, nil
}

// processLine routes one classified line to the metadata extractor or the
// assembler.
func (p *Parser) processLine(classified ClassifiedLine, raw string, blocks *blockExtractor, asm *assembler) {
	switch classified.Role {
	case RoleMetaOpen:
		blocks.openBlock(classified.Tag)
		if classified.Text != "" {
			blocks.appendContent(classified.Text)
		}
		if classified.SelfClosed {
			blocks.closeBlock(classified.Tag, classified.Index)
		}

	case RoleMetaClose:
		if classified.Text != "" {
			blocks.appendContent(classified.Text)
		}
		blocks.closeBlock(classified.Tag, classified.Index)

	case RoleBlank:
		// Dropped: blank lines never contribute text and never close a
		// context.

	default:
		if blocks.openTag() != "" {
			// Content of an open metadata block, even if it is
			// shaped like a header. Kept verbatim.
			blocks.appendContent(raw)
			return
		}
		asm.feed(classified)
	}
}

// recoverOpenBlocks resolves blocks left open at end of document. The
// block's pending lines are replayed through normal classification: leading
// plain text stays with the block as its partial content, and everything
// from the first structural line on re-enters the body pipeline, so a
// missing close tag cannot swallow the document's sections. Replay repeats
// because replayed lines can themselves open a block that is never closed.
func (p *Parser) recoverOpenBlocks(blocks *blockExtractor, asm *assembler) {
	for {
		tag, pending, ok := blocks.recoverOpen()
		if !ok {
			return
		}

		leading := true
		for _, raw := range pending {
			classified := p.classifier.Classify(raw, blocks.openTag())
			if leading && blocks.openTag() == "" {
				if classified.Role == RoleBlank {
					continue
				}
				if classified.Role == RoleText {
					blocks.restore(tag, classified.Text)
					continue
				}
			}
			leading = false
			p.processLine(classified, raw, blocks, asm)
		}
	}
}

// ParseString parses a document held in memory.
func (p *Parser) ParseString(text string) *Document {
	doc, err := p.Parse(strings.NewReader(text))
	if err != nil {
		// strings.Reader cannot fail; a scan error here means a line
		// exceeded maxLineSize, which still yields a usable document.
		return &Document{Warnings: []string{err.Error()}}
	}
	return doc
}
