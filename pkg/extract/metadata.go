package extract

import (
	"fmt"
	"strings"
)

// Metadata maps canonical tag names to their accumulated block content.
type Metadata map[TagName]string

// blockExtractor accumulates the contents of tagged metadata blocks as the
// classified line stream is consumed. Lines of an open block are held
// pending and committed only when the close marker arrives, so a block left
// open at end of document can be recovered: its pending lines are replayed
// through the body pipeline instead of being lost. Malformed tagging
// degrades to a warning; whatever was accumulated is kept.
type blockExtractor struct {
	accum    map[TagName][]string
	open     TagName
	pending  []string
	warnings []string
}

func newBlockExtractor() *blockExtractor {
	return &blockExtractor{accum: make(map[TagName][]string)}
}

// openTag returns the currently open tag, or "" when no block is open.
func (e *blockExtractor) openTag() TagName {
	return e.open
}

// openBlock starts accumulating the given tag. Reopening a tag discards its
// previous content: repeated tags are last-wins.
func (e *blockExtractor) openBlock(tag TagName) {
	e.accum[tag] = nil
	e.pending = nil
	e.open = tag
}

// appendContent adds one line of content to the open block's pending
// buffer.
func (e *blockExtractor) appendContent(text string) {
	if e.open == "" {
		return
	}
	e.pending = append(e.pending, text)
}

// closeBlock commits the open block. A close with no matching open is a
// structural error, recovered as a warning.
func (e *blockExtractor) closeBlock(tag TagName, line int) {
	if e.open != tag {
		e.warnings = append(e.warnings,
			fmt.Sprintf("line %d: </%s> without matching open tag", line, tag))
		return
	}
	e.accum[tag] = e.pending
	e.pending = nil
	e.open = ""
}

// recoverOpen handles a block left open at end of input: it flags the
// document, closes the block, and hands back the pending lines for the
// caller to replay. Reports false when no block is open.
func (e *blockExtractor) recoverOpen() (TagName, []string, bool) {
	if e.open == "" {
		return "", nil, false
	}
	e.warnings = append(e.warnings,
		fmt.Sprintf("document ended with <%s> block still open", e.open))

	tag := e.open
	pending := e.pending
	e.pending = nil
	e.open = ""
	return tag, pending, true
}

// restore commits one replayed line to a recovered block's accumulation.
func (e *blockExtractor) restore(tag TagName, text string) {
	e.accum[tag] = append(e.accum[tag], text)
}

// appendPreamble routes orphan body text (continuation text with no open
// section) into the preamble accumulator. It never resets existing preamble
// content and does not disturb the open-block state.
func (e *blockExtractor) appendPreamble(text string) {
	e.accum[TagPreamble] = append(e.accum[TagPreamble], text)
}

// finish returns the collected metadata and any malformed-metadata
// warnings. The caller resolves any still-open block via recoverOpen first.
func (e *blockExtractor) finish() (Metadata, []string) {
	meta := make(Metadata, len(e.accum))
	for tag, lines := range e.accum {
		content := strings.TrimSpace(strings.Join(lines, "\n"))
		if content != "" {
			meta[tag] = content
		}
	}
	return meta, e.warnings
}
