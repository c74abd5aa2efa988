package extract

import "strings"

// SectionRecord is one flattened legal provision with its full inherited
// context. Part, chapter, and sign are nil when the document has no such
// level above the section, so downstream consumers can distinguish "no such
// level" from an empty label.
type SectionRecord struct {
	LawName string  `json:"law_name"`
	Part    *string `json:"part,omitempty"`
	Chapter *string `json:"chapter,omitempty"`
	Sign    *string `json:"sign,omitempty"`
	Section string  `json:"section"`
	Text    string  `json:"text"`
}

// Statistics summarizes a parsed document for validation and reporting.
type Statistics struct {
	Parts    int `json:"parts"`
	Chapters int `json:"chapters"`
	Signs    int `json:"signs"`
	Sections int `json:"sections"`
}

// emitRecords flattens the assembled tree into per-section records in
// document order. The walk is pure: it does not mutate the tree and can be
// re-run. Structural nodes with no section descendants yield no records.
func emitRecords(root *Node, lawName string) []SectionRecord {
	records := make([]SectionRecord, 0)

	var part, chapter, sign *string
	var walk func(n *Node)
	walk = func(n *Node) {
		switch n.Level {
		case LevelPart:
			part = &n.Label
			chapter, sign = nil, nil
		case LevelChapter:
			chapter = &n.Label
			sign = nil
		case LevelSign:
			sign = &n.Label
		case LevelSection:
			records = append(records, SectionRecord{
				LawName: lawName,
				Part:    part,
				Chapter: chapter,
				Sign:    sign,
				Section: n.Label,
				Text:    strings.TrimSpace(strings.Join(n.lines, "\n")),
			})
			return
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(root)

	return records
}

// collectStatistics counts structural nodes by level.
func collectStatistics(root *Node) Statistics {
	var stats Statistics

	var walk func(n *Node)
	walk = func(n *Node) {
		switch n.Level {
		case LevelPart:
			stats.Parts++
		case LevelChapter:
			stats.Chapters++
		case LevelSign:
			stats.Signs++
		case LevelSection:
			stats.Sections++
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(root)

	return stats
}
