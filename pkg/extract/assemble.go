package extract

// Level is the hierarchy depth of a structural node. Levels are strictly
// ordered; opening a node at some level closes every open node at that level
// or deeper.
type Level int

const (
	LevelRoot Level = iota
	LevelPart
	LevelChapter
	LevelSign
	LevelSection
)

// Node is one level of the assembled hierarchy. Children are exclusively
// owned by their parent; the tree is built once per parse and discarded
// after emission.
type Node struct {
	Level    Level
	Label    string
	Children []*Node

	// lines accumulates provision text; populated only on section nodes.
	lines []string
}

func (n *Node) addChild(child *Node) {
	n.Children = append(n.Children, child)
}

// assembler walks the classified body-line stream and maintains the active
// part/chapter/sign/section context. It mirrors the four-slot current-node
// state machine of the source corpus.
type assembler struct {
	root    *Node
	part    *Node
	chapter *Node
	sign    *Node
	section *Node

	// orphan receives continuation text that arrives before any section
	// is open; such text belongs to the document preamble.
	orphan func(text string)
}

func newAssembler(orphan func(string)) *assembler {
	return &assembler{
		root:   &Node{Level: LevelRoot},
		orphan: orphan,
	}
}

// feed advances the state machine by one classified body line. Metadata and
// blank lines never reach the assembler.
func (a *assembler) feed(line ClassifiedLine) {
	switch line.Role {
	case RolePart:
		a.part = &Node{Level: LevelPart, Label: line.Label}
		a.root.addChild(a.part)
		a.chapter, a.sign, a.section = nil, nil, nil

	case RoleChapter:
		a.chapter = &Node{Level: LevelChapter, Label: line.Label}
		a.parentAbove(LevelChapter).addChild(a.chapter)
		a.sign, a.section = nil, nil

	case RoleSign:
		a.sign = &Node{Level: LevelSign, Label: line.Label}
		a.parentAbove(LevelSign).addChild(a.sign)
		a.section = nil

	case RoleSection:
		a.section = &Node{Level: LevelSection, Label: line.Label}
		a.parentAbove(LevelSection).addChild(a.section)
		if line.Text != "" {
			a.section.lines = append(a.section.lines, line.Text)
		}

	case RoleText:
		if a.section == nil {
			a.orphan(line.Text)
			return
		}
		a.section.lines = append(a.section.lines, line.Text)
	}
}

// parentAbove returns the nearest open node strictly above the given level:
// a chapter attaches under the current part if one exists, a section under
// the current sign, else chapter, else part, else the document root.
func (a *assembler) parentAbove(level Level) *Node {
	if level > LevelSign && a.sign != nil {
		return a.sign
	}
	if level > LevelChapter && a.chapter != nil {
		return a.chapter
	}
	if level > LevelPart && a.part != nil {
		return a.part
	}
	return a.root
}
