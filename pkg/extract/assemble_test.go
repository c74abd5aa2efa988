package extract

import "testing"

func feedAll(a *assembler, lines ...ClassifiedLine) {
	for _, line := range lines {
		a.feed(line)
	}
}

func TestAssembleFullHierarchy(t *testing.T) {
	var orphans []string
	asm := newAssembler(func(text string) { orphans = append(orphans, text) })

	feedAll(asm,
		ClassifiedLine{Role: RolePart, Label: "חלק א'"},
		ClassifiedLine{Role: RoleChapter, Label: "פרק ראשון"},
		ClassifiedLine{Role: RoleSign, Label: "סימן א'"},
		ClassifiedLine{Role: RoleSection, Label: "1", Text: "תוכן הסעיף."},
		ClassifiedLine{Role: RoleText, Text: "שורת המשך."},
	)

	records := emitRecords(asm.root, "חוק")
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	rec := records[0]
	if rec.Part == nil || *rec.Part != "חלק א'" {
		t.Errorf("part = %v", rec.Part)
	}
	if rec.Chapter == nil || *rec.Chapter != "פרק ראשון" {
		t.Errorf("chapter = %v", rec.Chapter)
	}
	if rec.Sign == nil || *rec.Sign != "סימן א'" {
		t.Errorf("sign = %v", rec.Sign)
	}
	if rec.Text != "תוכן הסעיף.\nשורת המשך." {
		t.Errorf("text = %q", rec.Text)
	}
	if len(orphans) != 0 {
		t.Errorf("orphans = %v, want none", orphans)
	}
}

func TestAssembleSkippedLevels(t *testing.T) {
	asm := newAssembler(func(string) {})

	// No part: chapter attaches directly under the root; the section under
	// the chapter.
	feedAll(asm,
		ClassifiedLine{Role: RoleChapter, Label: "פרק ראשון"},
		ClassifiedLine{Role: RoleSection, Label: "1", Text: "תוכן."},
	)

	records := emitRecords(asm.root, "חוק")
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].Part != nil {
		t.Errorf("part = %q, want absent", *records[0].Part)
	}
	if records[0].Chapter == nil || *records[0].Chapter != "פרק ראשון" {
		t.Errorf("chapter = %v", records[0].Chapter)
	}
}

func TestAssembleSectionDirectlyUnderRoot(t *testing.T) {
	asm := newAssembler(func(string) {})

	feedAll(asm, ClassifiedLine{Role: RoleSection, Label: "1", Text: "תוכן."})

	records := emitRecords(asm.root, "חוק")
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	rec := records[0]
	if rec.Part != nil || rec.Chapter != nil || rec.Sign != nil {
		t.Errorf("context = %v/%v/%v, want all absent", rec.Part, rec.Chapter, rec.Sign)
	}
}

func TestAssembleHigherHeaderClosesOpenLevels(t *testing.T) {
	asm := newAssembler(func(string) {})

	// A part header after a chapter starts a new top-level part; the next
	// section must not inherit the old chapter.
	feedAll(asm,
		ClassifiedLine{Role: RoleChapter, Label: "פרק ראשון"},
		ClassifiedLine{Role: RoleSection, Label: "1", Text: "ראשון."},
		ClassifiedLine{Role: RolePart, Label: "חלק ב'"},
		ClassifiedLine{Role: RoleSection, Label: "2", Text: "שני."},
	)

	records := emitRecords(asm.root, "חוק")
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	second := records[1]
	if second.Part == nil || *second.Part != "חלק ב'" {
		t.Errorf("part = %v", second.Part)
	}
	if second.Chapter != nil {
		t.Errorf("chapter = %q, want closed", *second.Chapter)
	}
}

func TestAssembleNewSectionClosesPrevious(t *testing.T) {
	asm := newAssembler(func(string) {})

	feedAll(asm,
		ClassifiedLine{Role: RoleSection, Label: "1", Text: "ראשון."},
		ClassifiedLine{Role: RoleSection, Label: "2", Text: "שני."},
		ClassifiedLine{Role: RoleText, Text: "המשך של השני בלבד."},
	)

	records := emitRecords(asm.root, "חוק")
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Text != "ראשון." {
		t.Errorf("first section text = %q", records[0].Text)
	}
	if records[1].Text != "שני.\nהמשך של השני בלבד." {
		t.Errorf("second section text = %q", records[1].Text)
	}
}

func TestAssembleOrphanTextBeforeFirstSection(t *testing.T) {
	var orphans []string
	asm := newAssembler(func(text string) { orphans = append(orphans, text) })

	feedAll(asm,
		ClassifiedLine{Role: RoleText, Text: "פתיח לפני כל סעיף."},
		ClassifiedLine{Role: RolePart, Label: "חלק א'"},
		ClassifiedLine{Role: RoleText, Text: "עוד פתיח."},
		ClassifiedLine{Role: RoleSection, Label: "1", Text: "תוכן."},
	)

	if len(orphans) != 2 {
		t.Fatalf("orphans = %v, want 2 lines", orphans)
	}
	records := emitRecords(asm.root, "חוק")
	if len(records) != 1 || records[0].Text != "תוכן." {
		t.Errorf("records = %v", records)
	}
}

func TestAssembleEmptySignEmitsNoRecords(t *testing.T) {
	asm := newAssembler(func(string) {})

	// Two consecutive signs with no intervening section: the first closes
	// with no children and must produce no phantom record.
	feedAll(asm,
		ClassifiedLine{Role: RoleSign, Label: "סימן א'"},
		ClassifiedLine{Role: RoleSign, Label: "סימן ב'"},
		ClassifiedLine{Role: RoleSection, Label: "1", Text: "תוכן."},
	)

	records := emitRecords(asm.root, "חוק")
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].Sign == nil || *records[0].Sign != "סימן ב'" {
		t.Errorf("sign = %v, want סימן ב'", records[0].Sign)
	}
}

func TestAssembleStatistics(t *testing.T) {
	asm := newAssembler(func(string) {})

	feedAll(asm,
		ClassifiedLine{Role: RolePart, Label: "חלק א'"},
		ClassifiedLine{Role: RoleChapter, Label: "פרק ראשון"},
		ClassifiedLine{Role: RoleSection, Label: "1"},
		ClassifiedLine{Role: RoleSection, Label: "2"},
		ClassifiedLine{Role: RoleChapter, Label: "פרק שני"},
		ClassifiedLine{Role: RoleSign, Label: "סימן א'"},
		ClassifiedLine{Role: RoleSection, Label: "3"},
	)

	stats := collectStatistics(asm.root)
	want := Statistics{Parts: 1, Chapters: 2, Signs: 1, Sections: 3}
	if stats != want {
		t.Errorf("statistics = %+v, want %+v", stats, want)
	}
}
