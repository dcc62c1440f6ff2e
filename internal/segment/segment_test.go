package segment

import "testing"

func TestSegment(t *testing.T) {
	lines := []string{
		"JOHN SMITH",
		"Trans Date  Post Date  Description  Amount",
		"10/12  10/13  CORNER CAFE  12.50",
		"10/14  10/15  GROCERY MART  45.67",
		"",
		"JANE SMITH",
		"Trans Date  Post Date  Description  Amount",
		"10/16  10/17  BOOKSTORE  22.00",
	}

	sections := Segment(lines)
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].HeaderIndex != 1 || sections[0].End != 6 {
		t.Errorf("first section: got header %d end %d, want 1 and 6", sections[0].HeaderIndex, sections[0].End)
	}
	if sections[1].HeaderIndex != 6 || sections[1].End != len(lines) {
		t.Errorf("second section: got header %d end %d, want 6 and %d", sections[1].HeaderIndex, sections[1].End, len(lines))
	}
	if len(sections[0].Columns) != 4 {
		t.Errorf("expected 4 columns, got %v", sections[0].Columns)
	}
}

func TestSegmentNoHeaders(t *testing.T) {
	lines := []string{"just text", "10/12 CORNER CAFE 12.50"}
	if sections := Segment(lines); len(sections) != 0 {
		t.Errorf("expected no sections, got %d", len(sections))
	}
}
