package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestPost_JSONRoundTrip(t *testing.T) {
	date := NewDate(2024, time.March, 9)
	post := Post{
		FrontMatter: FrontMatter{
			Slug:     "0001-hello",
			Metadata: Metadata{Title: "Hello", Date: &date, Tags: []string{"go"}},
		},
		TOC:      []Heading{{Name: "Intro", Level: H2, Path: [MaxDepth]uint16{0, 1}}},
		HTMLBody: "<p>hi</p>",
	}

	data, err := json.Marshal(post)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `"date":"2024-03-09"`) {
		t.Errorf("date not encoded as YYYY-MM-DD: %s", data)
	}

	var got Post
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.FrontMatter.Slug != post.FrontMatter.Slug || got.FrontMatter.Metadata.Title != "Hello" {
		t.Errorf("front matter = %+v", got.FrontMatter)
	}
	if got.FrontMatter.Metadata.Date == nil || !got.FrontMatter.Metadata.Date.Equal(date.Time) {
		t.Errorf("date = %v, want %v", got.FrontMatter.Metadata.Date, date)
	}
	if len(got.TOC) != 1 || got.TOC[0] != post.TOC[0] {
		t.Errorf("toc = %+v", got.TOC)
	}
	if got.HTMLBody != post.HTMLBody {
		t.Errorf("html = %q", got.HTMLBody)
	}
}

func TestPost_JSONDraftDate(t *testing.T) {
	data, err := json.Marshal(FrontMatter{Slug: "0002-draft", Metadata: Metadata{Title: "Draft"}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `"date":null`) {
		t.Errorf("draft date not encoded as null: %s", data)
	}

	var got FrontMatter
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !got.Metadata.IsDraft() {
		t.Errorf("date = %v, want draft", got.Metadata.Date)
	}
}

func TestDate_UnmarshalJSONRejectsBadInput(t *testing.T) {
	for _, in := range []string{`"2024-13-01"`, `"yesterday"`, `20240101`} {
		var d Date
		if err := json.Unmarshal([]byte(in), &d); err == nil {
			t.Errorf("Unmarshal(%s) = %v, want error", in, d)
		}
	}
}

func TestHeading_SectionNumberAndID(t *testing.T) {
	tests := []struct {
		heading Heading
		number  string
		id      string
	}{
		{Heading{Name: "One", Level: H1, Path: [MaxDepth]uint16{1}}, "1", "1-one"},
		{Heading{Name: "Deep", Level: H4, Path: [MaxDepth]uint16{1, 1, 0, 1}}, "1.1.0.1", "1-1-0-1-deep"},
		{Heading{Name: "Top", Level: H2, Path: [MaxDepth]uint16{0, 3, 9}}, "0.3", "0-3-top"},
	}
	for _, tt := range tests {
		if got := tt.heading.SectionNumber(); got != tt.number {
			t.Errorf("SectionNumber() = %q, want %q", got, tt.number)
		}
		if got := tt.heading.ID(); got != tt.id {
			t.Errorf("ID() = %q, want %q", got, tt.id)
		}
	}
}

func TestParseHeadingLevel(t *testing.T) {
	for depth := 1; depth <= 6; depth++ {
		level, err := ParseHeadingLevel(depth)
		if err != nil || int(level) != depth {
			t.Errorf("ParseHeadingLevel(%d) = %v, %v", depth, level, err)
		}
	}
	for _, depth := range []int{0, 7} {
		if _, err := ParseHeadingLevel(depth); err == nil {
			t.Errorf("ParseHeadingLevel(%d) should fail", depth)
		}
	}
}
