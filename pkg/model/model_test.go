package model

import (
	"path/filepath"
	"slices"
	"testing"
)

func TestNode_Active(t *testing.T) {
	if !(Node{Founded: 1900}).Active() {
		t.Error("Active() = false for node without dissolution year, want true")
	}
	if (Node{Founded: 1900, Dissolved: 1950}).Active() {
		t.Error("Active() = true for dissolved node, want false")
	}
}

func TestNode_EndYear(t *testing.T) {
	active := Node{Founded: 1990}
	if got := active.EndYear(2026); got != 2026 {
		t.Errorf("EndYear(2026) = %d, want 2026", got)
	}
	dissolved := Node{Founded: 1900, Dissolved: 1950}
	if got := dissolved.EndYear(2026); got != 1950 {
		t.Errorf("EndYear(2026) = %d, want 1950", got)
	}
}

func TestNode_DisplayLabel(t *testing.T) {
	if got := (Node{ID: "acme", Label: "Acme Corp"}).DisplayLabel(); got != "Acme Corp" {
		t.Errorf("DisplayLabel() = %q, want %q", got, "Acme Corp")
	}
	if got := (Node{ID: "acme"}).DisplayLabel(); got != "acme" {
		t.Errorf("DisplayLabel() = %q, want %q", got, "acme")
	}
}

func TestDocument_NodeByID(t *testing.T) {
	doc := &Document{Nodes: []Node{{ID: "a"}, {ID: "b"}}}

	if n, ok := doc.NodeByID("b"); !ok || n.ID != "b" {
		t.Errorf("NodeByID(b) = %v, %v, want node b, true", n, ok)
	}
	if _, ok := doc.NodeByID("z"); ok {
		t.Error("NodeByID(z) = true, want false")
	}
}

func TestDocument_ResolvedLinks(t *testing.T) {
	doc := &Document{
		Nodes: []Node{{ID: "a"}, {ID: "b"}},
		Links: []Link{
			{Source: "a", Target: "b", Year: 1950, Type: LinkMerge},
			{Source: "a", Target: "ghost", Year: 1960, Type: LinkSplit},
			{Source: "ghost", Target: "b", Year: 1970, Type: LinkTransfer},
			{Source: "b", Target: "a", Year: 1980, Type: LinkSuccession},
		},
	}

	links, dropped := doc.ResolvedLinks()
	if dropped != 2 {
		t.Errorf("dropped = %d, want 2", dropped)
	}
	if len(links) != 2 {
		t.Fatalf("len(links) = %d, want 2", len(links))
	}
	// Input order preserved.
	if links[0].Year != 1950 || links[1].Year != 1980 {
		t.Errorf("links = %v, want years 1950 and 1980 in order", links)
	}
}

func TestDocument_SortNodes(t *testing.T) {
	doc := &Document{Nodes: []Node{
		{ID: "z", Founded: 1900},
		{ID: "a", Founded: 1900},
		{ID: "m", Founded: 1880},
	}}
	doc.SortNodes()

	got := make([]string, len(doc.Nodes))
	for i, n := range doc.Nodes {
		got[i] = n.ID
	}
	if want := []string{"m", "a", "z"}; !slices.Equal(got, want) {
		t.Errorf("SortNodes() order = %v, want %v", got, want)
	}
}

func TestDocument_FileRoundTrip(t *testing.T) {
	doc := &Document{
		Nodes: []Node{
			{ID: "a", Label: "Alpha", Founded: 1900, Dissolved: 1950,
				Eras: []Era{{Year: 1920, Label: "Alpha Group"}}},
			{ID: "b", Founded: 1951},
		},
		Links: []Link{{Source: "a", Target: "b", Year: 1950, Type: LinkSuccession}},
	}

	path := filepath.Join(t.TempDir(), "doc.json")
	if err := WriteDocumentFile(doc, path); err != nil {
		t.Fatalf("WriteDocumentFile() error = %v", err)
	}
	got, err := ReadDocumentFile(path)
	if err != nil {
		t.Fatalf("ReadDocumentFile() error = %v", err)
	}

	if len(got.Nodes) != 2 || len(got.Links) != 1 {
		t.Fatalf("round trip lost data: %+v", got)
	}
	if got.Nodes[0].Eras[0].Label != "Alpha Group" {
		t.Errorf("era label = %q, want %q", got.Nodes[0].Eras[0].Label, "Alpha Group")
	}
	if got.Links[0].Type != LinkSuccession {
		t.Errorf("link type = %q, want %q", got.Links[0].Type, LinkSuccession)
	}
}

func TestUnmarshalDocument_Invalid(t *testing.T) {
	if _, err := UnmarshalDocument([]byte("{not json")); err == nil {
		t.Error("UnmarshalDocument() error = nil, want error")
	}
}

func TestReadDocumentFile_Missing(t *testing.T) {
	if _, err := ReadDocumentFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("ReadDocumentFile() error = nil for missing file, want error")
	}
}
