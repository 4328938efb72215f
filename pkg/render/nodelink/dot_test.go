package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/flametower/pkg/tree"
)

func sample() *tree.Node {
	root := &tree.Node{ID: "main", WeightExcl: 2, Children: []*tree.Node{
		{ID: "parse", Label: "parse()", WeightExcl: 6},
		{ID: "eval", WeightExcl: 2, Children: []*tree.Node{
			{ID: "lookup", WeightExcl: 10},
		}},
	}}
	tree.Propagate(root)
	return root
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(sample(), Options{})

	for _, want := range []string{
		"digraph G",
		`"main" [label="main"`,
		`"parse" [label="parse()"`,
		`"main" -> "parse";`,
		`"eval" -> "lookup";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q", want)
		}
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(sample(), Options{Detailed: true})

	if !strings.Contains(dot, `self: 2\ntotal: 20 (100.00%)`) {
		t.Errorf("ToDOT() detailed output missing weights:\n%s", dot)
	}
	if !strings.Contains(dot, `total: 12 (60.00%)`) {
		t.Error("ToDOT() detailed output missing eval share")
	}
}

func TestToDOT_Colors(t *testing.T) {
	dot := ToDOT(sample(), Options{})

	if !strings.Contains(dot, `"main" [label="main", fillcolor="#ff0000"`) {
		t.Errorf("root is not fully saturated:\n%s", dot)
	}
	if !strings.Contains(dot, `"lookup" [label="lookup", fillcolor=`) || !strings.Contains(dot, "peripheries=2") {
		t.Error("leaf missing fill or double outline")
	}
}

func TestToDOT_MaxNodes(t *testing.T) {
	dot := ToDOT(sample(), Options{MaxNodes: 2})

	if strings.Contains(dot, `"eval" [`) {
		t.Error("ToDOT() exported more nodes than MaxNodes")
	}
	if strings.Contains(dot, `-> "eval"`) {
		t.Error("ToDOT() kept an edge to a dropped node")
	}
	if !strings.Contains(dot, `"main" -> "parse";`) {
		t.Error("ToDOT() dropped an edge between exported nodes")
	}
}

func TestToDOT_Nil(t *testing.T) {
	if dot := ToDOT(nil, Options{}); !strings.HasSuffix(dot, "}\n") {
		t.Errorf("ToDOT(nil) = %q", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 116.00" width="62" height="116"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %q, want %q", got, want)
	}
}
