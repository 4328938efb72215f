package layout_test

import (
	"fmt"

	"github.com/matzehuels/flametower/pkg/geom"
	"github.com/matzehuels/flametower/pkg/render/flame/layout"
	"github.com/matzehuels/flametower/pkg/tree"
)

func ExampleBuild() {
	root := &tree.Node{ID: "main", Label: "main", WeightExcl: 10, Children: []*tree.Node{
		{ID: "parse", Label: "parse", WeightExcl: 30},
		{ID: "render", Label: "render", WeightExcl: 60},
	}}
	total := tree.Propagate(root)

	for _, r := range layout.Build(root, geom.Vec2{}, total) {
		fmt.Printf("%s x=%.0f y=%.0f w=%.0f\n", r.Label, r.Pos.X, r.Pos.Y, r.Size.X)
	}
	// Output:
	// main (100.00%) x=0 y=0 w=200
	// parse (30.00%) x=0 y=20 w=60
	// render (60.00%) x=60 y=20 w=120
}
