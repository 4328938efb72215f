package pipeline

import (
	"github.com/matzehuels/flametower/pkg/geom"
	"github.com/matzehuels/flametower/pkg/render/flame/layout"
	"github.com/matzehuels/flametower/pkg/tree"
)

// ComputeLayout lays out a propagated tree from the origin, using the root's
// inclusive weight as the total.
func ComputeLayout(root *tree.Node, opts Options) ([]layout.DrawRect, error) {
	lopts, err := opts.LayoutOptions()
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, nil
	}
	return layout.Build(root, geom.Vec2{}, root.WeightIncl, lopts...), nil
}
