package tree

import (
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/matzehuels/flametower/pkg/errors"
)

// GenerateOptions controls the shape of a synthetic tree.
type GenerateOptions struct {
	// MaxDepth is the deepest level that still receives children.
	MaxDepth int
	// Fanout bounds the child count: every expanded node gets between 1 and
	// max(1, Fanout-1) children.
	Fanout int
	// Seed makes the output reproducible.
	Seed uint64
	// MaxNodes stops generation once this many nodes exist (0 = unlimited).
	MaxNodes int
}

// DefaultGenerateOptions matches the shape of the bundled large demo tree.
var DefaultGenerateOptions = GenerateOptions{MaxDepth: 16, Fanout: 3}

// rngReader adapts a PRNG to io.Reader so uuid generation is seeded too.
type rngReader struct{ r *rand.Rand }

func (rr rngReader) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 8 {
		v := rr.r.Uint64()
		for j := 0; j < 8 && i+j < len(p); j++ {
			p[i+j] = byte(v >> (8 * j))
		}
	}
	return len(p), nil
}

// Generate builds a random tree for demos and benchmarks. Ids are version 4
// UUIDs drawn from the seeded generator, labels are their first eight hex
// digits, and exclusive weights are uniform in [0, 10).
//
// Expansion is breadth-first so a MaxNodes cap trims the deepest levels
// first. Inclusive weights are not computed.
func Generate(opts GenerateOptions) (*Node, error) {
	if opts.MaxDepth < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "max depth must be >= 0, got %d", opts.MaxDepth)
	}
	if opts.Fanout < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "fanout must be >= 1, got %d", opts.Fanout)
	}
	if opts.MaxNodes < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "max nodes must be >= 0, got %d", opts.MaxNodes)
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	src := rngReader{rng}
	newNode := func() (*Node, error) {
		id, err := uuid.NewRandomFromReader(src)
		if err != nil {
			return nil, err
		}
		s := id.String()
		return &Node{ID: ID(s), Label: s[:8], WeightExcl: rng.Float64() * 10}, nil
	}

	root, err := newNode()
	if err != nil {
		return nil, err
	}
	count := 1
	full := func() bool { return opts.MaxNodes > 0 && count >= opts.MaxNodes }

	type item struct {
		n     *Node
		depth int
	}
	queue := []item{{root, 0}}
	for len(queue) > 0 && !full() {
		it := queue[0]
		queue = queue[1:]

		fanout := 1
		if opts.Fanout > 1 {
			fanout = rng.IntN(opts.Fanout-1) + 1
		}
		for range fanout {
			if full() {
				break
			}
			child, err := newNode()
			if err != nil {
				return nil, err
			}
			count++
			it.n.Children = append(it.n.Children, child)
			if it.depth < opts.MaxDepth {
				queue = append(queue, item{child, it.depth + 1})
			}
		}
	}
	return root, nil
}
