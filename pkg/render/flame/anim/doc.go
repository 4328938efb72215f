// Package anim animates flamechart rectangles between layout snapshots.
//
// # Strategies
//
// Three strategies implement [Renderer]:
//
//   - [Engine] (incremental): keeps current and target geometry per id,
//     decays every channel exponentially towards its target each frame,
//     and culls rectangles that are off screen or too narrow to see. This
//     is the strategy for large trees.
//   - [Declarative]: re-emits every rectangle with a transition duration
//     and lets the surface interpolate. No culling, no frames.
//   - [Spring]: a mass-spring-damper per rectangle index, rebuilt on every
//     transition.
//
// [New] selects one by [Kind]; [ParseKind] rejects unknown names with an
// UNSUPPORTED_RENDERER error.
//
// # Frame Loop
//
// Each renderer owns a [Loop] with two states, Idle and Running. A
// Transition that leaves any rectangle away from its target arms the loop;
// the host then calls Frame at its paint cadence until Frame returns false.
// No goroutines or timers live in this package except in [Run], which
// drives a renderer from a ticker for headless use:
//
//	r := anim.NewEngine(scene)
//	if err := r.Transition(rects, tr, vp, anim.DefaultDecay); err != nil {
//	    return err
//	}
//	return anim.Run(ctx, r, 16*time.Millisecond)
//
// # Incremental Update Rule
//
// Per frame, with dt the seconds since the previous frame:
//
//	current = target + (current - target) * exp(-decay * dt)
//
// A rectangle whose largest channel error drops below the snap epsilon
// jumps to its target; the loop stops once the largest error over all
// rectangles is below the stop epsilon.
//
// # Errors
//
// A broken internal invariant (a tracked id without target, or a surface
// that lost an element it was given) is returned as an INTERNAL_STATE
// error and stops the loop. It signals a defect, not a transient
// condition.
//
// Renderers are not safe for concurrent use.
package anim
