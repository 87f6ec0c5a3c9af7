// Package drawtest provides a primitive.Drawer that records what it is asked
// to draw.
package drawtest

import "git.sr.ht/~whereswaldon/brainchart/primitive"

// Op is the kind of a recorded submission.
type Op uint8

const (
	OpDraw Op = iota
	OpSelect
	OpAlternative
)

// Call is one recorded submission together with the state it was made under.
type Call struct {
	Op        Op
	State     primitive.State
	Primitive *primitive.Primitive
	Alt       primitive.AltColorID
	// Index and Depth hold the result of an OpSelect call.
	Index int
	Depth float64
}

// Recorder is a primitive.Drawer that appends every submission to Calls.
// Selection submissions are answered with primitive.Pick.
type Recorder struct {
	State primitive.State
	Calls []Call
}

var _ primitive.Drawer = (*Recorder)(nil)

func (r *Recorder) SetState(s primitive.State) {
	r.State = s
}

func (r *Recorder) Draw(p *primitive.Primitive) {
	r.Calls = append(r.Calls, Call{Op: OpDraw, State: r.State, Primitive: p})
}

func (r *Recorder) DrawWithSelection(p *primitive.Primitive, mouseX, mouseY float64) (int, float64) {
	index, depth := primitive.Identify(p, r.State, mouseX, mouseY)
	r.Calls = append(r.Calls, Call{Op: OpSelect, State: r.State, Primitive: p, Index: index, Depth: depth})
	return index, depth
}

func (r *Recorder) DrawWithAlternativeColor(p *primitive.Primitive, id primitive.AltColorID) {
	r.Calls = append(r.Calls, Call{Op: OpAlternative, State: r.State, Primitive: p, Alt: id})
}

// Count returns the number of recorded calls of kind op.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset forgets every recorded call.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}
