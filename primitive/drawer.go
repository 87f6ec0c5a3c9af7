package primitive

// Drawer rasterizes primitives. Implementations keep the most recent State
// and apply it to every submission that follows.
type Drawer interface {
	SetState(s State)
	Draw(p *Primitive)
	// DrawWithSelection hit-tests p at the window point (mouseX, mouseY)
	// instead of drawing it. It returns the identifier of the item hit and
	// the depth of the current state, or index -1.
	DrawWithSelection(p *Primitive, mouseX, mouseY float64) (index int, depth float64)
	// DrawWithAlternativeColor draws p using the color set registered under
	// id. Primitives without that set are drawn with their own colors.
	DrawWithAlternativeColor(p *Primitive, id AltColorID)
}
