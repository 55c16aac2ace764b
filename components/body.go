package components

// Color is an 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// Body holds the physical state of an agent. Size is both the side of its
// square bounding box and its mass.
type Body struct {
	Size    float32 `inspect:"bar,max:200"`
	Heading float32 `inspect:"angle"`
	Color   Color   `inspect:"skip"`

	// Last clamped brain outputs.
	Mov float32 `inspect:"bar,centered"`
	Rot float32 `inspect:"bar,centered"`
}

// Resize sets a new size and shifts pos by half the change so the box keeps
// its center.
func (b *Body) Resize(pos *Position, size float32) {
	delta := (b.Size - size) / 2
	pos.X += delta
	pos.Y += delta
	b.Size = size
}
