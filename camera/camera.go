// Package camera maps the square arena onto a viewport with pan and zoom.
package camera

// Camera controls the viewport into the arena. The arena is bounded, so the
// view is kept inside it instead of wrapping.
type Camera struct {
	// Position is the camera center in arena coordinates
	X, Y float32

	// Zoom is screen pixels per arena unit
	Zoom float32

	// Viewport dimensions (screen pixels)
	ViewportW, ViewportH float32

	ArenaSize float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// maxZoomFactor bounds zooming in, relative to the fit-to-viewport zoom.
const maxZoomFactor = 8

// New creates a camera that shows the whole arena.
func New(viewportW, viewportH, arenaSize float32) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		ArenaSize: arenaSize,
	}
	c.fitZoomBounds()
	c.Reset()
	return c
}

// fitZoomBounds sets MinZoom so the arena exactly fits the smaller viewport side.
func (c *Camera) fitZoomBounds() {
	c.MinZoom = min(c.ViewportW, c.ViewportH) / c.ArenaSize
	c.MaxZoom = c.MinZoom * maxZoomFactor
}

// WorldToScreen converts arena coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to arena coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// InViewport reports whether a screen point lies inside the viewport.
func (c *Camera) InViewport(sx, sy float32) bool {
	return sx >= 0 && sy >= 0 && sx < c.ViewportW && sy < c.ViewportH
}

// IsVisible reports whether a box with top-left (wx, wy) and side size
// intersects the visible area.
func (c *Camera) IsVisible(wx, wy, size float32) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return wx+size >= minX && wx <= maxX && wy+size >= minY && wy <= maxY
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.fitZoomBounds()
	c.SetZoom(c.Zoom)
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
	c.clampCenter()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = min(max(zoom, c.MinZoom), c.MaxZoom)
	c.clampCenter()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt zooms by factor while keeping the arena point under (sx, sy) fixed.
func (c *Camera) ZoomAt(sx, sy, factor float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.Zoom = min(max(c.Zoom*factor, c.MinZoom), c.MaxZoom)
	c.X = wx - (sx-c.ViewportW/2)/c.Zoom
	c.Y = wy - (sy-c.ViewportH/2)/c.Zoom
	c.clampCenter()
}

// Reset shows the whole arena again.
func (c *Camera) Reset() {
	c.Zoom = c.MinZoom
	c.X = c.ArenaSize / 2
	c.Y = c.ArenaSize / 2
}

// VisibleWorldBounds returns the arena-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}

// clampCenter keeps the view inside the arena on each axis, centring the
// arena on any axis where it is smaller than the view.
func (c *Camera) clampCenter() {
	c.X = clampAxis(c.X, c.ViewportW/(2*c.Zoom), c.ArenaSize)
	c.Y = clampAxis(c.Y, c.ViewportH/(2*c.Zoom), c.ArenaSize)
}

func clampAxis(center, half, size float32) float32 {
	if 2*half >= size {
		return size / 2
	}
	return min(max(center, half), size-half)
}
