package mapping

import "strings"

// Hotspot returns the hotspot of a cursor as fractions of its width and height.
func Hotspot(name string) (x, y float64) {
	switch {
	case name == "left_ptr", name == "not-allowed", name == "unavailable":
		return 0.125, 0.125 // arrow tip
	case name == "pencil":
		return 0.125, 0.125
	case name == "text", name == "xterm", name == "ibeam":
		return 0.5, 0.5
	case strings.HasPrefix(name, "pointer"), strings.HasPrefix(name, "hand"):
		return 0.3, 0.125 // fingertip
	default:
		// move, size_* and everything unknown are centred
		return 0.5, 0.5
	}
}

// HotspotTable resolves hotspots, consulting per-cursor overrides before
// falling back to Hotspot.
type HotspotTable map[string][2]float64

// Ratio returns the hotspot ratio for name.
func (t HotspotTable) Ratio(name string) (x, y float64) {
	if r, ok := t[name]; ok {
		return r[0], r[1]
	}
	return Hotspot(name)
}

// Pixels returns the hotspot in pixels for a cursor of the given nominal size.
// Each coordinate is truncated and clamped to at least 1.
func (t HotspotTable) Pixels(name string, size int) (x, y int) {
	rx, ry := t.Ratio(name)
	return clampPixel(float64(size) * rx), clampPixel(float64(size) * ry)
}

// HotspotPixels is Pixels on the built-in table.
// Part of the package's library surface; the workflows use a table merged with config overrides.
func HotspotPixels(name string, size int) (x, y int) {
	return HotspotTable(nil).Pixels(name, size)
}

func clampPixel(v float64) int {
	p := int(v)
	if p < 1 {
		return 1
	}
	return p
}
