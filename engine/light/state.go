package light

// State is the per-frame summary of the active lights, counted per category.
// It is the only light information that influences program selection.
type State struct {
	Directional int
	Point       int
	Spot        int
	SpotMaps    int
	RectArea    int
	Hemisphere  int
	Probes      int

	DirectionalShadows  int
	PointShadows        int
	SpotShadows         int
	SpotShadowsWithMaps int
}

// Summarize counts the enabled lights per category.
//
// Parameters:
//   - lights: the lights visible this frame; nil entries are skipped
//
// Returns:
//   - State: the per-category counts
func Summarize(lights []Light) State {
	var s State
	for _, l := range lights {
		if l == nil || !l.Enabled() {
			continue
		}
		shadow := l.CastsShadows()
		switch l.Type() {
		case LightTypeDirectional:
			s.Directional++
			if shadow {
				s.DirectionalShadows++
			}
		case LightTypePoint:
			s.Point++
			if shadow {
				s.PointShadows++
			}
		case LightTypeSpot:
			s.Spot++
			if shadow {
				s.SpotShadows++
			}
			if l.HasMap() {
				s.SpotMaps++
				if shadow {
					s.SpotShadowsWithMaps++
				}
			}
		case LightTypeRectArea:
			s.RectArea++
		case LightTypeHemisphere:
			s.Hemisphere++
		case LightTypeProbe:
			s.Probes++
		}
	}
	return s
}

// Shadows returns the total number of shadow maps the state implies.
func (s State) Shadows() int {
	return s.DirectionalShadows + s.PointShadows + s.SpotShadows
}
