package light

import "testing"

func TestSummarizeCountsPerCategory(t *testing.T) {
	lights := []Light{
		NewLight(LightTypeDirectional, WithCastsShadows(true)),
		NewLight(LightTypeDirectional),
		NewLight(LightTypePoint, WithCastsShadows(true)),
		NewLight(LightTypeSpot, WithCastsShadows(true), WithMap(true)),
		NewLight(LightTypeSpot, WithMap(true)),
		NewLight(LightTypeSpot, WithCastsShadows(true)),
		NewLight(LightTypeHemisphere, WithCastsShadows(true)),
		NewLight(LightTypeRectArea),
		NewLight(LightTypeProbe),
		NewLight(LightTypePoint, WithEnabled(false)),
		nil,
	}
	got := Summarize(lights)
	want := State{
		Directional:         2,
		Point:               1,
		Spot:                3,
		SpotMaps:            2,
		RectArea:            1,
		Hemisphere:          1,
		Probes:              1,
		DirectionalShadows:  1,
		PointShadows:        1,
		SpotShadows:         2,
		SpotShadowsWithMaps: 1,
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
	if got.Shadows() != 4 {
		t.Errorf("expected 4 shadow maps, got %d", got.Shadows())
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if s := Summarize(nil); s != (State{}) {
		t.Errorf("expected zero state, got %+v", s)
	}
}

func TestMapOnlyForSpotLights(t *testing.T) {
	if NewLight(LightTypePoint, WithMap(true)).HasMap() {
		t.Error("expected point light to ignore projection map")
	}
	if !NewLight(LightTypeSpot, WithMap(true)).HasMap() {
		t.Error("expected spot light to report its projection map")
	}
}
