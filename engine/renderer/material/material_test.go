package material

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-progcache/common"
)

func TestNewMaterialTypeDefaults(t *testing.T) {
	tests := []struct {
		materialType Type
		fog          bool
		lights       bool
		defines      int
	}{
		{TypeBasic, true, false, 0},
		{TypeLambert, true, true, 0},
		{TypeStandard, true, true, 1},
		{TypePhysical, true, true, 2},
		{TypeNormal, false, false, 0},
		{TypeShader, false, false, 0},
		{TypeRawShader, false, false, 0},
	}
	for _, tt := range tests {
		m := NewMaterial(tt.materialType)
		if m.Fog() != tt.fog {
			t.Errorf("%s: expected fog %v, got %v", tt.materialType, tt.fog, m.Fog())
		}
		if m.Lights() != tt.lights {
			t.Errorf("%s: expected lights %v, got %v", tt.materialType, tt.lights, m.Lights())
		}
		if len(m.Defines()) != tt.defines {
			t.Errorf("%s: expected %d defines, got %d", tt.materialType, tt.defines, len(m.Defines()))
		}
		if !m.ToneMapped() {
			t.Errorf("%s: expected tone mapped by default", tt.materialType)
		}
	}
}

func TestDefinesKeepInsertionOrder(t *testing.T) {
	m := NewMaterial(TypeShader, WithDefine("B", "1"), WithDefine("A", ""), WithDefine("C", "2"))
	m.SetDefine("A", "3")
	got := m.Defines()
	want := []Define{{"B", "1"}, {"A", "3"}, {"C", "2"}}
	if len(got) != len(want) {
		t.Fatalf("expected %d defines, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("define %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}

	got[0].Value = "mutated"
	if m.Defines()[0].Value != "1" {
		t.Error("expected Defines to return a copy")
	}

	m.RemoveDefine("A")
	if len(m.Defines()) != 2 || m.Defines()[1].Name != "C" {
		t.Errorf("expected A removed, got %+v", m.Defines())
	}
}

func TestMapSlots(t *testing.T) {
	tex := NewTexture("albedo")
	m := NewMaterial(TypeBasic, WithMap(MapColor, tex))
	if m.Map(MapColor) != tex {
		t.Error("expected color map to be bound")
	}
	if m.Map(MapNormal) != nil {
		t.Error("expected normal map to be empty")
	}
	if m.Map(MapSlotCount) != nil || m.Map(-1) != nil {
		t.Error("expected out of range slots to be empty")
	}
	m.SetMap(MapColor, nil)
	if m.Map(MapColor) != nil {
		t.Error("expected color map to be cleared")
	}
	if tex.Mapping != common.UVMapping {
		t.Errorf("expected UV mapping, got %d", tex.Mapping)
	}
}

func TestDisposeNotifiesOnce(t *testing.T) {
	m := NewMaterial(TypeBasic)
	calls := 0
	m.OnDispose(func(got Material) {
		if got != m {
			t.Error("expected listener to receive the disposed material")
		}
		calls++
	})
	m.Dispose()
	m.Dispose()
	if calls != 1 {
		t.Errorf("expected 1 dispose notification, got %d", calls)
	}
	if !m.Disposed() {
		t.Error("expected material to report disposed")
	}
}

func TestCustomProgramCacheKey(t *testing.T) {
	if k := NewMaterial(TypeBasic).CustomProgramCacheKey(); k != "" {
		t.Errorf("expected empty cache key, got %q", k)
	}
	m := NewMaterial(TypeBasic, WithCustomProgramCacheKey(func() string { return "v2" }))
	if k := m.CustomProgramCacheKey(); k != "v2" {
		t.Errorf("expected v2, got %q", k)
	}
}

func TestTypeNames(t *testing.T) {
	if TypePhysical.String() != "MeshPhysicalMaterial" {
		t.Errorf("expected MeshPhysicalMaterial, got %s", TypePhysical)
	}
	if !TypeRawShader.IsCustom() || TypeBasic.IsCustom() {
		t.Error("expected only shader types to be custom")
	}
	if MapClearcoatNormal.String() != "clearcoatNormalMap" {
		t.Errorf("expected clearcoatNormalMap, got %s", MapClearcoatNormal)
	}
}

func TestTypeSupports(t *testing.T) {
	tests := []struct {
		materialType Type
		slot         MapSlot
		want         bool
	}{
		{TypeBasic, MapColor, true},
		{TypeBasic, MapNormal, false},
		{TypeStandard, MapMetalness, true},
		{TypeStandard, MapClearcoat, false},
		{TypePhysical, MapClearcoat, true},
		{TypeToon, MapGradient, true},
		{TypeMatcap, MapMatcap, true},
		{TypeShader, MapColor, false},
		{TypeShadow, MapColor, false},
	}
	for _, tt := range tests {
		if got := tt.materialType.Supports(tt.slot); got != tt.want {
			t.Errorf("%s/%s: expected %v, got %v", tt.materialType, tt.slot, tt.want, got)
		}
	}
}
