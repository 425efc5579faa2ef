package shader

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-progcache/common"
)

func TestToneMappingName(t *testing.T) {
	tests := map[common.ToneMapping]string{
		common.LinearToneMapping:     "Linear",
		common.ReinhardToneMapping:   "Reinhard",
		common.CineonToneMapping:     "Cineon",
		common.ACESFilmicToneMapping: "ACESFilmic",
		common.AgXToneMapping:        "AgX",
		common.NeutralToneMapping:    "Neutral",
		common.CustomToneMapping:     "Custom",
		common.ToneMapping(99):       "Linear",
	}
	for tm, want := range tests {
		if got := ToneMappingName(tm); got != want {
			t.Errorf("tone mapping %d: expected %s, got %s", tm, want, got)
		}
	}
}

func TestTexelEncodingFunction(t *testing.T) {
	tests := []struct {
		cs   common.ColorSpace
		want string
	}{
		{common.SRGBColorSpace, "return sRGBTransferOETF( value );"},
		{common.LinearSRGBColorSpace, "return LinearTransferOETF( value );"},
		{common.DisplayP3ColorSpace, "return sRGBTransferOETF( LinearSRGBToLinearDisplayP3( value ) );"},
		{common.LinearDisplayP3ColorSpace, "return LinearTransferOETF( LinearSRGBToLinearDisplayP3( value ) );"},
		{common.ColorSpace("rec2100"), "return LinearTransferOETF( value );"},
	}
	for _, tc := range tests {
		got := TexelEncodingFunction("linearToOutputTexel", tc.cs)
		if !strings.HasPrefix(got, "vec4 linearToOutputTexel( vec4 value ) {") || !strings.Contains(got, tc.want) {
			t.Errorf("%s: expected %q in %q", tc.cs, tc.want, got)
		}
	}
}

func TestCubeUVDefines(t *testing.T) {
	h := 1024
	s := newCubeUVSize(h)
	if s.maxMip != 8 {
		t.Errorf("expected max mip 8, got %v", s.maxMip)
	}
	if s.texelHeight != 1.0/1024 {
		t.Errorf("expected texel height 1/1024, got %v", s.texelHeight)
	}
	if s.texelWidth != 1.0/(3*256) {
		t.Errorf("expected texel width 1/768, got %v", s.texelWidth)
	}

	small := newCubeUVSize(256)
	if small.texelWidth != 1.0/(3*112) {
		t.Errorf("expected the width floor of 112 texels, got %v", small.texelWidth)
	}
}

func TestFormatFloat(t *testing.T) {
	if got := formatFloat(8); got != "8.0" {
		t.Errorf("expected 8.0, got %s", got)
	}
	if got := formatFloat(0.25); got != "0.25" {
		t.Errorf("expected 0.25, got %s", got)
	}
}
