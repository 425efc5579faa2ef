package common

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestCoalesce(t *testing.T) {
	if got := Coalesce(PrecisionDefault, PrecisionMedium, PrecisionHigh); got != PrecisionMedium {
		t.Errorf("expected mediump, got %q", got)
	}
	if got := Coalesce[int](); got != 0 {
		t.Errorf("expected zero value, got %d", got)
	}
}

func TestPrecisionRank(t *testing.T) {
	if !(PrecisionLow.Rank() < PrecisionMedium.Rank() && PrecisionMedium.Rank() < PrecisionHigh.Rank()) {
		t.Error("expected lowp < mediump < highp")
	}
	if Precision("ultra").Rank() != 0 {
		t.Error("expected unknown precision to rank 0")
	}
}

func TestWarnOnce(t *testing.T) {
	resetWarnings()
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	if !WarnOnce("k", "first", "value", 1) {
		t.Error("expected first call to emit")
	}
	if WarnOnce("k", "second") {
		t.Error("expected repeated key to be dropped")
	}
	if !strings.Contains(buf.String(), "first") || strings.Contains(buf.String(), "second") {
		t.Errorf("unexpected log output: %s", buf.String())
	}
}

func TestMappingPredicates(t *testing.T) {
	if !CubeRefractionMapping.IsRefraction() || CubeReflectionMapping.IsRefraction() {
		t.Error("refraction predicate mismatch")
	}
	if !CubeReflectionMapping.IsCube() || CubeUVReflectionMapping.IsCube() {
		t.Error("cube predicate mismatch")
	}
}
