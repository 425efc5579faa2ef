package stage_cache

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/material"
)

const (
	vertexSource   = "void main() { gl_Position = vec4( position, 1.0 ); }"
	fragmentSource = "void main() { gl_FragColor = vec4( 1.0 ); }"
)

func newShader(vertex, fragment string) material.Material {
	return material.NewMaterial(material.TypeShader, material.WithShaders(vertex, fragment))
}

func TestIdenticalSourcesShareStage(t *testing.T) {
	c := NewCache()
	a := newShader(vertexSource, fragmentSource)
	b := newShader(vertexSource, fragmentSource)

	c.Update(a)
	c.Update(b)

	if c.VertexShaderID(a) != c.VertexShaderID(b) {
		t.Errorf("expected shared vertex id, got %d and %d", c.VertexShaderID(a), c.VertexShaderID(b))
	}
	if got := c.UsedTimes(vertexSource); got != 2 {
		t.Errorf("expected usedTimes 2, got %d", got)
	}

	c.Remove(a)
	if got := c.UsedTimes(vertexSource); got != 1 {
		t.Errorf("expected usedTimes 1 after first removal, got %d", got)
	}
	if c.Len() != 2 {
		t.Errorf("expected 2 live stages, got %d", c.Len())
	}

	c.Remove(b)
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d stages", c.Len())
	}
	if c.Materials() != 0 {
		t.Errorf("expected no back-references, got %d", c.Materials())
	}
}

func TestUpdateIsIdempotentPerMaterial(t *testing.T) {
	c := NewCache()
	m := newShader(vertexSource, fragmentSource)
	c.Update(m)
	c.Update(m)
	if got := c.UsedTimes(fragmentSource); got != 1 {
		t.Errorf("expected usedTimes 1, got %d", got)
	}
}

func TestIDsStartAtOneAndAreStable(t *testing.T) {
	c := NewCache()
	m := newShader(vertexSource, fragmentSource)
	c.Update(m)
	vs, fs := c.VertexShaderID(m), c.FragmentShaderID(m)
	if vs != 1 || fs != 2 {
		t.Errorf("expected ids 1 and 2, got %d and %d", vs, fs)
	}
	if c.VertexShaderID(m) != vs {
		t.Error("expected vertex id to be stable")
	}

	other := NewCache()
	other.Update(newShader("x", "y"))
	if id := other.VertexShaderID(newShader("x", "y")); id != 1 {
		t.Errorf("expected independent counter per cache, got %d", id)
	}
}

func TestSameTextInBothStages(t *testing.T) {
	c := NewCache()
	m := newShader(vertexSource, vertexSource)
	c.Update(m)
	if c.Len() != 1 {
		t.Errorf("expected 1 stage, got %d", c.Len())
	}
	if got := c.UsedTimes(vertexSource); got != 1 {
		t.Errorf("expected usedTimes 1, got %d", got)
	}
	c.Remove(m)
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d", c.Len())
	}
}

func TestRemoveUnknownMaterial(t *testing.T) {
	c := NewCache()
	c.Remove(newShader(vertexSource, fragmentSource))
	if c.Len() != 0 || c.Materials() != 0 {
		t.Error("expected removing an unknown material to be a no-op")
	}
}

func TestDisposeKeepsCounterMonotonic(t *testing.T) {
	c := NewCache()
	m := newShader(vertexSource, fragmentSource)
	c.Update(m)
	c.Dispose()
	if c.Len() != 0 {
		t.Errorf("expected empty cache after dispose, got %d", c.Len())
	}
	c.Update(m)
	if id := c.VertexShaderID(m); id != 3 {
		t.Errorf("expected id 3 after dispose, got %d", id)
	}
}
