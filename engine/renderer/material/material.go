package material

import (
	"github.com/Carmen-Shannon/oxy-progcache/common"
)

// material is the implementation of the Material interface.
type material struct {
	name         string
	materialType Type
	maps         [MapSlotCount]*Texture
	defines      []Define

	vertexShader   string
	fragmentShader string
	glslVersion    common.GLSLVersion

	precision          common.Precision
	side               common.Side
	flatShading        bool
	vertexColors       bool
	vertexAlphas       bool
	fog                bool
	lights             bool
	toneMapped         bool
	dithering          bool
	premultipliedAlpha bool
	alphaHash          bool
	alphaToCoverage    bool
	alphaTest          float32
	transparent        bool
	sizeAttenuation    bool
	wireframe          bool

	clearcoat    float32
	iridescence  float32
	sheen        float32
	transmission float32
	anisotropy   float32
	dispersion   float32

	normalMapType NormalMapType
	combine       common.Combine
	depthPacking  common.DepthPacking

	clipCullDistance    bool
	multiDraw           bool
	index0AttributeName string
	customCacheKey      func() string

	disposed         bool
	disposeListeners []func(Material)
}

// Material defines the interface for a render material as seen by program selection.
//
// Only properties that change the compiled program are modelled. Uniform values (colors, intensities,
// texture contents) belong to the uniform upload path and never influence which program is used.
// Properties are read on every derivation, so changing one through a setter takes effect on the next draw.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Type retrieves the shading model of the material.
	//
	// Returns:
	//   - Type: the material type
	Type() Type

	// Map retrieves the texture bound to a slot, or nil if none is set.
	//
	// Parameters:
	//   - slot: the map slot
	//
	// Returns:
	//   - *Texture: the texture, or nil
	Map(slot MapSlot) *Texture

	// Defines retrieves the material-supplied preprocessor defines in insertion order.
	//
	// Returns:
	//   - []Define: a copy of the defines
	Defines() []Define

	// VertexShader retrieves the custom vertex source of a Shader or RawShader material.
	VertexShader() string

	// FragmentShader retrieves the custom fragment source of a Shader or RawShader material.
	FragmentShader() string

	// GLSLVersion retrieves the version a raw material declares for its own sources.
	GLSLVersion() common.GLSLVersion

	// Precision retrieves the requested float precision, or PrecisionDefault to use the renderer's.
	Precision() common.Precision

	Side() common.Side
	FlatShading() bool
	VertexColors() bool
	VertexAlphas() bool
	Fog() bool
	Lights() bool
	ToneMapped() bool
	Dithering() bool
	PremultipliedAlpha() bool
	AlphaHash() bool
	AlphaToCoverage() bool
	AlphaTest() float32
	Transparent() bool
	SizeAttenuation() bool
	Wireframe() bool

	// Clearcoat and the other physical layer strengths below enable their feature only when > 0
	// and only on TypePhysical.
	Clearcoat() float32
	Iridescence() float32
	Sheen() float32
	Transmission() float32
	Anisotropy() float32
	Dispersion() float32

	NormalMapType() NormalMapType
	Combine() common.Combine
	DepthPacking() common.DepthPacking

	// ClipCullDistance reports whether the ANGLE clip/cull distance extension is requested.
	ClipCullDistance() bool

	// MultiDraw reports whether the ANGLE multi-draw extension is requested.
	MultiDraw() bool

	// Index0AttributeName retrieves the attribute that must be bound to location 0, or "".
	Index0AttributeName() string

	// CustomProgramCacheKey retrieves the material's own contribution to the program cache key.
	//
	// Returns:
	//   - string: the contribution, "" when the material adds nothing
	CustomProgramCacheKey() string

	// SetMap binds a texture to a slot. A nil texture clears the slot.
	//
	// Parameters:
	//   - slot: the map slot
	//   - texture: the texture, or nil
	SetMap(slot MapSlot, texture *Texture)

	// SetDefine sets a preprocessor define, replacing the value of an existing define with the same name
	// in place so that insertion order is preserved.
	//
	// Parameters:
	//   - name: the define name
	//   - value: the define value, "" for a bare define
	SetDefine(name, value string)

	// RemoveDefine deletes a preprocessor define if present.
	//
	// Parameters:
	//   - name: the define name
	RemoveDefine(name string)

	SetPrecision(precision common.Precision)
	SetToneMapped(toneMapped bool)
	SetTransparent(transparent bool)
	SetClearcoat(clearcoat float32)
	SetTransmission(transmission float32)

	// OnDispose registers a listener called once when the material is disposed.
	//
	// Parameters:
	//   - fn: the listener
	OnDispose(fn func(Material))

	// Dispose notifies every dispose listener. Listeners are cleared afterwards and later calls are no-ops.
	Dispose()

	// Disposed reports whether Dispose has been called.
	Disposed() bool
}

var _ Material = &material{}

// NewMaterial creates a new Material of the given type with the defaults of that type and any provided
// options applied.
//
// Parameters:
//   - materialType: the shading model
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(materialType Type, options ...MaterialBuilderOption) Material {
	m := &material{
		materialType: materialType,
		toneMapped:   true,
		combine:      common.MultiplyOperation,
		depthPacking: common.BasicDepthPacking,
	}
	switch materialType {
	case TypeBasic, TypeMatcap, TypeLineBasic, TypeLineDashed:
		m.fog = true
	case TypeLambert, TypePhong, TypeToon, TypeShadow:
		m.fog = true
		m.lights = true
	case TypeStandard:
		m.fog = true
		m.lights = true
		m.defines = []Define{{Name: "STANDARD"}}
	case TypePhysical:
		m.fog = true
		m.lights = true
		m.defines = []Define{{Name: "STANDARD"}, {Name: "PHYSICAL"}}
	case TypePoints, TypeSprite:
		m.fog = true
		m.sizeAttenuation = true
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Type() Type {
	return m.materialType
}

func (m *material) Map(slot MapSlot) *Texture {
	if slot < 0 || slot >= MapSlotCount {
		return nil
	}
	return m.maps[slot]
}

func (m *material) Defines() []Define {
	out := make([]Define, len(m.defines))
	copy(out, m.defines)
	return out
}

func (m *material) VertexShader() string              { return m.vertexShader }
func (m *material) FragmentShader() string            { return m.fragmentShader }
func (m *material) GLSLVersion() common.GLSLVersion   { return m.glslVersion }
func (m *material) Precision() common.Precision       { return m.precision }
func (m *material) Side() common.Side                 { return m.side }
func (m *material) FlatShading() bool                 { return m.flatShading }
func (m *material) VertexColors() bool                { return m.vertexColors }
func (m *material) VertexAlphas() bool                { return m.vertexAlphas }
func (m *material) Fog() bool                         { return m.fog }
func (m *material) Lights() bool                      { return m.lights }
func (m *material) ToneMapped() bool                  { return m.toneMapped }
func (m *material) Dithering() bool                   { return m.dithering }
func (m *material) PremultipliedAlpha() bool          { return m.premultipliedAlpha }
func (m *material) AlphaHash() bool                   { return m.alphaHash }
func (m *material) AlphaToCoverage() bool             { return m.alphaToCoverage }
func (m *material) AlphaTest() float32                { return m.alphaTest }
func (m *material) Transparent() bool                 { return m.transparent }
func (m *material) SizeAttenuation() bool             { return m.sizeAttenuation }
func (m *material) Wireframe() bool                   { return m.wireframe }
func (m *material) Clearcoat() float32                { return m.clearcoat }
func (m *material) Iridescence() float32              { return m.iridescence }
func (m *material) Sheen() float32                    { return m.sheen }
func (m *material) Transmission() float32             { return m.transmission }
func (m *material) Anisotropy() float32               { return m.anisotropy }
func (m *material) Dispersion() float32               { return m.dispersion }
func (m *material) NormalMapType() NormalMapType      { return m.normalMapType }
func (m *material) Combine() common.Combine           { return m.combine }
func (m *material) DepthPacking() common.DepthPacking { return m.depthPacking }
func (m *material) ClipCullDistance() bool            { return m.clipCullDistance }
func (m *material) MultiDraw() bool                   { return m.multiDraw }
func (m *material) Index0AttributeName() string       { return m.index0AttributeName }

func (m *material) CustomProgramCacheKey() string {
	if m.customCacheKey == nil {
		return ""
	}
	return m.customCacheKey()
}

func (m *material) SetMap(slot MapSlot, texture *Texture) {
	if slot < 0 || slot >= MapSlotCount {
		return
	}
	m.maps[slot] = texture
}

func (m *material) SetDefine(name, value string) {
	for i := range m.defines {
		if m.defines[i].Name == name {
			m.defines[i].Value = value
			return
		}
	}
	m.defines = append(m.defines, Define{Name: name, Value: value})
}

func (m *material) RemoveDefine(name string) {
	for i := range m.defines {
		if m.defines[i].Name == name {
			m.defines = append(m.defines[:i], m.defines[i+1:]...)
			return
		}
	}
}

func (m *material) SetPrecision(precision common.Precision) {
	m.precision = precision
}

func (m *material) SetToneMapped(toneMapped bool) {
	m.toneMapped = toneMapped
}

func (m *material) SetTransparent(transparent bool) {
	m.transparent = transparent
}

func (m *material) SetClearcoat(clearcoat float32) {
	m.clearcoat = clearcoat
}

func (m *material) SetTransmission(transmission float32) {
	m.transmission = transmission
}

func (m *material) OnDispose(fn func(Material)) {
	if fn == nil || m.disposed {
		return
	}
	m.disposeListeners = append(m.disposeListeners, fn)
}

func (m *material) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	listeners := m.disposeListeners
	m.disposeListeners = nil
	for _, fn := range listeners {
		fn(m)
	}
}

func (m *material) Disposed() bool {
	return m.disposed
}
