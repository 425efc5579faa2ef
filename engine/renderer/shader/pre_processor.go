// pre_processor.go turns a parameter record into the two final stage sources. The stage bodies go through
// include resolution, count substitution and loop unrolling in that order. The prelude and dialect blocks
// are then prepended and the version pragma goes first.
package shader

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-progcache/common"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/parameters"
)

// Sources holds the final stage sources of one program along with the pieces they were assembled from.
type Sources struct {
	// Vertex is the complete vertex source handed to the driver.
	Vertex string

	// Fragment is the complete fragment source handed to the driver.
	Fragment string

	// Version is the version pragma line both stages start with, possibly "".
	Version string

	// VertexPrefix is everything prepended to the vertex body after the version line.
	VertexPrefix string

	// FragmentPrefix is everything prepended to the fragment body after the version line.
	FragmentPrefix string
}

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	dict Dictionary
}

// PreProcessor builds final stage sources from parameter records. It holds no per-call state and is safe
// for concurrent use.
type PreProcessor interface {
	// Process assembles both stage sources for p.
	//
	// Parameters:
	//   - p: the parameter record of the program
	//
	// Returns:
	//   - Sources: the final stage sources
	//   - error: an *UnresolvableIncludeError or include cycle error if a stage could not be expanded
	Process(p *parameters.Parameters) (Sources, error)

	// Dictionary returns the chunk dictionary includes resolve against.
	Dictionary() Dictionary
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor over dict. A nil dict selects DefaultDictionary.
//
// Parameters:
//   - dict: the chunk and template dictionary
//
// Returns:
//   - PreProcessor: a new PreProcessor instance
func NewPreProcessor(dict Dictionary) PreProcessor {
	if dict == nil {
		dict = DefaultDictionary()
	}
	return &preProcessor{dict: dict}
}

func (pp *preProcessor) Dictionary() Dictionary {
	return pp.dict
}

func (pp *preProcessor) Process(p *parameters.Parameters) (Sources, error) {
	var prefixVertex, prefixFragment string
	if p.IsRawShaderMaterial {
		prefixVertex = rawPrefix(p)
		prefixFragment = rawPrefix(p)
	} else {
		prefixVertex = vertexPrefix(p)
		prefixFragment = fragmentPrefix(pp.dict, p)
	}

	vertex, err := pp.body(StageVertex, p.VertexShader, p)
	if err != nil {
		return Sources{}, err
	}
	fragment, err := pp.body(StageFragment, p.FragmentShader, p)
	if err != nil {
		return Sources{}, err
	}

	version := versionLine(p.GLSLVersion)
	if !p.IsRawShaderMaterial {
		version = versionLine(common.GLSL3)
		prefixVertex = dialectVertex(p) + prefixVertex
		prefixFragment = dialectFragment(p) + prefixFragment
	}

	return Sources{
		Vertex:         version + prefixVertex + vertex,
		Fragment:       version + prefixFragment + fragment,
		Version:        version,
		VertexPrefix:   prefixVertex,
		FragmentPrefix: prefixFragment,
	}, nil
}

// body expands one stage body.
func (pp *preProcessor) body(stage Stage, source string, p *parameters.Parameters) (string, error) {
	out, err := ResolveIncludes(pp.dict, stage, source)
	if err != nil {
		return "", err
	}
	out = ReplaceLightNums(out, p)
	out = ReplaceClippingPlaneNums(out, p)
	return UnrollLoops(out), nil
}

// ResolveIncludes replaces every include directive with the named chunk, recursively, until none remain.
// Deprecated chunk names resolve to their replacement and log a warning once per name.
//
// Parameters:
//   - dict: the chunk dictionary
//   - stage: the stage the source belongs to, reported in errors
//   - source: the stage source
//
// Returns:
//   - string: the expanded source
//   - error: an *UnresolvableIncludeError for an unknown chunk, or an include cycle error
func ResolveIncludes(dict Dictionary, stage Stage, source string) (string, error) {
	return resolveIncludes(dict, stage, source, nil)
}

func resolveIncludes(dict Dictionary, stage Stage, source string, chain []string) (string, error) {
	matches := includePattern.FindAllStringSubmatchIndex(source, -1)
	if len(matches) == 0 {
		return source, nil
	}

	var sb strings.Builder
	sb.Grow(len(source))
	last := 0
	for _, m := range matches {
		sb.WriteString(source[last:m[0]])
		name := source[m[2]:m[3]]
		if slices.Contains(chain, name) {
			return "", fmt.Errorf("%w: %s -> %s", ErrIncludeCycle, strings.Join(chain, " -> "), name)
		}
		chunk, err := lookupChunk(dict, stage, name)
		if err != nil {
			return "", err
		}
		expanded, err := resolveIncludes(dict, stage, chunk, append(chain[:len(chain):len(chain)], name))
		if err != nil {
			return "", err
		}
		sb.WriteString(expanded)
		last = m[1]
	}
	sb.WriteString(source[last:])
	return sb.String(), nil
}

func lookupChunk(dict Dictionary, stage Stage, name string) (string, error) {
	if chunk, ok := dict.Chunk(name); ok {
		return chunk, nil
	}
	if current, ok := deprecatedChunks[name]; ok {
		if chunk, ok := dict.Chunk(current); ok {
			common.WarnOnce("include:"+name, "shader chunk has been renamed", "chunk", name, "replacement", current)
			return chunk, nil
		}
	}
	return "", &UnresolvableIncludeError{Name: name, Stage: stage}
}

// ReplaceLightNums substitutes every light count token with the matching count of p.
//
// Parameters:
//   - source: the stage source
//   - p: the parameter record
//
// Returns:
//   - string: the source with light counts substituted
func ReplaceLightNums(source string, p *parameters.Parameters) string {
	return replaceCounts(source, lightTokens, map[string]int{
		TokenDirLights:               p.NumDirLights,
		TokenSpotLights:              p.NumSpotLights,
		TokenSpotLightMaps:           p.NumSpotLightMaps,
		TokenSpotLightCoords:         p.NumSpotLightCoords(),
		TokenRectAreaLights:          p.NumRectAreaLights,
		TokenPointLights:             p.NumPointLights,
		TokenHemiLights:              p.NumHemiLights,
		TokenDirLightShadows:         p.NumDirLightShadows,
		TokenSpotLightShadowsWithMap: p.NumSpotLightShadowsWithMaps,
		TokenSpotLightShadows:        p.NumSpotLightShadows,
		TokenPointLightShadows:       p.NumPointLightShadows,
	})
}

// ReplaceClippingPlaneNums substitutes the clipping plane tokens. The union count is the number of planes
// that are not part of the intersection set.
//
// Parameters:
//   - source: the stage source
//   - p: the parameter record
//
// Returns:
//   - string: the source with clipping counts substituted
func ReplaceClippingPlaneNums(source string, p *parameters.Parameters) string {
	return replaceCounts(source, clippingTokens, map[string]int{
		TokenClippingPlanes:      p.NumClippingPlanes,
		TokenUnionClippingPlanes: p.NumClippingPlanes - p.NumClipIntersection,
	})
}

// UnrollLoops expands every well-formed unrolled loop block into one copy of its body per iteration.
// Nested blocks unroll innermost first. Blocks that do not match the loop pattern are left untouched.
//
// Parameters:
//   - source: the stage source with literal loop bounds
//
// Returns:
//   - string: the source without well-formed unroll blocks
func UnrollLoops(source string) string {
	cursor := 0
	for {
		endRel := strings.Index(source[cursor:], unrollEnd)
		if endRel < 0 {
			return source
		}
		endAt := cursor + endRel
		blockEnd := endAt + len(unrollEnd)

		startRel := strings.LastIndex(source[cursor:endAt], unrollStart)
		if startRel < 0 {
			cursor = blockEnd
			continue
		}
		blockStart := cursor + startRel

		expanded, ok := unrollBlock(source[blockStart:blockEnd])
		if !ok {
			cursor = blockEnd
			continue
		}
		source = source[:blockStart] + expanded + source[blockEnd:]
		cursor = 0
	}
}

// unrollBlock expands a single block that spans exactly from the start to the end pragma.
func unrollBlock(block string) (string, bool) {
	m := unrollPattern.FindStringSubmatchIndex(block)
	if m == nil || m[0] != 0 || m[1] != len(block) {
		return "", false
	}
	start, err := strconv.Atoi(block[m[2]:m[3]])
	if err != nil {
		return "", false
	}
	end, err := strconv.Atoi(block[m[4]:m[5]])
	if err != nil {
		return "", false
	}
	body := block[m[6]:m[7]]

	var sb strings.Builder
	for i := start; i < end; i++ {
		n := strconv.Itoa(i)
		snippet := loopIndexPattern.ReplaceAllLiteralString(body, "[ "+n+" ]")
		snippet = loopIndexToken.ReplaceAllLiteralString(snippet, n)
		sb.WriteString(snippet)
	}
	return sb.String(), true
}
