package program

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-progcache/common"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/parameters"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/shader"
)

// sourceWindow is the number of lines shown on each side of the first reported error line.
const sourceWindow = 6

// errorLinePattern captures the line number of the first error in a driver info log.
var errorLinePattern = regexp.MustCompile(`ERROR: 0:(\d+)`)

// StageDiagnostics is the compiler output of one stage.
type StageDiagnostics struct {
	// Log is the trimmed driver info log.
	Log string

	// Prefix is the prelude that was prepended to the stage body.
	Prefix string

	// Window is a numbered excerpt of the stage source around the first reported error, "" if none was found.
	Window string
}

// Diagnostics describes a program whose link failed or whose logs were not empty.
type Diagnostics struct {
	ProgramID  int
	Name       string
	Runnable   bool
	ProgramLog string
	Vertex     StageDiagnostics
	Fragment   StageDiagnostics

	// ToneMapping and OutputColorSpace name the functions the fragment prelude defined.
	ToneMapping      string
	OutputColorSpace string
}

// String renders the diagnostics as a multi-line report.
func (d *Diagnostics) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "program %d (%s) runnable=%v\n", d.ProgramID, d.Name, d.Runnable)
	fmt.Fprintf(&sb, "tone mapping: %s, output color space: %s\n", d.ToneMapping, d.OutputColorSpace)
	if d.ProgramLog != "" {
		fmt.Fprintf(&sb, "program log: %s\n", d.ProgramLog)
	}
	writeStage := func(name string, s StageDiagnostics) {
		if s.Log == "" {
			return
		}
		fmt.Fprintf(&sb, "%s\n\n%s\n", name, s.Log)
		if s.Window != "" {
			fmt.Fprintf(&sb, "\n%s\n", s.Window)
		}
	}
	writeStage("VERTEX", d.Vertex)
	writeStage("FRAGMENT", d.Fragment)
	return sb.String()
}

// errorWindow returns the numbered lines of source around the first error line named by log. The reported
// line is marked with ">".
func errorWindow(source, log string) string {
	m := errorLinePattern.FindStringSubmatch(log)
	if m == nil {
		return ""
	}
	errorLine, err := strconv.Atoi(m[1])
	if err != nil {
		return ""
	}
	lines := strings.Split(source, "\n")
	if errorLine < 1 || errorLine > len(lines) {
		return ""
	}
	from := max(errorLine-sourceWindow, 0)
	to := min(errorLine+sourceWindow, len(lines))

	out := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		line := i + 1
		marker := " "
		if line == errorLine {
			marker = ">"
		}
		out = append(out, fmt.Sprintf("%s %d: %s", marker, line, lines[i]))
	}
	return strings.Join(out, "\n")
}

// newDiagnostics assembles the report of one program from its link status.
func newDiagnostics(id int, name string, p *parameters.Parameters, src shader.Sources, status backend.LinkStatus) *Diagnostics {
	d := &Diagnostics{
		ProgramID:  id,
		Name:       name,
		Runnable:   status.Linked,
		ProgramLog: status.ProgramLog,
		Vertex: StageDiagnostics{
			Log:    status.VertexLog,
			Prefix: src.VertexPrefix,
			Window: errorWindow(src.Vertex, status.VertexLog),
		},
		Fragment: StageDiagnostics{
			Log:    status.FragmentLog,
			Prefix: src.FragmentPrefix,
			Window: errorWindow(src.Fragment, status.FragmentLog),
		},
	}
	if p != nil {
		d.ToneMapping = "None"
		if p.ToneMapping != common.NoToneMapping {
			d.ToneMapping = shader.ToneMappingName(p.ToneMapping)
		}
		d.OutputColorSpace = string(p.OutputColorSpace)
	}
	return d
}
