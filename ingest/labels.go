package ingest

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/motifjoin/core"
	"github.com/katalvlaran/motifjoin/plan"
)

// EdgeLabel is one record of an edge-label file (spec §6): an edge
// annotated with the label on its middle field.
type EdgeLabel struct {
	Src   core.Node
	Label uint32
	Dst   core.Node
}

// ReadEdgeLabels parses an edge-label file: "src label dst" per
// line, three whitespace-separated u32 fields.
func ReadEdgeLabels(filename string) ([]EdgeLabel, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("ingest: opening %s: %w", filename, err)
	}
	defer file.Close()

	var labels []EdgeLabel
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("%w: expected \"src label dst\", got %q", ErrMalformedRecord, line)
		}
		src, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed src: %v", ErrMalformedRecord, err)
		}
		label, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed label: %v", ErrMalformedRecord, err)
		}
		dst, err := strconv.ParseUint(fields[2], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed dst: %v", ErrMalformedRecord, err)
		}
		labels = append(labels, EdgeLabel{Src: core.Node(src), Label: uint32(label), Dst: core.Node(dst)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ingest: reading %s: %w", filename, err)
	}
	return labels, nil
}

// BuildEdgeLabels converts ReadEdgeLabels's flat record list into the
// plan.LabelMapping.Edge shape the executor's label-constraint check
// reads directly.
func BuildEdgeLabels(entries []EdgeLabel) plan.EdgeLabels {
	out := make(plan.EdgeLabels, len(entries))
	for _, e := range entries {
		out[core.Edge{Src: e.Src, Dst: e.Dst}] = e.Label
	}
	return out
}

// ReadVertexLabels parses a vertex-label file ("vertex_id label" per
// line) directly into a plan.LabelMapping, ready to hand to
// plan.NewCounter. Grounded on
// original_source/src/wings_plan/dir_reader.rs's read_vertex_labels.
func ReadVertexLabels(filename string) (*plan.LabelMapping, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("ingest: opening %s: %w", filename, err)
	}
	defer file.Close()

	vertex := make(plan.VertexLabels)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: expected \"vertex_id label\", got %q", ErrMalformedRecord, line)
		}
		vertexID, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed vertex_id: %v", ErrMalformedRecord, err)
		}
		label, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed label: %v", ErrMalformedRecord, err)
		}
		vertex[core.Node(vertexID)] = uint32(label)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ingest: reading %s: %w", filename, err)
	}
	return &plan.LabelMapping{Vertex: vertex}, nil
}
