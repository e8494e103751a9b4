package plan

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/motifjoin/core"
)

// planScanner wraps a bufio.Scanner with a line counter, so
// ReadPlan's errors can report where a malformed record was found.
type planScanner struct {
	scanner *bufio.Scanner
	line    int
}

func newPlanScanner(r io.Reader) *planScanner {
	return &planScanner{scanner: bufio.NewScanner(r)}
}

func (s *planScanner) next() (string, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("%w: expected a record at line %d", ErrTruncatedPlan, s.line+1)
	}
	s.line++
	return s.scanner.Text(), nil
}

func (s *planScanner) fields() ([]string, error) {
	line, err := s.next()
	if err != nil {
		return nil, err
	}
	return strings.Fields(line), nil
}

func parseInt(fields []string, idx int) (int, error) {
	if idx >= len(fields) {
		return 0, fmt.Errorf("%w: expected field %d", ErrMalformedRecord, idx)
	}
	v, err := strconv.Atoi(fields[idx])
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	return v, nil
}

func parseBool(fields []string, idx int) (bool, error) {
	v, err := parseInt(fields, idx)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// ReadPlan parses a plan file (spec §6): an ignored header line, the
// root node id, the node table, then the edge table with each edge's
// operation list inline. Any I/O or format error is fatal per spec
// §7; the returned error already names filename.
func ReadPlan(filename string) (*Plan, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("plan: opening %s: %w", filename, err)
	}
	defer file.Close()

	plan, err := readPlan(file)
	if err != nil {
		return nil, fmt.Errorf("plan: reading %s: %w", filename, err)
	}
	return plan, nil
}

func readPlan(r io.Reader) (*Plan, error) {
	s := newPlanScanner(r)

	if _, err := s.next(); err != nil { // ignored header line
		return nil, err
	}

	rootFields, err := s.fields()
	if err != nil {
		return nil, err
	}
	rootNodeID, err := parseInt(rootFields, 0)
	if err != nil {
		return nil, err
	}

	numNodesFields, err := s.fields()
	if err != nil {
		return nil, err
	}
	numNodes, err := parseInt(numNodesFields, 0)
	if err != nil {
		return nil, err
	}

	nodes := make([]PlanNode, numNodes)
	for i := 0; i < numNodes; i++ {
		fields, err := s.fields()
		if err != nil {
			return nil, err
		}
		edgeStartIdx, err := parseInt(fields, 0)
		if err != nil {
			return nil, err
		}
		numEdges, err := parseInt(fields, 1)
		if err != nil {
			return nil, err
		}
		subgraphNumVertices, err := parseInt(fields, 2)
		if err != nil {
			return nil, err
		}
		isQuery, err := parseBool(fields, 3)
		if err != nil {
			return nil, err
		}
		nodes[i] = PlanNode{
			EdgeStartIdx:        edgeStartIdx,
			NumEdges:            numEdges,
			SubgraphNumVertices: subgraphNumVertices,
			IsQuery:             isQuery,
		}
	}

	numEdgesFields, err := s.fields()
	if err != nil {
		return nil, err
	}
	numEdgesTotal, err := parseInt(numEdgesFields, 0)
	if err != nil {
		return nil, err
	}

	edges := make([]PlanEdge, numEdgesTotal)
	for i := 0; i < numEdgesTotal; i++ {
		fields, err := s.fields()
		if err != nil {
			return nil, err
		}
		src, err := parseInt(fields, 0)
		if err != nil {
			return nil, err
		}
		dst, err := parseInt(fields, 1)
		if err != nil {
			return nil, err
		}
		numOperations, err := parseInt(fields, 2)
		if err != nil {
			return nil, err
		}
		if src < 0 || src >= numNodes || dst < 0 || dst >= numNodes {
			return nil, fmt.Errorf("%w: edge %d references (%d,%d) of %d nodes", ErrNodeIndexOutOfRange, i, src, dst, numNodes)
		}

		operations := make([]PlanOperation, numOperations)
		for j := 0; j < numOperations; j++ {
			opFields, err := s.fields()
			if err != nil {
				return nil, err
			}
			srcKey, err := parseInt(opFields, 0)
			if err != nil {
				return nil, err
			}
			dstKey, err := parseInt(opFields, 1)
			if err != nil {
				return nil, err
			}
			isForward, err := parseBool(opFields, 2)
			if err != nil {
				return nil, err
			}
			operations[j] = PlanOperation{SrcKey: srcKey, DstKey: dstKey, IsForward: isForward}
		}

		edges[i] = PlanEdge{Src: src, Dst: dst, Operations: operations}
	}

	if rootNodeID < 0 || rootNodeID >= numNodes {
		return nil, fmt.Errorf("%w: root node %d of %d nodes", ErrNodeIndexOutOfRange, rootNodeID, numNodes)
	}
	if nodes[rootNodeID].SubgraphNumVertices < 2 {
		return nil, fmt.Errorf("%w: root node %d has SubgraphNumVertices %d, want at least 2",
			core.ErrEmptyPrefix, rootNodeID, nodes[rootNodeID].SubgraphNumVertices)
	}

	plan := &Plan{Nodes: nodes, Edges: edges, RootNodeID: rootNodeID}
	plan.Initialize()
	return plan, nil
}
