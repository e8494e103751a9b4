package plan

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// WritePlan serializes plan to filename in the format ReadPlan
// expects, the inverse operation needed to build small,
// internally-consistent plan fixtures without hand-counting
// edge_start_idx offsets (spec §9, supplemented per SPEC_FULL §C.4 —
// the source's own test-plan constructors are dead code under the
// real read_plan contract).
func WritePlan(filename string, plan *Plan) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("plan: creating %s: %w", filename, err)
	}
	defer file.Close()

	if err := writePlan(file, plan); err != nil {
		return fmt.Errorf("plan: writing %s: %w", filename, err)
	}
	return nil
}

func writePlan(w io.Writer, plan *Plan) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# motif plan")
	fmt.Fprintln(bw, plan.RootNodeID)
	fmt.Fprintln(bw, len(plan.Nodes))

	for _, n := range plan.Nodes {
		isQuery := 0
		if n.IsQuery {
			isQuery = 1
		}
		fmt.Fprintf(bw, "%d %d %d %d\n", n.EdgeStartIdx, n.NumEdges, n.SubgraphNumVertices, isQuery)
	}

	fmt.Fprintln(bw, len(plan.Edges))
	for _, e := range plan.Edges {
		fmt.Fprintf(bw, "%d %d %d\n", e.Src, e.Dst, len(e.Operations))
		for _, op := range e.Operations {
			isForward := 0
			if op.IsForward {
				isForward = 1
			}
			fmt.Fprintf(bw, "%d %d %d\n", op.SrcKey, op.DstKey, isForward)
		}
	}

	return bw.Flush()
}
