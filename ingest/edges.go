package ingest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/motifjoin/core"
)

func parseEdgeLine(line string) (core.Edge, bool, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return core.Edge{}, false, nil
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return core.Edge{}, false, fmt.Errorf("%w: expected \"src dst\", got %q", ErrMalformedRecord, line)
	}
	src, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return core.Edge{}, false, fmt.Errorf("%w: malformed src: %v", ErrMalformedRecord, err)
	}
	dst, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return core.Edge{}, false, fmt.Errorf("%w: malformed dst: %v", ErrMalformedRecord, err)
	}
	return core.Edge{Src: core.Node(src), Dst: core.Node(dst)}, true, nil
}

// EdgeReader streams edges from a single edge-list file (spec §6):
// whitespace-separated "src dst" records, comment lines starting with
// '#' and blank lines skipped.
type EdgeReader struct {
	file    *os.File
	scanner *bufio.Scanner
}

// NewEdgeReader opens filename for streaming via ReadEdges. The
// caller must call Close when done.
func NewEdgeReader(filename string) (*EdgeReader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("ingest: opening %s: %w", filename, err)
	}
	return &EdgeReader{file: file, scanner: bufio.NewScanner(file)}, nil
}

// ReadEdges returns up to num edges read from the underlying file,
// skipping comment and blank lines; it returns fewer than num (down
// to zero) once the file is exhausted.
func (r *EdgeReader) ReadEdges(num int) ([]core.Edge, error) {
	edges := make([]core.Edge, 0, num)
	for len(edges) < num && r.scanner.Scan() {
		edge, ok, err := parseEdgeLine(r.scanner.Text())
		if err != nil {
			return nil, err
		}
		if ok {
			edges = append(edges, edge)
		}
	}
	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("ingest: reading %s: %w", r.file.Name(), err)
	}
	return edges, nil
}

// Close releases the underlying file handle.
func (r *EdgeReader) Close() error { return r.file.Close() }

// DirEdgeReader concatenates the lexicographically sorted files of a
// directory into a single edge stream, advancing to the next file
// transparently at each file's EOF. Grounded on
// original_source/src/wings_plan/dir_reader.rs's DirReader.
type DirEdgeReader struct {
	paths   []string
	next    int
	file    *os.File
	scanner *bufio.Scanner
}

// NewDirEdgeReader opens dirname's first shard file, ready to stream
// via ReadEdges. The caller must call Close when done.
func NewDirEdgeReader(dirname string) (*DirEdgeReader, error) {
	entries, err := os.ReadDir(dirname)
	if err != nil {
		return nil, fmt.Errorf("ingest: reading directory %s: %w", dirname, err)
	}
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(dirname, e.Name()))
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDirectory, dirname)
	}

	r := &DirEdgeReader{paths: paths}
	if err := r.openNext(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *DirEdgeReader) openNext() error {
	if r.file != nil {
		r.file.Close()
	}
	if r.next >= len(r.paths) {
		r.file, r.scanner = nil, nil
		return io.EOF
	}
	path := r.paths[r.next]
	r.next++
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("ingest: opening %s: %w", path, err)
	}
	r.file = file
	r.scanner = bufio.NewScanner(file)
	return nil
}

// ReadEdges returns up to num edges, transparently rolling over to
// the directory's next shard file as each is exhausted; it returns
// fewer than num once every shard file is exhausted.
func (r *DirEdgeReader) ReadEdges(num int) ([]core.Edge, error) {
	edges := make([]core.Edge, 0, num)
	for len(edges) < num {
		if r.scanner == nil {
			break
		}
		if !r.scanner.Scan() {
			if err := r.scanner.Err(); err != nil {
				return nil, fmt.Errorf("ingest: reading %s: %w", r.file.Name(), err)
			}
			if err := r.openNext(); err != nil {
				break
			}
			continue
		}
		edge, ok, err := parseEdgeLine(r.scanner.Text())
		if err != nil {
			return nil, err
		}
		if ok {
			edges = append(edges, edge)
		}
	}
	return edges, nil
}

// Close releases the currently open shard file, if any.
func (r *DirEdgeReader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// BuildIndexGroups transposes a flat edge list into the per-key
// adjacency groups index.Index.Initialize expects: forward groups
// are keyed by src, reverse groups by dst. numVertices sizes both
// slices so every vertex id in [0, numVertices) has a (possibly
// empty) entry, since Initialize takes each group's position as its
// key.
func BuildIndexGroups(edges []core.Edge, numVertices int) (forward, reverse [][]core.Node) {
	forward = make([][]core.Node, numVertices)
	reverse = make([][]core.Node, numVertices)
	for _, e := range edges {
		forward[e.Src] = append(forward[e.Src], e.Dst)
		reverse[e.Dst] = append(reverse[e.Dst], e.Src)
	}
	for i := range forward {
		sort.Slice(forward[i], func(a, b int) bool { return forward[i][a] < forward[i][b] })
	}
	for i := range reverse {
		sort.Slice(reverse[i], func(a, b int) bool { return reverse[i][a] < reverse[i][b] })
	}
	return forward, reverse
}
