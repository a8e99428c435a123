package readers

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/notargets/gobem/grid"
)

const gmshTriangle = 2

// gmshNodesPerElement covers the low order types that can appear alongside a triangle surface
var gmshNodesPerElement = map[int]int{
	1:  2, // Line
	2:  3, // Triangle
	3:  4, // Quad
	8:  3, // Line3
	9:  6, // Triangle6
	15: 1, // Point
}

// ReadMeshFile reads a surface grid, the format is chosen by file extension
func ReadMeshFile(filename string) (*grid.Grid, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".msh":
		return ReadGmshFile(filename)
	default:
		return nil, fmt.Errorf("unsupported mesh format: %s", ext)
	}
}

func ReadGmshFile(filename string) (g *grid.Grid, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	if g, err = ReadGmsh(file); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return
}

// gmshSurface accumulates the triangles of a Gmsh 2.2 file before the grid is built
type gmshSurface struct {
	FormatVersion string
	nodeIndex     map[int]int // Gmsh node id to vertex index
	vertices      []float64
	elements      []uint32
	domains       []uint32
	skipped       int
}

/*
ReadGmsh reads an ASCII Gmsh 2.2 file and builds a grid from its triangles. Node ids may be arbitrary, vertices
are numbered in the order nodes appear. The first tag of each triangle, the physical group, becomes its domain
index. Other element types are skipped.
*/
func ReadGmsh(r io.Reader) (g *grid.Grid, err error) {
	var (
		surf = &gmshSurface{nodeIndex: make(map[int]int)}
	)
	scanner := bufio.NewScanner(r)
	const maxScanTokenSize = 1024 * 1024 * 10
	buf := make([]byte, maxScanTokenSize)
	scanner.Buffer(buf, maxScanTokenSize)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "$MeshFormat":
			if err = surf.readMeshFormat(scanner); err != nil {
				return
			}
		case "$Nodes":
			if err = surf.readNodes(scanner); err != nil {
				return
			}
		case "$Elements":
			if err = surf.readElements(scanner); err != nil {
				return
			}
		default:
			if strings.HasPrefix(line, "$") && !strings.HasPrefix(line, "$End") {
				if err = skipSection(scanner, "$End"+line[1:]); err != nil {
					return
				}
			}
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}
	if surf.FormatVersion == "" {
		return nil, fmt.Errorf("no $MeshFormat section found")
	}
	if len(surf.elements) == 0 {
		return nil, fmt.Errorf("no triangles found")
	}
	log.Debug("read gmsh surface", "version", surf.FormatVersion, "nodes", len(surf.vertices)/3,
		"triangles", len(surf.elements)/3, "skipped", surf.skipped)
	if g, err = grid.New(surf.vertices, surf.elements, surf.domains); err != nil {
		return nil, fmt.Errorf("building grid: %w", err)
	}
	return
}

func (surf *gmshSurface) readMeshFormat(scanner *bufio.Scanner) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in MeshFormat")
	}
	parts := strings.Fields(scanner.Text())
	if len(parts) < 3 {
		return fmt.Errorf("invalid MeshFormat line")
	}
	if !strings.HasPrefix(parts[0], "2") {
		return fmt.Errorf("unsupported Gmsh version: %s", parts[0])
	}
	if parts[1] != "0" {
		return fmt.Errorf("binary Gmsh files are not supported")
	}
	surf.FormatVersion = parts[0]
	return skipSection(scanner, "$EndMeshFormat")
}

func (surf *gmshSurface) readNodes(scanner *bufio.Scanner) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Nodes")
	}
	numNodes, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return fmt.Errorf("invalid number of nodes: %w", err)
	}
	for i := 0; i < numNodes; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF in Nodes at node %d", i)
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			return fmt.Errorf("invalid node entry at line %d", i+1)
		}
		nodeID, err := strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("invalid node ID: %w", err)
		}
		if _, dup := surf.nodeIndex[nodeID]; dup {
			return fmt.Errorf("duplicate node ID %d", nodeID)
		}
		surf.nodeIndex[nodeID] = len(surf.vertices) / 3
		for j := 0; j < 3; j++ {
			x, err := strconv.ParseFloat(fields[j+1], 64)
			if err != nil {
				return fmt.Errorf("invalid coordinate: %w", err)
			}
			surf.vertices = append(surf.vertices, x)
		}
	}
	return skipSection(scanner, "$EndNodes")
}

func (surf *gmshSurface) readElements(scanner *bufio.Scanner) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Elements")
	}
	numElems, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return fmt.Errorf("invalid number of elements: %w", err)
	}
	for i := 0; i < numElems; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF in Elements at element %d", i)
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			return fmt.Errorf("invalid element entry at line %d", i+1)
		}
		ints := make([]int, len(fields))
		for j, f := range fields {
			if ints[j], err = strconv.Atoi(f); err != nil {
				return fmt.Errorf("invalid integer %q in element entry %d: %w", f, i+1, err)
			}
		}
		var (
			gmshType = ints[1]
			numTags  = ints[2]
			startIdx = 3 + numTags
		)
		if numTags < 0 || startIdx > len(ints) {
			return fmt.Errorf("insufficient fields for tags in element entry %d", i+1)
		}
		if gmshType != gmshTriangle {
			nn, known := gmshNodesPerElement[gmshType]
			if known && len(ints)-startIdx != nn {
				return fmt.Errorf("element type %d expects %d nodes, got %d", gmshType, nn, len(ints)-startIdx)
			}
			surf.skipped++
			continue
		}
		if len(ints)-startIdx != 3 {
			return fmt.Errorf("triangle %d expects 3 nodes, got %d", ints[0], len(ints)-startIdx)
		}
		for _, nodeID := range ints[startIdx:] {
			v, ok := surf.nodeIndex[nodeID]
			if !ok {
				return fmt.Errorf("triangle %d references unknown node %d", ints[0], nodeID)
			}
			surf.elements = append(surf.elements, uint32(v))
		}
		var domain int
		if numTags > 0 {
			domain = ints[3]
		}
		if domain < 0 {
			return fmt.Errorf("triangle %d has negative physical tag %d", ints[0], domain)
		}
		surf.domains = append(surf.domains, uint32(domain))
	}
	return skipSection(scanner, "$EndElements")
}

func skipSection(scanner *bufio.Scanner, endTag string) error {
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == endTag {
			return nil
		}
	}
	return fmt.Errorf("unexpected EOF while looking for %s", endTag)
}

/*
WriteGmsh writes g as an ASCII Gmsh 2.2 file. Node and element ids are 1 based in index order, the domain
index is written as both the physical and the elementary tag.
*/
func WriteGmsh(w io.Writer, g *grid.Grid) (err error) {
	bw := bufio.NewWriter(w)
	ff := func(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }

	fmt.Fprintf(bw, "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n")
	fmt.Fprintf(bw, "$Nodes\n%d\n", g.NumberOfVertices())
	vs := g.Vertices()
	for v := 0; v < g.NumberOfVertices(); v++ {
		fmt.Fprintf(bw, "%d %s %s %s\n", v+1, ff(vs[3*v]), ff(vs[3*v+1]), ff(vs[3*v+2]))
	}
	fmt.Fprintf(bw, "$EndNodes\n")
	fmt.Fprintf(bw, "$Elements\n%d\n", g.NumberOfElements())
	dom := g.DomainIndices()
	for k := 0; k < g.NumberOfElements(); k++ {
		tri := g.ElementVertices(k)
		fmt.Fprintf(bw, "%d %d 2 %d %d %d %d %d\n", k+1, gmshTriangle, dom[k], dom[k],
			tri[0]+1, tri[1]+1, tri[2]+1)
	}
	fmt.Fprintf(bw, "$EndElements\n")
	return bw.Flush()
}

func WriteGmshFile(filename string, g *grid.Grid) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteGmsh(file, g)
}
