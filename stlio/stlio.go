// Package stlio is the ASCII/binary STL codec. It knows nothing about
// connectivity or repair, only how to turn bytes into a []facet.Facet and
// back: auto-detect the variant from the leading bytes, then decode field
// by field. Binary is an 80-byte header, a little-endian uint32 facet
// count, and 50 bytes per facet; built on encoding/binary and bufio.
package stlio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/admesh/admesh/facet"
)

const (
	headerSize  = 80
	numberSize  = 4
	facetSize   = 50
	minFileSize = headerSize + numberSize
)

// Mesh is what Decode returns: the parser's header label plus the raw
// facets, ready to hand to admesh.New.
type Mesh struct {
	Header string
	Facets []facet.Facet
}

// Decode auto-detects ASCII vs binary STL from the leading bytes (binary
// is 84 + 50*F bytes exactly; ASCII starts with "solid" and never matches
// that size) and dispatches accordingly.
func Decode(r io.Reader) (*Mesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("stlio: read: %w", err)
	}
	if isBinary(data) {
		return DecodeBinary(data)
	}
	return DecodeASCII(data)
}

// isBinary mirrors the C ADMesh detection heuristic: data shorter than a
// binary header plus facet count is never binary (it is handed to the ASCII
// parser); otherwise data that doesn't start with "solid" is binary, and if
// it does start with "solid" it is binary only when the declared facet
// count exactly accounts for the remaining file size (an ASCII file that
// happens to start with the word "solid" in its header line will not).
func isBinary(data []byte) bool {
	if len(data) < minFileSize {
		return false
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if !bytes.HasPrefix(bytes.ToLower(trimmed), []byte("solid")) {
		return true
	}
	count := binary.LittleEndian.Uint32(data[headerSize : headerSize+numberSize])
	return uint64(len(data)) == uint64(minFileSize)+uint64(count)*facetSize
}

// DecodeBinary parses the binary STL layout: an 80-byte header, a
// little-endian facet count, then 50 bytes per facet (3 normal floats, 9
// vertex floats, a 2-byte trailer), all little-endian IEEE-754.
func DecodeBinary(data []byte) (*Mesh, error) {
	if len(data) < minFileSize {
		return nil, fmt.Errorf("stlio: binary STL too short: %d bytes", len(data))
	}
	header := strings.TrimRight(string(data[:headerSize]), "\x00")
	count := binary.LittleEndian.Uint32(data[headerSize : headerSize+numberSize])

	want := uint64(minFileSize) + uint64(count)*facetSize
	if uint64(len(data)) != want {
		return nil, fmt.Errorf("stlio: binary STL size mismatch: file is %d bytes, header declares %d facets (want %d bytes)",
			len(data), count, want)
	}

	facets := make([]facet.Facet, count)
	offset := minFileSize
	for i := range facets {
		f := facet.Facet{
			Normal: facet.Vertex{
				readFloat32(data[offset:]),
				readFloat32(data[offset+4:]),
				readFloat32(data[offset+8:]),
			},
		}
		offset += 12
		for v := 0; v < 3; v++ {
			f.Vertices[v] = facet.Vertex{
				readFloat32(data[offset:]),
				readFloat32(data[offset+4:]),
				readFloat32(data[offset+8:]),
			}
			offset += 12
		}
		f.Extra = facet.Extra{data[offset], data[offset+1]}
		offset += 2
		facets[i] = f
	}

	return &Mesh{Header: header, Facets: facets}, nil
}

func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

// DecodeASCII parses the free-form, case-insensitive ASCII STL grammar:
// `solid <name>` { `facet normal nx ny nz` `outer loop`
// (`vertex x y z`)×3 `endloop` `endfacet` }* `endsolid`.
func DecodeASCII(data []byte) (*Mesh, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	mesh := &Mesh{}
	var current facet.Facet
	var vertexCount int
	inFacet, inLoop := false, false
	line := 0

	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch strings.ToLower(fields[0]) {
		case "solid":
			if len(fields) > 1 {
				mesh.Header = strings.Join(fields[1:], " ")
			}
		case "facet":
			if len(fields) < 5 || !strings.EqualFold(fields[1], "normal") {
				return nil, fmt.Errorf("stlio: line %d: expected 'facet normal nx ny nz'", line)
			}
			n, err := parseVertex(fields[2:5])
			if err != nil {
				return nil, fmt.Errorf("stlio: line %d: %w", line, err)
			}
			current = facet.Facet{Normal: n}
			inFacet, vertexCount = true, 0
		case "outer":
			if !inFacet {
				return nil, fmt.Errorf("stlio: line %d: 'outer loop' outside facet", line)
			}
			inLoop = true
		case "vertex":
			if !inFacet || !inLoop {
				return nil, fmt.Errorf("stlio: line %d: 'vertex' outside facet/loop", line)
			}
			if len(fields) < 4 {
				return nil, fmt.Errorf("stlio: line %d: expected 'vertex x y z'", line)
			}
			v, err := parseVertex(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("stlio: line %d: %w", line, err)
			}
			if vertexCount >= 3 {
				return nil, fmt.Errorf("stlio: line %d: facet has more than 3 vertices", line)
			}
			current.Vertices[vertexCount] = v
			vertexCount++
		case "endloop":
			inLoop = false
		case "endfacet":
			if vertexCount != 3 {
				return nil, fmt.Errorf("stlio: line %d: facet closed with %d vertices, want 3", line, vertexCount)
			}
			mesh.Facets = append(mesh.Facets, current)
			inFacet = false
		case "endsolid":
			// done
		default:
			// unrecognized tokens are ignored; ASCII STL in the wild
			// carries stray whitespace and comment-like lines
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("stlio: %w", err)
	}
	return mesh, nil
}

func parseVertex(fields []string) (facet.Vertex, error) {
	var v facet.Vertex
	for i, s := range fields {
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return v, fmt.Errorf("invalid float %q: %w", s, err)
		}
		v[i] = float32(f)
	}
	return v, nil
}

// EncodeBinary writes facets in the binary STL layout, little-endian, with
// header truncated/padded to 80 bytes and each facet's trailer bytes
// preserved verbatim.
func EncodeBinary(w io.Writer, facets []facet.Facet, header string) error {
	bw := bufio.NewWriter(w)

	var hdr [headerSize]byte
	copy(hdr[:], header)
	if _, err := bw.Write(hdr[:]); err != nil {
		return fmt.Errorf("stlio: write header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(facets))); err != nil {
		return fmt.Errorf("stlio: write facet count: %w", err)
	}

	var buf [4]byte
	putFloat := func(f float32) error {
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(f))
		_, err := bw.Write(buf[:])
		return err
	}

	for _, f := range facets {
		for _, c := range f.Normal {
			if err := putFloat(c); err != nil {
				return fmt.Errorf("stlio: write normal: %w", err)
			}
		}
		for _, v := range f.Vertices {
			for _, c := range v {
				if err := putFloat(c); err != nil {
					return fmt.Errorf("stlio: write vertex: %w", err)
				}
			}
		}
		if _, err := bw.Write(f.Extra[:]); err != nil {
			return fmt.Errorf("stlio: write trailer: %w", err)
		}
	}
	return bw.Flush()
}

// EncodeASCII writes facets in the ASCII STL grammar, with label used as
// the solid name on both the opening and closing lines.
func EncodeASCII(w io.Writer, facets []facet.Facet, label string) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "solid %s\n", label); err != nil {
		return err
	}
	for _, f := range facets {
		fmt.Fprintf(bw, "facet normal %s %s %s\n", fmtFloat(f.Normal[0]), fmtFloat(f.Normal[1]), fmtFloat(f.Normal[2]))
		fmt.Fprintln(bw, "outer loop")
		for _, v := range f.Vertices {
			fmt.Fprintf(bw, "vertex %s %s %s\n", fmtFloat(v[0]), fmtFloat(v[1]), fmtFloat(v[2]))
		}
		fmt.Fprintln(bw, "endloop")
		fmt.Fprintln(bw, "endfacet")
	}
	if _, err := fmt.Fprintf(bw, "endsolid %s\n", label); err != nil {
		return err
	}
	return bw.Flush()
}

func fmtFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', 6, 32)
}
