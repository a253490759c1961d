// Package fileformats implements the OBJ interop format consumed and
// produced by the root package's Mesh type — the only external file
// format in scope for this module (see spec's interop section).
//
// It mirrors the shape of the teacher's own fileformats package
// (referenced, but not included in the retrieval pack, by
// model3d/export.go for STL/PLY): a small, dependency-light reader/
// writer pair using github.com/pkg/errors for wrapped failures.
package fileformats

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ObjMesh is the minimal in-memory form of a parsed OBJ file: a flat
// vertex array and triangle index triples, both 0-based despite OBJ's
// 1-based on-disk indexing.
type ObjMesh struct {
	Vertices [][3]float32
	Faces    [][3]int32
}

// ParseError reports a malformed OBJ line, including the offending raw
// text.
type ParseError struct {
	Line string
	msg  string
}

func (e *ParseError) Error() string {
	return e.msg + ": " + strconv.Quote(e.Line)
}

// UnsupportedError reports an OBJ construct this reader does not
// handle, e.g. a non-triangular face.
type UnsupportedError struct {
	Line string
	msg  string
}

func (e *UnsupportedError) Error() string {
	return e.msg + ": " + strconv.Quote(e.Line)
}

// ReadOBJ parses an OBJ file from r.
//
// Recognized records: "v x y z [w]" (w ignored) and "f a b c" (triangles
// only; "f" with a token count other than 3 fails with an
// UnsupportedError). Face tokens may be "v", "v/vt", "v//vn", or
// "v/vt/vn" — only the first field is used. Indices are 1-based;
// negative indices are relative to the current vertex count (-1 = the
// most recently read vertex); index 0 is a ParseError. Lines are
// trimmed of surrounding whitespace and inline "#" comments. Unknown
// record types are ignored.
func ReadOBJ(r io.Reader) (*ObjMesh, error) {
	mesh := &ObjMesh{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		rawLine := scanner.Text()
		line := stripComment(rawLine)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseVertex(fields[1:], rawLine)
			if err != nil {
				return nil, err
			}
			mesh.Vertices = append(mesh.Vertices, v)
		case "f":
			if len(fields[1:]) != 3 {
				return nil, &UnsupportedError{Line: rawLine, msg: "only triangular faces are supported"}
			}
			tri, err := parseFace(fields[1:], len(mesh.Vertices), rawLine)
			if err != nil {
				return nil, err
			}
			mesh.Faces = append(mesh.Faces, tri)
		default:
			// Unknown record types (vt, vn, g, usemtl, ...) are ignored.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read OBJ")
	}
	return mesh, nil
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

func parseVertex(fields []string, rawLine string) ([3]float32, error) {
	if len(fields) < 3 {
		return [3]float32{}, &ParseError{Line: rawLine, msg: "vertex needs at least 3 coordinates"}
	}
	var v [3]float32
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return [3]float32{}, &ParseError{Line: rawLine, msg: "non-numeric vertex coordinate"}
		}
		v[i] = float32(f)
	}
	return v, nil
}

func parseFace(fields []string, vertCount int, rawLine string) ([3]int32, error) {
	var tri [3]int32
	for i, tok := range fields {
		first := strings.SplitN(tok, "/", 2)[0]
		n, err := strconv.Atoi(first)
		if err != nil {
			return [3]int32{}, &ParseError{Line: rawLine, msg: "non-numeric face index"}
		}
		if n == 0 {
			return [3]int32{}, &ParseError{Line: rawLine, msg: "face index 0 is invalid"}
		}
		var idx int
		if n > 0 {
			idx = n - 1
		} else {
			idx = vertCount + n
		}
		if idx < 0 {
			return [3]int32{}, &ParseError{Line: rawLine, msg: "face index out of range"}
		}
		tri[i] = int32(idx)
	}
	return tri, nil
}

// WriteOBJ writes mesh in OBJ format to w: UTF-8, no BOM, LF line
// endings, invariant ("." decimal point) numeric formatting, one
// "v x y z" per vertex followed by one "f a b c" per face, both
// 1-based.
func WriteOBJ(w io.Writer, mesh *ObjMesh) error {
	bw := bufio.NewWriter(w)
	for _, v := range mesh.Vertices {
		if _, err := bw.WriteString("v " +
			formatFloat(v[0]) + " " +
			formatFloat(v[1]) + " " +
			formatFloat(v[2]) + "\n"); err != nil {
			return errors.Wrap(err, "write OBJ")
		}
	}
	for _, f := range mesh.Faces {
		if _, err := bw.WriteString("f " +
			strconv.Itoa(int(f[0])+1) + " " +
			strconv.Itoa(int(f[1])+1) + " " +
			strconv.Itoa(int(f[2])+1) + "\n"); err != nil {
			return errors.Wrap(err, "write OBJ")
		}
	}
	return errors.Wrap(bw.Flush(), "write OBJ")
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
