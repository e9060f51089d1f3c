// Package cellfile reads and writes the per-image labels file.
//
// The file starts with an "offset,<x>,<y>" header followed by one
// "<row>,<column>,<LABEL>" line for every grid cell in row-major order.
package cellfile

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/example/celltagger/internal/geom"
	"github.com/example/celltagger/internal/label"
)

// Suffix replaces the image extension to form the labels file name.
const Suffix = ".cells.txt"

var (
	cellLine   = regexp.MustCompile(`^(\d+),(\d+),(\w+)`)
	offsetLine = regexp.MustCompile(`^offset,(-?\d+),(-?\d+)`)
)

// Document is the persisted part of a labelling session.
type Document struct {
	Offset image.Point
	Labels label.Map
}

// PathFor returns the labels file that belongs to the image at path.
func PathFor(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + Suffix
}

// Encode writes doc densely over a cols × rows grid.
func Encode(w io.Writer, doc Document, cols, rows int) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "offset,%d,%d\n", doc.Offset.X, doc.Offset.Y)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			l := doc.Labels.Get(geom.Cell{Col: col, Row: row})
			fmt.Fprintf(bw, "%d,%d,%s\n", row, col, l)
		}
	}
	return bw.Flush()
}

// Decode reads a labels file. Lines that are neither a cell nor the offset
// header are skipped. A cell line naming an unknown label fails with an error
// wrapping label.ErrUnknown.
func Decode(r io.Reader, def label.Label) (Document, error) {
	var doc Document
	set := map[geom.Cell]label.Label{}
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if m := offsetLine.FindStringSubmatch(line); m != nil {
			x, errX := strconv.Atoi(m[1])
			y, errY := strconv.Atoi(m[2])
			if errX == nil && errY == nil {
				doc.Offset = image.Pt(x, y)
			}
			continue
		}
		m := cellLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		row, errR := strconv.Atoi(m[1])
		col, errC := strconv.Atoi(m[2])
		if errR != nil || errC != nil {
			continue
		}
		l, err := label.Lookup(m[3])
		if err != nil {
			return Document{}, fmt.Errorf("line %d: %w", n, err)
		}
		set[geom.Cell{Col: col, Row: row}] = l
	}
	if err := scanner.Err(); err != nil {
		return Document{}, fmt.Errorf("read labels: %w", err)
	}
	doc.Labels = label.FromCells(def, set)
	return doc, nil
}

// Load decodes the labels file at path.
func Load(path string, def label.Label) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer f.Close()
	doc, err := Decode(f, def)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Save writes doc to path. The content goes to a temporary file in the same
// directory first and replaces path only once fully written.
func Save(path string, doc Document, cols, rows int) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	name := tmp.Name()
	if err := Encode(tmp, doc, cols, rows); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Chmod(name, 0o644); err != nil {
		os.Remove(name)
		return fmt.Errorf("chmod %s: %w", name, err)
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}

// Text renders doc as it would be saved.
func Text(doc Document, cols, rows int) string {
	var sb strings.Builder
	_ = Encode(&sb, doc, cols, rows)
	return sb.String()
}
