// SPDX-License-Identifier: EPL-2.0

package cliptable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ik5/aedset/errdefs"
)

func readHeader(r *csv.Reader, required ...string) (map[string]int, error) {
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errdefs.Configf("csv has no header row")
		}
		return nil, fmt.Errorf("%w: reading csv header: %w", errdefs.ErrInput, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, ok := cols[h]; !ok {
			cols[h] = i
		}
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, errdefs.Configf("csv is missing required column %q", name)
		}
	}
	return cols, nil
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	return cr
}

func field(rec []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ReadESC parses an ESC style CSV: filename and category are required,
// fold is optional and extra columns are ignored.
func ReadESC(r io.Reader) (*Table, error) {
	cr := newReader(r)
	cols, err := readHeader(cr, "filename", "category")
	if err != nil {
		return nil, err
	}

	var flags Columns
	if _, ok := cols["fold"]; ok {
		flags |= ColFold
	}
	b := NewBuilder(flags)

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: csv line %d: %w", errdefs.ErrInput, line, err)
		}

		row := Row{Filename: field(rec, cols, "filename"), Category: field(rec, cols, "category")}
		if row.Filename == "" {
			return nil, errdefs.Inputf("csv line %d: empty filename", line)
		}
		if flags&ColFold != 0 {
			if s := field(rec, cols, "fold"); s != "" {
				if row.Fold, err = strconv.Atoi(s); err != nil {
					return nil, errdefs.Inputf("csv line %d: bad fold %q", line, s)
				}
			}
		}
		b.Add(row)
	}

	return b.Build(), nil
}

// ReadFSD50K parses an FSD50K ground truth CSV. The fname column becomes
// the filename; labels and mids are comma separated lists. Category is
// left empty until a monolabel projection assigns one.
func ReadFSD50K(r io.Reader) (*Table, error) {
	cr := newReader(r)
	cols, err := readHeader(cr, "fname", "labels", "mids")
	if err != nil {
		return nil, err
	}

	b := NewBuilder(ColLabels)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: csv line %d: %w", errdefs.ErrInput, line, err)
		}

		name := field(rec, cols, "fname")
		if _, err := strconv.Atoi(name); err != nil {
			return nil, errdefs.Inputf("csv line %d: fname %q is not an integer", line, name)
		}

		labels := splitList(field(rec, cols, "labels"))
		mids := splitList(field(rec, cols, "mids"))
		if len(labels) != len(mids) {
			return nil, errdefs.Inputf("csv line %d: %d labels but %d mids", line, len(labels), len(mids))
		}
		b.Add(Row{Filename: name, Labels: labels, MIDs: mids})
	}

	return b.Build(), nil
}

func load(path string, read func(io.Reader) (*Table, error)) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errdefs.Input(path, err)
	}
	defer f.Close()

	t, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// LoadESC reads an ESC style CSV file.
func LoadESC(path string) (*Table, error) { return load(path, ReadESC) }

// LoadFSD50K reads an FSD50K ground truth CSV file.
func LoadFSD50K(path string) (*Table, error) { return load(path, ReadFSD50K) }

// WriteESC writes filename, category and, when present, fold.
func WriteESC(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)

	header := []string{"filename", "category"}
	if t.Has(ColFold) {
		header = append(header, "fold")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range t.Len() {
		rec := []string{t.Filename(i), t.Category(i)}
		if t.Has(ColFold) {
			rec = append(rec, strconv.Itoa(t.fold[i]))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFSD50K writes fname, labels and mids in the ground truth layout.
func WriteFSD50K(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"fname", "labels", "mids"}); err != nil {
		return err
	}
	for i := range t.Len() {
		var labels, mids []string
		if t.Has(ColLabels) {
			labels, mids = t.labels[i], t.mids[i]
		}
		rec := []string{t.Filename(i), strings.Join(labels, ","), strings.Join(mids, ",")}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveFile writes t to path with write, which is WriteESC or WriteFSD50K.
func SaveFile(path string, t *Table, write func(io.Writer, *Table) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, t); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
