package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestCSVReader(t *testing.T) {
	path := writeTemp(t, "specimens.csv", "id,VL,LA\ns1,63,40\ns2,85.5,\n")

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	f, err := r.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if len(f.Columns) != 3 || f.Columns[1] != "VL" {
		t.Errorf("columns: got %v", f.Columns)
	}
	if len(f.Rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(f.Rows))
	}
	if f.Cell(0, 0) != "s1" {
		t.Errorf("cell (0,0): got %q", f.Cell(0, 0))
	}
	if v, ok := f.Float(1, 1); !ok || v != 85.5 {
		t.Errorf("Float(1,1): got %v, %v", v, ok)
	}
	if _, ok := f.Float(1, 2); ok {
		t.Error("Float on empty cell: want missing")
	}
}

func TestCSVReader_DelimiterDetection(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"semicolon", "id;VL;LA\ns1;63;40\n"},
		{"tab", "id\tVL\tLA\ns1\t63\t40\n"},
		{"comma", "id,VL,LA\ns1,63,40\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTemp(t, "in.csv", tc.content)
			r, _ := NewReader(path)
			f, err := r.Read()
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if len(f.Columns) != 3 {
				t.Errorf("columns: got %v", f.Columns)
			}
			if got := f.Cell(0, 1); got != "63" {
				t.Errorf("cell (0,1): got %q", got)
			}
		})
	}
}

func TestCSVReader_Errors(t *testing.T) {
	if r, _ := NewReader(writeTemp(t, "empty.csv", "")); r != nil {
		if _, err := r.Read(); err == nil {
			t.Error("empty file: want error")
		}
	}

	r, _ := NewReader(filepath.Join(t.TempDir(), "absent.csv"))
	if _, err := r.Read(); err == nil {
		t.Error("missing file: want error")
	}
}

func TestNewReader_UnsupportedFormat(t *testing.T) {
	if _, err := NewReader("specimens.ods"); err == nil {
		t.Error("want error for unsupported extension")
	}
}

func TestFrame_Col(t *testing.T) {
	f := &Frame{Columns: []string{"id", "VL"}}
	if i, ok := f.Col("VL"); !ok || i != 1 {
		t.Errorf("Col(VL): got %d, %v", i, ok)
	}
	if _, ok := f.Col("LM"); ok {
		t.Error("Col(LM): want missing")
	}
}

func TestFrame_Float(t *testing.T) {
	f := &Frame{
		Columns: []string{"v"},
		Rows:    [][]string{{"12.5"}, {"12,5"}, {" 7 "}, {"NA"}, {"-"}, {""}},
	}

	tests := []struct {
		row    int
		want   float64
		wantOK bool
	}{
		{0, 12.5, true},
		{1, 12.5, true}, // decimal comma
		{2, 7, true},
		{3, 0, false},
		{4, 0, false},
		{5, 0, false},
	}
	for _, tc := range tests {
		got, ok := f.Float(tc.row, 0)
		if ok != tc.wantOK || (ok && got != tc.want) {
			t.Errorf("Float(%d, 0) = %v, %v; want %v, %v", tc.row, got, ok, tc.want, tc.wantOK)
		}
	}

	// Ragged row / out-of-range access is missing, not a panic.
	if _, ok := f.Float(0, 5); ok {
		t.Error("out-of-range column: want missing")
	}
	if _, ok := f.Float(99, 0); ok {
		t.Error("out-of-range row: want missing")
	}
}
