package provenance

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/wgdzlh/rastool/grid"
)

func TestText(t *testing.T) {
	r := Record{
		Tool:        "replace",
		Args:        []string{"rastool", "replace", "in.tif", "out.tif"},
		Output:      "out.tif",
		Description: "mask water",
	}.ExtentOf(grid.Meta{Rows: 2, Cols: 2, GeoTransform: [6]float64{10, 1, 0, 20, 0, -1}})

	got := r.text(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), "id-1", "/work", "abc123")
	for _, want := range []string{
		"RUN ID: id-1\n",
		"DATE: 2024-03-01T08:00:00Z\n",
		"COMMAND: rastool replace in.tif out.tif\n",
		"REVISION: abc123\n",
		"EXTENT: 10 18 12 20\n",
		"DESCRIPTION: mask water\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestTextOmitsEmptyFields(t *testing.T) {
	got := Record{Tool: "difference"}.text(time.Now(), "id", "/", "unknown")
	if strings.Contains(got, "DESCRIPTION") || strings.Contains(got, "EXTENT") {
		t.Fatalf("unexpected optional fields:\n%s", got)
	}
}

func TestWrite(t *testing.T) {
	out := filepath.Join(t.TempDir(), "stack.bsq")
	path, err := Write(Record{Tool: "difference", Output: out})
	if err != nil {
		t.Fatal(err)
	}
	if path != strings.TrimSuffix(out, ".bsq")+FileSuffix {
		t.Fatalf("path = %q", path)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "TOOL: difference") {
		t.Fatalf("unexpected body:\n%s", body)
	}
}
