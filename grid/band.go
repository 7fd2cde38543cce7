// Package grid holds the in-memory raster model shared by the processing
// packages and the boundary they use to read and write rasters.
package grid

// Band is a row-major 2-D array of pixel values.
// Every storage type is held as float64, which represents all of them exactly.
type Band struct {
	Rows, Cols int
	Data       []float64
}

func NewBand(rows, cols int) Band {
	return Band{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}
}

// FromRows builds a band from a slice of equally long rows.
func FromRows(rows [][]float64) Band {
	if len(rows) == 0 {
		return Band{}
	}
	b := NewBand(len(rows), len(rows[0]))
	for r, row := range rows {
		copy(b.Data[r*b.Cols:(r+1)*b.Cols], row)
	}
	return b
}

func (b Band) At(r, c int) float64 {
	return b.Data[r*b.Cols+c]
}

func (b Band) Set(r, c int, v float64) {
	b.Data[r*b.Cols+c] = v
}

// Clone returns a band with its own copy of the data.
func (b Band) Clone() Band {
	d := make([]float64, len(b.Data))
	copy(d, b.Data)
	return Band{Rows: b.Rows, Cols: b.Cols, Data: d}
}

func (b Band) SameShape(o Band) bool {
	return b.Rows == o.Rows && b.Cols == o.Cols
}

// ToRows returns a [][]float64 view sharing the band's data.
func (b Band) ToRows() [][]float64 {
	rows := make([][]float64, b.Rows)
	for r := range rows {
		rows[r] = b.Data[r*b.Cols : (r+1)*b.Cols : (r+1)*b.Cols]
	}
	return rows
}

// CheckShape returns a *ShapeMismatchError naming band idx when got differs from want.
func CheckShape(idx int, got, want Band) error {
	if got.SameShape(want) {
		return nil
	}
	return &ShapeMismatchError{Band: idx, Rows: got.Rows, Cols: got.Cols, WantRows: want.Rows, WantCols: want.Cols}
}
