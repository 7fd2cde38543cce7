package grid

import (
	"github.com/paulmach/orb"
	"go.uber.org/multierr"
)

// Meta describes what all bands of one raster share.
type Meta struct {
	Rows, Cols   int
	GeoTransform [6]float64
	Projection   string
	Driver       string
	PixelType    PixelType
	NoData       float64
	HasNoData    bool
}

// Pixel maps a pixel/line position to world coordinates.
func (m Meta) Pixel(px, py float64) orb.Point {
	gt := m.GeoTransform
	return orb.Point{
		gt[0] + px*gt[1] + py*gt[2],
		gt[3] + px*gt[4] + py*gt[5],
	}
}

// Bound is the world extent covered by the raster.
func (m Meta) Bound() orb.Bound {
	c, r := float64(m.Cols), float64(m.Rows)
	return orb.MultiPoint{
		m.Pixel(0, 0),
		m.Pixel(c, 0),
		m.Pixel(0, r),
		m.Pixel(c, r),
	}.Bound()
}

// Raster is a read handle on a multi-band raster. Band indices start at 1.
type Raster interface {
	BandCount() int
	ReadBand(i int) (Band, error)
	Meta() Meta
	Close() error
}

// Storage opens and writes rasters for the processing packages.
type Storage interface {
	Open(path string) (Raster, error)
	// WriteMultiband writes all bands at once; on failure nothing is left at path.
	WriteMultiband(path string, bands []Band, meta Meta) error
}

func CloseAll(rs ...Raster) (err error) {
	for _, r := range rs {
		if r != nil {
			err = multierr.Append(err, r.Close())
		}
	}
	return
}

// Memory is a Raster held entirely in memory.
type Memory struct {
	M     Meta
	Bands []Band
}

// NewMemory validates that all bands share one shape and fills Rows/Cols of meta.
func NewMemory(meta Meta, bands ...Band) (*Memory, error) {
	if len(bands) == 0 {
		return nil, ErrNoBands
	}
	for i, b := range bands[1:] {
		if err := CheckShape(i+2, b, bands[0]); err != nil {
			return nil, err
		}
	}
	meta.Rows, meta.Cols = bands[0].Rows, bands[0].Cols
	return &Memory{M: meta, Bands: bands}, nil
}

func (m *Memory) BandCount() int {
	return len(m.Bands)
}

// ReadBand returns a copy, so callers never alias the stored band.
func (m *Memory) ReadBand(i int) (Band, error) {
	if i < 1 || i > len(m.Bands) {
		return Band{}, ErrBandOutOfRange
	}
	return m.Bands[i-1].Clone(), nil
}

func (m *Memory) Meta() Meta {
	return m.M
}

func (m *Memory) Close() error {
	return nil
}
