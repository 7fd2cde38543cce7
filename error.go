package rastool

import "errors"

var (
	ErrGdalDriverCreate     = errors.New("gdal driver create err")
	ErrGdalDriverOpen       = errors.New("gdal driver open err")
	ErrInvalidTif           = errors.New("invalid tif")
	ErrTifReadFailed        = errors.New("tif read failed")
	ErrTifWriteFailed       = errors.New("tif write failed")
	ErrUnsupportedPixelType = errors.New("unsupported pixel type")
	ErrEmptyCutline         = errors.New("cutline has no polygon")
	ErrNoOutputBands        = errors.New("no bands to write")
	ErrFieldMissing         = errors.New("field missing in shapefile")
)
