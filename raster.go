package rastool

import (
	"fmt"

	"github.com/wgdzlh/rastool/grid"
	"github.com/wgdzlh/rastool/log"

	"github.com/lukeroth/gdal"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Raster is an open GDAL dataset read band by band.
type Raster struct {
	ds     gdal.Dataset
	path   string
	meta   grid.Meta
	logTag string
}

// Open implements grid.Storage.
func (g *GdalToolbox) Open(path string) (grid.Raster, error) {
	r, err := g.OpenRaster(path)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// 只读打开栅格，并读取地理变换、投影、驱动与第1波段的数据类型
func (g *GdalToolbox) OpenRaster(path string) (r *Raster, err error) {
	ds, err := gdal.Open(path, gdal.ReadOnly)
	if err != nil {
		log.Error(g.logTag+"open tif failed", zap.String("path", path), zap.Error(err))
		err = fmt.Errorf("%w: %s: %v", ErrInvalidTif, path, err)
		return
	}
	bc := ds.RasterCount()
	if bc == 0 {
		ds.Close()
		err = fmt.Errorf("%w: %s", grid.ErrNoBands, path)
		return
	}
	first := ds.RasterBand(1)
	meta := grid.Meta{
		Rows:         ds.RasterYSize(),
		Cols:         ds.RasterXSize(),
		GeoTransform: ds.GeoTransform(),
		Projection:   ds.Projection(),
		Driver:       ds.Driver().ShortName(),
		PixelType:    PixelTypeOf(first.RasterDataType()),
	}
	meta.NoData, meta.HasNoData = first.NoDataValue()
	log.Info(g.logTag+"open tif", zap.String("path", path), zap.Int("bands", bc), zap.Int("width", meta.Cols), zap.Int("height", meta.Rows),
		zap.String("driver", meta.Driver), zap.Stringer("dt", meta.PixelType))
	r = &Raster{ds: ds, path: path, meta: meta, logTag: g.logTag}
	return
}

func (r *Raster) BandCount() int {
	return r.ds.RasterCount()
}

func (r *Raster) Meta() grid.Meta {
	return r.meta
}

// 读取第i个波段（从1开始）为float64数组
func (r *Raster) ReadBand(i int) (b grid.Band, err error) {
	if i < 1 || i > r.ds.RasterCount() {
		err = fmt.Errorf("%w: %d of %d", grid.ErrBandOutOfRange, i, r.ds.RasterCount())
		return
	}
	band := r.ds.RasterBand(i)
	x, y := band.XSize(), band.YSize()
	b = grid.NewBand(y, x)
	if err = band.IO(gdal.Read, 0, 0, x, y, b.Data, x, y, 0, 0); err != nil {
		log.Error(r.logTag+"read tif band failed", zap.String("path", r.path), zap.Int("band", i), zap.Error(err))
		err = fmt.Errorf("%w: band %d: %v", ErrTifReadFailed, i, err)
	}
	return
}

func (r *Raster) Close() error {
	r.ds.Close()
	return nil
}

// 将多个波段一次写成栅格；任一步失败都会删除已创建的输出
func (g *GdalToolbox) WriteMultiband(path string, bands []grid.Band, meta grid.Meta) (err error) {
	if len(bands) == 0 {
		return ErrNoOutputBands
	}
	for i, b := range bands[1:] {
		if err = grid.CheckShape(i+2, b, bands[0]); err != nil {
			return
		}
	}
	dt, err := DataTypeOf(meta.PixelType)
	if err != nil {
		return
	}
	driverName := meta.Driver
	if driverName == "" || driverName == MEM_DRIVER_NAME {
		driverName = DEFAULT_DRIVER
	}
	driver, err := gdal.GetDriverByName(driverName)
	if err != nil {
		log.Error(g.logTag+"get driver failed", zap.String("driver", driverName), zap.Error(err))
		return fmt.Errorf("%w: %s", ErrGdalDriverCreate, driverName)
	}
	rows, cols := bands[0].Rows, bands[0].Cols
	log.Info(g.logTag+"start write tif", zap.String("path", path), zap.String("driver", driverName), zap.Int("bands", len(bands)),
		zap.Int("width", cols), zap.Int("height", rows), zap.Stringer("dt", meta.PixelType))
	ds := driver.Create(path, cols, rows, len(bands), dt, g.createOpts)
	if ds.RasterCount() != len(bands) {
		return fmt.Errorf("%w: %s with %s", ErrGdalDriverCreate, path, driverName)
	}
	defer func() {
		ds.Close()
		if err != nil {
			err = multierr.Append(err, driver.DeleteDataset(path))
		}
	}()
	if err = ds.SetGeoTransform(meta.GeoTransform); err != nil {
		return
	}
	if meta.Projection != "" {
		if err = ds.SetProjection(meta.Projection); err != nil {
			return
		}
	}
	for i, b := range bands {
		band := ds.RasterBand(i + 1)
		if meta.HasNoData {
			if err = band.SetNoDataValue(meta.NoData); err != nil {
				return
			}
		}
		if err = band.IO(gdal.Write, 0, 0, cols, rows, b.Data, cols, rows, 0, 0); err != nil {
			log.Error(g.logTag+"write tif band failed", zap.Int("band", i+1), zap.Error(err))
			err = fmt.Errorf("%w: band %d: %v", ErrTifWriteFailed, i+1, err)
			return
		}
	}
	log.Info(g.logTag+"tif written", zap.String("path", path))
	return
}
