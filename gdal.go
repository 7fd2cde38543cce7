// Package rastool is the GDAL side of the raster tools: it opens, reads and
// writes rasters for the processing packages and clips rasters by polygon.
package rastool

import (
	"fmt"

	"github.com/wgdzlh/rastool/grid"

	"github.com/lukeroth/gdal"
)

type GdalToolbox struct {
	tmpDir     string
	createOpts []string
	logTag     string
}

// GdalToolbox implements grid.Storage.
var _ grid.Storage = (*GdalToolbox)(nil)

var (
	toPixel = map[gdal.DataType]grid.PixelType{
		gdal.Byte:    grid.Byte,
		gdal.UInt16:  grid.UInt16,
		gdal.Int16:   grid.Int16,
		gdal.UInt32:  grid.UInt32,
		gdal.Int32:   grid.Int32,
		gdal.Float32: grid.Float32,
		gdal.Float64: grid.Float64,
	}
	toDataType = map[grid.PixelType]gdal.DataType{}
)

func init() {
	for dt, pt := range toPixel {
		toDataType[pt] = dt
	}
}

// 初始化GDAL工具箱，tmpDir为可选的临时目录路径（未提供的话使用输出文件所在目录）
func NewGdalToolbox(tmpDir ...string) *GdalToolbox {
	g := &GdalToolbox{
		logTag: "GdalToolbox:",
	}
	if len(tmpDir) > 0 && tmpDir[0] != "" {
		g.tmpDir = tmpDir[0]
	}
	return g
}

// 设置写出栅格时的创建参数，如 COMPRESS=LZW
func (g *GdalToolbox) WithCreateOptions(opts ...string) *GdalToolbox {
	g.createOpts = append([]string(nil), opts...)
	return g
}

// 复数等类型无法映射时返回 grid.Unknown
func PixelTypeOf(dt gdal.DataType) grid.PixelType {
	if pt, ok := toPixel[dt]; ok {
		return pt
	}
	return grid.Unknown
}

func DataTypeOf(pt grid.PixelType) (dt gdal.DataType, err error) {
	dt, ok := toDataType[pt]
	if !ok {
		err = fmt.Errorf("%w: %v", ErrUnsupportedPixelType, pt)
	}
	return
}
