package rastool

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wgdzlh/rastool/grid"
	"github.com/wgdzlh/rastool/log"
	"github.com/wgdzlh/rastool/utils"

	"github.com/lukeroth/gdal"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ClipOptions 剪切参数
type ClipOptions struct {
	Source string // 待剪切栅格
	Clip   string // 剪切范围：shp、GeoJSON或栅格（非0像元为有效区）
	Output string

	PolyBand int      // Clip为栅格时用于生成掩膜的波段，默认1
	NoData   *float64 // 输出NoData值，nil时不设置
	Field    string   // 掩膜矢量的属性字段，默认FIELD1
	Attrs    []string // 仅保留Field取这些值的要素
	Format   string   // 输出格式，默认ENVI
}

func (o *ClipOptions) setDefaults() {
	if o.PolyBand <= 0 {
		o.PolyBand = DEFAULT_POLY_BAND
	}
	if o.Field == "" {
		o.Field = DEFAULT_MASK_FIELD
	}
	if o.Format == "" {
		o.Format = DEFAULT_CLIP_FORMAT
	}
}

// 按剪切范围剪切栅格，返回实际使用的cutline路径
func (g *GdalToolbox) ClipRaster(opt ClipOptions) (cutline string, err error) {
	opt.setDefaults()
	log.Info(g.logTag+"start clip raster", zap.String("source", opt.Source), zap.String("clip", opt.Clip), zap.String("output", opt.Output))
	var gbk bool
	switch strings.ToLower(filepath.Ext(opt.Clip)) {
	case FILE_EXT_SHP:
		cutline = opt.Clip
		gbk = !utils.ShpIsUtf8(cutline)
	case FILE_EXT_GEOJSON, FILE_EXT_JSON:
		var n int
		if n, err = CheckGeoJSONCutline(opt.Clip); err != nil {
			return
		}
		log.Info(g.logTag+"use GeoJSON cutline", zap.Int("polygons", n))
		cutline = opt.Clip
	default:
		log.Info(g.logTag + "converting raster to shapefile")
		if cutline, err = g.PolygonizeMask(opt.Clip, opt.PolyBand, filepath.Dir(opt.Output), opt.Field); err != nil {
			return
		}
		log.Info(g.logTag+"shapefile available", zap.String("shp", cutline))
	}
	if len(opt.Attrs) > 0 && strings.EqualFold(filepath.Ext(cutline), FILE_EXT_SHP) {
		if err = g.checkCutlineAttrs(cutline, opt.Field, opt.Attrs); err != nil {
			return
		}
	}
	opts, err := WarpOptions(cutline, opt, gbk)
	if err != nil {
		return
	}
	err = g.warpTo(opt.Source, opt.Output, opts)
	return
}

// 在临时子目录中执行gdalwarp，成功后再把结果移动到输出目录
func (g *GdalToolbox) warpTo(source, output string, opts []string) (err error) {
	sds, err := gdal.Open(source, gdal.ReadOnly)
	if err != nil {
		log.Error(g.logTag+"open source failed", zap.String("source", source), zap.Error(err))
		return fmt.Errorf("%w: %s: %v", ErrInvalidTif, source, err)
	}
	defer sds.Close()
	outDir := filepath.Dir(output)
	parent := g.tmpDir
	if parent == "" {
		parent = outDir
	}
	tmp, err := utils.GetUniqSubDir(parent)
	if err != nil {
		return
	}
	defer func() {
		err = multierr.Append(err, os.RemoveAll(tmp))
	}()
	log.Info(g.logTag+"warp", zap.Strings("opts", opts))
	ods, err := gdal.Warp(filepath.Join(tmp, filepath.Base(output)), nil, []gdal.Dataset{sds}, opts)
	if err != nil {
		log.Error(g.logTag+"failed to clip raster", zap.Error(err))
		return
	}
	ods.Close()
	moved, err := utils.MoveAll(tmp, outDir)
	if err != nil {
		return
	}
	log.Info(g.logTag+"clip done", zap.Strings("files", moved))
	return
}

// gdalwarp参数：-cutline [-cwhere] -crop_to_cutline [-dstnodata] -of
func WarpOptions(cutline string, opt ClipOptions, gbk bool) (opts []string, err error) {
	opt.setDefaults()
	opts = []string{"-cutline", cutline}
	if len(opt.Attrs) > 0 {
		where := CutlineWhere(opt.Field, opt.Attrs)
		if gbk {
			if where, err = utils.Utf8StrToGbk(where); err != nil {
				return
			}
		}
		opts = append(opts, "-cwhere", where)
	}
	opts = append(opts, "-crop_to_cutline")
	if opt.NoData != nil {
		opts = append(opts, "-dstnodata", strconv.FormatFloat(*opt.NoData, 'g', -1, 64))
	}
	opts = append(opts, "-of", opt.Format, "-overwrite")
	return
}

// 生成 field='a' OR field='b' 形式的过滤条件
func CutlineWhere(field string, attrs []string) string {
	conds := make([]string, len(attrs))
	for i, a := range attrs {
		conds[i] = fmt.Sprintf("%s='%s'", field, strings.ReplaceAll(a, "'", "''"))
	}
	return strings.Join(conds, " OR ")
}

// 检查GeoJSON中面要素的个数，没有面时返回ErrEmptyCutline
func CheckGeoJSONCutline(path string) (n int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var geoms []orb.Geometry
	if fc, e := geojson.UnmarshalFeatureCollection(data); e == nil && fc.Type == geojson.TypeFeatureCollection {
		for _, f := range fc.Features {
			geoms = append(geoms, f.Geometry)
		}
	} else if f, e := geojson.UnmarshalFeature(data); e == nil && f.Type == geojson.TypeFeature {
		geoms = append(geoms, f.Geometry)
	} else if gm, e := geojson.UnmarshalGeometry(data); e == nil {
		geoms = append(geoms, gm.Geometry())
	} else {
		err = fmt.Errorf("invalid GeoJSON cutline %s: %w", path, e)
		return
	}
	for _, gm := range geoms {
		switch gm.(type) {
		case orb.Polygon, orb.MultiPolygon:
			n++
		}
	}
	if n == 0 {
		err = fmt.Errorf("%w: %s", ErrEmptyCutline, path)
	}
	return
}

// 将栅格指定波段的非0像元转为面矢量shp，输出到dir下与栅格同名的shp
func (g *GdalToolbox) PolygonizeMask(clip string, bandIdx int, dir, field string) (shp string, err error) {
	cds, err := gdal.Open(clip, gdal.ReadOnly)
	if err != nil {
		log.Error(g.logTag+"open clip raster failed", zap.String("clip", clip), zap.Error(err))
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidTif, clip, err)
	}
	defer cds.Close()
	if bc := cds.RasterCount(); bandIdx < 1 || bandIdx > bc {
		return "", fmt.Errorf("%w: poly band %d of %d", grid.ErrBandOutOfRange, bandIdx, bc)
	}
	src := cds.RasterBand(bandIdx)
	x, y := src.XSize(), src.YSize()
	buf := make([]float64, x*y)
	if err = src.IO(gdal.Read, 0, 0, x, y, buf, x, y, 0, 0); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTifReadFailed, err)
	}
	mask := make([]uint8, len(buf))
	for i, v := range buf {
		if v != 0 {
			mask[i] = 1
		}
	}
	log.Info(g.logTag+"built mask", zap.Int("width", x), zap.Int("height", y))

	memDriver, err := gdal.GetDriverByName(MEM_DRIVER_NAME)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrGdalDriverCreate, MEM_DRIVER_NAME)
	}
	mds := memDriver.Create("", x, y, 1, gdal.Byte, nil)
	if mds.RasterCount() != 1 {
		return "", fmt.Errorf("%w: mask dataset", ErrGdalDriverCreate)
	}
	defer mds.Close()
	gt := cds.GeoTransform()
	if err = mds.SetGeoTransform([6]float64{gt[0], gt[1], 0, gt[3], 0, gt[5]}); err != nil {
		return
	}
	proj := cds.Projection()
	if proj != "" {
		if err = mds.SetProjection(proj); err != nil {
			return
		}
	}
	mb := mds.RasterBand(1)
	if err = mb.IO(gdal.Write, 0, 0, x, y, mask, x, y, 0, 0); err != nil {
		return "", fmt.Errorf("%w: mask: %v", ErrTifWriteFailed, err)
	}

	name := utils.GetFilenameWithoutExt(clip)
	shp = filepath.Join(dir, name+FILE_EXT_SHP)
	if err = removeShapefile(shp); err != nil {
		return
	}
	driver := gdal.OGRDriverByName(SHP_DRIVER_NAME)
	sds, ok := driver.Create(shp, nil)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrGdalDriverCreate, shp)
	}
	defer sds.Destroy()
	ref := gdal.CreateSpatialReference(proj)
	defer ref.Destroy()
	layer := sds.CreateLayer(name, ref, gdal.GT_Polygon, []string{ENCODING_OPTION})
	fd := gdal.CreateFieldDefinition(field, gdal.FT_Integer)
	defer fd.Destroy()
	if err = layer.CreateField(fd, false); err != nil {
		return
	}
	// 以掩膜自身为mask，只输出非0区域的面
	err = mb.Polygonize(mb, layer, 0, nil, g.progress, nil)
	if err != nil {
		log.Error(g.logTag+"polygonize failed", zap.Error(err))
	}
	return
}

func (g *GdalToolbox) progress(complete float64, message string, _ interface{}) int {
	log.Debug(g.logTag+"progress", zap.Float64("complete", complete), zap.String("msg", message))
	return 1
}
