package rastool

import (
	"fmt"
	"os"
	"sort"

	"github.com/wgdzlh/rastool/log"
	"github.com/wgdzlh/rastool/utils"

	"github.com/lukeroth/gdal"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type destroyable interface {
	Destroy()
}

// 获取shp文件中某字段的全部取值（去重、排序），非UTF-8编码的shp按GBK解码
func (g *GdalToolbox) CutlineValues(shp, field string) (values []string, err error) {
	driver := gdal.OGRDriverByName(SHP_DRIVER_NAME)
	ds, ok := driver.Open(shp, 0)
	if !ok {
		err = fmt.Errorf("%w: %s", ErrGdalDriverOpen, shp)
		return
	}
	defer ds.Destroy()
	layer := ds.LayerByIndex(0)
	idx := layer.Definition().FieldIndex(field)
	if idx < 0 {
		err = fmt.Errorf("%w: %s in %s", ErrFieldMissing, field, shp)
		return
	}
	var (
		gbk     = !utils.ShpIsUtf8(shp)
		set     = map[string]struct{}{}
		feature *gdal.Feature
		value   string
		cnt     int
		gc      []destroyable
	)
	defer func() {
		for _, v := range gc {
			v.Destroy()
		}
	}()
	for {
		if feature = layer.NextFeature(); feature == nil {
			break
		}
		gc = append(gc, *feature)
		value = feature.FieldAsString(idx)
		if gbk {
			if value, err = utils.GbkStrToUtf8(value); err != nil {
				return
			}
		}
		set[value] = struct{}{}
		cnt++
	}
	values = lo.Keys(set)
	sort.Strings(values)
	log.Info(g.logTag+"got field values from shp", zap.String("file", shp), zap.String("field", field), zap.Strings("values", values), zap.Int("cnt", cnt))
	return
}

// 检查--attr取值：字段不存在时报错，取值不存在时仅告警
func (g *GdalToolbox) checkCutlineAttrs(shp, field string, attrs []string) (err error) {
	values, err := g.CutlineValues(shp, field)
	if err != nil {
		return
	}
	if missing := lo.Without(attrs, values...); len(missing) > 0 {
		log.Warn(g.logTag+"attr values not found in cutline", zap.String("field", field), zap.Strings("missing", missing))
	}
	return
}

func removeShapefile(shp string) (err error) {
	for _, ext := range shpParts {
		if e := os.Remove(utils.SiblingPath(shp, ext)); e != nil && !os.IsNotExist(e) {
			return e
		}
	}
	return
}
