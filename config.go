package rastool

const (
	FILE_EXT_SHP     = ".shp"
	FILE_EXT_JSON    = ".json"
	FILE_EXT_GEOJSON = ".geojson"
	SHP_DRIVER_NAME  = "ESRI Shapefile"
	MEM_DRIVER_NAME  = "MEM"
	DEFAULT_DRIVER   = "GTiff"
	SHAPE_ENCODING   = "UTF-8"
	ENCODING_OPTION  = "ENCODING=" + SHAPE_ENCODING

	DEFAULT_CLIP_FORMAT = "ENVI"
	DEFAULT_MASK_FIELD  = "FIELD1"
	DEFAULT_POLY_BAND   = 1
)

// shapefile组成文件扩展名
var shpParts = []string{".shp", ".shx", ".dbf", ".prj", ".cpg", ".qix"}
