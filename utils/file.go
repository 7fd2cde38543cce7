package utils

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/multierr"
)

const (
	FILE_EXT_SHP = ".shp"
	FILE_EXT_CPG = ".cpg"

	UTF8  = "UTF8"
	UTF_8 = "UTF-8"
)

func GetUniqSubDir(parentPath string) (path string, err error) {
	path = filepath.Join(parentPath, uuid.NewString())
	err = os.Mkdir(path, os.ModePerm)
	return
}

func GetFilenameWithoutExt(path string) (name string) {
	name = filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(path))
	return
}

// 路径去掉扩展名后追加后缀
func SiblingPath(path, suffix string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + suffix
}

// 根据同名cpg文件判断shp是否为UTF-8编码，无cpg时视为UTF-8
func ShpIsUtf8(shp string) (utf8 bool) {
	enc, e := os.ReadFile(SiblingPath(shp, FILE_EXT_CPG))
	if e != nil || len(enc) == 0 {
		return true
	}
	encStr := strings.ToUpper(strings.TrimSpace(string(enc)))
	utf8 = encStr == UTF_8 || encStr == UTF8
	return
}

var rename = os.Rename

// 将dir下所有文件移动到dst目录；任一文件失败时删除已移入dst的文件
func MoveAll(dir, dst string) (moved []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	defer func() {
		if err != nil {
			for _, m := range moved {
				err = multierr.Append(err, os.Remove(m))
			}
			moved = nil
		}
	}()
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		target := filepath.Join(dst, e.Name())
		if err = moveFile(filepath.Join(dir, e.Name()), target); err != nil {
			return
		}
		moved = append(moved, target)
	}
	return
}

// 跨文件系统（EXDEV）时改为复制后删除
func moveFile(src, dst string) (err error) {
	if err = rename(src, dst); err == nil || !errors.Is(err, syscall.EXDEV) {
		return
	}
	if err = copyFile(src, dst); err != nil {
		return
	}
	return os.Remove(src)
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return
	}
	defer in.Close()
	info, err := in.Stat()
	if err != nil {
		return
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return
	}
	_, err = io.Copy(out, in)
	err = multierr.Append(err, out.Close())
	if err != nil {
		err = multierr.Append(err, os.Remove(dst))
	}
	return
}
