package path

import (
	"os"
	"path/filepath"
)

// Resolve 相對路徑以目前工作目錄為基準；找不到時再依序嘗試 fallbackDirs
func Resolve(p string, fallbackDirs ...string) string {
	if filepath.IsAbs(p) {
		return p
	}
	wd, err := os.Getwd()
	if err != nil {
		return p
	}
	candidate := filepath.Join(wd, p)
	if ok, _ := Exists(candidate); ok {
		return candidate
	}
	for _, dir := range fallbackDirs {
		alt := filepath.Join(wd, dir, p)
		if ok, _ := Exists(alt); ok {
			return alt
		}
	}
	return candidate
}

// Exists 路径是否存在
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
