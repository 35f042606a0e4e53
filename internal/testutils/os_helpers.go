package testutils

import (
	"os"
	"path/filepath"
)

const (
	dirPermissions  = 0775
	filePermissions = 0664
)

// WriteProductFiles creates a product folder under sourceDir and fills it
// with the named files. Contents default to the file name's bytes when nil.
func WriteProductFiles(sourceDir, productID string, files map[string][]byte) error {
	dir := filepath.Join(sourceDir, productID)
	err := os.MkdirAll(dir, dirPermissions)
	if err != nil {
		return err
	}
	for name, content := range files {
		if content == nil {
			content = []byte(name)
		}
		err = os.WriteFile(filepath.Join(dir, name), content, filePermissions)
		if err != nil {
			return err
		}
	}
	return nil
}
