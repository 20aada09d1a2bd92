package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iksnae/clicker-session/internal"
)

// WriteFile exports table to path through a temporary file so a failed
// export never leaves a partial file behind.
func WriteFile(path string, exporter Exporter, table *internal.Table) error {
	pattern := fmt.Sprintf(".%s-*.%s.tmp", filepath.Base(path), exporter.Extension())

	if fe, ok := exporter.(FileExporter); ok {
		return writeWithFileExporter(path, pattern, fe, table)
	}

	err := internal.WriteAtomic(path, pattern, func(tmp *os.File) error {
		return exporter.Export(table, tmp)
	})
	if err != nil {
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}
	return nil
}

func writeWithFileExporter(path, pattern string, fe FileExporter, table *internal.Table) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), pattern)
	if err != nil {
		return &internal.ExportError{Format: fe.Extension(), Path: path, Err: err}
	}
	tmpName := tmp.Name()
	_ = tmp.Close()
	// The exporter creates its own file, so start from nothing.
	_ = os.Remove(tmpName)

	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tmpName)
		}
	}()

	if err := fe.ExportFile(table, tmpName); err != nil {
		return &internal.ExportError{Format: fe.Extension(), Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return &internal.ExportError{Format: fe.Extension(), Path: path, Err: err}
	}
	cleanup = false
	return nil
}
