package controlfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/INLOpen/pgctledit/core"
	"github.com/INLOpen/pgctledit/sys"
)

// EnsureDataDir creates the destination layout: the data directory itself,
// its global/ subdirectory, and an empty control file placeholder. Pieces
// that already exist are left alone. The exclusive pre-create of the
// placeholder surfaces permission or path problems before the real write.
func EnsureDataDir(dir string) error {
	if err := sys.Mkdir(dir, 0755); err != nil && !errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("output data directory %q does not exist and cannot be created: %w", dir, err)
	}

	globalDir := filepath.Join(dir, "global")
	if err := sys.Mkdir(globalDir, 0755); err != nil && !errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("directory %q does not exist and cannot be created: %w", globalDir, err)
	}

	path := Path(dir)
	file, err := sys.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil
		}
		return fmt.Errorf("file %q does not exist and cannot be created: %w", path, err)
	}
	return file.Close()
}

// Write serializes rec with a freshly computed CRC and durably replaces the
// control file under dir. The destination layout must already exist (see
// EnsureDataDir).
func Write(dir string, rec *core.ControlRecord) error {
	path := Path(dir)

	file, err := sys.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("could not open file %q for writing: %w", path, err)
	}

	if _, err := file.WriteAt(rec.Encode(), 0); err != nil {
		file.Close()
		return fmt.Errorf("could not write file %q: %w", path, err)
	}
	if err := sys.Fdatasync(file); err != nil {
		file.Close()
		return fmt.Errorf("could not fsync file %q: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("could not close file %q: %w", path, err)
	}
	return nil
}
