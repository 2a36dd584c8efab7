// Package controlfile reads and writes the control file of a data directory.
package controlfile

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/INLOpen/pgctledit/core"
	"github.com/INLOpen/pgctledit/sys"
	"github.com/INLOpen/pgctledit/walfile"
)

// FileName is the control file path relative to the data directory root.
const FileName = "global/pg_control"

// ErrRejected reports a control file that exists but cannot be used: too
// short, wrong version, or an unsupported WAL segment size.
var ErrRejected = errors.New("control file is broken or wrong version")

// Path returns the control file path under the given data directory.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Read loads the control file from the data directory rooted at dir.
//
// guessed is true when the stored CRC does not match the recomputed one; the
// record is still returned in that case. A missing file surfaces an error
// satisfying errors.Is(err, fs.ErrNotExist) so the caller can hint at
// creating a placeholder. Structural problems return ErrRejected after
// logging a warning; the caller decides whether that is fatal.
func Read(dir string, logger *slog.Logger) (rec *core.ControlRecord, guessed bool, err error) {
	path := Path(dir)

	file, err := sys.Open(path)
	if err != nil {
		return nil, false, fmt.Errorf("could not open file %q for reading: %w", path, err)
	}
	defer file.Close()

	buf := make([]byte, core.ControlFileSize)
	n, err := io.ReadFull(file, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, false, fmt.Errorf("could not read file %q: %w", path, err)
	}
	buf = buf[:n]

	if n < core.ControlDataSize {
		logger.Warn("control file exists but is broken or wrong version; ignoring it",
			"path", path, "bytes_read", n)
		return nil, false, ErrRejected
	}

	rec, err = core.DecodeControlRecord(buf)
	if err != nil {
		return nil, false, fmt.Errorf("could not decode file %q: %w", path, err)
	}
	if rec.Version != core.ControlVersion {
		logger.Warn("control file exists but is broken or wrong version; ignoring it",
			"path", path, "version", rec.Version, "supported_version", core.ControlVersion)
		return nil, false, ErrRejected
	}

	if !rec.ChecksumOK() {
		// The data is still usable; the caller carries a "guessed" marker.
		logger.Warn("control file exists but has invalid CRC; proceed with caution", "path", path)
		guessed = true
	}

	if !walfile.IsValidSegmentSize(rec.WalSegmentSize) {
		logger.Warn("control file specifies invalid WAL segment size; proceed with caution",
			"path", path, "bytes", rec.WalSegmentSize)
		return nil, guessed, ErrRejected
	}

	return rec, guessed, nil
}
