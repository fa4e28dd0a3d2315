package fetch

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// FirstWorkbook extracts the first .xlsx member of a ZIP archive. The OEWS
// by-state archive ships a single workbook under a release-named directory,
// so position is the only stable selector.
func FirstWorkbook(archive []byte) (name string, data []byte, err error) {
	r, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return "", nil, fmt.Errorf("open zip: %w", err)
	}

	for _, f := range r.File {
		if !strings.HasSuffix(strings.ToLower(f.Name), ".xlsx") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", nil, fmt.Errorf("open zip member %s: %w", f.Name, err)
		}
		data, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", nil, fmt.Errorf("read zip member %s: %w", f.Name, err)
		}
		return f.Name, data, nil
	}
	return "", nil, fmt.Errorf("no .xlsx member in archive")
}
