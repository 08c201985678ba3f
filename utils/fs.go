package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

type Fs struct {
	AppFs afero.Fs
}

func NewFs(appFs afero.Fs) Fs {
	return Fs{AppFs: appFs}
}

func (fs Fs) WriteJSON(filePath string, data interface{}) error {
	f, err := fs.AppFs.Create(filePath)
	if err != nil {
		return xerrors.Errorf("unable to open a file: %w", err)
	}
	defer f.Close()

	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return xerrors.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err = f.Write(b); err != nil {
		return xerrors.Errorf("failed to save a file: %w", err)
	}
	return nil
}

// SaveCVEPerYear writes data to <dir>/<year>/<cveID>.json.
func (fs Fs) SaveCVEPerYear(dir, cveID string, data interface{}) error {
	year, err := YearOf(cveID)
	if err != nil {
		return err
	}

	yearDir := filepath.Join(dir, year)
	if err = fs.AppFs.MkdirAll(yearDir, os.ModePerm); err != nil {
		return xerrors.Errorf("unable to create a directory: %w", err)
	}

	filePath := filepath.Join(yearDir, fmt.Sprintf("%s.json", cveID))
	if err = fs.WriteJSON(filePath, data); err != nil {
		return xerrors.Errorf("failed to write file: %w", err)
	}
	return nil
}

// WriteFile creates filePath and hands it to write.
func (fs Fs) WriteFile(filePath string, write func(w io.Writer) error) error {
	if err := fs.AppFs.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
		return xerrors.Errorf("unable to create a directory: %w", err)
	}
	f, err := fs.AppFs.Create(filePath)
	if err != nil {
		return xerrors.Errorf("unable to open a file: %w", err)
	}
	defer f.Close()

	if err = write(f); err != nil {
		return xerrors.Errorf("failed to save a file: %w", err)
	}
	return nil
}

// WriteJSONLinesZstd writes one JSON document per line, zstd compressed.
func (fs Fs) WriteJSONLinesZstd(filePath string, items []interface{}) error {
	return fs.WriteFile(filePath, func(w io.Writer) error {
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return xerrors.Errorf("failed to create zstd writer: %w", err)
		}
		je := json.NewEncoder(enc)
		for _, item := range items {
			if err = je.Encode(item); err != nil {
				enc.Close()
				return xerrors.Errorf("failed to encode JSON: %w", err)
			}
		}
		if err = enc.Close(); err != nil {
			return xerrors.Errorf("failed to close zstd writer: %w", err)
		}
		return nil
	})
}
