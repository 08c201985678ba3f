package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

const (
	lastUpdatedFile = "last_updated.json"
)

type LastUpdated map[string]time.Time

// GetLastUpdatedDate returns when key was last written under dir, or the
// Unix epoch if never.
func (fs Fs) GetLastUpdatedDate(dir, key string) (time.Time, error) {
	lastUpdated, err := fs.getLastUpdatedDate(dir)
	if err != nil {
		return time.Time{}, err
	}

	t, ok := lastUpdated[key]
	if !ok {
		return time.Unix(0, 0), nil
	}

	return t, nil
}

func (fs Fs) getLastUpdatedDate(dir string) (LastUpdated, error) {
	lastUpdated := LastUpdated{}
	path := filepath.Join(dir, lastUpdatedFile)
	b, err := afero.ReadFile(fs.AppFs, path)
	if os.IsNotExist(err) {
		return lastUpdated, nil
	} else if err != nil {
		return nil, xerrors.Errorf("failed to read %s: %w", path, err)
	}

	if err = json.Unmarshal(b, &lastUpdated); err != nil {
		return nil, xerrors.Errorf("failed to decode %s: %w", path, err)
	}
	return lastUpdated, nil
}

func (fs Fs) SetLastUpdatedDate(dir, key string, lastUpdatedDate time.Time) error {
	lastUpdated, err := fs.getLastUpdatedDate(dir)
	if err != nil {
		return xerrors.Errorf("failed to get last updated date: %w", err)
	}
	lastUpdated[key] = lastUpdatedDate

	if err = fs.AppFs.MkdirAll(dir, os.ModePerm); err != nil {
		return xerrors.Errorf("unable to create a directory: %w", err)
	}
	if err = fs.WriteJSON(filepath.Join(dir, lastUpdatedFile), lastUpdated); err != nil {
		return xerrors.Errorf("failed to write last updated date: %w", err)
	}
	return nil
}
