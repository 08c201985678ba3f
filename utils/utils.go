package utils

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/xerrors"
)

func CacheDir() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	dir := filepath.Join(cacheDir, "cverooster-client")
	return dir
}

// ExportDir is the default destination of exported CVE lists.
func ExportDir() string {
	return filepath.Join(CacheDir(), "export")
}

// YearOf returns the year part of a CVE-ID such as CVE-2023-1234.
func YearOf(cveID string) (string, error) {
	s := strings.Split(cveID, "-")
	if len(s) != 3 {
		return "", xerrors.Errorf("invalid CVE-ID format: %s", cveID)
	}
	return s[1], nil
}

func LookupEnv(key, defaultValue string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultValue
}
