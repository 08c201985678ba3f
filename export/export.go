// Package export saves every CVE matching a filter to disk.
package export

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"

	"github.com/cverooster/cverooster-client/cve"
	"github.com/cverooster/cverooster-client/filter"
	"github.com/cverooster/cverooster-client/session"
	"github.com/cverooster/cverooster-client/utils"
	"github.com/cverooster/cverooster-client/viewmodel"
)

const (
	archiveFile = "cve_list.jsonl.zst"
	allKey      = "all"
)

type options struct {
	dir      string
	appFs    afero.Fs
	locale   viewmodel.Locale
	archive  bool
	progress io.Writer
	now      func() time.Time
}

type option func(*options)

func WithDir(dir string) option {
	return func(opts *options) { opts.dir = dir }
}

func WithFs(appFs afero.Fs) option {
	return func(opts *options) { opts.appFs = appFs }
}

func WithLocale(locale viewmodel.Locale) option {
	return func(opts *options) { opts.locale = locale }
}

// WithArchive also writes all records to a single zstd-compressed JSON
// lines file.
func WithArchive(archive bool) option {
	return func(opts *options) { opts.archive = archive }
}

func WithProgress(w io.Writer) option {
	return func(opts *options) { opts.progress = w }
}

func WithClock(now func() time.Time) option {
	return func(opts *options) { opts.now = now }
}

type Config struct {
	*options
	client session.ListClient
	fs     utils.Fs
}

func NewConfig(client session.ListClient, opts ...option) Config {
	o := &options{
		dir:      utils.ExportDir(),
		appFs:    afero.NewOsFs(),
		locale:   viewmodel.Japanese(),
		progress: os.Stderr,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}

	return Config{
		options: o,
		client:  client,
		fs:      utils.NewFs(o.appFs),
	}
}

// Result summarizes an export.
type Result struct {
	Pages   int
	Records int
	// Skipped counts records whose CVE-ID is not safe to use as a file name.
	Skipped int
}

// Export walks pages 1..max_page for conds and writes each CVE to
// <dir>/<year>/<CVE-ID>.json.
func (c Config) Export(conds filter.Conditions) (Result, error) {
	log.Printf("Fetching page 1 of the CVE list for %q...", key(conds))
	first, err := c.client.List(conds, 1)
	if err != nil {
		return Result{}, xerrors.Errorf("failed to fetch the first page: %w", err)
	}

	bar := pb.New(first.TotalCount).SetWriter(c.progress)
	bar.Start()
	defer bar.Finish()

	var (
		res     Result
		archive []interface{}
	)
	page := viewmodel.Build(first, c.locale)
	for p := 1; ; p++ {
		if p > 1 {
			r, err := c.client.List(conds, p)
			if err != nil {
				return res, xerrors.Errorf("failed to fetch page %d: %w", p, err)
			}
			page = viewmodel.Build(r, c.locale)
		}
		if len(page.CveList) == 0 {
			break
		}
		res.Pages++

		for _, rec := range page.CveList {
			bar.Increment()
			if err = cve.ValidateCveID(rec.CveID); err != nil {
				log.Printf("skip record: %s", err)
				res.Skipped++
				continue
			}
			if err = c.fs.SaveCVEPerYear(c.dir, rec.CveID, rec); err != nil {
				return res, xerrors.Errorf("failed to save %s: %w", rec.CveID, err)
			}
			if c.archive {
				archive = append(archive, rec)
			}
			res.Records++
		}
		if p >= first.MaxPage {
			break
		}
	}

	if c.archive {
		path := filepath.Join(c.dir, archiveFile)
		log.Printf("Writing %d records to %s", len(archive), path)
		if err = c.fs.WriteJSONLinesZstd(path, archive); err != nil {
			return res, xerrors.Errorf("failed to write the archive: %w", err)
		}
	}

	if err = c.fs.SetLastUpdatedDate(c.dir, key(conds), c.now()); err != nil {
		return res, xerrors.Errorf("failed to record the export date: %w", err)
	}
	return res, nil
}

// LastExported reports when conds were last exported to the directory.
func (c Config) LastExported(conds filter.Conditions) (time.Time, error) {
	return c.fs.GetLastUpdatedDate(c.dir, key(conds))
}

func key(conds filter.Conditions) string {
	params := conds.Params()
	if len(params) == 0 {
		return allKey
	}
	return strings.Join(params, "&")
}
