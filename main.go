package main

import (
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"
	"strings"
	_ "time/tzdata"

	"github.com/samber/lo"
	"github.com/spf13/afero"
	"golang.org/x/exp/slices"
	"golang.org/x/xerrors"

	"github.com/cverooster/cverooster-client/api"
	"github.com/cverooster/cverooster-client/config"
	"github.com/cverooster/cverooster-client/cve"
	"github.com/cverooster/cverooster-client/export"
	"github.com/cverooster/cverooster-client/filter"
	"github.com/cverooster/cverooster-client/render"
	"github.com/cverooster/cverooster-client/session"
	"github.com/cverooster/cverooster-client/utils"
)

var (
	configPath = flag.String("config", "", "path to a YAML config file")
	target     = flag.String("target", "", "action (list, render, export, save-comment, save-label, save-keyword, delete-keyword)")

	severity          = flag.String("severity", filter.All, "severity filter (ALL, CRITICAL, HIGH, MEDIUM, LOW)")
	year              = flag.String("year", filter.All, "published year filter (ALL or YYYY)")
	label             = flag.String("label", "", "comma separated label IDs; empty means all labels")
	enableUserKeyword = flag.Bool("enable-user-keyword", false, "filter by the registered keywords")
	keyword           = flag.String("keyword", "", "free keyword filter")
	page              = flag.Int("page", 1, "page number")
	form              = flag.String("form", "", "HTML page to read the filter form from instead of the flags above")

	cveID   = flag.String("cve-id", "", "CVE-ID to annotate (save-comment, save-label)")
	comment = flag.String("comment", "", "comment to save; empty deletes the stored one")
	out     = flag.String("out", "", "output file (render, list); stdout if empty")
	archive = flag.Bool("archive", false, "also write a zstd compressed JSON lines snapshot (export)")
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	flag.Parse()

	appFs := afero.NewOsFs()
	cfg, err := config.Load(appFs, *configPath)
	if err != nil {
		return xerrors.Errorf("config error: %w", err)
	}
	locale, err := cfg.ViewLocale()
	if err != nil {
		return err
	}
	opts, err := cfg.ClientOptions()
	if err != nil {
		return err
	}
	client := api.NewClient(opts...)

	renderer, err := render.NewRenderer(locale, render.WithLabels(cfg.Labels))
	if err != nil {
		return err
	}

	switch *target {
	case "list", "render":
		snapshot, err := loadSnapshot(cfg.Labels)
		if err != nil {
			return err
		}
		lister := session.NewLister(client, locale)
		listPage, err := lister.Fetch(snapshot, session.Trigger{Page: *page})
		if err != nil {
			log.Print(lister.FetchFailedMessage())
			return xerrors.Errorf("list error: %w", err)
		}
		return output(appFs, func(w io.Writer) error {
			if *target == "render" {
				return renderer.RenderPage(w, listPage)
			}
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(listPage)
		})
	case "export":
		snapshot, err := loadSnapshot(cfg.Labels)
		if err != nil {
			return err
		}
		ec := export.NewConfig(client,
			export.WithDir(cfg.ExportDir),
			export.WithFs(appFs),
			export.WithLocale(locale),
			export.WithArchive(*archive),
		)
		res, err := ec.Export(filter.Collect(snapshot))
		if err != nil {
			return xerrors.Errorf("export error: %w", err)
		}
		log.Printf("Exported %d CVEs from %d pages to %s", res.Records, res.Pages, cfg.ExportDir)
	case "save-comment":
		annotator := session.NewAnnotator(client, locale)
		status := annotator.SaveComment(*cveID, *comment)
		return reportStatus(renderer, render.StatusComment, status)
	case "save-label":
		annotator := session.NewAnnotator(client, locale)
		status := annotator.SaveLabel(*cveID, labelCheckboxes(cfg.Labels, *label))
		return reportStatus(renderer, render.StatusLabel, status)
	case "save-keyword", "delete-keyword":
		panel := session.NewKeywordPanel(client, cfg.Keywords)
		if *target == "save-keyword" {
			err = panel.Save(*keyword)
		} else {
			err = panel.Delete(*keyword)
		}
		if err != nil {
			return xerrors.Errorf("keyword error: %w", err)
		}
		for _, k := range panel.Keywords() {
			if err = renderer.RenderKeywordButton(os.Stdout, k); err != nil {
				return err
			}
			os.Stdout.WriteString("\n")
		}
	default:
		return xerrors.New("unknown target")
	}
	return nil
}

// loadSnapshot builds the filter form state from -form or from the flags.
func loadSnapshot(labels []cve.Label) (filter.Snapshot, error) {
	if *form != "" {
		f, err := os.Open(*form)
		if err != nil {
			return filter.Snapshot{}, xerrors.Errorf("failed to open %s: %w", *form, err)
		}
		defer f.Close()
		s, err := filter.FromHTML(f)
		if err != nil {
			return filter.Snapshot{}, xerrors.Errorf("failed to read the filter form: %w", err)
		}
		return s, nil
	}

	return filter.Snapshot{
		Severity:  *severity,
		Year:      *year,
		AllLabels: *label == "",
		Labels:    labelCheckboxes(labels, *label),
		EnableUserKeyword: []filter.Radio{
			{Value: "0", Checked: !*enableUserKeyword},
			{Value: "1", Checked: *enableUserKeyword},
		},
		Keyword: *keyword,
	}, nil
}

func labelCheckboxes(labels []cve.Label, checked string) []filter.Checkbox {
	ids := lo.Compact(strings.Split(checked, ","))
	return lo.Map(labels, func(l cve.Label, _ int) filter.Checkbox {
		return filter.Checkbox{Value: l.ID, Checked: slices.Contains(ids, l.ID)}
	})
}

func reportStatus(r *render.Renderer, kind render.StatusKind, status session.Status) error {
	if err := r.RenderStatus(os.Stdout, kind, 0, status); err != nil {
		return err
	}
	os.Stdout.WriteString("\n")
	if !status.OK {
		return xerrors.New(status.Message)
	}
	return nil
}

func output(appFs afero.Fs, write func(w io.Writer) error) error {
	if *out == "" {
		return write(os.Stdout)
	}
	fs := utils.NewFs(appFs)
	if err := fs.WriteFile(*out, write); err != nil {
		return xerrors.Errorf("failed to write %s: %w", *out, err)
	}
	log.Printf("Wrote %s", *out)
	return nil
}
