// Package render writes the HTML fragments of the CVE list page.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"golang.org/x/xerrors"

	"github.com/cverooster/cverooster-client/cve"
	"github.com/cverooster/cverooster-client/session"
	"github.com/cverooster/cverooster-client/viewmodel"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// StatusKind is the save button a status message belongs to.
type StatusKind string

const (
	StatusComment StatusKind = "save_comment_result"
	StatusLabel   StatusKind = "save_label_result"
)

var funcs = template.FuncMap{
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"labelChecked": func(labelID *int, id string) bool {
		return labelID != nil && strconv.Itoa(*labelID) == id
	},
}

type Renderer struct {
	tmpl   *template.Template
	locale viewmodel.Locale
	labels []cve.Label
}

type option func(*Renderer)

func WithLabels(labels []cve.Label) option {
	return func(r *Renderer) {
		r.labels = labels
	}
}

func NewRenderer(locale viewmodel.Locale, opts ...option) (*Renderer, error) {
	tmpl, err := template.New("render").Funcs(funcs).ParseFS(templateFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, xerrors.Errorf("failed to parse templates: %w", err)
	}
	r := &Renderer{
		tmpl:   tmpl,
		locale: locale,
		labels: cve.DefaultLabels,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

type listData struct {
	Page     viewmodel.ListPage
	Labels   []cve.Label
	Messages viewmodel.Messages
	Lang     string
}

func (r *Renderer) data(page viewmodel.ListPage) listData {
	return listData{
		Page:     page,
		Labels:   r.labels,
		Messages: r.locale.Messages(),
		Lang:     r.locale.Lang(),
	}
}

// RenderList writes the result section: counts, rows and pagination.
func (r *Renderer) RenderList(w io.Writer, page viewmodel.ListPage) error {
	if err := r.tmpl.ExecuteTemplate(w, "cve_list", r.data(page)); err != nil {
		return xerrors.Errorf("failed to render cve list: %w", err)
	}
	return nil
}

// RenderPage writes a standalone document around the result section.
func (r *Renderer) RenderPage(w io.Writer, page viewmodel.ListPage) error {
	if err := r.tmpl.ExecuteTemplate(w, "page", r.data(page)); err != nil {
		return xerrors.Errorf("failed to render page: %w", err)
	}
	return nil
}

// RenderKeywordButton writes the button of a registered keyword.
func (r *Renderer) RenderKeywordButton(w io.Writer, keyword string) error {
	if err := r.tmpl.ExecuteTemplate(w, "keyword_button", keyword); err != nil {
		return xerrors.Errorf("failed to render keyword button: %w", err)
	}
	return nil
}

// RenderStatus writes the message shown under the save button of row index.
func (r *Renderer) RenderStatus(w io.Writer, kind StatusKind, index int, status session.Status) error {
	data := struct {
		ID     string
		Status session.Status
	}{
		ID:     fmt.Sprintf("%s_%d", kind, index),
		Status: status,
	}
	if err := r.tmpl.ExecuteTemplate(w, "status", data); err != nil {
		return xerrors.Errorf("failed to render status: %w", err)
	}
	return nil
}
