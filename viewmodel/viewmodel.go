// Package viewmodel derives the display-ready CVE list from a page returned
// by the list API.
package viewmodel

import (
	"time"

	"github.com/araddon/dateparse"
	"github.com/samber/lo"

	"github.com/cverooster/cverooster-client/cve"
)

const (
	DescriptionMaxLength = 150
	PrevPageDispLimit    = 3
	NextPageDispLimit    = 3

	// Placeholder is shown for a missing date or severity.
	Placeholder = "-"

	detailPagePrefix = "/detail/"
	dateLayout       = "2006/1/2"
	ellipsis         = "..."
)

type DisplayRecord struct {
	CveID            string  `json:"cve_id"`
	DetailPageURL    string  `json:"detail_page_url"`
	CveURL           string  `json:"cve_url"`
	NvdContentExists bool    `json:"nvd_content_exists"`
	NvdURL           *string `json:"nvd_url"`
	CveDescription   string  `json:"cve_description"`
	PublishedDate    string  `json:"published_date"`
	Severity         string  `json:"severity"`
	LabelID          *int    `json:"label_id"`
	Comment          *string `json:"comment"`
}

type ListPage struct {
	TotalCount        int             `json:"total_count"`
	DisplayCountFrom  int             `json:"display_count_from"`
	DisplayCountTo    int             `json:"display_count_to"`
	CurrentPage       int             `json:"current_page"`
	MaxPage           int             `json:"max_page"`
	PrevPageDispLimit int             `json:"prev_page_disp_limit"`
	NextPageDispLimit int             `json:"next_page_disp_limit"`
	CveList           []DisplayRecord `json:"cve_list"`
}

// Build converts an API page into a ListPage. Dates are formatted in the
// time zone of locale.
func Build(result cve.ListResult, locale Locale) ListPage {
	return ListPage{
		TotalCount:        result.TotalCount,
		DisplayCountFrom:  result.DisplayCountFrom,
		DisplayCountTo:    result.DisplayCountTo,
		CurrentPage:       result.CurrentPage,
		MaxPage:           result.MaxPage,
		PrevPageDispLimit: PrevPageDispLimit,
		NextPageDispLimit: NextPageDispLimit,
		CveList: lo.Map(result.CveList, func(r cve.Record, _ int) DisplayRecord {
			return NewDisplayRecord(r, locale)
		}),
	}
}

func NewDisplayRecord(r cve.Record, locale Locale) DisplayRecord {
	d := DisplayRecord{
		CveID:            r.CveID,
		DetailPageURL:    detailPagePrefix + r.CveID,
		CveURL:           r.CveURL,
		NvdContentExists: r.NvdContentExists,
		CveDescription:   TruncateDescription(r.CveDescription),
		PublishedDate:    FormatPublishedDate(r.PublishedDate, locale),
		Severity:         ResolveSeverity(r.Cvss3Severity, r.Cvss2Severity),
		LabelID:          r.LabelID,
		Comment:          r.Comment,
	}
	if r.NvdContentExists {
		d.NvdURL = lo.ToPtr(r.NvdURL)
	}
	return d
}

// TruncateDescription keeps descriptions of up to DescriptionMaxLength
// characters as is. Longer ones are cut to DescriptionMaxLength+1 characters
// followed by an ellipsis.
func TruncateDescription(s string) string {
	runes := []rune(s)
	if len(runes) <= DescriptionMaxLength {
		return s
	}
	return string(runes[:DescriptionMaxLength+1]) + ellipsis
}

// FormatPublishedDate renders a date as YYYY/M/D in the locale's time zone.
// RFC 3339 timestamps keep their own offset (Z is UTC); dates without a zone
// are taken as local to the locale's zone. A missing or
// unparsable date yields Placeholder.
func FormatPublishedDate(date *string, locale Locale) string {
	if date == nil || *date == "" {
		return Placeholder
	}
	loc := locale.location()
	t, err := time.Parse(time.RFC3339Nano, *date)
	if err != nil {
		// zone-less forms such as 2023-05-01
		if t, err = dateparse.ParseIn(*date, loc); err != nil {
			return Placeholder
		}
	}
	return t.In(loc).Format(dateLayout)
}

// ResolveSeverity picks the highest level found in either score version,
// checking CVSS v3 and v2 together at each level.
func ResolveSeverity(cvss3, cvss2 cve.Severity) string {
	for _, s := range cve.Severities {
		if cvss3 == s || cvss2 == s {
			return string(s)
		}
	}
	return Placeholder
}

// PageWindow lists the page numbers shown around the current page.
func (p ListPage) PageWindow() []int {
	first := max(1, p.CurrentPage-p.PrevPageDispLimit)
	last := min(p.MaxPage, p.CurrentPage+p.NextPageDispLimit)
	var pages []int
	for i := first; i <= last; i++ {
		pages = append(pages, i)
	}
	return pages
}

func (p ListPage) HasPrev() bool {
	return p.CurrentPage > 1
}

func (p ListPage) HasNext() bool {
	return p.CurrentPage < p.MaxPage
}
