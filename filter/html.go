package filter

import (
	"io"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/xerrors"
)

const (
	selectorSeverity          = "select#select_severity"
	selectorYear              = "select#select_year"
	selectorAllLabels         = "input[type='checkbox']#label_all"
	selectorLabels            = "input[type='checkbox'].check_label"
	selectorEnableUserKeyword = "input[type='radio'].check_enable_user_keyword"
	selectorKeyword           = "input[type='text']#input_keyword"
)

// FromHTML reads a Snapshot out of an HTML document holding the filter form.
func FromHTML(r io.Reader) (Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Snapshot{}, xerrors.Errorf("failed to parse the filter form: %w", err)
	}

	s := Snapshot{
		Severity:  selectValue(doc.Find(selectorSeverity)),
		Year:      selectValue(doc.Find(selectorYear)),
		AllLabels: isChecked(doc.Find(selectorAllLabels)),
		Keyword:   doc.Find(selectorKeyword).First().AttrOr("value", ""),
	}

	doc.Find(selectorLabels).Each(func(_ int, sel *goquery.Selection) {
		// label_all carries the check_label class too
		if sel.AttrOr("id", "") == "label_all" {
			return
		}
		s.Labels = append(s.Labels, Checkbox{Value: sel.AttrOr("value", "on"), Checked: isChecked(sel)})
	})
	doc.Find(selectorEnableUserKeyword).Each(func(_ int, sel *goquery.Selection) {
		s.EnableUserKeyword = append(s.EnableUserKeyword, Radio{Value: sel.AttrOr("value", "on"), Checked: isChecked(sel)})
	})

	return s, nil
}

func isChecked(sel *goquery.Selection) bool {
	_, ok := sel.Attr("checked")
	return ok
}

// selectValue mimics what a browser reports for a single select: the selected
// option, or the first one when nothing is selected.
func selectValue(sel *goquery.Selection) string {
	options := sel.First().Find("option")
	opt := options.Filter("[selected]").First()
	if opt.Length() == 0 {
		opt = options.First()
	}
	if opt.Length() == 0 {
		return ""
	}
	if v, ok := opt.Attr("value"); ok {
		return v
	}
	return opt.Text()
}
