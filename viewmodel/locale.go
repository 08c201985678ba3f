package viewmodel

import (
	"time"

	"golang.org/x/text/language"
)

// Locale selects the time zone dates are shown in and the catalog of the
// status messages. It is passed explicitly to every render.
type Locale struct {
	Tag      language.Tag
	Location *time.Location
}

// Messages are the user-visible literals of the list page.
type Messages struct {
	Title       string
	SaveButton  string
	Saved       string
	SaveFailed  string
	FetchFailed string
}

var (
	catalog = map[language.Tag]Messages{
		language.Japanese: {
			Title:       "CVE一覧",
			SaveButton:  "保存",
			Saved:       "保存しました。",
			SaveFailed:  "保存に失敗しました。",
			FetchFailed: "コンテンツの取得に失敗しました。",
		},
		language.English: {
			Title:       "CVE list",
			SaveButton:  "Save",
			Saved:       "Saved.",
			SaveFailed:  "Failed to save.",
			FetchFailed: "Failed to fetch contents.",
		},
	}
	supported = []language.Tag{language.Japanese, language.English}
	matcher   = language.NewMatcher(supported)
)

func Japanese() Locale {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		loc = time.FixedZone("JST", 9*60*60)
	}
	return Locale{Tag: language.Japanese, Location: loc}
}

// ParseLocale builds a Locale from a BCP 47 tag such as "ja" or "en-US" and
// an IANA time zone name. An empty zone means UTC.
func ParseLocale(tag, zone string) (Locale, error) {
	t, err := language.Parse(tag)
	if err != nil {
		return Locale{}, err
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return Locale{}, err
	}
	return Locale{Tag: t, Location: loc}, nil
}

// Messages returns the catalog closest to the locale's language, Japanese
// when nothing matches.
func (l Locale) Messages() Messages {
	_, i, conf := matcher.Match(l.Tag)
	if conf == language.No {
		return catalog[language.Japanese]
	}
	return catalog[supported[i]]
}

// Lang is the base language code, e.g. "ja".
func (l Locale) Lang() string {
	base, _ := l.Tag.Base()
	return base.String()
}

func (l Locale) location() *time.Location {
	if l.Location == nil {
		return time.UTC
	}
	return l.Location
}
