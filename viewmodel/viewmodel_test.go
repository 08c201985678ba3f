package viewmodel_test

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/kylelemons/godebug/pretty"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cverooster/cverooster-client/cve"
	"github.com/cverooster/cverooster-client/viewmodel"
)

func TestBuild(t *testing.T) {
	b, err := os.ReadFile("testdata/list.json")
	require.NoError(t, err)

	var res cve.ListResponse
	require.NoError(t, json.Unmarshal(b, &res))

	got := viewmodel.Build(res.Result, viewmodel.Japanese())

	gotJSON, err := json.Marshal(got)
	require.NoError(t, err)
	want, err := os.ReadFile("testdata/display.json")
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(gotJSON))
}

func TestNewDisplayRecord(t *testing.T) {
	in := cve.Record{
		CveID:            "CVE-2023-1111",
		CveDescription:   strings.Repeat("A", 151),
		PublishedDate:    lo.ToPtr("2023-05-01"),
		Cvss3Severity:    cve.SeverityHigh,
		Cvss2Severity:    cve.SeverityCritical,
		NvdContentExists: true,
		NvdURL:           "http://x",
	}
	want := viewmodel.DisplayRecord{
		CveID:            "CVE-2023-1111",
		DetailPageURL:    "/detail/CVE-2023-1111",
		NvdContentExists: true,
		NvdURL:           lo.ToPtr("http://x"),
		CveDescription:   strings.Repeat("A", 151) + "...",
		PublishedDate:    "2023/5/1",
		Severity:         "CRITICAL",
	}

	got := viewmodel.NewDisplayRecord(in, viewmodel.Japanese())
	if diff := pretty.Compare(got, want); diff != "" {
		t.Errorf("diff: (-got +want)\n%s", diff)
	}
}

func TestTruncateDescription(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "150 characters", in: strings.Repeat("a", 150), want: strings.Repeat("a", 150)},
		{name: "151 characters", in: strings.Repeat("a", 151), want: strings.Repeat("a", 151) + "..."},
		{name: "200 characters", in: strings.Repeat("a", 200), want: strings.Repeat("a", 151) + "..."},
		{name: "multibyte", in: strings.Repeat("脆", 152), want: strings.Repeat("脆", 151) + "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, viewmodel.TruncateDescription(tt.in))
		})
	}
}

func TestFormatPublishedDate(t *testing.T) {
	tests := []struct {
		name   string
		date   *string
		locale viewmodel.Locale
		want   string
	}{
		{name: "null", date: nil, locale: viewmodel.Japanese(), want: "-"},
		{name: "empty", date: lo.ToPtr(""), locale: viewmodel.Japanese(), want: "-"},
		{name: "date only", date: lo.ToPtr("2023-05-01"), locale: viewmodel.Japanese(), want: "2023/5/1"},
		{name: "no zero padding", date: lo.ToPtr("2021-12-09"), locale: viewmodel.Japanese(), want: "2021/12/9"},
		{name: "UTC evening is next day in Tokyo", date: lo.ToPtr("2023-04-30T20:00:00Z"), locale: viewmodel.Japanese(), want: "2023/5/1"},
		{name: "fractional seconds in UTC", date: lo.ToPtr("2023-04-30T20:00:00.123456Z"), locale: viewmodel.Japanese(), want: "2023/5/1"},
		{name: "UTC morning stays the same day", date: lo.ToPtr("2023-04-30T10:00:00Z"), locale: viewmodel.Japanese(), want: "2023/4/30"},
		{
			name:   "same instant in UTC",
			date:   lo.ToPtr("2023-04-30T20:00:00Z"),
			locale: viewmodel.Locale{Location: time.UTC},
			want:   "2023/4/30",
		},
		{name: "offset", date: lo.ToPtr("2023-05-01T00:30:00+09:00"), locale: viewmodel.Japanese(), want: "2023/5/1"},
		{name: "garbage", date: lo.ToPtr("not a date"), locale: viewmodel.Japanese(), want: "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, viewmodel.FormatPublishedDate(tt.date, tt.locale))
		})
	}
}

func TestResolveSeverity(t *testing.T) {
	tests := []struct {
		cvss3 cve.Severity
		cvss2 cve.Severity
		want  string
	}{
		{cvss3: cve.SeverityCritical, cvss2: cve.SeverityLow, want: "CRITICAL"},
		{cvss3: cve.SeverityLow, cvss2: cve.SeverityCritical, want: "CRITICAL"},
		{cvss3: cve.SeverityHigh, cvss2: cve.SeverityMedium, want: "HIGH"},
		{cvss3: cve.SeverityMedium, cvss2: cve.SeverityHigh, want: "HIGH"},
		{cvss3: cve.SeverityMedium, cvss2: "", want: "MEDIUM"},
		{cvss3: "", cvss2: cve.SeverityLow, want: "LOW"},
		{cvss3: "NONE", cvss2: cve.SeverityLow, want: "LOW"},
		{cvss3: "", cvss2: "", want: "-"},
		{cvss3: "NONE", cvss2: "unknown", want: "-"},
	}
	for _, tt := range tests {
		t.Run(string(tt.cvss3)+"/"+string(tt.cvss2), func(t *testing.T) {
			assert.Equal(t, tt.want, viewmodel.ResolveSeverity(tt.cvss3, tt.cvss2))
		})
	}
}

func TestNvdURLGating(t *testing.T) {
	r := cve.Record{CveID: "CVE-2023-2222", NvdURL: "https://nvd.nist.gov/vuln/detail/CVE-2023-2222"}
	got := viewmodel.NewDisplayRecord(r, viewmodel.Japanese())
	assert.False(t, got.NvdContentExists)
	assert.Nil(t, got.NvdURL)
}

func TestListPage_PageWindow(t *testing.T) {
	tests := []struct {
		name    string
		current int
		max     int
		want    []int
	}{
		{name: "first page", current: 1, max: 10, want: []int{1, 2, 3, 4}},
		{name: "middle", current: 5, max: 10, want: []int{2, 3, 4, 5, 6, 7, 8}},
		{name: "last page", current: 10, max: 10, want: []int{7, 8, 9, 10}},
		{name: "single page", current: 1, max: 1, want: []int{1}},
		{name: "no results", current: 1, max: 0, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := viewmodel.Build(cve.ListResult{CurrentPage: tt.current, MaxPage: tt.max}, viewmodel.Japanese())
			assert.Equal(t, tt.want, p.PageWindow())
		})
	}
}

func TestLocale_Messages(t *testing.T) {
	assert.Equal(t, "保存しました。", viewmodel.Japanese().Messages().Saved)

	en, err := viewmodel.ParseLocale("en-US", "UTC")
	require.NoError(t, err)
	assert.Equal(t, "Failed to save.", en.Messages().SaveFailed)
	assert.Equal(t, "en", en.Lang())

	fr, err := viewmodel.ParseLocale("fr", "")
	require.NoError(t, err)
	assert.Equal(t, "コンテンツの取得に失敗しました。", fr.Messages().FetchFailed)

	de, err := viewmodel.ParseLocale("de-DE", "")
	require.NoError(t, err)
	assert.Equal(t, "保存しました。", de.Messages().Saved)
}
