package filter_test

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cverooster/cverooster-client/filter"
)

func TestFromHTML(t *testing.T) {
	f, err := os.Open("testdata/form.html")
	require.NoError(t, err)
	defer f.Close()

	got, err := filter.FromHTML(f)
	require.NoError(t, err)

	want := filter.Snapshot{
		Severity:  "HIGH",
		Year:      filter.All,
		AllLabels: false,
		Labels: []filter.Checkbox{
			{Value: "1", Checked: true},
			{Value: "2"},
			{Value: "3", Checked: true},
			{Value: "4"},
		},
		EnableUserKeyword: []filter.Radio{
			{Value: "0"},
			{Value: "1", Checked: true},
		},
		Keyword: "openssl",
	}
	assert.Equal(t, want, got)
	assert.Equal(t, []string{
		"severity=HIGH",
		"label=1",
		"label=3",
		"enable_user_keyword=1",
		"keyword=openssl",
	}, filter.Collect(got).Params())
}

func TestFromHTML_AllLabels(t *testing.T) {
	doc := `<select id="select_severity"><option value="ALL" selected>ALL</option></select>
<select id="select_year"><option value="ALL">ALL</option><option value="2024" selected>2024</option></select>
<input type="checkbox" id="label_all" class="check_label" value="ALL" checked>
<input type="checkbox" class="check_label" value="2" checked>
<input type="radio" class="check_enable_user_keyword" value="0" checked>
<input type="text" id="input_keyword">`

	got, err := filter.FromHTML(strings.NewReader(doc))
	require.NoError(t, err)
	assert.True(t, got.AllLabels)
	assert.Equal(t, []string{"year=2024", "enable_user_keyword=0"}, filter.Collect(got).Params())
}
