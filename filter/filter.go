// Package filter turns the state of the CVE list filter form into the query
// parameters of the list API.
package filter

import (
	"net/url"
	"strconv"
)

// All is the selector value meaning "no restriction".
const All = "ALL"

const (
	paramSeverity          = "severity"
	paramYear              = "year"
	paramLabel             = "label"
	paramEnableUserKeyword = "enable_user_keyword"
	paramKeyword           = "keyword"
	paramPage              = "page"
)

type Checkbox struct {
	Value   string
	Checked bool
}

type Radio struct {
	Value   string
	Checked bool
}

// Snapshot is the state of the filter widgets at the moment a list request
// is issued.
type Snapshot struct {
	Severity          string
	Year              string
	AllLabels         bool
	Labels            []Checkbox
	EnableUserKeyword []Radio
	Keyword           string
}

// ClickLabel returns the snapshot after the label checkbox with value is
// clicked. Clicking All toggles it and clears every label; clicking a label
// toggles it and clears All.
func (s Snapshot) ClickLabel(value string) Snapshot {
	labels := make([]Checkbox, len(s.Labels))
	copy(labels, s.Labels)
	s.Labels = labels

	if value == All {
		s.AllLabels = !s.AllLabels
		for i := range s.Labels {
			s.Labels[i].Checked = false
		}
		return s
	}
	s.AllLabels = false
	for i := range s.Labels {
		if s.Labels[i].Value == value {
			s.Labels[i].Checked = !s.Labels[i].Checked
		}
	}
	return s
}

type Conditions struct {
	Severity          string
	Year              string
	Labels            []string
	EnableUserKeyword string
	Keyword           string
}

// Collect reads a snapshot into filter conditions. Selector values equal to
// All are dropped, labels are ignored while AllLabels is checked and the
// keyword is taken verbatim.
func Collect(s Snapshot) Conditions {
	c := Conditions{
		EnableUserKeyword: "0",
		Keyword:           s.Keyword,
	}
	if s.Severity != All {
		c.Severity = s.Severity
	}
	if s.Year != All {
		c.Year = s.Year
	}
	if !s.AllLabels {
		for _, l := range s.Labels {
			if l.Checked {
				c.Labels = append(c.Labels, l.Value)
			}
		}
	}
	for _, r := range s.EnableUserKeyword {
		if r.Checked {
			c.EnableUserKeyword = r.Value
			break
		}
	}
	return c
}

// Params returns the conditions as "key=value" pairs in the order the list
// API expects them. Values are not escaped.
func (c Conditions) Params() []string {
	var params []string
	for _, kv := range c.pairs() {
		params = append(params, kv[0]+"="+kv[1])
	}
	return params
}

// Values returns the conditions with the page number appended.
func (c Conditions) Values(page int) url.Values {
	v := url.Values{}
	for _, kv := range c.pairs() {
		v.Add(kv[0], kv[1])
	}
	v.Set(paramPage, strconv.Itoa(page))
	return v
}

// Query returns an escaped query string keeping the parameter order of
// Params, followed by the page number.
func (c Conditions) Query(page int) string {
	var q string
	for _, kv := range append(c.pairs(), [2]string{paramPage, strconv.Itoa(page)}) {
		if q != "" {
			q += "&"
		}
		q += url.QueryEscape(kv[0]) + "=" + url.QueryEscape(kv[1])
	}
	return q
}

func (c Conditions) pairs() [][2]string {
	var kvs [][2]string
	if c.Severity != "" {
		kvs = append(kvs, [2]string{paramSeverity, c.Severity})
	}
	if c.Year != "" {
		kvs = append(kvs, [2]string{paramYear, c.Year})
	}
	for _, l := range c.Labels {
		kvs = append(kvs, [2]string{paramLabel, l})
	}
	kvs = append(kvs, [2]string{paramEnableUserKeyword, c.EnableUserKeyword})
	if c.Keyword != "" {
		kvs = append(kvs, [2]string{paramKeyword, c.Keyword})
	}
	return kvs
}
