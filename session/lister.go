// Package session drives the CVE list page: fetching pages for the current
// filter, saving comments and labels, and managing saved keywords.
package session

import (
	"log"
	"sync/atomic"

	"golang.org/x/xerrors"

	"github.com/cverooster/cverooster-client/cve"
	"github.com/cverooster/cverooster-client/filter"
	"github.com/cverooster/cverooster-client/viewmodel"
)

// ErrStaleResponse is returned for a list response that arrived after a
// newer fetch had been issued.
var ErrStaleResponse = xerrors.New("stale list response discarded")

type ListClient interface {
	List(conds filter.Conditions, page int) (cve.ListResult, error)
}

// Trigger describes the action that asked for a page.
type Trigger struct {
	// Reset is set by the reset-conditions button.
	Reset bool
	// Page is the page of a clicked pagination link, 0 for none.
	Page int
	// ActivePage is the page currently shown, 0 before the first render.
	ActivePage int
}

// Resolve returns the page to request.
func (t Trigger) Resolve() int {
	switch {
	case t.Reset:
		return 1
	case t.Page > 0:
		return t.Page
	case t.ActivePage > 0:
		return t.ActivePage
	}
	return 1
}

// Lister fetches list pages. Each Fetch takes a sequence number and only the
// response of the latest one is returned; older ones get ErrStaleResponse.
type Lister struct {
	client ListClient
	locale viewmodel.Locale
	seq    atomic.Uint64
}

func NewLister(client ListClient, locale viewmodel.Locale) *Lister {
	return &Lister{client: client, locale: locale}
}

func (l *Lister) Fetch(s filter.Snapshot, t Trigger) (viewmodel.ListPage, error) {
	seq := l.seq.Add(1)
	conds := filter.Collect(s)
	page := t.Resolve()

	res, err := l.client.List(conds, page)
	if latest := l.seq.Load(); seq != latest {
		log.Printf("discarded list response #%d, latest is #%d", seq, latest)
		return viewmodel.ListPage{}, ErrStaleResponse
	}
	if err != nil {
		return viewmodel.ListPage{}, xerrors.Errorf("list fetch failed: %w", err)
	}
	return viewmodel.Build(res, l.locale), nil
}

// FetchFailedMessage is what the page shows when Fetch fails.
func (l *Lister) FetchFailedMessage() string {
	return l.locale.Messages().FetchFailed
}
