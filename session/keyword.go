package session

import (
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
	"golang.org/x/xerrors"
)

type KeywordClient interface {
	SaveKeyword(keyword string) error
	DeleteKeyword(keyword string) error
}

// KeywordPanel keeps the list of keywords the user has registered in sync
// with the API. The list only changes after a successful call.
type KeywordPanel struct {
	client   KeywordClient
	keywords []string
}

func NewKeywordPanel(client KeywordClient, registered []string) *KeywordPanel {
	return &KeywordPanel{client: client, keywords: lo.Uniq(registered)}
}

func (p *KeywordPanel) Keywords() []string {
	return slices.Clone(p.keywords)
}

func (p *KeywordPanel) Save(keyword string) error {
	if err := p.client.SaveKeyword(keyword); err != nil {
		return xerrors.Errorf("failed to register %q: %w", keyword, err)
	}
	if !slices.Contains(p.keywords, keyword) {
		p.keywords = append(p.keywords, keyword)
	}
	return nil
}

func (p *KeywordPanel) Delete(keyword string) error {
	if err := p.client.DeleteKeyword(keyword); err != nil {
		return xerrors.Errorf("failed to unregister %q: %w", keyword, err)
	}
	if i := slices.Index(p.keywords, keyword); i >= 0 {
		p.keywords = slices.Delete(p.keywords, i, i+1)
	}
	return nil
}
