package job

import (
	"context"
	"errors"
	"strings"
)

var ErrNotFound = errors.New("job not found")

// Filter narrows Find and FindOne. Zero-valued fields impose no constraint.
// Title and Skills are matched as case-insensitive literal substrings; a posting
// matches Skills when any one token matches.
type Filter struct {
	ID        string
	RefUserID string
	Title     string
	Skills    []string
}

type Repository interface {
	Insert(ctx context.Context, p Posting) (Posting, error)
	FindByID(ctx context.Context, id string) (Posting, error)
	FindOne(ctx context.Context, f Filter) (Posting, error)
	UpdateByID(ctx context.Context, id string, fields Fields) error
	DeleteByID(ctx context.Context, id string) (Posting, error)
	Find(ctx context.Context, f Filter) ([]Posting, error)
}

// Match reports whether p satisfies f using the same semantics as the document
// store query.
func (f Filter) Match(p Posting) bool {
	if f.ID != "" && p.IDHex() != f.ID {
		return false
	}
	if f.RefUserID != "" && p.RefUserID != f.RefUserID {
		return false
	}
	if f.Title != "" && !containsFold(p.Title, f.Title) {
		return false
	}

	tokens := make([]string, 0, len(f.Skills))
	for _, s := range f.Skills {
		if s = strings.TrimSpace(s); s != "" {
			tokens = append(tokens, s)
		}
	}
	if len(tokens) == 0 {
		return true
	}
	for _, item := range p.Skills.Items() {
		for _, tok := range tokens {
			if containsFold(item, tok) {
				return true
			}
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
