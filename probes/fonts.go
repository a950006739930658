package probes

import (
	"context"

	"github.com/use-agent/pageaudit/models"
)

// fontSource is the session slice exposing the page's loaded font-face set.
type fontSource interface {
	FontFaces(ctx context.Context) ([]models.FontFace, error)
}

// Fonts lists the page's web fonts and their load status. A page without
// web fonts yields an empty list, which is a valid ok result.
type Fonts struct {
	Source fontSource
}

func (p *Fonts) Name() string { return "fonts" }

func (p *Fonts) Run(ctx context.Context) (any, error) {
	faces, err := p.Source.FontFaces(ctx)
	if err != nil {
		return nil, err
	}
	if faces == nil {
		faces = []models.FontFace{}
	}
	return &models.FontsPayload{Fonts: faces}, nil
}
