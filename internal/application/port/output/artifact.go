package output

import (
	"context"

	"article-crew/internal/domain/entity"
)

type ArtifactStore interface {
	Save(ctx context.Context, article entity.Article) (*entity.Artifact, error)
	Get(ctx context.Context, id string) (*entity.Artifact, error)
}
