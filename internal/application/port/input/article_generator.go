package input

import (
	"context"

	"article-crew/internal/domain/entity"
)

// ArticleGenerator runs one generation and reports its outcome as a value.
// Implementations must not panic on external failures.
type ArticleGenerator interface {
	Generate(ctx context.Context, req entity.ArticleRequest) entity.Outcome
}
