package usecase

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// maxFeedItems tope de productos en el feed de catálogo.
const maxFeedItems = 1000

// CatalogFeedBuilder puerto para serializar el catálogo (implementado en infrastructure/feed).
type CatalogFeedBuilder interface {
	Build(products []*entity.Product) ([]byte, error)
}

// FeedUseCase genera el feed público de productos aprobados.
type FeedUseCase struct {
	repo    repository.ProductRepository
	builder CatalogFeedBuilder
}

// NewFeedUseCase construye el caso de uso.
func NewFeedUseCase(repo repository.ProductRepository, builder CatalogFeedBuilder) *FeedUseCase {
	return &FeedUseCase{repo: repo, builder: builder}
}

// Catalog devuelve el documento del feed.
func (uc *FeedUseCase) Catalog(ctx context.Context) ([]byte, error) {
	products, err := uc.repo.List(ctx, repository.ProductFilter{OnlyApproved: true}, maxFeedItems, 0)
	if err != nil {
		return nil, err
	}
	return uc.builder.Build(products)
}
