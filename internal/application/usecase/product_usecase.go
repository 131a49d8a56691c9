package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo. Las escrituras son solo para admin (lo valida el router).
type ProductUseCase struct {
	repo repository.ProductRepository
	now  func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, now: time.Now}
}

// Create crea un producto aprobado. Si no se envía portada se usa la primera imagen de la galería o el placeholder.
func (uc *ProductUseCase) Create(ctx context.Context, createdBy string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Currency == "" {
		in.Currency = entity.DefaultCurrency
	}
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Category:    in.Category,
		Currency:    strings.ToUpper(in.Currency),
		Stock:       in.Stock,
		Image:       strings.TrimSpace(in.Image),
		Images:      cleanImages(in.Images),
		InStock:     in.Stock > 0,
		IsApproved:  true,
		CreatedBy:   createdBy,
	}
	if in.InStock != nil {
		product.InStock = *in.InStock
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	applyCover(product)
	now := uc.now()
	product.CreatedAt = now
	product.UpdatedAt = now
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetByID obtiene un producto. ErrProductNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return ToProductResponse(product), nil
}

// List lista el catálogo paginado, más recientes primero.
func (uc *ProductUseCase) List(ctx context.Context, category string, limit, offset int) (*dto.ProductListResponse, error) {
	limit, offset = dto.NormalizePage(limit, offset)
	filter := repository.ProductFilter{Category: strings.TrimSpace(category)}
	if filter.Category != "" && !entity.ValidCategory(filter.Category) {
		return nil, fmt.Errorf("%w: categoría desconocida %q", domain.ErrInvalidInput, filter.Category)
	}
	list, err := uc.repo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Update aplica cambios parciales con las mismas validaciones que Create.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Currency != nil {
		product.Currency = strings.ToUpper(*in.Currency)
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
		product.InStock = product.Stock > 0
	}
	if in.Images != nil {
		product.Images = cleanImages(in.Images)
	}
	if in.Image != nil {
		product.Image = strings.TrimSpace(*in.Image)
	}
	if in.InStock != nil {
		product.InStock = *in.InStock
	}
	if in.IsApproved != nil {
		product.IsApproved = *in.IsApproved
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	applyCover(product)
	product.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// Delete elimina un producto. ErrProductNotFound si no existe.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func validateProduct(p *entity.Product) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	case len(p.Name) > 200:
		return fmt.Errorf("%w: name supera 200 caracteres", domain.ErrInvalidInput)
	case p.Description == "":
		return fmt.Errorf("%w: description es requerida", domain.ErrInvalidInput)
	case !entity.ValidCategory(p.Category):
		return fmt.Errorf("%w: categoría desconocida %q", domain.ErrInvalidInput, p.Category)
	case !entity.ValidCurrency(p.Currency):
		return fmt.Errorf("%w: moneda no soportada %q", domain.ErrInvalidInput, p.Currency)
	case p.Price.IsNegative():
		return fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
	case !entity.ValidPrice(p.Price):
		return fmt.Errorf("%w: price admite hasta %d decimales", domain.ErrInvalidInput, entity.MoneyScale)
	case p.Stock < 0:
		return fmt.Errorf("%w: stock no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}

func applyCover(p *entity.Product) {
	if p.Image != "" {
		return
	}
	if len(p.Images) > 0 {
		p.Image = p.Images[0]
		return
	}
	p.Image = entity.DefaultProductImage
}

func cleanImages(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ToProductResponse mapea la entidad a la salida HTTP.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Currency:    p.Currency,
		Stock:       p.Stock,
		Image:       p.Image,
		Images:      images,
		InStock:     p.InStock,
		IsApproved:  p.IsApproved,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
