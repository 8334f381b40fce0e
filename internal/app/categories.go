package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"placebook/internal/domain"
)

// CategoryService fronts category CRUD with a read-through cache on Get.
type CategoryService struct {
	repo     domain.CategoryRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewCategoryService(r domain.CategoryRepository, c domain.Cache, ttl time.Duration) *CategoryService {
	return &CategoryService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *CategoryService) Save(ctx context.Context, c domain.Category) (domain.Category, error) {
	if c.ID != 0 {
		return domain.Category{}, domain.Validation("idexists", "a new category cannot already have an id")
	}
	if strings.TrimSpace(c.Name) == "" {
		return domain.Category{}, domain.Validation("namerequired", "category name is required")
	}
	return s.repo.Create(ctx, c)
}

func (s *CategoryService) Update(ctx context.Context, c domain.Category) (domain.Category, error) {
	if c.ID == 0 {
		return domain.Category{}, domain.Validation("idnull", "an existing category must have an id")
	}
	if strings.TrimSpace(c.Name) == "" {
		return domain.Category{}, domain.Validation("namerequired", "category name is required")
	}
	if _, err := s.repo.Get(ctx, c.ID); err != nil {
		if domain.IsNotFound(err) {
			return domain.Category{}, domain.NotFound("idnotfound", "category not found")
		}
		return domain.Category{}, err
	}
	out, err := s.repo.Update(ctx, c)
	if err != nil {
		return domain.Category{}, err
	}
	s.evict(ctx, out.ID)
	return out, nil
}

func (s *CategoryService) Get(ctx context.Context, id int64) (domain.Category, error) {
	key := categoryKey(id)
	var c domain.Category
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &c); ok {
			return c, nil
		}
	}
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Category{}, domain.NotFound("idnotfound", "category not found")
		}
		return domain.Category{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, c, int(s.cacheTTL.Seconds()))
	}
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.evict(ctx, id)
	return nil
}

func (s *CategoryService) Find(ctx context.Context, crit *domain.CategoryCriteria) ([]domain.Category, error) {
	return s.repo.FindByCriteria(ctx, crit)
}

func (s *CategoryService) FindPage(ctx context.Context, crit *domain.CategoryCriteria, pg domain.Page) (domain.Paged[domain.Category], error) {
	return s.repo.FindPageByCriteria(ctx, crit, pg)
}

func (s *CategoryService) Count(ctx context.Context, crit *domain.CategoryCriteria) (int64, error) {
	return s.repo.CountByCriteria(ctx, crit)
}

func (s *CategoryService) evict(ctx context.Context, id int64) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, categoryKey(id))
	}
}

func categoryKey(id int64) string { return fmt.Sprintf("category:%d", id) }
