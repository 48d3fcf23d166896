package storerepo

import (
	"context"
	"errors"
	"strings"

	"commerce/internal/adapters/out/postgres/sqlerr"
	"commerce/internal/core/domain/model/store"
	"commerce/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormStoreRepository struct {
	db *gorm.DB
}

func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

func (r *GormStoreRepository) Add(ctx context.Context, s *store.Store) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := fromDomain(s)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if sqlerr.IsUniqueViolation(err) {
			return errs.NewValueIsInvalidErrorWithCause("store code", err)
		}
		return err
	}
	return nil
}

func (r *GormStoreRepository) Get(ctx context.Context, code string) (*store.Store, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, errs.NewValueIsRequiredError("store code")
	}

	var dto StoreDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("store", code)
		}
		return nil, err
	}
	return toDomain(dto)
}
