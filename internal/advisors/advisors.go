package advisors

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/serviteca/serviteca-backend/pkg/db"
	"github.com/serviteca/serviteca-backend/pkg/db/models"
	pkgerrors "github.com/serviteca/serviteca-backend/pkg/errors"
	"gorm.io/gorm"
)

// CreateInput carries the fields required to register a sales advisor.
type CreateInput struct {
	Name       string
	DocumentID string
	Email      *string
}

// Repository defines persistence operations for advisors.
type Repository interface {
	Create(ctx context.Context, advisor *models.Advisor) (*models.Advisor, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Advisor, error)
	List(ctx context.Context) ([]models.Advisor, error)
}

// Service exposes advisor registration and lookup.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Advisor, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Advisor, error)
	List(ctx context.Context) ([]models.Advisor, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an advisor repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, advisor *models.Advisor) (*models.Advisor, error) {
	if err := r.db.WithContext(ctx).Create(advisor).Error; err != nil {
		return nil, err
	}
	return advisor, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Advisor, error) {
	var advisor models.Advisor
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&advisor).Error; err != nil {
		return nil, err
	}
	return &advisor, nil
}

func (r *repository) List(ctx context.Context) ([]models.Advisor, error) {
	var list []models.Advisor
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

type service struct {
	repo Repository
}

// NewService builds an advisor service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("advisors repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Advisor, error) {
	name := strings.TrimSpace(input.Name)
	document := strings.TrimSpace(input.DocumentID)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if document == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "document id is required")
	}

	advisor := &models.Advisor{
		ID:         uuid.New(),
		Name:       name,
		DocumentID: document,
		Email:      input.Email,
	}
	if _, err := s.repo.Create(ctx, advisor); err != nil {
		if db.IsUniqueViolation(err, "idx_advisors_document_id") {
			return nil, pkgerrors.New(pkgerrors.CodeDuplicateKey,
				fmt.Sprintf("an advisor with document %s already exists", document))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create advisor")
	}
	return advisor, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Advisor, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "advisor id required")
	}
	advisor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "advisor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load advisor")
	}
	return advisor, nil
}

func (s *service) List(ctx context.Context) ([]models.Advisor, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list advisors")
	}
	return list, nil
}
