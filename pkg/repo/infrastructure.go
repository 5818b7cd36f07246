package repo

import (
	"context"

	"github.com/scienceol/osfarm/pkg/common/uuid"
	"github.com/scienceol/osfarm/pkg/repo/model"
)

type InfrastructureQuery struct {
	Page
	FarmID  *uuid.UUID
	FieldID *uuid.UUID
	Type    string
	Status  *model.InfrastructureStatus
	// WithBoundary keeps only assets that have a stored polygon.
	WithBoundary bool
}

type InfrastructureRepo interface {
	Transactor

	CreateInfrastructure(ctx context.Context, infra *model.Infrastructure) error
	GetInfrastructure(ctx context.Context, id uuid.UUID, preload bool) (*model.Infrastructure, error)
	UpdateInfrastructure(ctx context.Context, infra *model.Infrastructure) error
	DeleteInfrastructure(ctx context.Context, id uuid.UUID) error
	ListInfrastructures(ctx context.Context, q InfrastructureQuery) ([]*model.Infrastructure, int64, error)
}

type ActivityRepo interface {
	CreateActivity(ctx context.Context, a *model.Activity) error
	ListByInfrastructure(ctx context.Context, infraID uuid.UUID, page Page) ([]*model.Activity, int64, error)
	CountByInfrastructure(ctx context.Context, infraID uuid.UUID) (int64, error)
	// DetachInfrastructure nulls infrastructure_id on every activity of the
	// asset and returns how many rows changed.
	DetachInfrastructure(ctx context.Context, infraID uuid.UUID) (int64, error)
}
