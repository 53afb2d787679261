package interfaces

import (
	"context"
	"remodel_calc/internal/domain/entities"
)

// IProjectRepository abstracts DynamoDB persistence for Project.
//
// Lookups return a zero-value Project (empty ID) when nothing matches.
// Update and Delete only touch a project owned by p.UserID / userID, so a
// foreign project behaves exactly like a missing one.

type IProjectRepository interface {
	Create(ctx context.Context, p entities.Project) (entities.Project, error)
	GetByID(ctx context.Context, id string) (entities.Project, error)
	ListByUserID(ctx context.Context, userID string) ([]entities.Project, error)
	Update(ctx context.Context, p entities.Project) (entities.Project, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
}
