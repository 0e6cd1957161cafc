// Package repository provides read-only access to goalkeeper and opponent
// records.
package repository

import (
	"context"

	"github.com/okian/goalkeep/internal/domain/model"
)

// Repository looks up reference records. Implementations are safe for
// concurrent use and never mutate what they return.
type Repository interface {
	// Goalkeeper returns one goalkeeper or ErrNotFound.
	Goalkeeper(ctx context.Context, id string) (model.Goalkeeper, error)
	// Goalkeepers returns the roster in stable roster order.
	Goalkeepers(ctx context.Context) ([]model.Goalkeeper, error)
	// Opponent returns one opponent or ErrNotFound.
	Opponent(ctx context.Context, id string) (model.Opponent, error)
	// Opponents returns all opponents ordered by league ranking.
	Opponents(ctx context.Context) ([]model.Opponent, error)
}
