package service

import (
	"context"

	"pricebook/internal/model"
	"pricebook/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// UpsertPolicy decides how an incoming product row is applied over an
// existing record. The import services only ever talk to this interface,
// so a conflict-detecting policy can be substituted without touching them.
type UpsertPolicy interface {
	Apply(ctx context.Context, tx pgx.Tx, product *model.Product) error
}

// lastWriteWins overwrites name, source and unit unconditionally. This is
// the designed tradeoff for single-writer imports: no conflict detection,
// no versioning.
type lastWriteWins struct {
	products repository.ProductRepository
	logger   zerolog.Logger
}

// NewLastWriteWinsPolicy creates the default upsert policy.
func NewLastWriteWinsPolicy(products repository.ProductRepository, logger zerolog.Logger) UpsertPolicy {
	return &lastWriteWins{
		products: products,
		logger:   logger.With().Str("policy", "last-write-wins").Logger(),
	}
}

func (p *lastWriteWins) Apply(ctx context.Context, tx pgx.Tx, product *model.Product) error {
	return p.products.Upsert(ctx, tx, product)
}
