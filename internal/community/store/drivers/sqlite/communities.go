package sqlite

import (
	"context"

	"github.com/aussiebroadwan/huddle/internal/community/domain"
)

type communitiesRepo struct {
	q querier
}

func (r *communitiesRepo) GetCommunityByID(ctx context.Context, id string) (domain.Community, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM communities WHERE id = ?`, id)

	var c domain.Community
	if err := row.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
		return domain.Community{}, mapNotFound(err)
	}
	return c, nil
}

func (r *communitiesRepo) CreateCommunity(ctx context.Context, c domain.Community) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO communities (id, name, created_at) VALUES (?, ?, ?)`,
		c.ID, c.Name, c.CreatedAt.UTC())
	return mapConstraint(err)
}
