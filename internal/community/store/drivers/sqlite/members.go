package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/aussiebroadwan/huddle/internal/community/domain"
	"github.com/aussiebroadwan/huddle/internal/community/store"
)

type membersRepo struct {
	q querier
}

const memberColumns = `u.id, u.first_name, u.last_name, u.email, u.user_type, u.is_active, cm.created_at, u.last_login`

func (r *membersRepo) GetMember(ctx context.Context, communityID, userID string) (domain.Member, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+memberColumns+`
		 FROM community_members cm
		 JOIN users u ON u.id = cm.user_id
		 WHERE cm.community_id = ? AND cm.user_id = ?`,
		communityID, userID)

	m, err := scanMember(row)
	if err != nil {
		return domain.Member{}, err
	}
	return m, nil
}

func (r *membersRepo) ListMembers(
	ctx context.Context,
	communityID string,
	f store.MemberFilter,
	offset, limit int,
) ([]domain.Member, int, error) {
	where, args := buildMemberFilter(communityID, f)

	var total int
	countQuery := `SELECT COUNT(*)
		 FROM community_members cm
		 JOIN users u ON u.id = cm.user_id
		 WHERE ` + where
	if err := r.q.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageQuery := `SELECT ` + memberColumns + `
		 FROM community_members cm
		 JOIN users u ON u.id = cm.user_id
		 WHERE ` + where + `
		 ORDER BY cm.created_at, u.id
		 LIMIT ? OFFSET ?`
	rows, err := r.q.QueryContext(ctx, pageQuery, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		m, err := scanMemberRows(rows)
		if err != nil {
			return nil, 0, err
		}
		members = append(members, m)
	}
	return members, total, rows.Err()
}

func (r *membersRepo) AddMember(ctx context.Context, communityID, userID string, joinedAt time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO community_members (community_id, user_id, created_at) VALUES (?, ?, ?)`,
		communityID, userID, joinedAt.UTC())
	return mapConstraint(err)
}

func (r *membersRepo) RemoveMember(ctx context.Context, communityID, userID string) error {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM community_members WHERE community_id = ? AND user_id = ?`,
		communityID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// buildMemberFilter assembles the WHERE clause shared by the count and page
// queries so both always see the same filtered set.
func buildMemberFilter(communityID string, f store.MemberFilter) (string, []any) {
	clauses := []string{"cm.community_id = ?"}
	args := []any{communityID}

	if f.Name != "" {
		pattern := "%" + strings.ToLower(f.Name) + "%"
		clauses = append(clauses, "(LOWER(u.first_name) LIKE ? OR LOWER(u.last_name) LIKE ?)")
		args = append(args, pattern, pattern)
	}
	if f.Email != "" {
		clauses = append(clauses, "LOWER(u.email) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Email)+"%")
	}
	if f.JoinedFrom != nil {
		clauses = append(clauses, "cm.created_at >= ?")
		args = append(args, f.JoinedFrom.UTC())
	}
	if f.JoinedTo != nil {
		clauses = append(clauses, "cm.created_at <= ?")
		args = append(args, f.JoinedTo.UTC())
	}

	return strings.Join(clauses, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row *sql.Row) (domain.Member, error) {
	m, err := scanMemberFrom(row)
	if err != nil {
		return domain.Member{}, mapNotFound(err)
	}
	return m, nil
}

func scanMemberRows(rows *sql.Rows) (domain.Member, error) {
	return scanMemberFrom(rows)
}

func scanMemberFrom(s rowScanner) (domain.Member, error) {
	var (
		m         domain.Member
		userType  string
		lastLogin sql.NullTime
	)
	err := s.Scan(&m.ID, &m.FirstName, &m.LastName, &m.Email, &userType,
		&m.IsActive, &m.CreatedAt, &lastLogin)
	if err != nil {
		return domain.Member{}, err
	}
	m.UserType = domain.ParseUserType(userType)
	m.LastLogin = mapNullTimePtr(lastLogin)
	return m, nil
}
