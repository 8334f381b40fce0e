package mysql

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"placebook/internal/domain"
)

// UserRepo reads the identity rows owned by the auth collaborator; this core
// only references users by id and login.
type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	q, args, err := dialect.Insert(tUsers).Rows(goqu.Record{"login": u.Login}).ToSQL()
	if err != nil {
		return domain.User{}, err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return domain.User{}, err
	}
	u.ID, err = res.LastInsertId()
	return u, err
}

func (r *UserRepo) Get(ctx context.Context, id int64) (domain.User, error) {
	return r.getWhere(ctx, tUsers.Col("id").Eq(id))
}

func (r *UserRepo) GetByLogin(ctx context.Context, login string) (domain.User, error) {
	return r.getWhere(ctx, tUsers.Col("login").Eq(login))
}

func (r *UserRepo) getWhere(ctx context.Context, cond exp.Expression) (domain.User, error) {
	q, args, err := dialect.From(tUsers).Select("id", "login").Where(cond).ToSQL()
	if err != nil {
		return domain.User{}, err
	}
	var u domain.User
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&u.ID, &u.Login); err != nil {
		if err == sql.ErrNoRows {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}
