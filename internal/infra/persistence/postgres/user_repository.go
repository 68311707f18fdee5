package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	domuser "example.com/exam-crud/internal/domain/user"
	"example.com/exam-crud/internal/infra/persistence/sqlquery"
)

type userRow struct {
	ID       int64  `db:"id"`
	Name     string `db:"nombre"`
	Email    string `db:"correo"`
	Mobile   string `db:"movil"`
	Age      int    `db:"edad"`
	Language string `db:"idioma"`
}

func (r userRow) domain() *domuser.User {
	return &domuser.User{ID: r.ID, Name: r.Name, Email: r.Email, Mobile: r.Mobile, Age: r.Age, Language: r.Language}
}

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	err := r.pool.QueryRow(ctx, `
        INSERT INTO usuarios (nombre, correo, movil, edad, idioma)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `, u.Name, u.Email, u.Mobile, u.Age, u.Language).Scan(&u.ID)
	if err != nil {
		if isDuplicate(err) {
			return nil, domuser.ErrEmailTaken
		}
		return nil, errors.Wrap(err, "insert user")
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domuser.User, error) {
	return r.getOne(ctx, "id", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domuser.User, error) {
	return r.getOne(ctx, "correo", email)
}

func (r *UserRepository) getOne(ctx context.Context, column string, value any) (*domuser.User, error) {
	query, args, err := sqlquery.Postgres.UserByColumn(column, value).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "get user")
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[userRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domuser.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "scan user")
	}
	return row.domain(), nil
}

func (r *UserRepository) List(ctx context.Context, filter domuser.ListFilter) ([]*domuser.User, error) {
	query, args, err := sqlquery.Postgres.UserList(filter).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[userRow])
	if err != nil {
		return nil, errors.Wrap(err, "scan users")
	}

	users := make([]*domuser.User, 0, len(collected))
	for _, row := range collected {
		users = append(users, row.domain())
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	tag, err := r.pool.Exec(ctx, `
        UPDATE usuarios
        SET nombre = $1, correo = $2, movil = $3, edad = $4, idioma = $5
        WHERE id = $6
    `, u.Name, u.Email, u.Mobile, u.Age, u.Language, u.ID)
	if err != nil {
		if isDuplicate(err) {
			return nil, domuser.ErrEmailTaken
		}
		return nil, errors.Wrap(err, "update user")
	}
	if tag.RowsAffected() == 0 {
		return nil, domuser.ErrUserNotFound
	}
	return u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete user")
	}
	if tag.RowsAffected() == 0 {
		return domuser.ErrUserNotFound
	}
	return nil
}
