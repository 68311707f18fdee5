package mysql

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
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

func toUserRow(u *domuser.User) userRow {
	return userRow{ID: u.ID, Name: u.Name, Email: u.Email, Mobile: u.Mobile, Age: u.Age, Language: u.Language}
}

func (r userRow) domain() *domuser.User {
	return &domuser.User{ID: r.ID, Name: r.Name, Email: r.Email, Mobile: r.Mobile, Age: r.Age, Language: r.Language}
}

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	res, err := r.db.NamedExecContext(ctx, `
        INSERT INTO usuarios (nombre, correo, movil, edad, idioma)
        VALUES (:nombre, :correo, :movil, :edad, :idioma)
    `, toUserRow(u))
	if err != nil {
		if isDuplicate(err) {
			return nil, domuser.ErrEmailTaken
		}
		return nil, errors.Wrap(err, "insert user")
	}
	u.ID, err = res.LastInsertId()
	if err != nil {
		return nil, errors.Wrap(err, "read user id")
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
	query, args, err := sqlquery.MySQL.UserByColumn(column, value).ToSql()
	if err != nil {
		return nil, err
	}

	var row userRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domuser.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "get user")
	}
	return row.domain(), nil
}

func (r *UserRepository) List(ctx context.Context, filter domuser.ListFilter) ([]*domuser.User, error) {
	query, args, err := sqlquery.MySQL.UserList(filter).ToSql()
	if err != nil {
		return nil, err
	}

	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "list users")
	}

	users := make([]*domuser.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.domain())
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	_, err := r.db.NamedExecContext(ctx, `
        UPDATE usuarios
        SET nombre = :nombre, correo = :correo, movil = :movil, edad = :edad, idioma = :idioma
        WHERE id = :id
    `, toUserRow(u))
	if err != nil {
		if isDuplicate(err) {
			return nil, domuser.ErrEmailTaken
		}
		return nil, errors.Wrap(err, "update user")
	}
	return u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM usuarios WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete user")
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domuser.ErrUserNotFound
	}
	return nil
}
