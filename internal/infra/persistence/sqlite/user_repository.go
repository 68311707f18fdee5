package sqlite

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	domuser "example.com/exam-crud/internal/domain/user"
	"example.com/exam-crud/internal/infra/persistence/sqlquery"
)

type userModel struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Name     string `gorm:"column:nombre;size:100;not null"`
	Email    string `gorm:"column:correo;size:255;not null;uniqueIndex"`
	Mobile   string `gorm:"column:movil;size:9;not null"`
	Age      int    `gorm:"column:edad;not null"`
	Language string `gorm:"column:idioma;size:50;not null"`
}

func (userModel) TableName() string {
	return "usuarios"
}

func (m userModel) domain() *domuser.User {
	return &domuser.User{ID: m.ID, Name: m.Name, Email: m.Email, Mobile: m.Mobile, Age: m.Age, Language: m.Language}
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	m := userModel{Name: u.Name, Email: u.Email, Mobile: u.Mobile, Age: u.Age, Language: u.Language}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isDuplicate(err) {
			return nil, domuser.ErrEmailTaken
		}
		return nil, errors.Wrap(err, "insert user")
	}
	u.ID = m.ID
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domuser.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domuser.User, error) {
	return r.first(ctx, "correo = ?", email)
}

func (r *UserRepository) first(ctx context.Context, cond string, arg any) (*domuser.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domuser.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "get user")
	}
	return m.domain(), nil
}

func (r *UserRepository) List(ctx context.Context, filter domuser.ListFilter) ([]*domuser.User, error) {
	q := r.db.WithContext(ctx).Model(&userModel{})
	if like, ok := sqlquery.LikePattern(filter.Search); ok {
		q = q.Where(`(CAST(id AS TEXT) LIKE ? ESCAPE '\' OR LOWER(nombre) LIKE ? ESCAPE '\' OR LOWER(correo) LIKE ? ESCAPE '\')`, like, like, like)
	}
	switch filter.Order {
	case domuser.OrderIDAsc:
		q = q.Order("id ASC")
	case domuser.OrderNameAsc:
		q = q.Order("LOWER(nombre) ASC").Order("id ASC")
	case domuser.OrderNameDesc:
		q = q.Order("LOWER(nombre) DESC").Order("id ASC")
	default:
		q = q.Order("id DESC")
	}

	var models []userModel
	if err := q.Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	users := make([]*domuser.User, 0, len(models))
	for _, m := range models {
		users = append(users, m.domain())
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	res := r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", u.ID).Updates(map[string]any{
		"nombre": u.Name,
		"correo": u.Email,
		"movil":  u.Mobile,
		"edad":   u.Age,
		"idioma": u.Language,
	})
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return nil, domuser.ErrEmailTaken
		}
		return nil, errors.Wrap(res.Error, "update user")
	}
	if res.RowsAffected == 0 {
		return nil, domuser.ErrUserNotFound
	}
	return u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&userModel{}, id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete user")
	}
	if res.RowsAffected == 0 {
		return domuser.ErrUserNotFound
	}
	return nil
}
