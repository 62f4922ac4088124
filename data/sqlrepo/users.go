package sqlrepo

import (
	"context"

	"ticketing/data/db"
	"ticketing/data/db/dialect"
	dbsql "ticketing/data/db/sql"
	"ticketing/domain/entity"
	"ticketing/domain/user"
)

// UserRepository 用户 SQL 仓储
type UserRepository struct {
	*Repository[*user.User, user.UserID, user.Filter]
}

func NewUserRepository(database db.IDatabase) *UserRepository {
	return &UserRepository{&Repository[*user.User, user.UserID, user.Filter]{
		db: database,
		m: mapping[*user.User, user.Filter]{
			table:   "users",
			kind:    user.Kind,
			columns: []string{colID, "name", "email", "password", "created_at"},
			values: func(u *user.User) []any {
				return []any{u.ID().String(), u.Name(), u.Email(), u.Password(), dbTime(u.CreatedAt())}
			},
			scan:  scanUser,
			where: userWhere,
			sortColumns: map[string]string{
				user.SortName:      "name",
				user.SortEmail:     "email",
				user.SortCreatedAt: "created_at",
			},
			sortable:    user.SortableFields,
			defaultSort: user.DefaultSort,
		},
	}}
}

// FindByEmail 不区分大小写的邮箱完全匹配，返回最早插入的一个
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	found, err := r.list(ctx, func(q dbsql.ISelectBuilder) dbsql.ISelectBuilder {
		d := r.sql(ctx).Dialect()
		return q.Where(d.EqualFold("email"), email).
			OrderBy(d.QuoteIdentifier(colSeq) + " ASC").
			Limit(1)
	})
	if err != nil || len(found) == 0 {
		return nil, err
	}
	return found[0], nil
}

// FindByName 不区分大小写的名称完全匹配
func (r *UserRepository) FindByName(ctx context.Context, name string) ([]*user.User, error) {
	return r.list(ctx, func(q dbsql.ISelectBuilder) dbsql.ISelectBuilder {
		d := r.sql(ctx).Dialect()
		return q.Where(d.EqualFold("name"), name).OrderBy(d.QuoteIdentifier(colSeq) + " ASC")
	})
}

func scanUser(row scanner) (*user.User, error) {
	var (
		id, name, email, password string
		createdAt                 dbTime
	)
	if err := row.Scan(&id, &name, &email, &password, &createdAt); err != nil {
		return nil, err
	}
	userID, err := user.ParseUserID(id)
	if err != nil {
		return nil, err
	}

	u := user.New(user.Props{
		ID:        userID,
		Name:      name,
		Email:     email,
		Password:  password,
		CreatedAt: createdAt.Time(),
	})
	if !u.Validate() {
		return nil, entity.NewLoadEntityError(user.Kind, u.Notification())
	}
	return u, nil
}

func userWhere(q dbsql.ISelectBuilder, d dialect.Dialect, f *user.Filter) dbsql.ISelectBuilder {
	if f == nil {
		return q
	}
	if f.Name != "" {
		q = q.Where(d.ContainsFold("name"), f.Name)
	}
	if f.Email != "" {
		q = q.Where(d.ContainsFold("email"), f.Email)
	}
	return q
}

var _ user.IRepository = (*UserRepository)(nil)
