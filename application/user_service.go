package application

import (
	"context"

	"ticketing/domain/repository"
	"ticketing/domain/user"
)

// CreateUserInput 创建用户输入
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

// ListUsersInput 用户列表输入
type ListUsersInput struct {
	PageInput

	Name  string
	Email string
}

// UserService 用户用例
type UserService struct {
	repo   user.IRepository
	tx     repository.ITransactor
	config ServiceConfig
}

func NewUserService(repo user.IRepository, tx repository.ITransactor, config ServiceConfig) *UserService {
	return &UserService{repo: repo, tx: tx, config: config.withDefaults("application.user")}
}

// CreateUser 创建用户
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*UserOutput, error) {
	u := user.Create(user.CreateCommand{Name: in.Name, Email: in.Email, Password: in.Password})
	if err := u.EnsureValid(); err != nil {
		return nil, err
	}

	err := s.tx.Run(ctx, repository.TxCreate, user.Kind, func(ctx context.Context) error {
		return s.repo.Insert(ctx, u)
	})
	if err != nil {
		return nil, err
	}

	out := ToUserOutput(u)
	return &out, nil
}

// FindUserByEmail 按邮箱查找用户，不区分大小写
func (s *UserService) FindUserByEmail(ctx context.Context, email string) (*UserOutput, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, repository.NewNotFoundError(email, user.Kind)
	}
	out := ToUserOutput(u)
	return &out, nil
}

// FindUsersByName 按名称查找用户
func (s *UserService) FindUsersByName(ctx context.Context, name string) ([]UserOutput, error) {
	users, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return mapAll(users, ToUserOutput), nil
}

// ListUsers 搜索用户
func (s *UserService) ListUsers(ctx context.Context, in ListUsersInput) (*PaginationOutput[UserOutput], error) {
	ctx, cancel := s.config.listContext(ctx)
	defer cancel()

	filter := &user.Filter{Name: in.Name, Email: in.Email}
	result, err := s.repo.Search(ctx, user.NewSearchParams(searchInput(in.PageInput, s.config.MaxPerPage, filter)))
	if err != nil {
		return nil, err
	}
	return NewPaginationOutput(result, ToUserOutput), nil
}
