// Package user 定义用户聚合及其查询规则
package user

import (
	"time"

	"ticketing/domain/entity"
	"ticketing/domain/identity"
	"ticketing/validation"
)

// Kind 聚合类型名
const Kind = "User"

// UserID 用户标识
type UserID struct {
	identity.ID
}

// NewUserID 生成新的用户标识
func NewUserID() UserID { return UserID{ID: identity.New()} }

// ParseUserID 解析用户标识
func ParseUserID(s string) (UserID, error) {
	id, err := identity.Parse(s)
	if err != nil {
		return UserID{}, err
	}
	return UserID{ID: id}, nil
}

// Props 直接构造用户所需的字段
type Props struct {
	ID        UserID
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
	Validator validation.IValidator[*User]
}

// CreateCommand 创建用户的命令
type CreateCommand struct {
	Name     string
	Email    string
	Password string
}

// User 用户聚合
type User struct {
	entity.AggregateRoot

	id        UserID
	name      string
	email     string
	password  string
	createdAt time.Time

	validator validation.IValidator[*User]
}

// New 直接构造用户，不执行校验
func New(props Props) *User {
	u := &User{
		id:        props.ID,
		name:      props.Name,
		email:     props.Email,
		password:  props.Password,
		createdAt: props.CreatedAt,
		validator: props.Validator,
	}
	if u.id.IsZero() {
		u.id = NewUserID()
	}
	if u.createdAt.IsZero() {
		u.createdAt = time.Now()
	}
	if u.validator == nil {
		u.validator = NewValidator()
	}
	return u
}

// Create 创建用户并校验默认字段组
func Create(cmd CreateCommand) *User {
	u := New(Props{
		Name:      cmd.Name,
		Email:     cmd.Email,
		Password:  cmd.Password,
		CreatedAt: time.Now(),
	})
	u.Validate()
	return u
}

// Validate 校验指定字段，未指定时校验 {name, email, password}
func (u *User) Validate(fields ...string) bool {
	return u.validator.Validate(u.Notification(), u, fields...)
}

func (u *User) GetID() UserID        { return u.id }
func (u *User) EntityKind() string   { return Kind }
func (u *User) ID() UserID           { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) Password() string     { return u.password }
func (u *User) CreatedAt() time.Time { return u.createdAt }

func (u *User) ChangeName(name string) {
	u.name = name
	u.Validate(FieldName)
}

func (u *User) ChangeEmail(email string) {
	u.email = email
	u.Validate(FieldEmail)
}

func (u *User) ChangePassword(password string) {
	u.password = password
	u.Validate(FieldPassword)
}

// Clone 返回独立副本
func (u *User) Clone() *User {
	cloned := *u
	cloned.AggregateRoot = u.CloneRoot()
	return &cloned
}
