package service

import (
	"Courier/internal/api/dto"
	"Courier/internal/model"
	"Courier/internal/pkg/consts"
	"Courier/internal/pkg/redis"
	"Courier/internal/pkg/security"
	"Courier/internal/repository"
	"context"
	"strings"

	"github.com/jinzhu/copier"
)

type UserService interface {
	Register(ctx context.Context, regDTO *dto.RegisterDTO) (*dto.UserDTO, error)
	Login(ctx context.Context, loginDTO *dto.LoginDTO) (*dto.TokenDTO, error)
	Logout(ctx context.Context, token string) error
	GetByUsername(ctx context.Context, username string) (*dto.UserDTO, error)
	GetById(ctx context.Context, id uint64) (*dto.UserDTO, error)
	FindAll(ctx context.Context) ([]*dto.UserDTO, error)
	Update(ctx context.Context, username string, updDTO *dto.UpdateUserDTO) (*dto.UserDTO, error)
	Delete(ctx context.Context, username string) error
}

type UserServiceImpl struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

// Register 注册用户。用户名统一转小写，重名返回业务错误。
func (s *UserServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) (*dto.UserDTO, error) {
	username := strings.ToLower(regDTO.Username)

	findUser, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if findUser != nil {
		return nil, ErrUserUsernameExist
	}

	user := &model.User{}
	if err = copier.Copy(user, regDTO); err != nil {
		return nil, err
	}
	user.Username = username
	// 管理员身份只能由已有管理员授予，注册入口一律普通用户
	user.IsAdmin = false

	passwordHash, err := security.HashPassword(regDTO.Password)
	if err != nil {
		return nil, err
	}
	user.Password = passwordHash

	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return s.toUserDTO(user), nil
}

// Login 校验口令并签发 Token
func (s *UserServiceImpl) Login(ctx context.Context, loginDTO *dto.LoginDTO) (*dto.TokenDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, strings.ToLower(loginDTO.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err = security.CheckPasswordHash(loginDTO.Password, user.Password); err != nil {
		return nil, ErrPasswordIncorrect
	}

	token, err := security.GenerateToken(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return nil, err
	}
	return &dto.TokenDTO{Token: token, User: s.toUserDTO(user)}, nil
}

// Logout 吊销 Token：签名写入 Redis 黑名单，过期时间与 Token 一致
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return ErrParamInvalid
	}
	return redis.SetWithExpiration(ctx, consts.TokenRevokeKey+signature, "1", security.JWTExpirationTime)
}

func (s *UserServiceImpl) GetByUsername(ctx context.Context, username string) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.toUserDTO(user), nil
}

func (s *UserServiceImpl) GetById(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.toUserDTO(user), nil
}

func (s *UserServiceImpl) FindAll(ctx context.Context) ([]*dto.UserDTO, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.UserDTO, 0, len(users))
	for _, u := range users {
		res = append(res, s.toUserDTO(u))
	}
	return res, nil
}

// Update 更新资料。先用请求里携带的口令复核身份，口令不对直接拒绝。
func (s *UserServiceImpl) Update(ctx context.Context, username string, updDTO *dto.UpdateUserDTO) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err = security.CheckPasswordHash(updDTO.Password, user.Password); err != nil {
		return nil, ErrPasswordIncorrect
	}

	user.FirstName = updDTO.FirstName
	user.LastName = updDTO.LastName
	user.GmailAddress = updDTO.GmailAddress
	user.Bio = updDTO.Bio

	if err = s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return s.toUserDTO(user), nil
}

// Delete 删除用户并级联清理会话、消息、收藏与邮件记录
func (s *UserServiceImpl) Delete(ctx context.Context, username string) error {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.userRepo.DeleteUser(ctx, user.ID)
}

func (s *UserServiceImpl) toUserDTO(user *model.User) *dto.UserDTO {
	d := &dto.UserDTO{}
	_ = copier.Copy(d, user)
	return d
}
