package handler

import (
	"Courier/internal/api/dto"
	"Courier/internal/pkg/response"
	"Courier/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

func (s *UserHandler) FindAll(c *gin.Context) {
	users, err := s.userSvc.FindAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}

func (s *UserHandler) GetByUsername(c *gin.Context) {
	user, err := s.userSvc.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

func (s *UserHandler) GetById(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	user, err := s.userSvc.GetById(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

// GetSelf 当前登录用户的资料
func (s *UserHandler) GetSelf(c *gin.Context) {
	user, err := s.userSvc.GetByUsername(c.Request.Context(), c.GetString("username"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

// Update 只能更新自己的资料
func (s *UserHandler) Update(c *gin.Context) {
	var updDTO dto.UpdateUserDTO
	if err := c.ShouldBind(&updDTO); err != nil {
		response.Error(c, err)
		return
	}
	user, err := s.userSvc.Update(c.Request.Context(), c.GetString("username"), &updDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

// DeleteSelf 注销账号，级联清理全部关联数据
func (s *UserHandler) DeleteSelf(c *gin.Context) {
	if err := s.userSvc.Delete(c.Request.Context(), c.GetString("username")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Delete 管理员删除任意用户
func (s *UserHandler) Delete(c *gin.Context) {
	if err := s.userSvc.Delete(c.Request.Context(), c.Param("username")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
