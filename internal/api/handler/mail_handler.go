package handler

import (
	"Courier/internal/api/dto"
	"Courier/internal/pkg/response"
	"Courier/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type MailHandler struct {
	mailSvc service.MailService
}

func NewMailHandler(mailSvc service.MailService) *MailHandler {
	return &MailHandler{mailSvc: mailSvc}
}

// Send 记录一封与外部联系人往来的邮件
func (s *MailHandler) Send(c *gin.Context) {
	var req dto.SendMailReq
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	mail, err := s.mailSvc.Send(c.Request.Context(), c.GetString("username"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, mail)
}

func (s *MailHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("mail_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	mail, err := s.mailSvc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, mail)
}

func (s *MailHandler) FindAll(c *gin.Context) {
	mails, err := s.mailSvc.FindAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, mails)
}

func (s *MailHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("mail_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err = s.mailSvc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *MailHandler) ListMailUsers(c *gin.Context) {
	mailUsers, err := s.mailSvc.ListMailUsers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, mailUsers)
}

func (s *MailHandler) GetMailUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("mail_user_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	mailUser, err := s.mailSvc.GetMailUser(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, mailUser)
}

func (s *MailHandler) AddMailUser(c *gin.Context) {
	var req dto.AddMailUserReq
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	mailUser, err := s.mailSvc.AddMailUser(c.Request.Context(), req.GmailAddress)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, mailUser)
}

func (s *MailHandler) DeleteMailUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("mail_user_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err = s.mailSvc.DeleteMailUser(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
