package handler

import (
	"Courier/internal/api/dto"
	"Courier/internal/pkg/response"
	"Courier/internal/service"

	"github.com/gin-gonic/gin"
)

type FavouriteHandler struct {
	favouriteSvc service.FavouriteService
}

func NewFavouriteHandler(favouriteSvc service.FavouriteService) *FavouriteHandler {
	return &FavouriteHandler{favouriteSvc: favouriteSvc}
}

// Add 收藏只能以自己为发起方
func (s *FavouriteHandler) Add(c *gin.Context) {
	var req dto.FavouriteReq
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	if req.Sender != c.GetUint64("user_id") {
		response.Error(c, service.UnauthorizedError)
		return
	}
	fav, err := s.favouriteSvc.Add(c.Request.Context(), req.Sender, req.Receiver)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, fav)
}

func (s *FavouriteHandler) Delete(c *gin.Context) {
	var req dto.FavouriteReq
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	if req.Sender != c.GetUint64("user_id") {
		response.Error(c, service.UnauthorizedError)
		return
	}
	if err := s.favouriteSvc.Delete(c.Request.Context(), req.Sender, req.Receiver); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *FavouriteHandler) List(c *gin.Context) {
	favourites, err := s.favouriteSvc.ListFor(c.Request.Context(), c.GetUint64("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, favourites)
}
