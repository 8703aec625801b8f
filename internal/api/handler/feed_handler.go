package handler

import (
	"Tipside/internal/pkg/response"
	"Tipside/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedSvc service.FeedService
}

func NewFeedHandler(feedSvc service.FeedService) *FeedHandler {
	return &FeedHandler{
		feedSvc: feedSvc,
	}
}

// GetFeed 拉取信息流, 游客可访问, 个性化流要求登录
func (s *FeedHandler) GetFeed(c *gin.Context) {
	userID := c.GetUint64("user_id")

	feedType := c.DefaultQuery("type", "community")
	cursor := c.Query("cursor")
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	debug := c.Query("debug") == "1"

	page, err := s.feedSvc.GetFeed(c.Request.Context(), userID, feedType, cursor, limit, debug)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}
