package handler

import (
	"Tipside/internal/api/dto"
	"Tipside/internal/pkg/response"
	"Tipside/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PostActionHandler struct {
	actionSvc service.PostActionService
	boostSvc  service.BoostService
	reportSvc service.ReportService
}

func NewPostActionHandler(
	actionSvc service.PostActionService,
	boostSvc service.BoostService,
	reportSvc service.ReportService,
) *PostActionHandler {
	return &PostActionHandler{
		actionSvc: actionSvc,
		boostSvc:  boostSvc,
		reportSvc: reportSvc,
	}
}

// LikePost 点赞/取消点赞帖子
func (s *PostActionHandler) LikePost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")
	var req dto.PostActionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if req.Action == 1 {
		err = s.actionSvc.LikePost(c.Request.Context(), userID, postID)
	} else {
		err = s.actionSvc.CancelLikePost(c.Request.Context(), userID, postID)
	}

	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// SharePost 分享帖子
func (s *PostActionHandler) SharePost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	if err = s.actionSvc.SharePost(c.Request.Context(), userID, postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// TrackView 上报浏览, 游客也计数
func (s *PostActionHandler) TrackView(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	if err = s.actionSvc.TrackPostView(c.Request.Context(), userID, postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// BoostPost 助推帖子, 重复助推幂等
func (s *PostActionHandler) BoostPost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	state, err := s.boostSvc.Boost(c.Request.Context(), userID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}

// UnboostPost 撤销助推, 未助推时幂等
func (s *PostActionHandler) UnboostPost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	state, err := s.boostSvc.Unboost(c.Request.Context(), userID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}

// ReportPost 举报帖子, 同一用户重复举报不叠加惩罚
func (s *PostActionHandler) ReportPost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")
	var req dto.ReportCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	result, err := s.reportSvc.Report(c.Request.Context(), userID, postID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
