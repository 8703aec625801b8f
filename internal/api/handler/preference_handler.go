package handler

import (
	"Tipside/internal/api/dto"
	"Tipside/internal/pkg/response"
	"Tipside/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PreferenceHandler struct {
	prefSvc service.PreferenceService
}

func NewPreferenceHandler(prefSvc service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{
		prefSvc: prefSvc,
	}
}

// SavePreference 整体覆盖用户偏好
func (s *PreferenceHandler) SavePreference(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.PreferenceSaveDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.prefSvc.SavePreference(c.Request.Context(), userID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PreferenceHandler) GetPreference(c *gin.Context) {
	userID := c.GetUint64("user_id")

	pref, err := s.prefSvc.GetPreference(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pref)
}

// BlockUser 拉黑作者, 其帖子从信息流中消失
func (s *PreferenceHandler) BlockUser(c *gin.Context) {
	userID := c.GetUint64("user_id")

	blockedID, err := strconv.ParseUint(c.Param("blocked_id"), 10, 64)
	if err != nil || blockedID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.prefSvc.BlockUser(c.Request.Context(), userID, blockedID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PreferenceHandler) UnblockUser(c *gin.Context) {
	userID := c.GetUint64("user_id")

	blockedID, err := strconv.ParseUint(c.Param("blocked_id"), 10, 64)
	if err != nil || blockedID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.prefSvc.UnblockUser(c.Request.Context(), userID, blockedID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// HidePost 对自己隐藏某帖, 不影响其他用户
func (s *PreferenceHandler) HidePost(c *gin.Context) {
	userID := c.GetUint64("user_id")

	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.prefSvc.HidePostForUser(c.Request.Context(), userID, postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
