package dto

// PostActionReq 点赞/分享通用请求
type PostActionReq struct {
	Action int `json:"action" binding:"required,oneof=1 2"` // 1:执行, 2:取消
}

// BoostStateDTO 助推状态
type BoostStateDTO struct {
	Boosted    bool `json:"boosted"`
	BoostCount int  `json:"boost_count"`
}

// ReportCreateDTO 举报请求
type ReportCreateDTO struct {
	Reason      string `json:"reason" binding:"required,max=32"`
	Description string `json:"description" binding:"max=512"`
}

// ReportResultDTO 举报结果
type ReportResultDTO struct {
	Accepted bool `json:"accepted"`
}
