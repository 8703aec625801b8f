package scoring

import (
	"math"
	"time"
)

// 各互动类型对互动分的贡献权重
const (
	likeWeight    = 3.0
	commentWeight = 4.0
	shareWeight   = 5.0
	viewWeight    = 0.1
)

// Engagement 互动分: 按帖龄归一化后经饱和曲线映射到 [0,100]
// 年轻帖子不需要绝对量级也能拿到和老帖子相当的分数
// 负数计数(并发竞态产生)按 0 处理, 不向上传播
func Engagement(likes, comments, shares, views int64, age time.Duration, saturation float64) float64 {
	raw := likeWeight*clampNonNegative(likes) +
		commentWeight*clampNonNegative(comments) +
		shareWeight*clampNonNegative(shares) +
		viewWeight*clampNonNegative(views)

	ageHours := age.Hours()
	if ageHours < 1 {
		ageHours = 1
	}
	rate := raw / ageHours

	if saturation <= 0 {
		saturation = 1
	}
	return Clamp(100*rate/(rate+saturation), 0, 100)
}

// Freshness 新鲜度: 随帖龄指数衰减, halfLife 后恰好减半
// 永远在读取时派生, 不依赖后台任务刷新
func Freshness(createdAt, now time.Time, halfLife time.Duration) float64 {
	if halfLife <= 0 {
		return 100
	}
	age := now.Sub(createdAt)
	if age <= 0 {
		return 100
	}
	return Clamp(100*math.Exp2(-age.Hours()/halfLife.Hours()), 0, 100)
}

// AuthorReliability 作者可靠度: 未被举报帖子占比为基底
// accuracy 是可选的已结算预测命中率([0,1]), 有则各占一半
func AuthorReliability(totalPosts, reportedPosts int64, accuracy *float64) float64 {
	totalPosts = int64(clampNonNegative(totalPosts))
	reportedPosts = int64(clampNonNegative(reportedPosts))
	if reportedPosts > totalPosts {
		reportedPosts = totalPosts
	}

	// 无发帖历史的作者给中性分
	base := 50.0
	if totalPosts > 0 {
		base = 100 * float64(totalPosts-reportedPosts) / float64(totalPosts)
	}

	if accuracy == nil {
		return Clamp(base, 0, 100)
	}
	acc := Clamp(*accuracy, 0, 1) * 100
	return Clamp(base*0.5+acc*0.5, 0, 100)
}

// ContentQuality 内容质量: 发布/编辑时一次性评估的结构完整度启发式
func ContentQuality(analysisLen int, hasMedia, hasPrediction, hasOdds bool) float64 {
	score := 0.0

	// 分析文本长度, 200 字封顶拿满 40 分
	if analysisLen > 0 {
		score += 40 * math.Min(float64(analysisLen)/200, 1)
	}
	if hasMedia {
		score += 20
	}
	if hasPrediction {
		score += 25
	}
	if hasOdds {
		score += 15
	}

	return Clamp(score, 0, 100)
}

func clampNonNegative(v int64) float64 {
	if v < 0 {
		return 0
	}
	return float64(v)
}
