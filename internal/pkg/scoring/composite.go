package scoring

import (
	"math"
)

// Weights 四路子分数的合成权重, 要求总和为 1
type Weights struct {
	Engagement  float64
	Freshness   float64
	Reliability float64
	Quality     float64
}

// Composite 合成可见性分数, 全系统唯一的合成入口
// 任何信息流都不允许用别的公式重新推导
func Composite(engagement, freshness, reliability, quality, penalty float64, w Weights) float64 {
	score := w.Engagement*Clamp(engagement, 0, 100) +
		w.Freshness*Clamp(freshness, 0, 100) +
		w.Reliability*Clamp(reliability, 0, 100) +
		w.Quality*Clamp(quality, 0, 100) -
		Clamp(penalty, 0, 100)
	return Clamp(score, 0, 100)
}

// BoostBonus 助推加成: 平方根收益递减, 防止集体刷推顶帖
func BoostBonus(boostCount int, unit float64) float64 {
	if boostCount <= 0 || unit <= 0 {
		return 0
	}
	return unit * math.Sqrt(float64(boostCount))
}

// PreferenceBonus 个性化加成: 帖子标签与用户偏好的精确重合数量
// 无偏好用户恒为 0, 个性化流自然退化成社区流
func PreferenceBonus(sport, betType string, favoriteSports, favoriteBetTypes []string, unit float64) float64 {
	hits := 0
	for _, s := range favoriteSports {
		if s == sport {
			hits++
			break
		}
	}
	for _, b := range favoriteBetTypes {
		if b == betType {
			hits++
			break
		}
	}
	return float64(hits) * unit
}

// Clamp 把 v 收敛到 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
