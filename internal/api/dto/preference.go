package dto

// PreferenceSaveDTO 用户偏好保存请求
type PreferenceSaveDTO struct {
	FavoriteSports   []string           `json:"favorite_sports" binding:"max=20"`
	FavoriteBetTypes []string           `json:"favorite_bet_types" binding:"max=20"`
	Weights          map[string]float64 `json:"weights"`
}

// PreferenceDTO 用户偏好
type PreferenceDTO struct {
	FavoriteSports   []string           `json:"favorite_sports"`
	FavoriteBetTypes []string           `json:"favorite_bet_types"`
	Weights          map[string]float64 `json:"weights"`
	UpdatedAt        string             `json:"updated_at"`
}
