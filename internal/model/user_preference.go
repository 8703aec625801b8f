package model

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

type UserPreference struct {
	UserID           uint64     `gorm:"primaryKey" json:"user_id"`
	FavoriteSports   StringList `gorm:"type:json;not null" json:"favorite_sports"`
	FavoriteBetTypes StringList `gorm:"type:json;not null" json:"favorite_bet_types"`
	Weights          WeightMap  `gorm:"type:json" json:"weights"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (UserPreference) TableName() string {
	return "user_preferences"
}

// StringList JSON 数组列
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}
	return json.Unmarshal(bytes, l)
}

// WeightMap 自定义偏好权重: map[key]weight
type WeightMap map[string]float64

func (m WeightMap) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *WeightMap) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}
	return json.Unmarshal(bytes, m)
}
