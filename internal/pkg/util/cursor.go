package util

import (
	"encoding/base64"
	"errors"
	"time"

	"github.com/goccy/go-json"
)

// FeedCursor 翻页游标, 仅在请求间往返, 服务端不持久化
// AsOf 钉住排序快照, 保证翻页期间新帖不会打乱已下发的页
type FeedCursor struct {
	Offset   int    `json:"offset"`
	FeedType string `json:"feed_type"`
	AsOf     int64  `json:"as_of"` // Unix 秒
}

var ErrCursorMalformed = errors.New("cursor malformed")

// EncodeCursor 将游标编码为 Base64 字符串
func EncodeCursor(c FeedCursor) string {
	b, _ := json.Marshal(c)
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeCursor 将前端传来的 Base64 字符串解码为游标
func DecodeCursor(cursor string) (*FeedCursor, error) {
	if cursor == "" {
		return nil, nil
	}
	b, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return nil, ErrCursorMalformed
	}
	var c FeedCursor
	if err = json.Unmarshal(b, &c); err != nil {
		return nil, ErrCursorMalformed
	}
	if c.Offset < 0 || c.AsOf <= 0 {
		return nil, ErrCursorMalformed
	}
	// 快照时刻不能超过当下, 否则伪造游标能把候选窗口推到未来
	if now := time.Now().Unix(); c.AsOf > now {
		c.AsOf = now
	}
	return &c, nil
}

// AsOfTime 游标快照时间
func (c *FeedCursor) AsOfTime() time.Time {
	return time.Unix(c.AsOf, 0)
}
