package model

import "time"

// GuestSession 游客会话，JSON序列化后存Redis，仅作记录用，不参与任何鉴权判定
type GuestSession struct {
	SessionID        string    `json:"sessionId"`
	CreatedAt        time.Time `json:"createdAt"`
	PreviewedCourses []uint    `json:"previewedCourses"`
}
