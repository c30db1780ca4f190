package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	// 游客可预览的章节数（前N个，OrderIndex 0起算），预览页渲染与章节鉴权共用
	PreviewModuleCount = 3

	// limited 层级每次会话可用的AI反馈次数
	FreeAIFeedbackLimit = 2
)

// 游客会话相关
const (
	GuestSessionHeader    = "X-Guest-Session"
	GuestSessionKeyPrefix = "guest:session:"
)
