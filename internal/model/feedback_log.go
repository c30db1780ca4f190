package model

// FeedbackLog AI反馈生成记录，用于历史查询和分析统计
// 注意：配额判定不读这张表，次数由前端自带（刷新即清零）
type FeedbackLog struct {
	BaseModel
	UserID   uint   `gorm:"index;not null" json:"userId"`
	CourseID uint   `gorm:"index;not null" json:"courseId"`
	ModuleID uint   `gorm:"index" json:"moduleId"`
	Prompt   string `gorm:"type:text" json:"prompt"`
	Feedback string `gorm:"type:longtext" json:"feedback"`
	Model    string `gorm:"size:100" json:"model"`
}

func (FeedbackLog) TableName() string {
	return "feedback_logs"
}
