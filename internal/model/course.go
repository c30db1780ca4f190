package model

// swagger:model Course
type Course struct {
	BaseModel
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	CoverURL    string         `gorm:"size:255" json:"coverUrl"`
	IsPaid      bool           `gorm:"default:false" json:"isPaid"`
	Published   bool           `gorm:"default:true" json:"published"`
	CreatedBy   uint           `gorm:"index" json:"createdBy"`
	Modules     []CourseModule `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseModule 课程章节，OrderIndex 从0开始、按课程内排序
type CourseModule struct {
	BaseModel
	CourseID    uint   `gorm:"index;not null" json:"courseId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Content     string `gorm:"type:longtext" json:"content,omitempty"`
	OrderIndex  int    `gorm:"not null;default:0" json:"orderIndex"`
	Duration    int    `gorm:"default:0" json:"duration"` // 预计学习时长（分钟）
}

func (CourseModule) TableName() string {
	return "course_modules"
}
