package model

type EnrollmentType string

const (
	EnrollmentFree EnrollmentType = "free"
	EnrollmentPaid EnrollmentType = "paid"
)

type AccessLevel string

const (
	AccessLimited AccessLevel = "limited"
	AccessFull    AccessLevel = "full"
)

// AccessTier 访问层级，由登录态和选课记录推导，从不落库
type AccessTier string

const (
	TierGuest   AccessTier = "guest"
	TierLimited AccessTier = "limited"
	TierFull    AccessTier = "full"
)

// DeriveAccessLevel 选课类型到访问级别的推导，只在写入时执行一次
func DeriveAccessLevel(t EnrollmentType) AccessLevel {
	if t == EnrollmentPaid {
		return AccessFull
	}
	return AccessLimited
}

// Enrollment 选课记录，(user_id, course_id) 全局唯一
// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	UserID             uint           `gorm:"not null;uniqueIndex:idx_user_course" json:"userId"`
	CourseID           uint           `gorm:"not null;uniqueIndex:idx_user_course" json:"courseId"`
	EnrollmentType     EnrollmentType `gorm:"size:10;not null;default:'free'" json:"enrollmentType"`
	AccessLevel        AccessLevel    `gorm:"size:10;not null;default:'limited'" json:"accessLevel"`
	ProgressPercentage float64        `gorm:"not null;default:0" json:"progressPercentage"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// Tier 读取路径直接透传已落库的 AccessLevel，不从 EnrollmentType 重算
func (e *Enrollment) Tier() AccessTier {
	if e.AccessLevel == AccessFull {
		return TierFull
	}
	return TierLimited
}
