package repository

import (
	"coursehub_backend/internal/model"
	"database/sql"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

// Create 追加章节，OrderIndex 设为当前课程最大序号+1
func (r *ModuleRepository) Create(module *model.CourseModule) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var maxIndex sql.NullInt64
		err := tx.Model(&model.CourseModule{}).
			Where("course_id = ?", module.CourseID).
			Select("MAX(order_index)").
			Scan(&maxIndex).Error
		if err != nil {
			return err
		}

		if maxIndex.Valid {
			module.OrderIndex = int(maxIndex.Int64) + 1
		} else {
			module.OrderIndex = 0
		}

		return tx.Create(module).Error
	})
}

func (r *ModuleRepository) FindByID(id uint) (*model.CourseModule, error) {
	var module model.CourseModule
	err := r.DB.First(&module, id).Error
	return &module, err
}

func (r *ModuleRepository) FindByCourseID(courseID uint) ([]model.CourseModule, error) {
	var modules []model.CourseModule
	err := r.DB.Where("course_id = ?", courseID).
		Order("order_index ASC").
		Find(&modules).Error
	return modules, err
}

func (r *ModuleRepository) CountByCourseID(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.CourseModule{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	return count, err
}

func (r *ModuleRepository) Delete(id uint) error {
	return r.DB.Delete(&model.CourseModule{}, id).Error
}
