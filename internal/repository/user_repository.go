package repository

import (
	"thinking_styles_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// UserFilter 管理端用户列表筛选条件
type UserFilter struct {
	Role     string
	Search   string
	IsActive *bool
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByIDs(ids []uint) ([]model.User, error) {
	var users []model.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.DB.Where("id IN ?", ids).Order("id asc").Find(&users).Error
	return users, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) List(filter UserFilter, page, limit int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	query := r.DB.Model(&model.User{})
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("(first_name LIKE ? OR last_name LIKE ? OR email LIKE ?)", like, like, like)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc, id desc").Offset(offset).Limit(limit).Find(&users).Error
	return users, total, err
}

// SetActive 通过 Update 写入，避免 default:true 吞掉 false
func (r *UserRepository) SetActive(id uint, active bool) error {
	res := r.DB.Model(&model.User{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(id uint, hash string) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).Update("password", hash).Error
}

func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn("last_login", time.Now()).
		Error
}

// LinkStudents 更新家长的 LinkedStudents 并写入关联表，已存在的关联忽略
func (r *UserRepository) LinkStudents(parent *model.User, studentIDs []uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(parent).Error; err != nil {
			return err
		}
		if len(studentIDs) == 0 {
			return nil
		}
		links := make([]model.ParentStudentLink, 0, len(studentIDs))
		for _, id := range studentIDs {
			links = append(links, model.ParentStudentLink{ParentID: parent.ID, StudentID: id})
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
	})
}

// ActiveParentIDsOf 关联了该学生且仍启用的家长
func (r *UserRepository) ActiveParentIDsOf(studentID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.ParentStudentLink{}).
		Joins("JOIN users ON users.id = parent_student_links.parent_id").
		Where("parent_student_links.student_id = ?", studentID).
		Where("users.role = ? AND users.is_active = ? AND users.deleted_at IS NULL", model.Parent, true).
		Order("parent_student_links.parent_id").
		Pluck("parent_student_links.parent_id", &ids).Error
	return ids, err
}
