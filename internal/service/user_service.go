package service

import (
	"errors"
	"slices"
	"thinking_styles_backend/internal/model"
	"thinking_styles_backend/internal/repository"
	"thinking_styles_backend/internal/util"

	"gorm.io/gorm"
)

// UserService 管理端用户操作及家长-学生关联
type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{
		UserRepo: userRepo,
	}
}

// AdminUserUpdate 管理员可修改的字段，不含密码
// swagger:model AdminUserUpdate
type AdminUserUpdate struct {
	ProfileUpdate
	Role     *model.UserRole `json:"role"`
	IsActive *bool           `json:"isActive"`
}

func (s *UserService) ListUsers(filter repository.UserFilter, page, pageSize int) ([]model.User, int64, error) {
	return s.UserRepo.List(filter, page, pageSize)
}

func (s *UserService) GetUser(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetUserFor 本人、管理员、关联家长可查看
func (s *UserService) GetUserFor(requester *util.Claims, id uint) (*model.User, error) {
	if requester.UserID != id && requester.Role != model.Admin {
		visible, err := s.VisibleUserIDs(requester.UserID)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(visible, id) {
			return nil, util.ErrPermissionDenied
		}
	}
	return s.GetUser(id)
}

func (s *UserService) UpdateUser(id uint, update AdminUserUpdate) (*model.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}
	if update.Role != nil {
		if !update.Role.Valid() {
			return nil, util.ErrInvalidRole
		}
		user.Role = *update.Role
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}
	update.apply(user)
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Deactivate(id uint) error {
	err := s.UserRepo.SetActive(id, false)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrUserNotFound
	}
	return err
}

// LinkStudents 为家长追加关联学生，已存在的忽略
func (s *UserService) LinkStudents(parentID uint, studentIDs []uint) (*model.User, error) {
	parent, err := s.GetUser(parentID)
	if err != nil {
		return nil, err
	}
	if parent.Role != model.Parent {
		return nil, util.ErrInvalidRole
	}

	students, err := s.UserRepo.FindByIDs(studentIDs)
	if err != nil {
		return nil, err
	}
	found := make(map[uint]model.User, len(students))
	for _, st := range students {
		found[st.ID] = st
	}

	linked := append([]uint{}, parent.LinkedStudents...)
	requested := make([]uint, 0, len(studentIDs))
	for _, id := range studentIDs {
		if slices.Contains(requested, id) {
			continue
		}
		requested = append(requested, id)
		st, ok := found[id]
		if !ok {
			return nil, util.ErrUserNotFound
		}
		if st.Role != model.Student {
			return nil, util.ErrNotAStudent
		}
		if !slices.Contains(linked, id) {
			linked = append(linked, id)
		}
	}

	parent.LinkedStudents = linked
	if err := s.UserRepo.LinkStudents(parent, requested); err != nil {
		return nil, err
	}
	return parent, nil
}

// VisibleUserIDs 本人，家长额外包含关联学生
func (s *UserService) VisibleUserIDs(userID uint) ([]uint, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	ids := []uint{userID}
	if user.Role == model.Parent {
		for _, id := range user.LinkedStudents {
			if !slices.Contains(ids, id) {
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

// AudienceOf 学生本人及关联了该学生的启用家长
func (s *UserService) AudienceOf(studentID uint) ([]uint, error) {
	parents, err := s.UserRepo.ActiveParentIDsOf(studentID)
	if err != nil {
		return nil, err
	}
	return append([]uint{studentID}, parents...), nil
}
