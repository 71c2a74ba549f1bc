package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quizcourse_backend/internals/constants"
	authHelper "quizcourse_backend/internals/features/users/auth/helper"
	"quizcourse_backend/internals/features/users/user/dto"
	"quizcourse_backend/internals/features/users/user/model"
	helper "quizcourse_backend/internals/helpers"
)

const (
	MsgUserNotFound = "Usuário não encontrado."
	MsgEmailInUse   = "E-mail já cadastrado."
	MsgUserDeleted  = "Usuário removido com sucesso."

	MsgUserHasContent = "O usuário possui questões ou cursos. Remova-os antes de excluir a conta."
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

func applyUserFilters(db *gorm.DB, q dto.ListUsersQuery) *gorm.DB {
	if q.Role != "" {
		db = db.Where("role = ?", constants.NormalizeRole(q.Role))
	}
	if q.IsActive != nil {
		db = db.Where("is_active = ?", *q.IsActive)
	}
	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		db = db.Where("(LOWER(user_name) LIKE ? OR LOWER(email) LIKE ?)", like, like)
	}
	return db
}

func (s *UserService) List(ctx context.Context, q dto.ListUsersQuery, p helper.ListParams) ([]model.UserModel, int64, error) {
	base := applyUserFilters(s.DB.WithContext(ctx).Model(&model.UserModel{}), q).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.UserModel
	if err := p.Apply(base).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *UserService) FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error) {
	return helper.FindByID[model.UserModel](ctx, s.DB, id, MsgUserNotFound)
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*model.UserModel, error) {
	var u model.UserModel
	if err := s.DB.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Take(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// Create hashes the password and stores the user. Duplicate e-mail → 409.
func (s *UserService) Create(ctx context.Context, req dto.CreateUserRequest) (*model.UserModel, error) {
	hash, err := authHelper.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u := model.UserModel{
		UserName: req.UserName,
		Email:    req.Email,
		Password: hash,
		Role:     req.Role,
		IsActive: true,
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if err := s.CreateModel(ctx, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateModel inserts an already-built user (register, Google sign-in).
func (s *UserService) CreateModel(ctx context.Context, u *model.UserModel) error {
	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.Conflict(MsgEmailInUse)
		}
		return err
	}
	return nil
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*model.UserModel, error) {
	var hashed *string
	if req.Password != nil {
		h, err := authHelper.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		hashed = &h
	}
	if err := helper.UpdateByID[model.UserModel](ctx, s.DB, id, req.ToUpdates(hashed), MsgUserNotFound); err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, helper.Conflict(MsgEmailInUse)
		}
		return nil, err
	}
	return s.FindByID(ctx, id)
}

// SetAvatar stores the new avatar path and returns the previous one (may be empty).
func (s *UserService) SetAvatar(ctx context.Context, id uuid.UUID, url string) (*model.UserModel, string, error) {
	current, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	old := ""
	if current.AvatarURL != nil {
		old = *current.AvatarURL
	}
	if err := helper.UpdateByID[model.UserModel](ctx, s.DB, id, map[string]any{"avatar_url": url}, MsgUserNotFound); err != nil {
		return nil, "", err
	}
	updated, err := s.FindByID(ctx, id)
	return updated, old, err
}

// personalTables hold rows that belong to one user and go away with the account.
var personalTables = []struct{ table, column string }{
	{"answer_attempts", "attempt_user_id"},
	{"answers", "answer_user_id"},
	{"favorite_questions", "favorite_user_id"},
	{"progress", "progress_user_id"},
	{"enrollments", "enrollment_user_id"},
	{"reviews", "review_user_id"},
	{"notifications", "notification_user_id"},
}

// contentTables hold rows other users depend on; while any exist the account stays.
var contentTables = []struct{ table, column string }{
	{"questions", "question_author_id"},
	{"courses", "course_instructor_id"},
}

// Delete removes the account and its personal rows. Authors of questions or
// courses get 409 until that content is removed.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := helper.FindByID[model.UserModel](ctx, tx, id, MsgUserNotFound); err != nil {
			return err
		}
		for _, ct := range contentTables {
			var n int64
			if err := tx.Table(ct.table).Where(ct.column+" = ?", id).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return helper.Conflict(MsgUserHasContent)
			}
		}
		for _, pt := range personalTables {
			if err := tx.Exec("DELETE FROM "+pt.table+" WHERE "+pt.column+" = ?", id).Error; err != nil {
				return err
			}
		}
		return helper.DeleteByID[model.UserModel](ctx, tx, id, MsgUserNotFound)
	})
}
