package repository

import (
	"time"

	"aeducacao_backend/internal/model"
	"aeducacao_backend/internal/util"

	"gorm.io/gorm"
)

type UserProgressRepository struct {
	DB *gorm.DB
}

func NewUserProgressRepository(db *gorm.DB) *UserProgressRepository {
	return &UserProgressRepository{DB: db}
}

func (r *UserProgressRepository) FindByUserID(userID string) (*model.UserProgress, error) {
	var progress model.UserProgress
	err := r.DB.Where("user_id = ?", userID).First(&progress).Error
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// FindOrCreate 不存在时用默认级别和偏好建档
func (r *UserProgressRepository) FindOrCreate(userID string) (*model.UserProgress, error) {
	progress, err := r.FindByUserID(userID)
	if err == nil {
		return progress, nil
	}
	if err != util.ErrUserNotFound {
		return nil, err
	}

	now := time.Now()
	progress = &model.UserProgress{
		UserID:          userID,
		Level:           model.LevelIntermediario,
		PreferredFormat: model.FormatTexto,
		LastInteraction: &now,
	}
	if err := r.DB.Create(progress).Error; err != nil {
		return nil, err
	}
	return progress, nil
}

func (r *UserProgressRepository) Update(progress *model.UserProgress) error {
	return r.DB.Save(progress).Error
}

func (r *UserProgressRepository) Touch(userID string) error {
	return r.DB.Model(&model.UserProgress{}).
		Where("user_id = ?", userID).
		Update("last_interaction", time.Now()).Error
}

type InteractionRepository struct {
	DB *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) *InteractionRepository {
	return &InteractionRepository{DB: db}
}

func (r *InteractionRepository) Create(interaction *model.Interaction) error {
	return r.DB.Create(interaction).Error
}

func (r *InteractionRepository) FindByQueryID(queryID string) (*model.Interaction, error) {
	var interaction model.Interaction
	err := r.DB.Where("query_id = ?", queryID).First(&interaction).Error
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrInteractionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &interaction, nil
}

func (r *InteractionRepository) Update(interaction *model.Interaction) error {
	return r.DB.Save(interaction).Error
}

// FindRecentByUserID 按时间倒序取用户最近的交互
func (r *InteractionRepository) FindRecentByUserID(userID string, limit int) ([]model.Interaction, error) {
	var interactions []model.Interaction
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&interactions).Error
	if err != nil {
		return nil, err
	}
	return interactions, nil
}

// CollectByUserID 取用户全部交互用于缺口分析
func (r *InteractionRepository) CollectByUserID(userID string) ([]model.Interaction, error) {
	var interactions []model.Interaction
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&interactions).Error
	if err != nil {
		return nil, err
	}
	return interactions, nil
}
