package repository

import (
	"errors"

	"github.com/Mervedgan/uretim-takip-sistemi/internal/entity"
	"gorm.io/gorm"
)

type IssueRepository struct {
	db *gorm.DB
}

func NewIssueRepository(db *gorm.DB) *IssueRepository {
	return &IssueRepository{db: db}
}

func (r *IssueRepository) Create(issue *entity.Issue) error {
	return r.db.Create(issue).Error
}

func (r *IssueRepository) GetByID(id uint) (*entity.Issue, error) {
	var issue entity.Issue
	err := r.db.First(&issue, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &issue, nil
}

type IssueListParams struct {
	Status  string
	Type    string
	StageID *uint
}

func (r *IssueRepository) List(params IssueListParams) ([]entity.Issue, error) {
	query := r.db.Model(&entity.Issue{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Type != "" {
		query = query.Where("type = ?", params.Type)
	}
	if params.StageID != nil {
		query = query.Where("work_order_stage_id = ?", *params.StageID)
	}
	var issues []entity.Issue
	err := query.Order("created_at DESC").Find(&issues).Error
	return issues, err
}

func (r *IssueRepository) Save(issue *entity.Issue) error {
	return r.db.Save(issue).Error
}
