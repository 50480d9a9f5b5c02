package repository

import (
	"aeducacao_backend/internal/model"

	"gorm.io/gorm"
)

type DocumentRepository struct {
	DB *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{DB: db}
}

func (r *DocumentRepository) Upsert(doc *model.Document) error {
	var existing model.Document
	err := r.DB.Where("doc_id = ?", doc.DocID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.DB.Create(doc).Error
	}
	if err != nil {
		return err
	}

	doc.ID = existing.ID
	doc.CreatedAt = existing.CreatedAt
	return r.DB.Save(doc).Error
}

func (r *DocumentRepository) FindByDocID(docID string) (*model.Document, error) {
	var doc model.Document
	err := r.DB.Where("doc_id = ?", docID).First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Search 关键词匹配标题与正文，可按文档类型过滤
func (r *DocumentRepository) Search(query string, docType model.DocType, limit int) ([]model.Document, error) {
	var docs []model.Document
	term := "%" + query + "%"

	db := r.DB.Where("(title LIKE ? OR content LIKE ?)", term, term)
	if docType != "" {
		db = db.Where("doc_type = ?", docType)
	}

	err := db.Order("updated_at desc").Limit(limit).Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *DocumentRepository) CountByType() (map[model.DocType]int64, error) {
	type row struct {
		DocType model.DocType
		Total   int64
	}
	var rows []row
	err := r.DB.Model(&model.Document{}).
		Select("doc_type, COUNT(*) as total").
		Group("doc_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.DocType]int64, len(rows))
	for _, rw := range rows {
		counts[rw.DocType] = rw.Total
	}
	return counts, nil
}

func (r *DocumentRepository) Count() (int64, error) {
	var total int64
	err := r.DB.Model(&model.Document{}).Count(&total).Error
	return total, err
}
