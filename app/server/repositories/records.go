package repositories

import (
	"context"
	"errors"
	"fmt"
	"gorm.io/gorm"
)

// GormRecords 是 Records 的 gorm 实现
type GormRecords[M Record] struct {
	db *gorm.DB
}

func NewRecords[M Record](db *gorm.DB) *GormRecords[M] {
	return &GormRecords[M]{db: db}
}

func (r *GormRecords[M]) List(ctx context.Context, opts ListOptions) ([]M, int64, error) {
	var (
		records []M
		count   int64
	)

	queryBase := r.db.WithContext(ctx).Model(new(M)).Order("created_at DESC, id DESC")
	if !opts.ShowAll {
		queryBase = queryBase.Limit(opts.Limit).Offset(opts.Page * opts.Limit)
	}

	if err := queryBase.Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("list: %w", err)
	}
	if err := r.db.WithContext(ctx).Model(new(M)).Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}

	return records, count, nil
}

func (r *GormRecords[M]) Get(ctx context.Context, id uint) (*M, error) {
	var record M
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %d: %w", id, err)
	}

	return &record, nil
}

func (r *GormRecords[M]) Create(ctx context.Context, record *M) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("create: %w", err)
	}

	return nil
}

// Update 写回记录的全部字段，调用方负责先读出记录再合并修改
func (r *GormRecords[M]) Update(ctx context.Context, record *M) error {
	res := r.db.WithContext(ctx).Model(record).Select("*").Omit("id", "created_at").Updates(record)
	if res.Error != nil {
		return fmt.Errorf("update: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *GormRecords[M]) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(new(M), id)
	if res.Error != nil {
		return fmt.Errorf("delete %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
