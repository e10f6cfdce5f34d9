// Package repotest 提供内存中的存储实现，供测试使用。
package repotest

import (
	"college-portal/app/server/models"
	"college-portal/app/server/repositories"
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// ErrInjected 是通过 Fail 注入的错误
var ErrInjected = errors.New("injected failure")

// Records 是 repositories.Records 的内存实现，只支持带有 models.Model 的记录
type Records[M repositories.Record] struct {
	mu      sync.Mutex
	nextID  uint
	records map[uint]M
	now     func() time.Time

	FailCreate bool
	FailDelete bool
}

func NewRecords[M repositories.Record]() *Records[M] {
	return &Records[M]{
		records: make(map[uint]M),
		now:     time.Now,
	}
}

// SetClock 替换创建时间的来源
func (r *Records[M]) SetClock(now func() time.Time) {
	r.now = now
}

func base(record any) *models.Model {
	switch v := record.(type) {
	case *models.Notice:
		return &v.Model
	case *models.Event:
		return &v.Model
	case *models.Query:
		return &v.Model
	}
	panic("unsupported record type")
}

func (r *Records[M]) List(_ context.Context, opts repositories.ListOptions) ([]M, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := make([]M, 0, len(r.records))
	for _, record := range r.records {
		list = append(list, record)
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := base(&list[i]), base(&list[j])
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID > b.ID
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	count := int64(len(list))
	if !opts.ShowAll {
		start := opts.Page * opts.Limit
		if start > len(list) {
			start = len(list)
		}
		end := start + opts.Limit
		if end > len(list) {
			end = len(list)
		}
		list = list[start:end]
	}

	return list, count, nil
}

func (r *Records[M]) Get(_ context.Context, id uint) (*M, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}

	return &record, nil
}

func (r *Records[M]) Create(_ context.Context, record *M) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailCreate {
		return ErrInjected
	}

	r.nextID++
	m := base(record)
	m.ID = r.nextID
	m.CreatedAt = r.now()
	m.UpdatedAt = m.CreatedAt
	r.records[m.ID] = *record

	return nil
}

func (r *Records[M]) Update(_ context.Context, record *M) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := base(record)
	if _, ok := r.records[m.ID]; !ok {
		return repositories.ErrNotFound
	}
	m.UpdatedAt = r.now()
	r.records[m.ID] = *record

	return nil
}

func (r *Records[M]) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailDelete {
		return ErrInjected
	}
	if _, ok := r.records[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.records, id)

	return nil
}

// Len 返回记录数量
func (r *Records[M]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.records)
}

// Accounts 是 repositories.Accounts 的内存实现
type Accounts struct {
	mu       sync.Mutex
	nextID   uint
	accounts map[uint]*models.Account
}

func NewAccounts() *Accounts {
	return &Accounts{accounts: make(map[uint]*models.Account)}
}

func (r *Accounts) FindByUsername(_ context.Context, username string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.accounts {
		if account.Username == username {
			copied := *account
			return &copied, nil
		}
	}

	return nil, repositories.ErrNotFound
}

func (r *Accounts) FindByID(_ context.Context, id uint) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *account

	return &copied, nil
}

func (r *Accounts) Create(_ context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.accounts {
		if existing.Username == account.Username {
			return errors.New("duplicate username")
		}
	}

	if err := account.BeforeSave(nil); err != nil {
		return err
	}

	r.nextID++
	account.ID = r.nextID
	copied := *account
	r.accounts[account.ID] = &copied

	return nil
}

func (r *Accounts) UpdatePassword(_ context.Context, id uint, password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return repositories.ErrNotFound
	}
	account.SetPassword(password)

	return account.BeforeSave(nil)
}

func (r *Accounts) DeleteByUsername(_ context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, account := range r.accounts {
		if account.Username == username {
			delete(r.accounts, id)
		}
	}

	return nil
}

func (r *Accounts) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.accounts)), nil
}

var (
	_ repositories.Records[models.Notice] = (*Records[models.Notice])(nil)
	_ repositories.Accounts               = (*Accounts)(nil)
)
