// Package mediatest 提供记录调用的图床实现，供测试使用。
package mediatest

import (
	"college-portal/app/server/media"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

var ErrInjected = errors.New("injected media failure")

type Store struct {
	mu      sync.Mutex
	seq     int
	objects map[string][]byte

	Uploads int      // Upload 被调用的次数
	Deletes []string // Delete 收到的句柄

	FailUpload bool
	FailDelete bool
}

func NewStore() *Store {
	return &Store{objects: make(map[string][]byte)}
}

func (s *Store) Upload(_ context.Context, upload *media.Upload) (*media.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Uploads++
	if s.FailUpload {
		return nil, ErrInjected
	}

	data, err := io.ReadAll(upload.Body)
	if err != nil {
		return nil, err
	}

	s.seq++
	ref := fmt.Sprintf("college-site/events/%d", s.seq)
	s.objects[ref] = data

	return &media.Object{
		URL: "https://img.example.edu/" + ref + ".png",
		Ref: ref,
	}, nil
}

func (s *Store) Delete(_ context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Deletes = append(s.Deletes, ref)
	if s.FailDelete {
		return ErrInjected
	}
	delete(s.objects, ref)

	return nil
}

// Has 判断文件是否仍在图床上
func (s *Store) Has(ref string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.objects[ref]
	return ok
}

var _ media.Store = (*Store)(nil)
