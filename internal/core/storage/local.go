package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore 开发环境用的磁盘实现；BaseURL 指向静态文件服务前缀
type LocalStore struct {
	Dir     string
	BaseURL string
}

func NewLocal(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStore) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	// 随机前缀避免重名覆盖
	name := uuid.NewString() + "_" + filepath.Base(filename)
	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", err
	}
	return s.BaseURL + "/" + name, nil
}
