// Package storage 简历文件的外部存储抽象：上传后换回一个可长期引用的 URL。
package storage

import (
	"context"
	"io"
)

type ResumeStore interface {
	// Upload 写入一份简历，返回持久 URL
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}
