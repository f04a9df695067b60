package storage

import (
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/google/uuid"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// 画像をローカルディスクに保存する。
// 返すURLは /uploads/<uuid>-<元ファイル名> 形式。
type LocalImageStore struct {
	dir string
}

func NewLocalImageStore(dir string) *LocalImageStore {
	return &LocalImageStore{dir: dir}
}

func (s *LocalImageStore) Save(filename string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	//ファイル名の衝突とパストラバーサルを避ける
	name := uuid.NewString() + "-" + unsafeChars.ReplaceAllString(filepath.Base(filename), "")

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}

	return "/uploads/" + name, nil
}
