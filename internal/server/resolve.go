package server

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrOutsideRoots は解決したパスが配信ルートの外にあることを示す
var ErrOutsideRoots = errors.New("配信ルートの外のパスです")

// Resolver はURLパスをファイルパスに解決する
type Resolver struct {
	baseDir   string
	parentDir string
	roots     []string
	realRoots []string // シンボリックリンクを解決した roots
	confine   bool
}

// NewResolver は新しいResolverを作成する
// baseDir は絶対パスであること
func NewResolver(baseDir string, confine bool) *Resolver {
	baseDir = filepath.Clean(baseDir)
	parentDir := filepath.Dir(baseDir)

	return &Resolver{
		baseDir:   baseDir,
		parentDir: parentDir,
		roots:     []string{baseDir, parentDir},
		realRoots: []string{realPath(baseDir), realPath(parentDir)},
		confine:   confine,
	}
}

// Resolve はURLパスをファイルパスに解決する
//
// 規則（上から順に評価）:
//   - "/" は "/index.html" として扱う
//   - "/../" で始まる場合は先頭3文字を除き、親ディレクトリから解決する
//   - "/dist/" で始まる場合は先頭の "/" を除き、親ディレクトリから解決する
//   - それ以外はベースディレクトリから解決する
func (r *Resolver) Resolve(urlPath string) (string, error) {
	if urlPath == "/" {
		urlPath = "/index.html"
	}

	var filePath string
	switch {
	case strings.HasPrefix(urlPath, "/../"):
		filePath = filepath.Join(r.parentDir, filepath.FromSlash(urlPath[3:]))
	case strings.HasPrefix(urlPath, "/dist/"):
		filePath = filepath.Join(r.parentDir, filepath.FromSlash(urlPath[1:]))
	default:
		filePath = filepath.Join(r.baseDir, filepath.FromSlash(urlPath))
	}

	if r.confine && !r.contains(filePath) {
		return "", ErrOutsideRoots
	}
	return filePath, nil
}

// contains はパスがいずれかの配信ルートの中にあるかを返す
// 存在するパスはシンボリックリンクを解決した実体でも確認する
func (r *Resolver) contains(filePath string) bool {
	if !within(r.roots, filePath) {
		return false
	}

	real, err := filepath.EvalSymlinks(filePath)
	if err != nil {
		// 存在しないパスはこの後の存在確認で404になる
		return true
	}
	return within(r.realRoots, real)
}

// within はパスがいずれかのルートと同じか、その中にあるかを返す
func within(roots []string, filePath string) bool {
	for _, root := range roots {
		rel, err := filepath.Rel(root, filePath)
		if err != nil {
			continue
		}
		if rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// realPath はシンボリックリンクを解決したパスを返す。解決できない場合はそのまま返す
func realPath(path string) string {
	if real, err := filepath.EvalSymlinks(path); err == nil {
		return real
	}
	return path
}
