package server

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// FallbackMIMEType は未知の拡張子に使うMIMEタイプ
const FallbackMIMEType = "text/plain"

// MIMETable は拡張子（先頭のドットを含む小文字）からMIMEタイプへの対応表
// 起動時に一度だけ作成し、以降は読み取り専用で使う
type MIMETable map[string]string

// DefaultMIMETypes は標準の対応表を返す
func DefaultMIMETypes() MIMETable {
	return MIMETable{
		".html":  "text/html",
		".css":   "text/css",
		".js":    "text/javascript",
		".json":  "application/json",
		".png":   "image/png",
		".jpg":   "image/jpeg",
		".svg":   "image/svg+xml",
		".woff":  "font/woff",
		".woff2": "font/woff2",
		".ttf":   "font/ttf",
		".eot":   "application/vnd.ms-fontobject",
	}
}

// Lookup はファイルパスの拡張子からMIMEタイプを返す
// 表にない場合は FallbackMIMEType と false を返す
func (t MIMETable) Lookup(path string) (string, bool) {
	ext := strings.ToLower(extension(path))
	if mimeType, ok := t[ext]; ok {
		return mimeType, true
	}
	return FallbackMIMEType, false
}

// extension はファイル名の拡張子を返す
// ".html" のように先頭のドットしかないファイル名は拡張子なしとして扱う
func extension(path string) string {
	base := filepath.Base(path)
	i := strings.LastIndex(base, ".")
	if i <= 0 {
		return ""
	}
	return base[i:]
}

// sniffMIMEType はファイル内容からMIMEタイプを判定する
func sniffMIMEType(data []byte) string {
	return mimetype.Detect(data).String()
}
