package server

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// エラーレスポンスの本文
const (
	notFoundBody      = "File not found"
	internalErrorBody = "Internal server error"
)

// StaticHandler はリクエストパスに対応するファイルを返すハンドラ
type StaticHandler struct {
	resolver     *Resolver
	mimeTypes    MIMETable
	sniffUnknown bool
}

// NewStaticHandler は新しいStaticHandlerを作成する
func NewStaticHandler(resolver *Resolver, mimeTypes MIMETable, sniffUnknown bool) *StaticHandler {
	return &StaticHandler{
		resolver:     resolver,
		mimeTypes:    mimeTypes,
		sniffUnknown: sniffUnknown,
	}
}

// ServeFile はファイル配信エンドポイントの実装
// メソッドは区別せず、すべて同じように扱う
func (h *StaticHandler) ServeFile(c *gin.Context) {
	filePath, err := h.resolver.Resolve(c.Request.URL.Path)
	if err != nil {
		if errors.Is(err, ErrOutsideRoots) {
			log.Printf("配信ルート外へのアクセスを拒否しました: %s", c.Request.URL.Path)
		}
		writeText(c, http.StatusNotFound, notFoundBody)
		return
	}

	// ファイルの存在確認
	if _, err := os.Stat(filePath); err != nil {
		writeText(c, http.StatusNotFound, notFoundBody)
		return
	}

	mimeType, known := h.mimeTypes.Lookup(filePath)

	// ファイルを読み込む
	data, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("ファイルの読み込みに失敗しました: %s: %v", filePath, err)
		writeText(c, http.StatusInternalServerError, internalErrorBody)
		return
	}

	if !known && h.sniffUnknown {
		mimeType = sniffMIMEType(data)
	}

	// CORSヘッダーを設定
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type")

	c.Data(http.StatusOK, mimeType, data)
}

// ヘルパー関数

// writeText はプレーンテキストのエラーレスポンスを返す
func writeText(c *gin.Context, status int, body string) {
	c.Data(status, FallbackMIMEType, []byte(body))
}
