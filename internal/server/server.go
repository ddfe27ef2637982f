package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"

	"sampleserver/internal/config"
)

// Server はHTTPサーバーを管理する構造体
type Server struct {
	config     *config.Config
	httpServer *http.Server
	engine     *gin.Engine
	handler    *StaticHandler

	mu       sync.Mutex
	listener net.Listener
}

// New は新しいServerインスタンスを作成する
func New(cfg *config.Config) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery(), accessLogger())

	resolver := NewResolver(cfg.Static.BaseDir, cfg.Static.Confine)
	handler := NewStaticHandler(resolver, DefaultMIMETypes(), cfg.Static.SniffUnknown)

	s := &Server{
		config:  cfg,
		engine:  engine,
		handler: handler,
		httpServer: &http.Server{
			Addr:         cfg.ServerAddress(),
			Handler:      engine,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
	s.setupRoutes()

	return s
}

// setupRoutes はHTTPルートを設定する
func (s *Server) setupRoutes() {
	// すべてのメソッドとパスをファイル配信で受ける
	// Any は標準の9メソッドだけなので、それ以外は NoRoute で受ける
	s.engine.Any("/*filepath", s.handler.ServeFile)
	s.engine.NoRoute(s.handler.ServeFile)
}

// Handler はHTTPハンドラを返す
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Addr はリッスン中のアドレスを返す。起動前は設定上のアドレスを返す
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.config.ServerAddress()
}

// Start はサーバーを起動する
func (s *Server) Start(ctx context.Context) error {
	// 先にバインドしてから起動メッセージを出す
	ln, err := net.Listen("tcp", s.config.ServerAddress())
	if err != nil {
		return fmt.Errorf("サーバーの起動に失敗: %w", err)
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	s.printBanner()

	// シャットダウン用のチャンネル
	shutdownCh := make(chan error, 1)

	// サーバーを別ゴルーチンで起動
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			shutdownCh <- fmt.Errorf("サーバーの実行に失敗: %w", err)
		}
	}()

	// シグナルハンドリング
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	// コンテキストかシグナルを待つ
	select {
	case <-ctx.Done():
		log.Println("コンテキストがキャンセルされました")
	case sig := <-sigCh:
		log.Printf("シグナルを受信しました: %v", sig)
	case err := <-shutdownCh:
		return err
	}

	// グレースフルシャットダウン
	return s.Shutdown()
}

// printBanner は起動メッセージを標準出力に表示する
func (s *Server) printBanner() {
	url := "http://" + s.Addr()
	if s.config.Server.Port != 0 {
		url = s.config.ListenURL()
	}

	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Printf("%s %s\n", green("Sample server running at"), cyan(url))
	fmt.Printf("Serving %s (and %s)\n", s.handler.resolver.baseDir, s.handler.resolver.parentDir)
	fmt.Printf("Open your browser and navigate to %s\n", cyan(url))
	fmt.Println("Press Ctrl+C to stop the server")
}

// Shutdown はサーバーをグレースフルにシャットダウンする
func (s *Server) Shutdown() error {
	log.Println("サーバーをシャットダウンしています...")

	timeout := s.config.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("サーバーのシャットダウンに失敗: %w", err)
	}

	log.Println("サーバーが正常にシャットダウンされました")
	return nil
}
