// Package main は静的ファイルサーバーコマンドの実装です
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"sampleserver/internal/config"
	"sampleserver/internal/server"
)

func main() {
	// コマンドラインオプション
	var (
		host       = flag.String("host", "", "サーバーのホスト (デフォルト: localhost)")
		port       = flag.Int("port", 0, "サーバーのポート (デフォルト: $PORT または 4000)")
		dir        = flag.String("dir", "", "ベースディレクトリ (デフォルト: カレントディレクトリ)")
		configFile = flag.String("config", "", "YAML設定ファイル")
		confine    = flag.Bool("confine", true, "配信をベースディレクトリと親ディレクトリに制限する")
		sniff      = flag.Bool("sniff", false, "未知の拡張子はファイル内容からMIMEタイプを判定する")
		help       = flag.Bool("help", false, "ヘルプを表示")
	)

	flag.Parse()

	// ヘルプ表示
	if *help {
		fmt.Println("Sample Server")
		fmt.Println()
		fmt.Println("使用方法:")
		fmt.Println("  server [オプション]")
		fmt.Println()
		fmt.Println("オプション:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	// 設定を読み込む
	var (
		cfg *config.Config
		err error
	)
	if *configFile != "" {
		cfg, err = config.LoadFile(*configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// コマンドラインオプションで設定を上書き
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dir != "" {
		abs, err := filepath.Abs(*dir)
		if err != nil {
			log.Fatalf("ベースディレクトリの解決に失敗しました: %v", err)
		}
		cfg.Static.BaseDir = abs
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "confine":
			cfg.Static.Confine = *confine
		case "sniff":
			cfg.Static.SniffUnknown = *sniff
		}
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("設定が不正です: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)

	// サーバーを作成
	srv := server.New(cfg)

	// サーバーを起動
	log.Printf("静的ファイルサーバーを起動します: %s", cfg.ServerAddress())
	if err := srv.Start(context.Background()); err != nil {
		log.Fatalf("サーバーの起動に失敗しました: %v", err)
	}
}
