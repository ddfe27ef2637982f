// Package server は、開発用の静的ファイルHTTPサーバーを提供します。
//
// このパッケージは、HTTPサーバーの起動と停止、リクエストパスから
// ファイルパスへの解決、拡張子によるMIMEタイプの判定、ファイルの配信を担当します。
//
// 責務:
//   - HTTPサーバーの起動と管理
//   - URLパスからファイルパスへの解決（ベースディレクトリと親ディレクトリ）
//   - 拡張子からのMIMEタイプ判定
//   - ファイル内容とCORSヘッダーの返却
//   - アクセスログの出力
//
// 仕様:
//   - HTTPエンジンには gin を使用（ルートは1つだけ）
//   - パスはベースディレクトリか親ディレクトリの中に制限できる
//   - グレースフルシャットダウンに対応
//   - リクエストごとにゴルーチンで処理され、リクエスト間で状態を共有しない
package server
