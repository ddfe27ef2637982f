package server

import (
	"bytes"
	"log"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
)

// TestAccessLogger はアクセスログにリクエストIDが完全な形で出ることをテストする
func TestAccessLogger(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	flags := log.Flags()
	log.SetFlags(0)
	defer func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
	}()

	srv := newTestServer(t, testLayout(t), true, false)
	serve(t, srv, http.MethodGet, "/data.json")

	line := strings.TrimSpace(buf.String())
	fields := strings.Fields(line)
	if len(fields) < 4 {
		t.Fatalf("アクセスログの形式が不正です: %q", line)
	}

	id := strings.TrimSuffix(strings.TrimPrefix(fields[0], "["), "]")
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("リクエストIDが完全なUUIDではありません: %q: %v", id, err)
	}
	if fields[1] != http.MethodGet || fields[2] != "/data.json" || fields[3] != "200" {
		t.Errorf("アクセスログの内容が一致しません: %q", line)
	}
}
