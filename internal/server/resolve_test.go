package server

import (
	"errors"
	"path/filepath"
	"testing"
)

// TestResolve はURLパスの解決をテストする
func TestResolve(t *testing.T) {
	parent := filepath.FromSlash("/work/project")
	base := filepath.Join(parent, "sample")

	testCases := []struct {
		name    string
		urlPath string
		want    string
	}{
		{"ルート", "/", filepath.Join(base, "index.html")},
		{"ベースディレクトリのファイル", "/style.css", filepath.Join(base, "style.css")},
		{"サブディレクトリ", "/assets/logo.png", filepath.Join(base, "assets", "logo.png")},
		{"distディレクトリ", "/dist/app.js", filepath.Join(parent, "dist", "app.js")},
		{"親ディレクトリ", "/../foo/bar.css", filepath.Join(parent, "foo", "bar.css")},
		{"親ディレクトリのdist", "/../dist/app.js", filepath.Join(parent, "dist", "app.js")},
		{"dist接頭辞のみ", "/distribution.js", filepath.Join(base, "distribution.js")},
		{"途中の..は親ディレクトリまで", "/a/../../other.txt", filepath.Join(parent, "other.txt")},
	}

	for _, confine := range []bool{true, false} {
		r := NewResolver(base, confine)
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				got, err := r.Resolve(tc.urlPath)
				if err != nil {
					t.Fatalf("予期しないエラーが発生しました: %v", err)
				}
				if got != tc.want {
					t.Errorf("パスが一致しません: got %s, want %s", got, tc.want)
				}
			})
		}
	}
}

// TestResolveOutsideRoots は配信ルート外へのパスをテストする
func TestResolveOutsideRoots(t *testing.T) {
	parent := filepath.FromSlash("/work/project")
	base := filepath.Join(parent, "sample")

	paths := []string{
		"/../../etc/passwd",
		"/dist/../../secret.txt",
		"/../../../",
		"/a/../../../x",
	}

	confined := NewResolver(base, true)
	open := NewResolver(base, false)

	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			if _, err := confined.Resolve(p); !errors.Is(err, ErrOutsideRoots) {
				t.Errorf("ErrOutsideRoots が期待されました: got %v", err)
			}
			if _, err := open.Resolve(p); err != nil {
				t.Errorf("制限なしではエラーにならないはずです: %v", err)
			}
		})
	}
}
