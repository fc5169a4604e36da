package http_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/docview"
	dochttp "github.com/fwojciec/docview/http"
	"github.com/fwojciec/docview/mock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderedPage(body string, warnings ...string) *docview.RenderedDocument {
	return &docview.RenderedDocument{
		HTML: "<html><head><style>p{}</style></head><body>" + body + "</body></html>",
		Fragments: map[string]string{
			docview.FragmentHead: "<style>p{}</style>",
			docview.FragmentBody: body,
		},
		Warnings: warnings,
	}
}

func get(t *testing.T, h http.Handler, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func postForm(t *testing.T, h http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_Index(t *testing.T) {
	t.Parallel()

	t.Run("renders name and home page link", func(t *testing.T) {
		t.Parallel()

		srv := dochttp.NewServer(t.TempDir(), &mock.SearchService{}, &mock.Renderer{},
			dochttp.WithName("Team Docs"),
			dochttp.WithHomePage("start.adoc"),
		)

		rec := get(t, srv, "/")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Team Docs")
		assert.Contains(t, rec.Body.String(), ">start.adoc</a>")
		assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	})

	t.Run("logs requests with request id", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		srv := dochttp.NewServer(t.TempDir(), &mock.SearchService{}, &mock.Renderer{},
			dochttp.WithLogger(logger),
		)

		rec := get(t, srv, "/")

		require.Equal(t, http.StatusOK, rec.Code)
		output := buf.String()
		assert.Contains(t, output, "request completed")
		assert.Contains(t, output, "request_id="+rec.Header().Get("X-Request-Id"))
		assert.Contains(t, output, "status=200")
	})
}

func TestServer_Tree(t *testing.T) {
	t.Parallel()

	t.Run("lists every document sorted", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		var gotRoot string
		search := &mock.SearchService{
			TreeFn: func(ctx context.Context, r string) (docview.MatchSet, error) {
				gotRoot = r
				return docview.NewMatchSet("zeta.adoc", "alpha.adoc"), nil
			},
		}
		srv := dochttp.NewServer(root, search, &mock.Renderer{})

		rec := get(t, srv, "/tree")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, root, gotRoot)
		body := rec.Body.String()
		assert.Less(t, strings.Index(body, ">alpha.adoc<"), strings.Index(body, ">zeta.adoc<"))
	})

	t.Run("hides internal error text", func(t *testing.T) {
		t.Parallel()

		search := &mock.SearchService{
			TreeFn: func(ctx context.Context, r string) (docview.MatchSet, error) {
				return nil, docview.Errorf(docview.ENOTDIR, "secret path /srv/docs is not a directory")
			},
		}
		srv := dochttp.NewServer(t.TempDir(), search, &mock.Renderer{})

		rec := get(t, srv, "/tree")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Could not list documents.")
		assert.NotContains(t, rec.Body.String(), "/srv/docs")
	})
}

func TestServer_Search(t *testing.T) {
	t.Parallel()

	t.Run("shows combined results for the submitted term", func(t *testing.T) {
		t.Parallel()

		var gotTerm string
		search := &mock.SearchService{
			SearchFn: func(ctx context.Context, root, term string) (docview.MatchSet, error) {
				gotTerm = term
				return docview.NewMatchSet("guide.adoc"), nil
			},
		}
		srv := dochttp.NewServer(t.TempDir(), search, &mock.Renderer{})

		rec := postForm(t, srv, "/search", url.Values{"search": {"hello"}})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "hello", gotTerm)
		assert.Contains(t, rec.Body.String(), ">guide.adoc</a>")
	})

	t.Run("shows empty result list", func(t *testing.T) {
		t.Parallel()

		search := &mock.SearchService{
			SearchFn: func(ctx context.Context, root, term string) (docview.MatchSet, error) {
				return docview.NewMatchSet(), nil
			},
		}
		srv := dochttp.NewServer(t.TempDir(), search, &mock.Renderer{})

		rec := postForm(t, srv, "/search", url.Values{"search": {"zz"}})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "No matches.")
	})

	t.Run("get redirects to index", func(t *testing.T) {
		t.Parallel()

		srv := dochttp.NewServer(t.TempDir(), &mock.SearchService{}, &mock.Renderer{})

		rec := get(t, srv, "/search")

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
	})

	t.Run("rejects searches over the rate limit", func(t *testing.T) {
		t.Parallel()

		calls := 0
		search := &mock.SearchService{
			SearchFn: func(ctx context.Context, root, term string) (docview.MatchSet, error) {
				calls++
				return docview.NewMatchSet(), nil
			},
		}
		srv := dochttp.NewServer(t.TempDir(), search, &mock.Renderer{},
			dochttp.WithSearchLimit(0.001, 1),
		)

		first := postForm(t, srv, "/search", url.Values{"search": {"a"}})
		second := postForm(t, srv, "/search", url.Values{"search": {"b"}})

		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, http.StatusTooManyRequests, second.Code)
		assert.Equal(t, 1, calls)
	})
}

func TestServer_Page(t *testing.T) {
	t.Parallel()

	t.Run("renders fragments of the named document", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		var gotPath string
		var gotTheme docview.Theme
		renderer := &mock.Renderer{
			RenderFn: func(ctx context.Context, path string, opts docview.RenderOptions) (*docview.RenderedDocument, error) {
				gotPath = path
				gotTheme = opts.Theme
				return renderedPage("<h1>Guide</h1>"), nil
			},
		}
		srv := dochttp.NewServer(root, &mock.SearchService{}, renderer)

		rec := get(t, srv, "/page?name=docs/guide.adoc")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, filepath.Join(root, "docs", "guide.adoc"), gotPath)
		assert.Equal(t, docview.ThemeLight, gotTheme)
		body := rec.Body.String()
		assert.Contains(t, body, "<style>p{}</style>")
		assert.Contains(t, body, "<h1>Guide</h1>")
		assert.NotContains(t, body, "&lt;h1&gt;")
	})

	t.Run("uses dark theme from cookie", func(t *testing.T) {
		t.Parallel()

		var gotTheme docview.Theme
		renderer := &mock.Renderer{
			RenderFn: func(ctx context.Context, path string, opts docview.RenderOptions) (*docview.RenderedDocument, error) {
				gotTheme = opts.Theme
				return renderedPage("<p>x</p>"), nil
			},
		}
		srv := dochttp.NewServer(t.TempDir(), &mock.SearchService{}, renderer)

		rec := get(t, srv, "/page?name=guide.adoc", &http.Cookie{Name: dochttp.DarkModeCookie, Value: "true"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, docview.ThemeDark, gotTheme)
	})

	t.Run("answers not modified for matching etag", func(t *testing.T) {
		t.Parallel()

		renderer := &mock.Renderer{
			RenderFn: func(ctx context.Context, path string, opts docview.RenderOptions) (*docview.RenderedDocument, error) {
				return renderedPage("<p>stable</p>"), nil
			},
		}
		srv := dochttp.NewServer(t.TempDir(), &mock.SearchService{}, renderer)

		first := get(t, srv, "/page?name=guide.adoc")
		tag := first.Header().Get("ETag")
		require.NotEmpty(t, tag)

		req := httptest.NewRequest(http.MethodGet, "/page?name=guide.adoc", nil)
		req.Header.Set("If-None-Match", tag)
		second := httptest.NewRecorder()
		srv.ServeHTTP(second, req)

		assert.Equal(t, http.StatusNotModified, second.Code)
		assert.Empty(t, second.Body.String())
	})

	t.Run("etag changes with content", func(t *testing.T) {
		t.Parallel()

		n := 0
		renderer := &mock.Renderer{
			RenderFn: func(ctx context.Context, path string, opts docview.RenderOptions) (*docview.RenderedDocument, error) {
				n++
				if n == 1 {
					return renderedPage("<p>v1</p>"), nil
				}
				return renderedPage("<p>v2</p>"), nil
			},
		}
		srv := dochttp.NewServer(t.TempDir(), &mock.SearchService{}, renderer)

		first := get(t, srv, "/page?name=guide.adoc")
		second := get(t, srv, "/page?name=guide.adoc")

		assert.NotEqual(t, first.Header().Get("ETag"), second.Header().Get("ETag"))
	})

	t.Run("redirects outside root without rendering", func(t *testing.T) {
		t.Parallel()

		renderer := &mock.Renderer{
			RenderFn: func(ctx context.Context, path string, opts docview.RenderOptions) (*docview.RenderedDocument, error) {
				t.Fatal("renderer must not be called")
				return nil, nil
			},
		}
		srv := dochttp.NewServer(t.TempDir(), &mock.SearchService{}, renderer)

		rec := get(t, srv, "/page?name=../../etc/passwd.adoc")

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
	})

	t.Run("redirects invalid and missing names", func(t *testing.T) {
		t.Parallel()

		renderer := &mock.Renderer{
			RenderFn: func(ctx context.Context, path string, opts docview.RenderOptions) (*docview.RenderedDocument, error) {
				return nil, docview.Errorf(docview.EINVALID, "not a document")
			},
		}
		srv := dochttp.NewServer(t.TempDir(), &mock.SearchService{}, renderer)

		for _, target := range []string{"/page", "/page?name=", "/page?name=.hidden.adoc"} {
			rec := get(t, srv, target)

			assert.Equal(t, http.StatusFound, rec.Code, target)
			assert.Equal(t, "/", rec.Header().Get("Location"), target)
		}
	})

	t.Run("missing document is not found", func(t *testing.T) {
		t.Parallel()

		renderer := &mock.Renderer{
			RenderFn: func(ctx context.Context, path string, opts docview.RenderOptions) (*docview.RenderedDocument, error) {
				return nil, docview.Errorf(docview.ENOTFOUND, "document not found")
			},
		}
		srv := dochttp.NewServer(t.TempDir(), &mock.SearchService{}, renderer)

		rec := get(t, srv, "/page?name=gone.adoc")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Document not found.")
	})

	t.Run("render failure shows generic page and notice", func(t *testing.T) {
		t.Parallel()

		renderer := &mock.Renderer{
			RenderFn: func(ctx context.Context, path string, opts docview.RenderOptions) (*docview.RenderedDocument, error) {
				return nil, docview.Errorf(docview.ERENDER, "asciidoc: exec format error")
			},
		}
		notices := docview.NewNotices(10)
		srv := dochttp.NewServer(t.TempDir(), &mock.SearchService{}, renderer,
			dochttp.WithNotices(notices),
		)

		rec := get(t, srv, "/page?name=broken.adoc")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Could not render the document.")
		assert.NotContains(t, rec.Body.String(), "exec format error")
		require.Equal(t, 1, notices.Len())
		assert.Equal(t, docview.NoticeError, notices.List()[0].Level)

		index := get(t, srv, "/")
		assert.Contains(t, index.Body.String(), "Could not render broken.adoc.")
	})

	t.Run("warnings become notices", func(t *testing.T) {
		t.Parallel()

		renderer := &mock.Renderer{
			RenderFn: func(ctx context.Context, path string, opts docview.RenderOptions) (*docview.RenderedDocument, error) {
				return renderedPage("<p>partial</p>", "guide.adoc: converter exited with status 1"), nil
			},
		}
		notices := docview.NewNotices(10)
		srv := dochttp.NewServer(t.TempDir(), &mock.SearchService{}, renderer,
			dochttp.WithNotices(notices),
		)

		rec := get(t, srv, "/page?name=guide.adoc")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "<p>partial</p>")
		assert.Contains(t, rec.Body.String(), "converter exited with status 1")
		require.Equal(t, 1, notices.Len())
		assert.Equal(t, docview.NoticeWarning, notices.List()[0].Level)
	})
}

func TestServer_Options(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		form  url.Values
		value string
	}{
		{name: "enables dark mode", form: url.Values{"dark_mode": {"true"}}, value: "true"},
		{name: "disables dark mode", form: url.Values{"dark_mode": {"false"}}, value: "false"},
		{name: "missing value disables dark mode", form: url.Values{}, value: "false"},
		{name: "unknown value disables dark mode", form: url.Values{"dark_mode": {"yes"}}, value: "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := dochttp.NewServer(t.TempDir(), &mock.SearchService{}, &mock.Renderer{})

			rec := postForm(t, srv, "/options", tt.form)

			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, "/", rec.Header().Get("Location"))
			cookies := rec.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, dochttp.DarkModeCookie, cookies[0].Name)
			assert.Equal(t, tt.value, cookies[0].Value)
		})
	}
}

func TestServer_Metrics(t *testing.T) {
	t.Parallel()

	t.Run("exposes registry when configured", func(t *testing.T) {
		t.Parallel()

		reg := prometheus.NewRegistry()
		counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "docview_test_total", Help: "test"})
		reg.MustRegister(counter)
		counter.Inc()
		srv := dochttp.NewServer(t.TempDir(), &mock.SearchService{}, &mock.Renderer{},
			dochttp.WithGatherer(reg),
		)

		rec := get(t, srv, "/metrics")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "docview_test_total 1")
	})

	t.Run("absent without registry", func(t *testing.T) {
		t.Parallel()

		srv := dochttp.NewServer(t.TempDir(), &mock.SearchService{}, &mock.Renderer{})

		rec := get(t, srv, "/metrics")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
