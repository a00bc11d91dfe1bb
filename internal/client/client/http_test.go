package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/sitecms/internal/common"
	"github.com/dmitrijs2005/sitecms/internal/logging"
	"github.com/dmitrijs2005/sitecms/internal/netx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticToken(tok string) TokenSource {
	return TokenFunc(func(context.Context) (string, error) { return tok, nil })
}

func newGateway(t *testing.T, h http.HandlerFunc, tokens TokenSource) *HTTPGateway {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewHTTPGateway(srv.URL+"/", time.Second, tokens, logging.Discard())
}

func TestList_DecodesRecordsWithIntegerIDs(t *testing.T) {
	var gotAuth string
	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/admin/services/", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, `[{"id":7,"title":"Web"},{"id":12,"title":"SEO"}]`)
	}, staticToken("tok"))

	recs, err := g.List(context.Background(), "/api/admin/services/")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, json.Number("7"), recs[0]["id"])
	assert.Equal(t, "SEO", recs[1]["title"])
	assert.Equal(t, "Bearer tok", gotAuth)
}

func TestList_WorksWithoutToken(t *testing.T) {
	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `[]`)
	}, staticToken(""))

	recs, err := g.List(context.Background(), "/api/admin/faqs/")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestList_BadJSON(t *testing.T) {
	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{not json`)
	}, nil)

	_, err := g.List(context.Background(), "/api/admin/faqs/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode /api/admin/faqs/")
}

func TestCreate_JSONBody(t *testing.T) {
	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, common.BearerScheme+" tok", r.Header.Get(common.AuthorizationHeaderName))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"title": "Web", "is_active": true, "order": float64(2)}, body)

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":42,"title":"Web"}`)
	}, staticToken("tok"))

	rec, err := g.Create(context.Background(), "/api/admin/services/", Payload{
		Fields: map[string]any{"title": "Web", "is_active": true, "order": int64(2)},
	})
	require.NoError(t, err)
	assert.Equal(t, json.Number("42"), rec["id"])
}

func TestCreate_EmptyResponseBody(t *testing.T) {
	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, staticToken("tok"))

	rec, err := g.Create(context.Background(), "/api/admin/services/", Payload{Fields: map[string]any{}})
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestCreate_MultipartWhenFilesPresent(t *testing.T) {
	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data; boundary="))
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Acme", r.FormValue("name"))
		assert.Equal(t, "true", r.FormValue("is_active"))
		assert.Equal(t, "3", r.FormValue("order"))

		f, hdr, err := r.FormFile("logo")
		require.NoError(t, err)
		defer f.Close()
		b, _ := io.ReadAll(f)
		assert.Equal(t, "acme.png", hdr.Filename)
		assert.Equal(t, "image/png", hdr.Header.Get("Content-Type"))
		assert.Equal(t, []byte("PNGDATA"), b)

		w.WriteHeader(http.StatusCreated)
	}, staticToken("tok"))

	_, err := g.Create(context.Background(), "/api/admin/client-logos/", Payload{
		Fields: map[string]any{"name": "Acme", "is_active": true, "order": int64(3)},
		Files:  []netx.FilePart{{Field: "logo", Filename: "acme.png", ContentType: "image/png", Data: []byte("PNGDATA")}},
	})
	require.NoError(t, err)
}

func TestUpdate_UsesGivenMethodAndPath(t *testing.T) {
	for _, method := range []string{http.MethodPut, http.MethodPatch} {
		t.Run(method, func(t *testing.T) {
			var gotMethod, gotPath string
			g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
				gotMethod, gotPath = r.Method, r.URL.Path
				_, _ = io.WriteString(w, `{"id":7}`)
			}, staticToken("tok"))

			err := g.Update(context.Background(), "/api/admin/services/7/", method, Payload{Fields: map[string]any{"title": "x"}})
			require.NoError(t, err)
			assert.Equal(t, method, gotMethod)
			assert.Equal(t, "/api/admin/services/7/", gotPath)
		})
	}
}

func TestDelete(t *testing.T) {
	var gotMethod string
	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	}, staticToken("tok"))

	require.NoError(t, g.Delete(context.Background(), "/api/admin/faqs/3/"))
	assert.Equal(t, http.MethodDelete, gotMethod)
}

func TestMutations_RequireToken(t *testing.T) {
	called := false
	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, TokenFunc(func(context.Context) (string, error) { return "", common.ErrNoToken }))

	ctx := context.Background()
	_, err := g.Create(ctx, "/api/admin/faqs/", Payload{})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.ErrorIs(t, g.Update(ctx, "/api/admin/faqs/1/", http.MethodPut, Payload{}), ErrUnauthorized)
	assert.ErrorIs(t, g.Delete(ctx, "/api/admin/faqs/1/"), ErrUnauthorized)
	assert.False(t, called, "no request may be sent without a token")

	g = newGateway(t, func(w http.ResponseWriter, r *http.Request) { called = true }, nil)
	assert.ErrorIs(t, g.Delete(ctx, "/api/admin/faqs/1/"), ErrUnauthorized)
	assert.False(t, called)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ErrUnauthorized},
		{"bad request", http.StatusBadRequest, ErrRejected},
		{"server error", http.StatusInternalServerError, ErrRejected},
		{"not found", http.StatusNotFound, ErrRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, `{"title":["This field is required."]}`)
			}, staticToken("tok"))

			err := g.Update(context.Background(), "/api/admin/faqs/1/", http.MethodPut, Payload{})
			require.ErrorIs(t, err, tt.want)

			if tt.want == ErrRejected {
				var rej *RejectedError
				require.True(t, errors.As(err, &rej))
				assert.Equal(t, tt.status, rej.StatusCode)
				assert.Contains(t, rej.Body, "This field is required.")
				assert.Contains(t, rej.Error(), "PUT /api/admin/faqs/1/")
			}
			assert.Equal(t, tt.want == ErrUnauthorized, IsUnauthorized(err))
		})
	}
}

func TestTransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	g := NewHTTPGateway(url, time.Second, staticToken("tok"), logging.Discard())
	_, err := g.List(context.Background(), "/api/admin/faqs/")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCancelledContext(t *testing.T) {
	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	}, staticToken("tok"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.List(ctx, "/api/admin/faqs/")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewHTTPGateway_DefaultTimeout(t *testing.T) {
	g := NewHTTPGateway("http://example.invalid", 0, nil, logging.Discard())
	assert.Equal(t, DefaultTimeout, g.http.Timeout)
}
