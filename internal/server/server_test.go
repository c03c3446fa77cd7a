package server_test

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bjaus/petdocs/internal/apitest"
	"github.com/bjaus/petdocs/internal/petstore"
	"github.com/bjaus/petdocs/internal/server"
)

func newClient(t *testing.T, store *petstore.Store) *apitest.Client {
	t.Helper()
	srv := server.New(server.DefaultConfig(), slog.New(slog.DiscardHandler), store)
	return apitest.NewClient(t, srv.Handler())
}

func names(pets []petstore.Pet) []string {
	out := make([]string, len(pets))
	for i, p := range pets {
		out[i] = p.Name
	}
	return out
}

func TestPets_create_in_empty_store(t *testing.T) {
	t.Parallel()

	c := newClient(t, petstore.New())

	first := apitest.Post[petstore.Pet, petstore.Pet](t, c, "/pets", &petstore.Pet{Name: "max"})
	require.Equal(t, http.StatusCreated, first.Status)
	assert.Equal(t, petstore.Pet{ID: 1, Name: "max"}, *first.Body)

	second := apitest.Post[petstore.Pet, petstore.Pet](t, c, "/pets", &petstore.Pet{ID: 99, Name: "moritz"})
	require.Equal(t, http.StatusCreated, second.Status)
	assert.Equal(t, petstore.Pet{ID: 2, Name: "moritz"}, *second.Body)

	list := apitest.Get[[]petstore.Pet](t, c, "/pets")
	require.Equal(t, http.StatusOK, list.Status)
	assert.Equal(t, []petstore.Pet{{ID: 1, Name: "max"}, {ID: 2, Name: "moritz"}}, *list.Body)
}

func TestPets_empty_list_is_array(t *testing.T) {
	t.Parallel()

	c := newClient(t, petstore.New())

	resp := apitest.Get[[]petstore.Pet](t, c, "/pets")
	require.Equal(t, http.StatusOK, resp.Status)
	assert.JSONEq(t, `[]`, string(resp.Raw))
}

func TestPets_lifecycle(t *testing.T) {
	t.Parallel()

	c := newClient(t, petstore.NewSeeded())

	list := apitest.Get[[]petstore.Pet](t, c, "/pets")
	require.Equal(t, http.StatusOK, list.Status)
	assert.Equal(t, []string{"max", "moritz"}, names(*list.Body))

	found := apitest.Get[petstore.Pet](t, c, "/pets/1")
	require.Equal(t, http.StatusOK, found.Status)
	assert.Equal(t, petstore.Pet{ID: 1, Name: "max"}, *found.Body)

	updated := apitest.Put[petstore.Pet, petstore.Pet](t, c, "/pets/1", &petstore.Pet{ID: 1, Name: "maximilian"})
	require.Equal(t, http.StatusOK, updated.Status)
	assert.Equal(t, petstore.Pet{ID: 1, Name: "maximilian"}, *updated.Body)

	list = apitest.Get[[]petstore.Pet](t, c, "/pets")
	assert.Equal(t, []petstore.Pet{{ID: 2, Name: "moritz"}, {ID: 1, Name: "maximilian"}}, *list.Body)

	deleted := apitest.Delete[struct{}](t, c, "/pets/2")
	assert.Equal(t, http.StatusOK, deleted.Status)
	assert.Empty(t, deleted.Raw)

	again := apitest.Delete[struct{}](t, c, "/pets/2")
	assert.Equal(t, http.StatusNotFound, again.Status)
	require.NotNil(t, again.Problem)
	assert.Equal(t, http.StatusNotFound, again.Problem.Status)

	created := apitest.Post[petstore.Pet, petstore.Pet](t, c, "/pets", &petstore.Pet{Name: "rex"})
	require.Equal(t, http.StatusCreated, created.Status)
	assert.Equal(t, int64(3), created.Body.ID, "ids are not reused")

	list = apitest.Get[[]petstore.Pet](t, c, "/pets")
	assert.Equal(t, []string{"maximilian", "rex"}, names(*list.Body))
}

func TestPets_not_found(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		call func(t *testing.T, c *apitest.Client) *apitest.Response[petstore.Pet]
	}{
		"find": {
			call: func(t *testing.T, c *apitest.Client) *apitest.Response[petstore.Pet] {
				return apitest.Get[petstore.Pet](t, c, "/pets/42")
			},
		},
		"update unknown id": {
			call: func(t *testing.T, c *apitest.Client) *apitest.Response[petstore.Pet] {
				return apitest.Put[petstore.Pet, petstore.Pet](t, c, "/pets/42", &petstore.Pet{ID: 42, Name: "ghost"})
			},
		},
		"update with mismatched body id": {
			call: func(t *testing.T, c *apitest.Client) *apitest.Response[petstore.Pet] {
				return apitest.Put[petstore.Pet, petstore.Pet](t, c, "/pets/1", &petstore.Pet{ID: 2, Name: "swap"})
			},
		},
		"update without body id": {
			call: func(t *testing.T, c *apitest.Client) *apitest.Response[petstore.Pet] {
				return apitest.Put[petstore.Pet, petstore.Pet](t, c, "/pets/1", &petstore.Pet{Name: "anon"})
			},
		},
		"delete": {
			call: func(t *testing.T, c *apitest.Client) *apitest.Response[petstore.Pet] {
				return apitest.Delete[petstore.Pet](t, c, "/pets/42")
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c := newClient(t, petstore.NewSeeded())

			resp := tc.call(t, c)
			assert.Equal(t, http.StatusNotFound, resp.Status)
			assert.Equal(t, "application/problem+json", resp.Headers.Get("Content-Type"))
			require.NotNil(t, resp.Problem)
			assert.Equal(t, "Not Found", resp.Problem.Title)
			assert.Nil(t, resp.Body)

			list := apitest.Get[[]petstore.Pet](t, c, "/pets")
			assert.Equal(t, []petstore.Pet{{ID: 1, Name: "max"}, {ID: 2, Name: "moritz"}}, *list.Body)
		})
	}
}

func TestPets_malformed_input(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		method      string
		path        string
		body        string
		contentType string
		wantStatus  int
	}{
		"non-integer id": {
			method:     http.MethodGet,
			path:       "/pets/abc",
			wantStatus: http.StatusBadRequest,
		},
		"truncated json": {
			method:      http.MethodPost,
			path:        "/pets",
			body:        `{"name":`,
			contentType: "application/json",
			wantStatus:  http.StatusBadRequest,
		},
		"unsupported content type": {
			method:      http.MethodPost,
			path:        "/pets",
			body:        "name=rex",
			contentType: "application/x-www-form-urlencoded",
			wantStatus:  http.StatusUnsupportedMediaType,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			store := petstore.NewSeeded()
			c := newClient(t, store)

			req, err := http.NewRequestWithContext(context.Background(), tc.method, c.Server.URL+tc.path, strings.NewReader(tc.body))
			require.NoError(t, err)
			if tc.contentType != "" {
				req.Header.Set("Content-Type", tc.contentType)
			}
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			require.NoError(t, resp.Body.Close())

			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))
			assert.Equal(t, 2, store.Len())
		})
	}
}

func TestPets_yaml_body(t *testing.T) {
	t.Parallel()

	c := newClient(t, petstore.NewSeeded())

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, c.Server.URL+"/pets", strings.NewReader("name: rex\n"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/yaml")
	req.Header.Set("Accept", "application/yaml")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { require.NoError(t, resp.Body.Close()) }()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "application/yaml", resp.Header.Get("Content-Type"))

	var got petstore.Pet
	require.NoError(t, yaml.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, petstore.Pet{ID: 3, Name: "rex"}, got)
}

func TestNegotiation(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		accept     string
		wantStatus int
		wantType   string
	}{
		"default": {
			wantStatus: http.StatusOK,
			wantType:   "application/json",
		},
		"yaml": {
			accept:     "application/yaml",
			wantStatus: http.StatusOK,
			wantType:   "application/yaml",
		},
		"unsupported": {
			accept:     "text/html",
			wantStatus: http.StatusNotAcceptable,
			wantType:   "application/problem+json",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c := newClient(t, petstore.NewSeeded())

			var opts []apitest.Option
			if tc.accept != "" {
				opts = append(opts, apitest.WithHeader("Accept", tc.accept))
			}
			resp := apitest.Get[[]petstore.Pet](t, c, "/pets", opts...)
			assert.Equal(t, tc.wantStatus, resp.Status)
			assert.Equal(t, tc.wantType, resp.Headers.Get("Content-Type"))
		})
	}
}

func TestGenericPets(t *testing.T) {
	t.Parallel()

	c := newClient(t, petstore.NewSeeded())

	resp := apitest.Get[server.Elements[petstore.Pet]](t, c, "/genericPets")
	require.Equal(t, http.StatusOK, resp.Status)
	assert.JSONEq(t, `{"elements":[{"id":1,"name":"max"},{"id":2,"name":"moritz"}]}`, string(resp.Raw))

	bare := apitest.Get[[]petstore.Pet](t, c, "/pets")
	assert.Equal(t, resp.Body.Elements, *bare.Body)
}

func TestShapes(t *testing.T) {
	t.Parallel()

	store := petstore.New()
	c := newClient(t, store)

	for range 2 {
		resp := apitest.Get[server.Shape](t, c, "/shapes")
		require.Equal(t, http.StatusOK, resp.Status)
		assert.JSONEq(t, `{"a":10,"b":25}`, string(resp.Raw))
		store.Create("shape-independent")
	}
}

func TestEcho(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		path       string
		headers    map[string]string
		wantStatus int
		wantPrefix string
		wantLines  []string
	}{
		"info without query has only headers": {
			path:       "/request/info",
			wantStatus: http.StatusOK,
			wantPrefix: "header:\n",
		},
		"info with query": {
			path:       "/request/info?b=2&a=1&a=3",
			wantStatus: http.StatusOK,
			wantPrefix: "parameter:\na: 1\na: 3\nb: 2\n\nheader:\n",
		},
		"query parameter endpoint": {
			path:       "/request/withQueryParameter?mandatoryParameter=5",
			wantStatus: http.StatusOK,
			wantPrefix: "parameter:\nmandatoryParameter: 5\n\nheader:\n",
		},
		"query parameter is optional": {
			path:       "/request/withQueryParameter",
			wantStatus: http.StatusOK,
			wantPrefix: "header:\n",
		},
		"header endpoint": {
			path:       "/request/withHeader",
			headers:    map[string]string{"mandatoryHeader": "abc", "optionalHeader": "xyz"},
			wantStatus: http.StatusOK,
			wantPrefix: "header:\n",
			wantLines:  []string{"Mandatoryheader: abc", "Optionalheader: xyz"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c := newClient(t, petstore.NewSeeded())

			var opts []apitest.Option
			for k, v := range tc.headers {
				opts = append(opts, apitest.WithHeader(k, v))
			}
			resp := apitest.Text(t, c, tc.path, opts...)
			require.Equal(t, tc.wantStatus, resp.Status)
			assert.Equal(t, "text/plain; charset=utf-8", resp.Headers.Get("Content-Type"))

			body := *resp.Body
			assert.True(t, strings.HasPrefix(body, tc.wantPrefix), body)
			assert.False(t, strings.HasSuffix(body, "\n"), "no trailing newline")

			lines := strings.Split(body, "\n")
			for _, want := range tc.wantLines {
				assert.Contains(t, lines, want)
			}
		})
	}
}

func TestEcho_non_integer_query_parameter(t *testing.T) {
	t.Parallel()

	c := newClient(t, petstore.NewSeeded())

	resp := apitest.Get[struct{}](t, c, "/request/withQueryParameter?mandatoryParameter=five")
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	require.NotNil(t, resp.Problem)
	assert.Contains(t, resp.Problem.Detail, "bind query")
}

func TestRequestGroup_rate_limit(t *testing.T) {
	t.Parallel()

	cfg := server.DefaultConfig()
	cfg.RequestRate = 0.01
	cfg.RequestBurst = 1
	srv := server.New(cfg, slog.New(slog.DiscardHandler), petstore.NewSeeded())
	c := apitest.NewClient(t, srv.Handler())

	assert.Equal(t, http.StatusOK, apitest.Text(t, c, "/request/info").Status)

	limited := apitest.Get[struct{}](t, c, "/request/info")
	assert.Equal(t, http.StatusTooManyRequests, limited.Status)
	assert.NotEmpty(t, limited.Headers.Get("Retry-After"))

	// Other routes are not limited.
	assert.Equal(t, http.StatusOK, apitest.Get[server.Shape](t, c, "/shapes").Status)
}

func TestMiddleware_headers(t *testing.T) {
	t.Parallel()

	c := newClient(t, petstore.NewSeeded())

	resp := apitest.Get[server.Shape](t, c, "/shapes", apitest.WithHeader("X-Request-ID", "trace-1"))
	assert.Equal(t, "trace-1", resp.Headers.Get("X-Request-ID"))
	assert.Equal(t, "nosniff", resp.Headers.Get("X-Content-Type-Options"))
}

func TestServe_stops_on_cancel(t *testing.T) {
	t.Parallel()

	srv := server.New(server.DefaultConfig(), slog.New(slog.DiscardHandler), petstore.NewSeeded())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://"+ln.Addr().String()+"/shapes", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRun_port_in_use(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	cfg := server.DefaultConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = ln.Addr().(*net.TCPAddr).Port

	srv := server.New(cfg, slog.New(slog.DiscardHandler), petstore.NewSeeded())
	require.Error(t, srv.Run(context.Background()))
}

func TestPets_body_too_large(t *testing.T) {
	t.Parallel()

	cfg := server.DefaultConfig()
	cfg.MaxBodyBytes = 16
	store := petstore.NewSeeded()
	c := apitest.NewClient(t, server.New(cfg, slog.New(slog.DiscardHandler), store).Handler())

	resp := apitest.Post[petstore.Pet, petstore.Pet](t, c, "/pets", &petstore.Pet{Name: strings.Repeat("x", 32)})
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.Status)
	require.NotNil(t, resp.Problem)
	assert.Equal(t, 2, store.Len())
}
