package serve

import (
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/iand/deathclock/chart"
	"github.com/iand/deathclock/deathclock"
	"github.com/iand/deathclock/lifetable"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	tab, err := lifetable.Default()
	require.NoError(t, err)

	h := NewHandler(tab, deathclock.NewSource(17), deathclock.Calibrated, chart.DefaultStyle())
	h.now = func() time.Time { return time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC) }
	return h
}

func do(h *Handler, method, uri, body string) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	if body != "" {
		req.SetBodyString(body)
	}

	ctx := new(fasthttp.RequestCtx)
	ctx.Init(&req, nil, nil)
	h.Handle(ctx)
	return ctx
}

func TestEstimate(t *testing.T) {
	h := newTestHandler(t)

	ctx := do(h, fasthttp.MethodPost, "/estimate", `{"name":"Ada","age":38}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	require.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))

	var resp EstimateResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	require.Equal(t, "Ada", resp.Name)
	require.Equal(t, 38, resp.Age)
	require.Greater(t, resp.DeathAge, 38)
	require.LessOrEqual(t, resp.DeathAge, 100)
	require.Equal(t, 1986+resp.DeathAge, resp.DeathYear)
	require.True(t, strings.HasSuffix(resp.DeathDate, ", "+resp.DeathDateISO[:4]), "death date %q does not end with year of %q", resp.DeathDate, resp.DeathDateISO)
	require.True(t, strings.HasPrefix(resp.Summary, "Ada is thirty-eight years old."))
	require.Empty(t, resp.Plot)
}

func TestEstimateInvalidAge(t *testing.T) {
	h := newTestHandler(t)

	ctx := do(h, fasthttp.MethodPost, "/estimate", `{"name":"Ada","age":150}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp EstimateResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	require.Equal(t, deathclock.DefaultAge, resp.Age)
}

func TestEstimateWithPlot(t *testing.T) {
	h := newTestHandler(t)
	h.style.Width, h.style.Height, h.style.Dpi = 288, 144, 50

	ctx := do(h, fasthttp.MethodPost, "/estimate", `{"name":"Ada","age":70,"gender":"female","plot":true,"today":"2030-01-02"}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp EstimateResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	require.True(t, strings.HasPrefix(resp.Plot, "data:image/png;base64,"))
	require.Equal(t, 1960+resp.DeathAge, resp.DeathYear)
	require.Contains(t, resp.Summary, "She will be")
}

func TestEstimateErrors(t *testing.T) {
	h := newTestHandler(t)

	testCases := []struct {
		name   string
		method string
		uri    string
		body   string
		want   int
	}{
		{
			name:   "wrong method",
			method: fasthttp.MethodGet,
			uri:    "/estimate",
			want:   fasthttp.StatusMethodNotAllowed,
		},
		{
			name:   "malformed body",
			method: fasthttp.MethodPost,
			uri:    "/estimate",
			body:   `{"name":`,
			want:   fasthttp.StatusBadRequest,
		},
		{
			name:   "age is not a number",
			method: fasthttp.MethodPost,
			uri:    "/estimate",
			body:   `{"name":"Ada","age":"old"}`,
			want:   fasthttp.StatusBadRequest,
		},
		{
			name:   "bad today",
			method: fasthttp.MethodPost,
			uri:    "/estimate",
			body:   `{"name":"Ada","age":38,"today":"15/06/2024"}`,
			want:   fasthttp.StatusBadRequest,
		},
		{
			name:   "bad gender",
			method: fasthttp.MethodPost,
			uri:    "/estimate",
			body:   `{"name":"Ada","age":38,"gender":"x"}`,
			want:   fasthttp.StatusBadRequest,
		},
		{
			name:   "unknown path",
			method: fasthttp.MethodGet,
			uri:    "/calculate",
			want:   fasthttp.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := do(h, tc.method, tc.uri, tc.body)
			require.Equal(t, tc.want, ctx.Response.StatusCode())

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
			require.Equal(t, tc.want, resp.Status)
			require.NotEmpty(t, resp.Message)
		})
	}
}

func TestHealthz(t *testing.T) {
	h := newTestHandler(t)

	ctx := do(h, fasthttp.MethodGet, "/healthz", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	require.Equal(t, "ok", string(ctx.Response.Body()))
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("DEATHCLOCK_ADDR", "127.0.0.1:9999")
	t.Setenv("DEATHCLOCK_SEED", "12")
	t.Setenv("DEATHCLOCK_READ_TIMEOUT", "3s")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9999", cfg.Addr)
	require.Equal(t, uint64(12), cfg.Seed)
	require.Equal(t, 3*time.Second, cfg.ReadTimeout)
	require.Equal(t, lifetable.DefaultColumn, cfg.Column)
	require.Equal(t, 4096, cfg.MaxBodySize)
}
