package serve

import (
	"errors"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/iand/deathclock/chart"
	"github.com/iand/deathclock/deathclock"
	"github.com/iand/deathclock/lifetable"
	"github.com/iand/deathclock/logging"
	"github.com/iand/deathclock/model"
	"github.com/iand/deathclock/report"
)

type EstimateRequest struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender,omitempty"`
	Plot   bool   `json:"plot,omitempty"`
	Today  string `json:"today,omitempty"`
}

type EstimateResponse struct {
	Name         string `json:"name"`
	Age          int    `json:"age"`
	DeathAge     int    `json:"death_age"`
	DeathYear    int    `json:"death_year"`
	DeathDate    string `json:"death_date"`
	DeathDateISO string `json:"death_date_iso"`
	Summary      string `json:"summary"`
	Plot         string `json:"plot,omitempty"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// lockedSource serialises access to a source shared by concurrent requests.
type lockedSource struct {
	mu  sync.Mutex
	src deathclock.Source
}

func (l *lockedSource) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}

func (l *lockedSource) Int63n(n int64) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Int63n(n)
}

// Handler answers estimate requests against a single life table that is read
// only and shared by every request.
type Handler struct {
	table *lifetable.Table
	rng   deathclock.Source
	mode  deathclock.DrawMode
	style chart.Style
	now   func() time.Time
}

func NewHandler(t *lifetable.Table, rng deathclock.Source, mode deathclock.DrawMode, st chart.Style) *Handler {
	return &Handler{
		table: t,
		rng:   &lockedSource{src: rng},
		mode:  mode,
		style: st,
		now:   time.Now,
	}
}

func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/healthz":
		ctx.SetContentType("text/plain; charset=utf-8")
		ctx.SetBodyString("ok")
	case "/estimate":
		if !ctx.IsPost() {
			ctx.Response.Header.Set(fasthttp.HeaderAllow, fasthttp.MethodPost)
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h.estimate(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (h *Handler) estimate(ctx *fasthttp.RequestCtx) {
	var req EstimateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	today := model.Day(h.now())
	if req.Today != "" {
		var err error
		today, err = model.ParseDate(req.Today)
		if err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "Invalid today: "+err.Error())
			return
		}
	}

	// the gender only changes the wording, the table column is fixed when the
	// server starts
	gender, err := model.ParseGender(req.Gender)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid gender: "+err.Error())
		return
	}

	c := deathclock.NewClock(req.Name, req.Age, h.table, today, h.rng, deathclock.WithDrawMode(h.mode), deathclock.WithGender(gender))
	est, err := c.Run()
	if err != nil {
		status := fasthttp.StatusInternalServerError
		if errors.Is(err, deathclock.ErrDrawOutOfRange) || errors.Is(err, deathclock.ErrEmptyDateWindow) || errors.Is(err, deathclock.ErrEmptyDistribution) {
			status = fasthttp.StatusUnprocessableEntity
		}
		logging.Warn("estimate failed", "name", req.Name, "age", req.Age, "error", err)
		writeError(ctx, status, err.Error())
		return
	}

	resp := EstimateResponse{
		Name:         est.Name,
		Age:          est.Age,
		DeathAge:     est.DeathAge,
		DeathYear:    est.DeathYear,
		DeathDate:    est.DeathDateString(),
		DeathDateISO: est.DeathDate.Format(time.DateOnly),
		Summary:      report.Summary(est),
	}

	if req.Plot {
		png, err := chart.Draw(c.Distribution(), est, h.style)
		if err != nil {
			logging.Error("draw chart", "name", req.Name, "error", err)
			writeError(ctx, fasthttp.StatusInternalServerError, "Failed to draw chart: "+err.Error())
			return
		}
		resp.Plot = chart.DataURI(png)
	}

	logging.Info("estimated death date", "name", est.Name, "age", est.Age, "death_date", resp.DeathDateISO)
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		ctx.Error("Failed to encode response", fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, ErrorResponse{
		Status:  status,
		Message: message,
	})
}
