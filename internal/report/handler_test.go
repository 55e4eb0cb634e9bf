package report

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aQ-codes/expense-tracker-backend/internal/auth"
	"github.com/aQ-codes/expense-tracker-backend/internal/respond"
)

type envelope struct {
	Status     bool                `json:"status"`
	Message    string              `json:"message"`
	Data       json.RawMessage     `json:"data"`
	Errors     map[string]string   `json:"errors"`
	Pagination *respond.Pagination `json:"pagination"`
}

func newTestApp(f *fixture) *fiber.App {
	h := NewHandler(f.service)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := fiber.New(fiber.Config{ErrorHandler: respond.ErrorHandler(log, false)})

	protected := app.Group("/api", auth.Middleware(testSecret))
	protected.Get("/monthly-breakdown", h.Monthly)
	protected.Get("/monthly-breakdown/export", h.ExportCSV)
	protected.Get("/monthly-breakdown/pdf", h.ExportPDF)
	protected.Get("/dashboard", h.Dashboard)
	return app
}

var testSecret = []byte("test-secret")

func get(t *testing.T, app *fiber.App, path, userID string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	token, err := auth.NewToken(testSecret, userID, time.Hour)
	require.NoError(t, err)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func getJSON(t *testing.T, app *fiber.App, path, userID string) (*http.Response, envelope) {
	t.Helper()
	resp := get(t, app, path, userID)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func TestMonthlyEndpoint(t *testing.T) {
	f := newFixture()
	f.seed(t, "user-1", "Food", "Groceries", 10, "2024-03-01")
	f.seed(t, "user-1", "Transport", "Bus pass", 20, "2024-03-15")
	f.seed(t, "user-1", "Food", "Dinner", 30, "2024-03-31")
	app := newTestApp(f)

	resp, env := getJSON(t, app, "/api/monthly-breakdown?month=3&year=2024", "user-1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Status)

	var b Breakdown
	require.NoError(t, json.Unmarshal(env.Data, &b))
	assert.Equal(t, 3, b.Month)
	assert.Equal(t, 2024, b.Year)
	assert.Equal(t, 60.0, b.Summary.TotalSpent)
	assert.Len(t, b.Expenses, 3)
	assert.Len(t, b.Distribution, 2)
	assert.Len(t, b.Daily, 3)

	require.NotNil(t, env.Pagination)
	assert.Equal(t, 3, env.Pagination.Total)
	assert.Equal(t, 1, env.Pagination.TotalPages)
}

func TestMonthlyEndpointPagination(t *testing.T) {
	f := newFixture()
	for day := 1; day <= 5; day++ {
		f.seed(t, "user-1", "Food", "Expense", 10, time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"))
	}
	app := newTestApp(f)

	resp, env := getJSON(t, app, "/api/monthly-breakdown?month=3&year=2024&page=2&limit=2", "user-1")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var b Breakdown
	require.NoError(t, json.Unmarshal(env.Data, &b))
	assert.Len(t, b.Expenses, 2)

	// Groupings cover the whole month regardless of the page.
	assert.Len(t, b.Daily, 5)
	assert.Equal(t, 50.0, b.Summary.TotalSpent)

	assert.Equal(t, 2, env.Pagination.Page)
	assert.Equal(t, 5, env.Pagination.Total)
	assert.Equal(t, 3, env.Pagination.TotalPages)
}

func TestMonthlyEndpointValidation(t *testing.T) {
	app := newTestApp(newFixture())

	tests := []struct {
		name  string
		query string
		field string
	}{
		{"missing month", "year=2024", "month"},
		{"missing year", "month=3", "year"},
		{"month out of range", "month=13&year=2024", "month"},
		{"year out of range", "month=3&year=1700", "year"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, env := getJSON(t, app, "/api/monthly-breakdown?"+tt.query, "user-1")
			assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			assert.Contains(t, env.Errors, tt.field)
		})
	}
}

func TestExportCSV(t *testing.T) {
	f := newFixture()
	f.seed(t, "user-1", "Transport", "Bus ticket", 2.75, "2024-03-05")
	f.seed(t, "user-1", "Food", `Say "cheese"`, 45.5, "2024-03-10")
	app := newTestApp(f)

	resp := get(t, app, "/api/monthly-breakdown/export?month=3&year=2024", "user-1")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "text/csv", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, "attachment; filename=expenses-2024-03.csv",
		resp.Header.Get(fiber.HeaderContentDisposition))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	want := strings.Join([]string{
		`"Title","Amount","Category","Date"`,
		`"Say ""cheese""","45.50","Food","2024-03-10"`,
		`"Bus ticket","2.75","Transport","2024-03-05"`,
	}, "\n") + "\n"
	assert.Equal(t, want, string(body))
}

func TestExportCSVEmptyMonth(t *testing.T) {
	app := newTestApp(newFixture())

	resp := get(t, app, "/api/monthly-breakdown/export?month=3&year=2024", "user-1")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "\"Title\",\"Amount\",\"Category\",\"Date\"\n", string(body))
}

func TestExportPDF(t *testing.T) {
	f := newFixture()
	f.seed(t, "user-1", "Food", "Groceries", 10, "2024-03-01")
	app := newTestApp(f)

	resp := get(t, app, "/api/monthly-breakdown/pdf?month=3&year=2024", "user-1")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, "attachment; filename=expense-report-2024-03.pdf",
		resp.Header.Get(fiber.HeaderContentDisposition))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "%PDF"), "not a PDF document")
}

func TestDashboardEndpoint(t *testing.T) {
	f := newFixture()
	f.seed(t, "user-1", "Food", "Groceries", 10, "2024-03-05")
	app := newTestApp(f)

	resp, env := getJSON(t, app, "/api/dashboard", "user-1")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var d Dashboard
	require.NoError(t, json.Unmarshal(env.Data, &d))
	assert.Equal(t, 10.0, d.TotalSpent)
	assert.Equal(t, 1, d.TotalExpenses)
	require.Len(t, d.RecentExpenses, 1)
	assert.Equal(t, "Groceries", d.RecentExpenses[0].Title)
}

func TestReportUnauthorized(t *testing.T) {
	app := newTestApp(newFixture())

	req := httptest.NewRequest(http.MethodGet, "/api/monthly-breakdown?month=3&year=2024", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
