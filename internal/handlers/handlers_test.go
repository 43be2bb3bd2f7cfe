package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaaler2/hirewise-backend/internal/models"
	"github.com/vaaler2/hirewise-backend/internal/repositories"
	"github.com/vaaler2/hirewise-backend/internal/services"
)

const testLinkTTL = 30 * 24 * time.Hour

type testEnv struct {
	app   *fiber.App
	store *repositories.MemoryStore
}

// newTestEnv wires the full handler stack against the in-memory store,
// with no AI credential configured, the same way cmd/api does.
func newTestEnv(t *testing.T, cronSecret string) *testEnv {
	t.Helper()

	store := repositories.NewMemoryStore()

	storageService := services.NewStorageService(t.TempDir())
	require.NoError(t, storageService.EnsureUploadDir())

	gemini, err := services.NewGeminiService("", "gemini-2.5-flash")
	require.NoError(t, err)

	evaluator := services.NewEvaluatorService(
		store,
		gemini,
		services.NewPDFParserService(),
		5*time.Second,
		1,
	)

	reportService := services.NewReportService(store, store, "", 587, "", "", "no-reply@hirewise.local")

	linkHandler := NewLinkHandler(store, "http://localhost:3000", testLinkTTL)
	submitHandler := NewSubmitHandler(store, store, storageService, 1<<20)
	applicationsHandler := NewApplicationsHandler(store, evaluator)
	reportHandler := NewReportHandler(reportService, cronSecret)

	app := fiber.New()
	app.Post("/generate-link", linkHandler.HandleGenerateLink)
	app.Post("/submit-form/:link_id", submitHandler.HandleSubmitForm)
	app.Get("/applications/:link_id", applicationsHandler.HandleGetApplications)
	app.Post("/internal/weekly-report", reportHandler.HandleWeeklyReport)

	return &testEnv{app: app, store: store}
}

func (e *testEnv) generateLink(t *testing.T, profession string) models.GenerateLinkResponse {
	t.Helper()

	body, err := json.Marshal(models.GenerateLinkRequest{
		ClientID:   "client-1",
		Profession: profession,
		Email:      "hr@example.com",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/generate-link", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out models.GenerateLinkResponse
	decodeJSON(t, resp, &out)
	return out
}

func submissionForm(t *testing.T, fields map[string]string, withFile bool) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for field, value := range fields {
		require.NoError(t, writer.WriteField(field, value))
	}
	if withFile {
		part, err := writer.CreateFormFile("cv_image", "cv.jpg")
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func decodeJSON(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, target))
}

func defaultFields() map[string]string {
	return map[string]string{
		"name":  "Kiss János",
		"phone": "+36301234567",
		"email": "janos@example.com",
		"about": "Szeretek fával dolgozni, bútorokat készítek, jól csiszolok",
	}
}

func TestGenerateLink(t *testing.T) {
	env := newTestEnv(t, "")

	first := env.generateLink(t, "asztalos")
	second := env.generateLink(t, "asztalos")

	assert.NotEqual(t, first.LinkID, second.LinkID)
	assert.Contains(t, first.Link, first.LinkID)

	_, err := uuid.Parse(first.LinkID)
	assert.NoError(t, err)

	assert.WithinDuration(t, time.Now().Add(testLinkTTL), first.ExpiresAt, time.Minute)
}

func TestGenerateLinkValidation(t *testing.T) {
	env := newTestEnv(t, "")

	cases := []models.GenerateLinkRequest{
		{Profession: "asztalos", Email: "hr@example.com"},
		{ClientID: "client-1", Email: "hr@example.com"},
		{ClientID: "client-1", Profession: "asztalos"},
		{ClientID: "client-1", Profession: "asztalos", Email: "not-an-email"},
	}

	for _, tc := range cases {
		body, err := json.Marshal(tc)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/generate-link", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := env.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}
}

func TestSubmitFormUnknownLink(t *testing.T) {
	env := newTestEnv(t, "")

	body, contentType := submissionForm(t, defaultFields(), true)

	for _, linkID := range []string{uuid.NewString(), "not-a-uuid"} {
		req := httptest.NewRequest(http.MethodPost, "/submit-form/"+linkID, bytes.NewReader(body.Bytes()))
		req.Header.Set("Content-Type", contentType)

		resp, err := env.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	}
}

func TestSubmitFormExpiredLink(t *testing.T) {
	env := newTestEnv(t, "")

	expired := &models.InvitationLink{
		ID:           uuid.New(),
		ClientID:     "client-1",
		Profession:   "asztalos",
		CompanyEmail: "hr@example.com",
		ExpiresAt:    time.Now().Add(-time.Hour),
		CreatedAt:    time.Now().Add(-31 * 24 * time.Hour),
	}
	require.NoError(t, env.store.Create(expired))

	body, contentType := submissionForm(t, defaultFields(), true)
	req := httptest.NewRequest(http.MethodPost, "/submit-form/"+expired.ID.String(), body)
	req.Header.Set("Content-Type", contentType)

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusGone, resp.StatusCode)
}

func TestSubmitFormValidation(t *testing.T) {
	env := newTestEnv(t, "")
	link := env.generateLink(t, "asztalos")

	for _, missing := range []string{"name", "phone", "email", "about"} {
		fields := defaultFields()
		delete(fields, missing)

		body, contentType := submissionForm(t, fields, true)
		req := httptest.NewRequest(http.MethodPost, "/submit-form/"+link.LinkID, body)
		req.Header.Set("Content-Type", contentType)

		resp, err := env.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "missing %s", missing)
	}

	// CV image is required too
	body, contentType := submissionForm(t, defaultFields(), false)
	req := httptest.NewRequest(http.MethodPost, "/submit-form/"+link.LinkID, body)
	req.Header.Set("Content-Type", contentType)

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Nothing was written for any rejected submission
	linkID := uuid.MustParse(link.LinkID)
	apps, err := env.store.ListByLink(linkID)
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestSubmitFormSuccess(t *testing.T) {
	env := newTestEnv(t, "")
	link := env.generateLink(t, "asztalos")

	body, contentType := submissionForm(t, defaultFields(), true)
	req := httptest.NewRequest(http.MethodPost, "/submit-form/"+link.LinkID, body)
	req.Header.Set("Content-Type", contentType)

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var out models.SubmitFormResponse
	decodeJSON(t, resp, &out)
	assert.Equal(t, "Application submitted successfully", out.Message)

	apps, err := env.store.ListByLink(uuid.MustParse(link.LinkID))
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "Kiss János", apps[0].Name)
	assert.NotEmpty(t, apps[0].CVImagePath)
	assert.Nil(t, apps[0].Score)
}

func TestGetApplicationsUnknownLink(t *testing.T) {
	env := newTestEnv(t, "")

	req := httptest.NewRequest(http.MethodGet, "/applications/"+uuid.NewString(), nil)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetApplicationsEmptyLink(t *testing.T) {
	env := newTestEnv(t, "")
	link := env.generateLink(t, "asztalos")

	req := httptest.NewRequest(http.MethodGet, "/applications/"+link.LinkID, nil)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out models.ApplicationsResponse
	decodeJSON(t, resp, &out)

	assert.Equal(t, "No applications yet", out.Evaluation)
	assert.Empty(t, out.Applications)
	assert.Equal(t, link.LinkID, out.LinkID)
}

// TestIntakePipeline walks the whole flow with no AI credential: issue a
// link, submit one carpentry application, fetch the evaluated list.
func TestIntakePipeline(t *testing.T) {
	env := newTestEnv(t, "")
	link := env.generateLink(t, "asztalos")

	body, contentType := submissionForm(t, defaultFields(), true)
	req := httptest.NewRequest(http.MethodPost, "/submit-form/"+link.LinkID, body)
	req.Header.Set("Content-Type", contentType)

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/applications/"+link.LinkID, nil)
	resp, err = env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out models.ApplicationsResponse
	decodeJSON(t, resp, &out)

	assert.Equal(t, "client-1", out.ClientID)
	assert.Equal(t, "asztalos", out.Profession)
	assert.Contains(t, out.Evaluation, "unavailable")

	require.Len(t, out.Applications, 1)
	app := out.Applications[0]
	require.NotNil(t, app.Score)
	require.NotNil(t, app.Rank)
	assert.Equal(t, 1, *app.Rank)
	assert.Greater(t, *app.Score, 0.0)
}

func TestWeeklyReportAuth(t *testing.T) {
	env := newTestEnv(t, "s3cret")

	req := httptest.NewRequest(http.MethodPost, "/internal/weekly-report", nil)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/internal/weekly-report", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer wrong")
	resp, err = env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWeeklyReportWithoutSecret(t *testing.T) {
	env := newTestEnv(t, "")

	req := httptest.NewRequest(http.MethodPost, "/internal/weekly-report", nil)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestWeeklyReportWithoutSMTP(t *testing.T) {
	env := newTestEnv(t, "s3cret")

	req := httptest.NewRequest(http.MethodPost, "/internal/weekly-report", nil)
	req.Header.Set(fiber.HeaderAuthorization, fmt.Sprintf("Bearer %s", "s3cret"))
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
