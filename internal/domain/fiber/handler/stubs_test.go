package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fadilmartias/ats-matcher/internal/assessment"
	"github.com/fadilmartias/ats-matcher/internal/dto"
	"github.com/fadilmartias/ats-matcher/internal/model"
	"github.com/fadilmartias/ats-matcher/internal/repository"
	"github.com/fadilmartias/ats-matcher/internal/service"
	"github.com/fadilmartias/ats-matcher/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubProjectService struct {
	project  *model.Project
	projects []model.Project
	total    int64
	err      error

	lastCreate     dto.CreateProjectRequest
	lastTranscript dto.TranscriptProjectRequest
	lastUpdate     dto.UpdateProjectRequest
	lastPage       int
	lastPageSize   int
}

func (s *stubProjectService) Create(_ context.Context, req dto.CreateProjectRequest) (*model.Project, error) {
	s.lastCreate = req
	return s.project, s.err
}

func (s *stubProjectService) CreateFromTranscript(_ context.Context, req dto.TranscriptProjectRequest) (*model.Project, error) {
	s.lastTranscript = req
	return s.project, s.err
}

func (s *stubProjectService) Get(context.Context, uuid.UUID) (*model.Project, error) {
	return s.project, s.err
}

func (s *stubProjectService) List(_ context.Context, page, pageSize int) ([]model.Project, int64, error) {
	s.lastPage, s.lastPageSize = page, pageSize
	return s.projects, s.total, s.err
}

func (s *stubProjectService) Update(_ context.Context, _ uuid.UUID, req dto.UpdateProjectRequest) (*model.Project, error) {
	s.lastUpdate = req
	return s.project, s.err
}

func (s *stubProjectService) Delete(context.Context, uuid.UUID) error {
	return s.err
}

type stubApplicationService struct {
	app *model.Application
	err error

	saveDir    string
	savedPath  string
	lastInput  usecase.SubmitApplicationInput
	lastCV     usecase.CVUpload
	lastFilter repository.ApplicationFilter
	lastStatus string
}

func (s *stubApplicationService) Submit(_ context.Context, in usecase.SubmitApplicationInput, cv usecase.CVUpload) (*model.Application, error) {
	s.lastInput, s.lastCV = in, cv
	if s.err != nil {
		return nil, s.err
	}
	s.savedPath = filepath.Join(s.saveDir, "cv"+filepath.Ext(cv.Filename))
	if err := cv.Save(s.savedPath); err != nil {
		return nil, err
	}
	return s.app, nil
}

func (s *stubApplicationService) Get(context.Context, uuid.UUID) (*model.Application, error) {
	return s.app, s.err
}

func (s *stubApplicationService) List(_ context.Context, filter repository.ApplicationFilter, _, _ int) ([]model.Application, int64, error) {
	s.lastFilter = filter
	if s.app == nil {
		return nil, 0, s.err
	}
	return []model.Application{*s.app}, 1, s.err
}

func (s *stubApplicationService) UpdateStatus(_ context.Context, _ uuid.UUID, status string) (*model.Application, error) {
	s.lastStatus = status
	return s.app, s.err
}

type stubAssessmentService struct {
	assessment *model.Assessment
	answer     *model.Answer
	suggestion *assessment.Suggestion
	score      *service.CandidateScore
	err        error

	lastCreate   dto.CreateAssessmentRequest
	lastQuery    dto.ListAssessmentsQuery
	lastGenerate dto.GenerateQuestionsRequest
	lastAnswer   dto.SubmitAnswerRequest
	lastID       uuid.UUID
}

func (s *stubAssessmentService) Create(_ context.Context, req dto.CreateAssessmentRequest) (*model.Assessment, error) {
	s.lastCreate = req
	return s.assessment, s.err
}

func (s *stubAssessmentService) Get(_ context.Context, id uuid.UUID) (*model.Assessment, error) {
	s.lastID = id
	return s.assessment, s.err
}

func (s *stubAssessmentService) List(_ context.Context, q dto.ListAssessmentsQuery, _, _ int) ([]model.Assessment, int64, error) {
	s.lastQuery = q
	if s.assessment == nil {
		return nil, 0, s.err
	}
	return []model.Assessment{*s.assessment}, 1, s.err
}

func (s *stubAssessmentService) GenerateQuestions(_ context.Context, id uuid.UUID, req dto.GenerateQuestionsRequest) (*model.Assessment, error) {
	s.lastID, s.lastGenerate = id, req
	return s.assessment, s.err
}

func (s *stubAssessmentService) Start(_ context.Context, id uuid.UUID) (*model.Assessment, error) {
	s.lastID = id
	return s.assessment, s.err
}

func (s *stubAssessmentService) SubmitAnswer(_ context.Context, id uuid.UUID, req dto.SubmitAnswerRequest) (*model.Answer, error) {
	s.lastID, s.lastAnswer = id, req
	return s.answer, s.err
}

func (s *stubAssessmentService) Submit(_ context.Context, id uuid.UUID) (*model.Assessment, error) {
	s.lastID = id
	return s.assessment, s.err
}

func (s *stubAssessmentService) EvaluateCode(_ context.Context, id uuid.UUID) (*model.Answer, error) {
	s.lastID = id
	return s.answer, s.err
}

func (s *stubAssessmentService) Suggest(_ context.Context, id uuid.UUID) (*assessment.Suggestion, error) {
	s.lastID = id
	return s.suggestion, s.err
}

func (s *stubAssessmentService) AnalyzeApplication(_ context.Context, id uuid.UUID) (*service.CandidateScore, error) {
	s.lastID = id
	return s.score, s.err
}

type routeRegistrar interface {
	RegisterRoutes(app *fiber.App)
}

func newTestApp(handlers ...routeRegistrar) *fiber.App {
	return newTestAppWithConfig(fiber.Config{}, handlers...)
}

func newTestAppWithConfig(cfg fiber.Config, handlers ...routeRegistrar) *fiber.App {
	app := fiber.New(cfg)
	for _, h := range handlers {
		h.RegisterRoutes(app)
	}
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, contentType string, body io.Reader) (int, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	return doRequest(t, app, method, path, fiber.MIMEApplicationJSON, r)
}

// multipartBody builds a form with the given fields and, when filename is set, a cv file part.
func multipartBody(t *testing.T, fields map[string]string, filename string, content []byte) (string, io.Reader) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("cv", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return w.FormDataContentType(), &buf
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return b
}
