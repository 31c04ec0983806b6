package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fadilmartias/ats-matcher/internal/config"
	"github.com/fadilmartias/ats-matcher/internal/logger"
	"github.com/fadilmartias/ats-matcher/internal/matching"
	"github.com/fadilmartias/ats-matcher/internal/model"
	"github.com/fadilmartias/ats-matcher/internal/repository"
	"github.com/fadilmartias/ats-matcher/internal/util"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CVUpload is an uploaded CV that has not been written to disk yet.
type CVUpload struct {
	Filename string
	Size     int64
	Save     func(dst string) error
}

type SubmitApplicationInput struct {
	ProjectID      uuid.UUID
	CandidateName  string
	CandidateEmail string
}

type ApplicationUsecase struct {
	projects     ProjectStore
	applications ApplicationStore
	parser       CVParser
	extractText  TextExtractor
	strategy     matching.Strategy
	upload       *config.UploadConfig
	log          *zap.Logger
}

func NewApplicationUsecase(
	projects ProjectStore,
	applications ApplicationStore,
	parser CVParser,
	extractText TextExtractor,
	strategy matching.Strategy,
	upload *config.UploadConfig,
	log *zap.Logger,
) *ApplicationUsecase {
	return &ApplicationUsecase{
		projects:     projects,
		applications: applications,
		parser:       parser,
		extractText:  extractText,
		strategy:     strategy,
		upload:       upload,
		log:          logger.OrNop(log),
	}
}

// Submit stores the CV, structures it with the LLM and scores the candidate's
// hard skills against the project's required skills.
func (uc *ApplicationUsecase) Submit(ctx context.Context, in SubmitApplicationInput, cv CVUpload) (*model.Application, error) {
	ext := strings.ToLower(filepath.Ext(cv.Filename))
	if !slices.Contains(util.SupportedCVExtensions, ext) {
		return nil, ErrUnsupportedFile
	}
	if cv.Size > uc.upload.MaxSizeBytes() {
		return nil, ErrFileTooLarge
	}
	email := strings.ToLower(strings.TrimSpace(in.CandidateEmail))

	project, err := uc.projects.FindByID(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	exists, err := uc.applications.ExistsForCandidate(ctx, project.ID, email)
	if err != nil {
		return nil, fmt.Errorf("check existing application: %w", err)
	}
	if exists {
		return nil, ErrDuplicateApplication
	}

	app := &model.Application{
		ID:             uuid.New(),
		ProjectID:      project.ID,
		CandidateName:  strings.TrimSpace(in.CandidateName),
		CandidateEmail: email,
		Extracted:      "{}",
		Status:         model.ApplicationStatusSubmitted,
	}

	if err := os.MkdirAll(uc.upload.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	app.CVPath = filepath.Join(uc.upload.Dir, app.ID.String()+ext)
	if err := cv.Save(app.CVPath); err != nil {
		return nil, fmt.Errorf("save cv: %w", err)
	}

	app.ParsedText = uc.readCV(app.CVPath)
	if strings.TrimSpace(app.ParsedText) != "" {
		extraction, err := uc.parser.Parse(ctx, app.ParsedText)
		if err != nil {
			uc.log.Warn("cv structuring failed", zap.String("application_id", app.ID.String()), zap.Error(err))
			app.Extracted = errorJSON(err)
		} else {
			app.Extracted = extraction.Raw
			app.HardSkills = extraction.HardSkills
		}
	}

	app.MatchScore = matching.Score(uc.strategy, project.RequiredSkills, app.HardSkills)
	app.MatchStrategy = string(uc.strategy)

	if err := uc.applications.Create(ctx, app); err != nil {
		_ = os.Remove(app.CVPath)
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateApplication
		}
		return nil, fmt.Errorf("create application: %w", err)
	}

	uc.log.Info("application submitted",
		zap.String("application_id", app.ID.String()),
		zap.String("project_id", project.ID.String()),
		zap.Int("hard_skills", len(app.HardSkills)),
		zap.Float64("match_score", app.MatchScore))
	return app, nil
}

// readCV extracts and caps the CV text. Failures are logged and yield "".
func (uc *ApplicationUsecase) readCV(path string) string {
	text, err := uc.extractText(path)
	if err != nil {
		uc.log.Warn("cv text extraction failed", zap.String("path", path), zap.Error(err))
		return ""
	}
	return util.TruncateRunes(text, uc.upload.CVMaxChars)
}

func (uc *ApplicationUsecase) Get(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	return uc.applications.FindByID(ctx, id)
}

func (uc *ApplicationUsecase) List(ctx context.Context, filter repository.ApplicationFilter, page, pageSize int) ([]model.Application, int64, error) {
	filter.CandidateEmail = strings.ToLower(strings.TrimSpace(filter.CandidateEmail))
	filter.Status = strings.ToUpper(strings.TrimSpace(filter.Status))
	return uc.applications.List(ctx, filter, page, pageSize)
}

func (uc *ApplicationUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Application, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if !model.IsValidApplicationStatus(status) {
		return nil, ErrInvalidStatus
	}
	app, err := uc.applications.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.Status == status {
		return app, nil
	}
	app.Status = status
	if err := uc.applications.Update(ctx, app); err != nil {
		return nil, fmt.Errorf("update application status: %w", err)
	}
	return app, nil
}

func errorJSON(err error) string {
	b, _ := json.Marshal(map[string]string{"error": err.Error()})
	return string(b)
}
