package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/fadilmartias/ats-matcher/internal/dto"
	"github.com/fadilmartias/ats-matcher/internal/logger"
	"github.com/fadilmartias/ats-matcher/internal/matching"
	"github.com/fadilmartias/ats-matcher/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultPriority = 3

type ProjectUsecase struct {
	projects     ProjectStore
	applications ApplicationStore
	analyzer     TranscriptAnalyzer
	strategy     matching.Strategy
	log          *zap.Logger
}

func NewProjectUsecase(projects ProjectStore, applications ApplicationStore, analyzer TranscriptAnalyzer, strategy matching.Strategy, log *zap.Logger) *ProjectUsecase {
	return &ProjectUsecase{
		projects:     projects,
		applications: applications,
		analyzer:     analyzer,
		strategy:     strategy,
		log:          logger.OrNop(log),
	}
}

func (uc *ProjectUsecase) Create(ctx context.Context, req dto.CreateProjectRequest) (*model.Project, error) {
	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	priority := req.Priority
	if priority == 0 {
		priority = defaultPriority
	}

	p := &model.Project{
		ID:             uuid.New(),
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		RequiredSkills: cleanSkills(req.RequiredSkills),
		StartDate:      start,
		EndDate:        end,
		Priority:       priority,
		ClientName:     req.ClientName,
		HourlyRate:     req.HourlyRate,
		EstimatedHours: req.EstimatedHours,
		EstimatedCost:  req.HourlyRate * req.EstimatedHours,
		AIResult:       "null",
	}
	if err := uc.projects.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return p, nil
}

// CreateFromTranscript builds a project from a client meeting transcript.
func (uc *ProjectUsecase) CreateFromTranscript(ctx context.Context, req dto.TranscriptProjectRequest) (*model.Project, error) {
	if strings.TrimSpace(req.Transcript) == "" {
		return nil, ErrTranscriptRequired
	}

	analysis := uc.analyzer.Analyze(ctx, req.Transcript, req.HourlyRate)

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = analysis.ProjectTitle
	}
	if title == "" {
		title = "Untitled project"
	}
	cost := analysis.EstimatedCost
	if cost == 0 {
		cost = analysis.TotalEstimatedHours * req.HourlyRate
	}

	p := &model.Project{
		ID:             uuid.New(),
		Title:          title,
		Description:    analysis.ProjectSummary,
		RequiredSkills: cleanSkills(analysis.RequiredSkills),
		Priority:       defaultPriority,
		ClientName:     req.ClientName,
		HourlyRate:     req.HourlyRate,
		EstimatedHours: analysis.TotalEstimatedHours,
		EstimatedCost:  cost,
		Transcript:     req.Transcript,
		AIResult:       analysis.Raw,
	}
	if err := uc.projects.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	uc.log.Info("project created from transcript",
		zap.String("project_id", p.ID.String()),
		zap.Strings("required_skills", p.RequiredSkills))
	return p, nil
}

func (uc *ProjectUsecase) Get(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	return uc.projects.FindByID(ctx, id)
}

func (uc *ProjectUsecase) List(ctx context.Context, page, pageSize int) ([]model.Project, int64, error) {
	return uc.projects.List(ctx, page, pageSize)
}

// Update applies a partial update. Changing the required skills rescores every
// application of the project.
func (uc *ProjectUsecase) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProjectRequest) (*model.Project, error) {
	p, err := uc.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		p.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.ClientName != nil {
		p.ClientName = *req.ClientName
	}
	if req.Priority != nil {
		p.Priority = *req.Priority
	}
	if req.StartDate != nil || req.EndDate != nil {
		startRaw, endRaw := dto.FormatDate(p.StartDate), dto.FormatDate(p.EndDate)
		if req.StartDate != nil {
			startRaw = *req.StartDate
		}
		if req.EndDate != nil {
			endRaw = *req.EndDate
		}
		if p.StartDate, p.EndDate, err = parseDateRange(startRaw, endRaw); err != nil {
			return nil, err
		}
	}
	if req.HourlyRate != nil || req.EstimatedHours != nil {
		if req.HourlyRate != nil {
			p.HourlyRate = *req.HourlyRate
		}
		if req.EstimatedHours != nil {
			p.EstimatedHours = *req.EstimatedHours
		}
		p.EstimatedCost = p.HourlyRate * p.EstimatedHours
	}

	skillsChanged := false
	if req.RequiredSkills != nil {
		skills := cleanSkills(*req.RequiredSkills)
		skillsChanged = !slices.Equal(skills, p.RequiredSkills)
		p.RequiredSkills = skills
	}

	if err := uc.projects.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	if skillsChanged {
		// The skill change is already stored; a failed rescore leaves stale
		// scores that the next skill update recomputes.
		if err := uc.rescore(ctx, p); err != nil {
			uc.log.Error("rescore failed", zap.String("project_id", p.ID.String()), zap.Error(err))
		}
	}
	return p, nil
}

func (uc *ProjectUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.projects.Delete(ctx, id)
}

func (uc *ProjectUsecase) rescore(ctx context.Context, p *model.Project) error {
	apps, err := uc.applications.ListByProject(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("list applications: %w", err)
	}

	var (
		updated int
		errs    []error
	)
	for _, app := range apps {
		score := matching.Score(uc.strategy, p.RequiredSkills, app.HardSkills)
		if score == app.MatchScore && app.MatchStrategy == string(uc.strategy) {
			continue
		}
		if err := uc.applications.UpdateScore(ctx, app.ID, score, string(uc.strategy)); err != nil {
			errs = append(errs, fmt.Errorf("rescore application %s: %w", app.ID, err))
			continue
		}
		updated++
	}
	uc.log.Info("applications rescored",
		zap.String("project_id", p.ID.String()),
		zap.Int("applications", len(apps)),
		zap.Int("updated", updated),
		zap.Int("failed", len(errs)))
	return errors.Join(errs...)
}

func parseDateRange(startRaw, endRaw string) (start, end *time.Time, err error) {
	if start, err = dto.ParseDate(startRaw); err != nil {
		return nil, nil, fmt.Errorf("start date: %w", err)
	}
	if end, err = dto.ParseDate(endRaw); err != nil {
		return nil, nil, fmt.Errorf("end date: %w", err)
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, nil, ErrInvalidDateRange
	}
	return start, end, nil
}

// cleanSkills trims labels and drops empty ones, keeping order.
func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
