package usecase

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/fadilmartias/ats-matcher/internal/assessment"
	"github.com/fadilmartias/ats-matcher/internal/model"
	"github.com/fadilmartias/ats-matcher/internal/repository"
	"github.com/fadilmartias/ats-matcher/internal/service"
	"github.com/google/uuid"
)

type fakeProjectStore struct {
	projects map[uuid.UUID]*model.Project
	updates  int
}

func newFakeProjectStore(projects ...*model.Project) *fakeProjectStore {
	s := &fakeProjectStore{projects: map[uuid.UUID]*model.Project{}}
	for _, p := range projects {
		s.projects[p.ID] = p
	}
	return s
}

func (s *fakeProjectStore) Create(_ context.Context, p *model.Project) error {
	s.projects[p.ID] = p
	return nil
}

func (s *fakeProjectStore) Update(_ context.Context, p *model.Project) error {
	s.updates++
	s.projects[p.ID] = p
	return nil
}

func (s *fakeProjectStore) FindByID(_ context.Context, id uuid.UUID) (*model.Project, error) {
	p, ok := s.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *fakeProjectStore) List(_ context.Context, page, pageSize int) ([]model.Project, int64, error) {
	var out []model.Project
	for _, p := range s.projects {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (s *fakeProjectStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.projects[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.projects, id)
	return nil
}

type scoreUpdate struct {
	score    float64
	strategy string
}

type fakeApplicationStore struct {
	apps         map[uuid.UUID]*model.Application
	createErr    error
	scoreUpdates map[uuid.UUID]scoreUpdate
	scoreErr     map[uuid.UUID]error
	lastFilter   repository.ApplicationFilter
	analyses     map[uuid.UUID]json.RawMessage
}

func newFakeApplicationStore(apps ...*model.Application) *fakeApplicationStore {
	s := &fakeApplicationStore{
		apps:         map[uuid.UUID]*model.Application{},
		scoreUpdates: map[uuid.UUID]scoreUpdate{},
		analyses:     map[uuid.UUID]json.RawMessage{},
	}
	for _, a := range apps {
		s.apps[a.ID] = a
	}
	return s
}

func (s *fakeApplicationStore) Create(_ context.Context, a *model.Application) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.apps[a.ID] = a
	return nil
}

func (s *fakeApplicationStore) Update(_ context.Context, a *model.Application) error {
	s.apps[a.ID] = a
	return nil
}

func (s *fakeApplicationStore) UpdateScore(_ context.Context, id uuid.UUID, score float64, strategy string) error {
	if err := s.scoreErr[id]; err != nil {
		return err
	}
	s.scoreUpdates[id] = scoreUpdate{score: score, strategy: strategy}
	return nil
}

func (s *fakeApplicationStore) UpdateAIAnalysis(_ context.Context, id uuid.UUID, analysis json.RawMessage) error {
	if _, ok := s.apps[id]; !ok {
		return repository.ErrNotFound
	}
	s.analyses[id] = analysis
	return nil
}

func (s *fakeApplicationStore) FindByID(_ context.Context, id uuid.UUID) (*model.Application, error) {
	a, ok := s.apps[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *fakeApplicationStore) ExistsForCandidate(_ context.Context, projectID uuid.UUID, email string) (bool, error) {
	for _, a := range s.apps {
		if a.ProjectID == projectID && a.CandidateEmail == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeApplicationStore) ListByProject(_ context.Context, projectID uuid.UUID) ([]model.Application, error) {
	var out []model.Application
	for _, a := range s.apps {
		if a.ProjectID == projectID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CandidateEmail < out[j].CandidateEmail })
	return out, nil
}

func (s *fakeApplicationStore) List(_ context.Context, filter repository.ApplicationFilter, page, pageSize int) ([]model.Application, int64, error) {
	s.lastFilter = filter
	var out []model.Application
	for _, a := range s.apps {
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

type stubCVParser struct {
	extraction *service.CVExtraction
	err        error
	calls      int
	lastText   string
}

func (p *stubCVParser) Parse(_ context.Context, text string) (*service.CVExtraction, error) {
	p.calls++
	p.lastText = text
	return p.extraction, p.err
}

type stubAnalyzer struct {
	analysis *service.TranscriptAnalysis
	lastRate float64
}

func (a *stubAnalyzer) Analyze(_ context.Context, _ string, hourlyRate float64) *service.TranscriptAnalysis {
	a.lastRate = hourlyRate
	return a.analysis
}

type fakeAssessmentStore struct {
	assessments map[uuid.UUID]*model.Assessment
	questions   map[uuid.UUID]*model.Question
	answers     map[uuid.UUID]*model.Answer
	updates     int
	lastFilter  repository.AssessmentFilter
}

func newFakeAssessmentStore(assessments ...*model.Assessment) *fakeAssessmentStore {
	s := &fakeAssessmentStore{
		assessments: map[uuid.UUID]*model.Assessment{},
		questions:   map[uuid.UUID]*model.Question{},
		answers:     map[uuid.UUID]*model.Answer{},
	}
	for _, a := range assessments {
		s.assessments[a.ID] = a
		for i := range a.Questions {
			q := a.Questions[i]
			s.questions[q.ID] = &q
		}
		a.Questions = nil
	}
	return s
}

func (s *fakeAssessmentStore) Create(_ context.Context, a *model.Assessment) error {
	s.assessments[a.ID] = a
	return nil
}

func (s *fakeAssessmentStore) Update(_ context.Context, a *model.Assessment) error {
	s.updates++
	cp := *a
	cp.Questions = nil
	s.assessments[a.ID] = &cp
	return nil
}

func (s *fakeAssessmentStore) FindByID(_ context.Context, id uuid.UUID) (*model.Assessment, error) {
	a, ok := s.assessments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	cp.Questions = nil
	for _, q := range s.questions {
		if q.AssessmentID == id {
			cp.Questions = append(cp.Questions, *q)
		}
	}
	sort.Slice(cp.Questions, func(i, j int) bool { return cp.Questions[i].Position < cp.Questions[j].Position })
	return &cp, nil
}

func (s *fakeAssessmentStore) List(_ context.Context, filter repository.AssessmentFilter, page, pageSize int) ([]model.Assessment, int64, error) {
	s.lastFilter = filter
	var out []model.Assessment
	for _, a := range s.assessments {
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (s *fakeAssessmentStore) AddQuestions(_ context.Context, assessmentID uuid.UUID, questions []model.Question) error {
	next := 0
	for _, q := range s.questions {
		if q.AssessmentID == assessmentID {
			next++
		}
	}
	for i := range questions {
		questions[i].ID = uuid.New()
		questions[i].AssessmentID = assessmentID
		questions[i].Position = next + i
		q := questions[i]
		s.questions[q.ID] = &q
	}
	return nil
}

func (s *fakeAssessmentStore) FindQuestion(_ context.Context, id uuid.UUID) (*model.Question, error) {
	q, ok := s.questions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *q
	return &cp, nil
}

func (s *fakeAssessmentStore) CreateAnswer(_ context.Context, answer *model.Answer) error {
	for _, a := range s.answers {
		if a.QuestionID == answer.QuestionID {
			return repository.ErrDuplicate
		}
	}
	cp := *answer
	s.answers[answer.ID] = &cp
	return nil
}

func (s *fakeAssessmentStore) UpdateAnswer(_ context.Context, answer *model.Answer) error {
	cp := *answer
	cp.Question = nil
	s.answers[answer.ID] = &cp
	return nil
}

func (s *fakeAssessmentStore) FindAnswer(_ context.Context, id uuid.UUID) (*model.Answer, error) {
	a, ok := s.answers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	if q, ok := s.questions[a.QuestionID]; ok {
		qc := *q
		cp.Question = &qc
	}
	return &cp, nil
}

func (s *fakeAssessmentStore) SumPointsEarned(_ context.Context, assessmentID uuid.UUID) (float64, error) {
	var sum float64
	for _, a := range s.answers {
		if q, ok := s.questions[a.QuestionID]; ok && q.AssessmentID == assessmentID {
			sum += a.PointsEarned
		}
	}
	return sum, nil
}

type stubAssessmentGenerator struct {
	questions  []model.Question
	evaluation *assessment.CodeEvaluation
	suggestion *assessment.Suggestion
	err        error

	quizCalls      int
	codingCalls    int
	lastCount      int
	lastLanguage   string
	lastDifficulty string
	lastCode       string
	lastSuggestion service.SuggestionRequest
}

func (g *stubAssessmentGenerator) GenerateQuiz(_ context.Context, _ string, difficulty string, count int, language string) ([]model.Question, error) {
	g.quizCalls++
	g.lastDifficulty, g.lastCount, g.lastLanguage = difficulty, count, language
	return g.cloneQuestions(), g.err
}

func (g *stubAssessmentGenerator) GenerateCodingChallenges(_ context.Context, _ string, difficulty string, count int, language string) ([]model.Question, error) {
	g.codingCalls++
	g.lastDifficulty, g.lastCount, g.lastLanguage = difficulty, count, language
	return g.cloneQuestions(), g.err
}

func (g *stubAssessmentGenerator) EvaluateCode(_ context.Context, _ *model.Question, code, difficulty string) (*assessment.CodeEvaluation, error) {
	g.lastCode, g.lastDifficulty = code, difficulty
	return g.evaluation, g.err
}

func (g *stubAssessmentGenerator) SuggestAssessment(_ context.Context, req service.SuggestionRequest) *assessment.Suggestion {
	g.lastSuggestion = req
	return g.suggestion
}

func (g *stubAssessmentGenerator) cloneQuestions() []model.Question {
	if g.err != nil {
		return nil
	}
	return append([]model.Question(nil), g.questions...)
}

type stubCandidateScorer struct {
	score         *service.CandidateScore
	err           error
	lastExtracted string
}

func (s *stubCandidateScorer) ScoreCandidate(_ context.Context, _ *model.Project, extracted string) (*service.CandidateScore, error) {
	s.lastExtracted = extracted
	return s.score, s.err
}
