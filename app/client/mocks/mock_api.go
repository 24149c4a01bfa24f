package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"survey-dashboard/app/client"
	"survey-dashboard/app/models"
)

type MockSurveyAPI struct {
	mock.Mock
}

var _ client.SurveyAPI = (*MockSurveyAPI)(nil)

func (m *MockSurveyAPI) GetChartData(ctx context.Context) (*models.AggregateStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AggregateStats), args.Error(1)
}

func (m *MockSurveyAPI) GetSearchData(ctx context.Context, f models.SearchFilters) (*models.SearchResponse, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SearchResponse), args.Error(1)
}

func (m *MockSurveyAPI) GetTopPerformers(ctx context.Context) ([]models.TopPerformer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TopPerformer), args.Error(1)
}

func (m *MockSurveyAPI) ListQuestions(ctx context.Context) ([]models.Question, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Question), args.Error(1)
}

func (m *MockSurveyAPI) CreateQuestion(ctx context.Context, q models.QuestionInput) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockSurveyAPI) UpdateQuestion(ctx context.Context, id int, q models.QuestionInput) error {
	args := m.Called(ctx, id, q)
	return args.Error(0)
}

func (m *MockSurveyAPI) DeleteQuestion(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSurveyAPI) CheckNIM(ctx context.Context, nim string) (*models.NIMAvailability, error) {
	args := m.Called(ctx, nim)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NIMAvailability), args.Error(1)
}

func (m *MockSurveyAPI) SubmitIntake(ctx context.Context, form models.IntakeForm) (string, error) {
	args := m.Called(ctx, form)
	return args.String(0), args.Error(1)
}

func (m *MockSurveyAPI) ExportURL(format string, f models.SearchFilters) string {
	args := m.Called(format, f)
	return args.String(0)
}
