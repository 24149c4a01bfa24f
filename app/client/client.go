package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"survey-dashboard/app/models"
	"survey-dashboard/utils"
)

// SurveyAPI is the backend surface the dashboard consumes. Every call is a
// fresh round trip: no retries, no caching.
type SurveyAPI interface {
	GetChartData(ctx context.Context) (*models.AggregateStats, error)
	GetSearchData(ctx context.Context, f models.SearchFilters) (*models.SearchResponse, error)
	GetTopPerformers(ctx context.Context) ([]models.TopPerformer, error)
	ListQuestions(ctx context.Context) ([]models.Question, error)
	CreateQuestion(ctx context.Context, q models.QuestionInput) error
	UpdateQuestion(ctx context.Context, id int, q models.QuestionInput) error
	DeleteQuestion(ctx context.Context, id int) error
	CheckNIM(ctx context.Context, nim string) (*models.NIMAvailability, error)
	SubmitIntake(ctx context.Context, form models.IntakeForm) (string, error)
	ExportURL(format string, f models.SearchFilters) string
}

type Options struct {
	BaseURL string
	// Timeout of zero leaves requests unbounded unless ctx has a deadline.
	Timeout       time.Duration
	ServiceSecret string
	Logger        *zap.Logger
}

type surveyAPI struct {
	baseURL string
	timeout time.Duration
	secret  string
	log     *zap.Logger
}

func New(opts Options) SurveyAPI {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &surveyAPI{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		timeout: opts.Timeout,
		secret:  opts.ServiceSecret,
		log:     log,
	}
}

// EncodeFilters builds the search/export query. Unset filters are omitted,
// never sent as wildcards.
func EncodeFilters(f models.SearchFilters) url.Values {
	q := url.Values{}
	if v := strings.TrimSpace(f.Q); v != "" {
		q.Set("q", v)
	}
	if v := normalizeChoice(f.Prodi); v != "" {
		q.Set("prodi", v)
	}
	if v := normalizeChoice(f.Semester); v != "" {
		q.Set("semester", v)
	}
	return q
}

func normalizeChoice(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}

func (s *surveyAPI) GetChartData(ctx context.Context) (*models.AggregateStats, error) {
	var out models.AggregateStats
	if err := s.do(ctx, fiber.MethodGet, "/api/chart-data", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *surveyAPI) GetSearchData(ctx context.Context, f models.SearchFilters) (*models.SearchResponse, error) {
	var out models.SearchResponse
	if err := s.do(ctx, fiber.MethodGet, "/api/search-data", EncodeFilters(f), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *surveyAPI) GetTopPerformers(ctx context.Context) ([]models.TopPerformer, error) {
	var out models.TopPerformersResponse
	if err := s.do(ctx, fiber.MethodGet, "/api/top-performers", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.TopPerformers, nil
}

func (s *surveyAPI) ListQuestions(ctx context.Context) ([]models.Question, error) {
	var out []models.Question
	if err := s.do(ctx, fiber.MethodGet, "/api/questions", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *surveyAPI) CreateQuestion(ctx context.Context, q models.QuestionInput) error {
	return s.do(ctx, fiber.MethodPost, "/api/questions", nil, q, nil)
}

func (s *surveyAPI) UpdateQuestion(ctx context.Context, id int, q models.QuestionInput) error {
	return s.do(ctx, fiber.MethodPut, "/api/questions/"+strconv.Itoa(id), nil, q, nil)
}

func (s *surveyAPI) DeleteQuestion(ctx context.Context, id int) error {
	return s.do(ctx, fiber.MethodDelete, "/api/questions/"+strconv.Itoa(id), nil, nil, nil)
}

func (s *surveyAPI) CheckNIM(ctx context.Context, nim string) (*models.NIMAvailability, error) {
	var out models.NIMAvailability
	if err := s.do(ctx, fiber.MethodGet, "/check-nim/"+url.PathEscape(nim), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ErrIntakeRejected is returned when the backend answers the intake POST
// without redirecting to the survey.
var ErrIntakeRejected = &AppError{Path: "/", Msg: "Data tidak dapat disimpan, periksa kembali NIM Anda"}

// SubmitIntake posts the respondent form to the backend and returns the
// survey URL it redirects to.
func (s *surveyAPI) SubmitIntake(ctx context.Context, form models.IntakeForm) (string, error) {
	vals := url.Values{}
	vals.Set("nama", form.Nama)
	vals.Set("nim", form.NIM)
	vals.Set("prodi", form.Prodi)
	vals.Set("semester", form.Semester)

	a, err := s.agent(ctx, fiber.MethodPost, "/", nil)
	if err != nil {
		return "", err
	}
	a.ContentType(fiber.MIMEApplicationForm)
	a.BodyString(vals.Encode())

	resp := fiber.AcquireResponse()
	defer fiber.ReleaseResponse(resp)
	a.SetResponse(resp)

	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return "", &TransportError{Method: fiber.MethodPost, Path: "/", Err: errs[0]}
	}
	if code >= 300 && code < 400 {
		loc := string(resp.Header.Peek(fiber.HeaderLocation))
		if loc == "" {
			return "", ErrIntakeRejected
		}
		return s.absolute(loc), nil
	}
	if code < 200 || code >= 300 {
		msg, _ := errorField(body)
		return "", &TransportError{Method: fiber.MethodPost, Path: "/", Status: code, Msg: msg}
	}
	if msg, ok := errorField(body); ok {
		return "", &AppError{Path: "/", Msg: msg}
	}
	return "", ErrIntakeRejected
}

// ExportURL is navigated to by the browser, never fetched here.
func (s *surveyAPI) ExportURL(format string, f models.SearchFilters) string {
	u := s.baseURL + "/export/" + url.PathEscape(format)
	if q := EncodeFilters(f).Encode(); q != "" {
		u += "?" + q
	}
	return u
}

func (s *surveyAPI) absolute(loc string) string {
	if strings.HasPrefix(loc, "/") {
		return s.baseURL + loc
	}
	return loc
}

func (s *surveyAPI) agent(ctx context.Context, method, path string, query url.Values) (*fiber.Agent, error) {
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}

	target := s.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	a := fiber.AcquireAgent()
	req := a.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(target)

	reqID := utils.RequestIDFrom(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	a.Set(fiber.HeaderXRequestID, reqID)
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if s.secret != "" {
		token, err := utils.GenerateServiceToken(s.secret, reqID)
		if err != nil {
			fiber.ReleaseAgent(a)
			return nil, fmt.Errorf("sign service token: %w", err)
		}
		a.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	if t := s.timeoutFor(ctx); t > 0 {
		a.Timeout(t)
	}

	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}
	s.log.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", reqID))
	return a, nil
}

func (s *surveyAPI) timeoutFor(ctx context.Context) time.Duration {
	t := s.timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); t == 0 || left < t {
			t = left
		}
	}
	return t
}

func (s *surveyAPI) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	a, err := s.agent(ctx, method, path, query)
	if err != nil {
		return err
	}
	if body != nil {
		a.JSON(body)
	}

	code, respBody, errs := a.Bytes()
	if len(errs) > 0 {
		s.log.Warn("api unreachable", zap.String("path", path), zap.Error(errs[0]))
		return &TransportError{Method: method, Path: path, Err: errs[0]}
	}
	if code < 200 || code >= 300 {
		msg, _ := errorField(respBody)
		s.log.Warn("api status", zap.String("path", path), zap.Int("status", code))
		return &TransportError{Method: method, Path: path, Status: code, Msg: msg}
	}
	if msg, ok := errorField(respBody); ok {
		return &AppError{Path: path, Msg: msg}
	}
	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &TransportError{Method: method, Path: path, Status: code, Err: fmt.Errorf("decode body: %w", err)}
	}
	return nil
}
