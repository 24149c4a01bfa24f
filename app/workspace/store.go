package workspace

import (
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"survey-dashboard/app/client"
	"survey-dashboard/config"
)

// CookieName carries the view id; it only scopes page state, not identity.
const CookieName = "survey_view"

const DefaultIdleTTL = 30 * time.Minute

// Store keeps one Workspace per browser view and drops idle ones.
type Store struct {
	api      client.SurveyAPI
	views    *config.Views
	validate *validator.Validate
	log      *zap.Logger
	ttl      time.Duration
	now      func() time.Time

	mu    sync.Mutex
	items map[uuid.UUID]*Workspace
}

func NewStore(api client.SurveyAPI, views *config.Views, validate *validator.Validate, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &Store{
		api:      api,
		views:    views,
		validate: validate,
		log:      log,
		ttl:      DefaultIdleTTL,
		now:      time.Now,
		items:    make(map[uuid.UUID]*Workspace),
	}
}

// Get returns the workspace for a cookie value, creating a fresh one when
// the value is missing, malformed or expired. created reports the latter.
func (s *Store) Get(raw string) (w *Workspace, created bool, err error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep(now)

	if id, perr := uuid.Parse(raw); perr == nil {
		if w, ok := s.items[id]; ok {
			w.touch(now)
			return w, false, nil
		}
	}

	w, err = New(uuid.New(), s.api, s.views, s.validate, s.log)
	if err != nil {
		return nil, false, err
	}
	w.touch(now)
	s.items[w.ID] = w
	return w, true, nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) sweep(now time.Time) {
	for id, w := range s.items {
		if w.idleSince(now) > s.ttl {
			released := w.Close()
			delete(s.items, id)
			s.log.Debug("workspace expired", zap.String("view", id.String()), zap.Int("charts_released", released))
		}
	}
}
