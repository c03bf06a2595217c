package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"outings-api/core/constants"
	"outings-api/core/errors"
	"outings-api/core/logger"
	"outings-api/core/metrics"
	"outings-api/core/utils"
	activityDto "outings-api/modules/activity/dto"
	activityEntity "outings-api/modules/activity/entity"
	"outings-api/modules/activity/validator"
	"outings-api/modules/generation/dto"
	"outings-api/modules/generation/entity"
)

// ActivityCreator validates and stores a submitted draft.
type ActivityCreator interface {
	CreateActivity(ctx context.Context, organizerID string, req *activityDto.CreateActivityRequest) (*activityDto.ActivityResponse, *errors.AppError)
}

type draftState struct {
	draft entity.Draft

	// seq identifies the latest generation; older results are dropped.
	seq    uint64
	cancel context.CancelFunc
}

// DraftService keeps create-form drafts in memory and runs generations for them.
// A generation only ever writes into its own draft, and only if it is still the
// latest one started and the draft still exists.
type DraftService struct {
	generator Generator
	creator   ActivityCreator
	timeout   time.Duration
	now       func() time.Time

	mu     sync.Mutex
	drafts map[string]*draftState
	wg     sync.WaitGroup
}

type DraftOption func(*DraftService)

func WithDraftClock(now func() time.Time) DraftOption {
	return func(s *DraftService) {
		s.now = now
	}
}

func WithGenerationTimeout(timeout time.Duration) DraftOption {
	return func(s *DraftService) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

func NewDraftService(generator Generator, creator ActivityCreator, opts ...DraftOption) *DraftService {
	s := &DraftService{
		generator: generator,
		creator:   creator,
		timeout:   constants.GenerationTimeout,
		now:       time.Now,
		drafts:    make(map[string]*draftState),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *DraftService) Create(ownerID string, form *activityDto.CreateActivityRequest) *dto.DraftResponse {
	now := s.now()
	draft := entity.Draft{
		ID:        utils.PrefixDraft + "-" + utils.GenerateShortID(12),
		OwnerID:   ownerID,
		Capacity:  validator.DefaultCapacity,
		Type:      string(activityEntity.ActivityTypeHike),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if form != nil {
		applyForm(&draft, form)
	}

	s.mu.Lock()
	s.drafts[draft.ID] = &draftState{draft: draft}
	s.mu.Unlock()

	logger.Info("DraftService:Create", "draft_id", draft.ID, "owner_id", ownerID)
	return toDraftResponse(draft)
}

func (s *DraftService) Get(ownerID, draftID string) (*dto.DraftResponse, *errors.AppError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, appErr := s.lookup(ownerID, draftID)
	if appErr != nil {
		return nil, appErr
	}
	return toDraftResponse(st.draft), nil
}

func (s *DraftService) Update(ownerID, draftID string, req *dto.UpdateDraftRequest) (*dto.DraftResponse, *errors.AppError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, appErr := s.lookup(ownerID, draftID)
	if appErr != nil {
		return nil, appErr
	}

	d := &st.draft
	if req.Title != nil {
		d.Title = *req.Title
	}
	if req.Description != nil {
		d.Description = *req.Description
	}
	if req.Location != nil {
		d.Location = *req.Location
	}
	if req.Coordinates != nil {
		lat, lng := req.Coordinates.Lat, req.Coordinates.Lng
		d.Lat, d.Lng = &lat, &lng
	}
	if req.Datetime != nil {
		d.Datetime = *req.Datetime
	}
	if req.Capacity != nil {
		d.Capacity = *req.Capacity
	}
	if req.Image != nil {
		d.Image = *req.Image
	}
	if req.Type != nil {
		d.Type = *req.Type
	}
	d.UpdatedAt = s.now()

	return toDraftResponse(st.draft), nil
}

// StartGeneration launches the generator for the draft and returns immediately.
// A running generation for the same draft is cancelled and its result discarded.
// The returned channel is closed once this generation has been applied or dropped.
func (s *DraftService) StartGeneration(ownerID, draftID, prompt string) (*dto.DraftResponse, <-chan struct{}, *errors.AppError) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, nil, errors.NewAppError(errors.ErrInvalidInput, "prompt is required", nil)
	}

	s.mu.Lock()
	st, appErr := s.lookup(ownerID, draftID)
	if appErr != nil {
		s.mu.Unlock()
		return nil, nil, appErr
	}

	if st.cancel != nil {
		st.cancel()
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	st.seq++
	st.cancel = cancel
	st.draft.Prompt = prompt
	st.draft.Generating = true
	st.draft.Error = ""
	seq := st.seq
	resp := toDraftResponse(st.draft)
	s.mu.Unlock()

	done := make(chan struct{})
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(done)
		defer cancel()

		details, err := s.generator.Generate(ctx, prompt)
		s.finishGeneration(draftID, seq, details, err)
	}()

	logger.Info("DraftService:StartGeneration", "draft_id", draftID, "seq", seq)
	return resp, done, nil
}

func (s *DraftService) finishGeneration(draftID string, seq uint64, details *entity.ActivityDetails, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.drafts[draftID]
	if !ok || st.seq != seq {
		metrics.GenerationCalls.WithLabelValues(metrics.OutcomeCancelled).Inc()
		logger.Info("DraftService:Generation:Discarded", "draft_id", draftID, "seq", seq)
		return
	}

	st.cancel = nil
	st.draft.Generating = false
	st.draft.UpdatedAt = s.now()

	if err != nil {
		// title and description stay as the organizer left them
		st.draft.Error = constants.MsgGenerationFailed
		metrics.GenerationCalls.WithLabelValues(metrics.OutcomeFailure).Inc()
		logger.Error("DraftService:Generation:Error", "draft_id", draftID, "error", err)
		return
	}

	st.draft.Title = details.Title
	st.draft.Description = details.Description
	st.draft.Error = ""
	metrics.GenerationCalls.WithLabelValues(metrics.OutcomeSuccess).Inc()
	logger.Info("DraftService:Generation:Success", "draft_id", draftID)
}

// Delete drops the draft and cancels its generation. Late results are discarded.
func (s *DraftService) Delete(ownerID, draftID string) *errors.AppError {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, appErr := s.lookup(ownerID, draftID)
	if appErr != nil {
		return appErr
	}
	if st.cancel != nil {
		st.cancel()
	}
	delete(s.drafts, draftID)

	logger.Info("DraftService:Delete", "draft_id", draftID)
	return nil
}

// Submit validates the draft through the activity service. On success the draft is
// removed; on a validation error it is kept so the organizer can fix it.
func (s *DraftService) Submit(ctx context.Context, ownerID, draftID string) (*activityDto.ActivityResponse, *errors.AppError) {
	s.mu.Lock()
	st, appErr := s.lookup(ownerID, draftID)
	if appErr != nil {
		s.mu.Unlock()
		return nil, appErr
	}
	form := toForm(st.draft)
	s.mu.Unlock()

	activity, appErr := s.creator.CreateActivity(ctx, ownerID, &form)
	if appErr != nil {
		return nil, appErr
	}

	if err := s.Delete(ownerID, draftID); err != nil {
		logger.Warn("DraftService:Submit:DraftAlreadyGone", "draft_id", draftID)
	}
	return activity, nil
}

// Close cancels every running generation and waits for the goroutines to return.
func (s *DraftService) Close() {
	s.mu.Lock()
	for _, st := range s.drafts {
		if st.cancel != nil {
			st.cancel()
		}
	}
	s.mu.Unlock()
	s.wg.Wait()
}

// Generate runs the generator once, outside of any draft.
func (s *DraftService) Generate(ctx context.Context, prompt string) (*dto.GenerateResponse, *errors.AppError) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "prompt is required", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	details, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		metrics.GenerationCalls.WithLabelValues(metrics.OutcomeFailure).Inc()
		logger.Error("DraftService:Generate:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrGenerationFailed, constants.MsgGenerationFailed, err)
	}
	metrics.GenerationCalls.WithLabelValues(metrics.OutcomeSuccess).Inc()
	return &dto.GenerateResponse{Title: details.Title, Description: details.Description}, nil
}

// lookup must be called with mu held. Drafts of other users look missing.
func (s *DraftService) lookup(ownerID, draftID string) (*draftState, *errors.AppError) {
	st, ok := s.drafts[draftID]
	if !ok || st.draft.OwnerID != ownerID {
		return nil, errors.NewAppError(errors.ErrNotFound, "draft not found", nil)
	}
	return st, nil
}

func applyForm(d *entity.Draft, form *activityDto.CreateActivityRequest) {
	d.Title = form.Title
	d.Description = form.Description
	d.Location = form.Location
	if form.Coordinates != nil {
		lat, lng := form.Coordinates.Lat, form.Coordinates.Lng
		d.Lat, d.Lng = &lat, &lng
	}
	d.Datetime = form.Datetime
	if form.Capacity != 0 {
		d.Capacity = form.Capacity
	}
	d.Image = form.Image
	if form.Type != "" {
		d.Type = form.Type
	}
}

func toForm(d entity.Draft) activityDto.CreateActivityRequest {
	form := activityDto.CreateActivityRequest{
		Title:       d.Title,
		Description: d.Description,
		Location:    d.Location,
		Datetime:    d.Datetime,
		Capacity:    d.Capacity,
		Image:       d.Image,
		Type:        d.Type,
	}
	if d.Lat != nil && d.Lng != nil {
		form.Coordinates = &activityDto.GeoPoint{Lat: *d.Lat, Lng: *d.Lng}
	}
	return form
}

func toDraftResponse(d entity.Draft) *dto.DraftResponse {
	return &dto.DraftResponse{
		ID:         d.ID,
		Form:       toForm(d),
		Prompt:     d.Prompt,
		Generating: d.Generating,
		Error:      d.Error,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}
