package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"haircolor-mixer/catalog"
	"haircolor-mixer/logger"
	"haircolor-mixer/models"
)

var (
	// ErrRecipeRequestFailed wraps any failure of the recipe generator; there is no retry
	ErrRecipeRequestFailed = errors.New("recipe generation failed")
	// ErrStaleRecipeRequest is returned to a request superseded by a newer one for the same session
	ErrStaleRecipeRequest = errors.New("recipe request superseded by a newer request")
	// ErrEmptyRecipeRequest is returned when the request text is blank
	ErrEmptyRecipeRequest = errors.New("recipe request is empty")
)

// adviceSession tracks the in-flight request and latest answer of one session
type adviceSession struct {
	seq    uint64
	cancel context.CancelFunc
	latest *models.RecipeAdvice
}

// RecipeAdvisor asks a RecipeGenerator for recipes, one in-flight request per session
// A newer request cancels the previous one and only the newest result is kept
type RecipeAdvisor struct {
	generator RecipeGenerator
	catalogs  *catalog.Holder
	timeout   time.Duration

	mu       sync.Mutex
	sessions map[string]*adviceSession
}

// NewRecipeAdvisor creates a new RecipeAdvisor
func NewRecipeAdvisor(generator RecipeGenerator, catalogs *catalog.Holder, timeout time.Duration) *RecipeAdvisor {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &RecipeAdvisor{
		generator: generator,
		catalogs:  catalogs,
		timeout:   timeout,
		sessions:  make(map[string]*adviceSession),
	}
}

// Provider returns the generator name
func (a *RecipeAdvisor) Provider() string {
	return a.generator.Name()
}

// Request generates advice for sessionID
// The call is attempted once; failures wrap ErrRecipeRequestFailed.
// A request overtaken by a newer one for the same session returns ErrStaleRecipeRequest.
func (a *RecipeAdvisor) Request(ctx context.Context, sessionID string, req models.RecipeAdviceRequest) (*models.RecipeAdvice, error) {
	if strings.TrimSpace(req.Request) == "" {
		return nil, ErrEmptyRecipeRequest
	}
	cat, err := a.catalogs.Get()
	if err != nil {
		return nil, err
	}
	prompt, err := BuildRecipePrompt(cat, req.Brand, req.Request)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRecipeRequestFailed, err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	seq := a.begin(sessionID, cancel)

	logger.Info("🤖 RecipeAdvice: request started",
		zap.String("session", sessionID), zap.Uint64("sequence", seq), zap.String("provider", a.generator.Name()))

	text, genErr := a.generator.Generate(reqCtx, prompt)

	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.sessions[sessionID]
	if s == nil || s.seq != seq {
		logger.Info("RecipeAdvice: discarding superseded result",
			zap.String("session", sessionID), zap.Uint64("sequence", seq))
		return nil, ErrStaleRecipeRequest
	}
	s.cancel = nil

	if genErr != nil {
		logger.Error("❌ RecipeAdvice: generation failed",
			zap.String("session", sessionID), zap.Uint64("sequence", seq), zap.Error(genErr))
		return nil, fmt.Errorf("%w: %w", ErrRecipeRequestFailed, genErr)
	}

	advice := ParseRecipeAdvice(text)
	advice.RequestID = uuid.NewString()
	advice.Sequence = seq
	advice.Provider = a.generator.Name()
	advice.Request = strings.TrimSpace(req.Request)
	s.latest = &advice

	logger.Info("✅ RecipeAdvice: request completed",
		zap.String("session", sessionID), zap.Uint64("sequence", seq), zap.String("requestId", advice.RequestID))
	out := advice
	return &out, nil
}

// begin registers a new request, cancelling the one in flight, and returns its sequence number
func (a *RecipeAdvisor) begin(sessionID string, cancel context.CancelFunc) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.sessions[sessionID]
	if !ok {
		s = &adviceSession{}
		a.sessions[sessionID] = s
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	s.cancel = cancel
	return s.seq
}

// Latest returns the newest stored advice for sessionID
func (a *RecipeAdvisor) Latest(sessionID string) (*models.RecipeAdvice, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.sessions[sessionID]
	if !ok || s.latest == nil {
		return nil, false
	}
	out := *s.latest
	return &out, true
}

// Forget cancels any in-flight request and drops the session's advice
func (a *RecipeAdvisor) Forget(sessionID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if s, ok := a.sessions[sessionID]; ok {
		if s.cancel != nil {
			s.cancel()
		}
		delete(a.sessions, sessionID)
	}
}
