package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"finbot/internal/classifier"
	"finbot/internal/domain"
	"finbot/internal/gateway"
	"finbot/internal/session"

	"go.uber.org/zap"
)

// DialogOptions holds the dialog policy knobs
type DialogOptions struct {
	SessionTimeout      time.Duration
	ConfidenceThreshold float64
	MaxAuthAttempts     int
	CallTimeout         time.Duration
}

// DefaultDialogOptions mirrors the documented policy defaults
func DefaultDialogOptions() DialogOptions {
	return DialogOptions{
		SessionTimeout:      30 * time.Minute,
		ConfidenceThreshold: 0.4,
		MaxAuthAttempts:     3,
		CallTimeout:         5 * time.Second,
	}
}

// Reply is the outcome of one processed message
type Reply struct {
	Text       string
	Intent     string
	Confidence float64
}

// DialogService drives the per-user dialog state machine
type DialogService struct {
	registry   *session.Registry
	classifier classifier.Classifier
	gateway    gateway.Gateway
	opts       DialogOptions
	logger     *zap.Logger
}

// NewDialogService creates the dialog service
func NewDialogService(
	registry *session.Registry,
	cls classifier.Classifier,
	gw gateway.Gateway,
	opts DialogOptions,
	logger *zap.Logger,
) *DialogService {
	return &DialogService{
		registry:   registry,
		classifier: cls,
		gateway:    gw,
		opts:       opts,
		logger:     logger,
	}
}

// ProcessMessage handles one inbound message and always yields a reply.
// Handler execution is serialized per user by the session lock; the sweep
// skips locked sessions, so a session is never evicted mid-handler.
func (s *DialogService) ProcessMessage(ctx context.Context, userID, text string) (reply Reply) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Panic in dialog handler",
				zap.String("user_id", userID),
				zap.Any("panic", r),
			)
			reply = Reply{Text: replyUnavailable}
		}
	}()

	// Sweep before lookup so a message after an idle timeout starts a
	// brand-new session instead of resuming the stale one
	s.registry.Sweep(s.opts.SessionTimeout)

	sess := s.registry.GetOrCreate(userID)
	sess.Lock()
	defer sess.Unlock()

	sess.Touch()
	text = strings.TrimSpace(text)

	switch sess.State {
	case domain.StateStart:
		return s.handleStart(sess)
	case domain.StateAuthentication:
		return s.handleAuthentication(ctx, sess, text)
	case domain.StateMainMenu:
		return s.handleMainMenu(ctx, sess, text)
	case domain.StateWaitingConfirmation:
		return s.handleConfirmation(ctx, sess, text)
	case domain.StateProcessingRequest:
		return s.handleProcessing(sess)
	case domain.StateEnd:
		return Reply{Text: replyClosed}
	default:
		s.logger.Warn("Session in unknown state",
			zap.String("user_id", userID),
			zap.String("state", string(sess.State)),
		)
		return Reply{Text: replyRestart}
	}
}

func (s *DialogService) handleStart(sess *domain.Session) Reply {
	sess.UpdateState(domain.StateAuthentication)
	return Reply{Text: replyWelcome}
}

func (s *DialogService) handleAuthentication(ctx context.Context, sess *domain.Session, text string) Reply {
	// Malformed input is not an attempt
	if !isClientID(text) {
		return Reply{Text: replyBadFormat}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.opts.CallTimeout)
	defer cancel()

	ok, err := s.gateway.VerifyClient(callCtx, text)
	if err != nil {
		s.logger.Error("Client verification failed",
			zap.String("user_id", sess.UserID),
			zap.Error(err),
		)
		return Reply{Text: replyUnavailable}
	}

	if !ok {
		sess.AuthAttempts++
		if sess.AuthAttempts >= s.opts.MaxAuthAttempts {
			sess.UpdateState(domain.StateEnd)
			s.logger.Warn("User locked out",
				zap.String("user_id", sess.UserID),
				zap.Int("attempts", sess.AuthAttempts),
			)
			return Reply{Text: replyLockout}
		}
		return Reply{Text: replyWrongID}
	}

	sess.Authenticate(text)
	sess.UpdateState(domain.StateMainMenu)
	s.logger.Info("User authenticated",
		zap.String("user_id", sess.UserID),
		zap.String("client_id", text),
	)

	return Reply{Text: fmt.Sprintf(replyMenu, text)}
}

func (s *DialogService) handleMainMenu(ctx context.Context, sess *domain.Session, text string) Reply {
	// Normally unreachable, re-checked anyway
	if !sess.Authenticated {
		sess.UpdateState(domain.StateAuthentication)
		return Reply{Text: replyReauth}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.opts.CallTimeout)
	defer cancel()

	prediction, err := s.classifier.Predict(callCtx, text)
	sess.CurrentIntent = prediction.Tag

	switch {
	case errors.Is(err, classifier.ErrNoTokens):
		// Nothing recognizable in the utterance, same path as low confidence
		return Reply{Text: replyClarify, Intent: prediction.Tag}
	case err != nil:
		s.logger.Error("Intent prediction failed",
			zap.String("user_id", sess.UserID),
			zap.Error(err),
		)
		return Reply{Text: replyUnavailable}
	}

	if prediction.Confidence < s.opts.ConfidenceThreshold {
		return Reply{Text: replyClarify, Intent: prediction.Tag, Confidence: prediction.Confidence}
	}

	var reply string
	switch prediction.Tag {
	case domain.IntentBalanceInquiry:
		balance, err := s.gateway.GetBalance(callCtx, sess.ClientID)
		if err != nil {
			s.logger.Error("Balance lookup failed",
				zap.String("user_id", sess.UserID),
				zap.Error(err),
			)
			return Reply{Text: replyUnavailable}
		}
		reply = fmt.Sprintf(replyBalance, balance)

	case domain.IntentCardBlock:
		sess.UpdateState(domain.StateWaitingConfirmation)
		reply = replyConfirmBlock

	case domain.IntentExchangeRate:
		rates, err := s.gateway.GetRates(callCtx)
		if err != nil {
			s.logger.Error("Rates lookup failed",
				zap.String("user_id", sess.UserID),
				zap.Error(err),
			)
			return Reply{Text: replyUnavailable}
		}
		reply = fmt.Sprintf(replyRates, rates)

	default:
		reply = s.classifier.ResponseFor(prediction.Tag)
	}

	return Reply{Text: reply, Intent: prediction.Tag, Confidence: prediction.Confidence}
}

func (s *DialogService) handleConfirmation(ctx context.Context, sess *domain.Session, text string) Reply {
	switch {
	case isYes(text):
		callCtx, cancel := context.WithTimeout(ctx, s.opts.CallTimeout)
		defer cancel()

		if err := s.gateway.BlockCard(callCtx, sess.ClientID); err != nil {
			// Stay in confirmation so the user can retry
			s.logger.Error("Card block failed",
				zap.String("user_id", sess.UserID),
				zap.Error(err),
			)
			return Reply{Text: replyUnavailable}
		}

		sess.UpdateState(domain.StateMainMenu)
		s.logger.Info("Card blocked",
			zap.String("user_id", sess.UserID),
			zap.String("client_id", sess.ClientID),
		)
		return Reply{Text: replyCardBlocked}

	case isNo(text):
		sess.UpdateState(domain.StateMainMenu)
		return Reply{Text: replyBlockCancel}

	default:
		return Reply{Text: replyYesOrNo}
	}
}

func (s *DialogService) handleProcessing(sess *domain.Session) Reply {
	sess.UpdateState(domain.StateMainMenu)
	return Reply{Text: replyDone}
}

// isClientID reports whether text is exactly six ASCII digits
func isClientID(text string) bool {
	if len(text) != 6 {
		return false
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

var (
	yesWords = map[string]struct{}{
		"да": {}, "yes": {}, "y": {}, "ага": {}, "угу": {}, "конечно": {},
	}
	noWords = map[string]struct{}{
		"нет": {}, "no": {}, "n": {}, "не": {}, "отмена": {},
	}
)

func isYes(text string) bool {
	_, ok := yesWords[strings.ToLower(text)]
	return ok
}

func isNo(text string) bool {
	_, ok := noWords[strings.ToLower(text)]
	return ok
}
