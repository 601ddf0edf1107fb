package classifier

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"strings"
	"unicode"

	"finbot/internal/domain"

	"go.uber.org/zap"
)

// Fallback sent when a tag has no catalog response
const fallbackResponse = "Извините, я не совсем понимаю. Можете переформулировать?"

var (
	// ErrNotTrained is returned by Predict before Train has been called
	ErrNotTrained = errors.New("classifier: model not trained")
	// ErrNoTokens is returned when the utterance contains no word known to the model
	ErrNoTokens = errors.New("classifier: no usable tokens in input")
)

// Classifier maps free text to an intent tag with a confidence score
type Classifier interface {
	Predict(ctx context.Context, text string) (domain.Prediction, error)
	ResponseFor(tag string) string
	Tags() []string
}

// NaiveBayes is a multinomial naive Bayes classifier over word unigrams
// of the intent catalog patterns, with Laplace smoothing.
type NaiveBayes struct {
	intents   []domain.Intent
	responses map[string][]string
	logger    *zap.Logger

	trained    bool
	tags       []string
	priors     map[string]float64
	wordCounts map[string]map[string]int
	totalWords map[string]int
	vocabulary map[string]struct{}
}

// NewNaiveBayes creates an untrained classifier over the given catalog
func NewNaiveBayes(intents []domain.Intent, logger *zap.Logger) *NaiveBayes {
	responses := make(map[string][]string, len(intents))
	for _, intent := range intents {
		responses[intent.Tag] = intent.Responses
	}

	return &NaiveBayes{
		intents:   intents,
		responses: responses,
		logger:    logger,
	}
}

// Train fits the model on the catalog patterns
func (c *NaiveBayes) Train() error {
	if len(c.intents) == 0 {
		return errors.New("classifier: empty intent catalog")
	}

	c.priors = make(map[string]float64)
	c.wordCounts = make(map[string]map[string]int)
	c.totalWords = make(map[string]int)
	c.vocabulary = make(map[string]struct{})
	c.tags = c.tags[:0]

	samples := 0
	for _, intent := range c.intents {
		if len(intent.Patterns) == 0 {
			continue
		}

		c.tags = append(c.tags, intent.Tag)
		c.wordCounts[intent.Tag] = make(map[string]int)

		for _, pattern := range intent.Patterns {
			samples++
			c.priors[intent.Tag]++

			for _, token := range tokenize(pattern) {
				c.wordCounts[intent.Tag][token]++
				c.totalWords[intent.Tag]++
				c.vocabulary[token] = struct{}{}
			}
		}
	}

	if samples == 0 {
		return errors.New("classifier: catalog has no training patterns")
	}

	for tag := range c.priors {
		c.priors[tag] /= float64(samples)
	}

	c.trained = true
	c.logger.Info("Classifier trained",
		zap.Int("intents", len(c.tags)),
		zap.Int("samples", samples),
		zap.Int("vocabulary", len(c.vocabulary)),
	)

	return nil
}

// Predict returns the most probable intent tag and its normalized
// posterior probability as confidence
func (c *NaiveBayes) Predict(ctx context.Context, text string) (domain.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return domain.Prediction{Tag: domain.IntentUnknown}, err
	}
	if !c.trained {
		return domain.Prediction{Tag: domain.IntentUnknown}, ErrNotTrained
	}

	tokens := make([]string, 0, 8)
	for _, token := range tokenize(text) {
		if _, ok := c.vocabulary[token]; ok {
			tokens = append(tokens, token)
		}
	}
	if len(tokens) == 0 {
		return domain.Prediction{Tag: domain.IntentUnknown}, ErrNoTokens
	}

	vocabSize := float64(len(c.vocabulary))
	scores := make(map[string]float64, len(c.tags))

	for _, tag := range c.tags {
		score := math.Log(c.priors[tag])
		for _, token := range tokens {
			count := float64(c.wordCounts[tag][token])
			score += math.Log((count + 1) / (float64(c.totalWords[tag]) + vocabSize))
		}
		scores[tag] = score
	}

	best := c.tags[0]
	for _, tag := range c.tags[1:] {
		if scores[tag] > scores[best] {
			best = tag
		}
	}

	// Softmax over log-scores, shifted by the max for numerical stability
	var total float64
	for _, tag := range c.tags {
		total += math.Exp(scores[tag] - scores[best])
	}
	confidence := 1 / total

	return domain.Prediction{Tag: best, Confidence: confidence}, nil
}

// ResponseFor returns a canned reply for the tag, or a generic fallback
func (c *NaiveBayes) ResponseFor(tag string) string {
	responses, ok := c.responses[tag]
	if !ok || len(responses) == 0 {
		return fallbackResponse
	}
	return responses[rand.Intn(len(responses))]
}

// Tags lists the known intent tags
func (c *NaiveBayes) Tags() []string {
	tags := make([]string, 0, len(c.responses))
	for tag := range c.responses {
		tags = append(tags, tag)
	}
	return tags
}

// tokenize lowercases the text and splits it into alphanumeric words
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
