// Package pipeline turns a user question into an answer: classify the
// intent, retrieve policy context, assemble the prompt, call the model, and
// record the exchange in conversation memory.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/policypulse/policypulse/internal/chat"
	"github.com/policypulse/policypulse/internal/events"
	"github.com/policypulse/policypulse/internal/intent"
	"github.com/policypulse/policypulse/internal/memory"
	"github.com/policypulse/policypulse/internal/prompt"
	"github.com/policypulse/policypulse/internal/retriever"
)

// Infrastructure failures, distinct from the in-band "nothing found"
// fallback. Callers map these to generic failure responses; they are never
// converted into an empty-context answer.
var (
	ErrRetrievalUnavailable = errors.New("retrieval unavailable")
	ErrModelUnavailable     = errors.New("model unavailable")
)

// Canned replies for the short-circuit branches.
const (
	greetingReply = "Hello! I'm PolicyPulse, your HR policy assistant.\n\n" +
		"You can ask me about leave, attendance, WFH, reimbursements, code of conduct, and other HR policies."
	gratitudeReply = "You're welcome! Happy to help. If you have more questions, feel free to ask anytime!"
	noContextReply = "I couldn't locate any related information in the policy documents.\n\n" +
		"Try rephrasing your question or specify the policy area (leave, attendance, WFH, conduct, reimbursements, etc.)."
)

// Classifier decides whether an utterance is small talk or a policy question.
type Classifier interface {
	Classify(text string) intent.Intent
}

// Retriever fetches the context block and ranked passages for a question.
type Retriever interface {
	Retrieve(ctx context.Context, query string) (string, []retriever.Passage, error)
}

// Completer generates an answer from an assembled message sequence.
type Completer interface {
	Complete(ctx context.Context, messages []chat.Message, maxTokens int) (string, error)
}

// EventPublisher emits answered-question events. Optional.
type EventPublisher interface {
	Publish(subject string, data any) error
}

// SourceRef names the document a retrieved passage came from; null when the
// indexed chunk carried no source.
type SourceRef struct {
	Source *string `json:"source"`
}

// Options bound the pipeline's external calls.
type Options struct {
	MaxAnswerTokens int
	RetrieveTimeout time.Duration
	ModelTimeout    time.Duration
}

type Pipeline struct {
	store      memory.Store
	retriever  Retriever
	llm        Completer
	classifier Classifier
	events     EventPublisher
	opts       Options
	logger     *slog.Logger
}

func New(store memory.Store, retr Retriever, llm Completer, cls Classifier, pub EventPublisher, opts Options, logger *slog.Logger) *Pipeline {
	if opts.MaxAnswerTokens <= 0 {
		opts.MaxAnswerTokens = 500
	}
	if opts.RetrieveTimeout <= 0 {
		opts.RetrieveTimeout = 15 * time.Second
	}
	if opts.ModelTimeout <= 0 {
		opts.ModelTimeout = 60 * time.Second
	}
	return &Pipeline{
		store:      store,
		retriever:  retr,
		llm:        llm,
		classifier: cls,
		events:     pub,
		opts:       opts,
		logger:     logger,
	}
}

// GenerateAnswer runs the full question-to-answer sequence for one user turn.
// Every successful branch records exactly two memory entries (the question,
// then the reply); infrastructure failures record nothing, so memory never
// holds a question without its answer.
func (p *Pipeline) GenerateAnswer(ctx context.Context, userID, question string) (string, []SourceRef, error) {
	start := time.Now()
	q := strings.TrimSpace(question)

	switch p.classifier.Classify(q) {
	case intent.Greeting:
		if err := p.store.RecordTurn(ctx, userID, question, greetingReply); err != nil {
			return "", nil, fmt.Errorf("record turn: %w", err)
		}
		p.publish(userID, intent.Greeting, 0, start)
		return greetingReply, []SourceRef{}, nil

	case intent.Gratitude:
		if err := p.store.RecordTurn(ctx, userID, question, gratitudeReply); err != nil {
			return "", nil, fmt.Errorf("record turn: %w", err)
		}
		p.publish(userID, intent.Gratitude, 0, start)
		return gratitudeReply, []SourceRef{}, nil
	}

	rctx, cancelRetrieve := context.WithTimeout(ctx, p.opts.RetrieveTimeout)
	defer cancelRetrieve()
	contextText, passages, err := p.retriever.Retrieve(rctx, q)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrRetrievalUnavailable, err)
	}

	if strings.TrimSpace(contextText) == "" {
		if err := p.store.RecordTurn(ctx, userID, question, noContextReply); err != nil {
			return "", nil, fmt.Errorf("record turn: %w", err)
		}
		p.logger.Info("no context found", "user", userID)
		p.publish(userID, intent.PolicyQuestion, 0, start)
		return noContextReply, []SourceRef{}, nil
	}

	history, err := p.store.Get(ctx, userID)
	if err != nil {
		return "", nil, fmt.Errorf("load memory: %w", err)
	}

	messages := prompt.Assemble(contextText, history, q)

	mctx, cancelModel := context.WithTimeout(ctx, p.opts.ModelTimeout)
	defer cancelModel()
	answer, err := p.llm.Complete(mctx, messages, p.opts.MaxAnswerTokens)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}

	if err := p.store.RecordTurn(ctx, userID, question, answer); err != nil {
		return "", nil, fmt.Errorf("record turn: %w", err)
	}

	sources := make([]SourceRef, len(passages))
	for i, passage := range passages {
		sources[i] = SourceRef{Source: passage.Source}
	}

	p.logger.Info("question answered",
		"user", userID,
		"passages", len(passages),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	p.publish(userID, intent.PolicyQuestion, len(sources), start)

	return answer, sources, nil
}

func (p *Pipeline) publish(userID string, in intent.Intent, sources int, start time.Time) {
	if p.events == nil {
		return
	}
	err := p.events.Publish(events.SubjectAnswered, events.AnsweredEvent{
		User:       userID,
		Intent:     in.String(),
		Sources:    sources,
		DurationMS: time.Since(start).Milliseconds(),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		p.logger.Warn("failed to publish answered event", "error", err)
	}
}
