package orchestrators

import (
	"context"
	"fmt"

	"github.com/ochairo/ocrboot/internal/domain/entities"
	"github.com/ochairo/ocrboot/internal/domain/interfaces"
	"github.com/ochairo/ocrboot/internal/domain/services"
)

// Questions asked by Configure
const (
	QuestionLocalLLM     = "Use a local LLM? (y/N)"
	QuestionProvider     = "API provider (OPENAI/CLAUDE) [OPENAI]"
	QuestionOpenAIKey    = "OpenAI API key (leave blank to skip):"
	QuestionAnthropicKey = "Anthropic API key (leave blank to skip):"
)

// Prompter interface for asking the operator
type Prompter interface {
	Ask(question string) (string, error)
	AskSecret(question string) (string, error)
	Println(msg string)
}

// EnvWriter interface for persisting the .env record
type EnvWriter interface {
	Write(rec entities.EnvRecord) error
	Path() string
}

// ConfigureOrchestrator asks the configure questions and writes the .env file
type ConfigureOrchestrator struct {
	prompter Prompter
	writer   EnvWriter
	logger   interfaces.Logger
}

// NewConfigureOrchestrator creates a new configure orchestrator
func NewConfigureOrchestrator(prompter Prompter, writer EnvWriter, logger interfaces.Logger) *ConfigureOrchestrator {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &ConfigureOrchestrator{prompter: prompter, writer: writer, logger: logger}
}

// ConfigureResult contains the written record
type ConfigureResult struct {
	Path    string
	Answers entities.ConfigAnswers
	Record  entities.EnvRecord
}

// Configure runs the questions in order and rewrites the .env file
func (o *ConfigureOrchestrator) Configure(ctx context.Context) (*ConfigureResult, error) {
	var answers entities.ConfigAnswers

	local, err := o.askUntilValid(ctx, QuestionLocalLLM, "Please answer y or n.", func(in string) (string, bool) {
		v, ok := services.ParseYesNo(in, false)
		if v {
			return "y", ok
		}
		return "n", ok
	}, false)
	if err != nil {
		return nil, err
	}
	answers.UseLocalLLM = local == "y"

	if !answers.UseLocalLLM {
		provider, err := o.askUntilValid(ctx, QuestionProvider, "Please answer OPENAI or CLAUDE.", services.ParseProvider, false)
		if err != nil {
			return nil, err
		}
		answers.Provider = provider

		question := QuestionOpenAIKey
		if provider == entities.ProviderClaude {
			question = QuestionAnthropicKey
		}
		key, err := o.askUntilValid(ctx, question, "", func(in string) (string, bool) { return in, true }, true)
		if err != nil {
			return nil, err
		}
		answers.APIKey = key
	}

	rec := services.BuildEnvRecord(answers)
	if err := o.writer.Write(rec); err != nil {
		return nil, fmt.Errorf("failed to write configuration: %w", err)
	}
	o.logger.Info("configuration written", interfaces.F("path", o.writer.Path()), interfaces.F("keys", len(rec.Entries)))

	return &ConfigureResult{Path: o.writer.Path(), Answers: answers, Record: rec}, nil
}

// askUntilValid repeats a question until parse accepts the answer
func (o *ConfigureOrchestrator) askUntilValid(
	ctx context.Context,
	question, retryHint string,
	parse func(string) (string, bool),
	secret bool,
) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		var in string
		var err error
		if secret {
			in, err = o.prompter.AskSecret(question)
		} else {
			in, err = o.prompter.Ask(question)
		}
		if err != nil {
			return "", fmt.Errorf("failed to read answer: %w", err)
		}

		if v, ok := parse(in); ok {
			return v, nil
		}
		o.prompter.Println(retryHint)
	}
}
