package orchestrators

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochairo/ocrboot/internal/domain/entities"
)

// mockPrompter replays answers in order; running out means end of input
type mockPrompter struct {
	answers   []string
	asked     []string
	secrets   []string
	printed   []string
	failAfter int
}

func (m *mockPrompter) next(question string) (string, error) {
	m.asked = append(m.asked, question)
	if m.failAfter > 0 && len(m.asked) > m.failAfter {
		return "", errors.New("read error")
	}
	if len(m.answers) == 0 {
		return "", nil
	}
	a := m.answers[0]
	m.answers = m.answers[1:]
	return a, nil
}

func (m *mockPrompter) Ask(question string) (string, error) { return m.next(question) }

func (m *mockPrompter) AskSecret(question string) (string, error) {
	m.secrets = append(m.secrets, question)
	return m.next(question)
}

func (m *mockPrompter) Println(msg string) { m.printed = append(m.printed, msg) }

type mockEnvStore struct {
	written *entities.EnvRecord
	err     error
}

func (m *mockEnvStore) Write(rec entities.EnvRecord) error {
	if m.err != nil {
		return m.err
	}
	m.written = &rec
	return nil
}

func (m *mockEnvStore) Path() string { return "/srv/ocr/.env" }

func TestConfigureOrchestrator_Configure(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
		want    string
		asked   []string
	}{
		{
			name:  "all defaults",
			want:  "USE_LOCAL_LLM=False\nAPI_PROVIDER=OPENAI\n",
			asked: []string{QuestionLocalLLM, QuestionProvider, QuestionOpenAIKey},
		},
		{
			name:    "local llm",
			answers: []string{"Y"},
			want:    "USE_LOCAL_LLM=True\n",
			asked:   []string{QuestionLocalLLM},
		},
		{
			name:    "openai with key",
			answers: []string{"n", "openai", "sk-123"},
			want:    "USE_LOCAL_LLM=False\nAPI_PROVIDER=OPENAI\nOPENAI_API_KEY=sk-123\n",
			asked:   []string{QuestionLocalLLM, QuestionProvider, QuestionOpenAIKey},
		},
		{
			name:    "claude with key",
			answers: []string{"no", "Claude", "sk-ant-1"},
			want:    "USE_LOCAL_LLM=False\nAPI_PROVIDER=CLAUDE\nANTHROPIC_API_KEY=sk-ant-1\n",
			asked:   []string{QuestionLocalLLM, QuestionProvider, QuestionAnthropicKey},
		},
		{
			name:    "invalid answers are asked again",
			answers: []string{"maybe", "", "gemini", "CLAUDE", ""},
			want:    "USE_LOCAL_LLM=False\nAPI_PROVIDER=CLAUDE\n",
			asked:   []string{QuestionLocalLLM, QuestionLocalLLM, QuestionProvider, QuestionProvider, QuestionAnthropicKey},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompter := &mockPrompter{answers: tt.answers}
			store := &mockEnvStore{}
			orch := NewConfigureOrchestrator(prompter, store, nil)

			result, err := orch.Configure(context.Background())
			require.NoError(t, err)
			require.NotNil(t, store.written)

			assert.Equal(t, tt.want, store.written.String())
			assert.Equal(t, tt.asked, prompter.asked)
			assert.Equal(t, "/srv/ocr/.env", result.Path)
		})
	}
}

func TestConfigureOrchestrator_KeyIsSecret(t *testing.T) {
	prompter := &mockPrompter{answers: []string{"", "", "sk-1"}}
	_, err := NewConfigureOrchestrator(prompter, &mockEnvStore{}, nil).Configure(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{QuestionOpenAIKey}, prompter.secrets)
}

func TestConfigureOrchestrator_RetryHint(t *testing.T) {
	prompter := &mockPrompter{answers: []string{"perhaps"}}
	_, err := NewConfigureOrchestrator(prompter, &mockEnvStore{}, nil).Configure(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Please answer y or n."}, prompter.printed)
}

func TestConfigureOrchestrator_Errors(t *testing.T) {
	t.Run("read error", func(t *testing.T) {
		prompter := &mockPrompter{failAfter: 1}
		store := &mockEnvStore{}
		_, err := NewConfigureOrchestrator(prompter, store, nil).Configure(context.Background())
		require.Error(t, err)
		assert.Nil(t, store.written)
	})

	t.Run("write error", func(t *testing.T) {
		store := &mockEnvStore{err: errors.New("read-only file system")}
		_, err := NewConfigureOrchestrator(&mockPrompter{}, store, nil).Configure(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to write configuration")
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewConfigureOrchestrator(&mockPrompter{}, &mockEnvStore{}, nil).Configure(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
