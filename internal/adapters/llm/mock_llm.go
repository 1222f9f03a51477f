package llm

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/quillnotes/reflect-api/internal/domain"
)

// MockCaller is a deterministic ModelCaller for dev mode and tests.
// Distinct prompts produce distinct parts, and the call count is exposed
// so tests can assert whether the cache short-circuited a request.
type MockCaller struct {
	mu    sync.Mutex
	calls int
}

func NewMockCaller() *MockCaller {
	return &MockCaller{}
}

// Calls reports how many times Call has run.
func (m *MockCaller) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockCaller) Call(
	ctx context.Context,
	model, systemPrompt, userPrompt string,
) (domain.ModelParts, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	// Tag the parts with a prompt digest so any change to the entry
	// changes the reflection.
	h := fnv.New32a()
	h.Write([]byte(userPrompt))
	tag := fmt.Sprintf("%08x", h.Sum32())

	return domain.ModelParts{
		Summary:    fmt.Sprintf("You wrote about how your day went (entry %s).", tag),
		Pattern:    fmt.Sprintf("A recurring thread shows up across this entry (%s).", tag),
		Suggestion: "Reread this entry tomorrow and note one thing that changed.",
	}, nil
}
