package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// Service groups the engine's secrets in the OS keychain.
	KeyringService = "leadgen"

	llmAccount = "leadgen:llm:api-key"
)

// GetLLMAPIKey prefers the OS keychain, then the environment. An empty
// result is fine for local model endpoints that need no key.
func GetLLMAPIKey() string {
	if pw, err := keyring.Get(KeyringService, llmAccount); err == nil && strings.TrimSpace(pw) != "" {
		return pw
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		return v
	}
	return os.Getenv("OPENAI_API_KEY")
}

func SetLLMAPIKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("api key is empty")
	}
	return keyring.Set(KeyringService, llmAccount, key)
}

func DeleteLLMAPIKey() error {
	return keyring.Delete(KeyringService, llmAccount)
}
