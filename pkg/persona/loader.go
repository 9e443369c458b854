package persona

import (
	"encoding/json"
	"os"

	"github.com/quantumminds/council/pkg/logx"
)

// LoadFile reads a JSON object mapping agent id to system prompt and builds
// the registry. A missing, unreadable or malformed file yields an empty
// registry and a warning instead of a boot failure: the conversation
// endpoints stay usable while every /ask fails with an unknown-agent error
// (degraded but alive).
func LoadFile(path string) *Registry {
	data, err := os.ReadFile(path)
	if err != nil {
		logx.Warnf("Persona file %s unavailable (%v), starting with an empty registry", path, err)
		return NewRegistry(nil)
	}

	var prompts map[string]string
	if err := json.Unmarshal(data, &prompts); err != nil {
		logx.Warnf("Persona file %s is not a valid prompt table (%v), starting with an empty registry", path, err)
		return NewRegistry(nil)
	}

	logx.Infof("Loaded %d personas from %s", len(prompts), path)
	return NewRegistry(prompts)
}
