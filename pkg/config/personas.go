package config

type PersonasConfig struct {
	// File is the JSON document mapping agent id to system prompt. A missing
	// file leaves the registry empty; the server still boots.
	File string
}

func loadPersonasConfig() PersonasConfig {
	return PersonasConfig{
		File: getEnv("PERSONAS_FILE", "./personas.json"),
	}
}
