package mcp

// ServerConfig describes how to launch one MCP server process.
type ServerConfig struct {
	Name    string            `json:"name"`
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env,omitempty"`
}

// ServersFromEnv assembles the server list from available credentials. A
// server whose credential is absent is simply not configured; discovery
// failures downstream are non-fatal for the same reason.
func ServersFromEnv(braveAPIKey string) []ServerConfig {
	var servers []ServerConfig
	if braveAPIKey != "" {
		servers = append(servers, ServerConfig{
			Name:    "brave-search",
			Command: "npx",
			Args:    []string{"-y", "@brave/brave-search-mcp-server"},
			Env:     map[string]string{"BRAVE_API_KEY": braveAPIKey},
		})
	}
	return servers
}
