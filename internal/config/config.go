package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

// Config holds all configuration for the application
type Config struct {
	// Jira credentials, all required
	BaseURL   string // Jira instance root URL, e.g. https://myorg.atlassian.net
	UserEmail string // Atlassian account email
	APIToken  string // API token from Atlassian account settings

	// Log level, defaults to info
	LogLevel string

	// Optional S3-backed per-user credential storage; both must be
	// set to enable it
	CredentialBucket     string
	CredentialEncryptKey string
}

// Load creates a Config from environment variables. All Jira
// credential variables are required; the returned error names every
// missing one.
func Load() (*Config, error) {
	cfg := &Config{}

	requiredVars := map[string]*string{
		"JIRA_BASE_URL":   &cfg.BaseURL,
		"JIRA_USER_EMAIL": &cfg.UserEmail,
		"JIRA_API_TOKEN":  &cfg.APIToken,
	}

	var missingVars []string
	for _, env := range []string{"JIRA_BASE_URL", "JIRA_USER_EMAIL", "JIRA_API_TOKEN"} {
		ptr := requiredVars[env]
		*ptr = os.Getenv(env)
		if *ptr == "" {
			missingVars = append(missingVars, env)
		}
	}
	if len(missingVars) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	cfg.loadOptional()
	return cfg, nil
}

// LoadInteractive creates a Config from environment variables,
// prompting on the terminal for any missing Jira credential. The API
// token prompt does not echo.
func LoadInteractive() (*Config, error) {
	cfg := &Config{
		BaseURL:   os.Getenv("JIRA_BASE_URL"),
		UserEmail: os.Getenv("JIRA_USER_EMAIL"),
		APIToken:  os.Getenv("JIRA_API_TOKEN"),
	}

	reader := bufio.NewReader(os.Stdin)
	if cfg.BaseURL == "" {
		value, err := prompt(reader, "Jira base URL (e.g. https://myorg.atlassian.net): ")
		if err != nil {
			return nil, err
		}
		cfg.BaseURL = value
	}
	if cfg.UserEmail == "" {
		value, err := prompt(reader, "Jira user email: ")
		if err != nil {
			return nil, err
		}
		cfg.UserEmail = value
	}
	if cfg.APIToken == "" {
		fmt.Fprint(os.Stderr, "Jira API token: ")
		token, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, fmt.Errorf("failed to read API token: %w", err)
		}
		cfg.APIToken = string(token)
	}

	cfg.loadOptional()
	return cfg, nil
}

func (c *Config) loadOptional() {
	c.LogLevel = os.Getenv("LOG_LEVEL")
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	c.CredentialBucket = os.Getenv("CREDENTIAL_BUCKET")
	c.CredentialEncryptKey = os.Getenv("CREDENTIAL_ENCRYPT_KEY")
}

func prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
