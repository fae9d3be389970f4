package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure AI providers, storage and server settings.

Settings live in ~/.bonglore/config.toml. Any key can be overridden from
the environment, e.g. BONGLORE_VISION__API_KEY sets vision.api_key.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsVisionCmd = &cobra.Command{
	Use:   "vision",
	Short: "Configure the vision provider",
	Long:  `Configure the provider that analyzes images and videos into tags and a story.`,
	RunE:  runSettingsVision,
}

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure the embedding provider",
	Long:  `Configure the provider that produces the text embedding.`,
	RunE:  runSettingsEmbedding,
}

var settingsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configured providers",
	Long:  `Validate the settings and ping the configured vision and embedding providers.`,
	RunE:  runSettingsValidate,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsVisionCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	settingsCmd.AddCommand(settingsValidateCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	printProvider(cmd, "Vision", settings.Vision)
	printProvider(cmd, "Embedding", settings.Embedding)
	printProvider(cmd, "Multimodal Embedding", settings.Multimodal)
	printProvider(cmd, "Cultural Embedding", settings.Cultural)

	cmd.Println("[Enrichment]")
	cmd.Printf("  Analysis timeout: %s\n", settings.Enrichment.AnalysisTimeout)
	cmd.Printf("  Embedding timeout: %s\n", settings.Enrichment.EmbeddingTimeout)
	cmd.Printf("  Requests per second: %g\n", settings.Enrichment.RequestsPerSecond)
	cmd.Printf("  Max retries: %d\n", settings.Enrichment.MaxRetries)
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend)
	if settings.Storage.Backend == domain.StoragePostgres {
		cmd.Printf("  DSN: %s\n", maskDSN(settings.Storage.PostgresDSN))
	}
	cmd.Println()

	cmd.Println("[Lock]")
	cmd.Printf("  Backend: %s\n", settings.Lock.Backend)
	if settings.Lock.Backend == domain.LockRedis {
		cmd.Printf("  Redis: %s\n", settings.Lock.RedisAddr)
	}
	cmd.Printf("  TTL: %s\n", settings.Lock.TTL)
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	if settings.Server.JWTSecret != "" {
		cmd.Printf("  JWT secret: %s\n", maskAPIKey(settings.Server.JWTSecret))
	} else {
		cmd.Printf("  JWT secret: (not set, authentication disabled)\n")
	}
	if len(settings.Server.CORSOrigins) > 0 {
		cmd.Printf("  CORS origins: %s\n", strings.Join(settings.Server.CORSOrigins, ", "))
	}
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'bonglore settings vision' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func printProvider(cmd *cobra.Command, title string, ps domain.ProviderSettings) {
	cmd.Printf("[%s]\n", title)
	cmd.Printf("  Provider: %s\n", ps.Provider.Description())
	cmd.Printf("  Model: %s\n", ps.Model)
	if ps.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", ps.BaseURL)
	}
	if ps.Provider.RequiresAPIKey() {
		if ps.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(ps.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	status := "configured"
	if !ps.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()
}

func runSettingsVision(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	provider, model, apiKey, err := promptProvider(cmd, reader, "Vision",
		domain.AllVisionProviders(), domain.DefaultVisionModels())
	if err != nil {
		return err
	}

	if err := settingsService.SetVisionProvider(provider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure vision provider: %w", err)
	}

	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateVisionConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("vision configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("Vision provider configured: %s (%s)\n", provider.Description(), model)
	return nil
}

func runSettingsEmbedding(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	provider, model, apiKey, err := promptProvider(cmd, reader, "Embedding",
		domain.AllEmbeddingProviders(), domain.DefaultEmbeddingModels())
	if err != nil {
		return err
	}

	if err := settingsService.SetEmbeddingProvider(provider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure embedding provider: %w", err)
	}

	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateEmbeddingConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("embedding configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("Embedding provider configured: %s (%s)\n", provider.Description(), model)
	return nil
}

func runSettingsValidate(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Validate(); err != nil {
		return fmt.Errorf("settings are invalid: %w", err)
	}

	var failed bool
	for _, check := range []struct {
		name string
		fn   func() error
	}{
		{"vision", settingsService.ValidateVisionConfig},
		{"embedding", settingsService.ValidateEmbeddingConfig},
	} {
		cmd.Printf("Checking %s provider... ", check.name)
		if err := check.fn(); err != nil {
			cmd.Printf("FAILED: %v\n", err)
			failed = true
			continue
		}
		cmd.Println("OK")
	}
	if failed {
		return errors.New("one or more providers are unreachable")
	}
	return nil
}

// promptProvider asks for a provider, model and API key.
func promptProvider(
	cmd *cobra.Command,
	reader *bufio.Reader,
	title string,
	providers []domain.AIProvider,
	defaults map[domain.AIProvider]string,
) (domain.AIProvider, string, string, error) {
	cmd.Printf("Select %s Provider\n", title)
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	provider := providers[idx-1]

	defaultModel := defaults[provider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if provider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readSecret(cmd.InOrStdin(), reader)
		cmd.Println()
		if apiKey == "" {
			return "", "", "", errors.New("API key is required for this provider")
		}
	}

	return provider, model, apiKey, nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// Terminal hooks, replaced in tests.
var (
	isTerminal   = term.IsTerminal
	readPassword = term.ReadPassword
)

// readSecret reads a line without echo when in is a terminal. Other
// inputs, and terminals that refuse raw mode, fall back to reader.
func readSecret(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && isTerminal(int(f.Fd())) {
		secret, err := readPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	return readLine(reader)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// maskDSN hides the password of a postgres URL.
func maskDSN(dsn string) string {
	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return dsn
	}
	creds, host, ok := strings.Cut(rest, "@")
	if !ok {
		return dsn
	}
	user, _, hasPassword := strings.Cut(creds, ":")
	if !hasPassword {
		return dsn
	}
	return scheme + "://" + user + ":****@" + host
}
