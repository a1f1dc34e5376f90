package cli

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/qadigest/internal/core/domain"
)

var errSettingsNotConfigured = errors.New("settings service not configured")

// settingField binds a config key to a field of domain.Settings.
type settingField struct {
	key    string
	secret bool
	get    func(s *domain.Settings) string
	set    func(s *domain.Settings, v string) error
}

var settingFields = []settingField{
	{
		key: "server.addr",
		get: func(s *domain.Settings) string { return s.Server.Addr },
		set: func(s *domain.Settings, v string) error { s.Server.Addr = v; return nil },
	},
	{
		key: "server.rate_limit",
		get: func(s *domain.Settings) string { return strconv.FormatFloat(s.Server.RateLimit, 'g', -1, 64) },
		set: func(s *domain.Settings, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("rate limit must be a number: %w", err)
			}
			s.Server.RateLimit = f
			return nil
		},
	},
	{
		key: "server.burst",
		get: func(s *domain.Settings) string { return strconv.Itoa(s.Server.Burst) },
		set: func(s *domain.Settings, v string) error { return setInt(&s.Server.Burst, v) },
	},
	{
		key: "server.cors_origins",
		get: func(s *domain.Settings) string { return strings.Join(s.Server.CORSOrigins, ",") },
		set: func(s *domain.Settings, v string) error {
			s.Server.CORSOrigins = splitList(v)
			return nil
		},
	},
	{
		key: "store.driver",
		get: func(s *domain.Settings) string { return s.Store.Driver.String() },
		set: func(s *domain.Settings, v string) error {
			d, ok := domain.ParseStoreDriver(v)
			if !ok {
				return fmt.Errorf("%w: store driver %q", domain.ErrUnsupportedType, v)
			}
			s.Store.Driver = d
			return nil
		},
	},
	{
		key: "store.sqlite_dir",
		get: func(s *domain.Settings) string { return s.Store.SQLiteDir },
		set: func(s *domain.Settings, v string) error { s.Store.SQLiteDir = v; return nil },
	},
	{
		key:    "store.postgres_dsn",
		secret: true,
		get:    func(s *domain.Settings) string { return s.Store.PostgresDSN },
		set:    func(s *domain.Settings, v string) error { s.Store.PostgresDSN = v; return nil },
	},
	{
		key: "log.mode",
		get: func(s *domain.Settings) string { return s.LogMode },
		set: func(s *domain.Settings, v string) error { s.LogMode = v; return nil },
	},
	{
		key: "chunking.chunk_size",
		get: func(s *domain.Settings) string { return strconv.Itoa(s.Chunking.ChunkSize) },
		set: func(s *domain.Settings, v string) error { return setInt(&s.Chunking.ChunkSize, v) },
	},
	{
		key: "chunking.chunk_overlap",
		get: func(s *domain.Settings) string { return strconv.Itoa(s.Chunking.ChunkOverlap) },
		set: func(s *domain.Settings, v string) error { return setInt(&s.Chunking.ChunkOverlap, v) },
	},
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change persisted settings",
	Long: `Shows the effective settings, or reads and writes a single key.

Keys:
  server.addr, server.rate_limit, server.burst, server.cors_origins
  store.driver (memory, sqlite, postgres), store.sqlite_dir, store.postgres_dsn
  log.mode, chunking.chunk_size, chunking.chunk_overlap

QADIGEST_* environment variables override stored values.`,
	Args: cobra.NoArgs,
	RunE: runSettingsShow,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting and save it",
	Long: `Changes one setting and saves the config file. The result is validated
before it is written; chunk sizes are clamped to their allowed ranges.

Examples:
  qadigest settings set store.driver postgres
  qadigest settings set chunking.chunk_size 1500
  qadigest settings set server.cors_origins https://qa.example.com,http://localhost:3000`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, f := range settingFields {
		fmt.Fprintf(out, "%-24s %s\n", f.key, displayValue(f, settings))
	}
	fmt.Fprintln(out)

	if err := settingsService.Validate(); err != nil {
		fmt.Fprintln(out, warningStyle.Render("Warning: "+err.Error()))
		return nil
	}
	fmt.Fprintln(out, successStyle.Render("Configuration is valid."))
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}
	field, err := lookupSetting(args[0])
	if err != nil {
		return err
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), displayValue(field, settings))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}
	field, err := lookupSetting(args[0])
	if err != nil {
		return err
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	value := strings.TrimSpace(args[1])
	if err := field.set(settings, value); err != nil {
		return fmt.Errorf("%s: %w", field.key, err)
	}
	settings.Chunking = settings.Chunking.Normalised()
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", field.key, displayValue(field, settings))
	return nil
}

func lookupSetting(key string) (settingField, error) {
	want := strings.ToLower(strings.TrimSpace(key))
	for _, f := range settingFields {
		if f.key == want {
			return f, nil
		}
	}
	return settingField{}, fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
}

func displayValue(f settingField, s *domain.Settings) string {
	v := f.get(s)
	if v == "" {
		return "(not set)"
	}
	if f.secret {
		return maskDSN(v)
	}
	return v
}

// maskDSN hides the password of a URL-form DSN. Other forms are masked whole.
func maskDSN(dsn string) string {
	if u, err := url.Parse(dsn); err == nil && u.Scheme != "" && u.Host != "" {
		return u.Redacted()
	}
	return "****"
}

func setInt(dst *int, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("must be an integer: %w", err)
	}
	*dst = n
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
