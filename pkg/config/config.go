package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/elliotchance/pie/v2"
	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Persona       Persona       `yaml:"persona"`
	ModelSettings ModelSettings `yaml:"model_settings"`
	Delays        struct {
		// Seconds to wait (typing) before a reply is generated
		Response float64 `yaml:"response" validate:"gte=0"`
		// Seconds between parts of a multi-part reply
		ChunkPause float64 `yaml:"chunk_pause" validate:"gte=0"`
	} `yaml:"delays"`
	Discord Discord `yaml:"discord"`
	Log     Log     `yaml:"log"`

	// Secrets never come from the YAML file.
	DiscordToken string `yaml:"-" validate:"required"`
	OpenAIKey    string `yaml:"-" validate:"required"`
	GuildID      string `yaml:"-"`
}

type Persona struct {
	// Display name used in cards and control replies
	Name string `yaml:"name" validate:"required"`
	// Short name used when the bot talks about itself
	BotName string `yaml:"bot_name" validate:"required"`
	// Persona description passed to the model
	Description string `yaml:"description" validate:"required"`
	// Language every reply is written in
	Language       string   `yaml:"language" validate:"required"`
	AvatarURL      string   `yaml:"avatar_url"`
	PresenceActive string   `yaml:"presence_active" validate:"required"`
	PresencePaused string   `yaml:"presence_paused" validate:"required"`
	Salutations    []string `yaml:"salutations"`
	Closings       []string `yaml:"closings"`
	Signatures     []string `yaml:"signatures"`
	Card           Card     `yaml:"card"`
}

type Card struct {
	Color        int    `yaml:"color"`
	FooterSuffix string `yaml:"footer_suffix"`
	NoteName     string `yaml:"note_name"`
	NoteValue    string `yaml:"note_value"`
}

type ModelSettings struct {
	BaseURL             string  `yaml:"base_url"`
	Model               string  `yaml:"model" validate:"required"`
	FallbackModel       string  `yaml:"fallback_model" validate:"required"`
	PromptID            string  `yaml:"prompt_id"`
	PromptVersion       string  `yaml:"prompt_version"`
	MaxRetries          int     `yaml:"max_retries" validate:"gte=0"`
	BriefMaxTokens      int     `yaml:"brief_max_tokens" validate:"gt=0"`
	DetailedMaxTokens   int     `yaml:"detailed_max_tokens" validate:"gt=0"`
	BriefTemperature    float64 `yaml:"brief_temperature" validate:"gte=0,lte=2"`
	DetailedTemperature float64 `yaml:"detailed_temperature" validate:"gte=0,lte=2"`
}

type Discord struct {
	MaxResponseLength   int      `yaml:"max_response_length" validate:"gt=10"`
	CardThreshold       int      `yaml:"card_threshold" validate:"gte=0"`
	HistoryLength       int      `yaml:"history_length" validate:"gt=0"`
	MaxChannels         int      `yaml:"max_channels" validate:"gt=0"`
	BlacklistedChannels []string `yaml:"blacklisted_channels"`
	AdminUserIDs        []string `yaml:"admin_user_ids"`
	SiblingBotID        string   `yaml:"sibling_bot_id"`
}

type Log struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	// Also emit JSON records on stdout
	JSON bool `yaml:"json"`
}

// LoadConfig reads the YAML file at path over the defaults. A missing file
// yields the defaults; keys the file sets, zero included, win.
func LoadConfig(path string) (*Config, error) {
	config := defaultConfig()

	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return config, nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.In("config").Errorf("failed to read config file: %w", err)
	}

	err = yaml.Unmarshal(file, config)
	if err != nil {
		return nil, oops.In("config").Errorf("failed to parse YAML config: %w", err)
	}

	return config, nil
}

// Load reads the YAML file, overlays the environment and validates the result.
func Load(path string) (*Config, error) {
	config, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return oops.In("config").Errorf("failed to validate config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.DiscordToken = os.Getenv("DISCORD_TOKEN")
	c.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	c.GuildID = os.Getenv("DISCORD_GUILD_ID")

	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		c.ModelSettings.BaseURL = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		c.ModelSettings.Model = v
	}
	if v := os.Getenv("OPENAI_PROMPT_ID"); v != "" {
		c.ModelSettings.PromptID = v
	}
	if v := os.Getenv("OPENAI_PROMPT_VERSION"); v != "" {
		c.ModelSettings.PromptVersion = v
	}
	if v := os.Getenv("ADMIN_USER_IDS"); v != "" {
		c.Discord.AdminUserIDs = SplitList(v)
	}
	if v := os.Getenv("BLACKLISTED_CHANNELS"); v != "" {
		c.Discord.BlacklistedChannels = SplitList(v)
	}
	if v := os.Getenv("SIBLING_BOT_ID"); v != "" {
		c.Discord.SiblingBotID = strings.TrimSpace(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}

	var err error
	if c.ModelSettings.BriefMaxTokens, err = intFromEnv("BRIEF_MAX_TOKENS", c.ModelSettings.BriefMaxTokens); err != nil {
		return err
	}
	if c.ModelSettings.DetailedMaxTokens, err = intFromEnv("DETAILED_MAX_TOKENS", c.ModelSettings.DetailedMaxTokens); err != nil {
		return err
	}

	return nil
}

// SplitList parses a comma-separated list, dropping blanks.
func SplitList(value string) []string {
	items := pie.Map(strings.Split(value, ","), strings.TrimSpace)
	return pie.Filter(items, func(s string) bool {
		return s != ""
	})
}

func intFromEnv(name string, current int) (int, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return current, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, oops.In("config").With("variable", name).Errorf("invalid integer %q: %w", v, err)
	}
	return n, nil
}
