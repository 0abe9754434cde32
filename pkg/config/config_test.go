package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp("", "config_test_*.yml")
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(tmpfile.Name()) })

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		t.Fatal(err)
	}
	require.NoError(t, tmpfile.Close())
	return tmpfile.Name()
}

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig("non_existent_config.yml")
	require.NoError(t, err)

	assert.Equal(t, 90, config.ModelSettings.BriefMaxTokens)
	assert.Equal(t, 1000, config.ModelSettings.DetailedMaxTokens)
	assert.Equal(t, 0.6, config.ModelSettings.BriefTemperature)
	assert.Equal(t, 0.4, config.ModelSettings.DetailedTemperature)
	assert.Equal(t, 2.0, config.Delays.Response)
	assert.Equal(t, 1.0, config.Delays.ChunkPause)
	assert.Equal(t, 2000, config.Discord.MaxResponseLength)
	assert.Equal(t, 500, config.Discord.CardThreshold)
	assert.Equal(t, 5, config.Discord.HistoryLength)
	assert.Equal(t, "繁體中文", config.Persona.Language)
	assert.Equal(t, 0x8B4513, config.Persona.Card.Color)
	assert.NotEmpty(t, config.Persona.Salutations)
	assert.NotEmpty(t, config.Persona.Closings)
	assert.NotEmpty(t, config.Persona.Signatures)
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeTempConfig(t, `
persona:
  name: "Luther"
  language: "English"
  salutations: ["Dear"]
model_settings:
  model: "gpt-test"
  brief_max_tokens: 60
  detailed_temperature: 0.2
delays:
  response: 0.5
discord:
  max_response_length: 1500
  blacklisted_channels: ["c1", "c2"]
log:
  level: debug
  json: true
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Luther", config.Persona.Name)
	assert.Equal(t, "English", config.Persona.Language)
	assert.Equal(t, []string{"Dear"}, config.Persona.Salutations)
	assert.Equal(t, "gpt-test", config.ModelSettings.Model)
	assert.Equal(t, 60, config.ModelSettings.BriefMaxTokens)
	assert.Equal(t, 0.2, config.ModelSettings.DetailedTemperature)
	assert.Equal(t, 0.5, config.Delays.Response)
	assert.Equal(t, 1500, config.Discord.MaxResponseLength)
	assert.Equal(t, []string{"c1", "c2"}, config.Discord.BlacklistedChannels)
	assert.Equal(t, "debug", config.Log.Level)
	assert.True(t, config.Log.JSON)

	// Untouched fields still get defaults
	assert.Equal(t, 1000, config.ModelSettings.DetailedMaxTokens)
	assert.NotEmpty(t, config.Persona.Closings)
}

func TestLoadConfig_ExplicitZerosAreKept(t *testing.T) {
	path := writeTempConfig(t, `
model_settings:
  max_retries: 0
  brief_temperature: 0
  detailed_temperature: 0
delays:
  response: 0
  chunk_pause: 0
discord:
  card_threshold: 0
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 0, config.ModelSettings.MaxRetries)
	assert.Equal(t, 0.0, config.ModelSettings.BriefTemperature)
	assert.Equal(t, 0.0, config.ModelSettings.DetailedTemperature)
	assert.Equal(t, 0.0, config.Delays.Response)
	assert.Equal(t, 0.0, config.Delays.ChunkPause)
	assert.Equal(t, 0, config.Discord.CardThreshold)

	// Keys the file leaves out keep their defaults
	assert.Equal(t, 90, config.ModelSettings.BriefMaxTokens)
	assert.Equal(t, 2000, config.Discord.MaxResponseLength)

	t.Setenv("DISCORD_TOKEN", "discord-token")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	_, err = Load(path)
	assert.NoError(t, err)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeTempConfig(t, `
model_settings:
  brief_temperature: "not a number"
  broken_yaml: [ unclosed bracket
`)

	config, err := LoadConfig(path)

	assert.Error(t, err)
	assert.Nil(t, config)
}

func TestLoad_EnvironmentOverlay(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "discord-token")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ADMIN_USER_IDS", " 111, 222 ,,")
	t.Setenv("BLACKLISTED_CHANNELS", "c9")
	t.Setenv("SIBLING_BOT_ID", " 999 ")
	t.Setenv("BRIEF_MAX_TOKENS", "45")
	t.Setenv("DETAILED_MAX_TOKENS", "800")
	t.Setenv("OPENAI_MODEL", "gpt-env")
	t.Setenv("OPENAI_PROMPT_ID", "pmpt_123")
	t.Setenv("LOG_LEVEL", "WARN")

	config, err := Load("non_existent_config.yml")
	require.NoError(t, err)

	assert.Equal(t, "discord-token", config.DiscordToken)
	assert.Equal(t, "sk-test", config.OpenAIKey)
	assert.Equal(t, []string{"111", "222"}, config.Discord.AdminUserIDs)
	assert.Equal(t, []string{"c9"}, config.Discord.BlacklistedChannels)
	assert.Equal(t, "999", config.Discord.SiblingBotID)
	assert.Equal(t, 45, config.ModelSettings.BriefMaxTokens)
	assert.Equal(t, 800, config.ModelSettings.DetailedMaxTokens)
	assert.Equal(t, "gpt-env", config.ModelSettings.Model)
	assert.Equal(t, "pmpt_123", config.ModelSettings.PromptID)
	assert.Equal(t, "warn", config.Log.Level)
}

func TestLoad_MissingSecrets(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("OPENAI_API_KEY", "")

	config, err := Load("non_existent_config.yml")
	assert.Error(t, err)
	assert.Nil(t, config)
}

func TestLoad_InvalidTokenBudget(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "discord-token")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("BRIEF_MAX_TOKENS", "lots")

	_, err := Load("non_existent_config.yml")
	assert.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList("a, b"))
	assert.Empty(t, SplitList(" , "))
}
