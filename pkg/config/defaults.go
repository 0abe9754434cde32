package config

import "lutherbot/pkg/persona"

const (
	DefaultModel         = "gpt-4o-mini"
	DefaultFallbackModel = "gpt-4o-mini"

	defaultAvatarURL = "https://upload.wikimedia.org/wikipedia/commons/thumb/9/94/Lucas_Cranach_d.%C3%84._-_Martin_Luther%2C_1528_%28Veste_Coburg%29.jpg/256px-Lucas_Cranach_d.%C3%84._-_Martin_Luther%2C_1528_%28Veste_Coburg%29.jpg"
)

// defaultConfig is the configuration used when no file exists. A file is
// decoded on top of it, so only the keys it sets replace these values.
func defaultConfig() *Config {
	c := &Config{}

	p := &c.Persona
	p.Name = "馬丁路德 (Martin Luther)"
	p.BotName = "馬丁路德機器人"
	p.Description = "以16世紀德國神學家馬丁路德的身份回應，保持路德的神學觀點和說話風格。對所有訊息都要給出回應，不論是否包含神學關鍵詞。"
	p.Language = "繁體中文"
	p.AvatarURL = defaultAvatarURL
	p.PresenceActive = "研讀聖經與神學著作"
	p.PresencePaused = "已暫停回應 (!stop)"
	p.Salutations = append([]string(nil), persona.DefaultSalutations...)
	p.Closings = append([]string(nil), persona.DefaultClosings...)
	p.Signatures = append([]string(nil), persona.DefaultSignatures...)
	p.Card.Color = 0x8B4513
	p.Card.FooterSuffix = "基於馬丁路德著作"
	p.Card.NoteName = "💡 提醒"
	p.Card.NoteValue = "此回應基於馬丁路德的神學著作和思想"

	m := &c.ModelSettings
	m.Model = DefaultModel
	m.FallbackModel = DefaultFallbackModel
	m.MaxRetries = 1
	m.BriefMaxTokens = 90
	m.DetailedMaxTokens = 1000
	m.BriefTemperature = 0.6
	m.DetailedTemperature = 0.4

	c.Delays.Response = 2
	c.Delays.ChunkPause = 1

	d := &c.Discord
	d.MaxResponseLength = 2000
	d.CardThreshold = 500
	d.HistoryLength = 5
	d.MaxChannels = 1000

	c.Log.Level = "info"

	return c
}
