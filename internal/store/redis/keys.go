package redis

const (
	// KeyPrefixSettings is the prefix for settings keys
	KeyPrefixSettings = "learnwords:settings:"
)

// SettingsKey returns the Redis key for a settings entry
func SettingsKey(name string) string {
	return KeyPrefixSettings + name
}
