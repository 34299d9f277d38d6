package credential

// Config holds the bcrypt cost used for every hash produced by a Hasher.
type Config struct {
	// Cost is the bcrypt work factor. Zero selects bcrypt.DefaultCost.
	Cost int `env:"BCRYPT_COST" envDefault:"12"`
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{Cost: 12}
}
