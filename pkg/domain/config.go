package common

type Config struct {
	MongoDB  MongoDBConfig
	Auth     AuthConfig
	Kafka    KafkaConfig
	ServerID string

	// ChangeLogRetentionDays bounds the change-log cleanup sweep. Default 7.
	ChangeLogRetentionDays int

	// ELODefaultsFile optionally points at a JSON file with one rating-settings
	// object that replaces the built-in defaults; zero fields of any activity
	// type's settings are filled from it. The file does not hold per-type entries.
	ELODefaultsFile string
}

type MongoDBConfig struct {
	URI    string
	DBName string
}

type AuthConfig struct {
	JWTSecret     string
	RefreshSecret string
}

type KafkaConfig struct {
	Brokers []string
}
