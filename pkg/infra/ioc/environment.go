package ioc

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	common "github.com/sportlink/sportlink-api/pkg/domain"
	activity_entities "github.com/sportlink/sportlink-api/pkg/domain/activity/entities"
)

// buildMongoURI constructs a MongoDB connection URI with credentials if provided
func buildMongoURI() string {
	uri := os.Getenv("MONGO_URI")

	user := os.Getenv("MONGODB_USER")
	password := os.Getenv("MONGODB_PASSWORD")

	if user != "" && password != "" {
		parsed, err := url.Parse(uri)
		if err == nil && parsed.User == nil {
			parsed.User = url.UserPassword(user, password)
			q := parsed.Query()
			if q.Get("authSource") == "" {
				q.Set("authSource", "admin")
				parsed.RawQuery = q.Encode()
			}
			return parsed.String()
		}
	}

	if uri == "" {
		host := os.Getenv("MONGODB_HOST")
		port := os.Getenv("MONGODB_PORT")
		dbName := os.Getenv("MONGODB_DATABASE")
		if host != "" && port != "" && dbName != "" {
			if user != "" && password != "" {
				uri = fmt.Sprintf("mongodb://%s:%s@%s:%s/%s?authSource=admin",
					url.QueryEscape(user), url.QueryEscape(password), host, port, dbName)
			} else {
				uri = fmt.Sprintf("mongodb://%s:%s/%s", host, port, dbName)
			}
		}
	}

	return uri
}

func EnvironmentConfig() (common.Config, error) {
	retentionDays := 7
	if raw := os.Getenv("CHANGE_LOG_RETENTION_DAYS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return common.Config{}, fmt.Errorf("invalid CHANGE_LOG_RETENTION_DAYS: %w", err)
		}
		retentionDays = parsed
	}

	serverID := os.Getenv("SERVER_ID")
	if serverID == "" {
		serverID = "server-" + uuid.NewString()
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		brokers = strings.Split(raw, ",")
	}

	config := common.Config{
		MongoDB: common.MongoDBConfig{
			URI:    buildMongoURI(),
			DBName: os.Getenv("MONGODB_DATABASE"),
		},
		Auth: common.AuthConfig{
			JWTSecret:     os.Getenv("JWT_SECRET"),
			RefreshSecret: os.Getenv("REFRESH_SECRET"),
		},
		Kafka: common.KafkaConfig{
			Brokers: brokers,
		},
		ServerID:               serverID,
		ChangeLogRetentionDays: retentionDays,
		ELODefaultsFile:        os.Getenv("ELO_DEFAULTS_FILE"),
	}

	return config, nil
}

// LoadDefaultELOSettings reads the fallback rating configuration from the
// configured JSON file, or returns the built-in defaults when none is set.
func LoadDefaultELOSettings(path string) (activity_entities.ELOSettings, error) {
	defaults := activity_entities.DefaultELOSettings()
	if path == "" {
		return defaults, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return defaults, fmt.Errorf("failed to read ELO defaults file: %w", err)
	}
	if err := json.Unmarshal(raw, &defaults); err != nil {
		return defaults, fmt.Errorf("failed to parse ELO defaults file: %w", err)
	}

	return defaults, nil
}
