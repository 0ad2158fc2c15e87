package config

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr bool
		check   func(t *testing.T, config *Config)
	}{
		{
			name:    "default configuration",
			envVars: map[string]string{},
			check: func(t *testing.T, config *Config) {
				if config.Store.Backend != BackendDynamoDB {
					t.Errorf("Expected default backend %s, got %s", BackendDynamoDB, config.Store.Backend)
				}
				if config.Store.Table.Name != "bc-api-demo-user" {
					t.Errorf("Expected default table bc-api-demo-user, got %s", config.Store.Table.Name)
				}
				if config.Store.Table.Region != "ap-southeast-2" {
					t.Errorf("Expected default region ap-southeast-2, got %s", config.Store.Table.Region)
				}
				if config.Port != "8081" {
					t.Errorf("Expected default port 8081, got %s", config.Port)
				}
			},
		},
		{
			name: "sqlite backend",
			envVars: map[string]string{
				"STORE_BACKEND": "SQLite",
				"SQLITE_PATH":   "/tmp/users.db",
			},
			check: func(t *testing.T, config *Config) {
				if config.Store.Backend != BackendSQLite {
					t.Errorf("Expected backend %s, got %s", BackendSQLite, config.Store.Backend)
				}
				if config.Store.SQLite.Path != "/tmp/users.db" {
					t.Errorf("Expected sqlite path /tmp/users.db, got %s", config.Store.SQLite.Path)
				}
			},
		},
		{
			name: "custom table and endpoint",
			envVars: map[string]string{
				"USERS_TABLE_NAME":   "users-test",
				"USERS_TABLE_REGION": "us-east-1",
				"DYNAMODB_ENDPOINT":  "http://localhost:8000",
			},
			check: func(t *testing.T, config *Config) {
				if config.Store.Table.Name != "users-test" {
					t.Errorf("Expected table users-test, got %s", config.Store.Table.Name)
				}
				if config.Store.Table.Endpoint != "http://localhost:8000" {
					t.Errorf("Expected endpoint http://localhost:8000, got %s", config.Store.Table.Endpoint)
				}
			},
		},
		{
			name:    "unknown backend",
			envVars: map[string]string{"STORE_BACKEND": "cassandra"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			config, err := Load()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil && config != nil {
				tt.check(t, config)
			}
		})
	}
}

func TestAdaptConfigForServerless(t *testing.T) {
	config := &Config{
		Environment: "development",
		Log:         LogConfig{Format: "text"},
		Store:       StoreConfig{Backend: BackendSQLite},
	}

	unchanged := AdaptConfigForServerless(config, &ServerlessConfig{IsLambda: false})
	if unchanged.Store.Backend != BackendSQLite {
		t.Errorf("Expected backend to stay %s outside Lambda, got %s", BackendSQLite, unchanged.Store.Backend)
	}

	adapted := AdaptConfigForServerless(config, &ServerlessConfig{IsLambda: true, Stage: "prod"})
	if adapted.Store.Backend != BackendDynamoDB {
		t.Errorf("Expected backend %s in Lambda, got %s", BackendDynamoDB, adapted.Store.Backend)
	}
	if adapted.Log.Format != "json" {
		t.Errorf("Expected json log format in Lambda, got %s", adapted.Log.Format)
	}
	if adapted.Environment != "prod" {
		t.Errorf("Expected environment prod, got %s", adapted.Environment)
	}
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger(LogConfig{Level: "debug", Format: "text"})
	if logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("Expected debug level, got %s", logger.GetLevel())
	}
	if _, ok := logger.Formatter.(*logrus.TextFormatter); !ok {
		t.Errorf("Expected text formatter, got %T", logger.Formatter)
	}

	fallback := NewLogger(LogConfig{Level: "verbose"})
	if fallback.GetLevel() != logrus.InfoLevel {
		t.Errorf("Expected info level for unknown level, got %s", fallback.GetLevel())
	}
	if _, ok := fallback.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("Expected json formatter, got %T", fallback.Formatter)
	}
}
