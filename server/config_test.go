package server

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_ParseDBConnString(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    Database
		expectErr bool
	}{
		{
			name:   "inmem",
			input:  "inmem",
			expect: Database{Type: DatabaseInMemory},
		},
		{
			name:   "inmem is case-insensitive",
			input:  "INMEM",
			expect: Database{Type: DatabaseInMemory},
		},
		{
			name:   "sqlite with data dir",
			input:  "sqlite:/var/slc/data",
			expect: Database{Type: DatabaseSQLite, DataDir: "/var/slc/data"},
		},
		{
			name:   "sqlite with relative data dir",
			input:  "sqlite:data",
			expect: Database{Type: DatabaseSQLite, DataDir: "data"},
		},
		{
			name:      "sqlite without data dir",
			input:     "sqlite",
			expectErr: true,
		},
		{
			name:      "inmem with params",
			input:     "inmem:stuff",
			expectErr: true,
		},
		{
			name:      "none is rejected",
			input:     "none",
			expectErr: true,
		},
		{
			name:      "unknown engine",
			input:     "postgres:whatever",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := ParseDBConnString(tc.input)

			if tc.expectErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
				assert.Equal(tc.expect, actual)
			}
		})
	}
}

func Test_Config_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		cfg       Config
		expectErr bool
	}{
		{
			name: "filled defaults are valid",
			cfg:  Config{}.FillDefaults(),
		},
		{
			name: "sqlite DB with data dir",
			cfg: Config{
				TokenSecret: []byte("0123456789ABCDEF0123456789ABCDEF"),
				DB:          Database{Type: DatabaseSQLite, DataDir: "data"},
			},
		},
		{
			name:      "zero-value config has no secret",
			cfg:       Config{},
			expectErr: true,
		},
		{
			name: "secret too short",
			cfg: Config{
				TokenSecret: []byte("short"),
				DB:          Database{Type: DatabaseInMemory},
			},
			expectErr: true,
		},
		{
			name: "secret too long",
			cfg: Config{
				TokenSecret: make([]byte, MaxSecretSize+1),
				DB:          Database{Type: DatabaseInMemory},
			},
			expectErr: true,
		},
		{
			name: "sqlite DB without data dir",
			cfg: Config{
				TokenSecret: []byte("0123456789ABCDEF0123456789ABCDEF"),
				DB:          Database{Type: DatabaseSQLite},
			},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			err := tc.cfg.Validate()

			if tc.expectErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}
		})
	}
}

func Test_Config_FillDefaults(t *testing.T) {
	assert := assert.New(t)

	cfg := Config{}.FillDefaults()

	assert.NotEmpty(cfg.TokenSecret)
	assert.Equal(DatabaseInMemory, cfg.DB.Type)
	assert.Equal(1000, cfg.UnauthDelayMillis)
}

func Test_Config_UnauthDelay(t *testing.T) {
	testCases := []struct {
		name   string
		millis int
		expect time.Duration
	}{
		{name: "default-ish value", millis: 1000, expect: time.Second},
		{name: "zero is no delay", millis: 0, expect: 0},
		{name: "negative is no delay", millis: -20, expect: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			cfg := Config{UnauthDelayMillis: tc.millis}

			assert.Equal(tc.expect, cfg.UnauthDelay())
		})
	}
}

func Test_LoadConfigFile(t *testing.T) {
	assert := assert.New(t)

	confPath := t.TempDir() + "/server.toml"
	confData := []byte(`token_secret = "0123456789ABCDEF0123456789ABCDEF"
db = "sqlite:/var/slc/data"
unauth_delay_millis = 250
`)
	err := os.WriteFile(confPath, confData, 0660)
	assert.NoError(err)

	cfg, err := LoadConfigFile(confPath)
	assert.NoError(err)
	assert.Equal([]byte("0123456789ABCDEF0123456789ABCDEF"), cfg.TokenSecret)
	assert.Equal(DatabaseSQLite, cfg.DB.Type)
	assert.Equal("/var/slc/data", cfg.DB.DataDir)
	assert.Equal(250, cfg.UnauthDelayMillis)
}
