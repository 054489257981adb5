package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "debug", cfg.GinMode)
	assert.Equal(t, StoreMemory, cfg.StoreBackend)
	assert.Equal(t, "price_premium_monthly", cfg.StripePricePremium)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "support_emails", cfg.SupportQueue)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.Same(t, cfg, GetConfig())
}

func TestLoadConfigFirestoreRequiresProject(t *testing.T) {
	t.Setenv("STORE_BACKEND", "firestore")
	t.Setenv("FIREBASE_PROJECT_ID", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FIREBASE_PROJECT_ID")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory needs nothing", Config{StoreBackend: StoreMemory}, false},
		{"unknown backend", Config{StoreBackend: "sqlite"}, true},
		{"firestore with project", Config{StoreBackend: StoreFirestore, FirebaseProjectID: "p"}, false},
		{"stripe without webhook secret", Config{StoreBackend: StoreFirestore, FirebaseProjectID: "p", StripeSecretKey: "sk_test"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
