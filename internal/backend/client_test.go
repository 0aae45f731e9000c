package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigured(t *testing.T) {
	tests := []struct {
		name        string
		databaseURL string
		serviceKey  string
		want        bool
	}{
		{
			name:        "both real values",
			databaseURL: "postgres://app:secret@db:5432/internlink",
			serviceKey:  "k-3b1f9c",
			want:        true,
		},
		{
			name:        "empty url forces mock mode regardless of key",
			databaseURL: "",
			serviceKey:  "k-3b1f9c",
			want:        false,
		},
		{
			name:        "placeholder url",
			databaseURL: PlaceholderDatabaseURL,
			serviceKey:  "k-3b1f9c",
			want:        false,
		},
		{
			name:        "placeholder key",
			databaseURL: "postgres://app:secret@db:5432/internlink",
			serviceKey:  PlaceholderServiceKey,
			want:        false,
		},
		{
			name:        "empty key",
			databaseURL: "postgres://app:secret@db:5432/internlink",
			serviceKey:  "",
			want:        false,
		},
		{
			name:        "both placeholders",
			databaseURL: PlaceholderDatabaseURL,
			serviceKey:  PlaceholderServiceKey,
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, configured(tt.databaseURL, tt.serviceKey))
		})
	}
}
