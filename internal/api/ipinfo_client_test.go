package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"runadvisor/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ip":"203.0.113.7","city":"Singapore","country":"SG","loc":"1.2897,103.8501","timezone":"Asia/Singapore"}`))
	}))
	defer srv.Close()

	client := NewIPInfoClient(WithBaseURL(srv.URL))

	loc, err := client.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Location{Name: "Singapore", Latitude: 1.2897, Longitude: 103.8501}, loc)
}

func TestLocationFromIPInfo(t *testing.T) {
	tests := []struct {
		name    string
		info    models.IPInfo
		want    models.Location
		wantErr bool
	}{
		{
			name: "city and coordinates",
			info: models.IPInfo{City: "Lisbon", Loc: "38.7167,-9.1333"},
			want: models.Location{Name: "Lisbon", Latitude: 38.7167, Longitude: -9.1333},
		},
		{
			name: "missing city",
			info: models.IPInfo{Loc: "10.0, 20.0"},
			want: models.Location{Name: "Unknown", Latitude: 10, Longitude: 20},
		},
		{
			name:    "missing loc",
			info:    models.IPInfo{City: "Nowhere"},
			wantErr: true,
		},
		{
			name:    "bad latitude",
			info:    models.IPInfo{Loc: "north,20"},
			wantErr: true,
		},
		{
			name:    "bad longitude",
			info:    models.IPInfo{Loc: "10,east"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LocationFromIPInfo(tt.info)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
