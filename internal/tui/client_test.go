package tui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cratestats/cratestats/internal/model"
)

func TestClientDownloadTimeseries(t *testing.T) {
	var gotPath string
	var gotReq model.DownloadRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"serde","version":"1.0.0","downloads":[{"date":"2020-01-01","downloads":5}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL + "/")
	resp, err := client.DownloadTimeseries(context.Background(), "serde", "1.0.0")
	if err != nil {
		t.Fatalf("DownloadTimeseries: %v", err)
	}

	if gotPath != "/api/v1/downloads" {
		t.Errorf("request path = %q, want /api/v1/downloads", gotPath)
	}
	if gotReq.Name != "serde" || gotReq.Version != "1.0.0" {
		t.Errorf("request body = %+v, want serde/1.0.0", gotReq)
	}
	if len(resp.Downloads) != 1 || resp.Downloads[0].Downloads != 5 {
		t.Errorf("response = %+v, want one point of 5", resp)
	}
}

func TestClientSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.DownloadTimeseries(context.Background(), "serde", "")
	if err == nil {
		t.Fatal("DownloadTimeseries accepted a 500 response")
	}
}
