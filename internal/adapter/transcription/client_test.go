package transcription

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"trendforge/internal/service/ratelimit"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("test-key", server.URL, ratelimit.New(ratelimit.DefaultConfig()))
}

func TestTranscribeRendersSegments(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/transcripts" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected Authorization header %q", got)
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		if body["video_id"] != "v1" {
			t.Errorf("unexpected video ID %q", body["video_id"])
		}

		w.Write([]byte(`{
			"segments": [
				{"start": "00:00", "end": "00:15", "text": "Hey guys, check this out"},
				{"start": "00:15", "end": "00:45", "text": ""},
				{"start": "00:45", "end": "00:60", "text": "Follow for more"}
			]
		}`))
	})

	got, err := client.Transcribe(context.Background(), "v1")
	if err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}

	want := "[00:00-00:15] Hey guys, check this out\n[00:45-00:60] Follow for more"
	if got != want {
		t.Errorf("unexpected transcript:\ngot  %q\nwant %q", got, want)
	}
}

func TestTranscribeRejectedVideo(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})

	_, err := client.Transcribe(context.Background(), "broken")
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
}

func TestTranscribeTransientFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Transcribe(context.Background(), "v1")
	if err == nil {
		t.Fatal("expected error on 502 response")
	}
	if errors.Is(err, ErrRejected) {
		t.Fatal("a 5xx response must not be classified as rejected")
	}
}

func TestRenderSegmentsDropsIncomplete(t *testing.T) {
	segments := []segmentPayload{
		{Start: "00:00", End: "00:15", Text: "  padded  "},
		{Start: "", End: "00:30", Text: "no start"},
		{Start: "00:30", End: "", Text: "no end"},
	}

	if got := renderSegments(segments); got != "[00:00-00:15] padded" {
		t.Errorf("unexpected output %q", got)
	}
}
