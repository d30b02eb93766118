package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	hdr.Add("X-Custom", "a")
	hdr.Add("X-Custom", "b")
	body := []byte(`{"items":[]}`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encodePayload returned error: %v", err)
	}

	status, gotHdr, gotBody, ok := decodePayload(payload)
	if !ok {
		t.Fatal("decodePayload reported malformed payload")
	}
	if status != http.StatusOK {
		t.Errorf("got status %d, want %d", status, http.StatusOK)
	}
	if got := gotHdr.Get("Content-Type"); got != "application/json" {
		t.Errorf("got Content-Type %q, want %q", got, "application/json")
	}
	if got := gotHdr.Values("X-Custom"); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("got X-Custom %v, want [a b]", got)
	}
	if string(gotBody) != string(body) {
		t.Errorf("got body %q, want %q", gotBody, body)
	}
}

func TestPayloadRoundTripEmptyBody(t *testing.T) {
	payload, err := encodePayload(http.StatusNoContent, http.Header{}, nil)
	if err != nil {
		t.Fatalf("encodePayload returned error: %v", err)
	}
	status, _, body, ok := decodePayload(payload)
	if !ok {
		t.Fatal("decodePayload reported malformed payload")
	}
	if status != http.StatusNoContent {
		t.Errorf("got status %d, want %d", status, http.StatusNoContent)
	}
	if len(body) != 0 {
		t.Errorf("got body %q, want empty", body)
	}
}

func TestDecodePayloadRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"too short", []byte{0, 0, 0}},
		{"header length past end", []byte{0, 0, 0, 200, 0, 0, 0, 99}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, _, ok := decodePayload(tt.data); ok {
				t.Error("decodePayload accepted malformed payload")
			}
		})
	}
}

func TestCaptureWriterLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 5}

	if _, err := cw.Write([]byte("0123456789")); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	// Client sees the full body; the capture buffer stops at the limit.
	if got := rec.Body.String(); got != "0123456789" {
		t.Errorf("forwarded body %q, want full body", got)
	}
	if got := cw.buf.String(); got != "01234" {
		t.Errorf("captured %q, want %q", got, "01234")
	}
}

func TestCaptureWriterUnlimited(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 0}

	if _, err := cw.Write([]byte("hello")); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if got := cw.buf.String(); got != "hello" {
		t.Errorf("captured %q, want %q", got, "hello")
	}
}
