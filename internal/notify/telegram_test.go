package notify

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNotifyWithoutCredentialsIsNoOp(t *testing.T) {
	notifier := NewTelegramNotifier("", "", zap.NewNop())
	if notifier.Enabled() {
		t.Error("notifier reports enabled without credentials")
	}
	if err := notifier.Notify(context.Background(), "Galaxy A17", "/product/a17", ""); err != nil {
		t.Errorf("Notify without credentials = %v, want nil", err)
	}
}

func TestNotifySendsTextMessage(t *testing.T) {
	var gotPath, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotPath = r.URL.Path
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewTelegramNotifier("test-token", "12345", zap.NewNop())
	notifier.baseURL = server.URL

	if err := notifier.Notify(context.Background(), "Galaxy A17 5G", "/product/a17", ""); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	if gotPath != "/bottest-token/sendMessage" {
		t.Errorf("path = %q", gotPath)
	}
	for _, want := range []string{"chat_id=12345", "Galaxy+A17+5G", "parse_mode=Markdown"} {
		if !strings.Contains(gotBody, want) {
			t.Errorf("request body missing %q:\n%s", want, gotBody)
		}
	}
}

func TestNotifyPrefersPhotoWhenImageExists(t *testing.T) {
	imagePath := filepath.Join(t.TempDir(), "a17.jpg")
	if err := os.WriteFile(imagePath, []byte("not-really-a-jpeg"), 0644); err != nil {
		t.Fatal(err)
	}

	var methods []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.URL.Path)
		if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
			t.Errorf("sendPhoto content type = %q", r.Header.Get("Content-Type"))
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewTelegramNotifier("tok", "42", zap.NewNop())
	notifier.baseURL = server.URL

	if err := notifier.Notify(context.Background(), "Galaxy A17", "/product/a17", imagePath); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if len(methods) != 1 || methods[0] != "/bottok/sendPhoto" {
		t.Errorf("calls = %v, want a single sendPhoto", methods)
	}
}

func TestNotifyFallsBackToTextOnPhotoFailure(t *testing.T) {
	imagePath := filepath.Join(t.TempDir(), "a17.jpg")
	if err := os.WriteFile(imagePath, []byte("broken"), 0644); err != nil {
		t.Fatal(err)
	}

	var methods []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.URL.Path)
		if strings.HasSuffix(r.URL.Path, "/sendPhoto") {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewTelegramNotifier("tok", "42", zap.NewNop())
	notifier.baseURL = server.URL

	if err := notifier.Notify(context.Background(), "Galaxy A17", "/product/a17", imagePath); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	want := []string{"/bottok/sendPhoto", "/bottok/sendMessage"}
	if len(methods) != 2 || methods[0] != want[0] || methods[1] != want[1] {
		t.Errorf("calls = %v, want %v", methods, want)
	}
}

func TestNotifyReturnsErrorWhenAllDeliveryFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	notifier := NewTelegramNotifier("tok", "42", zap.NewNop())
	notifier.baseURL = server.URL

	if err := notifier.Notify(context.Background(), "Galaxy A17", "/product/a17", ""); err == nil {
		t.Error("Notify = nil, want delivery error for the caller to log")
	}
}
