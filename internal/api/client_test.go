package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ganeshlonare/lms-client/internal/pkg/apperrors"
)

type echoResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func TestSend_ResolvesAgainstBaseURL(t *testing.T) {
	var gotPath, gotMethod, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		json.NewEncoder(w).Encode(echoResponse{Success: true, Message: "ok"})
	}))
	defer server.Close()

	client, err := New(Options{BaseURL: server.URL + "/api/v1"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var out echoResponse
	if err := client.Send(context.Background(), http.MethodPost, "/user/signin", map[string]string{"email": "a@b.com"}, &out); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if gotPath != "/api/v1/user/signin" {
		t.Errorf("Path should resolve under the base prefix, got %q", gotPath)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("Expected POST, got %s", gotMethod)
	}
	if gotContentType != "application/json" {
		t.Errorf("JSON content type should be the default, got %q", gotContentType)
	}
	if !out.Success || out.Message != "ok" {
		t.Errorf("Response not decoded: %+v", out)
	}
}

func TestSend_HeaderOverride(t *testing.T) {
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		json.NewEncoder(w).Encode(echoResponse{Success: true})
	}))
	defer server.Close()

	client, err := New(Options{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	err = client.Send(context.Background(), http.MethodPost, "/x", nil, nil,
		WithHeader("Content-Type", "text/plain"))
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if gotContentType != "text/plain" {
		t.Errorf("Header override not applied, got %q", gotContentType)
	}
}

func TestSend_ErrorClassification(t *testing.T) {
	t.Run("server rejection carries the message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid credentials"})
		}))
		defer server.Close()

		client, _ := New(Options{BaseURL: server.URL})
		err := client.Send(context.Background(), http.MethodPost, "/user/signin", nil, &echoResponse{})

		var statusErr *apperrors.StatusError
		if !errors.As(err, &statusErr) {
			t.Fatalf("Expected StatusError, got %v", err)
		}
		if statusErr.Status != http.StatusUnauthorized || statusErr.Message != "Invalid credentials" {
			t.Errorf("Rejection detail lost: %+v", statusErr)
		}
		if !errors.Is(err, apperrors.ErrServerRejected) {
			t.Error("StatusError should unwrap to ErrServerRejected")
		}
	})

	t.Run("non-JSON error body still classifies", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("<html>bad gateway</html>"))
		}))
		defer server.Close()

		client, _ := New(Options{BaseURL: server.URL})
		err := client.Send(context.Background(), http.MethodGet, "/x", nil, nil)

		var statusErr *apperrors.StatusError
		if !errors.As(err, &statusErr) || statusErr.Status != http.StatusBadGateway {
			t.Errorf("Expected StatusError 502, got %v", err)
		}
	})

	t.Run("transport failure is ErrNetwork", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client, _ := New(Options{BaseURL: server.URL})
		err := client.Send(context.Background(), http.MethodGet, "/x", nil, nil)

		if !errors.Is(err, apperrors.ErrNetwork) {
			t.Errorf("Expected ErrNetwork, got %v", err)
		}
		if errors.Is(err, apperrors.ErrServerRejected) {
			t.Error("A transport failure must not classify as a server rejection")
		}
	})

	t.Run("schema mismatch is ErrMalformedResponse", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json at all"))
		}))
		defer server.Close()

		client, _ := New(Options{BaseURL: server.URL})
		err := client.Send(context.Background(), http.MethodGet, "/x", nil, &echoResponse{})

		if !errors.Is(err, apperrors.ErrMalformedResponse) {
			t.Errorf("Expected ErrMalformedResponse, got %v", err)
		}
	})
}

func TestSendMultipart(t *testing.T) {
	var gotFields map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("Body should be multipart: %v", err)
		}
		gotFields = map[string]string{}
		for key := range r.MultipartForm.Value {
			gotFields[key] = r.FormValue(key)
		}
		json.NewEncoder(w).Encode(echoResponse{Success: true, Message: "created"})
	}))
	defer server.Close()

	client, _ := New(Options{BaseURL: server.URL})

	var out echoResponse
	fields := map[string]string{"fullName": "A B", "email": "a@b.com"}
	if err := client.SendMultipart(context.Background(), "/user/signup", fields, "avatar", "", &out); err != nil {
		t.Fatalf("SendMultipart failed: %v", err)
	}

	if gotFields["fullName"] != "A B" || gotFields["email"] != "a@b.com" {
		t.Errorf("Form fields not transmitted: %v", gotFields)
	}
	if out.Message != "created" {
		t.Errorf("Response not decoded: %+v", out)
	}
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Error("Empty base URL should be rejected")
	}
}
