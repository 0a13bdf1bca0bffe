package main

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/safar/shophub/internal/auth"
	"github.com/safar/shophub/internal/models"
	"github.com/safar/shophub/internal/slot"
	"github.com/safar/shophub/internal/store"
)

// uploadAPI wires an api instance around in-memory slots with one
// established vendor session.
func uploadAPI(t *testing.T) (*api, string) {
	t.Helper()

	slots := slot.NewMemory()
	session := auth.Session{
		Token: "test-token",
		User:  models.User{ID: "vendor-1", Name: "Test Vendor", Role: models.RoleVendor},
	}
	data, err := json.Marshal(session)
	if err != nil {
		t.Fatalf("Marshal session: %v", err)
	}
	if err := slots.Write(context.Background(), "session:"+session.Token, data); err != nil {
		t.Fatalf("Seed session slot: %v", err)
	}

	a := &api{
		stores:    store.New(slots),
		sessions:  auth.NewSessions(nil, slots),
		uploadDir: t.TempDir(),
		uploadMax: 1 << 20,
	}
	return a, session.Token
}

func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("Create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("Write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close multipart writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestUploadFileStoresAndServesImage(t *testing.T) {
	a, token := uploadAPI(t)

	content := []byte("fake png bytes")
	body, contentType := multipartUpload(t, "product.png", content)

	req := httptest.NewRequest(http.MethodPost, "/auth/upload-file", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	a.handleUploadFile()(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Decode response: %v", err)
	}
	if !strings.HasPrefix(resp.Data.URL, "/uploads/") {
		t.Fatalf("Expected /uploads/ URL, got %q", resp.Data.URL)
	}
	if !strings.HasSuffix(resp.Data.URL, ".png") {
		t.Errorf("Expected the extension kept, got %q", resp.Data.URL)
	}

	stored, err := os.ReadFile(filepath.Join(a.uploadDir, strings.TrimPrefix(resp.Data.URL, "/uploads/")))
	if err != nil {
		t.Fatalf("Read stored file: %v", err)
	}
	if !bytes.Equal(stored, content) {
		t.Errorf("Stored file does not match the upload")
	}
}

func TestUploadFileRequiresAuthentication(t *testing.T) {
	a, _ := uploadAPI(t)

	body, contentType := multipartUpload(t, "product.png", []byte("png"))
	req := httptest.NewRequest(http.MethodPost, "/auth/upload-file", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	a.handleUploadFile()(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without a session, got %d", rec.Code)
	}

	entries, err := os.ReadDir(a.uploadDir)
	if err != nil {
		t.Fatalf("Read upload dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no stored files, got %d", len(entries))
	}
}

func TestUploadFileRejectsUnsupportedType(t *testing.T) {
	a, token := uploadAPI(t)

	body, contentType := multipartUpload(t, "script.sh", []byte("#!/bin/sh"))
	req := httptest.NewRequest(http.MethodPost, "/auth/upload-file", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	a.handleUploadFile()(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unsupported type, got %d", rec.Code)
	}

	entries, err := os.ReadDir(a.uploadDir)
	if err != nil {
		t.Fatalf("Read upload dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no stored files, got %d", len(entries))
	}
}
