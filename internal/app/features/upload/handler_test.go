package upload_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dalemusser/estatehub/internal/app/features/upload"
	"github.com/dalemusser/estatehub/internal/app/system/auth"
	"github.com/dalemusser/estatehub/internal/app/system/imagestore"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"github.com/dalemusser/estatehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type part struct {
	field, name string
	data        []byte
}

func multipartRequest(t *testing.T, target string, parts ...part) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, p := range parts {
		fw, err := mw.CreateFormFile(p.field, p.name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write(p.data); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func newTestHandler(t *testing.T) (*upload.Handler, *imagestore.Local) {
	t.Helper()
	store, err := imagestore.NewLocal(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatal(err)
	}
	return upload.NewHandler(store, zap.NewNop()), store
}

func TestHandlePropertyImages(t *testing.T) {
	h, store := newTestHandler(t)
	req := multipartRequest(t, "/property",
		part{"images", "a.png", pngHeader},
		part{"images", "b.png", pngHeader},
	)

	rec := httptest.NewRecorder()
	h.HandlePropertyImages(rec, req)
	testutil.AssertStatus(t, rec, http.StatusOK)
	testutil.AssertMessage(t, rec, "Images uploaded successfully")

	images := testutil.DecodeBody(t, rec)["images"].([]any)
	if len(images) != 2 {
		t.Fatalf("images = %d, want 2", len(images))
	}
	for _, raw := range images {
		img := raw.(map[string]any)
		id := img["publicId"].(string)
		if !strings.HasPrefix(id, "properties/") || !strings.HasSuffix(id, ".png") {
			t.Errorf("publicId = %q", id)
		}
		if img["url"] != "/uploads/"+id {
			t.Errorf("url = %v", img["url"])
		}
		if _, err := os.Stat(filepath.Join(store.Root(), filepath.FromSlash(id))); err != nil {
			t.Errorf("stored file: %v", err)
		}
	}
}

func TestHandlePropertyImages_Rejects(t *testing.T) {
	big := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, upload.MaxFileBytes)...)
	many := make([]part, upload.MaxPropertyImages+1)
	for i := range many {
		many[i] = part{"images", "x.png", pngHeader}
	}

	tests := []struct {
		name  string
		parts []part
		want  string
	}{
		{"no files", nil, "Please upload at least one image"},
		{"wrong field", []part{{"photos", "a.png", pngHeader}}, "Please upload at least one image"},
		{"not an image", []part{{"images", "a.txt", []byte("hello world")}}, "Only image files are allowed"},
		{"too large", []part{{"images", "big.png", big}}, "File too large. Maximum size is 5MB"},
		{"too many", many, "Too many files. Maximum is 10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, store := newTestHandler(t)
			rec := httptest.NewRecorder()
			h.HandlePropertyImages(rec, multipartRequest(t, "/property", tt.parts...))
			testutil.AssertStatus(t, rec, http.StatusBadRequest)
			testutil.AssertMessage(t, rec, tt.want)

			entries, _ := os.ReadDir(filepath.Join(store.Root(), imagestore.FolderProperties))
			if len(entries) != 0 {
				t.Errorf("%d files left behind", len(entries))
			}
		})
	}
}

func TestHandleAvatar(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.HandleAvatar(rec, multipartRequest(t, "/avatar", part{"avatar", "me.png", pngHeader}))
	testutil.AssertStatus(t, rec, http.StatusOK)
	avatar := testutil.DecodeBody(t, rec)["avatar"].(map[string]any)
	if !strings.HasPrefix(avatar["publicId"].(string), "avatars/") {
		t.Errorf("publicId = %v", avatar["publicId"])
	}

	rec = httptest.NewRecorder()
	h.HandleAvatar(rec, multipartRequest(t, "/avatar"))
	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	testutil.AssertMessage(t, rec, "Please upload an image")
}

func TestHandleDelete(t *testing.T) {
	h, store := newTestHandler(t)
	rec := httptest.NewRecorder()
	h.HandlePropertyImages(rec, multipartRequest(t, "/property", part{"images", "a.png", pngHeader}))
	testutil.AssertStatus(t, rec, http.StatusOK)
	id := testutil.DecodeBody(t, rec)["images"].([]any)[0].(map[string]any)["publicId"].(string)
	urlID := strings.ReplaceAll(id, "/", "~")

	rec = httptest.NewRecorder()
	h.HandleAvatar(rec, multipartRequest(t, "/avatar", part{"avatar", "me.png", pngHeader}))
	testutil.AssertStatus(t, rec, http.StatusOK)
	avatarID := testutil.DecodeBody(t, rec)["avatar"].(map[string]any)["publicId"].(string)

	tests := []struct {
		name string
		id   string
		want int
	}{
		{"delete", urlID, http.StatusOK},
		{"already gone", urlID, http.StatusNotFound},
		{"traversal", "..~..~etc~passwd", http.StatusBadRequest},
		{"avatar", strings.ReplaceAll(avatarID, "/", "~"), http.StatusBadRequest},
		{"folder itself", "properties", http.StatusBadRequest},
		{"nested", "properties~..~avatars~x.png", http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		req := testutil.WithChiURLParam(httptest.NewRequest(http.MethodDelete, "/"+tt.id, nil), "id", tt.id)
		h.HandleDelete(rec, req)
		if rec.Code != tt.want {
			t.Errorf("%s: status = %d, want %d", tt.name, rec.Code, tt.want)
		}
	}

	if _, err := os.Stat(filepath.Join(store.Root(), filepath.FromSlash(avatarID))); err != nil {
		t.Errorf("avatar removed through the property image route: %v", err)
	}
}

func TestRoutes_RoleGates(t *testing.T) {
	h, _ := newTestHandler(t)
	am, err := auth.NewManager("upload-route-test-secret-0123456789abcdef", 0, nil, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	router := upload.Routes(h, am)
	client := models.User{ID: primitive.NewObjectID(), Name: "Cal", Role: models.RoleClient, IsActive: true}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartRequest(t, "/avatar", part{"avatar", "me.png", pngHeader}))
	testutil.AssertStatus(t, rec, http.StatusUnauthorized)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.WithActor(multipartRequest(t, "/property", part{"images", "a.png", pngHeader}), client))
	testutil.AssertStatus(t, rec, http.StatusForbidden)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.WithActor(multipartRequest(t, "/avatar", part{"avatar", "me.png", pngHeader}), client))
	testutil.AssertStatus(t, rec, http.StatusOK)
}
