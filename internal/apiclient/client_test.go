package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/nmt-console/internal/config"
	"github.com/spec-kit/nmt-console/internal/domain"
)

type staticTokens string

func (s staticTokens) Token() (string, bool) {
	return string(s), s != ""
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts Options) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	factory := NewFactory(config.APIConfig{BaseURL: srv.URL, Prefix: "/api/v1"}, zap.NewNop())
	return factory.New(opts)
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/api/v1/language-pairs" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":"lp-1","source":"en","target":"de","active":true}]`)
	}, Options{Tokens: staticTokens("tok-123")})

	pairs, err := client.ListLanguagePairs(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("unexpected authorization header %q", gotAuth)
	}
	if len(pairs) != 1 || pairs[0].Code() != "en-de" {
		t.Fatalf("unexpected pairs %+v", pairs)
	}
}

func TestNoTokenNoAuthorizationHeader(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[]`)
	}, Options{Tokens: staticTokens("")})

	if _, err := client.ListTestsets(context.Background(), ""); err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no authorization header, got %q", gotAuth)
	}
}

func TestUnauthorizedTriggersHookFromAnyCall(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Token expired"}`)
	}, Options{
		Tokens:         staticTokens("tok"),
		OnUnauthorized: func(context.Context) { calls++ },
	})

	_, err := client.ListModels(context.Background(), "lp-1")
	if !IsKind(err, KindUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if _, err := client.ApproveUser(context.Background(), "u-1"); !IsKind(err, KindUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected hook to run for each 401, ran %d times", calls)
	}
}

func TestLoginIsFormEncoded(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if r.PostForm.Get("username") != "ana" || r.PostForm.Get("password") != "s3cret" {
			t.Errorf("unexpected form %v", r.PostForm)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access_token":"jwt-abc","token_type":"bearer"}`)
	}, Options{})

	token, err := client.Login(context.Background(), "ana", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token != "jwt-abc" {
		t.Fatalf("unexpected token %q", token)
	}
}

func TestLoginRejectedDoesNotForceLogout(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Incorrect username or password"}`)
	}, Options{OnUnauthorized: func(context.Context) { calls++ }})

	_, err := client.Login(context.Background(), "ana", "wrong")
	if !IsKind(err, KindUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if err.Error() != "Incorrect username or password" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if calls != 0 {
		t.Fatalf("expected no forced logout on rejected credentials, got %d", calls)
	}
}

func TestLoginEmptyToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"token_type":"bearer"}`)
	}, Options{})

	if _, err := client.Login(context.Background(), "ana", "pw"); !errors.Is(err, ErrEmptyToken) {
		t.Fatalf("expected ErrEmptyToken, got %v", err)
	}
}

func TestRegisterValidationFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
			t.Errorf("unexpected content type %q", ct)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"detail":[{"loc":["body","email"],"msg":"invalid email"}]}`)
	}, Options{})

	_, err := client.Register(context.Background(), RegisterRequest{Username: "ana", Email: "nope", Password: "pw"})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Kind != KindValidation || apiErr.Fields["email"] != "invalid email" {
		t.Fatalf("unexpected error %+v", apiErr)
	}
}

func TestMultipartUploadDropsPresetContentType(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if !strings.HasPrefix(ct, "multipart/form-data; boundary=") {
			t.Errorf("expected multipart content type with boundary, got %q", ct)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.FormValue("name") != "wmt23" || r.FormValue("language_pair_id") != "lp-1" {
			t.Errorf("unexpected fields %v", r.MultipartForm.Value)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		body, _ := io.ReadAll(file)
		if header.Filename != "wmt23.tsv" || string(body) != "src\ttgt\n" {
			t.Errorf("unexpected file %s %q", header.Filename, body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"ts-1","name":"wmt23","language_pair_id":"lp-1","segments":1}`)
	}, Options{Tokens: staticTokens("tok")})

	ts, err := client.UploadTestset(context.Background(), UploadTestsetRequest{
		Name:           "wmt23",
		LanguagePairID: "lp-1",
		FileName:       "wmt23.tsv",
	}, strings.NewReader("src\ttgt\n"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if ts.ID != "ts-1" || ts.Segments != 1 {
		t.Fatalf("unexpected testset %+v", ts)
	}
}

func TestDownloadArtifact(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/models/m-1/artifacts/model.bin" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte{0x00, 0x01, 0x02})
	}, Options{Tokens: staticTokens("tok")})

	artifact, err := client.DownloadModelArtifact(context.Background(), "m-1", "model.bin")
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if len(artifact.Data) != 3 || artifact.ContentType != "application/octet-stream" {
		t.Fatalf("unexpected artifact %+v", artifact)
	}
}

func TestUpdateModelStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/api/v1/models/m-1/status" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body UpdateModelStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status != domain.ModelStatusCandidate {
			t.Errorf("unexpected body %+v err=%v", body, err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"m-1","status":"candidate"}`)
	}, Options{Tokens: staticTokens("tok")})

	model, err := client.UpdateModelStatus(context.Background(), "m-1", domain.ModelStatusCandidate)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if model.Status != domain.ModelStatusCandidate {
		t.Fatalf("unexpected model %+v", model)
	}
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewFactory(config.APIConfig{BaseURL: url, Prefix: "/api/v1"}, zap.NewNop()).New(Options{})
	_, err := client.ListResults(context.Background(), "")
	if !IsKind(err, KindNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestServerErrorNotRetried(t *testing.T) {
	hits := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusServiceUnavailable)
	}, Options{})

	if _, err := client.ListUsers(context.Background(), domain.UserStatusPending); !IsKind(err, KindServer) {
		t.Fatalf("expected server error, got %v", err)
	}
	if hits != 1 {
		t.Fatalf("expected a single attempt, got %d", hits)
	}
}
