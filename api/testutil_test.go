package api

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"minhyuk/wedding-api/middleware"
	"minhyuk/wedding-api/sheets"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// fakeStorage is an in-memory stand-in for the S3 client. Multipart uploads
// aren't exercised by tests (they only kick in above 100MB).
type fakeStorage struct {
	putCalls []putCall
	putErr   error

	listOut *s3.ListObjectsV2Output
	listErr error
}

type putCall struct {
	key         string
	contentType string
	body        []byte
}

func (f *fakeStorage) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}

	body, _ := io.ReadAll(in.Body)
	f.putCalls = append(f.putCalls, putCall{
		key:         *in.Key,
		contentType: *in.ContentType,
		body:        body,
	})
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeStorage) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.listOut != nil {
		return f.listOut, nil
	}
	return &s3.ListObjectsV2Output{}, nil
}

func (f *fakeStorage) UploadPart(context.Context, *s3.UploadPartInput, ...func(*s3.Options)) (*s3.UploadPartOutput, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStorage) CreateMultipartUpload(context.Context, *s3.CreateMultipartUploadInput, ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStorage) CompleteMultipartUpload(context.Context, *s3.CompleteMultipartUploadInput, ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStorage) AbortMultipartUpload(context.Context, *s3.AbortMultipartUploadInput, ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error) {
	return nil, errors.New("not implemented")
}

// fakeSheets emulates the Google endpoints behind a sheets.Client.
type fakeSheets struct {
	titles  []string
	rows    [][]string
	appends [][]string
	// titles the append calls targeted, index-aligned with appends
	appendTargets []string
	failReads     bool
	failAppends   bool
}

func newFakeSheets(t *testing.T, f *fakeSheets) *sheets.Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/token" {
			json.NewEncoder(w).Encode(map[string]string{"access_token": "test-token"})
			return
		}

		switch {
		case strings.HasSuffix(r.URL.Path, ":append"):
			if f.failAppends {
				w.WriteHeader(http.StatusForbidden)
				return
			}

			var body struct {
				Values [][]string `json:"values"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Len(t, body.Values, 1)

			parts := strings.Split(strings.TrimSuffix(r.URL.Path, ":append"), "/")
			f.appendTargets = append(f.appendTargets, parts[len(parts)-1])
			f.appends = append(f.appends, body.Values[0])

			w.Write([]byte("{}"))

		case strings.Contains(r.URL.Path, "/values/"):
			if f.failReads {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			json.NewEncoder(w).Encode(map[string][][]string{"values": f.rows})

		default:
			if f.failReads {
				w.WriteHeader(http.StatusForbidden)
				return
			}

			titles := f.titles
			if len(titles) == 0 {
				titles = []string{"참석자명단"}
			}

			sheetList := make([]map[string]map[string]string, 0, len(titles))
			for _, title := range titles {
				sheetList = append(sheetList, map[string]map[string]string{"properties": {"title": title}})
			}
			json.NewEncoder(w).Encode(map[string]any{"sheets": sheetList})
		}
	}))
	t.Cleanup(srv.Close)

	return &sheets.Client{
		HTTP:     &http.Client{Timeout: 5 * time.Second},
		BaseURL:  srv.URL + "/v4/spreadsheets",
		TokenURL: srv.URL + "/token",
	}
}

func setupConfig(t *testing.T) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	pemKey := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	viper.Set("google.sheet_id", "sheet-test-1")
	viper.Set("google.service_account_email", "svc@test.iam.gserviceaccount.com")
	viper.Set("google.private_key", string(pemKey))
	viper.Set("aws.region", "ap-northeast-2")
	viper.Set("aws.bucket", "wedding-test")
	viper.Set("cdn.domain", "cdn.example.com")
	viper.Set("upload.max_size", int64(100<<20))

	t.Cleanup(viper.Reset)
}

// newTestAPI wires an API around fakes with the real route layout minus the
// rate limiter, which would bleed state between tests.
func newTestAPI(t *testing.T, st *fakeStorage, sc *sheets.Client) *API {
	t.Helper()
	gin.SetMode(gin.TestMode)

	a := &API{
		Sheets: sc,
		S3:     st,
		Bucket: "wedding-test",
	}

	router := gin.New()
	router.Use(middleware.NewRequestIDMiddleware())

	main := router.Group("/api")
	main.HEAD("/heartbeat", a.Heartbeat)
	main.GET("/debug", a.Debug)
	main.GET("/layouts", a.Layouts)
	main.GET("/map", a.MapConfig)
	main.POST("/device-id", a.DeviceID)
	main.GET("/attendance", a.AttendanceFetch)
	main.POST("/attendance", a.AttendanceSubmit)
	main.POST("/attendance/check", a.AttendanceCheck)
	main.GET("/photos", a.PhotoList)
	main.POST("/photos", a.PhotoUpload)

	a.Router = router
	return a
}

func doJSON(a *API, method, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
