package appwrite

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/bananaflix/backend/internal/infrastructure/observability"
	"github.com/bananaflix/backend/pkg/config"
	apperrors "github.com/bananaflix/backend/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&config.AppwriteConfig{
		Endpoint:  server.URL,
		ProjectID: "proj-1",
	})
	require.NoError(t, err)
	return client
}

func TestCreateDocument_SendsProjectHeaderAndPermissions(t *testing.T) {
	var gotProject string
	var gotBody createDocumentRequest
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/databases/db/collections/col/documents", r.URL.Path)
		gotProject = r.Header.Get("X-Appwrite-Project")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"$id":"doc-1","$createdAt":"2026-08-01T10:00:00.000+00:00","title":"Dune"}`))
	}))

	doc, err := client.Databases().CreateDocument(context.Background(), "db", "col", "doc-1",
		map[string]string{"title": "Dune"},
		[]string{PermissionRead(RoleUser("u1"))},
	)
	require.NoError(t, err)
	assert.Equal(t, "proj-1", gotProject)
	assert.Equal(t, []string{`read("user:u1")`}, gotBody.Permissions)
	assert.Equal(t, "doc-1", doc.ID)
	assert.False(t, doc.CreatedAt.IsZero())

	// Payload attributes stay reachable through the raw body
	var payload struct {
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(doc.Data, &payload))
	assert.Equal(t, "Dune", payload.Title)
}

func TestListDocuments_EncodesQueries(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries := r.URL.Query()["queries[]"]
		assert.Contains(t, queries, `{"method":"equal","attribute":"user_id","values":["u1"]}`)
		assert.Contains(t, queries, `{"method":"orderDesc","attribute":"$createdAt"}`)
		assert.Contains(t, queries, `{"method":"limit","values":[1]}`)
		w.Write([]byte(`{"total":1,"documents":[{"$id":"doc-1"}]}`))
	}))

	list, err := client.Databases().ListDocuments(context.Background(), "db", "col", []string{
		QueryEqual("user_id", "u1"),
		QueryOrderDesc("$createdAt"),
		QueryLimit(1),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	require.Len(t, list.Documents, 1)
	assert.Equal(t, "doc-1", list.Documents[0].ID)
}

func TestDecodeStoreError_UsesBackendMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"A user with the same email already exists","code":409,"type":"user_already_exists"}`))
	}))

	_, err := client.Account().Register(context.Background(), "a@b.c", "secret123", "A")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeConflict, appErr.Type)
	assert.Equal(t, "A user with the same email already exists", appErr.Message)
}

func TestDecodeStoreError_FallsBackToStatus(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	err := client.Databases().DeleteDocument(context.Background(), "db", "col", "doc-1")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Message, "500")
}

func TestAccount_SessionLifecycle(t *testing.T) {
	var sawSessionHeader string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/account/sessions/email":
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"$id":"sess-1","userId":"u1","secret":"s3cret"}`))
		case "/account":
			sawSessionHeader = r.Header.Get("X-Appwrite-Session")
			w.Write([]byte(`{"$id":"u1","email":"a@b.c","name":"Ada","$createdAt":"2026-08-01T10:00:00.000+00:00"}`))
		case "/account/sessions/current":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	account := client.Account()
	require.NoError(t, account.CreateSession(context.Background(), "a@b.c", "pw"))
	assert.Equal(t, "s3cret", client.Session())

	user, err := account.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "s3cret", sawSessionHeader)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "Ada", user.Name)

	require.NoError(t, account.DeleteSession(context.Background()))
	assert.Empty(t, client.Session())
}

func TestAccount_CurrentUser_NoSession(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"User (role: guests) missing scope (account)","code":401,"type":"general_unauthorized_scope"}`))
	}))

	_, err := client.Account().CurrentUser(context.Background())
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestAccount_DeleteSession_ClearsSecretEvenOnFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	client.SetSession("stale")

	err := client.Account().DeleteSession(context.Background())
	assert.Error(t, err)
	assert.Empty(t, client.Session())
}

func TestDoJSON_RecordsStoreDuration(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	previous := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)
	t.Cleanup(func() { otel.SetMeterProvider(previous) })

	metrics, err := observability.InitMetrics()
	require.NoError(t, err)

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total":0,"documents":[]}`))
	}))
	client.SetMetrics(metrics)

	_, err = client.Databases().ListDocuments(context.Background(), "db", "col", nil)
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var recorded uint64
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != "store.request.duration" {
				continue
			}
			hist, ok := m.Data.(metricdata.Histogram[float64])
			require.True(t, ok)
			for _, dp := range hist.DataPoints {
				method, _ := dp.Attributes.Value("store.method")
				assert.Equal(t, http.MethodGet, method.AsString())
				recorded += dp.Count
			}
		}
	}
	assert.Equal(t, uint64(1), recorded)
}
