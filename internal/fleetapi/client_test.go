package fleetapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/onebus/fleet-console/config"
	"github.com/onebus/fleet-console/internal/domain/model"
	apperrors "github.com/onebus/fleet-console/internal/errors"
	"github.com/onebus/fleet-console/internal/session"
	"github.com/onebus/fleet-console/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.Handler, opts ...session.Option) (*Client, *session.Session) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	sess := session.New(session.NewMemoryStore(), opts...)
	c, err := New(config.APIConfig{
		BaseURL:   srv.URL + "/api/v1",
		Timeout:   5 * time.Second,
		RateBurst: 1,
		UserAgent: "fleetctl-test",
	}, sess)
	require.NoError(t, err)
	return c, sess
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewValidatesInput(t *testing.T) {
	_, err := New(config.APIConfig{BaseURL: "http://x"}, nil)
	require.Error(t, err)

	_, err = New(config.APIConfig{BaseURL: "not a url"}, session.New(session.NewMemoryStore()))
	require.Error(t, err)
}

func TestListSendsQueryAndBearer(t *testing.T) {
	var gotQuery, gotAuth, gotReqID, gotUA string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/employees", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		gotUA = r.Header.Get("User-Agent")
		writeJSON(w, http.StatusOK, map[string]any{"value": map[string]any{
			"items":           []map[string]any{{"id": 1, "name": "Ana", "role": 3}},
			"totalPages":      4,
			"currentPage":     2,
			"hasNextPage":     true,
			"hasPreviousPage": true,
			"totalItems":      31,
		}})
	})

	c, sess := newTestClient(t, mux)
	require.NoError(t, sess.Set(context.Background(), "opaque-token"))

	res := NewResource[model.Employee](c, "employees")
	page, err := res.List(context.Background(), ListQuery{
		Page:     1,
		PageSize: 10,
		Filters:  model.EmployeeFilter{Status: "2"}.Params(),
	})
	require.NoError(t, err)

	assert.Equal(t, "CurrentPage=2&PageSize=10&Status=2", gotQuery)
	assert.Equal(t, "Bearer opaque-token", gotAuth)
	assert.NotEmpty(t, gotReqID)
	assert.Equal(t, "fleetctl-test", gotUA)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Ana", page.Items[0].Name)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 31, page.TotalItems)
}

func TestListEmptyItemsIsNotNil(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"value": map[string]any{"totalPages": 0, "currentPage": 1}})
	}))
	require.NoError(t, sess.Set(context.Background(), "tok"))

	page, err := NewResource[model.Vehicle](c, "/vehicles/").List(context.Background(), ListQuery{})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func TestUnauthorizedClearsSessionAndNotifies(t *testing.T) {
	var calls atomic.Int32
	var notified atomic.Int32
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}), session.WithOnUnauthorized(func() { notified.Add(1) }))
	ctx := context.Background()
	require.NoError(t, sess.Set(ctx, "stale"))

	_, err := NewResource[model.Line](c, "lines").Get(ctx, 9)
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, int32(1), calls.Load(), "401 is not retried")
	assert.Equal(t, int32(1), notified.Load())

	_, err = sess.Current(ctx)
	assert.True(t, apperrors.IsUnauthorized(err), "token was cleared")

	// Without a token the request never leaves the client.
	_, err = NewResource[model.Line](c, "lines").Get(ctx, 9)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, int32(2), notified.Load())
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantMsg  string
		wantCode apperrors.ErrorCode
	}{
		{"message", http.StatusBadRequest, `{"message":"CPF já cadastrado"}`, "CPF já cadastrado", apperrors.ErrCodeValidation},
		{"errors list", http.StatusUnprocessableEntity, `{"errors":[{"field":"plate","message":"Placa inválida."},{"message":"Ano inválido."}]}`, "Placa inválida. Ano inválido.", apperrors.ErrCodeValidation},
		{"empty body", http.StatusInternalServerError, ``, "", apperrors.ErrCodeRemote},
		{"html body", http.StatusBadGateway, `<html>bad</html>`, "", apperrors.ErrCodeRemote},
		{"not found", http.StatusNotFound, `{"message":"not found"}`, "not found", apperrors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			require.NoError(t, sess.Set(context.Background(), "tok"))

			err := NewResource[model.Vehicle](c, "vehicles").Create(context.Background(), model.Vehicle{Prefix: "100"})
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMsg, apiErr.UserMessage())
			assert.Equal(t, tt.wantCode, apperrors.GetCode(err))
		})
	}
}

func TestFieldErrors(t *testing.T) {
	e := newAPIError(http.StatusBadRequest, http.MethodPost, "/vehicles",
		[]byte(`{"errors":[{"field":"plate","message":"Placa inválida."}]}`))
	assert.Equal(t, map[string]string{"plate": "Placa inválida."}, e.Fields)
	assert.Contains(t, e.Error(), "POST /vehicles: status 400")
}

func TestCreateUpdateDeleteAndOptions(t *testing.T) {
	var seen []string
	var body map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/maintenances", func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, "create")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("PUT /api/v1/maintenances/7", func(w http.ResponseWriter, _ *http.Request) {
		seen = append(seen, "update")
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("DELETE /api/v1/maintenances/7", func(w http.ResponseWriter, _ *http.Request) {
		seen = append(seen, "delete")
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /api/v1/maintenances/sectors", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"value": []map[string]any{{"value": 0, "name": "Mecânica"}, {"value": 1, "name": "Elétrica"}}})
	})

	c, sess := newTestClient(t, mux)
	ctx := context.Background()
	require.NoError(t, sess.Set(ctx, "tok"))

	res := NewResource[model.Maintenance](c, "maintenances")
	require.NoError(t, res.Create(ctx, map[string]any{"vehicleId": 3, "endDate": nil}))
	require.NoError(t, res.Update(ctx, 7, map[string]any{"id": 7}))
	require.NoError(t, res.Delete(ctx, 7))
	assert.Equal(t, []string{"create", "update", "delete"}, seen)
	assert.Contains(t, body, "endDate")
	assert.Nil(t, body["endDate"])

	opts, err := c.Options(ctx, "maintenances/sectors")
	require.NoError(t, err)
	assert.Equal(t, []model.Option{{Value: 0, Name: "Mecânica"}, {Value: 1, Name: "Elétrica"}}, opts)
}

func TestLogin(t *testing.T) {
	token := testutil.Token(t, "ana@example.com", time.Now().Add(time.Hour))
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/users/logins", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		var in loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		if in.Password != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Credenciais inválidas."})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"token": token})
	})

	var notified bool
	c, sess := newTestClient(t, mux, session.WithOnUnauthorized(func() { notified = true }))
	ctx := context.Background()

	err := c.Login(ctx, "ana@example.com", "wrong")
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Credenciais inválidas.", apiErr.UserMessage())
	assert.False(t, notified, "a rejected login is not a session loss")

	require.Error(t, c.Login(ctx, " ", "x"))

	require.NoError(t, c.Login(ctx, "ana@example.com", "secret"))
	tok, err := sess.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, token, tok.AccessToken)

	require.NoError(t, c.Logout(ctx))
	_, err = sess.Current(ctx)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestContextCanceled(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	require.NoError(t, sess.Set(context.Background(), "tok"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Options(ctx, "/employees/roles")
	require.Error(t, err)
	assert.True(t, apperrors.IsCanceled(err), err)
}
