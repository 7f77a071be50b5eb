package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"paygate-be/internal/config"
	"paygate-be/internal/gateway"
	"paygate-be/internal/gateway/saman"
	"paygate-be/internal/gateway/virtual"
	"paygate-be/internal/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:             "test",
		AppPort:            "8080",
		AccountSource:      config.AccountSourceEnv,
		SamanTerminalID:    "T-1",
		SamanAccountName:   "main",
		VirtualEnabled:     true,
		VirtualPaymentURL:  "http://localhost:8080/virtual/pay",
		ResolveConcurrency: 4,
	}
}

func post(t *testing.T, h http.Handler, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(body))
	for k, v := range header {
		req.Header[k] = v
	}
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestNewServer(t *testing.T) {
	defer logger.Replace(zaptest.NewLogger(t))()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("Health and request id", func(t *testing.T) {
		h, err := newServer(ctx, testConfig(), nil)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get(logger.RequestIDHeader))
	})

	t.Run("Virtual payment round trip", func(t *testing.T) {
		h, err := newServer(ctx, testConfig(), nil)
		require.NoError(t, err)

		w := post(t, h, `{"gateway":"virtual","amount":1000,"callback_url":"https://shop.example.com/verify"}`, nil)
		require.Equal(t, http.StatusCreated, w.Code)

		var pr gateway.PaymentRequest
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pr))
		assert.Equal(t, virtual.Name, pr.GatewayName)
		require.True(t, strings.HasPrefix(pr.URL, "http://localhost:8080/virtual/pay?"))

		page := httptest.NewRecorder()
		h.ServeHTTP(page, httptest.NewRequest(http.MethodGet, strings.TrimPrefix(pr.URL, "http://localhost:8080"), nil))
		assert.Equal(t, http.StatusFound, page.Code)
		assert.Contains(t, page.Header().Get("Location"), "https://shop.example.com/verify")
	})

	t.Run("Unknown gateway", func(t *testing.T) {
		h, err := newServer(ctx, testConfig(), nil)
		require.NoError(t, err)

		w := post(t, h, `{"gateway":"Mellat","amount":1000,"callback_url":"https://shop.example.com/verify"}`, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Unknown account", func(t *testing.T) {
		h, err := newServer(ctx, testConfig(), nil)
		require.NoError(t, err)

		w := post(t, h, `{"account":"nobody","amount":1000,"callback_url":"https://shop.example.com/verify"}`, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Virtual disabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.VirtualEnabled = false
		h, err := newServer(ctx, cfg, nil)
		require.NoError(t, err)

		w := post(t, h, `{"gateway":"Virtual","amount":1000,"callback_url":"https://shop.example.com/verify"}`, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Bad virtual url", func(t *testing.T) {
		cfg := testConfig()
		cfg.VirtualPaymentURL = "/pay"
		_, err := newServer(ctx, cfg, nil)
		assert.ErrorIs(t, err, gateway.ErrInvalidArgument)
	})

	t.Run("DB source without database", func(t *testing.T) {
		cfg := testConfig()
		cfg.AccountSource = config.AccountSourceDB
		_, err := newServer(ctx, cfg, nil)
		assert.Error(t, err)
	})
}

func TestNewServer_Auth(t *testing.T) {
	defer logger.Replace(zaptest.NewLogger(t))()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := testConfig()
	cfg.JWTSecret = "test-secret"
	h, err := newServer(ctx, cfg, nil)
	require.NoError(t, err)

	body := `{"gateway":"Virtual","amount":1000,"callback_url":"https://shop.example.com/verify"}`

	w := post(t, h, body, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "shop-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	w = post(t, h, body, http.Header{"Authorization": {"Bearer " + signed}})
	assert.Equal(t, http.StatusCreated, w.Code)

	// health stays public
	health := httptest.NewRecorder()
	h.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, health.Code)
}

func TestNewServer_SamanAccountFromDatabase(t *testing.T) {
	defer logger.Replace(zaptest.NewLogger(t))()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bank := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req["TerminalId"] != "T-DB" || req["ResNum1"] != "A1" {
			http.Error(w, "unexpected request", http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"status":1,"token":"tok-db"}`))
	}))
	defer bank.Close()

	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()

	// once for the account lookup, once when Saman picks the terminal
	for i := 0; i < 2; i++ {
		mock.ExpectQuery("FROM gateway_accounts").
			WithArgs(saman.Name).
			WillReturnRows(sqlmock.NewRows([]string{"id", "gateway", "name", "settings", "created_at", "updated_at"}).
				AddRow(1, "Saman", "shop-main", []byte(`{"terminal_id":"T-DB","password":"p"}`), time.Now(), time.Now()))
	}

	cfg := testConfig()
	cfg.AccountSource = config.AccountSourceDB
	cfg.SamanTokenURL = bank.URL
	cfg.SamanPaymentPageURL = "https://sep.example.com/pay"

	h, err := newServer(ctx, cfg, database)
	require.NoError(t, err)

	w := post(t, h, `{"account":"shop-main","amount":1000,"callback_url":"https://shop.example.com/verify","saman":{"res_num1":"A1"}}`, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var pr gateway.PaymentRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pr))
	assert.Equal(t, saman.Name, pr.GatewayName)
	assert.Equal(t, "shop-main", pr.AccountName)
	assert.Equal(t, "tok-db", pr.Token)
	assert.True(t, pr.IsPost())
	assert.Equal(t, "https://sep.example.com/pay", pr.URL)

	metricsRes := httptest.NewRecorder()
	h.ServeHTTP(metricsRes, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, metricsRes.Body.String(), `"by_account":1`)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRun(t *testing.T) {
	origInitDB := initDBFunc
	defer func() { initDBFunc = origInitDB }()
	initDBFunc = func(cfg *config.Config) *sql.DB {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		return db
	}

	origStartServer := startServerFunc
	defer func() { startServerFunc = origStartServer }()
	var gotAddr string
	startServerFunc = func(ctx context.Context, addr string, handler http.Handler) error {
		gotAddr = addr
		return nil
	}

	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_ENV", "test")
	t.Setenv("ACCOUNT_SOURCE", "db")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("RESOLVE_CONCURRENCY", "")

	assert.NoError(t, run(context.Background()))
	assert.Equal(t, ":9090", gotAddr)
}

func TestStartServer_StopsWithContext(t *testing.T) {
	defer logger.Replace(zaptest.NewLogger(t))()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- startServer(ctx, "127.0.0.1:0", http.NotFoundHandler())
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
