package http

import (
	"bytes"
	"encoding/json"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bank-ledger/internal/adapter/notifier"
	"bank-ledger/internal/adapter/repository/gormrepo"
	"bank-ledger/internal/infrastructure/logging"
	"bank-ledger/internal/testutil/ledgertest"
	"bank-ledger/internal/testutil/notifymock"
	"bank-ledger/internal/usecase/loan"
	"bank-ledger/internal/usecase/registry"
	"bank-ledger/internal/usecase/transfer"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// -------- helpers --------

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

// apiFixture is the full route table over an in-memory SQLite ledger.
type apiFixture struct {
	e      *echo.Echo
	events *notifymock.Recorder
}

func newAPI(t *testing.T, mw ...echo.MiddlewareFunc) *apiFixture {
	t.Helper()
	gdb := ledgertest.OpenDB(t)
	log := logging.Discard()

	tx := gormrepo.NewGormUoW(gdb, gormrepo.WithTimeout(5*time.Second))
	messages := gormrepo.NewMessageRepository(gdb)
	events := &notifymock.Recorder{}

	reg := registry.NewUsecase(tx, gormrepo.NewUserRepository(gdb), gormrepo.NewAccountRepository(gdb),
		registry.WithLogger(log))
	xfer := transfer.NewUsecase(tx, gormrepo.NewTransactionRepository(gdb), transfer.WithLogger(log))
	loans := loan.NewUsecase(tx, gormrepo.NewLoanRepository(gdb),
		loan.WithLogger(log),
		loan.WithSink(notifier.Fanout{notifier.NewStore(messages), events}),
	)

	e := NewServer(log, ServerOptions{RequestTimeout: 5 * time.Second})
	r := Routes{
		Health:       NewHandler(nil),
		Accounts:     NewAccountHandler(reg),
		Transactions: NewTransactionHandler(xfer),
		Loans:        NewLoanHandler(loans),
		Approvals:    NewApprovalHandler(loans),
		Messages:     NewMessageHandler(messages),
	}
	if len(mw) > 0 {
		r.Idempotency = mw[0]
	}
	Register(e, r)
	return &apiFixture{e: e, events: events}
}

func (f *apiFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		r = mustJSON(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

type registered struct {
	User struct {
		UserID string `json:"user_id"`
		Email  string `json:"email"`
	} `json:"user"`
	Account struct {
		AccountNumber string `json:"account_number"`
		AccountType   string `json:"account_type"`
	} `json:"account"`
}

func (f *apiFixture) register(t *testing.T, name string) registered {
	t.Helper()
	rec := f.do(t, stdhttp.MethodPost, "/users", map[string]any{
		"username": name,
		"email":    name + "@example.com",
		"password": "s3cret-" + name,
	})
	require.Equal(t, stdhttp.StatusCreated, rec.Code, rec.Body.String())
	var out registered
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func decodeInto[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// newRawRequest calls h directly with a literal body, bypassing routing.
func newRawRequest(t *testing.T, e *echo.Echo, method, path, body string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}
