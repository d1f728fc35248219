package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/attendance-report/pkg/binder"
	"github.com/dmitrymomot/attendance-report/pkg/handler"
)

type echoRequest struct {
	Text string `json:"text"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) handler.Envelope {
	t.Helper()

	var env struct {
		Data  json.RawMessage      `json:"data"`
		Error *handler.ErrorDetail `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return handler.Envelope{Data: string(env.Data), Error: env.Error}
}

func TestWrap(t *testing.T) {
	t.Parallel()

	echo := handler.Wrap(handler.HandlerFunc[echoRequest](func(ctx handler.Context, req echoRequest) handler.Response {
		if req.Text == "fail" {
			return handler.Error(handler.NewHTTPError(http.StatusConflict, "conflict", errors.New("already there")))
		}
		return handler.JSON(req, handler.WithStatus(http.StatusCreated))
	}), handler.WithBinders(binder.JSON()))

	t.Run("binds and renders", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":"張三"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		echo(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"data":{"text":"張三"}}`, rec.Body.String())
	})

	t.Run("bind errors are 400", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nope":1}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		echo(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decode(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "bad_request", env.Error.Code)
	})

	t.Run("http errors carry status and key", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":"fail"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		echo(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		env := decode(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "conflict", env.Error.Code)
		assert.Equal(t, "already there", env.Error.Message)
	})

	t.Run("nil response goes to error handler", func(t *testing.T) {
		t.Parallel()

		var got error
		h := handler.Wrap(handler.HandlerFunc[struct{}](func(handler.Context, struct{}) handler.Response { return nil }),
			handler.WithErrorHandler(func(ctx handler.Context, err error) {
				got = err
				ctx.ResponseWriter().WriteHeader(http.StatusTeapot)
			}))

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, got, handler.ErrNilResponse)
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})
}

func TestEmptyAndPlainError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	require.NoError(t, handler.Empty().Render(rec, httptest.NewRequest(http.MethodDelete, "/", nil)))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = httptest.NewRecorder()
	require.NoError(t, handler.Error(errors.New("boom")).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"internal_error","message":"boom"}}`, rec.Body.String())
}
