// AngelaMos | 2026
// handler_test.go

package user_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carterperez-dev/templates/go-messages/internal/config"
	"github.com/carterperez-dev/templates/go-messages/internal/store"
	"github.com/carterperez-dev/templates/go-messages/internal/user"
)

const validID = "6f1c2a9e-4c6b-4d1e-9a51-3c2b7f0e8d11"

var testPaging = config.PagingConfig{DefaultLimit: 50, MaxLimit: 100}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta *struct {
		Limit  int   `json:"limit"`
		Offset int   `json:"offset"`
		Total  int64 `json:"total"`
	} `json:"meta"`
}

func newRouter(f *fixture) http.Handler {
	r := chi.NewRouter()
	user.NewHandler(f.svc, testPaging).RegisterRoutes(r)
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func storedUser(id, name, email string) *user.User {
	u := &user.User{Name: name, Email: email, UpdatedAt: time.Now()}
	u.ID = id
	u.CreatedAt = time.Now()
	return u
}

func TestHandlerCreateUser(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(storedUser(validID, "Ada", "ada@example.com"), nil)

		rec, env := do(t, newRouter(f), http.MethodPost, "/users",
			`{"name":"Ada","email":"ada@example.com"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.True(t, env.Success)

		var got user.UserResponse
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, validID, got.ID)
		assert.Equal(t, "ada@example.com", got.Email)
	})

	t.Run("invalid email", func(t *testing.T) {
		f := newFixture(t)

		rec, env := do(t, newRouter(f), http.MethodPost, "/users",
			`{"name":"Ada","email":"not-an-email"}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
		assert.Contains(t, env.Error.Message, "email")
	})

	t.Run("unknown field", func(t *testing.T) {
		f := newFixture(t)

		rec, _ := do(t, newRouter(f), http.MethodPost, "/users",
			`{"name":"Ada","email":"ada@example.com","admin":true}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(nil, uniqueViolation())

		rec, env := do(t, newRouter(f), http.MethodPost, "/users",
			`{"name":"Ada","email":"ada@example.com"}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "ALREADY_EXISTS", env.Error.Code)
	})

	t.Run("storage failure hides detail", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("dial tcp 10.0.0.5:5432: refused"))

		rec, env := do(t, newRouter(f), http.MethodPost, "/users",
			`{"name":"Ada","email":"ada@example.com"}`)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.NotNil(t, env.Error)
		assert.NotContains(t, env.Error.Message, "10.0.0.5")
	})
}

func TestHandlerGetUserByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().
			GetByEmail(gomock.Any(), "ada@example.com").
			Return(storedUser(validID, "Ada", "ada@example.com"), nil)

		rec, _ := do(t, newRouter(f), http.MethodGet, "/users/email/ada@example.com", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("percent-encoded segment is decoded", func(t *testing.T) {
		cases := map[string]string{
			"/users/email/ada%40example.com":   "ada@example.com",
			"/users/email/ada%2Bx@example.com": "ada+x@example.com",
			"/users/email/ada+x@example.com":   "ada+x@example.com",
		}

		for target, email := range cases {
			f := newFixture(t)
			f.users.EXPECT().
				GetByEmail(gomock.Any(), email).
				Return(storedUser(validID, "Ada", email), nil)

			rec, env := do(t, newRouter(f), http.MethodGet, target, "")
			require.Equal(t, http.StatusOK, rec.Code, target)

			var got user.UserResponse
			require.NoError(t, json.Unmarshal(env.Data, &got))
			assert.Equal(t, email, got.Email)
		}
	})

	t.Run("malformed escape", func(t *testing.T) {
		f := newFixture(t)

		req := httptest.NewRequest(http.MethodGet, "/users/email/placeholder", nil)
		req.URL.RawPath = "/users/email/ada%zzexample.com"
		rec := httptest.NewRecorder()
		newRouter(f).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("absent", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().GetByEmail(gomock.Any(), "gone@example.com").Return(nil, nil)

		rec, env := do(t, newRouter(f), http.MethodGet, "/users/email/gone@example.com", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})
}

func TestHandlerGetUser(t *testing.T) {
	t.Run("bad id", func(t *testing.T) {
		f := newFixture(t)

		rec, _ := do(t, newRouter(f), http.MethodGet, "/users/not-a-uuid", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().GetByID(gomock.Any(), validID).Return(nil, nil)

		rec, _ := do(t, newRouter(f), http.MethodGet, "/users/"+validID, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandlerListUsers(t *testing.T) {
	f := newFixture(t)
	f.users.EXPECT().
		List(gomock.Any(), store.Page{Limit: 100, Offset: 3}).
		Return([]user.User{*storedUser(validID, "Ada", "ada@example.com")}, nil)
	f.users.EXPECT().Count(gomock.Any()).Return(int64(4), nil)

	rec, env := do(t, newRouter(f), http.MethodGet, "/users?limit=1000&offset=3", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 100, env.Meta.Limit)
	assert.Equal(t, 3, env.Meta.Offset)
	assert.EqualValues(t, 4, env.Meta.Total)

	var got user.UserListResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Len(t, got.Users, 1)
}

func TestHandlerUpdateUser(t *testing.T) {
	f := newFixture(t)
	name := "Grace"
	f.users.EXPECT().
		Update(gomock.Any(), validID, user.Patch{Name: &name}).
		Return(storedUser(validID, name, "ada@example.com"), nil)

	rec, env := do(t, newRouter(f), http.MethodPatch, "/users/"+validID, `{"name":"Grace"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var got user.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "Grace", got.Name)
}

func TestHandlerDeleteUser(t *testing.T) {
	t.Run("no content", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().GetByID(gomock.Any(), validID).Return(&user.User{}, nil)
		f.users.EXPECT().SoftDelete(gomock.Any(), validID).Return(nil)
		f.messages.EXPECT().SoftDeleteBySenderID(gomock.Any(), validID).Return(int64(2), nil)

		rec, _ := do(t, newRouter(f), http.MethodDelete, "/users/"+validID, "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().GetByID(gomock.Any(), validID).Return(nil, nil)

		rec, _ := do(t, newRouter(f), http.MethodDelete, "/users/"+validID, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
