package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNoResponse_Defaults(t *testing.T) {
	e := NewNoResponse()

	assert.Equal(t, KindNoResponse, e.Kind)
	assert.Equal(t, http.StatusInternalServerError, e.Status)
	assert.Equal(t, MsgInternalServerError500, e.Message)
	assert.Equal(t, MsgContactAdministrator, e.Description)
	assert.True(t, IsNoResponse(e))
}

func TestNewServer_DefaultsAndOverrides(t *testing.T) {
	e := NewServer()
	assert.Equal(t, KindServer, e.Kind)
	assert.Equal(t, http.StatusInternalServerError, e.Status)
	assert.Equal(t, MsgInternalServerError500, e.Message)
	assert.Equal(t, MsgContactAdministrator, e.Description)

	e = NewServer(WithStatus(http.StatusServiceUnavailable), WithMessage("down"), WithDescription("maintenance"))
	assert.Equal(t, http.StatusServiceUnavailable, e.Status)
	assert.Equal(t, "down", e.Message)
	assert.Equal(t, "maintenance", e.Description)
	assert.False(t, IsNoResponse(e))
}

func TestNewClient_DescriptionDefaultsEmpty(t *testing.T) {
	e := NewClient(http.StatusNotFound, "Not found")

	assert.Equal(t, KindClient, e.Kind)
	assert.Equal(t, http.StatusNotFound, e.Status)
	assert.Equal(t, "Not found", e.Message)
	assert.Empty(t, e.Description)
	assert.Equal(t, "Not found", e.Error())
}

func TestError_CauseAndUnwrap(t *testing.T) {
	sentinel := errors.New("disk full")
	e := NewServer(WithCause(sentinel))

	assert.ErrorIs(t, e, sentinel)
	assert.Equal(t, MsgInternalServerError500+": disk full", e.Error())

	wrapped := fmt.Errorf("saving: %w", e)
	kind, ok := KindOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindServer, kind)
}

func TestError_StackNamesConstructionSite(t *testing.T) {
	e := NewClient(http.StatusBadRequest, "bad")

	stack := e.Stack()
	assert.Contains(t, stack, "bad")
	assert.Contains(t, stack, "TestError_StackNamesConstructionSite")
}

func TestError_NilReceiver(t *testing.T) {
	var e *Error

	assert.Equal(t, "<nil>", e.Error())
	assert.Equal(t, http.StatusInternalServerError, e.HTTPStatus())
	assert.Empty(t, e.Stack())
	assert.NoError(t, e.Unwrap())
}

func TestKindOf_ForeignError(t *testing.T) {
	_, ok := KindOf(errors.New("plain"))
	assert.False(t, ok)
	assert.False(t, IsNoResponse(errors.New("plain")))
	assert.False(t, IsNoResponse(nil))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "server", KindServer.String())
	assert.Equal(t, "client", KindClient.String())
	assert.Equal(t, "no_response", KindNoResponse.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestFrom_TypedErrorReturnedAsIs(t *testing.T) {
	e := NewClient(http.StatusConflict, "Conflict")

	assert.Same(t, e, From(e))
	assert.Same(t, e, From(fmt.Errorf("wrapped: %w", e)))
	assert.Nil(t, From(nil))
}

func TestFrom_Classification(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		kind   Kind
		status int
	}{
		{"no rows", fmt.Errorf("get user: %w", pgx.ErrNoRows), KindClient, http.StatusNotFound},
		{"pg error", &pgconn.PgError{Code: "23505", Message: "duplicate key"}, KindServer, http.StatusInternalServerError},
		{"deadline", context.DeadlineExceeded, KindServer, http.StatusServiceUnavailable},
		{"canceled", context.Canceled, KindClient, http.StatusBadRequest},
		{"validation", errors.New("field name is required"), KindClient, http.StatusBadRequest},
		{"permission", errors.New("permission denied for user"), KindClient, http.StatusUnauthorized},
		{"network", errors.New("dial tcp: connection refused"), KindServer, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), KindServer, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := From(tc.err)

			require.NotNil(t, e)
			assert.Equal(t, tc.kind, e.Kind)
			assert.Equal(t, tc.status, e.Status)
			assert.ErrorIs(t, e, tc.err)
			assert.NotEmpty(t, e.Stack())
		})
	}
}

func TestFrom_SanitizesInProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	e := From(errors.New("sql: relation users_secret does not exist"))

	assert.Equal(t, MsgDatabaseFailure, e.Description)
	assert.NotContains(t, e.Description, "users_secret")
}

func TestFrom_KeepsDetailOutsideProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")

	e := From(errors.New("sql: relation users_secret does not exist"))

	assert.Contains(t, e.Description, "users_secret")
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("3f2504e0-4f89-11d3-9a0c-0305e82c3301"))
	assert.True(t, IsValidUUID("3F2504E0-4F89-11D3-9A0C-0305E82C3301"))
	assert.False(t, IsValidUUID(""))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID("3f2504e0-4f89-11d3-9a0c-0305e82c330"))
}
