package portal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carometro/internal/auth"
)

func TestResolveEmployee(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/employees/emp-7", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"u-7","name":"Maria Silva","role":"Editor","email":"maria@escola.example"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, false)
	u, err := c.ResolveEmployee(context.Background(), "emp-7")
	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", u.Name)
	assert.Equal(t, auth.RoleEditor, u.Role)
	assert.Equal(t, "emp-7", u.EmployeeID)
}

func TestResolveEmployee_UnknownRoleDefaultsToUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"u-7","name":"Maria Silva","role":"Wizard"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, false)
	u, err := c.ResolveEmployee(context.Background(), "emp-7")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleUser, u.Role)
}

func TestResolveEmployee_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such employee", http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, false)
	_, err := c.ResolveEmployee(context.Background(), "emp-404")
	assert.Error(t, err)
}

func TestResolveEmployee_EmptyName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, false)
	_, err := c.ResolveEmployee(context.Background(), "emp-7")
	assert.Error(t, err)
}

func TestResolveEmployee_SkipMode(t *testing.T) {
	c := New("http://portal.invalid", true)
	u, err := c.ResolveEmployee(context.Background(), "whatever")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, u.Role)
	assert.Equal(t, "Usuário de Teste", u.Name)
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	assert.NoError(t, New(srv.URL, false).Health(context.Background()))
	assert.NoError(t, New("http://portal.invalid", true).Health(context.Background()))
}
