package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formativa-portal/internal/api"
	"formativa-portal/internal/config"
	"formativa-portal/internal/model"
	"formativa-portal/internal/session"
	"formativa-portal/internal/store"
)

// remoteCalls records every request the portal makes to the mock API.
type remoteCalls struct {
	mu      sync.Mutex
	entries []string
}

func (c *remoteCalls) record(r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, r.Method+" "+r.URL.Path)
}

func (c *remoteCalls) has(entry string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		if e == entry {
			return true
		}
	}
	return false
}

// mockSchoolAPI stands in for the remote Django API.
func mockSchoolAPI(t *testing.T) (*httptest.Server, *remoteCalls) {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))

		if creds["password"] != "segredo" {
			http.Error(w, `{"detail":"no active account"}`, http.StatusUnauthorized)
			return
		}

		role := model.RoleManager
		if creds["username"] == "bruno" {
			role = model.RoleTeacher
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access":  "access-token",
			"refresh": "refresh-token",
			"user":    model.User{ID: 1, Username: creds["username"], FirstName: "Ana", Role: role, NI: 42},
		})
	})

	requireBearer := func(w http.ResponseWriter, r *http.Request) bool {
		if r.Header.Get("Authorization") != "Bearer access-token" {
			http.Error(w, "missing bearer", http.StatusUnauthorized)
			return false
		}
		return true
	}

	mux.HandleFunc("GET /salas/", func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		_ = json.NewEncoder(w).Encode([]model.Classroom{{ID: 1, Name: "Laboratório 3", Capacity: 30}})
	})
	mux.HandleFunc("PUT /salas/1", func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		var room model.Classroom
		require.NoError(t, json.NewDecoder(r.Body).Decode(&room))
		room.ID = 1
		_ = json.NewEncoder(w).Encode(room)
	})
	mux.HandleFunc("GET /reservas/", func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		_ = json.NewEncoder(w).Encode([]model.Reservation{{
			ID: 5, Start: "2026-09-01T08:00", End: "2026-09-01T10:00",
			Period: model.PeriodMorning, ClassroomID: 1, TeacherID: 2, DisciplineID: 3,
		}})
	})
	mux.HandleFunc("PUT /reservas/5/", func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		var reservation model.Reservation
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reservation))
		reservation.ID = 5
		_ = json.NewEncoder(w).Encode(reservation)
	})
	mux.HandleFunc("GET /usuarios/professores/", func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		_ = json.NewEncoder(w).Encode([]model.User{{ID: 2, Username: "bruno", Role: model.RoleTeacher}})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("[]"))
	})

	calls := &remoteCalls{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.record(r)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)
	return server, calls
}

func newPortal(t *testing.T, initialize bool) (*httptest.Server, *session.Manager, *remoteCalls) {
	t.Helper()

	remote, calls := mockSchoolAPI(t)

	st, err := store.New(t.TempDir())
	require.NoError(t, err)

	client := api.New(remote.URL, 5*time.Second)
	manager := session.NewManager(st, client, 100)
	if initialize {
		manager.Initialize(t.Context())
	}

	cfg := &config.Config{
		APIBaseURL:        remote.URL,
		StateDir:          t.TempDir(),
		ServerPort:        "3000",
		HTTPTimeout:       5 * time.Second,
		CORSOrigins:       []string{"*"},
		RateLimitRPM:      1000,
		LoginRateLimitRPM: 1000,
	}

	portal := httptest.NewServer(NewRouter(cfg, manager, client))
	t.Cleanup(portal.Close)
	return portal, manager, calls
}

func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func postForm(t *testing.T, client *http.Client, url string, form url.Values) *http.Response {
	t.Helper()

	resp, err := client.Post(url, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestRouter_PublicPages(t *testing.T) {
	portal, _, _ := newPortal(t, true)

	for _, path := range []string{"/", "/escola", "/processo", "/login", "/healthz"} {
		resp, err := http.Get(portal.URL + path)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		_ = resp.Body.Close()
	}
}

func TestRouter_GateRedirectsAnonymous(t *testing.T) {
	portal, _, _ := newPortal(t, true)
	client := noRedirectClient()

	for _, path := range []string{"/perfil", "/salas", "/disciplinas", "/reservas", "/cadastro"} {
		resp, err := client.Get(portal.URL + path)
		require.NoError(t, err)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/login", resp.Header.Get("Location"), path)
		_ = resp.Body.Close()
	}
}

func TestRouter_GateWithholdsRedirectBeforeStartupRecovery(t *testing.T) {
	portal, _, _ := newPortal(t, false)
	client := noRedirectClient()

	resp, err := client.Get(portal.URL + "/salas")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Location"))
}

func TestRouter_LoginFlow(t *testing.T) {
	portal, manager, _ := newPortal(t, true)
	client := noRedirectClient()

	t.Run("wrong password renders inline error", func(t *testing.T) {
		resp := postForm(t, client, portal.URL+"/login", url.Values{"username": {"ana"}, "password": {"errada"}})

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "Erro ao realizar o login!")
		assert.False(t, manager.Snapshot().Authenticated())
	})

	t.Run("correct password redirects to profile", func(t *testing.T) {
		resp := postForm(t, client, portal.URL+"/login", url.Values{"username": {"ana"}, "password": {"segredo"}})

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/perfil", resp.Header.Get("Location"))
		assert.True(t, manager.Snapshot().Authenticated())
	})

	t.Run("private screen renders remote data", func(t *testing.T) {
		resp, err := client.Get(portal.URL + "/salas")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "Laboratório 3")
	})

	t.Run("logout closes the gate again", func(t *testing.T) {
		resp := postForm(t, client, portal.URL+"/logout", url.Values{})
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))

		after, err := client.Get(portal.URL + "/salas")
		require.NoError(t, err)
		defer after.Body.Close()
		assert.Equal(t, http.StatusSeeOther, after.StatusCode)
		assert.Equal(t, "/login", after.Header.Get("Location"))
	})
}

func TestRouter_TeacherSeesNoManagerAffordances(t *testing.T) {
	portal, manager, calls := newPortal(t, true)
	client := noRedirectClient()

	resp := postForm(t, client, portal.URL+"/login", url.Values{"username": {"bruno"}, "password": {"segredo"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.True(t, manager.Snapshot().User.Role.IsTeacher())

	t.Run("registration redirects to profile", func(t *testing.T) {
		resp, err := client.Get(portal.URL + "/cadastro")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/perfil", resp.Header.Get("Location"))
	})

	t.Run("classroom create form is hidden", func(t *testing.T) {
		resp, err := client.Get(portal.URL + "/salas")
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.NotContains(t, string(body), "Criar sala")
	})

	t.Run("classroom deletion never reaches the remote API", func(t *testing.T) {
		resp := postForm(t, client, portal.URL+"/salas/1/excluir", url.Values{})

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/salas", resp.Header.Get("Location"))
		assert.False(t, calls.has("DELETE /salas/1"))
	})

	t.Run("classroom edit form redirects away", func(t *testing.T) {
		resp, err := client.Get(portal.URL + "/salas/1/editar")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/salas", resp.Header.Get("Location"))
	})
}

func TestRouter_EditFlows(t *testing.T) {
	portal, _, calls := newPortal(t, true)
	client := noRedirectClient()

	login := postForm(t, client, portal.URL+"/login", url.Values{"username": {"ana"}, "password": {"segredo"}})
	require.Equal(t, http.StatusSeeOther, login.StatusCode)

	t.Run("classroom edit form comes prefilled", func(t *testing.T) {
		resp, err := client.Get(portal.URL + "/salas/1/editar")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `value="Laboratório 3"`)
	})

	t.Run("classroom edit submits the whole record", func(t *testing.T) {
		resp := postForm(t, client, portal.URL+"/salas/1/editar", url.Values{
			"nome": {"Laboratório 3B"}, "capacidade": {"40"},
		})

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/salas", resp.Header.Get("Location"))
		assert.True(t, calls.has("PUT /salas/1"))
	})

	t.Run("unknown classroom id redirects to the list", func(t *testing.T) {
		resp, err := client.Get(portal.URL + "/salas/99/editar")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/salas", resp.Header.Get("Location"))
	})

	t.Run("creating a clashing reservation warns before the remote call", func(t *testing.T) {
		resp := postForm(t, client, portal.URL+"/reservas", url.Values{
			"data_inicio": {"2026-09-01T08:00"}, "data_termino": {"2026-09-01T10:00"},
			"periodo": {"M"}, "sala_reservada": {"1"},
			"professor_responsavel": {"2"}, "disciplina_associada": {"3"},
		})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "Já existe uma reserva")
		assert.False(t, calls.has("POST /reservas/"))
	})

	t.Run("editing a reservation skips its own slot in the clash check", func(t *testing.T) {
		resp := postForm(t, client, portal.URL+"/reservas/5/editar", url.Values{
			"data_inicio": {"2026-09-01T08:00"}, "data_termino": {"2026-09-01T10:00"},
			"periodo": {"M"}, "sala_reservada": {"1"},
			"professor_responsavel": {"2"}, "disciplina_associada": {"3"},
		})

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/reservas", resp.Header.Get("Location"))
		assert.True(t, calls.has("PUT /reservas/5/"))
	})
}

func TestDisciplines_RedirectsWhenSessionClearsMidRequest(t *testing.T) {
	remote, _ := mockSchoolAPI(t)

	st, err := store.New(t.TempDir())
	require.NoError(t, err)

	apiClient := api.New(remote.URL, 5*time.Second)
	manager := session.NewManager(st, apiClient, 100)
	manager.Initialize(t.Context())

	// A logout can land between the gate's check and the handler's own
	// snapshot; the handler must redirect, not dereference a nil user.
	h := NewHandlers(manager, apiClient)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/disciplinas", nil)

	assert.NotPanics(t, func() { h.Disciplines(rec, req) })
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	portal, _, _ := newPortal(t, true)

	// Generate at least one observed request before scraping.
	warm, err := http.Get(portal.URL + "/healthz")
	require.NoError(t, err)
	_ = warm.Body.Close()

	resp, err := http.Get(portal.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "portal_http_requests_total")
}
