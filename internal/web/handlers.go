package web

import (
	"net/http"

	"formativa-portal/internal/api"
	"formativa-portal/internal/fetch"
	"formativa-portal/internal/middleware"
	"formativa-portal/internal/model"
	"formativa-portal/internal/session"
)

type Handlers struct {
	manager *session.Manager
	client  *api.Client

	// One loader per list screen: re-entering a screen cancels the fetch
	// the previous visit left in flight.
	classroomLoader    fetch.Loader
	disciplineLoader   fetch.Loader
	reservationLoader  fetch.Loader
	registrationLoader fetch.Loader
}

func NewHandlers(manager *session.Manager, client *api.Client) *Handlers {
	return &Handlers{manager: manager, client: client}
}

// access returns the current snapshot plus its bearer token. Private
// handlers run behind the gate, so tokens are present by the time the
// request reaches them; the empty fallback just keeps a race with a
// concurrent logout from panicking.
func (h *Handlers) access() (model.Session, string) {
	snap := h.manager.Snapshot()
	if snap.Tokens == nil {
		return snap, ""
	}
	return snap, snap.Tokens.Access
}

func (h *Handlers) Home(w http.ResponseWriter, _ *http.Request) {
	render(w, http.StatusOK, "home", pageData{Title: "Início", Session: h.manager.Snapshot()})
}

func (h *Handlers) School(w http.ResponseWriter, _ *http.Request) {
	render(w, http.StatusOK, "school", pageData{Title: "A Escola", Session: h.manager.Snapshot()})
}

func (h *Handlers) Process(w http.ResponseWriter, _ *http.Request) {
	render(w, http.StatusOK, "process", pageData{Title: "Processo Seletivo", Session: h.manager.Snapshot()})
}

func (h *Handlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	snap := h.manager.Snapshot()
	if snap.Authenticated() {
		http.Redirect(w, r, "/perfil", http.StatusSeeOther)
		return
	}

	render(w, http.StatusOK, "login", pageData{Title: "Entrar", Session: snap})
}

func (h *Handlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		render(w, http.StatusBadRequest, "login", pageData{Title: "Entrar", Session: h.manager.Snapshot(), Error: "Formulário inválido."})
		return
	}

	ok := h.manager.Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	middleware.ObserveLogin(ok)

	if !ok {
		snap := h.manager.Snapshot()
		render(w, http.StatusUnauthorized, "login", pageData{Title: "Entrar", Session: snap, Error: snap.LastError})
		return
	}

	http.Redirect(w, r, "/perfil", http.StatusSeeOther)
}

// Logout always succeeds visibly: clear and send the user home.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.manager.Logout()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) Profile(w http.ResponseWriter, _ *http.Request) {
	render(w, http.StatusOK, "profile", pageData{Title: "Perfil", Session: h.manager.Snapshot()})
}
