package web

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"formativa-portal/internal/model"
)

// The private screens are deliberately uniform: fetch the lists the form
// needs, render, and post writes straight back to the remote API. All
// role checks here are advisory UI — the server re-checks everything.

type classroomsPage struct {
	Rooms     []model.Classroom
	Teachers  []model.User
	CanManage bool
}

func (h *Handlers) Classrooms(w http.ResponseWriter, r *http.Request) {
	snap, access := h.access()
	manager := snap.User != nil && snap.User.Role.IsManager()

	var page classroomsPage
	page.CanManage = manager

	err := h.classroomLoader.Do(r.Context(), func(ctx context.Context) error {
		var err error
		if manager {
			if page.Rooms, err = h.client.ListClassrooms(ctx, access); err != nil {
				return err
			}
			page.Teachers, err = h.client.ListTeachers(ctx, access)
			return err
		}
		page.Rooms, err = h.client.ListClassroomsByTeacher(ctx, access)
		return err
	})

	data := pageData{Title: "Salas", Session: snap, Data: page}
	if err != nil {
		data.Error = "Não foi possível carregar as salas."
		render(w, http.StatusBadGateway, "classrooms", data)
		return
	}

	render(w, http.StatusOK, "classrooms", data)
}

func (h *Handlers) CreateClassroom(w http.ResponseWriter, r *http.Request) {
	snap, access := h.access()
	if snap.User == nil || !snap.User.Role.IsManager() {
		http.Redirect(w, r, "/salas", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/salas", http.StatusSeeOther)
		return
	}

	room := model.Classroom{
		Name:      r.PostFormValue("nome"),
		Capacity:  formInt(r, "capacidade"),
		TeacherID: formIntPtr(r, "id_professor"),
	}

	if _, err := h.client.CreateClassroom(r.Context(), access, room); err != nil {
		render(w, http.StatusBadGateway, "classrooms", pageData{
			Title: "Salas", Session: snap, Error: "Não foi possível criar a sala.",
			Data: classroomsPage{CanManage: true},
		})
		return
	}

	http.Redirect(w, r, "/salas", http.StatusSeeOther)
}

func (h *Handlers) DeleteClassroom(w http.ResponseWriter, r *http.Request) {
	snap, access := h.access()
	if snap.User == nil || !snap.User.Role.IsManager() {
		http.Redirect(w, r, "/salas", http.StatusSeeOther)
		return
	}
	if id := pathID(r); id != 0 {
		_ = h.client.DeleteClassroom(r.Context(), access, id)
	}
	http.Redirect(w, r, "/salas", http.StatusSeeOther)
}

type disciplinesPage struct {
	Disciplines []model.Discipline
	Teachers    []model.User
	CanManage   bool
}

func (h *Handlers) Disciplines(w http.ResponseWriter, r *http.Request) {
	snap, access := h.access()
	if snap.User == nil {
		// A logout can land between the gate's snapshot and this one.
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	manager := snap.User.Role.IsManager()

	var page disciplinesPage
	page.CanManage = manager

	err := h.disciplineLoader.Do(r.Context(), func(ctx context.Context) error {
		var err error
		if manager {
			if page.Disciplines, err = h.client.ListDisciplines(ctx, access); err != nil {
				return err
			}
			page.Teachers, err = h.client.ListTeachers(ctx, access)
			return err
		}
		page.Disciplines, err = h.client.ListDisciplinesByTeacher(ctx, access, snap.User.NI)
		return err
	})

	data := pageData{Title: "Disciplinas", Session: snap, Data: page}
	if err != nil {
		data.Error = "Não foi possível carregar as disciplinas."
		render(w, http.StatusBadGateway, "disciplines", data)
		return
	}

	render(w, http.StatusOK, "disciplines", data)
}

func (h *Handlers) CreateDiscipline(w http.ResponseWriter, r *http.Request) {
	snap, access := h.access()
	if snap.User == nil || !snap.User.Role.IsManager() {
		http.Redirect(w, r, "/disciplinas", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/disciplinas", http.StatusSeeOther)
		return
	}

	discipline := model.Discipline{
		Name:        r.PostFormValue("nome"),
		Course:      r.PostFormValue("curso"),
		Description: r.PostFormValue("descricao"),
		Workload:    formInt(r, "carga_horaria"),
		TeacherID:   formIntPtr(r, "professor"),
	}

	if _, err := h.client.CreateDiscipline(r.Context(), access, discipline); err != nil {
		render(w, http.StatusBadGateway, "disciplines", pageData{
			Title: "Disciplinas", Session: snap, Error: "Não foi possível criar a disciplina.",
			Data: disciplinesPage{CanManage: true},
		})
		return
	}

	http.Redirect(w, r, "/disciplinas", http.StatusSeeOther)
}

func (h *Handlers) DeleteDiscipline(w http.ResponseWriter, r *http.Request) {
	snap, access := h.access()
	if snap.User == nil || !snap.User.Role.IsManager() {
		http.Redirect(w, r, "/disciplinas", http.StatusSeeOther)
		return
	}
	if id := pathID(r); id != 0 {
		_ = h.client.DeleteDiscipline(r.Context(), access, id)
	}
	http.Redirect(w, r, "/disciplinas", http.StatusSeeOther)
}

type reservationsPage struct {
	Reservations []model.Reservation
	Periods      []model.Period
	Rooms        []model.Classroom
	Disciplines  []model.Discipline
	Teachers     []model.User
}

func (h *Handlers) loadReservationsPage(ctx context.Context, access string, manager bool, ni int) (reservationsPage, error) {
	var page reservationsPage

	err := h.reservationLoader.Do(ctx, func(ctx context.Context) error {
		var err error
		if manager {
			page.Reservations, err = h.client.ListReservations(ctx, access)
		} else {
			page.Reservations, err = h.client.ListReservationsByTeacher(ctx, access)
		}
		if err != nil {
			return err
		}
		if page.Periods, err = h.client.Periods(ctx, access); err != nil {
			return err
		}
		if page.Rooms, err = h.client.ListClassrooms(ctx, access); err != nil {
			return err
		}
		if manager {
			page.Disciplines, err = h.client.ListDisciplines(ctx, access)
		} else {
			page.Disciplines, err = h.client.ListDisciplinesByTeacher(ctx, access, ni)
		}
		if err != nil {
			return err
		}
		page.Teachers, err = h.client.ListTeachers(ctx, access)
		return err
	})

	return page, err
}

func (h *Handlers) Reservations(w http.ResponseWriter, r *http.Request) {
	snap, access := h.access()
	manager := snap.User != nil && snap.User.Role.IsManager()
	ni := 0
	if snap.User != nil {
		ni = snap.User.NI
	}

	page, err := h.loadReservationsPage(r.Context(), access, manager, ni)
	data := pageData{Title: "Reservas", Session: snap, Data: page}
	if err != nil {
		data.Error = "Não foi possível carregar as reservas."
		render(w, http.StatusBadGateway, "reservations", data)
		return
	}

	render(w, http.StatusOK, "reservations", data)
}

func (h *Handlers) CreateReservation(w http.ResponseWriter, r *http.Request) {
	snap, access := h.access()
	manager := snap.User != nil && snap.User.Role.IsManager()
	ni := 0
	if snap.User != nil {
		ni = snap.User.NI
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/reservas", http.StatusSeeOther)
		return
	}

	reservation := model.Reservation{
		Start:        r.PostFormValue("data_inicio"),
		End:          r.PostFormValue("data_termino"),
		Period:       model.ReservationPeriod(r.PostFormValue("periodo")),
		ClassroomID:  formInt(r, "sala_reservada"),
		TeacherID:    formInt(r, "professor_responsavel"),
		DisciplineID: formInt(r, "disciplina_associada"),
	}

	if reservation.Start >= reservation.End {
		page, _ := h.loadReservationsPage(r.Context(), access, manager, ni)
		render(w, http.StatusOK, "reservations", pageData{
			Title: "Reservas", Session: snap, Data: page,
			Error: "A data de início deve ser anterior à de término.",
		})
		return
	}

	// Best-effort overlap warning against the loaded list. The server's
	// answer on write is still the authority on conflicts.
	page, err := h.loadReservationsPage(r.Context(), access, manager, ni)
	if err == nil && model.OverlapHint(page.Reservations, reservation, 0) {
		render(w, http.StatusOK, "reservations", pageData{
			Title: "Reservas", Session: snap, Data: page,
			Warning: "Já existe uma reserva para esta sala no mesmo horário.",
		})
		return
	}

	if _, err := h.client.CreateReservation(r.Context(), access, reservation); err != nil {
		render(w, http.StatusBadGateway, "reservations", pageData{
			Title: "Reservas", Session: snap, Data: page,
			Error: "Não foi possível criar a reserva.",
		})
		return
	}

	http.Redirect(w, r, "/reservas", http.StatusSeeOther)
}

func (h *Handlers) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	_, access := h.access()
	if id := pathID(r); id != 0 {
		_ = h.client.DeleteReservation(r.Context(), access, id)
	}
	http.Redirect(w, r, "/reservas", http.StatusSeeOther)
}

type registrationPage struct {
	Users []model.User
}

func (h *Handlers) Registration(w http.ResponseWriter, r *http.Request) {
	snap, access := h.access()
	if snap.User == nil || !snap.User.Role.IsManager() {
		// Advisory hide, not an error page: teachers land on their profile.
		http.Redirect(w, r, "/perfil", http.StatusSeeOther)
		return
	}

	var page registrationPage
	err := h.registrationLoader.Do(r.Context(), func(ctx context.Context) error {
		var err error
		page.Users, err = h.client.ListUsers(ctx, access)
		return err
	})

	data := pageData{Title: "Cadastro de Funcionários", Session: snap, Data: page}
	if err != nil {
		data.Error = "Não foi possível carregar os funcionários."
		render(w, http.StatusBadGateway, "registration", data)
		return
	}

	render(w, http.StatusOK, "registration", data)
}

func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	snap, access := h.access()
	if snap.User == nil || !snap.User.Role.IsManager() {
		http.Redirect(w, r, "/perfil", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/cadastro", http.StatusSeeOther)
		return
	}

	user := model.User{
		Username:  r.PostFormValue("username"),
		Password:  r.PostFormValue("password"),
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
		Email:     r.PostFormValue("email"),
		Phone:     r.PostFormValue("telefone"),
		Role:      model.Role(r.PostFormValue("tipo")),
		NI:        formInt(r, "ni"),
		BirthDate: r.PostFormValue("data_nascimento"),
		HireDate:  r.PostFormValue("data_contratacao"),
	}
	if user.Role == "" {
		user.Role = model.RoleTeacher
	}

	if _, err := h.client.CreateUser(r.Context(), access, user); err != nil {
		render(w, http.StatusBadGateway, "registration", pageData{
			Title: "Cadastro de Funcionários", Session: snap,
			Error: "Não foi possível cadastrar o funcionário.",
			Data:  registrationPage{},
		})
		return
	}

	http.Redirect(w, r, "/cadastro", http.StatusSeeOther)
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	snap, access := h.access()
	if snap.User == nil || !snap.User.Role.IsManager() {
		http.Redirect(w, r, "/perfil", http.StatusSeeOther)
		return
	}
	if id := pathID(r); id != 0 {
		_ = h.client.DeleteUser(r.Context(), access, id)
	}
	http.Redirect(w, r, "/cadastro", http.StatusSeeOther)
}

func pathID(r *http.Request) int {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0
	}
	return id
}

func formInt(r *http.Request, field string) int {
	v, err := strconv.Atoi(r.PostFormValue(field))
	if err != nil {
		return 0
	}
	return v
}

func formIntPtr(r *http.Request, field string) *int {
	v, err := strconv.Atoi(r.PostFormValue(field))
	if err != nil {
		return nil
	}
	return &v
}
