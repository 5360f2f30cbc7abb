package web

import (
	"context"
	"net/http"

	"formativa-portal/internal/model"
)

// Edit screens mirror the create forms: load the record plus the lists
// its selects need, render prefilled, and put the whole record back.

type classroomEditPage struct {
	Room     model.Classroom
	Teachers []model.User
}

func (h *Handlers) EditClassroomForm(w http.ResponseWriter, r *http.Request) {
	snap, access := h.access()
	if snap.User == nil || !snap.User.Role.IsManager() {
		http.Redirect(w, r, "/salas", http.StatusSeeOther)
		return
	}

	id := pathID(r)
	var page classroomEditPage
	err := h.classroomLoader.Do(r.Context(), func(ctx context.Context) error {
		rooms, err := h.client.ListClassrooms(ctx, access)
		if err != nil {
			return err
		}
		for _, room := range rooms {
			if room.ID == id {
				page.Room = room
			}
		}
		page.Teachers, err = h.client.ListTeachers(ctx, access)
		return err
	})

	if err != nil || page.Room.ID == 0 {
		http.Redirect(w, r, "/salas", http.StatusSeeOther)
		return
	}

	render(w, http.StatusOK, "classroom_edit", pageData{Title: "Editar sala", Session: snap, Data: page})
}

func (h *Handlers) UpdateClassroom(w http.ResponseWriter, r *http.Request) {
	snap, access := h.access()
	if snap.User == nil || !snap.User.Role.IsManager() {
		http.Redirect(w, r, "/salas", http.StatusSeeOther)
		return
	}

	id := pathID(r)
	if id == 0 || r.ParseForm() != nil {
		http.Redirect(w, r, "/salas", http.StatusSeeOther)
		return
	}

	room := model.Classroom{
		ID:        id,
		Name:      r.PostFormValue("nome"),
		Capacity:  formInt(r, "capacidade"),
		TeacherID: formIntPtr(r, "id_professor"),
	}

	if _, err := h.client.UpdateClassroom(r.Context(), access, room); err != nil {
		render(w, http.StatusBadGateway, "classroom_edit", pageData{
			Title: "Editar sala", Session: snap, Error: "Não foi possível salvar a sala.",
			Data: classroomEditPage{Room: room},
		})
		return
	}

	http.Redirect(w, r, "/salas", http.StatusSeeOther)
}

type disciplineEditPage struct {
	Discipline model.Discipline
	Teachers   []model.User
}

func (h *Handlers) EditDisciplineForm(w http.ResponseWriter, r *http.Request) {
	snap, access := h.access()
	if snap.User == nil || !snap.User.Role.IsManager() {
		http.Redirect(w, r, "/disciplinas", http.StatusSeeOther)
		return
	}

	id := pathID(r)
	var page disciplineEditPage
	err := h.disciplineLoader.Do(r.Context(), func(ctx context.Context) error {
		disciplines, err := h.client.ListDisciplines(ctx, access)
		if err != nil {
			return err
		}
		for _, discipline := range disciplines {
			if discipline.ID == id {
				page.Discipline = discipline
			}
		}
		page.Teachers, err = h.client.ListTeachers(ctx, access)
		return err
	})

	if err != nil || page.Discipline.ID == 0 {
		http.Redirect(w, r, "/disciplinas", http.StatusSeeOther)
		return
	}

	render(w, http.StatusOK, "discipline_edit", pageData{Title: "Editar disciplina", Session: snap, Data: page})
}

func (h *Handlers) UpdateDiscipline(w http.ResponseWriter, r *http.Request) {
	snap, access := h.access()
	if snap.User == nil || !snap.User.Role.IsManager() {
		http.Redirect(w, r, "/disciplinas", http.StatusSeeOther)
		return
	}

	id := pathID(r)
	if id == 0 || r.ParseForm() != nil {
		http.Redirect(w, r, "/disciplinas", http.StatusSeeOther)
		return
	}

	discipline := model.Discipline{
		ID:          id,
		Name:        r.PostFormValue("nome"),
		Course:      r.PostFormValue("curso"),
		Description: r.PostFormValue("descricao"),
		Workload:    formInt(r, "carga_horaria"),
		TeacherID:   formIntPtr(r, "professor"),
	}

	if _, err := h.client.UpdateDiscipline(r.Context(), access, discipline); err != nil {
		render(w, http.StatusBadGateway, "discipline_edit", pageData{
			Title: "Editar disciplina", Session: snap, Error: "Não foi possível salvar a disciplina.",
			Data: disciplineEditPage{Discipline: discipline},
		})
		return
	}

	http.Redirect(w, r, "/disciplinas", http.StatusSeeOther)
}

type reservationEditPage struct {
	Reservation model.Reservation
	Periods     []model.Period
	Rooms       []model.Classroom
	Disciplines []model.Discipline
	Teachers    []model.User
}

func reservationEditFrom(page reservationsPage, reservation model.Reservation) reservationEditPage {
	return reservationEditPage{
		Reservation: reservation,
		Periods:     page.Periods,
		Rooms:       page.Rooms,
		Disciplines: page.Disciplines,
		Teachers:    page.Teachers,
	}
}

func (h *Handlers) EditReservationForm(w http.ResponseWriter, r *http.Request) {
	snap, access := h.access()
	if snap.User == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	page, err := h.loadReservationsPage(r.Context(), access, snap.User.Role.IsManager(), snap.User.NI)
	if err != nil {
		http.Redirect(w, r, "/reservas", http.StatusSeeOther)
		return
	}

	id := pathID(r)
	var found model.Reservation
	for _, reservation := range page.Reservations {
		if reservation.ID == id {
			found = reservation
		}
	}
	if found.ID == 0 {
		http.Redirect(w, r, "/reservas", http.StatusSeeOther)
		return
	}

	render(w, http.StatusOK, "reservation_edit", pageData{
		Title: "Editar reserva", Session: snap, Data: reservationEditFrom(page, found),
	})
}

func (h *Handlers) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	snap, access := h.access()
	if snap.User == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id := pathID(r)
	if id == 0 || r.ParseForm() != nil {
		http.Redirect(w, r, "/reservas", http.StatusSeeOther)
		return
	}

	reservation := model.Reservation{
		ID:           id,
		Start:        r.PostFormValue("data_inicio"),
		End:          r.PostFormValue("data_termino"),
		Period:       model.ReservationPeriod(r.PostFormValue("periodo")),
		ClassroomID:  formInt(r, "sala_reservada"),
		TeacherID:    formInt(r, "professor_responsavel"),
		DisciplineID: formInt(r, "disciplina_associada"),
	}

	page, loadErr := h.loadReservationsPage(r.Context(), access, snap.User.Role.IsManager(), snap.User.NI)

	if reservation.Start >= reservation.End {
		render(w, http.StatusOK, "reservation_edit", pageData{
			Title: "Editar reserva", Session: snap, Data: reservationEditFrom(page, reservation),
			Error: "A data de início deve ser anterior à de término.",
		})
		return
	}

	// The edited reservation skips itself in the clash check.
	if loadErr == nil && model.OverlapHint(page.Reservations, reservation, id) {
		render(w, http.StatusOK, "reservation_edit", pageData{
			Title: "Editar reserva", Session: snap, Data: reservationEditFrom(page, reservation),
			Warning: "Já existe uma reserva para esta sala no mesmo horário.",
		})
		return
	}

	if _, err := h.client.UpdateReservation(r.Context(), access, reservation); err != nil {
		render(w, http.StatusBadGateway, "reservation_edit", pageData{
			Title: "Editar reserva", Session: snap, Data: reservationEditFrom(page, reservation),
			Error: "Não foi possível salvar a reserva.",
		})
		return
	}

	http.Redirect(w, r, "/reservas", http.StatusSeeOther)
}

type userEditPage struct {
	User model.User
}

func (h *Handlers) EditUserForm(w http.ResponseWriter, r *http.Request) {
	snap, access := h.access()
	if snap.User == nil || !snap.User.Role.IsManager() {
		http.Redirect(w, r, "/perfil", http.StatusSeeOther)
		return
	}

	id := pathID(r)
	var page userEditPage
	err := h.registrationLoader.Do(r.Context(), func(ctx context.Context) error {
		users, err := h.client.ListUsers(ctx, access)
		if err != nil {
			return err
		}
		for _, user := range users {
			if user.ID == id {
				page.User = user
			}
		}
		return nil
	})

	if err != nil || page.User.ID == 0 {
		http.Redirect(w, r, "/cadastro", http.StatusSeeOther)
		return
	}

	render(w, http.StatusOK, "user_edit", pageData{Title: "Editar funcionário", Session: snap, Data: page})
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	snap, access := h.access()
	if snap.User == nil || !snap.User.Role.IsManager() {
		http.Redirect(w, r, "/perfil", http.StatusSeeOther)
		return
	}

	id := pathID(r)
	if id == 0 || r.ParseForm() != nil {
		http.Redirect(w, r, "/cadastro", http.StatusSeeOther)
		return
	}

	user := model.User{
		ID:        id,
		Username:  r.PostFormValue("username"),
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
		Email:     r.PostFormValue("email"),
		Phone:     r.PostFormValue("telefone"),
		Role:      model.Role(r.PostFormValue("tipo")),
		NI:        formInt(r, "ni"),
		BirthDate: r.PostFormValue("data_nascimento"),
		HireDate:  r.PostFormValue("data_contratacao"),
		// Blank password stays out of the payload; the server keeps the
		// current one.
		Password: r.PostFormValue("password"),
	}

	if _, err := h.client.UpdateUser(r.Context(), access, user); err != nil {
		render(w, http.StatusBadGateway, "user_edit", pageData{
			Title: "Editar funcionário", Session: snap, Error: "Não foi possível salvar o funcionário.",
			Data: userEditPage{User: user},
		})
		return
	}

	http.Redirect(w, r, "/cadastro", http.StatusSeeOther)
}
