package web

import (
	"html/template"
	"log/slog"
	"net/http"

	"formativa-portal/internal/model"
)

// Markup is deliberately bare: the portal's value is in the session and
// data plumbing, not the styling.
const pageSrc = `
{{define "head"}}<!DOCTYPE html>
<html lang="pt-BR">
<head><meta charset="utf-8"><title>{{.Title}} — Escola Formativa</title></head>
<body>
<nav>
  <a href="/">Início</a>
  <a href="/escola">A Escola</a>
  <a href="/processo">Processo Seletivo</a>
  {{if .Session.Authenticated}}
  <a href="/perfil">Perfil</a>
  <a href="/salas">Salas</a>
  <a href="/disciplinas">Disciplinas</a>
  <a href="/reservas">Reservas</a>
  {{if .Session.User}}{{if .Session.User.Role.IsManager}}<a href="/cadastro">Cadastro</a>{{end}}{{end}}
  <form method="post" action="/logout" style="display:inline"><button type="submit">Sair</button></form>
  {{else}}
  <a href="/login">Entrar</a>
  {{end}}
</nav>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{if .Warning}}<p class="warning">{{.Warning}}</p>{{end}}
<h1>{{.Title}}</h1>{{end}}

{{define "foot"}}<footer>Escola Formativa</footer></body></html>{{end}}

{{define "home"}}{{template "head" .}}
<p>Bem-vindo ao portal da Escola Formativa: ensino técnico com formação humana.</p>
{{template "foot" .}}{{end}}

{{define "school"}}{{template "head" .}}
<p>Nossa missão é formar profissionais completos, unindo base técnica sólida e compromisso com a comunidade.</p>
{{template "foot" .}}{{end}}

{{define "process"}}{{template "head" .}}
<ol>
  <li>Inscrição online</li>
  <li>Prova de seleção</li>
  <li>Entrevista</li>
  <li>Matrícula</li>
</ol>
{{template "foot" .}}{{end}}

{{define "login"}}{{template "head" .}}
<form method="post" action="/login">
  <label>Usuário <input name="username" required></label>
  <label>Senha <input name="password" type="password" required></label>
  <button type="submit">Entrar</button>
</form>
{{template "foot" .}}{{end}}

{{define "profile"}}{{template "head" .}}
{{with .Session.User}}
<dl>
  <dt>Nome</dt><dd>{{.FullName}}</dd>
  <dt>Usuário</dt><dd>{{.Username}}</dd>
  <dt>Tipo</dt><dd>{{.Role.Label}}</dd>
  <dt>NI</dt><dd>{{.NI}}</dd>
  <dt>Email</dt><dd>{{.Email}}</dd>
  <dt>Telefone</dt><dd>{{.Phone}}</dd>
  <dt>Nascimento</dt><dd>{{.BirthDate}}</dd>
  <dt>Contratação</dt><dd>{{.HireDate}}</dd>
</dl>
{{end}}
{{template "foot" .}}{{end}}

{{define "classrooms"}}{{template "head" .}}
<table>
  <tr><th>Sala</th><th>Capacidade</th><th></th></tr>
  {{range .Data.Rooms}}
  <tr>
    <td>{{.Name}}</td><td>{{.Capacity}}</td>
    <td>{{if $.Data.CanManage}}<a href="/salas/{{.ID}}/editar">Editar</a> <form method="post" action="/salas/{{.ID}}/excluir"><button>Excluir</button></form>{{end}}</td>
  </tr>
  {{end}}
</table>
{{if .Data.CanManage}}
<form method="post" action="/salas">
  <label>Nome <input name="nome" required></label>
  <label>Capacidade <input name="capacidade" type="number" required></label>
  <label>Professor responsável
    <select name="id_professor">
      <option value="">—</option>
      {{range .Data.Teachers}}<option value="{{.ID}}">{{.FullName}}</option>{{end}}
    </select>
  </label>
  <button type="submit">Criar sala</button>
</form>
{{end}}
{{template "foot" .}}{{end}}

{{define "disciplines"}}{{template "head" .}}
<table>
  <tr><th>Disciplina</th><th>Curso</th><th>Carga horária</th><th></th></tr>
  {{range .Data.Disciplines}}
  <tr>
    <td>{{.Name}}</td><td>{{.Course}}</td><td>{{.Workload}}h</td>
    <td>{{if $.Data.CanManage}}<a href="/disciplinas/{{.ID}}/editar">Editar</a> <form method="post" action="/disciplinas/{{.ID}}/excluir"><button>Excluir</button></form>{{end}}</td>
  </tr>
  {{end}}
</table>
{{if .Data.CanManage}}
<form method="post" action="/disciplinas">
  <label>Nome <input name="nome" required></label>
  <label>Curso <input name="curso" required></label>
  <label>Descrição <input name="descricao"></label>
  <label>Carga horária <input name="carga_horaria" type="number" required></label>
  <label>Professor
    <select name="professor">
      <option value="">—</option>
      {{range .Data.Teachers}}<option value="{{.ID}}">{{.FullName}}</option>{{end}}
    </select>
  </label>
  <button type="submit">Criar disciplina</button>
</form>
{{end}}
{{template "foot" .}}{{end}}

{{define "reservations"}}{{template "head" .}}
<table>
  <tr><th>Início</th><th>Término</th><th>Período</th><th>Sala</th><th></th></tr>
  {{range .Data.Reservations}}
  <tr>
    <td>{{.Start}}</td><td>{{.End}}</td><td>{{.Period}}</td><td>{{.ClassroomID}}</td>
    <td><a href="/reservas/{{.ID}}/editar">Editar</a> <form method="post" action="/reservas/{{.ID}}/excluir"><button>Cancelar</button></form></td>
  </tr>
  {{end}}
</table>
<form method="post" action="/reservas">
  <label>Início <input name="data_inicio" type="datetime-local" required></label>
  <label>Término <input name="data_termino" type="datetime-local" required></label>
  <label>Período
    <select name="periodo" required>
      {{range .Data.Periods}}<option value="{{.Value}}">{{.Label}}</option>{{end}}
    </select>
  </label>
  <label>Sala
    <select name="sala_reservada" required>
      {{range .Data.Rooms}}<option value="{{.ID}}">{{.Name}}</option>{{end}}
    </select>
  </label>
  <label>Professor responsável
    <select name="professor_responsavel" required>
      {{range .Data.Teachers}}<option value="{{.ID}}">{{.FullName}}</option>{{end}}
    </select>
  </label>
  <label>Disciplina
    <select name="disciplina_associada" required>
      {{range .Data.Disciplines}}<option value="{{.ID}}">{{.Name}}</option>{{end}}
    </select>
  </label>
  <button type="submit">Reservar</button>
</form>
{{template "foot" .}}{{end}}

{{define "registration"}}{{template "head" .}}
<table>
  <tr><th>Nome</th><th>Usuário</th><th>Tipo</th><th>NI</th><th></th></tr>
  {{range .Data.Users}}
  <tr>
    <td>{{.FullName}}</td><td>{{.Username}}</td><td>{{.Role.Label}}</td><td>{{.NI}}</td>
    <td><a href="/cadastro/{{.ID}}/editar">Editar</a> <form method="post" action="/cadastro/{{.ID}}/excluir"><button>Excluir</button></form></td>
  </tr>
  {{end}}
</table>
<form method="post" action="/cadastro">
  <label>Usuário <input name="username" required></label>
  <label>Senha <input name="password" type="password" required></label>
  <label>Nome <input name="first_name"></label>
  <label>Sobrenome <input name="last_name"></label>
  <label>Email <input name="email" type="email"></label>
  <label>Telefone <input name="telefone"></label>
  <label>Tipo
    <select name="tipo"><option value="P">Professor</option><option value="G">Gestor</option></select>
  </label>
  <label>NI <input name="ni" type="number" required></label>
  <label>Nascimento <input name="data_nascimento" type="date"></label>
  <label>Contratação <input name="data_contratacao" type="date"></label>
  <button type="submit">Cadastrar</button>
</form>
{{template "foot" .}}{{end}}

{{define "classroom_edit"}}{{template "head" .}}
<form method="post" action="/salas/{{.Data.Room.ID}}/editar">
  <label>Nome <input name="nome" value="{{.Data.Room.Name}}" required></label>
  <label>Capacidade <input name="capacidade" type="number" value="{{.Data.Room.Capacity}}" required></label>
  <label>Professor responsável
    <select name="id_professor">
      <option value="">—</option>
      {{range .Data.Teachers}}<option value="{{.ID}}">{{.FullName}}</option>{{end}}
    </select>
  </label>
  <button type="submit">Salvar</button>
</form>
{{template "foot" .}}{{end}}

{{define "discipline_edit"}}{{template "head" .}}
<form method="post" action="/disciplinas/{{.Data.Discipline.ID}}/editar">
  <label>Nome <input name="nome" value="{{.Data.Discipline.Name}}" required></label>
  <label>Curso <input name="curso" value="{{.Data.Discipline.Course}}" required></label>
  <label>Descrição <input name="descricao" value="{{.Data.Discipline.Description}}"></label>
  <label>Carga horária <input name="carga_horaria" type="number" value="{{.Data.Discipline.Workload}}" required></label>
  <label>Professor
    <select name="professor">
      <option value="">—</option>
      {{range .Data.Teachers}}<option value="{{.ID}}">{{.FullName}}</option>{{end}}
    </select>
  </label>
  <button type="submit">Salvar</button>
</form>
{{template "foot" .}}{{end}}

{{define "reservation_edit"}}{{template "head" .}}
<form method="post" action="/reservas/{{.Data.Reservation.ID}}/editar">
  <label>Início <input name="data_inicio" type="datetime-local" value="{{.Data.Reservation.Start}}" required></label>
  <label>Término <input name="data_termino" type="datetime-local" value="{{.Data.Reservation.End}}" required></label>
  <label>Período
    <select name="periodo" required>
      {{range .Data.Periods}}<option value="{{.Value}}"{{if eq .Value $.Data.Reservation.Period}} selected{{end}}>{{.Label}}</option>{{end}}
    </select>
  </label>
  <label>Sala
    <select name="sala_reservada" required>
      {{range .Data.Rooms}}<option value="{{.ID}}"{{if eq .ID $.Data.Reservation.ClassroomID}} selected{{end}}>{{.Name}}</option>{{end}}
    </select>
  </label>
  <label>Professor responsável
    <select name="professor_responsavel" required>
      {{range .Data.Teachers}}<option value="{{.ID}}"{{if eq .ID $.Data.Reservation.TeacherID}} selected{{end}}>{{.FullName}}</option>{{end}}
    </select>
  </label>
  <label>Disciplina
    <select name="disciplina_associada" required>
      {{range .Data.Disciplines}}<option value="{{.ID}}"{{if eq .ID $.Data.Reservation.DisciplineID}} selected{{end}}>{{.Name}}</option>{{end}}
    </select>
  </label>
  <button type="submit">Salvar</button>
</form>
{{template "foot" .}}{{end}}

{{define "user_edit"}}{{template "head" .}}
<form method="post" action="/cadastro/{{.Data.User.ID}}/editar">
  <label>Usuário <input name="username" value="{{.Data.User.Username}}" required></label>
  <label>Nova senha <input name="password" type="password"></label>
  <label>Nome <input name="first_name" value="{{.Data.User.FirstName}}"></label>
  <label>Sobrenome <input name="last_name" value="{{.Data.User.LastName}}"></label>
  <label>Email <input name="email" type="email" value="{{.Data.User.Email}}"></label>
  <label>Telefone <input name="telefone" value="{{.Data.User.Phone}}"></label>
  <label>Tipo
    <select name="tipo">
      <option value="P"{{if .Data.User.Role.IsTeacher}} selected{{end}}>Professor</option>
      <option value="G"{{if .Data.User.Role.IsManager}} selected{{end}}>Gestor</option>
    </select>
  </label>
  <label>NI <input name="ni" type="number" value="{{.Data.User.NI}}" required></label>
  <label>Nascimento <input name="data_nascimento" type="date" value="{{.Data.User.BirthDate}}"></label>
  <label>Contratação <input name="data_contratacao" type="date" value="{{.Data.User.HireDate}}"></label>
  <button type="submit">Salvar</button>
</form>
{{template "foot" .}}{{end}}
`

var pages = template.Must(template.New("portal").Parse(pageSrc))

type pageData struct {
	Title   string
	Session model.Session
	Error   string
	Warning string
	Data    any
}

func render(w http.ResponseWriter, status int, page string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.ExecuteTemplate(w, page, data); err != nil {
		slog.Error("template render failed", "page", page, "error", err)
	}
}
