package web

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/elethrixneil1/bsit1e/internal/auth"
	"github.com/elethrixneil1/bsit1e/internal/enrollment"
	"github.com/elethrixneil1/bsit1e/internal/user"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const systemErrorMessage = "System error."

type Handler struct {
	users       user.Service
	enrollments enrollment.Service
	sessions    *auth.Sessions
	logger      *slog.Logger
	validate    *validator.Validate
	templates   *template.Template
}

func NewHandler(users user.Service, enrollments enrollment.Service, sessions *auth.Sessions, logger *slog.Logger) *Handler {
	return &Handler{
		users:       users,
		enrollments: enrollments,
		sessions:    sessions,
		logger:      logger,
		validate:    validator.New(),
		templates:   parseTemplates(),
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", h.LoginForm)
	router.Post("/", h.Login)
	router.Get("/register", h.RegisterForm)
	router.Post("/register", h.Register)
	router.Get("/logout", h.Logout)

	router.Group(func(r chi.Router) {
		r.Use(h.sessions.RequireSession(h.logger))
		r.Get("/dashboard", h.Dashboard)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(h.logger, user.RoleTeacher))
			r.Get("/teacher-dashboard", h.TeacherDashboard)
			r.Post("/update_details", h.UpdateDetails)
			r.Post("/add_student", h.AddStudent)
		})
	})
}

type registerForm struct {
	Name     string `validate:"required"`
	UserID   string `validate:"required"`
	Password string `validate:"required"`
	Role     string `validate:"required"`
}

// RegisterForm renders the registration page.
func (h *Handler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "register.html", registerPage{})
}

// Register creates a new account and sends the user to the login page.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	form := registerForm{
		Name:     r.FormValue("name"),
		UserID:   r.FormValue("student_id"),
		Password: r.FormValue("password"),
		Role:     r.FormValue("role"),
	}

	if err := h.validate.Struct(form); err != nil {
		h.render(w, "register.html", registerPage{Message: "All fields are required!"})
		return
	}

	err := h.users.Register(r.Context(), form.UserID, form.Name, form.Password, form.Role)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateID) {
			h.render(w, "register.html", registerPage{Message: "This ID is already registered."})
			return
		}
		h.logger.Error("registration failed", "user_id", form.UserID, "error", err)
		h.render(w, "register.html", registerPage{Message: systemErrorMessage})
		return
	}

	h.logger.Info("user registered", "user_id", form.UserID, "role", form.Role)
	http.Redirect(w, r, "/?registered=true", http.StatusSeeOther)
}

// LoginForm renders the login page, or forwards an already authenticated
// session straight to its dashboard.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.sessions.FromRequest(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}

	var message string
	if r.URL.Query().Get("registered") == "true" {
		message = "Account created! Please login."
	}
	h.render(w, "login.html", loginPage{Message: message})
}

// Login verifies the credentials and issues the session cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	userID := r.FormValue("student_id")
	password := r.FormValue("password")

	u, err := h.users.Verify(r.Context(), userID, password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			h.render(w, "login.html", loginPage{Message: "User ID not found."})
		case errors.Is(err, user.ErrInvalidPassword):
			h.render(w, "login.html", loginPage{Message: "Invalid Password."})
		default:
			h.logger.Error("login failed", "user_id", userID, "error", err)
			h.render(w, "login.html", loginPage{Message: systemErrorMessage})
		}
		return
	}

	ident := auth.Identity{UserID: u.UserID, Name: u.Name, Role: u.Role}
	if err := h.sessions.IssueCookie(w, ident); err != nil {
		h.logger.Error("issue session cookie", "user_id", userID, "error", err)
		h.render(w, "login.html", loginPage{Message: systemErrorMessage})
		return
	}

	h.logger.Info("user logged in", "user_id", u.UserID, "role", u.Role)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Dashboard renders the aggregated student view. Teachers landing here are
// forwarded to their own portal.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.FromContext(r.Context())

	if ident.Role == user.RoleTeacher {
		http.Redirect(w, r, "/teacher-dashboard", http.StatusFound)
		return
	}

	page := dashboardPage{Name: ident.Name, StudentID: ident.UserID}

	summary, err := h.enrollments.StudentSummary(r.Context(), ident.UserID)
	if err != nil {
		h.logger.Error("student summary failed", "student_id", ident.UserID, "error", err)
		page.Summary = &enrollment.StudentSummary{GPA: enrollment.GradeUnset}
		page.Message = systemErrorMessage
		h.render(w, "dashboard.html", page)
		return
	}

	page.Summary = summary
	h.render(w, "dashboard.html", page)
}

// TeacherDashboard renders the teacher's roster.
func (h *Handler) TeacherDashboard(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.FromContext(r.Context())

	page := teacherPage{Name: ident.Name}

	students, err := h.enrollments.Roster(r.Context(), ident.UserID)
	if err != nil {
		h.logger.Error("roster query failed", "teacher_id", ident.UserID, "error", err)
		page.Message = systemErrorMessage
		h.render(w, "teacher_dashboard.html", page)
		return
	}

	page.Students = students
	h.render(w, "teacher_dashboard.html", page)
}

// UpdateDetails applies a grade/attendance/assignments update to the
// teacher's enrollment rows for the submitted student. A pair with no
// enrollment changes nothing.
func (h *Handler) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.FromContext(r.Context())

	studentID := r.FormValue("student_id")
	grade := r.FormValue("grade")
	attendance := r.FormValue("attendance")

	assignments, err := strconv.Atoi(r.FormValue("assignments"))
	if err != nil {
		h.logger.Warn("invalid assignments value", "teacher_id", ident.UserID, "value", r.FormValue("assignments"))
		http.Redirect(w, r, "/teacher-dashboard", http.StatusSeeOther)
		return
	}

	err = h.enrollments.UpdateRecord(r.Context(), ident.UserID, studentID, grade, attendance, assignments)
	if err != nil {
		h.logger.Error("update record failed", "teacher_id", ident.UserID, "student_id", studentID, "error", err)
	}

	http.Redirect(w, r, "/teacher-dashboard", http.StatusSeeOther)
}

// AddStudent enrolls a student with the logged-in teacher. Lookup failures
// are logged but not surfaced; the teacher is sent back to the roster
// either way.
func (h *Handler) AddStudent(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.FromContext(r.Context())
	studentID := r.FormValue("student_id")

	err := h.enrollments.AddStudent(r.Context(), ident.UserID, studentID)
	switch {
	case err == nil:
		h.logger.Info("student enrolled", "teacher_id", ident.UserID, "student_id", studentID)
	case errors.Is(err, enrollment.ErrStudentNotFound), errors.Is(err, enrollment.ErrNotAStudent):
		h.logger.Warn("add student rejected", "teacher_id", ident.UserID, "student_id", studentID, "reason", err)
	default:
		h.logger.Error("add student failed", "teacher_id", ident.UserID, "student_id", studentID, "error", err)
	}

	http.Redirect(w, r, "/teacher-dashboard", http.StatusSeeOther)
}

// Logout clears the session cookie regardless of its validity.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearCookie(w)
	http.Redirect(w, r, "/", http.StatusFound)
}
