package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/lorrc/owner-dashboard/internal/core/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer holds the parsed page templates. The listing section is a
// separate template so its rendered HTML can be cached independently of
// the per-request banners on the dashboard page.
type Renderer struct {
	login     *template.Template
	dashboard *template.Template
	listing   *template.Template
}

func NewRenderer() (*Renderer, error) {
	login, err := template.ParseFS(templateFS, "templates/login.html")
	if err != nil {
		return nil, fmt.Errorf("parsing login template: %w", err)
	}
	dashboard, err := template.ParseFS(templateFS, "templates/dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("parsing dashboard template: %w", err)
	}
	listing, err := template.ParseFS(templateFS, "templates/listing.html")
	if err != nil {
		return nil, fmt.Errorf("parsing listing template: %w", err)
	}
	return &Renderer{login: login, dashboard: dashboard, listing: listing}, nil
}

type loginData struct {
	CallbackURL string
	Error       string
}

type dashboardData struct {
	Identity       domain.Identity
	Listing        template.HTML
	UserSuccess    string
	UserError      string
	ProjectSuccess string
	ProjectError   string
}

type userView struct {
	Name      string
	Email     string
	CreatedAt string
}

type projectView struct {
	ID        string
	Title     string
	CreatedAt string
}

type listingData struct {
	Users    []userView
	Projects []projectView
}

func (r *Renderer) RenderLogin(w io.Writer, data loginData) error {
	return r.login.Execute(w, data)
}

func (r *Renderer) RenderDashboard(w io.Writer, data dashboardData) error {
	return r.dashboard.Execute(w, data)
}

// RenderListing renders the users-and-projects section to a string so the
// result can be stored in the listing cache.
func (r *Renderer) RenderListing(users []*domain.User, projects []*domain.Project) (string, error) {
	data := listingData{
		Users:    make([]userView, 0, len(users)),
		Projects: make([]projectView, 0, len(projects)),
	}
	for _, u := range users {
		data.Users = append(data.Users, userView{
			Name:      u.DisplayName(),
			Email:     u.Email,
			CreatedAt: u.CreatedAt.Format(time.RFC822),
		})
	}
	for _, p := range projects {
		data.Projects = append(data.Projects, projectView{
			ID:        p.ID.String(),
			Title:     p.Title,
			CreatedAt: p.CreatedAt.Format(time.RFC822),
		})
	}

	var buf bytes.Buffer
	if err := r.listing.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering listing: %w", err)
	}
	return buf.String(), nil
}
