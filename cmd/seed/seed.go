package main

import (
	"context"
	"devpair/internal/app/service"
	"devpair/internal/domain/model"
	"fmt"
	"time"
)

const seedPassword = "password123"

type Summary struct {
	Users           int
	Projects        int
	PairingRequests int
	Milestones      int
}

type seedUser struct {
	username string
	email    string
	fullName string
	profile  model.UserProfilePatch
}

type seedProject struct {
	owner            int
	status           model.ProjectStatus
	maxCollaborators int
	req              service.CreateProjectRequest
}

type seedRequest struct {
	requester int
	project   int
	message   string
	status    model.PairingStatus
	response  string
}

type seedMilestone struct {
	project   int
	title     string
	details   string
	due       time.Time
	completed bool
}

func ptr[T any](v T) *T { return &v }

var users = []seedUser{
	{"alice_dev", "alice@example.com", "Alice Johnson", model.UserProfilePatch{
		Bio:             ptr("Full-stack developer passionate about React and Python. Love building scalable web applications."),
		GithubURL:       ptr("https://github.com/alice_codes"),
		LinkedinURL:     ptr("https://linkedin.com/in/alice-johnson"),
		PortfolioURL:    ptr("https://alice-portfolio.dev"),
		Skills:          ptr("React, Python, JavaScript, SQL, Node.js, MongoDB"),
		ExperienceLevel: ptr(model.ExperienceIntermediate),
	}},
	{"bob_coder", "bob@example.com", "Bob Smith", model.UserProfilePatch{
		Bio:             ptr("Backend specialist with expertise in APIs and microservices. DevOps enthusiast."),
		GithubURL:       ptr("https://github.com/bob_backend"),
		LinkedinURL:     ptr("https://linkedin.com/in/bob-smith"),
		Skills:          ptr("Python, Flask, PostgreSQL, Docker, AWS, Kubernetes"),
		ExperienceLevel: ptr(model.ExperienceAdvanced),
	}},
	{"charlie_newbie", "charlie@example.com", "Charlie Brown", model.UserProfilePatch{
		Bio:             ptr("Just started my coding journey! Eager to learn and collaborate with experienced developers."),
		GithubURL:       ptr("https://github.com/charlie_learns"),
		Skills:          ptr("HTML, CSS, JavaScript, Git"),
		ExperienceLevel: ptr(model.ExperienceBeginner),
	}},
	{"diana_mobile", "diana@example.com", "Diana Rodriguez", model.UserProfilePatch{
		Bio:             ptr("Mobile app developer specializing in React Native and Flutter. UI/UX design enthusiast."),
		GithubURL:       ptr("https://github.com/diana_mobile"),
		PortfolioURL:    ptr("https://diana-apps.com"),
		Skills:          ptr("React Native, Flutter, Dart, TypeScript, Figma"),
		ExperienceLevel: ptr(model.ExperienceAdvanced),
		IsAvailable:     ptr(false),
	}},
}

var projects = []seedProject{
	{0, model.StatusOngoing, 3, service.CreateProjectRequest{
		Title:           "E-commerce Platform",
		Description:     "Building a modern e-commerce platform with React frontend and Flask backend. Features include user authentication, product catalog, shopping cart, and payment integration.",
		TechStack:       "React, Flask, SQLAlchemy, Stripe API, Redis",
		Tags:            "ecommerce, web development, full-stack",
		DifficultyLevel: model.DifficultyAdvanced,
		RepositoryURL:   "https://github.com/alice_codes/ecommerce-platform",
	}},
	{1, model.StatusOngoing, 2, service.CreateProjectRequest{
		Title:           "Task Management App",
		Description:     "Simple yet powerful task management application with real-time collaboration features. Perfect for teams and individuals.",
		TechStack:       "React, Node.js, Socket.io, MongoDB",
		Tags:            "productivity, collaboration, real-time",
		DifficultyLevel: model.DifficultyIntermediate,
		RepositoryURL:   "https://github.com/bob_backend/task-manager",
		DemoURL:         "https://task-manager-demo.herokuapp.com",
	}},
	{2, model.StatusCompleted, 2, service.CreateProjectRequest{
		Title:           "Weather Dashboard",
		Description:     "Interactive weather dashboard displaying current conditions and forecasts. Great beginner project with API integration.",
		TechStack:       "HTML, CSS, JavaScript, Weather API",
		Tags:            "beginner-friendly, api, dashboard",
		DifficultyLevel: model.DifficultyBeginner,
		RepositoryURL:   "https://github.com/charlie_learns/weather-dashboard",
		DemoURL:         "https://charlie-weather.netlify.app",
	}},
	{3, model.StatusPaused, 4, service.CreateProjectRequest{
		Title:           "Fitness Tracker Mobile App",
		Description:     "Cross-platform mobile app for tracking workouts, nutrition, and fitness goals. Includes social features and progress analytics.",
		TechStack:       "React Native, Firebase, Chart.js",
		Tags:            "mobile, health, fitness, social",
		DifficultyLevel: model.DifficultyAdvanced,
		RepositoryURL:   "https://github.com/diana_mobile/fitness-tracker",
	}},
	{0, model.StatusOngoing, 5, service.CreateProjectRequest{
		Title:           "Open Source Blog Engine",
		Description:     "Modern, fast, and SEO-friendly blog engine built with Next.js. Supports markdown, themes, and plugin system.",
		TechStack:       "Next.js, TypeScript, Tailwind CSS, MDX",
		Tags:            "open-source, blog, cms, seo",
		DifficultyLevel: model.DifficultyIntermediate,
		RepositoryURL:   "https://github.com/alice_codes/blog-engine",
	}},
}

var requests = []seedRequest{
	{1, 0, "Hi Alice! I'd love to help with the backend API development. I have extensive experience with Flask and can contribute to the payment integration.",
		model.PairingApproved, "Great! Your backend expertise would be perfect for this project. Welcome aboard!"},
	{2, 1, "This looks like a great project to learn from! I'm new to React but eager to contribute and learn.",
		model.PairingPending, ""},
	{0, 3, "I'm interested in mobile development and would love to contribute to the web dashboard component.",
		model.PairingRejected, "Thanks for your interest! Currently focusing on mobile-only features, but will reach out for future web components."},
	{3, 4, "I'd like to help with the UI/UX design and mobile responsiveness of the blog themes.",
		model.PairingApproved, "Perfect! Your design skills would be invaluable for creating beautiful themes."},
}

var milestones = []seedMilestone{
	{0, "User Authentication System", "Implement JWT-based authentication with registration, login, and password reset functionality.", date(2024, 2, 15), true},
	{0, "Product Catalog API", "Create RESTful API endpoints for product management including CRUD operations and search functionality.", date(2024, 3, 1), false},
	{0, "Shopping Cart Implementation", "Build shopping cart functionality with add/remove items, quantity updates, and persistent storage.", date(2024, 3, 15), false},
	{1, "Real-time Task Updates", "Implement WebSocket connections for real-time task updates and collaboration features.", date(2024, 1, 30), true},
	{1, "User Dashboard", "Create comprehensive user dashboard with task analytics and progress tracking.", date(2024, 2, 28), false},
	{4, "Theme System", "Develop a flexible theme system allowing users to customize blog appearance.", date(2024, 4, 1), false},
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Seed creates the demo data set. Approvals go through the pairing service, so
// collaborators and notifications come from the same code paths the API uses.
func Seed(ctx context.Context, svc *service.Services) (Summary, error) {
	var summary Summary

	userIDs := make([]int64, len(users))
	for i, u := range users {
		resp, err := svc.Auth.Register(ctx, service.RegisterRequest{
			Username: u.username,
			Email:    u.email,
			FullName: u.fullName,
			Password: seedPassword,
		})
		if err != nil {
			return summary, fmt.Errorf("register %s: %w", u.username, err)
		}
		if _, err := svc.Users.UpdateProfile(ctx, resp.User.ID, u.profile); err != nil {
			return summary, fmt.Errorf("profile %s: %w", u.username, err)
		}
		userIDs[i] = resp.User.ID
		summary.Users++
	}

	projectIDs := make([]int64, len(projects))
	for i, p := range projects {
		req := p.req
		req.MaxCollaborators = ptr(p.maxCollaborators)
		created, err := svc.Projects.Create(ctx, userIDs[p.owner], req)
		if err != nil {
			return summary, fmt.Errorf("project %q: %w", req.Title, err)
		}
		if p.status != model.StatusOngoing {
			if _, err := svc.Projects.Update(ctx, created, model.ProjectPatch{Status: ptr(p.status)}); err != nil {
				return summary, fmt.Errorf("project %q status: %w", req.Title, err)
			}
		}
		projectIDs[i] = created.ID
		summary.Projects++
	}

	for _, r := range requests {
		pr, err := svc.Pairing.Create(ctx, userIDs[r.requester], projectIDs[r.project], service.CreatePairingRequest{Message: r.message})
		if err != nil {
			return summary, fmt.Errorf("pairing request on project %d: %w", projectIDs[r.project], err)
		}
		if r.status != model.PairingPending {
			_, err := svc.Pairing.UpdateStatus(ctx, pr, service.UpdatePairingRequest{Status: r.status, ResponseMessage: ptr(r.response)})
			if err != nil {
				return summary, fmt.Errorf("pairing request %d: %w", pr.ID, err)
			}
		}
		summary.PairingRequests++
	}

	for _, m := range milestones {
		owner := userIDs[projects[m.project].owner]
		created, err := svc.Milestones.Create(ctx, owner, projectIDs[m.project], service.CreateMilestoneRequest{
			Title:       m.title,
			Description: m.details,
			DueDate:     model.NullableTime{Set: true, Valid: true, Time: m.due},
		})
		if err != nil {
			return summary, fmt.Errorf("milestone %q: %w", m.title, err)
		}
		if m.completed {
			if _, err := svc.Milestones.Update(ctx, created, model.MilestonePatch{IsCompleted: ptr(true)}); err != nil {
				return summary, fmt.Errorf("milestone %q completion: %w", m.title, err)
			}
		}
		summary.Milestones++
	}

	// Alice has already seen Bob's request.
	notes, err := svc.Notifications.ListMine(ctx, userIDs[0])
	if err != nil {
		return summary, err
	}
	for _, n := range notes {
		if n.Type == model.NotificationPairingRequest && n.Message == fmt.Sprintf("%s wants to collaborate on %s", users[1].username, projects[0].req.Title) {
			if _, err := svc.Notifications.MarkRead(ctx, n.ID, userIDs[0]); err != nil {
				return summary, err
			}
		}
	}

	return summary, nil
}
