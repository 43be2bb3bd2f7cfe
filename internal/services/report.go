package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/vaaler2/hirewise-backend/internal/models"
	"github.com/vaaler2/hirewise-backend/internal/repositories"
)

// ErrSMTPNotConfigured reports that no SMTP host was provided. Like the
// AI credential, this is an expected runtime state.
var ErrSMTPNotConfigured = errors.New("smtp host not configured")

type ReportService interface {
	// SendWeeklyReports mails every issuing company a summary of the
	// applications received under each of its links. Returns the number of
	// reports sent.
	SendWeeklyReports() (int, error)
}

type reportService struct {
	linkRepo repositories.LinkRepository
	appRepo  repositories.ApplicationRepository
	host     string
	port     int
	user     string
	password string
	from     string
}

func NewReportService(
	linkRepo repositories.LinkRepository,
	appRepo repositories.ApplicationRepository,
	host string,
	port int,
	user string,
	password string,
	from string,
) ReportService {
	return &reportService{
		linkRepo: linkRepo,
		appRepo:  appRepo,
		host:     host,
		port:     port,
		user:     user,
		password: password,
		from:     from,
	}
}

func (r *reportService) SendWeeklyReports() (int, error) {
	if r.host == "" {
		return 0, ErrSMTPNotConfigured
	}

	links, err := r.linkRepo.FindAll()
	if err != nil {
		return 0, fmt.Errorf("failed to list links for report: %w", err)
	}

	dialer := gomail.NewDialer(r.host, r.port, r.user, r.password)

	sent := 0
	for _, link := range links {
		apps, err := r.appRepo.ListByLink(link.ID)
		if err != nil {
			log.Printf("⚠️ Skipping report for link %s: %v\n", link.ID, err)
			continue
		}

		m := gomail.NewMessage()
		m.SetHeader("From", r.from)
		m.SetHeader("To", link.CompanyEmail)
		m.SetHeader("Subject", fmt.Sprintf("Weekly application report: %s", link.Profession))
		m.SetBody("text/html", buildReportBody(&link, apps))

		if err := dialer.DialAndSend(m); err != nil {
			return sent, fmt.Errorf("failed to send report to %s: %w", link.CompanyEmail, err)
		}
		sent++
	}

	return sent, nil
}

func buildReportBody(link *models.InvitationLink, apps []models.Application) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("<p>Your %s invitation link received %d application(s) so far.</p>",
		link.Profession, len(apps)))

	// Stored order is score-descending once a fallback evaluation has run,
	// so the first scored entry is the current top candidate.
	for _, app := range apps {
		if app.Score != nil {
			sb.WriteString(fmt.Sprintf("<p>Top candidate: %s (score %.1f)</p>", app.Name, *app.Score))
			break
		}
	}

	return sb.String()
}
