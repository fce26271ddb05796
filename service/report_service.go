package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"naija-tax/domain"
	"naija-tax/repository"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var ErrMailNotConfigured = errors.New("mail transport not configured")

type ReportService struct {
	mailer      Mailer
	counter     repository.CounterRepository
	submissions repository.SubmissionRepository
	adminEmail  string
	location    *time.Location
	now         func() time.Time
}

type ReportOptions struct {
	AdminEmail string
	Location   *time.Location
}

// NewReportService creates a ReportService. A nil mailer means delivery is
// not configured; submissions may be nil.
func NewReportService(
	mailer Mailer,
	counter repository.CounterRepository,
	submissions repository.SubmissionRepository,
	opts ReportOptions,
) *ReportService {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{
		mailer:      mailer,
		counter:     counter,
		submissions: submissions,
		adminEmail:  opts.AdminEmail,
		location:    loc,
		now:         time.Now,
	}
}

// ValidateRecipient checks the fields collected from the person requesting
// a report and returns a user-facing reason, or "" when valid.
func ValidateRecipient(firstName, email string, consent bool) string {
	firstName = strings.TrimSpace(firstName)
	email = strings.TrimSpace(email)

	if firstName == "" || email == "" {
		return msgMissingFields
	}
	if !consent {
		return msgMissingConsent
	}
	if !emailPattern.MatchString(email) {
		return msgInvalidEmail
	}
	if len(firstName) > MaxNameLength {
		return fmt.Sprintf("First name must be at most %d characters", MaxNameLength)
	}
	return ""
}

func failure(reason string) domain.ReportOutcome {
	return domain.ReportOutcome{Success: false, Error: reason}
}

// SendTaxReport emails the report to its recipient, advances the user
// counter and notifies the admin. Only a failed delivery to the recipient
// fails the outcome; counter, history and admin problems are logged.
func (s *ReportService) SendTaxReport(ctx context.Context, data domain.TaxReportData) domain.ReportOutcome {
	data = SanitizeReportData(data)
	data.FirstName = strings.TrimSpace(data.FirstName)
	data.Email = strings.TrimSpace(data.Email)

	if reason := ValidateRecipient(data.FirstName, data.Email, true); reason != "" {
		return failure(reason)
	}

	if s.mailer == nil {
		log.Printf("Warning: report requested but %v", ErrMailNotConfigured)
		return failure(msgMailNotConfigured)
	}

	now := s.now().In(s.location)

	html, err := RenderUserReport(data, now)
	if err != nil {
		log.Printf("Error rendering tax report: %v", err)
		return failure("Failed to send email: could not render the report.")
	}

	msg := Email{
		To:      data.Email,
		Subject: "Your Nigeria Tax Report",
		HTML:    html,
	}

	// A report without the PDF is still worth sending.
	if pdf, err := RenderReportPDF(data, now); err != nil {
		log.Printf("Warning: failed to render PDF attachment: %v", err)
	} else {
		msg.Attachments = append(msg.Attachments, Attachment{
			Filename:    "nigeria-tax-report.pdf",
			ContentType: "application/pdf",
			Data:        pdf,
		})
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		log.Printf("Error sending tax report to %s: %v", data.Email, err)
		return failure(fmt.Sprintf("Failed to send email: %v. Please check your email configuration.", err))
	}
	log.Printf("Tax report sent to %s", data.Email)

	userCount := s.incrementCount(ctx)
	s.recordSubmission(ctx, data, userCount, now)
	s.notifyAdmin(ctx, data, userCount, now)

	return domain.ReportOutcome{Success: true, UserCount: userCount}
}

// incrementCount advances the counter. When the store fails the tally is
// estimated from the last readable value so the report still goes out.
func (s *ReportService) incrementCount(ctx context.Context) int64 {
	if s.counter == nil {
		return 0
	}

	n, err := s.counter.Increment(ctx)
	if err == nil {
		return n
	}
	log.Printf("Warning: failed to increment user count: %v", err)

	current, err := s.counter.GetCount(ctx)
	if err != nil {
		log.Printf("Warning: failed to read user count: %v", err)
		current = 0
	}
	return current + 1
}

func (s *ReportService) recordSubmission(ctx context.Context, data domain.TaxReportData, userCount int64, at time.Time) {
	if s.submissions == nil {
		return
	}

	err := s.submissions.Save(ctx, domain.Submission{
		FirstName:   data.FirstName,
		Email:       data.Email,
		Period:      data.Period,
		GrossIncome: data.GrossIncome,
		TotalTax:    data.TotalTax,
		NetIncome:   data.NetIncome,
		UserNumber:  userCount,
		SubmittedAt: at,
	})
	if err != nil {
		log.Printf("Warning: failed to save submission: %v", err)
	}
}

func (s *ReportService) notifyAdmin(ctx context.Context, data domain.TaxReportData, userCount int64, at time.Time) {
	if s.adminEmail == "" {
		return
	}

	html, err := RenderAdminReport(data, userCount, at)
	if err != nil {
		log.Printf("Warning: failed to render admin notification: %v", err)
		return
	}

	err = s.mailer.Send(ctx, Email{
		To:      s.adminEmail,
		Subject: fmt.Sprintf("New Tax Report Submission - %s (User #%d)", data.FirstName, userCount),
		HTML:    html,
	})
	if err != nil {
		log.Printf("Warning: failed to send admin notification: %v", err)
	}
}

// UserCount returns the number of reports delivered so far.
func (s *ReportService) UserCount(ctx context.Context) (int64, error) {
	if s.counter == nil {
		return 0, nil
	}
	return s.counter.GetCount(ctx)
}

// SendDigest emails the admin the current tally and the latest submissions.
func (s *ReportService) SendDigest(ctx context.Context) error {
	if s.mailer == nil {
		return ErrMailNotConfigured
	}
	if s.adminEmail == "" {
		return errors.New("admin email not configured")
	}

	count, err := s.UserCount(ctx)
	if err != nil {
		return fmt.Errorf("read user count: %w", err)
	}

	var recent []domain.Submission
	if s.submissions != nil {
		recent, err = s.submissions.RecentSubmissions(ctx, DigestRecentSubmissions)
		if err != nil {
			log.Printf("Warning: failed to load recent submissions for digest: %v", err)
			recent = nil
		}
	}

	html, err := RenderDigest(count, s.now().In(s.location), recent)
	if err != nil {
		return err
	}

	return s.mailer.Send(ctx, Email{
		To:      s.adminEmail,
		Subject: fmt.Sprintf("Tax Calculator Digest - %d reports", count),
		HTML:    html,
	})
}
