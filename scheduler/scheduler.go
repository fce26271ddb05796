package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// DigestSender emails the admin a summary of delivered reports.
type DigestSender interface {
	SendDigest(ctx context.Context) error
}

type Scheduler struct {
	cron     *cron.Cron
	schedule string
	location *time.Location
	sender   DigestSender
	timeout  time.Duration
	added    bool
}

// New creates a scheduler for the admin digest. An empty schedule yields a
// scheduler whose Start returns as soon as ctx is done without running jobs.
func New(schedule string, location *time.Location, sender DigestSender) *Scheduler {
	if location == nil {
		location = time.UTC
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(location)),
		schedule: schedule,
		location: location,
		sender:   sender,
		timeout:  time.Minute,
	}
}

// ValidateSchedule checks a cron expression with the same parser the
// scheduler uses. An empty schedule is valid and disables the digest.
func ValidateSchedule(schedule string) error {
	if schedule == "" {
		return nil
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return fmt.Errorf("parse digest schedule %q: %w", schedule, err)
	}
	return nil
}

func (s *Scheduler) Enabled() bool {
	return s.schedule != "" && s.sender != nil
}

// Register validates the schedule and adds the digest job once.
func (s *Scheduler) Register() error {
	if !s.Enabled() || s.added {
		return nil
	}
	if _, err := s.cron.AddFunc(s.schedule, s.sendDigest); err != nil {
		return fmt.Errorf("add digest job: %w", err)
	}
	s.added = true
	return nil
}

func (s *Scheduler) Start(ctx context.Context) error {
	if err := s.Register(); err != nil {
		return err
	}

	if s.Enabled() {
		s.cron.Start()
		log.Printf("Scheduler started (TZ: %s, digest: %s)", s.location, s.schedule)
	} else {
		log.Println("Digest schedule not set, scheduler idle")
	}

	<-ctx.Done()
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Scheduler stopped")
}

func (s *Scheduler) sendDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.sender.SendDigest(ctx); err != nil {
		log.Printf("Error sending admin digest: %v", err)
		return
	}
	log.Println("Admin digest sent")
}
