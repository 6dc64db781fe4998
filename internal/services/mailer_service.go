package services

import (
	"context"
	"log"
	"sync"
)

// MagicLinkMail is one queued sign-in email.
type MagicLinkMail struct {
	Email string
	Link  string
}

// MailSender delivers a single message. The default sender logs the link,
// which is what local and test environments run with.
type MailSender interface {
	SendMagicLink(mail MagicLinkMail) error
}

type ConsoleMailSender struct{}

func (ConsoleMailSender) SendMagicLink(mail MagicLinkMail) error {
	log.Printf("magic link for %s: %s", mail.Email, mail.Link)
	return nil
}

// MailerService drains queued magic-link mails on a background goroutine so
// request handlers never block on delivery.
type MailerService struct {
	sender MailSender
	queue  chan MagicLinkMail
	wg     sync.WaitGroup
}

func NewMailerService(sender MailSender) *MailerService {
	if sender == nil {
		sender = ConsoleMailSender{}
	}
	return &MailerService{
		sender: sender,
		queue:  make(chan MagicLinkMail, 64),
	}
}

func (service *MailerService) Start(ctx context.Context) {
	service.wg.Add(1)
	go func() {
		defer service.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case mail := <-service.queue:
				if err := service.sender.SendMagicLink(mail); err != nil {
					log.Printf("magic link delivery failed for %s: %v", mail.Email, err)
				}
			}
		}
	}()
}

// Enqueue drops the mail when the queue is full rather than blocking the
// request path.
func (service *MailerService) Enqueue(mail MagicLinkMail) bool {
	select {
	case service.queue <- mail:
		return true
	default:
		log.Printf("magic link queue full, dropping mail for %s", mail.Email)
		return false
	}
}

func (service *MailerService) Wait() {
	service.wg.Wait()
}
