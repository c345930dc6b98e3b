package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/smtp"
	"time"

	"github.com/DurgaPydahSoft/server-sub001/app/config"
	"github.com/DurgaPydahSoft/server-sub001/app/models"
)

// SMTPEmailSender sends reminder emails through the configured SMTP relay.
type SMTPEmailSender struct {
	Config config.SMTPConfig
}

func (s *SMTPEmailSender) SendEmail(student *models.Student, subject, body string) error {
	if student.Email == "" {
		return fmt.Errorf("student %s has no email address", student.ID)
	}
	if s.Config.Host == "" || s.Config.Username == "" {
		return fmt.Errorf("SMTP is not configured")
	}

	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	auth := smtp.PlainAuth("", s.Config.Username, s.Config.Password, s.Config.Host)

	msg := []byte("From: " + s.Config.From + "\r\n" +
		"To: " + student.Email + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" + body + "\r\n")

	return smtp.SendMail(addr, auth, s.Config.From, []string{student.Email}, msg)
}

// GatewaySMSSender posts reminder texts to the SMS gateway.
type GatewaySMSSender struct {
	Config config.SMSConfig
	Client *http.Client
}

func (s *GatewaySMSSender) SendSMS(student *models.Student, message string) error {
	if student.Phone == "" {
		return fmt.Errorf("student %s has no phone number", student.ID)
	}
	if s.Config.GatewayURL == "" {
		return fmt.Errorf("SMS gateway is not configured")
	}

	payload, err := json.Marshal(map[string]string{
		"to":      student.Phone,
		"sender":  s.Config.SenderID,
		"message": message,
	})
	if err != nil {
		return err
	}

	return s.post(s.Config.GatewayURL, s.Config.APIKey, payload)
}

func (s *GatewaySMSSender) post(url, key string, payload []byte) error {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+key)

	resp, err := s.client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("SMS gateway returned %s", resp.Status)
	}
	return nil
}

func (s *GatewaySMSSender) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return &http.Client{Timeout: 10 * time.Second}
}

// GatewayPushSender posts push alerts to the push gateway, addressed by
// student ID; the mobile app resolves device tokens on its side.
type GatewayPushSender struct {
	Config config.PushConfig
	Client *http.Client
}

func (s *GatewayPushSender) SendPush(student *models.Student, title, message string) error {
	if s.Config.GatewayURL == "" {
		return fmt.Errorf("push gateway is not configured")
	}

	payload, err := json.Marshal(map[string]string{
		"student_id": student.ID,
		"title":      title,
		"body":       message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, s.Config.GatewayURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+s.Config.ServerKey)

	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("push gateway returned %s", resp.Status)
	}
	return nil
}

// ConsoleSender logs instead of sending. Used in development when no
// transport is configured.
type ConsoleSender struct{}

func (ConsoleSender) SendEmail(student *models.Student, subject, body string) error {
	log.Printf("[email] to=%s subject=%q", student.Email, subject)
	return nil
}

func (ConsoleSender) SendSMS(student *models.Student, message string) error {
	log.Printf("[sms] to=%s message=%q", student.Phone, message)
	return nil
}

func (ConsoleSender) SendPush(student *models.Student, title, message string) error {
	log.Printf("[push] student=%s title=%q", student.ID, title)
	return nil
}
