package notify

import (
	gomail "gopkg.in/gomail.v2"
)

type SMTPMailer struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func NewSMTPMailer(host string, port int, user, password, from string) *SMTPMailer {
	return &SMTPMailer{Host: host, Port: port, User: user, Password: password, From: from}
}

func (m *SMTPMailer) Send(to []string, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.Host, m.Port, m.User, m.Password)
	return d.DialAndSend(msg)
}
