package smtp

import (
	"fmt"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	log "github.com/sirupsen/logrus"
)

var Instance Provider

type Provider interface {
	SendEMail(to, subject, message string) error
}

type ConnectParams struct {
	User       string
	Password   string
	Host       string
	Port       string
	TLSEnabled bool
	From       string
}

func Connect(params ConnectParams) error {
	from := params.From
	if from == "" {
		from = params.User
	}
	Instance = &impl{
		user:       params.User,
		password:   params.Password,
		host:       params.Host,
		port:       params.Port,
		tlsEnabled: params.TLSEnabled,
		from:       from,
	}
	return nil
}

type impl struct {
	user       string
	password   string
	host       string
	port       string
	tlsEnabled bool
	from       string
}

func (i impl) SendEMail(to, subject, message string) (err error) {
	logger := log.WithField("recipient", to)
	if i.user == "" || i.host == "" || i.port == "" {
		logger.Warn("email not sent, smtp client is not configured")
		return nil
	}
	auth := sasl.NewPlainClient("", i.user, i.password)
	body := strings.NewReader(buildMessage(i.from, to, subject, message))

	if i.tlsEnabled {
		err = smtp.SendMailTLS(i.host+":"+i.port, auth, i.from, []string{to}, body)
	} else {
		err = smtp.SendMail(i.host+":"+i.port, auth, i.from, []string{to}, body)
	}
	if err != nil {
		logger.WithError(err).Error("failed to send email")
		return err
	}
	logger.Info("email sent")
	return nil
}

func buildMessage(from, to, subject, message string) string {
	headers := []string{
		"From: " + from,
		"To: " + to,
		fmt.Sprintf("Subject: Home Task Tracker - %s", subject),
		"MIME-version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
	}
	return strings.Join(headers, "\r\n") + "\r\n\r\n" + strings.ReplaceAll(message, "\n", "\r\n") + "\r\n"
}
