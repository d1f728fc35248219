package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DialFunc opens the network connection to the relay.
type DialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// SMTPTransport delivers through a plain SMTP relay.
//
// Each Deliver opens exactly one connection and releases it exactly once,
// whatever the outcome.
type SMTPTransport struct {
	addr      string
	host      string
	localName string
	timeout   time.Duration
	startTLS  bool
	dial      DialFunc
}

// SMTPOption configures an SMTPTransport.
type SMTPOption func(*SMTPTransport)

// WithDialer replaces the function used to open connections.
func WithDialer(dial DialFunc) SMTPOption {
	return func(t *SMTPTransport) {
		if dial != nil {
			t.dial = dial
		}
	}
}

// NewSMTPTransport creates an SMTP transport from configuration.
func NewSMTPTransport(cfg Config, opts ...SMTPOption) (*SMTPTransport, error) {
	if cfg.SMTPHost == "" {
		return nil, errors.Join(ErrInvalidConfig, errors.New("smtp host is required"))
	}
	if cfg.SMTPPort <= 0 || cfg.SMTPPort > 65535 {
		return nil, errors.Join(ErrInvalidConfig, fmt.Errorf("smtp port %d out of range", cfg.SMTPPort))
	}

	timeout := cfg.SMTPTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	localName := cfg.SMTPLocalName
	if localName == "" {
		localName = "localhost"
	}

	t := &SMTPTransport{
		addr:      net.JoinHostPort(cfg.SMTPHost, strconv.Itoa(cfg.SMTPPort)),
		host:      cfg.SMTPHost,
		localName: localName,
		timeout:   timeout,
		startTLS:  cfg.SMTPStartTLS,
	}
	t.dial = (&net.Dialer{Timeout: timeout}).DialContext

	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Deliver sends env through the relay: connect, log in, send, quit.
func (t *SMTPTransport) Deliver(ctx context.Context, env Envelope) error {
	if len(env.Recipients) == 0 {
		return ErrNoRecipients
	}

	conn, err := t.dial(ctx, "tcp", t.addr)
	if err != nil {
		return errors.Join(ErrConnectionFailed, err)
	}
	dc := &deadlineConn{Conn: conn, timeout: t.timeout}
	_ = dc.refresh()

	client, err := smtp.NewClient(dc, t.host)
	if err != nil {
		// NewClient closes the connection when the greeting fails.
		return errors.Join(ErrConnectionFailed, err)
	}

	released := false
	defer func() {
		if !released {
			_ = client.Close()
		}
	}()

	// a refused EHLO/HELO is part of logging in
	if err := client.Hello(t.localName); err != nil {
		return errors.Join(ErrLoginFailed, err)
	}

	if t.startTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: t.host}); err != nil {
				return errors.Join(ErrConnectionFailed, err)
			}
		}
	}

	if err := t.login(client, env.Sender, env.Credential); err != nil {
		return err
	}

	refused, err := t.send(client, env)
	if err != nil {
		return err
	}

	if err := client.Quit(); err == nil {
		released = true
	}

	if len(refused) > 0 {
		return errors.Join(ErrSendRejected, &RejectionReport{Refused: refused})
	}
	return nil
}

// login authenticates with the first advertised mechanism we support.
// A reply from the relay rejecting the exchange is an auth failure; anything
// else that prevents logging in is a login failure.
func (t *SMTPTransport) login(client *smtp.Client, username, password string) error {
	ok, params := client.Extension("AUTH")
	if !ok {
		return errors.Join(ErrLoginFailed, errors.New("relay does not advertise AUTH"))
	}

	advertised := strings.Fields(strings.ToUpper(params))
	var auth smtp.Auth
	for _, mech := range []string{"PLAIN", "LOGIN"} {
		if !contains(advertised, mech) {
			continue
		}
		if mech == "PLAIN" {
			auth = &plainAuth{username: username, password: password}
		} else {
			auth = &loginAuth{username: username, password: password}
		}
		break
	}
	if auth == nil {
		return errors.Join(ErrLoginFailed, fmt.Errorf("no supported auth mechanism in %q", params))
	}

	err := client.Auth(auth)
	if err == nil {
		return nil
	}

	var reply *textproto.Error
	if errors.As(err, &reply) {
		if reply.Code == 503 {
			// already authenticated
			return nil
		}
		return errors.Join(ErrAuthFailed, err)
	}
	return errors.Join(ErrLoginFailed, err)
}

// send runs MAIL, RCPT and DATA. It returns the refused recipients when at
// least one was accepted and the message went through.
func (t *SMTPTransport) send(client *smtp.Client, env Envelope) (map[string]string, error) {
	if err := client.Mail(env.Sender); err != nil {
		return nil, errors.Join(ErrSendFailed, err)
	}

	refused := make(map[string]string)
	for _, rcpt := range env.Recipients {
		err := client.Rcpt(rcpt)
		if err == nil {
			continue
		}
		var reply *textproto.Error
		if !errors.As(err, &reply) {
			return nil, errors.Join(ErrSendFailed, err)
		}
		refused[rcpt] = fmt.Sprintf("%d %s", reply.Code, reply.Msg)
	}
	if len(refused) == len(env.Recipients) {
		return nil, errors.Join(ErrSendFailed, &RejectionReport{Refused: refused})
	}

	w, err := client.Data()
	if err != nil {
		return nil, errors.Join(ErrSendFailed, err)
	}
	if _, err := w.Write(env.Raw); err != nil {
		_ = w.Close()
		return nil, errors.Join(ErrSendFailed, err)
	}
	if err := w.Close(); err != nil {
		return nil, errors.Join(ErrSendFailed, err)
	}
	return refused, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// deadlineConn pushes the deadline forward before every read and write so a
// stalled relay fails each step after timeout. Close reaches the underlying
// connection once: net/smtp quits on its own after an aborted AUTH.
type deadlineConn struct {
	net.Conn
	timeout time.Duration
	once    sync.Once
	err     error
}

func (c *deadlineConn) Close() error {
	c.once.Do(func() { c.err = c.Conn.Close() })
	return c.err
}

func (c *deadlineConn) refresh() error {
	return c.Conn.SetDeadline(time.Now().Add(c.timeout))
}

func (c *deadlineConn) Read(p []byte) (int, error) {
	if err := c.refresh(); err != nil {
		return 0, err
	}
	return c.Conn.Read(p)
}

func (c *deadlineConn) Write(p []byte) (int, error) {
	if err := c.refresh(); err != nil {
		return 0, err
	}
	return c.Conn.Write(p)
}

// plainAuth is RFC 4616 PLAIN without net/smtp's TLS requirement; the office
// relay accepts it on plaintext port 25.
type plainAuth struct {
	username, password string
}

func (a *plainAuth) Start(*smtp.ServerInfo) (string, []byte, error) {
	return "PLAIN", []byte("\x00" + a.username + "\x00" + a.password), nil
}

func (a *plainAuth) Next(_ []byte, more bool) ([]byte, error) {
	if more {
		return nil, errors.New("unexpected server challenge")
	}
	return nil, nil
}

// loginAuth is the LOGIN mechanism: username and password each answer a
// server prompt.
type loginAuth struct {
	username, password string
}

func (a *loginAuth) Start(*smtp.ServerInfo) (string, []byte, error) {
	return "LOGIN", nil, nil
}

func (a *loginAuth) Next(fromServer []byte, more bool) ([]byte, error) {
	if !more {
		return nil, nil
	}
	prompt := strings.ToLower(strings.TrimSpace(string(fromServer)))
	switch {
	case strings.HasPrefix(prompt, "username"):
		return []byte(a.username), nil
	case strings.HasPrefix(prompt, "password"):
		return []byte(a.password), nil
	default:
		return nil, fmt.Errorf("unexpected server challenge %q", fromServer)
	}
}
