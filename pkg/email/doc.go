// Package email composes the daily attendance report as a plain-text email
// and hands it to a transport.
//
// # Architecture
//
// Dispatcher owns everything that does not touch the network: pre-flight
// validation of the sender, credential, recipients and body, joining the
// header/body/footer text, and building the MIME message with
// gopkg.in/gomail.v2. Delivery is delegated to a Transport:
//   - SMTPTransport talks to the office relay (plaintext, port 25 by default)
//     and classifies failures by stage: connect, login, send.
//   - PostmarkTransport delivers through the Postmark API, using the
//     credential as the server token.
//   - DevTransport writes .eml files to disk for local development.
//
// # Usage
//
//	var cfg email.Config
//	config.MustLoad(&cfg)
//
//	transport, err := email.NewTransport(cfg)
//	if err != nil {
//	    return err
//	}
//	dispatcher := email.NewDispatcher(transport, email.WithFromName(cfg.FromName))
//
//	err = dispatcher.Send(ctx, email.Message{
//	    Sender:     "clerk@example.com",
//	    Credential: password,
//	    Recipients: []string{"boss@example.com"},
//	    Header:     "Dear all,",
//	    Body:       report,
//	    Footer:     "Regards",
//	})
//
// # Error Handling
//
// Every failure is a sentinel error, possibly joined with the relay's reply:
//   - ErrInvalidSender, ErrMissingCredential, ErrNoRecipients, ErrEmptyContent
//     are pre-flight failures; no connection is attempted.
//   - ErrConnectionFailed, ErrLoginFailed, ErrAuthFailed, ErrSendRejected and
//     ErrSendFailed come from the transport.
//
// ErrSendRejected is joined with a *RejectionReport listing each refused
// address and the relay's reply:
//
//	var report *email.RejectionReport
//	if errors.As(err, &report) {
//	    for addr, reply := range report.Refused { ... }
//	}
//
// Nothing is retried.
package email
