// Package mail tells a product's creator that it was registered.
package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domproduct "example.com/exam-crud/internal/domain/product"
)

const sendTimeout = 10 * time.Second

// SMTPNotifier sends unauthenticated mail, which is what a local catcher
// such as Mailpit accepts. A send never outlives the caller's context nor
// sendTimeout.
type SMTPNotifier struct {
	addr    string
	from    string
	timeout time.Duration
	dialer  net.Dialer
}

func NewSMTPNotifier(addr, from string) *SMTPNotifier {
	return &SMTPNotifier{addr: addr, from: from, timeout: sendTimeout}
}

func (n *SMTPNotifier) ProductCreated(ctx context.Context, p *domproduct.Product) error {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	msg := ProductCreatedMessage(n.from, p)
	if err := n.send(ctx, p.CreatorEmail, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", p.CreatorEmail, err)
	}
	return nil
}

func (n *SMTPNotifier) send(ctx context.Context, to string, msg []byte) error {
	conn, err := n.dialer.DialContext(ctx, "tcp", n.addr)
	if err != nil {
		return err
	}
	// Closing the connection unblocks any pending read or write.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	host, _, err := net.SplitHostPort(n.addr)
	if err != nil {
		host = n.addr
	}
	c, err := smtp.NewClient(conn, host)
	if err != nil {
		_ = conn.Close()
		return ctxErr(ctx, err)
	}
	defer c.Close()

	if err := c.Mail(n.from); err != nil {
		return ctxErr(ctx, err)
	}
	if err := c.Rcpt(to); err != nil {
		return ctxErr(ctx, err)
	}
	w, err := c.Data()
	if err != nil {
		return ctxErr(ctx, err)
	}
	if _, err := w.Write(msg); err != nil {
		return ctxErr(ctx, err)
	}
	if err := w.Close(); err != nil {
		return ctxErr(ctx, err)
	}
	return ctxErr(ctx, c.Quit())
}

// ctxErr reports the context error when it is what broke the connection.
func ctxErr(ctx context.Context, err error) error {
	if err != nil && ctx.Err() != nil {
		return fmt.Errorf("%w: %v", ctx.Err(), err)
	}
	return err
}

var headerSanitizer = strings.NewReplacer("\r", " ", "\n", " ")

func ProductCreatedMessage(from string, p *domproduct.Product) []byte {
	name := headerSanitizer.Replace(p.Name)
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + headerSanitizer.Replace(p.CreatorEmail) + "\r\n")
	b.WriteString("Subject: Producto creado: " + name + "\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Se ha registrado el producto %s (%s).\r\n", name, p.Code)
	fmt.Fprintf(&b, "Talla: %s\r\n", p.Size)
	fmt.Fprintf(&b, "Precio: %s €\r\n", decimal.NewFromFloat(p.Price).StringFixed(2))
	return []byte(b.String())
}
