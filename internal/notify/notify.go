package notify

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jammission/backend/internal/models"
	"github.com/shopspring/decimal"
)

// Mailer delivers a plain-text message to the staff recipients.
type Mailer interface {
	Send(to []string, subject, body string) error
}

// Dispatcher formats submission notifications and hands them to the
// Mailer. Every send is best-effort: failures are logged and swallowed
// so a notification can never fail the visitor's request.
type Dispatcher struct {
	Mailer     Mailer
	Recipients []string
	Log        *slog.Logger
}

func NewDispatcher(mailer Mailer, recipients []string, log *slog.Logger) *Dispatcher {
	return &Dispatcher{Mailer: mailer, Recipients: recipients, Log: log}
}

func (d *Dispatcher) send(subject, body string) {
	if d == nil || d.Mailer == nil || len(d.Recipients) == 0 {
		return
	}
	if err := d.Mailer.Send(d.Recipients, subject, body); err != nil {
		if d.Log != nil {
			d.Log.Error("notification send failed", "subject", subject, "error", err)
		}
	}
}

func (d *Dispatcher) NewBooking(b *models.Booking, event *models.Event) {
	subject := "New booking request"
	if event != nil {
		subject = fmt.Sprintf("New event booking: %s", event.Title)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name: %s\n", b.Name)
	fmt.Fprintf(&sb, "Email: %s\n", b.Email)
	fmt.Fprintf(&sb, "Date: %s\n", b.Date.Format("2006-01-02"))
	fmt.Fprintf(&sb, "Tickets: %d\n", b.Tickets)
	fmt.Fprintf(&sb, "Notes: %s\n", b.Notes)
	if event != nil {
		fmt.Fprintf(&sb, "Event: %s\n", event.Title)
	}
	d.send(subject, sb.String())
}

func (d *Dispatcher) NewOrder(o *models.Order, product *models.Product) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Product: %s\n", product.Name)
	fmt.Fprintf(&sb, "Quantity: %d\n", o.Quantity)
	fmt.Fprintf(&sb, "Name: %s\n", o.Name)
	fmt.Fprintf(&sb, "Email: %s\n", o.Email)
	fmt.Fprintf(&sb, "Notes: %s", o.Notes)
	d.send(fmt.Sprintf("New product order: %s", product.Name), sb.String())
}

// OrderLine is one itemized entry of a combined cart order summary.
type OrderLine struct {
	ProductName string
	Quantity    uint
	Subtotal    decimal.Decimal
}

func (d *Dispatcher) CombinedOrder(name, email, notes string, lines []OrderLine, total decimal.Decimal) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "New combined order from %s\n", name)
	fmt.Fprintf(&sb, "Email: %s\n", email)
	for _, line := range lines {
		fmt.Fprintf(&sb, "%s × %d = $%s\n", line.ProductName, line.Quantity, line.Subtotal.StringFixed(2))
	}
	fmt.Fprintf(&sb, "Total: $%s\n", total.StringFixed(2))
	fmt.Fprintf(&sb, "Notes: %s", notes)
	d.send("New combined product order", sb.String())
}

func (d *Dispatcher) NewContactMessage(m *models.ContactMessage) {
	subject := m.Subject
	if subject == "" {
		subject = "New message from JAM Mission website"
	}
	body := fmt.Sprintf("Name: %s\nEmail: %s\n\nMessage:\n%s", m.Name, m.Email, m.Message)
	d.send(subject, body)
}

func (d *Dispatcher) NewApplication(app *models.PreQualificationApplication) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Application submitted on %s.\n", app.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&sb, "Adults: %d, Children: %d\n", app.Adults, app.Children)
	fmt.Fprintf(&sb, "Lease term: %s\n", app.LeaseTerm)
	fmt.Fprintf(&sb, "Housing size: %s\n", app.HousingSize)
	fmt.Fprintf(&sb, "Monthly support: %s", app.MonthlySupport)
	d.send("New lease pre-qualification application", sb.String())
}
