package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/dto"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/infra"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/model"

	"github.com/rs/zerolog/log"
)

// Mailer is satisfied by infra.EmailAPIClient and infra.SMTPMailer.
type Mailer interface {
	Send(ctx context.Context, msg infra.EmailMessage) error
}

// SheetsWriter is satisfied by infra.SheetsClient.
type SheetsWriter interface {
	EnsureTab(ctx context.Context, header []string) (bool, error)
	AppendRows(ctx context.Context, rows [][]interface{}) error
}

// FormConfigSource supplies field labels for the emails.
type FormConfigSource interface {
	GetFormConfig(ctx context.Context) (dto.FormConfig, error)
}

// ErrSkipped marks a branch that has nothing configured to talk to.
var ErrSkipped = errors.New("not configured")

const (
	BranchCustomerEmail = "customer_email"
	BranchAdminEmail    = "admin_email"
	BranchSheets        = "sheets_append"
)

type Options struct {
	BusinessName string
	AdminEmail   string
	// AttachPDF adds the order sheet to the admin email.
	AttachPDF bool
}

// Notifier builds and runs the three order side effects. A nil mailer or
// sheets writer turns the matching branches into logged no-ops.
type Notifier struct {
	mailer Mailer
	sheets SheetsWriter
	forms  FormConfigSource
	opts   Options
}

func NewNotifier(mailer Mailer, sheets SheetsWriter, forms FormConfigSource, opts Options) *Notifier {
	return &Notifier{mailer: mailer, sheets: sheets, forms: forms, opts: opts}
}

// OrderCreated fans out the customer email, the admin email and the
// spreadsheet append, waits for all three and logs each failure.
func (n *Notifier) OrderCreated(ctx context.Context, o *model.CustomerRequest) []Result {
	var cfg dto.FormConfig
	if n.forms != nil {
		c, err := n.forms.GetFormConfig(ctx)
		if err != nil {
			log.Warn().Err(err).Str("order_id", o.ID.String()).Msg("notify: form config unavailable, using default labels")
		}
		cfg = c
	}
	data := NewEmailData(n.opts.BusinessName, o, cfg)

	results := Fanout(ctx,
		Task{Name: BranchCustomerEmail, Run: func(ctx context.Context) error { return n.customerEmail(ctx, data) }},
		Task{Name: BranchAdminEmail, Run: func(ctx context.Context) error { return n.adminEmail(ctx, data) }},
		Task{Name: BranchSheets, Run: func(ctx context.Context) error { return n.SyncSheet(ctx, o) }},
	)
	for _, r := range results {
		switch {
		case errors.Is(r.Err, ErrSkipped):
			log.Info().Str("order_id", data.OrderID).Str("branch", r.Name).Msg("notify: branch skipped")
		case r.Err != nil:
			log.Error().Err(r.Err).Str("order_id", data.OrderID).Str("branch", r.Name).Dur("duration", r.Duration).Msg("notify: branch failed")
		default:
			log.Debug().Str("order_id", data.OrderID).Str("branch", r.Name).Dur("duration", r.Duration).Msg("notify: branch done")
		}
	}
	return results
}

func (n *Notifier) customerEmail(ctx context.Context, data EmailData) error {
	if n.mailer == nil {
		return ErrSkipped
	}
	html, err := render("customer_confirmation.html", data)
	if err != nil {
		return fmt.Errorf("render customer email: %w", err)
	}
	return n.mailer.Send(ctx, infra.EmailMessage{
		To:      []string{data.Order.Email},
		Subject: fmt.Sprintf("%s: recibimos tu pedido", n.opts.BusinessName),
		HTML:    html,
	})
}

func (n *Notifier) adminEmail(ctx context.Context, data EmailData) error {
	if n.mailer == nil || n.opts.AdminEmail == "" {
		return ErrSkipped
	}
	html, err := render("admin_notification.html", data)
	if err != nil {
		return fmt.Errorf("render admin email: %w", err)
	}
	msg := infra.EmailMessage{
		To:      []string{n.opts.AdminEmail},
		Subject: fmt.Sprintf("Nuevo pedido de %s %s (%d producto(s))", data.Order.Name, data.Order.Lastname, data.ProductCount),
		HTML:    html,
	}
	if n.opts.AttachPDF {
		pdf, err := infra.OrderPDF(data.Order, n.opts.BusinessName)
		if err != nil {
			log.Warn().Err(err).Str("order_id", data.OrderID).Msg("notify: order pdf failed, sending without attachment")
		} else {
			msg.Attachments = []infra.EmailAttachment{{
				Filename:    "pedido_" + data.OrderID + ".pdf",
				ContentType: "application/pdf",
				Data:        pdf,
			}}
		}
	}
	return n.mailer.Send(ctx, msg)
}

// SyncSheet makes sure the tab and header exist, then appends the rows of
// every order in one call.
func (n *Notifier) SyncSheet(ctx context.Context, orders ...*model.CustomerRequest) error {
	if n.sheets == nil {
		return ErrSkipped
	}
	if _, err := n.sheets.EnsureTab(ctx, SheetHeader); err != nil {
		return err
	}
	var rows [][]interface{}
	for _, o := range orders {
		rows = append(rows, SheetRows(o)...)
	}
	return n.sheets.AppendRows(ctx, rows)
}

// SheetsEnabled reports whether a spreadsheet writer is configured.
func (n *Notifier) SheetsEnabled() bool { return n.sheets != nil }

// MailEnabled reports whether an email provider is configured.
func (n *Notifier) MailEnabled() bool { return n.mailer != nil }
