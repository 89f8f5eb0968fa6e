package transform

import (
	"github.com/d5/tengo/v2"
	"go.uber.org/zap"

	"go-transformer/internal/features/schema"
)

// ActionOutcome records what one post-transformation action produced
// for an invoice; outcomes travel with the batch output so the UI can
// show the automation trail.
type ActionOutcome struct {
	Name    string `json:"name" bson:"name"`
	Action  string `json:"action" bson:"action"`
	Status  string `json:"status" bson:"status"`
	Detail  string `json:"detail,omitempty" bson:"detail,omitempty"`
	Subject string `json:"subject,omitempty" bson:"subject,omitempty"`
}

type ActionExecutor interface {
	Execute(actions map[string]schema.PostTransformationAction, invoice ERPInvoice) []ActionOutcome
}

type ActionExecutorImpl struct {
	Logger *zap.Logger
}

func NewActionExecutor(logger *zap.Logger) ActionExecutor {
	return &ActionExecutorImpl{Logger: logger}
}

func (e *ActionExecutorImpl) Execute(actions map[string]schema.PostTransformationAction, invoice ERPInvoice) []ActionOutcome {
	outcomes := []ActionOutcome{}
	for name, action := range actions {
		if !action.Enabled {
			continue
		}

		outcome := ActionOutcome{Name: name, Action: action.Action, Status: "ok"}
		switch action.Action {
		case "add_note":
			outcome.Detail = action.Content
		case "create_activity":
			outcome.Subject = action.Subject
			outcome.Detail = action.ActivityType
		case "run_script":
			if err := e.runScript(action.Content, invoice); err != nil {
				outcome.Status = "failed"
				outcome.Detail = err.Error()
				e.Logger.Warn("post-transformation script failed",
					zap.String("feature", "transform"),
					zap.String("action", name),
					zap.Error(err))
			}
		default:
			outcome.Status = "skipped"
			outcome.Detail = "unknown action type"
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

func (e *ActionExecutorImpl) runScript(scriptContent string, invoice ERPInvoice) error {
	if scriptContent == "" {
		return nil
	}

	script := tengo.NewScript([]byte(scriptContent))
	script.Add("invoice", map[string]interface{}{
		"sales_request_ref":  invoice.SalesRequestRef,
		"customer_name":      invoice.CustomerName,
		"customer_reference": invoice.CustomerReference,
		"payment_reference":  invoice.PaymentReference,
		"subtotal":           invoice.Subtotal,
		"tax_amount":         invoice.TaxAmount,
		"total":              invoice.Total,
	})

	compiled, err := script.Compile()
	if err != nil {
		return err
	}
	return compiled.Run()
}
