package wizard

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"claim_relay/models"
)

var (
	ErrInvalidTransition = errors.New("action not available on this screen")
	ErrNoResumeURL       = errors.New("workflow started but no resumeUrl received")
	ErrNoFile            = errors.New("please select a file first")
	ErrNoProductData     = errors.New("file uploaded but no product data received")
	ErrUnknownProduct    = errors.New("unknown product")
	ErrNoProducts        = errors.New("please select at least one product")
)

// Relay is the transport the wizard talks through.
type Relay interface {
	TriggerWorkflow(ctx context.Context, body any) (json.RawMessage, error)
	ResumeWorkflow(ctx context.Context, resumeURL string, body any) (json.RawMessage, error)
	UploadFile(ctx context.Context, resumeURL string, file File) (json.RawMessage, error)
}

// Controller owns one claim and the visible screen. It is not safe for
// concurrent use; one transition runs at a time.
type Controller struct {
	relay Relay
	view  View

	screen Screen
	step   Step
	claim  Claim

	newClaimID func() string
	now        func() time.Time
}

type Option func(*Controller)

// WithClaimIDGenerator replaces the random claim id generator.
func WithClaimIDGenerator(gen func() string) Option {
	return func(c *Controller) { c.newClaimID = gen }
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func NewController(relay Relay, view View, opts ...Option) *Controller {
	c := &Controller{
		relay:      relay,
		view:       view,
		screen:     ScreenStart,
		newClaimID: NewClaimID,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Snapshot() Snapshot {
	return Snapshot{Screen: c.screen, Step: c.step, Claim: c.claim.clone()}
}

// Refresh renders the current state.
func (c *Controller) Refresh() {
	c.view.Render(c.Snapshot())
}

// GenerateClaim starts the upstream workflow and moves to the upload screen.
func (c *Controller) GenerateClaim(ctx context.Context) error {
	if c.screen != ScreenStart {
		return c.fail(ErrInvalidTransition)
	}
	raw, err := c.relay.TriggerWorkflow(ctx, models.StartClaimRequest{Action: models.ActionStartClaim})
	if err != nil {
		return c.fail(fmt.Errorf("start claim: %w", err))
	}

	// The relay wraps the upstream reply: {success, message, data: {resumeUrl}}.
	var envelope struct {
		Data *models.TriggerData `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return c.fail(fmt.Errorf("start claim: decode reply: %w", err))
	}
	if envelope.Data == nil || envelope.Data.ResumeURL == "" {
		return c.fail(ErrNoResumeURL)
	}

	c.claim.ResumeURL = envelope.Data.ResumeURL
	c.screen = ScreenUpload
	c.step = StepFileUpload
	c.Refresh()
	return nil
}

// SelectFile records the file to upload.
func (c *Controller) SelectFile(file File) error {
	if c.screen != ScreenUpload {
		return c.fail(ErrInvalidTransition)
	}
	if file.Open == nil {
		return c.fail(ErrNoFile)
	}
	c.claim.File = &file
	c.step = StepSubmitIssue
	c.Refresh()
	return nil
}

// SubmitFile uploads the selected file and moves to the products screen when
// the upstream returns a summary and products.
func (c *Controller) SubmitFile(ctx context.Context) error {
	if c.screen != ScreenUpload {
		return c.fail(ErrInvalidTransition)
	}
	if c.claim.File == nil || c.claim.ResumeURL == "" {
		return c.fail(ErrNoFile)
	}

	raw, err := c.relay.UploadFile(ctx, c.claim.ResumeURL, *c.claim.File)
	if err != nil {
		return c.fail(fmt.Errorf("upload file: %w", err))
	}
	reply, err := DecodeUploadReply(raw)
	if err != nil {
		return c.fail(fmt.Errorf("%w: %v", ErrNoProductData, err))
	}
	if !reply.HasProductData() {
		return c.fail(ErrNoProductData)
	}

	// resume URLs are single use; the reply carries the next one
	c.claim.ResumeURL = reply.ResumeURL
	c.claim.Summary = reply.Summary
	c.claim.Offered = make([]Product, len(reply.Products))
	for i, label := range reply.Products {
		c.claim.Offered[i] = Product{ID: fmt.Sprintf("product-%d", i), Label: label}
	}
	c.claim.Selected = nil
	c.screen = ScreenProducts
	c.step = StepConfirmSelection
	c.Refresh()
	return nil
}

// ToggleProduct adds or removes an offered product from the selection.
func (c *Controller) ToggleProduct(id string) error {
	if c.screen != ScreenProducts {
		return c.fail(ErrInvalidTransition)
	}
	var product *Product
	for i := range c.claim.Offered {
		if c.claim.Offered[i].ID == id {
			product = &c.claim.Offered[i]
			break
		}
	}
	if product == nil {
		return c.fail(fmt.Errorf("%w: %s", ErrUnknownProduct, id))
	}

	removed := false
	selected := c.claim.Selected[:0:0]
	for _, p := range c.claim.Selected {
		if p.ID == id {
			removed = true
			continue
		}
		selected = append(selected, p)
	}
	if !removed {
		selected = append(selected, *product)
	}
	c.claim.Selected = selected
	c.Refresh()
	return nil
}

// SubmitProducts sends the selection and always ends on the complete screen
// with a locally generated claim id. A relay failure is returned but does not
// keep the wizard from completing.
func (c *Controller) SubmitProducts(ctx context.Context) (string, error) {
	if c.screen != ScreenProducts {
		return "", c.fail(ErrInvalidTransition)
	}
	if len(c.claim.Selected) == 0 || c.claim.ResumeURL == "" {
		return "", c.fail(ErrNoProducts)
	}

	c.claim.ClaimID = c.newClaimID()
	labels := make([]string, len(c.claim.Selected))
	for i, p := range c.claim.Selected {
		labels[i] = p.Label
	}
	_, err := c.relay.ResumeWorkflow(ctx, c.claim.ResumeURL, models.SubmitProductsRequest{
		SelectedProducts: labels,
		ClaimID:          c.claim.ClaimID,
		Timestamp:        c.now().UTC().Format("2006-01-02T15:04:05.000Z"),
	})
	if err != nil {
		err = fmt.Errorf("submit products: %w", err)
	}

	c.screen = ScreenComplete
	c.step = StepComplete
	c.Refresh()
	return c.claim.ClaimID, err
}

// Reset discards the claim and returns to the start screen.
func (c *Controller) Reset() {
	c.claim = Claim{}
	c.screen = ScreenStart
	c.step = StepNone
	c.Refresh()
}

func (c *Controller) fail(err error) error {
	c.view.Alert(err.Error())
	return err
}

const claimIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewClaimID returns "CL-" followed by six random characters from [A-Z0-9].
func NewClaimID() string {
	buf := make([]byte, 6)
	max := big.NewInt(int64(len(claimIDAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand does not fail on supported platforms
			panic(err)
		}
		buf[i] = claimIDAlphabet[n.Int64()]
	}
	return "CL-" + string(buf)
}
