// Package flow tracks the three screens of a review session: product input,
// the generated form, and the success confirmation.
package flow

import (
	"fmt"

	"github.com/reviewforge/reviewgen/pkg/schema"
	"github.com/reviewforge/reviewgen/pkg/store"
)

// State identifies the screen a review session is on.
type State string

const (
	// StateInput collects the product type.
	StateInput State = "input"
	// StateForm shows the generated review form.
	StateForm State = "form"
	// StateSuccess confirms a stored review.
	StateSuccess State = "success"
)

// Controller owns the session state and the data each screen needs. It is a
// single-session object; construct one per wizard run.
type Controller struct {
	state       State
	productType string
	form        *schema.FormStructure
	review      *store.Review
}

// NewController starts a session on the input screen.
func NewController() *Controller {
	return &Controller{state: StateInput}
}

// State reports the current screen.
func (c *Controller) State() State {
	return c.state
}

// ProductType reports the product under review, empty on the input screen.
func (c *Controller) ProductType() string {
	return c.productType
}

// Form reports the generated form, nil outside the form and success screens.
func (c *Controller) Form() *schema.FormStructure {
	return c.form
}

// Review reports the stored review, nil before completion.
func (c *Controller) Review() *store.Review {
	return c.review
}

// BeginReview moves input → form once a schema has been generated.
func (c *Controller) BeginReview(productType string, form schema.FormStructure) error {
	if c.state != StateInput {
		return c.transitionError("begin review")
	}
	if productType == "" {
		return fmt.Errorf("flow: begin review: product type is empty")
	}
	c.productType = productType
	c.form = &form
	c.state = StateForm
	return nil
}

// ChangeProduct moves form → input, discarding the generated schema so the
// next product starts clean.
func (c *Controller) ChangeProduct() error {
	if c.state != StateForm {
		return c.transitionError("change product")
	}
	c.productType = ""
	c.form = nil
	c.state = StateInput
	return nil
}

// Complete moves form → success. The form and product type stay available for
// the confirmation screen until Reset.
func (c *Controller) Complete(review store.Review) error {
	if c.state != StateForm {
		return c.transitionError("complete")
	}
	c.review = &review
	c.state = StateSuccess
	return nil
}

// Reset moves success → input and clears everything for the next session.
func (c *Controller) Reset() error {
	if c.state != StateSuccess {
		return c.transitionError("reset")
	}
	c.productType = ""
	c.form = nil
	c.review = nil
	c.state = StateInput
	return nil
}

func (c *Controller) transitionError(action string) error {
	return fmt.Errorf("flow: cannot %s from state %q", action, c.state)
}
