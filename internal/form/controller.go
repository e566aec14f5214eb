package form

import "maps"

// Controller tracks a single form session: the draft, the per-field errors
// and the set of fields the user has left at least once. Errors for a field
// are only recomputed on change after that field has been touched.
// A Controller is not safe for concurrent use.
type Controller struct {
	draft   Draft
	errors  FieldErrors
	touched map[Field]struct{}
}

// NewController returns a controller holding an empty draft.
func NewController() *Controller {
	return &Controller{
		errors:  make(FieldErrors),
		touched: make(map[Field]struct{}),
	}
}

// OnChange stores value and recomputes the total. The field's error is
// refreshed only if the field was already touched.
func (c *Controller) OnChange(f Field, value string) error {
	if err := c.draft.set(f, value); err != nil {
		return err
	}
	if _, ok := c.touched[f]; ok {
		c.refresh(f, value)
	}
	return nil
}

// OnBlur marks f touched, stores value and always refreshes its error.
func (c *Controller) OnBlur(f Field, value string) error {
	if err := c.draft.set(f, value); err != nil {
		return err
	}
	c.touched[f] = struct{}{}
	c.refresh(f, value)
	return nil
}

// ValidateAll touches every field, replaces the error map with a full form
// validation and reports whether the form is valid.
func (c *Controller) ValidateAll() bool {
	for _, f := range Fields {
		c.touched[f] = struct{}{}
	}
	c.errors = ValidateForm(c.draft)
	return len(c.errors) == 0
}

// Reset restores the empty draft and clears errors and touched state.
func (c *Controller) Reset() {
	c.draft = Draft{}
	c.errors = make(FieldErrors)
	c.touched = make(map[Field]struct{})
}

// Draft returns a copy of the current draft.
func (c *Controller) Draft() Draft { return c.draft }

// Errors returns a copy of the current error map.
func (c *Controller) Errors() FieldErrors { return maps.Clone(c.errors) }

// Error returns the current error for f, or "".
func (c *Controller) Error(f Field) string { return c.errors[f] }

// Touched reports whether f has been blurred since the last reset.
func (c *Controller) Touched(f Field) bool {
	_, ok := c.touched[f]
	return ok
}

func (c *Controller) refresh(f Field, value string) {
	if msg := ValidateField(f, value); msg != "" {
		c.errors[f] = msg
		return
	}
	delete(c.errors, f)
}
