// Package validation computes field-level errors for a draft collection.
package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/sitecms/internal/client/catalog"
	"github.com/dmitrijs2005/sitecms/internal/client/models"
	"github.com/go-playground/validator/v10"
)

// ErrorSet maps "{field}_{index}" to a message.
type ErrorSet map[string]string

// Key builds the ErrorSet key for a field of the draft at index.
func Key(field string, index int) string {
	return fmt.Sprintf("%s_%d", field, index)
}

// Keys returns the keys in sorted order.
func (s ErrorSet) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validator checks drafts of one entity. It holds no per-call state, so a
// single instance may be used from several goroutines.
type Validator struct {
	entity   catalog.Entity
	validate *validator.Validate
}

func New(entity catalog.Entity) *Validator {
	return &Validator{entity: entity, validate: validator.New()}
}

// Validate returns the errors of every draft. An empty set means the
// collection may be saved.
func (v *Validator) Validate(drafts []*models.Draft) ErrorSet {
	errs := ErrorSet{}
	for i, d := range drafts {
		for _, f := range v.entity.Fields {
			if msg := v.check(f, d); msg != "" {
				errs[Key(f.Name, i)] = msg
			}
		}
	}
	return errs
}

// Submittable is the cheap form of Validate: it stops at the first required
// field that is empty and ignores length limits.
func (v *Validator) Submittable(drafts []*models.Draft) bool {
	for _, d := range drafts {
		for _, f := range v.entity.Fields {
			if f.Required && v.missing(f, d) {
				return false
			}
		}
	}
	return true
}

func (v *Validator) check(f catalog.Field, d *models.Draft) string {
	if f.Required && v.missing(f, d) {
		return f.Label + " is required"
	}
	if f.MaxLen > 0 && f.IsString() {
		if err := v.validate.Var(d.Text(f.Name), fmt.Sprintf("max=%d", f.MaxLen)); err != nil {
			return message(f, err)
		}
	}
	return ""
}

func (v *Validator) missing(f catalog.Field, d *models.Draft) bool {
	switch {
	case f.IsString():
		return v.validate.Var(strings.TrimSpace(d.Text(f.Name)), "required") != nil
	case f.Kind == catalog.KindImage:
		return d.Image(f.Name).Empty()
	default:
		return false
	}
}

func message(f catalog.Field, err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return f.Label + " is invalid"
	}
	switch verrs[0].Tag() {
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", f.Label, verrs[0].Param())
	case "required":
		return f.Label + " is required"
	default:
		return f.Label + " is invalid"
	}
}
