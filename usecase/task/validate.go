package task

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fastygo/taskboard/domain"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (uc *UseCase) validateCreate(in CreateInput) error {
	if err := uc.validate.Struct(in); err != nil {
		return toValidationError(err, "")
	}
	return nil
}

func (uc *UseCase) validateUpdate(in UpdateInput) error {
	var fields []domain.FieldViolation

	fields = append(fields, uc.check("id", in.ID, "required,uuid")...)
	if in.Title.Present {
		if in.Title.Null {
			fields = append(fields, notNull("title"))
		} else {
			fields = append(fields, uc.check("title", in.Title.Value, "required,max=255")...)
		}
	}
	if in.Completed.Null {
		fields = append(fields, notNull("completed"))
	}
	if in.Priority.Present {
		if in.Priority.Null {
			fields = append(fields, notNull("priority"))
		} else {
			fields = append(fields, uc.check("priority", in.Priority.Value, "oneof=low medium high urgent")...)
		}
	}
	if org, ok := in.OrganizationID.Get(); ok {
		fields = append(fields, uc.check("organization_id", org, "uuid")...)
	}

	if len(fields) > 0 {
		return domain.NewValidationError(fields...)
	}
	return nil
}

func (uc *UseCase) validateFilter(f ListFilter) error {
	var fields []domain.FieldViolation
	if org, ok := f.OrganizationID.Get(); ok {
		fields = append(fields, uc.check("organization_id", org, "uuid")...)
	}
	if f.Priority != nil {
		fields = append(fields, uc.check("priority", *f.Priority, "oneof=low medium high urgent")...)
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields...)
	}
	return nil
}

func (uc *UseCase) validateID(id string) error {
	return uc.ValidateID("id", id)
}

// ValidateID rejects a missing or malformed task identifier, reporting it
// under field.
func (uc *UseCase) ValidateID(field, id string) error {
	if fields := uc.check(field, id, "required,uuid"); len(fields) > 0 {
		return domain.NewValidationError(fields...)
	}
	return nil
}

func (uc *UseCase) check(field string, value interface{}, tag string) []domain.FieldViolation {
	if err := uc.validate.Var(value, tag); err != nil {
		return domain.ViolationsOf(toValidationError(err, field))
	}
	return nil
}

// toValidationError converts validator output into a domain error. name
// overrides the field name for single-value checks.
func toValidationError(err error, name string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.WrapError(domain.ErrCodeInvalid, "invalid input", err)
	}
	fields := make([]domain.FieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if name != "" {
			field = name
		}
		fields = append(fields, domain.FieldViolation{Field: field, Reason: reason(fe)})
	}
	return domain.NewValidationError(fields...)
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "uuid":
		return "must be a UUID"
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

func notNull(field string) domain.FieldViolation {
	return domain.FieldViolation{Field: field, Reason: "must not be null"}
}
