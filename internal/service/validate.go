package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm/clause"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields under their JSON names so messages line up with the API.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// validateStruct runs the struct's validate tags and converts failures into
// a *ValidationError.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		if _, seen := out.Fields[fe.Field()]; !seen {
			out.Fields[fe.Field()] = describe(fe)
		}
	}
	return out
}

func describe(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		if isString {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "gtefield":
		return "must not be lower than " + toJSONName(fe.Param())
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}

// toJSONName maps the Go field names used as gtefield parameters.
func toJSONName(field string) string {
	switch field {
	case "MinPlayers":
		return "min_players"
	default:
		return strings.ToLower(field)
	}
}

// Order is an explicit sort key for list operations.
type Order struct {
	Column string
	Desc   bool
}

var (
	ByName  = Order{Column: "name"}
	ByTitle = Order{Column: "title"}
)

// clause checks the column against the sortable set and falls back to def
// when the order is empty.
func (o Order) clause(def Order, sortable ...string) (clause.OrderByColumn, error) {
	if o.Column == "" {
		o = def
	}
	for _, col := range sortable {
		if col == o.Column {
			return clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Desc}, nil
		}
	}
	return clause.OrderByColumn{}, invalid("sort", fmt.Sprintf("cannot sort by %q", o.Column))
}
