package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/maxviazov/buddyfinder-service/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// validateStruct runs struct tags and converts failures into the aggregated field error.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	ferrs := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		ferrs = append(ferrs, FieldError{Field: fe.Field(), Message: describe(fe)})
	}
	return newInvalidInput(ferrs)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "eq":
		return "must be " + fe.Param()
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func checkUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidArgument)
	}
	return nil
}

func checkRange(field string, v *int, ferrs []FieldError) []FieldError {
	if v != nil && (*v < 1 || *v > 100) {
		ferrs = append(ferrs, FieldError{Field: field, Message: "must be between 1 and 100"})
	}
	return ferrs
}

func checkLocation(p *model.GeoPoint, ferrs []FieldError) []FieldError {
	if p == nil {
		return ferrs
	}
	if p.Type != "Point" {
		ferrs = append(ferrs, FieldError{Field: "location.type", Message: "must be Point"})
	}
	if lon := p.Longitude(); lon < -180 || lon > 180 {
		ferrs = append(ferrs, FieldError{Field: "location.coordinates[0]", Message: "longitude must be between -180 and 180"})
	}
	if lat := p.Latitude(); lat < -90 || lat > 90 {
		ferrs = append(ferrs, FieldError{Field: "location.coordinates[1]", Message: "latitude must be between -90 and 90"})
	}
	return ferrs
}

func checkSocialLinks(links map[string]string, ferrs []FieldError) []FieldError {
	for k, v := range links {
		if err := validate.Var(v, "required,url"); err != nil {
			ferrs = append(ferrs, FieldError{Field: "social_links." + k, Message: "must be a valid URL"})
		}
	}
	return ferrs
}

// checkParameters enforces the generic shape of a parameter bag: every value is a
// number, string or bool, or an array made only of strings or only of numbers.
func checkParameters(params model.SportParameters, ferrs []FieldError) []FieldError {
	if len(params) == 0 {
		return append(ferrs, FieldError{Field: "parameters", Message: "must contain at least one parameter"})
	}
	for k, v := range params {
		if !isParameterValue(v) {
			ferrs = append(ferrs, FieldError{Field: "parameters." + k, Message: "must be a number, string, boolean or an array of strings or numbers"})
		}
	}
	return ferrs
}

func isParameterValue(v any) bool {
	switch t := v.(type) {
	case string, bool, float64, float32, int, int32, int64:
		return true
	case []any:
		return homogeneous(t)
	case []string, []float64, []int:
		return true
	default:
		return false
	}
}

func homogeneous(items []any) bool {
	var strs, nums int
	for _, it := range items {
		switch it.(type) {
		case string:
			strs++
		case float64, float32, int, int32, int64:
			nums++
		default:
			return false
		}
	}
	return strs == 0 || nums == 0
}
