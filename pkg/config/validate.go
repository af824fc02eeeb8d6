package config

import (
	stderrors "errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/rohith0110/Wikipedia-Graph/pkg/errors"
)

// validate is a singleton validator instance
var validate = validator.New()

// Validate checks struct tags and the rules tags cannot express.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, formatValidationError(err), "invalid config")
	}
	if c.Cache.Backend == BackendRedis {
		if err := errors.ValidateURL(c.Cache.RedisURL, "redis", "rediss", "unix"); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache.redis_url")
		}
	}
	if c.Layout.Mode == "detail" {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.mode cannot default to detail: a topic is needed per run")
	}
	return nil
}

// ValidateStruct runs the shared validator on any tagged struct, such as
// an API request body.
func ValidateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !stderrors.As(err, &validationErrs) {
		return err
	}

	// first failure only
	for _, e := range validationErrs {
		field := e.Namespace()
		switch e.Tag() {
		case "required", "required_if":
			return fmt.Errorf("%s: field is required", field)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s], got %v", field, e.Param(), e.Value())
		case "gte", "gt", "min":
			return fmt.Errorf("%s: must be at least %s", field, e.Param())
		case "lte", "max":
			return fmt.Errorf("%s: must not exceed %s", field, e.Param())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}
	return err
}
