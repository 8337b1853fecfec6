package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/fjod/go_cart/pricing/cart-service/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Load reads and validates the scenario file at path.
func Load(path string) (domain.Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Scenario{}, &LoadError{Path: path, Kind: KindNotFound, Err: err}
	}
	return parse(path, b)
}

// Parse decodes a scenario from YAML bytes.
func Parse(b []byte) (domain.Scenario, error) {
	return parse("", b)
}

func parse(path string, b []byte) (domain.Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)

	var dto YAMLScenario
	if err := dec.Decode(&dto); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("file is empty")
		}
		return domain.Scenario{}, &LoadError{Path: path, Kind: KindInvalid, Err: err}
	}

	if err := validate.Struct(dto); err != nil {
		return domain.Scenario{}, &LoadError{Path: path, Kind: KindInvalid, Err: describe(err)}
	}

	return MapScenario(path, dto)
}

// describe flattens validator output into one readable error.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "YAMLScenario.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s", field, fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
