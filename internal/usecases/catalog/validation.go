package catalog

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/petshop-admin-api/internal/domain"
	"github.com/xeipuuv/gojsonschema"
)

// itens de pedido: lista de objetos; quantidade e preço, quando presentes, não negativos
const orderItemsSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"properties": {
			"nome":       {"type": "string"},
			"quantidade": {"type": "number", "minimum": 0},
			"preco":      {"type": "number", "minimum": 0}
		}
	}
}`

var itemsSchemaLoader = gojsonschema.NewStringLoader(orderItemsSchema)

func newValidator() *validator.Validate {
	v := validator.New()

	// decimal é validado pelo valor numérico (gte=0)
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("order_status", func(fl validator.FieldLevel) bool {
		return domain.OrderStatus(fl.Field().String()).IsValid()
	})

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// validationDetails traduz os erros do validator em campo -> regra
func validationDetails(err error) map[string]string {
	details := make(map[string]string)

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		details["request"] = err.Error()
		return details
	}

	for _, fe := range validationErrors {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule = fmt.Sprintf("%s=%s", fe.Tag(), fe.Param())
		}
		details[fe.Field()] = rule
	}

	return details
}

func validateOrderItems(items []byte) error {
	result, err := gojsonschema.Validate(itemsSchemaLoader, gojsonschema.NewBytesLoader(items))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidItems, err)
	}

	if !result.Valid() {
		messages := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			messages = append(messages, desc.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidItems, strings.Join(messages, "; "))
	}

	return nil
}
