package utils

import (
	"reflect"

	"github.com/gin-gonic/gin/binding"
)

// GinValidator plugs the shared validator into gin's ShouldBind* calls.
type GinValidator struct{}

var _ binding.StructValidator = GinValidator{}

func (GinValidator) ValidateStruct(obj any) error {
	if obj == nil {
		return nil
	}
	value := reflect.ValueOf(obj)
	for value.Kind() == reflect.Ptr {
		if value.IsNil() {
			return nil
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}
	return ValidateStruct(obj)
}

func (GinValidator) Engine() any {
	return Validator()
}
