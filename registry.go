package aaspydantic

import (
	"fmt"
	"reflect"
)

// modelRegistry maps class names to model struct types for decoding and for
// union alternative resolution. Registration happens at package init time;
// the map is read-only afterwards, so it carries no lock.
var modelRegistry = map[string]reflect.Type{}

// Register makes the model type T resolvable by its class name.
func Register[T any]() {
	t := reflect.TypeOf((*T)(nil)).Elem()
	RegisterName(t.Name(), t)
}

// RegisterName registers a model struct type under an explicit class name.
func RegisterName(className string, t reflect.Type) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if !isModelStruct(t) {
		panic(fmt.Sprintf("aaspydantic: Register: %s does not embed a model base type", t))
	}
	modelRegistry[className] = t
}

// RegisteredType resolves a class name to a registered model type.
func RegisteredType(className string) (reflect.Type, bool) {
	t, ok := modelRegistry[className]
	return t, ok
}
