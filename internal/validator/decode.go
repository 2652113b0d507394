package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"
)

// FromDecodeError переводит ошибку разбора JSON в ошибки полей.
// Неверный тип значения (строка вместо числа и т.п.) - это тоже ошибка валидации.
//
// encoding/json сообщает только о первом поле с неверным типом, поэтому
// каждое поле body разбирается в obj еще раз по отдельности.
// obj - указатель на структуру, в которую разбиралось тело.
func FromDecodeError(err error, body []byte, obj any) (*ValidationError, bool) {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		return nil, false
	}

	out := &ValidationError{Errors: typeErrors(body, obj)}
	if len(out.Errors) == 0 {
		out.Errors = []FieldError{typeFieldError(typeErr)}
	}
	return out, true
}

func typeErrors(body []byte, obj any) []FieldError {
	t := reflect.TypeOf(obj)
	if t == nil || t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []FieldError
	for _, k := range keys {
		single, err := json.Marshal(map[string]json.RawMessage{k: fields[k]})
		if err != nil {
			continue
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(json.Unmarshal(single, reflect.New(t.Elem()).Interface()), &typeErr) {
			out = append(out, typeFieldError(typeErr))
		}
	}
	return out
}

func typeFieldError(e *json.UnmarshalTypeError) FieldError {
	field := e.Field
	if field == "" {
		field = "body"
	}
	return FieldError{
		Field:   field,
		Reason:  "type",
		Message: fmt.Sprintf("Expected %s, got %s", jsonTypeName(e.Type), e.Value),
	}
}

var timeType = reflect.TypeOf(time.Time{})

// jsonTypeName - тип так, как его видит клиент: "integer", "array of strings"
func jsonTypeName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == timeType {
		return "string"
	}

	switch t.Kind() {
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		return "array of " + plural(jsonTypeName(t.Elem()))
	case reflect.Map, reflect.Struct:
		return "object"
	default:
		return "value"
	}
}

func plural(name string) string {
	if rest, ok := strings.CutPrefix(name, "array "); ok {
		return "arrays " + rest
	}
	return name + "s"
}
