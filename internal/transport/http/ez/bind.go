package ez

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	resp "crud-api/internal/transport/http/response"
)

// bindError 只取第一个字段错误，字段名用 json 名
func bindError(err error, out any) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return &HTTPError{Status: http.StatusRequestEntityTooLarge, Msg: resp.MsgTooLarge}
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		fe := ves[0]
		return BadRequest(jsonName(out, fe.StructField()) + " " + ruleMessage(fe.Tag(), fe.Param()))
	}

	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		return BadRequest(fmt.Sprintf("%s must be of type %s", ute.Field, ute.Type.String()))
	}
	if errors.Is(err, io.EOF) {
		return BadRequest("request body is required")
	}
	return BadRequest("invalid request body")
}

func jsonName(out any, field string) string {
	t := reflect.TypeOf(out)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return field
	}
	sf, ok := t.FieldByName(field)
	if !ok {
		return field
	}
	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		name, _, _ = strings.Cut(sf.Tag.Get("form"), ",")
	}
	if name == "" || name == "-" {
		return field
	}
	return name
}

func ruleMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	case "oneof":
		return "must be one of " + strings.ReplaceAll(param, " ", ", ")
	}
	if param != "" {
		return fmt.Sprintf("failed %s validation (%s)", rule, param)
	}
	return "failed " + rule + " validation"
}
