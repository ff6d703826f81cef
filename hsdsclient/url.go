// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package hsdsclient

// This file builds relative request URLs from path templates and
// query parameters.

import (
	"encoding"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/jtacoma/uritemplates"
)

// placeholderPattern finds {name} expressions in a path template.
var placeholderPattern = regexp.MustCompile(`\{([^{}]*)\}`)

// QueryParam is one declared query parameter.  A nil Value, or a nil
// pointer, is absent.
type QueryParam struct {
	Key   string
	Value interface{}
}

// Param is shorthand for a QueryParam.
func Param(key string, value interface{}) QueryParam {
	return QueryParam{Key: key, Value: value}
}

// URLBuilder produces relative request URLs.  The zero value sends
// absent query parameters as "key=", which is what HSDS clients have
// always sent; set OmitAbsent to leave them out.
type URLBuilder struct {
	OmitAbsent bool
}

// BuildURL is URLBuilder{}.Build.
func BuildURL(template string, vars map[string]interface{}, query ...QueryParam) (string, error) {
	return URLBuilder{}.Build(template, vars, query...)
}

// Build expands template, a path containing {name} placeholders, with
// the percent-encoded values in vars, then appends the query
// parameters in order.  Every placeholder must have a present value.
func (b URLBuilder) Build(template string, vars map[string]interface{}, query ...QueryParam) (string, error) {
	tmpl, err := uritemplates.Parse(template)
	if err != nil {
		return "", err
	}

	// Format every placeholder value ourselves so numbers and
	// enums expand the same way they do in query strings
	values := make(map[string]interface{})
	for _, name := range placeholderNames(template) {
		value, present := vars[name]
		var s string
		if present {
			s, present, err = formatValue(value)
			if err != nil {
				return "", fmt.Errorf("hsdsclient: path placeholder %q: %v", name, err)
			}
		}
		if !present {
			return "", ErrUnboundPlaceholder{Name: name}
		}
		values[name] = s
	}

	expanded, err := tmpl.Expand(values)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(expanded)
	sep := "?"
	if strings.Contains(expanded, "?") {
		sep = "&"
	}
	for _, param := range query {
		s, present, err := formatValue(param.Value)
		if err != nil {
			return "", fmt.Errorf("hsdsclient: query parameter %q: %v", param.Key, err)
		}
		if !present && b.OmitAbsent {
			continue
		}
		sb.WriteString(sep)
		sb.WriteString(escapeQuery(param.Key))
		sb.WriteByte('=')
		sb.WriteString(escapeQuery(s))
		sep = "&"
	}
	return sb.String(), nil
}

// placeholderNames lists the variables named in a template's
// expressions, ignoring operators and modifiers.
func placeholderNames(template string) []string {
	var names []string
	for _, match := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		expr := strings.TrimLeft(match[1], "+#./;?&")
		for _, name := range strings.Split(expr, ",") {
			if i := strings.IndexAny(name, ":*"); i >= 0 {
				name = name[:i]
			}
			if name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}

// escapeQuery percent-encodes a query key or value, writing spaces
// as %20 rather than +.
func escapeQuery(s string) string {
	return strings.Replace(url.QueryEscape(s), "+", "%20", -1)
}

// formatValue renders a parameter value independently of locale.  The
// second result is false if the value is absent.
func formatValue(value interface{}) (string, bool, error) {
	if value == nil {
		return "", false, nil
	}
	if tm, ok := value.(encoding.TextMarshaler); ok {
		if v := reflect.ValueOf(value); v.Kind() == reflect.Ptr && v.IsNil() {
			return "", false, nil
		}
		text, err := tm.MarshalText()
		return string(text), err == nil, err
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return "", false, nil
		}
		return formatValue(v.Elem().Interface())
	case reflect.String:
		return v.String(), true, nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), true, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), true, nil
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'g', -1, 32), true, nil
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64), true, nil
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return "", false, nil
		}
		parts := make([]string, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			s, _, err := formatValue(v.Index(i).Interface())
			if err != nil {
				return "", false, err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ","), true, nil
	}

	if s, ok := value.(fmt.Stringer); ok {
		return s.String(), true, nil
	}
	return "", false, fmt.Errorf("cannot format %T", value)
}
