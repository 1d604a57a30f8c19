package kraken

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type param struct {
	key   string
	value string
}

// Params is an ordered set of request parameters. Encode walks the keys in
// insertion order, so the bytes signed and the bytes sent are the same.
// The zero value is ready to use.
type Params struct {
	items []param
}

// NewParams builds Params from alternating key/value arguments.
func NewParams(kv ...interface{}) Params {
	var p Params
	for i := 0; i+1 < len(kv); i += 2 {
		p.Set(fmt.Sprint(kv[i]), kv[i+1])
	}
	return p
}

// Set stores value under key. A key keeps its first position when it is set
// again. A nil value, nil pointer or empty slice means absent and removes the key.
// Pointers are dereferenced and slices are joined with commas.
func (p *Params) Set(key string, value interface{}) {
	s, ok := formatValue(value)
	if !ok {
		p.Del(key)
		return
	}
	for i := range p.items {
		if p.items[i].key == key {
			p.items[i].value = s
			return
		}
	}
	p.items = append(p.items, param{key: key, value: s})
}

// SetFirst stores value under key at the front.
func (p *Params) SetFirst(key, value string) {
	p.Del(key)
	p.items = append([]param{{key: key, value: value}}, p.items...)
}

func (p Params) Get(key string) string {
	for _, it := range p.items {
		if it.key == key {
			return it.value
		}
	}
	return ""
}

func (p Params) Has(key string) bool {
	for _, it := range p.items {
		if it.key == key {
			return true
		}
	}
	return false
}

func (p *Params) Del(key string) {
	for i, it := range p.items {
		if it.key == key {
			p.items = append(p.items[:i:i], p.items[i+1:]...)
			return
		}
	}
}

func (p Params) Len() int { return len(p.items) }

func (p Params) Keys() []string {
	keys := make([]string, len(p.items))
	for i, it := range p.items {
		keys[i] = it.key
	}
	return keys
}

// Clone returns a copy that shares nothing with p.
func (p Params) Clone() Params {
	if p.items == nil {
		return Params{}
	}
	items := make([]param, len(p.items))
	copy(items, p.items)
	return Params{items: items}
}

// Encode returns key=value pairs joined by '&', form encoded.
func (p Params) Encode() string {
	var b strings.Builder
	for i, it := range p.items {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(it.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(it.value))
	}
	return b.String()
}

func (p Params) String() string { return p.Encode() }

func formatValue(value interface{}) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case *int64:
		if v == nil {
			return "", false
		}
		return strconv.FormatInt(*v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case decimal.Decimal:
		return v.String(), true
	case *decimal.Decimal:
		if v == nil {
			return "", false
		}
		return v.String(), true
	case time.Time:
		if v.IsZero() {
			return "", false
		}
		return strconv.FormatInt(v.Unix(), 10), true
	case []string:
		if len(v) == 0 {
			return "", false
		}
		return strings.Join(v, ","), true
	case fmt.Stringer:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr && rv.IsNil() {
			return "", false
		}
		return v.String(), true
	default:
		return formatKind(reflect.ValueOf(v))
	}
}

// formatKind covers named types, other pointers and slices by their kind.
func formatKind(rv reflect.Value) (string, bool) {
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return "", false
		}
		return formatValue(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		parts := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			if s, ok := formatValue(rv.Index(i).Interface()); ok {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return "", false
		}
		return strings.Join(parts, ","), true
	case reflect.String:
		return rv.String(), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, rv.Type().Bits()), true
	}
	return fmt.Sprint(rv.Interface()), true
}
