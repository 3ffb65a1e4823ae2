package smoke

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var placeholder = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// runContext は実行中のステップ結果と変数を保持します
type runContext struct {
	steps map[string]*Response
	vars  map[string]interface{}
}

func newRunContext(vars map[string]interface{}) *runContext {
	ctx := &runContext{
		steps: make(map[string]*Response),
		vars:  make(map[string]interface{}, len(vars)),
	}
	for k, v := range vars {
		ctx.vars[k] = v
	}
	return ctx
}

// FieldPath は "key|0|key" 形式を分解した、JSON 値をたどるための経路です
type FieldPath []string

// ParseFieldPath は "|" 区切りの文字列を FieldPath に変換します。空の要素は無視します
func ParseFieldPath(s string) FieldPath {
	var path FieldPath
	for _, part := range strings.Split(s, "|") {
		if part = strings.TrimSpace(part); part != "" {
			path = append(path, part)
		}
	}
	return path
}

// String は "|" 区切りの形式に戻します
func (p FieldPath) String() string {
	return strings.Join(p, "|")
}

// Lookup は経路に沿って値をたどります。空の経路は value をそのまま返します
func (p FieldPath) Lookup(value interface{}) (interface{}, error) {
	for depth, key := range p {
		next, err := child(value, key)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", FieldPath(p[:depth+1]), err)
		}
		value = next
	}
	return value, nil
}

// child はオブジェクトのキーまたは配列の添字で1段下の値を返します
func child(value interface{}, key string) (interface{}, error) {
	if obj, ok := value.(map[string]interface{}); ok {
		v, found := obj[key]
		if !found {
			return nil, errors.New("no such key")
		}
		return v, nil
	}

	list, ok := value.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%T has no fields", value)
	}
	n, err := strconv.Atoi(key)
	if err != nil || n < 0 || n >= len(list) {
		return nil, fmt.Errorf("index out of range [0,%d)", len(list))
	}
	return list[n], nil
}

// resolve は1つのプレースホルダーの値を返します
func (c *runContext) resolve(expr string) (interface{}, error) {
	expr = strings.TrimSpace(expr)

	if stepName, path, ok := strings.Cut(expr, "|"); ok {
		stepName = strings.TrimSpace(stepName)
		resp, ok := c.steps[stepName]
		if !ok {
			return nil, fmt.Errorf("step %q has not run", stepName)
		}
		if resp.Err != nil {
			return nil, fmt.Errorf("step %q failed", stepName)
		}
		value, err := ParseFieldPath(path).Lookup(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to extract from step %q: %w", stepName, err)
		}
		return value, nil
	}

	if val, ok := c.vars[expr]; ok {
		return val, nil
	}
	return nil, fmt.Errorf("variable %q not found", expr)
}

// substituteString は文字列中のプレースホルダーを置換します
func (c *runContext) substituteString(input string) (string, error) {
	var firstErr error
	result := placeholder.ReplaceAllStringFunc(input, func(match string) string {
		value, err := c.resolve(match[2 : len(match)-2])
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return match
		}
		return fmt.Sprintf("%v", value)
	})
	return result, firstErr
}

// substituteMap はマップの各値を置換した新しいマップを返します
func (c *runContext) substituteMap(m map[string]string) (map[string]string, error) {
	result := make(map[string]string, len(m))
	for k, v := range m {
		substituted, err := c.substituteString(v)
		if err != nil {
			return nil, err
		}
		result[k] = substituted
	}
	return result, nil
}

// substituteValue はボディを再帰的に置換します。
// 文字列全体が1つのプレースホルダーの場合は、元の型（数値など）のまま埋め込みます
func (c *runContext) substituteValue(v interface{}) (interface{}, error) {
	switch val := v.(type) {
	case string:
		if loc := placeholder.FindStringSubmatchIndex(val); loc != nil && loc[0] == 0 && loc[1] == len(val) {
			return c.resolve(val[loc[2]:loc[3]])
		}
		return c.substituteString(val)

	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			substituted, err := c.substituteValue(item)
			if err != nil {
				return nil, err
			}
			out[k] = substituted
		}
		return out, nil

	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			substituted, err := c.substituteValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = substituted
		}
		return out, nil

	default:
		return v, nil
	}
}
