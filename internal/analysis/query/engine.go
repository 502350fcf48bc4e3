package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
)

// Evaluate compiles and runs one expression against the supplied
// environment. Panics raised during evaluation are recovered and returned
// as errors; the expression text itself is never inspected beyond what
// compilation rejects.
func Evaluate(code string, env map[string]any) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("evaluate: %v", r)
		}
	}()

	if strings.TrimSpace(code) == "" {
		return nil, errors.New("empty expression")
	}

	program, err := expr.Compile(code, expr.Env(env))
	if err != nil {
		return nil, err
	}
	return expr.Run(program, env)
}

// FormatValue renders an evaluation result as the chat answer text. A nil
// result yields the empty string; callers substitute their own fallback.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return formatFloat(val)
	case float32:
		return formatFloat(float64(val))
	case []string:
		return strings.Join(val, ", ")
	case []float64:
		parts := make([]string, len(val))
		for i, f := range val {
			parts[i] = formatFloat(f)
		}
		return strings.Join(parts, ", ")
	case []ValueCount:
		var b strings.Builder
		for i, vc := range val {
			if i > 0 {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "%s: %d", vc.Value, vc.Count)
		}
		return b.String()
	case *Chart:
		return fmt.Sprintf("[%s chart]", val.Kind())
	default:
		return fmt.Sprintf("%v", val)
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
