package logger

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// NumericPlaceholder matches postgres style $1 placeholders
var NumericPlaceholder = regexp.MustCompile(`\$(\d+)`)

func isPrintable(s []byte) bool {
	for _, r := range s {
		if !unicode.IsPrint(rune(r)) {
			return false
		}
	}
	return true
}

// ExplainSQL renders sql with vars inlined, for logging only
func ExplainSQL(sql string, numericPlaceholder *regexp.Regexp, escaper string, vars ...interface{}) string {
	formatted := make([]string, len(vars))
	for idx, v := range vars {
		formatted[idx] = explainVar(v, escaper)
	}

	if numericPlaceholder == nil {
		var (
			buf strings.Builder
			idx int
		)
		for i := 0; i < len(sql); i++ {
			if sql[i] == '?' && idx < len(formatted) {
				buf.WriteString(formatted[idx])
				idx++
				continue
			}
			buf.WriteByte(sql[i])
		}
		return buf.String()
	}

	return numericPlaceholder.ReplaceAllStringFunc(sql, func(m string) string {
		n, err := strconv.Atoi(numericPlaceholder.FindStringSubmatch(m)[1])
		if err != nil || n < 1 || n > len(formatted) {
			return m
		}
		return formatted[n-1]
	})
}

func explainVar(v interface{}, escaper string) string {
	if valuer, ok := v.(driver.Valuer); ok {
		v, _ = valuer.Value()
	}

	quote := func(s string) string {
		return escaper + strings.ReplaceAll(s, escaper, "\\"+escaper) + escaper
	}

	switch v := v.(type) {
	case nil:
		return "NULL"
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return quote(v.Format("2006-01-02 15:04:05"))
	case *time.Time:
		if v == nil {
			return "NULL"
		}
		return quote(v.Format("2006-01-02 15:04:05"))
	case []byte:
		if isPrintable(v) {
			return quote(string(v))
		}
		return quote("<binary>")
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float64, float32:
		return fmt.Sprintf("%.6f", v)
	case string:
		return quote(v)
	default:
		return quote(fmt.Sprint(v))
	}
}
