package utils

import (
	"database/sql/driver"
	"fmt"
	"path/filepath"
	"reflect"
	"runtime"
	"strconv"
	"strings"
	"time"
)

var datalayerSourceDir string

func init() {
	_, file, _, _ := runtime.Caller(0)
	// compatible solution to get datalayer source directory with various operating systems
	datalayerSourceDir = sourceDir(file)
}

func sourceDir(file string) string {
	dir := filepath.Dir(file)
	dir = filepath.Dir(dir)
	return filepath.ToSlash(dir) + "/"
}

// FileWithLineNum return the file name and line number of the current file
func FileWithLineNum() string {
	pc := CallerFrame().PC
	if pc == 0 {
		return ""
	}
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	return frame.File + ":" + strconv.FormatInt(int64(frame.Line), 10)
}

// CallerFrame return the first frame outside of datalayer internals, test files excepted
func CallerFrame() runtime.Frame {
	pcs := [13]uintptr{}
	// the second caller usually from datalayer internal, so set i start from 2
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if !strings.HasPrefix(frame.File, datalayerSourceDir) || strings.HasSuffix(frame.File, "_test.go") {
			return frame
		}
		if !more {
			break
		}
	}
	return runtime.Frame{}
}

// IsInteger reports whether value holds any of the integer kinds
func IsInteger(value interface{}) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

// IsBlank reports whether value is considered empty: nil, empty or "0"
// strings, zero numbers, false, zero times and empty slices or maps
func IsBlank(value interface{}) bool {
	if valuer, ok := value.(driver.Valuer); ok {
		value, _ = valuer.Value()
	}

	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == "" || v == "0"
	case []byte:
		return len(v) == 0 || string(v) == "0"
	case bool:
		return !v
	case time.Time:
		return v.IsZero()
	case *time.Time:
		return v == nil || v.IsZero()
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return true
		}
		return IsBlank(rv.Elem().Interface())
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	default:
		return rv.IsZero()
	}
}

// ToString renders value for use in url-encoded parameter lists
func ToString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	case nil:
		return ""
	}
	return fmt.Sprint(value)
}
