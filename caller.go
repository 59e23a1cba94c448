package xtail

import (
	"path/filepath"
	"runtime"
	"strings"
)

// callSite resolves the logging call site skip frames above the caller of
// callSite. The class is the source file's base name without extension,
// "Unknown" when no frame is available; the method is the enclosing
// function's name without its package path, empty when unavailable.
func callSite(skip int) (class, method string, line int) {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "Unknown", "", 0
	}
	class = strings.TrimSuffix(filepath.Base(file), ".go")
	if fn := runtime.FuncForPC(pc); fn != nil {
		method = fn.Name()
		if i := strings.LastIndexByte(method, '.'); i >= 0 {
			method = method[i+1:]
		}
	}
	return class, method, line
}
