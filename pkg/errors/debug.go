package errors

import stdErrors "errors"

// DumpInfo captures the unwrapped error chain for structured logging.
type DumpInfo struct {
	Code       Code
	TopMessage string
	Chain      []string
}

// Dump walks the error chain so handlers can log it without losing causes.
func Dump(err error) DumpInfo {
	info := DumpInfo{Code: CodeInternal}
	if err == nil {
		return info
	}

	if typed := As(err); typed != nil {
		info.Code = typed.Code()
	}
	info.TopMessage = err.Error()

	for current := err; current != nil; current = stdErrors.Unwrap(current) {
		info.Chain = append(info.Chain, current.Error())
	}
	return info
}
