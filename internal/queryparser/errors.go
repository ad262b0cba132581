package queryparser

import (
	"fmt"
	"strconv"

	"josedb/internal/core"
)

func newParseError(format string, args ...any) *core.Error {
	return &core.Error{Kind: core.KindParseError, Message: fmt.Sprintf(format, args...)}
}

func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func parseFloat64(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
