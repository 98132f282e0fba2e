package httprange

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidRange marks a range specification that cannot be satisfied
// against the resource: malformed syntax, start past the end of the
// resource, or an inverted window.
var ErrInvalidRange = errors.New("requested range not satisfiable")

// Range is an inclusive byte window [Start, End] of a resource.
type Range struct {
	Start int64
	End   int64
}

func (r Range) ChunkSize() int64 {
	return r.End - r.Start + 1
}

// ContentRange renders the Content-Range header value for a resource of
// total bytes.
func (r Range) ContentRange(total int64) string {
	return fmt.Sprintf("bytes %d-%d/%d", r.Start, r.End, total)
}

// Unsatisfiable renders the Content-Range value sent with a 416 response.
func Unsatisfiable(total int64) string {
	return fmt.Sprintf("bytes */%d", total)
}

// Parse interprets a Range header value of the form "bytes=<start>-[<end>]"
// against a resource of total bytes. A missing end means "through the last
// byte". Multi-range specifications are rejected. An end past the last byte
// is clamped to it.
func Parse(spec string, total int64) (Range, error) {
	const prefix = "bytes="
	if !strings.HasPrefix(spec, prefix) {
		return Range{}, ErrInvalidRange
	}
	spec = strings.TrimPrefix(spec, prefix)
	if strings.Contains(spec, ",") {
		return Range{}, ErrInvalidRange
	}

	startStr, endStr, found := strings.Cut(spec, "-")
	if !found || startStr == "" {
		return Range{}, ErrInvalidRange
	}

	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil || start < 0 {
		return Range{}, ErrInvalidRange
	}

	end := total - 1
	if endStr != "" {
		end, err = strconv.ParseInt(endStr, 10, 64)
		if err != nil || end < 0 {
			return Range{}, ErrInvalidRange
		}
		if end > total-1 {
			end = total - 1
		}
	}

	if start >= total || end < start {
		return Range{}, ErrInvalidRange
	}

	return Range{Start: start, End: end}, nil
}
