// FILE: lixenwraith/alog/formatter/join.go
package formatter

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/davecgh/go-spew/spew"
)

// dumper renders composite values compactly on one logical block
var dumper = &spew.ConfigState{
	Indent:                  " ",
	MaxDepth:                10,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Join converts args to a single space separated message.
// Scalars are rendered directly; structs, maps, slices and pointers fall back to a spew dump.
func Join(args ...any) string {
	buf := make([]byte, 0, 64)
	for i, arg := range args {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = appendValue(buf, arg)
	}
	return string(buf)
}

// appendValue appends the textual form of v
func appendValue(buf []byte, v any) []byte {
	switch val := v.(type) {
	case string:
		return append(buf, val...)
	case int:
		return strconv.AppendInt(buf, int64(val), 10)
	case int32:
		return strconv.AppendInt(buf, int64(val), 10)
	case int64:
		return strconv.AppendInt(buf, val, 10)
	case uint:
		return strconv.AppendUint(buf, uint64(val), 10)
	case uint32:
		return strconv.AppendUint(buf, uint64(val), 10)
	case uint64:
		return strconv.AppendUint(buf, val, 10)
	case float32:
		return strconv.AppendFloat(buf, float64(val), 'f', -1, 32)
	case float64:
		return strconv.AppendFloat(buf, val, 'f', -1, 64)
	case bool:
		return strconv.AppendBool(buf, val)
	case nil:
		return append(buf, "nil"...)
	case time.Time:
		return val.AppendFormat(buf, time.RFC3339Nano)
	case time.Duration:
		return append(buf, val.String()...)
	case error:
		return append(buf, val.Error()...)
	case fmt.Stringer:
		return append(buf, val.String()...)
	case []byte:
		return hex.AppendEncode(buf, val)
	default:
		var b bytes.Buffer
		dumper.Fdump(&b, val)
		// Trim trailing new line added by spew
		return append(buf, bytes.TrimSpace(b.Bytes())...)
	}
}
