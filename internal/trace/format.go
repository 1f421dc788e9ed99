package trace

import (
	"encoding/json"
	"sort"
	"strconv"
	"time"
)

// Format is the encoding of written events.
type Format uint8

const (
	FormatAuto   Format = iota // by output file extension
	FormatText                 // one aligned line per event
	FormatNDJSON               // one JSON object per line
)

// AppendEvent encodes ev in format, appending to buf.
func AppendEvent(buf []byte, ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return appendJSON(buf, ev)
	}
	return appendText(buf, ev)
}

type jsonEvent struct {
	Time      string            `json:"time"`
	Seq       uint64            `json:"seq"`
	Kind      string            `json:"kind"`
	Scope     string            `json:"scope"`
	SpanID    uint64            `json:"span_id,omitempty"`
	ParentID  uint64            `json:"parent_id,omitempty"`
	Name      string            `json:"name"`
	Detail    string            `json:"detail,omitempty"`
	ElapsedUS int64             `json:"elapsed_us,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`
}

func appendJSON(buf []byte, ev *Event) []byte {
	data, err := json.Marshal(jsonEvent{
		Time:      ev.Time.UTC().Format(time.RFC3339Nano),
		Seq:       ev.Seq,
		Kind:      ev.Kind.String(),
		Scope:     ev.Scope.String(),
		SpanID:    ev.SpanID,
		ParentID:  ev.ParentID,
		Name:      ev.Name,
		Detail:    ev.Detail,
		ElapsedUS: ev.Elapsed.Microseconds(),
		Extra:     ev.Extra,
	})
	if err != nil {
		// строки и числа не дают ошибок, но событие терять нельзя
		data = strconv.AppendQuote([]byte(`{"error":`), err.Error())
		data = append(data, '}')
	}
	buf = append(buf, data...)
	return append(buf, '\n')
}

// appendText writes
//
//	15:04:05.000000 #12 begin pass   relativize span=3 parent=1 detail k=v
func appendText(buf []byte, ev *Event) []byte {
	buf = ev.Time.AppendFormat(buf, "15:04:05.000000")
	buf = append(buf, " #"...)
	buf = strconv.AppendUint(buf, ev.Seq, 10)
	buf = append(buf, ' ')
	buf = appendPadded(buf, ev.Kind.String(), 5)
	buf = append(buf, ' ')
	buf = appendPadded(buf, ev.Scope.String(), 6)
	buf = append(buf, ' ')
	buf = append(buf, ev.Name...)
	if ev.SpanID != 0 {
		buf = append(buf, " span="...)
		buf = strconv.AppendUint(buf, ev.SpanID, 10)
	}
	if ev.ParentID != 0 {
		buf = append(buf, " parent="...)
		buf = strconv.AppendUint(buf, ev.ParentID, 10)
	}
	if ev.Kind == KindSpanEnd {
		buf = append(buf, " took="...)
		buf = append(buf, ev.Elapsed.String()...)
	}
	if ev.Detail != "" {
		buf = append(buf, ' ')
		buf = strconv.AppendQuote(buf, ev.Detail)
	}
	if len(ev.Extra) > 0 {
		keys := make([]string, 0, len(ev.Extra))
		for k := range ev.Extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			buf = append(buf, ' ')
			buf = append(buf, k...)
			buf = append(buf, '=')
			buf = append(buf, ev.Extra[k]...)
		}
	}
	return append(buf, '\n')
}

func appendPadded(buf []byte, s string, width int) []byte {
	buf = append(buf, s...)
	for i := len(s); i < width; i++ {
		buf = append(buf, ' ')
	}
	return buf
}
