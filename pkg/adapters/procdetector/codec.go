package procdetector

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Protocol selects the wire format spoken with the detector process.
type Protocol string

const (
	// ProtocolJSON exchanges one JSON object per line; frame bytes are base64.
	ProtocolJSON Protocol = "json"
	// ProtocolMsgpack exchanges MessagePack messages, each preceded by a
	// 4-byte big-endian length; frame bytes travel raw.
	ProtocolMsgpack Protocol = "msgpack"
)

// ParseProtocol validates a protocol name. The empty string selects JSON.
func ParseProtocol(s string) (Protocol, bool) {
	switch Protocol(strings.ToLower(strings.TrimSpace(s))) {
	case ProtocolJSON, "":
		return ProtocolJSON, true
	case ProtocolMsgpack:
		return ProtocolMsgpack, true
	default:
		return ProtocolJSON, false
	}
}

// maxMessage bounds a single framed message.
const maxMessage = 64 << 20

// Request is sent once per frame.
type Request struct {
	FrameData []byte      `json:"frame_data" msgpack:"frame_data"`
	Width     int         `json:"width" msgpack:"width"`
	Height    int         `json:"height" msgpack:"height"`
	Seq       uint64      `json:"seq" msgpack:"seq"`
	Meta      RequestMeta `json:"meta" msgpack:"meta"`
}

// RequestMeta identifies the sending detector instance.
type RequestMeta struct {
	InstanceID string  `json:"instance_id" msgpack:"instance_id"`
	Confidence float64 `json:"confidence" msgpack:"confidence"`
}

// Response carries the detections for one request, or an error message.
type Response struct {
	Seq        uint64    `json:"seq" msgpack:"seq"`
	Detections []WireBox `json:"detections" msgpack:"detections"`
	Error      string    `json:"error,omitempty" msgpack:"error,omitempty"`
}

// WireBox is a detection in frame pixel coordinates.
type WireBox struct {
	X1         float64 `json:"x1" msgpack:"x1"`
	Y1         float64 `json:"y1" msgpack:"y1"`
	X2         float64 `json:"x2" msgpack:"x2"`
	Y2         float64 `json:"y2" msgpack:"y2"`
	ClassName  string  `json:"class_name" msgpack:"class_name"`
	Confidence float64 `json:"confidence" msgpack:"confidence"`
}

// WriteMessage encodes v onto w in protocol p.
func WriteMessage(w io.Writer, p Protocol, v interface{}) error {
	switch p {
	case ProtocolMsgpack:
		data, err := msgpack.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal msgpack: %w", err)
		}
		var prefix [4]byte
		binary.BigEndian.PutUint32(prefix[:], uint32(len(data)))
		if _, err := w.Write(prefix[:]); err != nil {
			return fmt.Errorf("write length prefix: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("write msgpack data: %w", err)
		}
		return nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("write json line: %w", err)
		}
		return nil
	}
}

// ReadMessage decodes the next message from r in protocol p into v.
// Blank lines between JSON messages are skipped.
func ReadMessage(r *bufio.Reader, p Protocol, v interface{}) error {
	switch p {
	case ProtocolMsgpack:
		var prefix [4]byte
		if _, err := io.ReadFull(r, prefix[:]); err != nil {
			return err
		}
		n := binary.BigEndian.Uint32(prefix[:])
		if n > maxMessage {
			return fmt.Errorf("message of %d bytes exceeds limit", n)
		}
		data := make([]byte, n)
		if _, err := io.ReadFull(r, data); err != nil {
			return fmt.Errorf("read msgpack data: %w", err)
		}
		if err := msgpack.Unmarshal(data, v); err != nil {
			return fmt.Errorf("unmarshal msgpack: %w", err)
		}
		return nil
	default:
		for {
			line, err := r.ReadBytes('\n')
			line = bytes.TrimSpace(line)
			if len(line) > 0 {
				if uerr := json.Unmarshal(line, v); uerr != nil {
					return fmt.Errorf("unmarshal json: %w", uerr)
				}
				return nil
			}
			if err != nil {
				return err
			}
		}
	}
}
