package comms

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Head names a message. The first field is the event or command name.
type Head string

// Fields splits the head on colons.
func (h Head) Fields() []string {
	return strings.Split(string(h), ":")
}

// Message is one unit on the wire: a head and a JSON body.
type Message struct {
	Head Head
	Data []byte
}

// Type is the first field of the head.
func (m Message) Type() string {
	return m.Head.Fields()[0]
}

// Encode makes a message, marshalling data as JSON. A nil data gives an
// empty object, so the other side can always decode into a struct.
func Encode(head string, data interface{}) (Message, error) {
	if data == nil {
		return Message{Head: Head(head), Data: []byte("{}")}, nil
	}
	bytes, err := json.Marshal(data)
	if err != nil {
		return Message{}, fmt.Errorf("encode %s: %w", head, err)
	}
	return Message{Head: Head(head), Data: bytes}, nil
}

// Decode unmarshals the body of a message.
func Decode(msg Message, v interface{}) error {
	if len(msg.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg.Data, v); err != nil {
		return fmt.Errorf("decode %s: %w", msg.Head, err)
	}
	return nil
}

// Frame is the JSON envelope used on websocket text messages.
type Frame struct {
	Head string          `json:"head"`
	Data json.RawMessage `json:"data,omitempty"`
}

// ErrBadFrame is returned for frames without a head.
var ErrBadFrame = errors.New("bad frame")

// MarshalFrame wraps a message in a frame.
func MarshalFrame(msg Message) ([]byte, error) {
	f := Frame{Head: string(msg.Head)}
	if len(msg.Data) > 0 {
		f.Data = json.RawMessage(msg.Data)
	}
	return json.Marshal(f)
}

// UnmarshalFrame unwraps a frame.
func UnmarshalFrame(bytes []byte) (Message, error) {
	f := Frame{}
	if err := json.Unmarshal(bytes, &f); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrBadFrame, err)
	}
	if f.Head == "" {
		return Message{}, fmt.Errorf("%w: no head", ErrBadFrame)
	}
	return Message{Head: Head(f.Head), Data: f.Data}, nil
}

// Encoder writes newline separated frames to a stream.
type Encoder struct {
	w io.Writer
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w}
}

// Encode encodes and sends in one go.
func (e *Encoder) Encode(head string, data interface{}) error {
	msg, err := Encode(head, data)
	if err != nil {
		return err
	}
	return e.Send(msg)
}

// Send writes a message that is already encoded.
func (e *Encoder) Send(msg Message) error {
	bytes, err := MarshalFrame(msg)
	if err != nil {
		return err
	}
	bytes = append(bytes, '\n')
	_, err = e.w.Write(bytes)
	return err
}

// Decoder reads frames written by an Encoder.
type Decoder struct {
	r *bufio.Reader
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{bufio.NewReader(r)}
}

// Decode reads the next frame. At the end of the stream it returns io.EOF.
func (d *Decoder) Decode() (Message, error) {
	line, err := d.r.ReadBytes('\n')
	if err != nil {
		if err == io.EOF && len(line) > 0 {
			return UnmarshalFrame(line)
		}
		return Message{}, err
	}
	return UnmarshalFrame(line)
}
