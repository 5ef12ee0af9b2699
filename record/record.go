// Package record stores pointer events as JSON lines and reads them back.
package record

import (
	"fmt"
	"io"
	"time"

	jsoniter "github.com/json-iterator/go"

	pointers "github.com/doingharm/go-pointer-bus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Entry is one recorded event. Offset is the time since the recording started.
type Entry struct {
	Offset time.Duration  `json:"offset"`
	Device string         `json:"device,omitempty"`
	Event  pointers.Event `json:"event"`
}

type Recorder struct {
	enc   *jsoniter.Encoder
	start time.Time
	now   func() time.Time
}

func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{
		enc:   json.NewEncoder(w),
		start: time.Now(),
		now:   time.Now,
	}
}

func (r *Recorder) Record(device string, ev pointers.Event) error {
	entry := Entry{
		Offset: r.now().Sub(r.start),
		Device: device,
		Event:  ev,
	}
	if err := r.enc.Encode(entry); err != nil {
		return fmt.Errorf("record event: %w", err)
	}
	return nil
}

type Player struct {
	dec *jsoniter.Decoder
}

func NewPlayer(r io.Reader) *Player {
	return &Player{dec: json.NewDecoder(r)}
}

// Next returns the next entry, or io.EOF once the recording is exhausted.
func (p *Player) Next() (entry Entry, err error) {
	if !p.dec.More() {
		return entry, io.EOF
	}
	if err = p.dec.Decode(&entry); err != nil {
		return entry, fmt.Errorf("replay event: %w", err)
	}
	return entry, nil
}

// ReadAll reads every entry of a recording.
func ReadAll(r io.Reader) (entries []Entry, err error) {
	p := NewPlayer(r)
	for {
		entry, err := p.Next()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return entries, err
		}
		entries = append(entries, entry)
	}
}
