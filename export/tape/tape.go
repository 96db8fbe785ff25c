// Package tape turns tape image blocks into the pulse signal a cassette would carry
package tape

import (
	"io"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/wav"

	"github.com/lixenwraith/bpe/export/tap"
)

// Loader timings in CPU T-states
const (
	clockHz = 3_500_000

	pilotPulse   = 2168
	sync1Pulse   = 667
	sync2Pulse   = 735
	zeroPulse    = 855
	onePulse     = 1710
	headerPilots = 8063
	dataPilots   = 3223
	pauseTStates = clockHz // one second of silence after each block
)

// segment is a stretch of constant signal level
type segment struct {
	tstates float64
	level   float64
}

// signal lays out every block as pilot, sync, data bits and a pause
// Pulses alternate between high and low; pauses are silent
func signal(blocks []tap.Block) []segment {
	var segs []segment
	for _, b := range blocks {
		level := 1.0
		pulse := func(t int) {
			segs = append(segs, segment{tstates: float64(t), level: level})
			level = -level
		}

		pilots := dataPilots
		if b.Flag < 0x80 {
			pilots = headerPilots
		}
		for range pilots {
			pulse(pilotPulse)
		}
		pulse(sync1Pulse)
		pulse(sync2Pulse)

		emit := func(v byte) {
			for bit := 7; bit >= 0; bit-- {
				t := zeroPulse
				if v&(1<<bit) != 0 {
					t = onePulse
				}
				pulse(t)
				pulse(t)
			}
		}
		emit(b.Flag)
		for _, v := range b.Data {
			emit(v)
		}
		emit(b.Checksum())

		segs = append(segs, segment{tstates: pauseTStates})
	}
	return segs
}

// Duration is the playing time of the blocks
func Duration(blocks []tap.Block) time.Duration {
	var total float64
	for _, s := range signal(blocks) {
		total += s.tstates
	}
	return time.Duration(total / clockHz * float64(time.Second))
}

// streamer samples the square wave at the output rate
type streamer struct {
	segs []segment
	idx  int
	left float64 // T-states remaining in segs[idx]
	step float64 // T-states per sample
}

// NewStreamer plays the blocks as a square wave at full scale
func NewStreamer(blocks []tap.Block, rate beep.SampleRate) beep.Streamer {
	s := &streamer{
		segs: signal(blocks),
		step: float64(clockHz) / float64(rate),
	}
	if len(s.segs) > 0 {
		s.left = s.segs[0].tstates
	}
	return s
}

func (s *streamer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.idx >= len(s.segs) {
			return i, i > 0
		}

		level := s.segs[s.idx].level
		samples[i][0] = level
		samples[i][1] = level

		s.left -= s.step
		for s.left <= 0 && s.idx < len(s.segs) {
			s.idx++
			if s.idx < len(s.segs) {
				s.left += s.segs[s.idx].tstates
			}
		}
	}
	return len(samples), true
}

func (s *streamer) Err() error { return nil }

// WriteWAV encodes the tape signal as 16-bit mono at half scale
func WriteWAV(w io.WriteSeeker, blocks []tap.Block, rate beep.SampleRate) error {
	quiet := &effects.Volume{
		Streamer: NewStreamer(blocks, rate),
		Base:     2,
		Volume:   -1,
	}
	format := beep.Format{SampleRate: rate, NumChannels: 1, Precision: 2}
	return wav.Encode(w, quiet, format)
}
