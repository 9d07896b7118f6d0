package ui

import (
	"encoding/binary"
	"time"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/emu"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

const (
	sampleRate = 48000
	beepHz     = 440
	beepVolume = 3000
)

// beepStream implements io.Reader producing 16-bit little-endian stereo
// frames: a square wave while the machine's sound timer is running,
// silence otherwise.
type beepStream struct {
	m   *emu.Machine
	pos int64
}

func (s *beepStream) Read(p []byte) (int, error) {
	const bytesPerFrame = 4
	n := len(p) / bytesPerFrame
	halfPeriod := int64(sampleRate / (2 * beepHz))
	for i := 0; i < n; i++ {
		var v int16
		if s.m.Beeping() {
			v = beepVolume
			if (s.pos/halfPeriod)%2 == 1 {
				v = -beepVolume
			}
		}
		binary.LittleEndian.PutUint16(p[i*bytesPerFrame:], uint16(v))
		binary.LittleEndian.PutUint16(p[i*bytesPerFrame+2:], uint16(v))
		s.pos++
	}
	return n * bytesPerFrame, nil
}

// beeper owns the audio player backing the sound timer.
type beeper struct {
	player *audio.Player
}

func newBeeper(m *emu.Machine, muted bool) *beeper {
	if muted {
		return &beeper{}
	}
	ctx := audio.NewContext(sampleRate)
	p, err := ctx.NewPlayer(&beepStream{m: m})
	if err != nil {
		return &beeper{}
	}
	// Small buffer keeps the beep aligned with the sound timer.
	p.SetBufferSize(40 * time.Millisecond)
	p.Play()
	return &beeper{player: p}
}
