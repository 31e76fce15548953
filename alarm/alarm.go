// Package alarm plays the completion beeps through the system speaker and
// falls back to a visible notification when audio is unavailable.
package alarm

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// ErrUnavailable indicates tones cannot be produced on this system.
var ErrUnavailable = errors.New("alarm unavailable")

const (
	SampleRate = beep.SampleRate(44100)

	ToneLength = 200 * time.Millisecond
	GapLength  = 150 * time.Millisecond

	// toneGain scales the sine amplitude to 0.2.
	toneGain = -0.8
)

// Notifier shows a message to the user when the tones cannot be played.
type Notifier interface {
	Notify(title, message string)
}

// Player implements the timer alarm sink.
type Player struct {
	speakerLock sync.Mutex
	sampleRate  beep.SampleRate
	output      func(...beep.Streamer)
	initErr     error

	fallbackLock sync.Mutex
	fallback     Notifier
}

// NewPlayer initializes the speaker. A failed init is logged and every later
// alarm goes to the fallback notifier instead.
func NewPlayer() *Player {
	var initErr error
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		log.Printf("Audio disabled: failed to initialize speaker: %v", err)
		initErr = fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return newPlayer(SampleRate, speaker.Play, initErr)
}

func newPlayer(sr beep.SampleRate, output func(...beep.Streamer), initErr error) *Player {
	return &Player{sampleRate: sr, output: output, initErr: initErr}
}

// SetFallback sets the notifier used when tones cannot be played.
func (p *Player) SetFallback(n Notifier) {
	p.fallbackLock.Lock()
	defer p.fallbackLock.Unlock()
	p.fallback = n
}

// Alarm queues beeps tones of frequencyHz and returns immediately. It never panics.
func (p *Player) Alarm(beeps int, frequencyHz float64) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("alarm: recovered from panic: %v", r)
			p.notify()
		}
	}()

	if err := p.play(beeps, frequencyHz); err != nil {
		log.Printf("alarm: %v", err)
		p.notify()
	}
}

func (p *Player) play(beeps int, frequencyHz float64) error {
	if p.initErr != nil {
		return p.initErr
	}
	seq, err := Sequence(p.sampleRate, beeps, frequencyHz)
	if err != nil {
		return err
	}

	p.speakerLock.Lock()
	defer p.speakerLock.Unlock()
	p.output(seq)
	return nil
}

func (p *Player) notify() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("alarm: fallback notifier panicked: %v", r)
		}
	}()

	p.fallbackLock.Lock()
	n := p.fallback
	p.fallbackLock.Unlock()
	if n == nil {
		log.Printf("alarm: time's up! (no notifier)")
		return
	}
	n.Notify("PomoTimer", "Time's up!")
}

// Sequence builds beeps sine tones separated by silent gaps.
func Sequence(sr beep.SampleRate, beeps int, frequencyHz float64) (beep.Streamer, error) {
	if beeps <= 0 || frequencyHz <= 0 {
		return nil, fmt.Errorf("%d beeps at %.0fHz: %w", beeps, frequencyHz, ErrUnavailable)
	}
	if frequencyHz*2 >= float64(sr) {
		return nil, fmt.Errorf("%.0fHz above nyquist for %d: %w", frequencyHz, sr, ErrUnavailable)
	}

	parts := make([]beep.Streamer, 0, beeps*2)
	for i := 0; i < beeps; i++ {
		tone, err := generators.SineTone(sr, frequencyHz)
		if err != nil {
			return nil, fmt.Errorf("sine tone: %w", err)
		}
		parts = append(parts,
			beep.Take(sr.N(ToneLength), &effects.Gain{Streamer: tone, Gain: toneGain}),
			beep.Silence(sr.N(GapLength)),
		)
	}
	return beep.Seq(parts...), nil
}
