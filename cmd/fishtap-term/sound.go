package main

import (
	"math"
	"time"

	"github.com/decker502/fishtap/pkg/game"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(game.SampleRate)

// toneStreamer 按 game.Tone 的参数实时合成滑音
type toneStreamer struct {
	tone  game.Tone
	total int
	pos   int
	phase float64
}

func newToneStreamer(tone game.Tone) *toneStreamer {
	return &toneStreamer{tone: tone, total: sampleRate.N(tone.Duration)}
}

func (s *toneStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		t := float64(s.pos) / float64(sampleRate)
		progress := float64(s.pos) / float64(s.total)
		freq := s.tone.StartHz + (s.tone.EndHz-s.tone.StartHz)*progress
		s.phase += 2 * math.Pi * freq / float64(sampleRate)

		v := math.Sin(s.phase) * s.tone.Gain * math.Exp(-s.tone.Decay*t)
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
	}
	return len(samples), true
}

func (s *toneStreamer) Err() error { return nil }

// soundPlayer 终端下的音效输出
// 初始化失败时静默，游戏照常进行
type soundPlayer struct {
	tones   map[string]game.Tone
	enabled bool
	mixer   *beep.Mixer
}

func newSoundPlayer(enabled bool) *soundPlayer {
	p := &soundPlayer{tones: game.Tones(), mixer: &beep.Mixer{}}
	if !enabled {
		return p
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return p
	}
	speaker.Play(p.mixer)
	p.enabled = true
	return p
}

// streamerFor 定频音直接使用正弦发生器，滑音使用 toneStreamer
func (p *soundPlayer) streamerFor(tone game.Tone) beep.Streamer {
	if tone.StartHz == tone.EndHz {
		sine, err := generators.SineTone(sampleRate, tone.StartHz)
		if err == nil {
			return &effects.Gain{
				Streamer: beep.Take(sampleRate.N(tone.Duration), sine),
				Gain:     tone.Gain - 1,
			}
		}
	}
	return newToneStreamer(tone)
}

func (p *soundPlayer) play(id string) {
	if !p.enabled {
		return
	}
	tone, ok := p.tones[id]
	if !ok {
		return
	}
	speaker.Lock()
	p.mixer.Add(p.streamerFor(tone))
	speaker.Unlock()
}

func (p *soundPlayer) close() {
	if p.enabled {
		speaker.Clear()
		speaker.Close()
	}
}
