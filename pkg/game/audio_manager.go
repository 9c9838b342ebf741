package game

import (
	"encoding/binary"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleRate 音频采样率
const SampleRate = 48000

// 音效ID
const (
	SoundHit     = "hit"     // 命中
	SoundMiss    = "miss"    // 未命中
	SoundWarning = "warning" // 最后几秒的倒计时提示
	SoundFinish  = "finish"  // 回合结束
)

// Tone 一段合成音效的参数
// 频率在持续时间内从 StartHz 线性滑到 EndHz，音量按指数包络衰减
type Tone struct {
	StartHz  float64
	EndHz    float64
	Duration time.Duration
	Decay    float64 // 包络衰减速率(每秒)
	Gain     float64 // 峰值增益 0..1
}

// defaultTones 内置音效，运行时合成，不依赖音频资源文件
var defaultTones = map[string]Tone{
	SoundHit:     {StartHz: 660, EndHz: 990, Duration: 120 * time.Millisecond, Decay: 18, Gain: 0.5},
	SoundMiss:    {StartHz: 220, EndHz: 160, Duration: 90 * time.Millisecond, Decay: 25, Gain: 0.35},
	SoundWarning: {StartHz: 880, EndHz: 880, Duration: 60 * time.Millisecond, Decay: 30, Gain: 0.3},
	SoundFinish:  {StartHz: 523, EndHz: 262, Duration: 400 * time.Millisecond, Decay: 5, Gain: 0.5},
}

// Tones 返回内置音效表的副本，终端前端也使用同一组参数
func Tones() map[string]Tone {
	out := make(map[string]Tone, len(defaultTones))
	for id, tone := range defaultTones {
		out[id] = tone
	}
	return out
}

// SynthesizePCM 把音效合成为 16 位小端立体声 PCM
func SynthesizePCM(tone Tone, sampleRate int) []byte {
	n := int(tone.Duration.Seconds() * float64(sampleRate))
	if n <= 0 {
		return nil
	}

	buf := make([]byte, n*4)
	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		progress := float64(i) / float64(n)
		freq := tone.StartHz + (tone.EndHz-tone.StartHz)*progress
		phase += 2 * math.Pi * freq / float64(sampleRate)

		// 末尾 5ms 线性收尾，避免爆音
		tail := math.Min(1, float64(n-i)/(0.005*float64(sampleRate)))
		amp := tone.Gain * math.Exp(-tone.Decay*t) * tail
		v := int16(math.Sin(phase) * amp * math.MaxInt16)

		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}

// AudioManager 音频管理器
// 职责：
//   - 统一管理所有音效的播放
//   - 实现音量控制（从 SettingsManager 读取设置）
//
// audioContext 为 nil 时所有播放请求静默失败(测试与无声环境)
type AudioManager struct {
	audioContext    *audio.Context
	settingsManager *SettingsManager
	soundPlayers    map[string]*audio.Player // 音效播放器缓存（音效ID -> 播放器）
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，可为 nil
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		audioContext:    ctx,
		settingsManager: sm,
		soundPlayers:    make(map[string]*audio.Player),
	}
}

// PlaySound 播放音效，返回是否成功播放
func (am *AudioManager) PlaySound(soundID string) bool {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	player := am.getSoundPlayer(soundID)
	if player == nil {
		return false
	}

	player.SetVolume(am.getSoundVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()
	return true
}

// SetSoundVolume 设置音效音量并应用到已缓存的播放器
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
	v := am.getSoundVolume()
	for _, player := range am.soundPlayers {
		player.SetVolume(v)
	}
}

// GetSoundVolume 当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	return am.getSoundVolume()
}

// PreloadSounds 预先合成全部内置音效
func (am *AudioManager) PreloadSounds() {
	for id := range defaultTones {
		am.getSoundPlayer(id)
	}
}

func (am *AudioManager) getSoundPlayer(soundID string) *audio.Player {
	if player, ok := am.soundPlayers[soundID]; ok {
		return player
	}
	if am.audioContext == nil {
		return nil
	}

	tone, ok := defaultTones[soundID]
	if !ok {
		log.Printf("[AudioManager] Warning: unknown sound %s", soundID)
		return nil
	}

	player := am.audioContext.NewPlayerFromBytes(SynthesizePCM(tone, am.audioContext.SampleRate()))
	am.soundPlayers[soundID] = player
	return player
}

func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager == nil {
		return DefaultSettings().SoundVolume
	}
	return am.settingsManager.GetSettings().SoundVolume
}
