// Package recording accumulates raw call audio in memory and flushes
// it to a WAV file when the call ends.
package recording

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Sink buffers per-call audio and writes recordings to dir.
type Sink struct {
	dir string

	mu      sync.Mutex
	buffers map[string]*callBuffer
}

type callBuffer struct {
	segments     [][]byte
	sampleRateHz int
}

// RecordingInfo describes one stored recording file.
type RecordingInfo struct {
	Filename  string    `json:"filename"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
	URL       string    `json:"url"`
}

// NewSink creates a recording sink rooted at dir.
func NewSink(dir string) (*Sink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create recordings dir: %w", err)
	}
	return &Sink{
		dir:     dir,
		buffers: make(map[string]*callBuffer),
	}, nil
}

// Append buffers one raw audio segment for the call.
func (s *Sink) Append(callID string, audio []byte, sampleRateHz int) {
	if len(audio) == 0 {
		return
	}
	cp := make([]byte, len(audio))
	copy(cp, audio)

	s.mu.Lock()
	defer s.mu.Unlock()
	buf, ok := s.buffers[callID]
	if !ok {
		buf = &callBuffer{sampleRateHz: sampleRateHz}
		s.buffers[callID] = buf
	}
	buf.segments = append(buf.segments, cp)
	if sampleRateHz > 0 {
		buf.sampleRateHz = sampleRateHz
	}
}

// Flush writes the accumulated audio for the call to a WAV file and
// releases the buffer. ok is false when no audio was buffered.
func (s *Sink) Flush(callID string) (path string, ok bool, err error) {
	s.mu.Lock()
	buf := s.buffers[callID]
	delete(s.buffers, callID)
	s.mu.Unlock()

	if buf == nil || len(buf.segments) == 0 {
		return "", false, nil
	}

	total := 0
	for _, seg := range buf.segments {
		total += len(seg)
	}
	pcm := make([]byte, 0, total)
	for _, seg := range buf.segments {
		pcm = append(pcm, seg...)
	}

	filename := fmt.Sprintf("call_%s_%s.wav", sanitize(callID), time.Now().UTC().Format("20060102_150405"))
	path = filepath.Join(s.dir, filename)

	if err := writeWAV(path, pcm, buf.sampleRateHz); err != nil {
		return "", false, err
	}
	return path, true, nil
}

// List returns the stored recordings, newest first.
func (s *Sink) List() ([]RecordingInfo, error) {
	dirents, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read recordings dir: %w", err)
	}

	var out []RecordingInfo
	for _, de := range dirents {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".wav") {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		out = append(out, RecordingInfo{
			Filename:  de.Name(),
			Size:      info.Size(),
			CreatedAt: info.ModTime().UTC(),
			URL:       "/recordings/" + de.Name(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if out == nil {
		out = []RecordingInfo{}
	}
	return out, nil
}

// Path resolves a stored recording filename to its path on disk,
// rejecting names that escape the recordings directory.
func (s *Sink) Path(filename string) (string, bool) {
	if filename == "" || strings.Contains(filename, "/") || strings.Contains(filename, "..") {
		return "", false
	}
	p := filepath.Join(s.dir, filename)
	if _, err := os.Stat(p); err != nil {
		return "", false
	}
	return p, true
}

func sanitize(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, id)
}

// writeWAV wraps raw 16-bit mono PCM in a RIFF/WAVE container.
func writeWAV(path string, pcm []byte, sampleRateHz int) error {
	if sampleRateHz <= 0 {
		sampleRateHz = 16000
	}
	const (
		channels      = 1
		bitsPerSample = 16
	)
	byteRate := sampleRateHz * channels * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav: %w", err)
	}
	defer f.Close()

	var header [44]byte
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+len(pcm)))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], channels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRateHz))
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(len(pcm)))

	if _, err := f.Write(header[:]); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}
	if _, err := f.Write(pcm); err != nil {
		return fmt.Errorf("write wav data: %w", err)
	}
	return f.Sync()
}
