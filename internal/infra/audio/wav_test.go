package audio

import (
	"bytes"
	"encoding/binary"
	"os"
	"testing"
)

// writeStereoWAV writes a 16-bit PCM stereo WAV file for decoder and
// engine tests. left and right must have equal length.
func writeStereoWAV(t *testing.T, path string, left, right []int16, sampleRate int) {
	t.Helper()
	if len(left) != len(right) {
		t.Fatalf("channel length mismatch: %d vs %d", len(left), len(right))
	}

	var buf bytes.Buffer

	const channels = 2
	dataSize := len(left) * channels * 2
	fileSize := 36 + dataSize

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, int32(fileSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, int32(16))
	binary.Write(&buf, binary.LittleEndian, int16(1))
	binary.Write(&buf, binary.LittleEndian, int16(channels))
	binary.Write(&buf, binary.LittleEndian, int32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, int32(sampleRate*channels*2))
	binary.Write(&buf, binary.LittleEndian, int16(channels*2))
	binary.Write(&buf, binary.LittleEndian, int16(16))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, int32(dataSize))
	for i := range left {
		binary.Write(&buf, binary.LittleEndian, left[i])
		binary.Write(&buf, binary.LittleEndian, right[i])
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("writing wav: %v", err)
	}
}
