package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EcuLink/internal/model"
)

// sequentialFrame returns a full data frame where every byte equals its
// 1-based offset: 0x01, 0x02, ... 0x3B.
func sequentialFrame() []byte {
	data := make([]byte, FrameDataLen)
	for i := range data {
		data[i] = byte(i + 1)
	}
	return data
}

func TestCombineBytes(t *testing.T) {
	for h := 0; h < 256; h++ {
		for l := 0; l < 256; l++ {
			got := model.CombineBytes(byte(h), byte(l))
			if int(got) != h*256+l {
				t.Fatalf("CombineBytes(%d, %d) = %d, want %d", h, l, got, h*256+l)
			}
		}
	}
}

func TestDecodeFrameGolden(t *testing.T) {
	r := DecodeFrame(sequentialFrame())

	assert.Equal(t, byte(0x01), r.SecL)
	assert.Equal(t, byte(0x02), r.Status1)
	assert.Equal(t, byte(0x03), r.Engine)
	assert.Equal(t, byte(0x04), r.Dwell)
	assert.Equal(t, byte(0x05), r.MAPLow)
	assert.Equal(t, byte(0x06), r.MAPHigh)
	assert.Equal(t, byte(0x07), r.MAT)
	assert.Equal(t, byte(0x08), r.CoolantADC)
	assert.Equal(t, byte(0x09), r.BatCorrection)
	assert.Equal(t, byte(0x0A), r.Battery10)
	assert.Equal(t, byte(0x0B), r.O2Primary)
	assert.Equal(t, byte(0x0C), r.EGOCorrection)
	assert.Equal(t, byte(0x0D), r.IATCorrection)
	assert.Equal(t, byte(0x0E), r.WUECorrection)
	assert.Equal(t, byte(0x0F), r.RPMLow)
	assert.Equal(t, byte(0x10), r.RPMHigh)
	assert.Equal(t, byte(0x11), r.TAEAmount)
	assert.Equal(t, byte(0x12), r.Corrections)
	assert.Equal(t, byte(0x13), r.VE)
	assert.Equal(t, byte(0x14), r.AFRTarget)
	assert.Equal(t, byte(0x15), r.PW1Low)
	assert.Equal(t, byte(0x16), r.PW1High)
	assert.Equal(t, byte(0x17), r.TPSDot)
	assert.Equal(t, byte(0x18), r.Advance)
	assert.Equal(t, byte(0x19), r.TPS)
	assert.Equal(t, byte(0x1A), r.LoopsLow)
	assert.Equal(t, byte(0x1B), r.LoopsHigh)
	assert.Equal(t, byte(0x1C), r.FreeRAMLow)
	assert.Equal(t, byte(0x1D), r.FreeRAMHigh)
	assert.Equal(t, byte(0x1E), r.BoostTarget)
	assert.Equal(t, byte(0x1F), r.BoostDuty)
	assert.Equal(t, byte(0x20), r.Spark)
	assert.Equal(t, byte(0x21), r.RPMDotLow)
	assert.Equal(t, byte(0x22), r.RPMDotHigh)
	assert.Equal(t, byte(0x23), r.EthanolPct)
	assert.Equal(t, byte(0x24), r.FlexCorrection)
	assert.Equal(t, byte(0x25), r.FlexIgnCorrection)
	assert.Equal(t, byte(0x26), r.IdleLoad)
	assert.Equal(t, byte(0x27), r.TestOutputs)
	assert.Equal(t, byte(0x28), r.O2Secondary)
	assert.Equal(t, byte(0x29), r.Baro)
	for i := 0; i < 16; i++ {
		assert.Equal(t, byte(0x2A+i), r.CANIn[i], "CANIn[%d]", i)
	}
	assert.Equal(t, byte(0x3A), r.TPSADC)
	assert.Equal(t, byte(0x3B), r.NextError)
}

func TestDecodeFrameComposites(t *testing.T) {
	r := DecodeFrame(sequentialFrame())

	assert.Equal(t, uint16(0x06*256+0x05), r.MAP())
	assert.Equal(t, uint16(0x10*256+0x0F), r.RPM())
	assert.Equal(t, uint16(0x16*256+0x15), r.PW1())
	assert.Equal(t, uint16(0x1B*256+0x1A), r.LoopsPerSecond())
	assert.Equal(t, uint16(0x1D*256+0x1C), r.FreeRAM())
	assert.Equal(t, uint16(0x22*256+0x21), r.RPMDot())
	for n := 0; n < 8; n++ {
		low := 0x2A + 2*n
		high := low + 1
		assert.Equal(t, uint16(high*256+low), r.CANChannel(n), "channel %d", n)
	}
}

func TestDecodeFrameShortZeroFills(t *testing.T) {
	full := sequentialFrame()
	r := DecodeFrame(full[:10])

	// Bytes that were present decode normally.
	assert.Equal(t, byte(0x01), r.SecL)
	assert.Equal(t, byte(0x0A), r.Battery10)

	// Everything past the available bytes is zero.
	assert.Equal(t, byte(0), r.O2Primary)
	assert.Equal(t, byte(0), r.RPMLow)
	assert.Equal(t, byte(0), r.RPMHigh)
	assert.Equal(t, [16]byte{}, r.CANIn)
	assert.Equal(t, byte(0), r.TPSADC)
	assert.Equal(t, byte(0), r.NextError)
	assert.Equal(t, uint16(0), r.RPM())
}

func TestDecodeFrameEmpty(t *testing.T) {
	r := DecodeFrame(nil)
	require.Equal(t, model.Reading{}, r)
}
