// Package parser converts raw ECU realtime-data frames to structured
// readings and maps each reading field to its publish topic suffix.
//
// Frame wire format ('A' command response, confirmation byte stripped):
//
//	offset  0..40   41 single-byte scalars
//	offset 41..56   16-byte CAN input block, 8 low/high byte pairs
//	offset 57..58   TPS ADC, next error
package parser

import (
	"log"

	"EcuLink/internal/model"
)

// FrameDataLen is the number of data bytes in a full frame after the
// leading confirmation byte has been stripped.
const FrameDataLen = 59

// frameReader walks a frame buffer sequentially. Reads past the end of
// the buffer yield zero and mark the frame short.
type frameReader struct {
	buf   []byte
	off   int
	short bool
}

func (f *frameReader) next() byte {
	if f.off < len(f.buf) {
		b := f.buf[f.off]
		f.off++
		return b
	}
	f.short = true
	return 0
}

// DecodeFrame decodes the data bytes of one realtime frame into a Reading.
// A buffer shorter than FrameDataLen decodes the missing fields to zero;
// a diagnostic is logged but decoding never fails.
func DecodeFrame(data []byte) model.Reading {
	f := frameReader{buf: data}

	r := model.Reading{
		SecL:              f.next(),
		Status1:           f.next(),
		Engine:            f.next(),
		Dwell:             f.next(),
		MAPLow:            f.next(),
		MAPHigh:           f.next(),
		MAT:               f.next(),
		CoolantADC:        f.next(),
		BatCorrection:     f.next(),
		Battery10:         f.next(),
		O2Primary:         f.next(),
		EGOCorrection:     f.next(),
		IATCorrection:     f.next(),
		WUECorrection:     f.next(),
		RPMLow:            f.next(),
		RPMHigh:           f.next(),
		TAEAmount:         f.next(),
		Corrections:       f.next(),
		VE:                f.next(),
		AFRTarget:         f.next(),
		PW1Low:            f.next(),
		PW1High:           f.next(),
		TPSDot:            f.next(),
		Advance:           f.next(),
		TPS:               f.next(),
		LoopsLow:          f.next(),
		LoopsHigh:         f.next(),
		FreeRAMLow:        f.next(),
		FreeRAMHigh:       f.next(),
		BoostTarget:       f.next(),
		BoostDuty:         f.next(),
		Spark:             f.next(),
		RPMDotLow:         f.next(),
		RPMDotHigh:        f.next(),
		EthanolPct:        f.next(),
		FlexCorrection:    f.next(),
		FlexIgnCorrection: f.next(),
		IdleLoad:          f.next(),
		TestOutputs:       f.next(),
		O2Secondary:       f.next(),
		Baro:              f.next(),
	}
	for i := range r.CANIn {
		r.CANIn[i] = f.next()
	}
	r.TPSADC = f.next()
	r.NextError = f.next()

	if f.short {
		log.Printf("frame decode: short frame, got %d of %d data bytes, remainder zero-filled",
			len(data), FrameDataLen)
	}
	return r
}
