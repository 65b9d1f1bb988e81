// Package model defines shared data structures for EcuLink.
package model

// Reading is an immutable snapshot of one decoded realtime-data frame.
// Field order matches the wire layout of the legacy 'A' command response:
// 41 single-byte scalars, a 16-byte CAN input block of 8 low/high pairs,
// then 2 trailing scalars.
type Reading struct {
	SecL              byte // counter for +1s
	Status1           byte // status byte 1
	Engine            byte // engine status
	Dwell             byte // dwell time
	MAPLow            byte // low byte of MAP sensor reading
	MAPHigh           byte // high byte of MAP sensor reading
	MAT               byte // manifold air temperature
	CoolantADC        byte // coolant ADC value
	BatCorrection     byte // battery correction
	Battery10         byte // battery voltage * 10
	O2Primary         byte // primary O2 sensor reading * 10
	EGOCorrection     byte // EGO correction
	IATCorrection     byte // IAT correction
	WUECorrection     byte // warm-up enrichment correction
	RPMLow            byte // low byte of RPM
	RPMHigh           byte // high byte of RPM
	TAEAmount         byte // TAE amount
	Corrections       byte // total corrections
	VE                byte // volumetric efficiency
	AFRTarget         byte // AFR target * 10
	PW1Low            byte // low byte of pulse width 1
	PW1High           byte // high byte of pulse width 1
	TPSDot            byte // TPS change per second
	Advance           byte // ignition advance
	TPS               byte // throttle position
	LoopsLow          byte // low byte of loops per second
	LoopsHigh         byte // high byte of loops per second
	FreeRAMLow        byte // low byte of free RAM
	FreeRAMHigh       byte // high byte of free RAM
	BoostTarget       byte // boost target
	BoostDuty         byte // boost duty
	Spark             byte // spark bitfield
	RPMDotLow         byte // low byte of RPM delta
	RPMDotHigh        byte // high byte of RPM delta
	EthanolPct        byte // ethanol percentage
	FlexCorrection    byte // flex fuel correction
	FlexIgnCorrection byte // flex fuel ignition correction
	IdleLoad          byte // idle load
	TestOutputs       byte // test outputs bitfield
	O2Secondary       byte // secondary O2 sensor reading * 10
	Baro              byte // barometric pressure

	CANIn [16]byte // 8 analog input channels, even index low byte, odd index high byte

	TPSADC    byte // TPS ADC value
	NextError byte // next error code
}

// CombineBytes recombines a composite 16-bit quantity stored on the wire
// as two adjacent bytes, low byte first.
func CombineBytes(high, low byte) uint16 {
	return uint16(high)<<8 | uint16(low)
}

// MAP returns the recombined MAP sensor reading.
func (r Reading) MAP() uint16 { return CombineBytes(r.MAPHigh, r.MAPLow) }

// RPM returns the recombined engine speed.
func (r Reading) RPM() uint16 { return CombineBytes(r.RPMHigh, r.RPMLow) }

// PW1 returns the recombined pulse width 1.
func (r Reading) PW1() uint16 { return CombineBytes(r.PW1High, r.PW1Low) }

// LoopsPerSecond returns the recombined main loop rate.
func (r Reading) LoopsPerSecond() uint16 { return CombineBytes(r.LoopsHigh, r.LoopsLow) }

// FreeRAM returns the recombined free memory figure.
func (r Reading) FreeRAM() uint16 { return CombineBytes(r.FreeRAMHigh, r.FreeRAMLow) }

// RPMDot returns the recombined RPM delta.
func (r Reading) RPMDot() uint16 { return CombineBytes(r.RPMDotHigh, r.RPMDotLow) }

// CANChannel returns the recombined analog input channel n in [0,7].
func (r Reading) CANChannel(n int) uint16 {
	return CombineBytes(r.CANIn[2*n+1], r.CANIn[2*n])
}

// PublishItem is one (topic suffix, formatted value) pair produced per
// field per poll cycle.
type PublishItem struct {
	Suffix string
	Value  string
}
