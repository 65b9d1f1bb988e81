package parser

import (
	"strconv"

	"EcuLink/internal/model"
)

// Four quantities use a x10 fixed-point wire encoding and are published
// with one decimal place; everything else publishes the raw integer.
func scaled(v byte) string {
	return strconv.FormatFloat(float64(v)/10.0, 'f', 1, 64)
}

func raw(v byte) string {
	return strconv.Itoa(int(v))
}

func word(v uint16) string {
	return strconv.Itoa(int(v))
}

// PublishItems maps a Reading to its ordered list of (suffix, value)
// pairs. The order is fixed and every field is always present.
func PublishItems(r model.Reading) []model.PublishItem {
	return []model.PublishItem{
		{Suffix: "RPM", Value: word(r.RPM())},
		{Suffix: "TPS", Value: raw(r.TPS)},
		{Suffix: "VE", Value: raw(r.VE)},
		{Suffix: "O2P", Value: scaled(r.O2Primary)},
		{Suffix: "MAT", Value: raw(r.MAT)},
		{Suffix: "CAD", Value: raw(r.CoolantADC)},
		{Suffix: "DWL", Value: raw(r.Dwell)},
		{Suffix: "MAP", Value: word(r.MAP())},
		{Suffix: "O2S", Value: scaled(r.O2Secondary)},
		{Suffix: "ITC", Value: raw(r.IATCorrection)},
		{Suffix: "TAE", Value: raw(r.TAEAmount)},
		{Suffix: "COR", Value: raw(r.Corrections)},
		{Suffix: "AFT", Value: scaled(r.AFRTarget)},
		{Suffix: "PW1", Value: word(r.PW1())},
		{Suffix: "TPD", Value: raw(r.TPSDot)},
		{Suffix: "ADV", Value: raw(r.Advance)},
		{Suffix: "LPS", Value: word(r.LoopsPerSecond())},
		{Suffix: "FRM", Value: word(r.FreeRAM())},
		{Suffix: "BST", Value: raw(r.BoostTarget)},
		{Suffix: "BSD", Value: raw(r.BoostDuty)},
		{Suffix: "SPK", Value: raw(r.Spark)},
		{Suffix: "RPD", Value: word(r.RPMDot())},
		{Suffix: "ETH", Value: raw(r.EthanolPct)},
		{Suffix: "FLC", Value: raw(r.FlexCorrection)},
		{Suffix: "FIC", Value: raw(r.FlexIgnCorrection)},
		{Suffix: "ILL", Value: raw(r.IdleLoad)},
		{Suffix: "TOF", Value: raw(r.TestOutputs)},
		{Suffix: "BAR", Value: raw(r.Baro)},
		{Suffix: "CN1", Value: word(r.CANChannel(0))},
		{Suffix: "CN2", Value: word(r.CANChannel(1))},
		{Suffix: "CN3", Value: word(r.CANChannel(2))},
		{Suffix: "CN4", Value: word(r.CANChannel(3))},
		{Suffix: "CN5", Value: word(r.CANChannel(4))},
		{Suffix: "CN6", Value: word(r.CANChannel(5))},
		{Suffix: "CN7", Value: word(r.CANChannel(6))},
		{Suffix: "CN8", Value: word(r.CANChannel(7))},
		{Suffix: "TAD", Value: raw(r.TPSADC)},
		{Suffix: "NER", Value: raw(r.NextError)},
		{Suffix: "STA", Value: raw(r.Status1)},
		{Suffix: "ENG", Value: raw(r.Engine)},
		{Suffix: "BTC", Value: raw(r.BatCorrection)},
		{Suffix: "BAT", Value: scaled(r.Battery10)},
		{Suffix: "EGC", Value: raw(r.EGOCorrection)},
		{Suffix: "WEC", Value: raw(r.WUECorrection)},
		{Suffix: "SCL", Value: raw(r.SecL)},
	}
}
