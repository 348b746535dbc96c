package calculator

import (
	"errors"

	"CryptoAnalyst/internal/model"
)

// AnalyzeVolume compares the latest volume with its simple moving average.
func AnalyzeVolume(bars []model.OHLCV, window int) (model.Volume, error) {
	if len(bars) == 0 {
		return model.Volume{}, errors.New("no daily bars provided")
	}
	vols := extractVolumes(bars)
	avg, err := CalculateSMA(vols, window)
	if err != nil {
		return model.Volume{}, err
	}
	current := vols[len(vols)-1]
	return model.Volume{
		Current: current,
		SMA:     avg,
		Status:  VolumeStatus(current, avg),
	}, nil
}

// VolumeStatus classifies current volume against its average.
func VolumeStatus(current, avg float64) string {
	switch {
	case current > avg*1.5:
		return model.VolumeSpike
	case current < avg*0.5:
		return model.VolumeLow
	default:
		return model.VolumeNormal
	}
}
