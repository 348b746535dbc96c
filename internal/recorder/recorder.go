package recorder

import (
	"time"

	"CryptoAnalyst/internal/model"
)

// Snapshot is one stored analysis of a symbol.
type Snapshot struct {
	Symbol       string    `json:"symbol"`
	Timestamp    time.Time `json:"timestamp"`
	Source       string    `json:"source"`
	Price        float64   `json:"price"`
	SMA50        float64   `json:"sma50"`
	SMA200       float64   `json:"sma200"`
	Trend        string    `json:"trend"`
	RSI          float64   `json:"rsi"`
	RSISignal    string    `json:"rsi_signal"`
	Support      float64   `json:"support"`
	Resistance   float64   `json:"resistance"`
	Volume       float64   `json:"volume"`
	VolumeSMA    float64   `json:"volume_sma"`
	VolumeStatus string    `json:"volume_status"`
	NewsCount    int       `json:"news_count"`
	AvgPolarity  float64   `json:"avg_polarity"`
}

// NewSnapshot flattens a report into a snapshot row.
func NewSnapshot(r *model.Report) *Snapshot {
	ma := r.MarketAnalysis
	snap := &Snapshot{
		Symbol:       r.Symbol,
		Timestamp:    r.GeneratedAt,
		Source:       r.Source,
		Price:        ma.Price,
		SMA50:        ma.Trend.SMA50,
		SMA200:       ma.Trend.SMA200,
		Trend:        ma.Trend.Status,
		RSI:          ma.Indicators.RSI.Value,
		RSISignal:    ma.Indicators.RSI.Signal,
		Support:      ma.SupportResistance.Support,
		Resistance:   ma.SupportResistance.Resistance,
		Volume:       ma.Indicators.Volume.Current,
		VolumeSMA:    ma.Indicators.Volume.SMA,
		VolumeStatus: ma.Indicators.Volume.Status,
		NewsCount:    len(r.News),
	}
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now()
	}
	if len(r.News) > 0 {
		sum := 0.0
		for _, n := range r.News {
			sum += n.Polarity
		}
		snap.AvgPolarity = sum / float64(len(r.News))
	}
	return snap
}

// AlertEvent records an RSI zone alert.
type AlertEvent struct {
	Symbol    string
	Signal    string
	RSI       float64
	Price     float64
	Delivered bool
}

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordSnapshot(snap *Snapshot) error
	RecordAlert(evt *AlertEvent) error
	// History returns the most recent snapshots for a symbol, newest first.
	History(symbol string, limit int) ([]Snapshot, error)
	Close() error
}
