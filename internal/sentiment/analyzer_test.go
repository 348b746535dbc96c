package sentiment

import (
	"math"
	"testing"

	"CryptoAnalyst/internal/model"
)

func TestAnalyze_Headlines(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Bitcoin surges to record high as ETF approval nears", model.SentimentPositive},
		{"Crypto market crashes amid regulatory fears", model.SentimentNegative},
		{"Ethereum price today", model.SentimentNeutral},
		{"Solana is not bullish anymore", model.SentimentNegative},
		{"XRP isn't going to crash", model.SentimentPositive},
		{"Exchange hacked, users panic - CoinDesk", model.SentimentNegative},
	}
	for _, tt := range tests {
		label, polarity := Analyze(tt.title)
		if label != tt.want {
			t.Errorf("%q: expected %s, got %s (%.3f)", tt.title, tt.want, label, polarity)
		}
		if polarity < -1 || polarity > 1 {
			t.Errorf("%q: polarity %.3f out of range", tt.title, polarity)
		}
	}
}

func TestPolarity_Modifiers(t *testing.T) {
	base := Polarity("good")
	if math.Abs(base-0.7) > 1e-9 {
		t.Fatalf("expected 0.7, got %.3f", base)
	}
	if very := Polarity("very good"); very <= base {
		t.Errorf("intensifier should raise polarity: %.3f <= %.3f", very, base)
	}
	if extreme := Polarity("extremely excellent"); extreme != 1 {
		t.Errorf("expected clamp to 1, got %.3f", extreme)
	}
	if neg := Polarity("not good"); math.Abs(neg-(-0.35)) > 1e-9 {
		t.Errorf("expected -0.35, got %.3f", neg)
	}
	if neg := Polarity("never really good"); neg >= 0 {
		t.Errorf("negation within reach should flip, got %.3f", neg)
	}
	if far := Polarity("not the coin people call good"); far <= 0 {
		t.Errorf("negation out of reach should not flip, got %.3f", far)
	}
	if Polarity("") != 0 {
		t.Error("empty text should be neutral")
	}
}

func TestLabel_Thresholds(t *testing.T) {
	tests := []struct {
		p    float64
		want string
	}{
		{0.11, model.SentimentPositive},
		{0.1, model.SentimentNeutral},
		{-0.1, model.SentimentNeutral},
		{-0.11, model.SentimentNegative},
	}
	for _, tt := range tests {
		if got := Label(tt.p); got != tt.want {
			t.Errorf("Label(%.2f) = %s, want %s", tt.p, got, tt.want)
		}
	}
}

func TestScore(t *testing.T) {
	items := Score([]model.Article{
		{Title: "Bitcoin rallies", Link: "https://a", PubDate: "Mon, 01 Jan 2024 10:00:00 GMT"},
		{Title: "Bitcoin", Link: "https://b"},
	})
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Sentiment != model.SentimentPositive || items[0].Link != "https://a" || items[0].PubDate == "" {
		t.Errorf("unexpected first item %+v", items[0])
	}
	if items[1].Sentiment != model.SentimentNeutral || items[1].Polarity != 0 {
		t.Errorf("unexpected second item %+v", items[1])
	}
}
