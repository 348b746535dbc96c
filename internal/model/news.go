package model

// Sentiment labels.
const (
	SentimentPositive = "Positive"
	SentimentNegative = "Negative"
	SentimentNeutral  = "Neutral"
)

// Article is a raw headline as returned by the news feed.
type Article struct {
	Title   string
	Link    string
	PubDate string
}

// NewsItem is a headline with its sentiment score attached.
type NewsItem struct {
	Title     string  `json:"title"`
	Link      string  `json:"link"`
	PubDate   string  `json:"pub_date"`
	Sentiment string  `json:"sentiment"`
	Polarity  float64 `json:"polarity"`
}
