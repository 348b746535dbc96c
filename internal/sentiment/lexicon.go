package sentiment

// lexicon maps lower-case words to a polarity in [-1, 1]. Inflected forms are
// listed explicitly; there is no stemming.
var lexicon = map[string]float64{
	// positive
	"good": 0.7, "great": 0.8, "excellent": 1.0, "best": 1.0, "better": 0.5,
	"positive": 0.23, "strong": 0.43, "stronger": 0.5, "strongest": 0.6,
	"gain": 0.4, "gains": 0.4, "gained": 0.4, "gaining": 0.4,
	"surge": 0.6, "surges": 0.6, "surged": 0.6, "surging": 0.6,
	"soar": 0.7, "soars": 0.7, "soared": 0.7, "soaring": 0.7,
	"rally": 0.5, "rallies": 0.5, "rallied": 0.5, "rallying": 0.5,
	"jump": 0.4, "jumps": 0.4, "jumped": 0.4,
	"rise": 0.3, "rises": 0.3, "rising": 0.3, "rose": 0.3,
	"climb": 0.3, "climbs": 0.3, "climbed": 0.3,
	"record": 0.3, "high": 0.16, "higher": 0.25, "highs": 0.2,
	"bull": 0.5, "bullish": 0.6, "boom": 0.5, "booming": 0.6,
	"breakout": 0.5, "recover": 0.4, "recovers": 0.4, "recovery": 0.4,
	"rebound": 0.4, "rebounds": 0.4, "rebounded": 0.4,
	"profit": 0.4, "profits": 0.4, "profitable": 0.5,
	"growth": 0.4, "grow": 0.3, "grows": 0.3, "growing": 0.3,
	"win": 0.8, "wins": 0.8, "success": 0.6, "successful": 0.75,
	"approve": 0.4, "approves": 0.4, "approved": 0.4, "approval": 0.4,
	"adoption": 0.3, "optimism": 0.5, "optimistic": 0.5,
	"upgrade": 0.3, "upbeat": 0.5, "boost": 0.4, "boosts": 0.4,
	"support": 0.2, "safe": 0.5, "secure": 0.4, "milestone": 0.4,
	"new": 0.14, "top": 0.5, "massive": 0.2, "huge": 0.4,

	// negative
	"bad": -0.7, "worse": -0.4, "worst": -1.0, "poor": -0.4,
	"negative": -0.3, "weak": -0.38, "weaker": -0.45, "weakness": -0.4,
	"loss": -0.5, "losses": -0.5, "lose": -0.5, "loses": -0.5, "lost": -0.4,
	"drop": -0.4, "drops": -0.4, "dropped": -0.4, "dropping": -0.4,
	"fall": -0.4, "falls": -0.4, "fell": -0.4, "falling": -0.4,
	"plunge": -0.7, "plunges": -0.7, "plunged": -0.7, "plunging": -0.7,
	"crash": -0.8, "crashes": -0.8, "crashed": -0.8, "crashing": -0.8,
	"slump": -0.6, "slumps": -0.6, "slumped": -0.6,
	"tumble": -0.6, "tumbles": -0.6, "tumbled": -0.6,
	"sink": -0.5, "sinks": -0.5, "sank": -0.5,
	"decline": -0.4, "declines": -0.4, "declined": -0.4, "declining": -0.4,
	"low": -0.16, "lower": -0.25, "lows": -0.2,
	"bear": -0.5, "bearish": -0.6, "dump": -0.5, "dumps": -0.5,
	"sell-off": -0.5, "selloff": -0.5,
	"fear": -0.5, "fears": -0.5, "panic": -0.7, "worry": -0.4, "worries": -0.4,
	"risk": -0.2, "risks": -0.2, "risky": -0.4, "volatile": -0.2,
	"hack": -0.7, "hacked": -0.7, "exploit": -0.6, "scam": -0.8, "fraud": -0.8,
	"ban": -0.5, "bans": -0.5, "banned": -0.5, "crackdown": -0.6,
	"lawsuit": -0.5, "sue": -0.5, "sues": -0.5, "charged": -0.4,
	"warning": -0.3, "warns": -0.3, "collapse": -0.8, "collapses": -0.8,
	"bankrupt": -0.8, "bankruptcy": -0.8, "liquidation": -0.5, "liquidations": -0.5,
	"fail": -0.5, "fails": -0.5, "failed": -0.5, "failure": -0.6,
	"uncertain": -0.3, "uncertainty": -0.3, "concern": -0.3, "concerns": -0.3,
	"struggle": -0.4, "struggles": -0.4, "trouble": -0.4, "crisis": -0.7,
}

// intensifiers scale the polarity of the next scored word.
var intensifiers = map[string]float64{
	"very": 1.3, "extremely": 1.5, "really": 1.2, "highly": 1.3,
	"incredibly": 1.5, "super": 1.3, "so": 1.2, "most": 1.3,
	"slightly": 0.6, "somewhat": 0.7, "barely": 0.5,
}

// negations flip and damp the polarity of a scored word up to three tokens later.
var negations = map[string]bool{
	"not": true, "no": true, "never": true, "without": true, "nor": true,
}
